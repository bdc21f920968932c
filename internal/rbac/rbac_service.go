package rbac

import (
	"errors"
	"sync"

	"go-logistics/internal/domain"
	rbacerrors "go-logistics/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PolicyInvalidator drops a company's cached policy so the next
// Enforce reloads it from the database. Every write that changes who
// may do what must call it; nothing invalidates implicitly.
type PolicyInvalidator interface {
	Invalidate(companyID string)
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	PolicyInvalidator

	LoadCompanyPolicy(companyID string) error
	Enforce(req domain.EnforceRequest) (bool, error)

	ListRoles(companyID string) ([]domain.RoleResponse, error)
	GetRole(companyID, roleID string) (*domain.RoleResponse, error)
	CreateRole(companyID string, req domain.CreateRoleRequest) (*domain.RoleResponse, error)
	UpdateRole(companyID, roleID string, req domain.UpdateRoleRequest) (*domain.RoleResponse, error)
	DeleteRole(companyID, roleID string) error
	ListPermissions() ([]domain.PermissionResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger

	mu     sync.Mutex
	loaded map[string]bool // company ids with policy cached on the enforcer
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
		loaded:   make(map[string]bool),
	}
}

func (s *service) LoadCompanyPolicy(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicyUnlocked(companyID); err != nil {
		return err
	}
	s.loaded[companyID] = true
	return nil
}

// Invalidate marks the company's cached policy stale. The policy rows
// stay on the enforcer until the next Enforce replaces them.
func (s *service) Invalidate(companyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.loaded, companyID)
}

func (s *service) loadCompanyPolicyUnlocked(companyID string) error {
	// drop only this company's rows, other tenants stay cached
	if _, err := s.enforcer.RemoveFilteredGroupingPolicy(2, companyID); err != nil {
		return err
	}
	if _, err := s.enforcer.RemoveFilteredPolicy(1, companyID); err != nil {
		return err
	}

	userRoles, err := s.repo.GetUserRoles(companyID)
	if err != nil {
		return err
	}

	for _, ur := range userRoles {
		if _, err := s.enforcer.AddGroupingPolicy(ur.UserID, ur.RoleID, companyID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(companyID)
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, companyID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Debug("company policy loaded",
		zap.String("company_id", companyID),
		zap.Int("user_roles", len(userRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

// Enforce evaluates the request against the company's cached policy,
// loading it from the database on the first check after startup or
// after an Invalidate call.
func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded[req.CompanyID] {
		if err := s.loadCompanyPolicyUnlocked(req.CompanyID); err != nil {
			return false, err
		}
		s.loaded[req.CompanyID] = true
	}

	allowed, err := s.enforcer.Enforce(req.UserID, req.CompanyID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("user_id", req.UserID),
			zap.String("company_id", req.CompanyID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("enforce result",
		zap.String("user_id", req.UserID),
		zap.String("company_id", req.CompanyID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListRoles(companyID string) ([]domain.RoleResponse, error) {
	rows, err := s.repo.ListRoles(companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.RoleResponse, 0, len(rows))
	for _, row := range rows {
		role, err := s.mapRole(row)
		if err != nil {
			return nil, err
		}
		resp = append(resp, *role)
	}
	return resp, nil
}

func (s *service) GetRole(companyID, roleID string) (*domain.RoleResponse, error) {
	row, err := s.findCompanyRole(companyID, roleID)
	if err != nil {
		return nil, err
	}
	return s.mapRole(*row)
}

func (s *service) CreateRole(companyID string, req domain.CreateRoleRequest) (*domain.RoleResponse, error) {
	if existing, err := s.repo.GetRoleByName(companyID, req.Name); err == nil && existing != nil {
		return nil, rbacerrors.ErrRoleNameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := &RoleRow{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateRole(row); err != nil {
		return nil, err
	}

	if len(req.Permissions) > 0 {
		if err := s.repo.UpdateRolePermissions(row.ID, req.Permissions); err != nil {
			return nil, err
		}
	}
	s.Invalidate(companyID)

	s.logger.Info("role created",
		zap.String("company_id", companyID),
		zap.String("role_id", row.ID),
		zap.String("name", row.Name),
	)
	return s.mapRole(*row)
}

func (s *service) UpdateRole(companyID, roleID string, req domain.UpdateRoleRequest) (*domain.RoleResponse, error) {
	row, err := s.findCompanyRole(companyID, roleID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" && req.Name != row.Name {
		if existing, err := s.repo.GetRoleByName(companyID, req.Name); err == nil && existing != nil {
			return nil, rbacerrors.ErrRoleNameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		row.Name = req.Name
	}
	if req.Description != "" {
		row.Description = req.Description
	}

	if err := s.repo.UpdateRole(row); err != nil {
		return nil, err
	}

	if req.Permissions != nil {
		if err := s.repo.UpdateRolePermissions(row.ID, req.Permissions); err != nil {
			return nil, err
		}
	}
	s.Invalidate(companyID)

	return s.mapRole(*row)
}

func (s *service) DeleteRole(companyID, roleID string) error {
	if _, err := s.findCompanyRole(companyID, roleID); err != nil {
		return err
	}
	if err := s.repo.DeleteRole(roleID); err != nil {
		return err
	}
	s.Invalidate(companyID)
	return nil
}

func (s *service) ListPermissions() ([]domain.PermissionResponse, error) {
	rows, err := s.repo.ListPermissions()
	if err != nil {
		return nil, err
	}

	resp := make([]domain.PermissionResponse, len(rows))
	for i, p := range rows {
		resp[i] = domain.PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		}
	}
	return resp, nil
}

func (s *service) findCompanyRole(companyID, roleID string) (*RoleRow, error) {
	row, err := s.repo.GetRoleByID(roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rbacerrors.ErrRoleNotFound
		}
		return nil, err
	}
	if row.CompanyID != companyID {
		return nil, rbacerrors.ErrRoleNotFound
	}
	return row, nil
}

func (s *service) mapRole(row RoleRow) (*domain.RoleResponse, error) {
	perms, err := s.repo.GetPermissionsByRoleID(row.ID)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.Resource + ":" + p.Action
	}

	return &domain.RoleResponse{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Permissions: names,
	}, nil
}
