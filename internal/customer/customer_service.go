package customer

import (
	"context"
	"errors"
	"strings"

	customererrors "go-logistics/internal/customer/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateCustomerRequest) (CustomerResponse, error)
	GetAll(ctx context.Context, companyID string) ([]CustomerResponse, error)
	GetByID(ctx context.Context, companyID, id string) (CustomerResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateCustomerRequest) (CustomerResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("customer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("customer.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateCustomerRequest) (CustomerResponse, error) {
	cust := &Customer{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		Notes:     req.Notes,
	}

	if err := s.repo.Create(ctx, cust); err != nil {
		s.logger.Error("create customer failed", zap.Error(err))
		return CustomerResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create customer success", zap.String("customer_id", cust.ID.String()))
	return mapToResponse(*cust), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]CustomerResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]CustomerResponse, len(rows))
	for i, c := range rows {
		res[i] = mapToResponse(c)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (CustomerResponse, error) {
	cust, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return CustomerResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*cust), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateCustomerRequest) (CustomerResponse, error) {
	cust, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return CustomerResponse{}, mapRepositoryError(err)
	}

	cust.Name = req.Name
	cust.Email = req.Email
	cust.Phone = req.Phone
	cust.Address = req.Address
	cust.City = req.City
	cust.Notes = req.Notes

	if err := s.repo.Update(ctx, cust); err != nil {
		return CustomerResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update customer success", zap.String("customer_id", id))
	return mapToResponse(*cust), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("delete customer success", zap.String("customer_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return customererrors.ErrCustomerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return customererrors.ErrCustomerAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return customererrors.ErrCustomerAlreadyExists
	}

	return err
}

func mapToResponse(c Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID.String(),
		CompanyID: c.CompanyID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		Notes:     c.Notes,
	}
}
