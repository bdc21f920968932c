package rbac

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	RoleSourceDirect = "direct"
	RoleSourceGroup  = "group"
)

type RoleRow struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CompanyID   string `gorm:"type:uuid"`
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

func (RoleRow) TableName() string { return "roles" }

type PermissionRow struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Resource string
	Action   string
	Label    string
	Category string
}

func (PermissionRow) TableName() string { return "permissions" }

// UserRoleRow links a user to a role. Source records whether the row
// was granted directly or derived from a group; derived rows are owned
// by the sync service and rebuilt wholesale.
type UserRoleRow struct {
	UserID string `gorm:"type:uuid"`
	RoleID string `gorm:"type:uuid"`
	Source string
}

func (UserRoleRow) TableName() string { return "user_roles" }

type RolePermissionRow struct {
	RoleID   string
	Resource string
	Action   string
}

type GroupRow struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CompanyID string `gorm:"type:uuid"`
	Name      string
}

func (GroupRow) TableName() string { return "user_groups" }

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetUserRoles(companyID string) ([]UserRoleRow, error)
	GetRolePermissions(companyID string) ([]RolePermissionRow, error)

	// Management
	ListRoles(companyID string) ([]RoleRow, error)
	GetRoleByID(id string) (*RoleRow, error)
	GetRoleByName(companyID, name string) (*RoleRow, error)
	CreateRole(role *RoleRow) error
	UpdateRole(role *RoleRow) error
	DeleteRole(id string) error

	ListPermissions() ([]PermissionRow, error)
	GetPermissionsByRoleID(roleID string) ([]PermissionRow, error)
	UpdateRolePermissions(roleID string, permIDs []string) error

	// Sync support
	GetGroupByID(companyID, groupID string) (*GroupRow, error)
	GetGroupRoleIDs(groupID string) ([]string, error)
	GetUserGroupIDs(companyID, userID string) ([]string, error)
	ListGroupMemberIDs(groupID string, offset, limit int) ([]string, error)
	ReplaceDerivedUserRoles(userID string, roleIDs []string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetUserRoles(companyID string) ([]UserRoleRow, error) {
	var result []UserRoleRow

	err := r.db.
		Table("user_roles").
		Select("user_roles.user_id, user_roles.role_id, user_roles.source").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.company_id = ?", companyID).
		Scan(&result).Error

	return result, err
}

func (r *repository) GetRolePermissions(companyID string) ([]RolePermissionRow, error) {
	var result []RolePermissionRow

	err := r.db.
		Table("role_permissions").
		Select("role_permissions.role_id, permissions.resource, permissions.action").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Where("roles.company_id = ?", companyID).
		Scan(&result).Error

	return result, err
}

func (r *repository) ListRoles(companyID string) ([]RoleRow, error) {
	var result []RoleRow
	err := r.db.Where("company_id = ?", companyID).Find(&result).Error
	return result, err
}

func (r *repository) GetRoleByID(id string) (*RoleRow, error) {
	var result RoleRow
	err := r.db.First(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) GetRoleByName(companyID, name string) (*RoleRow, error) {
	var result RoleRow
	err := r.db.Where("company_id = ? AND name = ?", companyID, name).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) CreateRole(role *RoleRow) error {
	return r.db.Create(role).Error
}

func (r *repository) UpdateRole(role *RoleRow) error {
	return r.db.Save(role).Error
}

func (r *repository) DeleteRole(id string) error {
	return r.db.Delete(&RoleRow{}, "id = ?", id).Error
}

func (r *repository) ListPermissions() ([]PermissionRow, error) {
	var result []PermissionRow
	err := r.db.Order("category, label").Find(&result).Error
	return result, err
}

func (r *repository) GetPermissionsByRoleID(roleID string) ([]PermissionRow, error) {
	var result []PermissionRow
	err := r.db.
		Table("permissions").
		Select("permissions.*").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Scan(&result).Error
	return result, err
}

func (r *repository) UpdateRolePermissions(roleID string, permIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM role_permissions WHERE role_id = ?", roleID).Error; err != nil {
			return err
		}

		for _, pID := range permIDs {
			if err := tx.Exec("INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)", roleID, pID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) GetGroupByID(companyID, groupID string) (*GroupRow, error) {
	var result GroupRow
	err := r.db.Where("company_id = ? AND id = ?", companyID, groupID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) GetGroupRoleIDs(groupID string) ([]string, error) {
	var result []string
	err := r.db.
		Table("group_roles").
		Where("group_id = ?", groupID).
		Pluck("role_id", &result).Error
	return result, err
}

func (r *repository) GetUserGroupIDs(companyID, userID string) ([]string, error) {
	var result []string
	err := r.db.
		Table("group_members").
		Select("group_members.group_id").
		Joins("JOIN user_groups ON user_groups.id = group_members.group_id").
		Where("user_groups.company_id = ? AND group_members.user_id = ?", companyID, userID).
		Pluck("group_members.group_id", &result).Error
	return result, err
}

func (r *repository) ListGroupMemberIDs(groupID string, offset, limit int) ([]string, error) {
	var result []string
	err := r.db.
		Table("group_members").
		Where("group_id = ?", groupID).
		Order("user_id").
		Offset(offset).
		Limit(limit).
		Pluck("user_id", &result).Error
	return result, err
}

// ReplaceDerivedUserRoles rebuilds the group-derived role rows for one
// user. The user's rows are locked first so two concurrent syncs cannot
// interleave deletes and inserts.
func (r *repository) ReplaceDerivedUserRoles(userID string, roleIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var locked []UserRoleRow
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Find(&locked).Error; err != nil {
			return err
		}

		if err := tx.Exec(
			"DELETE FROM user_roles WHERE user_id = ? AND source = ?",
			userID, RoleSourceGroup,
		).Error; err != nil {
			return err
		}

		for _, roleID := range roleIDs {
			if err := tx.Exec(
				"INSERT INTO user_roles (user_id, role_id, source) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
				userID, roleID, RoleSourceGroup,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
