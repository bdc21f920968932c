package vehicle

import (
	"context"
	"database/sql"

	"go-logistics/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *Vehicle) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Vehicle, error)
	FindAvailableByCompany(ctx context.Context, companyID string) ([]Vehicle, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Vehicle, error)
	Update(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, companyID, id string) error

	// CountActiveDeliveries reports how many non-terminal deliveries
	// currently hold the vehicle.
	CountActiveDeliveries(ctx context.Context, companyID, vehicleID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to the caller's transaction.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, v *Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Vehicle, error) {
	var rows []Vehicle
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("plate_number").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAvailableByCompany(ctx context.Context, companyID string) ([]Vehicle, error) {
	var rows []Vehicle
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusAvailable).
		Order("plate_number").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Vehicle, error) {
	var v Vehicle
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) Update(ctx context.Context, v *Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Vehicle{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountActiveDeliveries(ctx context.Context, companyID, vehicleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("deliveries").
		Where("company_id = ? AND vehicle_id = ?", companyID, vehicleID).
		Where("status NOT IN ?", []string{"delivered", "returned", "failed", "cancelled"}).
		Count(&count).Error
	return count, err
}
