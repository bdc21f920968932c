package customer

import (
	"context"

	"go-logistics/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, cust *Customer) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Customer, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Customer, error)
	Update(ctx context.Context, cust *Customer) error
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cust *Customer) error {
	return r.db.WithContext(ctx).Create(cust).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Customer, error) {
	var rows []Customer
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name asc").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Customer, error) {
	var cust Customer
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&cust, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

func (r *repository) Update(ctx context.Context, cust *Customer) error {
	return r.db.WithContext(ctx).Save(cust).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Customer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
