package inventory

import (
	"context"
	"database/sql"

	"go-logistics/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, item *Item) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Item, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Item, error)
	// FindByIDForUpdate takes a row lock so concurrent adjustments
	// serialize on the item.
	FindByIDForUpdate(ctx context.Context, companyID, id string) (*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, companyID, id string) error

	CreateAdjustment(ctx context.Context, adj *StockAdjustment) error
	ListAdjustments(ctx context.Context, companyID, itemID string) ([]StockAdjustment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to the caller's transaction so row locks
// taken by FindByIDForUpdate are held until the caller commits.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Item, error) {
	var rows []Item
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) Update(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Item{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateAdjustment(ctx context.Context, adj *StockAdjustment) error {
	return r.db.WithContext(ctx).Create(adj).Error
}

func (r *repository) ListAdjustments(ctx context.Context, companyID, itemID string) ([]StockAdjustment, error) {
	var rows []StockAdjustment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("item_id = ?", itemID).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}
