package delivery

import (
	"context"
	"database/sql"
	"time"

	"go-logistics/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Delivery) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Delivery, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Delivery, error)
	// FindByIDForUpdate locks the delivery row so concurrent transitions
	// serialize.
	FindByIDForUpdate(ctx context.Context, companyID, id string) (*Delivery, error)
	Update(ctx context.Context, d *Delivery) error

	CreateCheckpoint(ctx context.Context, cp *Checkpoint) error
	ListCheckpoints(ctx context.Context, companyID, deliveryID string) ([]Checkpoint, error)

	// FindOverdue returns non-terminal deliveries whose ETA passed
	// before the cutoff.
	FindOverdue(ctx context.Context, cutoff time.Time, limit int) ([]Delivery, error)
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

func (r *repository) Create(ctx context.Context, d *Delivery) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Delivery, error) {
	var rows []Delivery
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Delivery, error) {
	var d Delivery
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*Delivery, error) {
	var d Delivery
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Delivery) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) CreateCheckpoint(ctx context.Context, cp *Checkpoint) error {
	return r.db.WithContext(ctx).Create(cp).Error
}

func (r *repository) ListCheckpoints(ctx context.Context, companyID, deliveryID string) ([]Checkpoint, error) {
	var rows []Checkpoint
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("delivery_id = ?", deliveryID).
		Order("created_at asc").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindOverdue(ctx context.Context, cutoff time.Time, limit int) ([]Delivery, error) {
	var rows []Delivery
	err := r.db.WithContext(ctx).
		Where("status IN ?", ActiveStatuses).
		Where("eta IS NOT NULL AND eta < ?", cutoff).
		Where("late_notified_at IS NULL").
		Order("eta asc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
