package delivery

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository interface {
	// Create is idempotent per delivery; a duplicate report request is
	// a no-op.
	Create(ctx context.Context, report *Report) error
	FindByDeliveryID(ctx context.Context, companyID, deliveryID string) (*Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *Report) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "delivery_id"}},
			DoNothing: true,
		}).
		Create(report).Error
}

func (r *reportRepository) FindByDeliveryID(ctx context.Context, companyID, deliveryID string) (*Report, error) {
	var report Report
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND delivery_id = ?", companyID, deliveryID).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}
