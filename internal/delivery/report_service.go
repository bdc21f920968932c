package delivery

import (
	"context"
	"errors"
	"time"

	deliveryerrors "go-logistics/internal/delivery/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReportService interface {
	// Generate builds the summary report for a delivered delivery. Safe
	// to call more than once for the same delivery.
	Generate(ctx context.Context, companyID, deliveryID string) (*Report, error)
	GetByDeliveryID(ctx context.Context, companyID, deliveryID string) (*Report, error)
}

type reportService struct {
	deliveries Repository
	reports    ReportRepository
	logger     *zap.Logger
}

func NewReportService(deliveries Repository, reports ReportRepository, logger ...*zap.Logger) ReportService {
	l := zap.L().Named("delivery.report")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("delivery.report")
	}
	return &reportService{deliveries: deliveries, reports: reports, logger: l}
}

func (s *reportService) Generate(ctx context.Context, companyID, deliveryID string) (*Report, error) {
	d, err := s.deliveries.FindByIDAndCompany(ctx, companyID, deliveryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, deliveryerrors.ErrDeliveryNotFound
		}
		return nil, err
	}

	if d.Status != StatusDelivered {
		return nil, deliveryerrors.ErrDeliveryNotDelivered
	}

	checkpoints, err := s.deliveries.ListCheckpoints(ctx, companyID, deliveryID)
	if err != nil {
		return nil, err
	}

	deliveredAt := d.UpdatedAt
	for _, cp := range checkpoints {
		if cp.Status == StatusDelivered {
			deliveredAt = cp.CreatedAt
			break
		}
	}

	report := &Report{
		ID:              uuid.New(),
		CompanyID:       d.CompanyID,
		DeliveryID:      d.ID,
		TrackingNumber:  d.TrackingNumber,
		CheckpointCount: len(checkpoints),
		DistanceMeters:  d.DistanceMeters,
		TransitDuration: int64(deliveredAt.Sub(d.CreatedAt) / time.Second),
		DeliveredAt:     deliveredAt,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		s.logger.Error("persist delivery report failed",
			zap.String("delivery_id", deliveryID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("delivery report generated",
		zap.String("delivery_id", deliveryID),
		zap.String("tracking_number", d.TrackingNumber),
		zap.Int("checkpoints", report.CheckpointCount),
	)
	return report, nil
}

func (s *reportService) GetByDeliveryID(ctx context.Context, companyID, deliveryID string) (*Report, error) {
	report, err := s.reports.FindByDeliveryID(ctx, companyID, deliveryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, deliveryerrors.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}
