package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-logistics/internal/events"
	notificationerrors "go-logistics/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	NotifyDeliveryStatusChanged(ctx context.Context, event events.DeliveryStatusChangedEvent) error
	NotifyPaymentSettled(ctx context.Context, event events.PaymentSettledEvent) error

	List(ctx context.Context, companyID string, limit int) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, companyID, id string) (NotificationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) NotifyDeliveryStatusChanged(ctx context.Context, event events.DeliveryStatusChangedEvent) error {
	companyID, err := uuid.Parse(event.CompanyID)
	if err != nil {
		return err
	}

	notifType := TypeDeliveryStatus
	title := fmt.Sprintf("Delivery is now %s", event.ToStatus)
	body := fmt.Sprintf("Delivery %s moved from %s to %s", event.DeliveryID, event.FromStatus, event.ToStatus)
	if event.EventType == "delivery_late" {
		notifType = TypeDeliveryLate
		title = "Delivery is running late"
		body = fmt.Sprintf("Delivery %s is past its estimated arrival while %s", event.DeliveryID, event.ToStatus)
	}

	n := &Notification{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Type:        notifType,
		Title:       title,
		Body:        body,
		ReferenceID: event.DeliveryID,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("persist delivery notification failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) NotifyPaymentSettled(ctx context.Context, event events.PaymentSettledEvent) error {
	companyID, err := uuid.Parse(event.CompanyID)
	if err != nil {
		return err
	}

	n := &Notification{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Type:        TypePaymentSettled,
		Title:       "Payment settled",
		Body:        fmt.Sprintf("Payroll profile %s settled %s on %s", event.ProfileID, event.AmountPaid, event.PaymentDate),
		ReferenceID: event.ProfileID,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("persist payment notification failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, companyID string, limit int) ([]NotificationResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID, limit)
	if err != nil {
		return nil, err
	}

	res := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		res[i] = mapToResponse(n)
	}
	return res, nil
}

func (s *service) MarkRead(ctx context.Context, companyID, id string) (NotificationResponse, error) {
	n, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}

	if n.ReadAt == nil {
		now := time.Now().UTC()
		n.ReadAt = &now
		if err := s.repo.Update(ctx, n); err != nil {
			return NotificationResponse{}, err
		}
	}

	return mapToResponse(*n), nil
}

type NotificationResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Body        string     `json:"body,omitempty"`
	ReferenceID string     `json:"reference_id,omitempty"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID.String(),
		Type:        n.Type,
		Title:       n.Title,
		Body:        n.Body,
		ReferenceID: n.ReferenceID,
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}
