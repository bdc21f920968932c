package hr

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-logistics/internal/events"
	hrerrors "go-logistics/internal/hr/errors"
	"go-logistics/internal/messaging/kafka"
	"go-logistics/internal/shared/contextutil"
	"go-logistics/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=payment_service.go -destination=mock/payment_service_mock.go -package=mock
type PaymentService interface {
	ProcessPayment(ctx context.Context, companyID, profileID string) (ProcessPaymentResponse, error)
	ListPaymentHistories(ctx context.Context, companyID, profileID string) ([]PaymentHistoryResponse, error)
	ListWorkHistories(ctx context.Context, companyID, profileID, paymentID string) ([]WorkHistoryResponse, error)
}

type paymentService struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewPaymentService(db *sql.DB, repo Repository, logger ...*zap.Logger) PaymentService {
	return NewPaymentServiceWithOutbox(db, repo, nil, logger...)
}

func NewPaymentServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) PaymentService {
	l := zap.L().Named("hr.payment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hr.payment.service")
	}
	return &paymentService{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

// ProcessPayment settles the profile's current period in one
// transaction: snapshot the amount and the live work records into
// history, clear the ledger and the running counters, and advance the
// payment schedule. Either every step applies or none does.
func (s *paymentService) ProcessPayment(ctx context.Context, companyID, profileID string) (ProcessPaymentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProcessPaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindProfileByIDAndCompany(ctx, companyID, profileID)
	if err != nil {
		return ProcessPaymentResponse{}, mapRepositoryError(err)
	}

	if !p.CurrentPeriodAmount.IsPositive() {
		s.logger.Warn("process payment skipped, nothing to settle",
			zap.String("request_id", rid),
			zap.String("profile_id", profileID),
		)
		return ProcessPaymentResponse{}, hrerrors.ErrNothingToSettle
	}

	today := dateutil.Truncate(time.Now().UTC())
	settled := p.CurrentPeriodAmount

	payment := &PaymentHistory{
		ID:          uuid.New(),
		CompanyID:   p.CompanyID,
		ProfileID:   p.ID,
		PaymentDate: today,
		AmountPaid:  settled,
		PaymentType: p.PayType(),
	}
	if err := qtx.CreatePaymentHistory(ctx, payment); err != nil {
		return ProcessPaymentResponse{}, err
	}

	days, err := qtx.FindWorkedDays(ctx, profileID)
	if err != nil {
		return ProcessPaymentResponse{}, err
	}
	hours, err := qtx.FindWorkHours(ctx, profileID)
	if err != nil {
		return ProcessPaymentResponse{}, err
	}

	histories := make([]WorkHistory, 0, len(days)+len(hours))
	for _, d := range days {
		histories = append(histories, WorkHistory{
			ID:        uuid.New(),
			PaymentID: payment.ID,
			Date:      d.Date,
		})
	}
	for _, h := range hours {
		histories = append(histories, WorkHistory{
			ID:        uuid.New(),
			PaymentID: payment.ID,
			Date:      h.Date,
			StartTime: h.StartTime,
			EndTime:   h.EndTime,
			Hours:     h.Hours,
		})
	}
	if err := qtx.CreateWorkHistories(ctx, histories); err != nil {
		return ProcessPaymentResponse{}, err
	}

	if err := qtx.DeleteAllWorkRecords(ctx, profileID); err != nil {
		return ProcessPaymentResponse{}, err
	}

	p.DaysWorked = 0
	p.HoursWorked = decimal.Zero
	p.CurrentPeriodAmount = decimal.Zero
	p.LastDayRegistered = nil
	p.LastHoursRegistered = nil
	p.TotalPaid = p.TotalPaid.Add(settled)
	p.LastPaymentDate = &today
	p.NextPaymentDate = NextPaymentDate(p, today)

	if err := qtx.UpdateProfile(ctx, p); err != nil {
		return ProcessPaymentResponse{}, err
	}

	if s.outbox != nil {
		event := events.PaymentSettledEvent{
			EventType:   "payment_settled",
			ProfileID:   p.ID.String(),
			CompanyID:   companyID,
			AmountPaid:  settled.StringFixed(2),
			PaymentType: p.PayType(),
			PaymentDate: today.Format("2006-01-02"),
			OccurredAt:  time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return ProcessPaymentResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll_profile",
			AggregateID:   p.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PaymentSettledTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create payment outbox persist failed",
				zap.String("profile_id", profileID),
				zap.Error(err),
			)
			return ProcessPaymentResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ProcessPaymentResponse{}, err
	}

	s.logger.Info("payment settled",
		zap.String("request_id", rid),
		zap.String("profile_id", profileID),
		zap.String("amount", settled.StringFixed(2)),
		zap.Int("work_records", len(histories)),
	)

	return ProcessPaymentResponse{
		Profile: mapProfileToResponse(*p),
		Payment: mapPaymentHistoryToResponse(*payment),
	}, nil
}

func (s *paymentService) ListPaymentHistories(ctx context.Context, companyID, profileID string) ([]PaymentHistoryResponse, error) {
	rows, err := s.repo.FindPaymentHistories(ctx, companyID, profileID)
	if err != nil {
		return nil, err
	}

	resp := make([]PaymentHistoryResponse, len(rows))
	for i, ph := range rows {
		resp[i] = mapPaymentHistoryToResponse(ph)
	}
	return resp, nil
}

func (s *paymentService) ListWorkHistories(ctx context.Context, companyID, profileID, paymentID string) ([]WorkHistoryResponse, error) {
	// The payment must belong to the caller's tenant
	payments, err := s.repo.FindPaymentHistories(ctx, companyID, profileID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, ph := range payments {
		if ph.ID.String() == paymentID {
			found = true
			break
		}
	}
	if !found {
		return nil, hrerrors.ErrProfileNotFound
	}

	rows, err := s.repo.FindWorkHistories(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	resp := make([]WorkHistoryResponse, len(rows))
	for i, wh := range rows {
		resp[i] = mapWorkHistoryToResponse(wh)
	}
	return resp, nil
}

func mapPaymentHistoryToResponse(ph PaymentHistory) PaymentHistoryResponse {
	return PaymentHistoryResponse{
		ID:          ph.ID.String(),
		ProfileID:   ph.ProfileID.String(),
		PaymentDate: ph.PaymentDate.Format("2006-01-02"),
		AmountPaid:  ph.AmountPaid.StringFixed(2),
		PaymentType: ph.PaymentType,
	}
}

func mapWorkHistoryToResponse(wh WorkHistory) WorkHistoryResponse {
	resp := WorkHistoryResponse{
		ID:        wh.ID.String(),
		PaymentID: wh.PaymentID.String(),
		Date:      wh.Date.Format("2006-01-02"),
		Hours:     wh.Hours.StringFixed(2),
	}
	if wh.StartTime != nil {
		v := wh.StartTime.Format(time.RFC3339)
		resp.StartTime = &v
	}
	if wh.EndTime != nil {
		v := wh.EndTime.Format(time.RFC3339)
		resp.EndTime = &v
	}
	return resp
}
