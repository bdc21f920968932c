package hr

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-logistics/internal/events"
	hrerrors "go-logistics/internal/hr/errors"
	"go-logistics/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func settledHourlyProfile() *PayrollProfile {
	p := hourlyProfile(20)
	p.HoursWorked = decimal.NewFromInt(9)
	p.CurrentPeriodAmount = decimal.NewFromInt(180)
	p.TotalPaid = decimal.NewFromInt(100)
	return p
}

func TestProcessPaymentSettlesPeriod(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	profile := settledHourlyProfile()
	repo := newFakeRepo(profile)
	workDate := date(2025, time.June, 2)
	repo.hours = []WorkHour{
		{ID: uuid.New(), ProfileID: profile.ID, Date: workDate, Hours: decimal.NewFromInt(9)},
	}

	svc := NewPaymentService(db, repo)

	resp, err := svc.ProcessPayment(context.Background(), profile.CompanyID.String(), profile.ID.String())
	require.NoError(t, err)

	// Snapshot first: one payment row carrying the settled amount and the
	// work records copied under it.
	require.Len(t, repo.payments, 1)
	assert.True(t, repo.payments[0].AmountPaid.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, PayTypeHour, repo.payments[0].PaymentType)
	require.Len(t, repo.workHistories, 1)
	assert.Equal(t, repo.payments[0].ID, repo.workHistories[0].PaymentID)
	assert.True(t, repo.workHistories[0].Hours.Equal(decimal.NewFromInt(9)))

	// Then the live ledger is gone and the counters start over.
	assert.True(t, repo.clearedLedger)
	assert.Equal(t, 0, profile.DaysWorked)
	assert.True(t, profile.HoursWorked.IsZero())
	assert.True(t, profile.CurrentPeriodAmount.IsZero())
	assert.Nil(t, profile.LastDayRegistered)
	assert.Nil(t, profile.LastHoursRegistered)

	assert.True(t, profile.TotalPaid.Equal(decimal.NewFromInt(280)), "got %s", profile.TotalPaid)
	require.NotNil(t, profile.LastPaymentDate)
	require.NotNil(t, profile.NextPaymentDate)
	assert.True(t, profile.NextPaymentDate.After(*profile.LastPaymentDate))

	assert.Equal(t, "180.00", resp.Payment.AmountPaid)
	assert.Equal(t, "280.00", resp.Profile.TotalPaid)
	assert.Equal(t, "0.00", resp.Profile.CurrentPeriodAmount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPaymentNothingToSettle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	profile := hourlyProfile(20)
	repo := newFakeRepo(profile)
	svc := NewPaymentService(db, repo)

	_, err = svc.ProcessPayment(context.Background(), profile.CompanyID.String(), profile.ID.String())
	assert.ErrorIs(t, err, hrerrors.ErrNothingToSettle)
	assert.Empty(t, repo.payments)
	assert.False(t, repo.clearedLedger)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessPaymentWritesOutboxEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	profile := settledHourlyProfile()
	repo := newFakeRepo(profile)
	outbox := &fakeOutbox{}
	svc := NewPaymentServiceWithOutbox(db, repo, outbox)

	_, err = svc.ProcessPayment(context.Background(), profile.CompanyID.String(), profile.ID.String())
	require.NoError(t, err)

	require.Len(t, outbox.created, 1)
	created := outbox.created[0]
	assert.Equal(t, events.PaymentSettledTopic, created.Topic)
	assert.Equal(t, "payment_settled", created.EventType)
	assert.Equal(t, kafka.OutboxStatusPending, created.Status)
	assert.Equal(t, profile.ID.String(), created.AggregateID)

	var event events.PaymentSettledEvent
	require.NoError(t, json.Unmarshal(created.Payload, &event))
	assert.Equal(t, "180.00", event.AmountPaid)
	assert.Equal(t, PayTypeHour, event.PaymentType)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWorkHistoriesUnknownPayment(t *testing.T) {
	profile := settledHourlyProfile()
	repo := newFakeRepo(profile)
	svc := NewPaymentService(nil, repo)

	_, err := svc.ListWorkHistories(context.Background(), profile.CompanyID.String(), profile.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, hrerrors.ErrProfileNotFound)
}

func TestListWorkHistoriesScopedToPayment(t *testing.T) {
	profile := settledHourlyProfile()
	repo := newFakeRepo(profile)

	paymentID := uuid.New()
	repo.payments = []PaymentHistory{
		{ID: paymentID, CompanyID: profile.CompanyID, ProfileID: profile.ID, PaymentDate: date(2025, time.June, 6), AmountPaid: decimal.NewFromInt(180), PaymentType: PayTypeHour},
	}
	repo.workHistories = []WorkHistory{
		{ID: uuid.New(), PaymentID: paymentID, Date: date(2025, time.June, 2), Hours: decimal.NewFromInt(9)},
		{ID: uuid.New(), PaymentID: uuid.New(), Date: date(2025, time.June, 3), Hours: decimal.NewFromInt(4)},
	}

	svc := NewPaymentService(nil, repo)

	rows, err := svc.ListWorkHistories(context.Background(), profile.CompanyID.String(), profile.ID.String(), paymentID.String())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "9.00", rows[0].Hours)
}
