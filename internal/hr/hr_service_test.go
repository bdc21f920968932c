package hr

import (
	"context"
	"testing"

	hrerrors "go-logistics/internal/hr/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPayrollProfileValidate(t *testing.T) {
	base := func() *PayrollProfile {
		return &PayrollProfile{
			PayByDay:           true,
			DailyRate:          decimal.NewFromInt(150),
			PaymentInterval:    IntervalDaily,
			PaymentBusinessDay: 1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(p *PayrollProfile)
		wantErr error
	}{
		{
			name:   "valid daily profile",
			mutate: func(p *PayrollProfile) {},
		},
		{
			name: "no pay type selected",
			mutate: func(p *PayrollProfile) {
				p.PayByDay = false
			},
			wantErr: hrerrors.ErrMultiplePayTypes,
		},
		{
			name: "two pay types selected",
			mutate: func(p *PayrollProfile) {
				p.PayByHour = true
				p.HourlyRate = decimal.NewFromInt(20)
			},
			wantErr: hrerrors.ErrMultiplePayTypes,
		},
		{
			name: "rate missing for selected type",
			mutate: func(p *PayrollProfile) {
				p.DailyRate = decimal.Zero
			},
			wantErr: hrerrors.ErrMissingRate,
		},
		{
			name: "rate set on the wrong type",
			mutate: func(p *PayrollProfile) {
				p.PayByDay = false
				p.PayByHour = true
				p.HourlyRate = decimal.Zero
			},
			wantErr: hrerrors.ErrMissingRate,
		},
		{
			name: "unknown interval",
			mutate: func(p *PayrollProfile) {
				p.PaymentInterval = "QUARTERLY"
			},
			wantErr: hrerrors.ErrInvalidInterval,
		},
		{
			name: "business day out of range",
			mutate: func(p *PayrollProfile) {
				p.PaymentBusinessDay = 6
			},
			wantErr: hrerrors.ErrInvalidBusinessDay,
		},
		{
			name: "unset business day is allowed",
			mutate: func(p *PayrollProfile) {
				p.PaymentBusinessDay = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseRate(t *testing.T) {
	got, err := parseRate("150.50")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("150.50")))

	got, err = parseRate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = parseRate("-10")
	assert.ErrorIs(t, err, hrerrors.ErrMissingRate)

	_, err = parseRate("abc")
	assert.ErrorIs(t, err, hrerrors.ErrMissingRate)
}

func TestProfileServiceCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeRepo(nil)
	svc := NewProfileService(db, repo)

	companyID := uuid.NewString()
	resp, err := svc.Create(context.Background(), companyID, CreateProfileRequest{
		PayByDay:           true,
		DailyRate:          "150.00",
		PaymentInterval:    IntervalDaily,
		PaymentBusinessDay: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, companyID, resp.CompanyID)
	assert.Equal(t, "150.00", resp.DailyRate)
	assert.Equal(t, 0, resp.DaysWorked)
	assert.Equal(t, "0.00", resp.CurrentPeriodAmount)
	require.NotNil(t, resp.NextPaymentDate, "a configured profile always has a scheduled date")

	require.NotNil(t, repo.createdProfile)
	assert.Equal(t, companyID, repo.createdProfile.CompanyID.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileServiceCreateInvalidConfig(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := newFakeRepo(nil)
	svc := NewProfileService(db, repo)

	_, err = svc.Create(context.Background(), uuid.NewString(), CreateProfileRequest{
		PayByDay:        true,
		PayByHour:       true,
		DailyRate:       "150.00",
		HourlyRate:      "20.00",
		PaymentInterval: IntervalDaily,
	})
	assert.ErrorIs(t, err, hrerrors.ErrMultiplePayTypes)
	assert.Nil(t, repo.createdProfile)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileServiceGetByIDNotFound(t *testing.T) {
	repo := newFakeRepo(nil)
	repo.findProfileErr = gorm.ErrRecordNotFound

	svc := NewProfileService(nil, repo)

	_, err := svc.GetByID(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, hrerrors.ErrProfileNotFound)
}

func TestProfileServiceUpdateRecomputesAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	profile := &PayrollProfile{
		ID:                 uuid.New(),
		CompanyID:          uuid.New(),
		PayByDay:           true,
		DailyRate:          decimal.NewFromInt(100),
		PaymentInterval:    IntervalDaily,
		PaymentBusinessDay: 1,
	}
	repo := newFakeRepo(profile)
	repo.days = []WorkedDay{
		{ID: uuid.New(), ProfileID: profile.ID, Date: date(2025, 6, 2)},
		{ID: uuid.New(), ProfileID: profile.ID, Date: date(2025, 6, 3)},
	}

	svc := NewProfileService(db, repo)

	// Raising the daily rate must re-price the open period from the ledger.
	resp, err := svc.Update(context.Background(), profile.CompanyID.String(), profile.ID.String(), UpdateProfileRequest{
		PayByDay:           true,
		DailyRate:          "200.00",
		PaymentInterval:    IntervalDaily,
		PaymentBusinessDay: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.DaysWorked)
	assert.Equal(t, "400.00", resp.CurrentPeriodAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
