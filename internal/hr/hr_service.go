package hr

import (
	"context"
	"database/sql"
	"time"

	hrerrors "go-logistics/internal/hr/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=hr_service.go -destination=mock/hr_service_mock.go -package=mock
type ProfileService interface {
	Create(ctx context.Context, companyID string, req CreateProfileRequest) (ProfileResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ProfileResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ProfileResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateProfileRequest) (ProfileResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type profileService struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewProfileService(db *sql.DB, repo Repository, logger ...*zap.Logger) ProfileService {
	l := zap.L().Named("hr.profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hr.profile.service")
	}
	return &profileService{db: db, repo: repo, logger: l}
}

func (s *profileService) Create(ctx context.Context, companyID string, req CreateProfileRequest) (ProfileResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ProfileResponse{}, hrerrors.ErrProfileNotFound
	}

	p := &PayrollProfile{
		ID:        uuid.New(),
		CompanyID: companyUUID,
	}
	if err := applyProfileRequest(p, req.EmployeeID, req.PayByDay, req.PayByHour, req.PayByMonth,
		req.DailyRate, req.HourlyRate, req.MonthlyRate, req.PaymentInterval, req.PaymentBusinessDay); err != nil {
		s.logger.Warn("create profile validation failed", zap.Error(err))
		return ProfileResponse{}, err
	}

	if err := recomputeFromLedger(ctx, qtx, p, time.Now().UTC()); err != nil {
		return ProfileResponse{}, err
	}

	if err := qtx.CreateProfile(ctx, p); err != nil {
		s.logger.Error("create profile persist failed", zap.Error(err))
		return ProfileResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, err
	}

	s.logger.Info("payroll profile created",
		zap.String("profile_id", p.ID.String()),
		zap.String("company_id", companyID),
		zap.String("pay_type", p.PayType()),
	)
	return mapProfileToResponse(*p), nil
}

func (s *profileService) GetAll(ctx context.Context, companyID string) ([]ProfileResponse, error) {
	rows, err := s.repo.FindAllProfilesByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]ProfileResponse, len(rows))
	for i, p := range rows {
		resp[i] = mapProfileToResponse(p)
	}
	return resp, nil
}

func (s *profileService) GetByID(ctx context.Context, companyID, id string) (ProfileResponse, error) {
	p, err := s.repo.FindProfileByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return mapProfileToResponse(*p), nil
}

func (s *profileService) Update(ctx context.Context, companyID, id string, req UpdateProfileRequest) (ProfileResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindProfileByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := applyProfileRequest(p, req.EmployeeID, req.PayByDay, req.PayByHour, req.PayByMonth,
		req.DailyRate, req.HourlyRate, req.MonthlyRate, req.PaymentInterval, req.PaymentBusinessDay); err != nil {
		s.logger.Warn("update profile validation failed", zap.Error(err))
		return ProfileResponse{}, err
	}

	// Rates or interval may have changed; derived totals follow the ledger
	if err := recomputeFromLedger(ctx, qtx, p, time.Now().UTC()); err != nil {
		return ProfileResponse{}, err
	}

	if err := qtx.UpdateProfile(ctx, p); err != nil {
		return ProfileResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, err
	}
	return mapProfileToResponse(*p), nil
}

func (s *profileService) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.DeleteProfile(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

// applyProfileRequest copies a create/update request onto the profile
// and validates the payment configuration.
func applyProfileRequest(
	p *PayrollProfile,
	employeeID *string,
	payByDay, payByHour, payByMonth bool,
	dailyRate, hourlyRate, monthlyRate string,
	interval string,
	businessDay int,
) error {
	if employeeID != nil && *employeeID != "" {
		empUUID, err := uuid.Parse(*employeeID)
		if err != nil {
			return hrerrors.ErrProfileNotFound
		}
		p.EmployeeID = &empUUID
	} else {
		p.EmployeeID = nil
	}

	p.PayByDay = payByDay
	p.PayByHour = payByHour
	p.PayByMonth = payByMonth

	var err error
	if p.DailyRate, err = parseRate(dailyRate); err != nil {
		return err
	}
	if p.HourlyRate, err = parseRate(hourlyRate); err != nil {
		return err
	}
	if p.MonthlyRate, err = parseRate(monthlyRate); err != nil {
		return err
	}

	p.PaymentInterval = interval
	p.PaymentBusinessDay = businessDay

	return p.Validate()
}

// Validate enforces the profile invariants: exactly one payment type
// selected, a positive rate for that type, a known interval, and a
// business day inside 1..5 when set.
func (p *PayrollProfile) Validate() error {
	selected := 0
	for _, flag := range []bool{p.PayByDay, p.PayByHour, p.PayByMonth} {
		if flag {
			selected++
		}
	}
	if selected != 1 {
		return hrerrors.ErrMultiplePayTypes
	}

	if !p.Rate().IsPositive() {
		return hrerrors.ErrMissingRate
	}

	switch p.PaymentInterval {
	case IntervalDaily, IntervalWeekly, IntervalBiweekly, IntervalMonthly:
	default:
		return hrerrors.ErrInvalidInterval
	}

	if p.PaymentBusinessDay != 0 && (p.PaymentBusinessDay < 1 || p.PaymentBusinessDay > 5) {
		return hrerrors.ErrInvalidBusinessDay
	}

	return nil
}

// recomputeFromLedger rebuilds the profile's derived state from the live
// work records. It is called inside the same transaction as whatever
// mutated the ledger, replacing the signal-driven recomputation the
// system previously relied on.
func recomputeFromLedger(ctx context.Context, repo Repository, p *PayrollProfile, now time.Time) error {
	days, err := repo.FindWorkedDays(ctx, p.ID.String())
	if err != nil {
		return err
	}
	hours, err := repo.FindWorkHours(ctx, p.ID.String())
	if err != nil {
		return err
	}

	p.DaysWorked = len(days)

	totalHours := decimal.Zero
	for _, h := range hours {
		totalHours = totalHours.Add(h.Hours)
	}
	p.HoursWorked = totalHours

	p.LastDayRegistered = nil
	if len(days) > 0 {
		last := days[len(days)-1].Date
		p.LastDayRegistered = &last
	}

	p.LastHoursRegistered = nil
	if len(hours) > 0 {
		last := hours[len(hours)-1]
		ts := last.Date
		if last.EndTime != nil {
			ts = *last.EndTime
		}
		p.LastHoursRegistered = &ts
	}

	switch {
	case p.PayByDay:
		p.CurrentPeriodAmount = p.DailyRate.Mul(decimal.NewFromInt(int64(p.DaysWorked)))
	case p.PayByHour:
		p.CurrentPeriodAmount = p.HourlyRate.Mul(p.HoursWorked)
	case p.PayByMonth:
		p.CurrentPeriodAmount = p.MonthlyRate
	default:
		p.CurrentPeriodAmount = decimal.Zero
	}

	p.NextPaymentDate = NextPaymentDate(p, now)
	return nil
}

func parseRate(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, hrerrors.ErrMissingRate
	}
	return d, nil
}

func mapProfileToResponse(p PayrollProfile) ProfileResponse {
	resp := ProfileResponse{
		ID:                  p.ID.String(),
		CompanyID:           p.CompanyID.String(),
		PayByDay:            p.PayByDay,
		PayByHour:           p.PayByHour,
		PayByMonth:          p.PayByMonth,
		DailyRate:           p.DailyRate.StringFixed(2),
		HourlyRate:          p.HourlyRate.StringFixed(2),
		MonthlyRate:         p.MonthlyRate.StringFixed(2),
		PaymentInterval:     p.PaymentInterval,
		PaymentBusinessDay:  p.PaymentBusinessDay,
		DaysWorked:          p.DaysWorked,
		HoursWorked:         p.HoursWorked.StringFixed(2),
		CurrentPeriodAmount: p.CurrentPeriodAmount.StringFixed(2),
		TotalPaid:           p.TotalPaid.StringFixed(2),
	}

	if p.EmployeeID != nil {
		v := p.EmployeeID.String()
		resp.EmployeeID = &v
	}
	if p.LastPaymentDate != nil {
		v := p.LastPaymentDate.Format("2006-01-02")
		resp.LastPaymentDate = &v
	}
	if p.NextPaymentDate != nil {
		v := p.NextPaymentDate.Format("2006-01-02")
		resp.NextPaymentDate = &v
	}

	return resp
}
