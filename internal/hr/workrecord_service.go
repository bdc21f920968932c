package hr

import (
	"context"
	"database/sql"
	"errors"
	"time"

	hrerrors "go-logistics/internal/hr/errors"
	"go-logistics/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=workrecord_service.go -destination=mock/workrecord_service_mock.go -package=mock
type WorkRecordService interface {
	CreateWorkedDay(ctx context.Context, companyID, profileID string, req CreateWorkedDayRequest) (WorkedDayResponse, error)
	DeleteWorkedDay(ctx context.Context, companyID, profileID, id string) error
	ListWorkedDays(ctx context.Context, companyID, profileID string, start, end *time.Time) ([]WorkedDayResponse, error)

	CreateWorkHour(ctx context.Context, companyID, profileID string, req CreateWorkHourRequest) (WorkHourResponse, error)
	UpdateWorkHour(ctx context.Context, companyID, profileID, id string, req UpdateWorkHourRequest) (WorkHourResponse, error)
	DeleteWorkHour(ctx context.Context, companyID, profileID, id string) error
	ListWorkHours(ctx context.Context, companyID, profileID string, start, end *time.Time) ([]WorkHourResponse, error)
}

type workRecordService struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewWorkRecordService(db *sql.DB, repo Repository, logger ...*zap.Logger) WorkRecordService {
	l := zap.L().Named("hr.workrecord.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hr.workrecord.service")
	}
	return &workRecordService{db: db, repo: repo, logger: l}
}

func (s *workRecordService) CreateWorkedDay(ctx context.Context, companyID, profileID string, req CreateWorkedDayRequest) (WorkedDayResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkedDayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindProfileByIDAndCompany(ctx, companyID, profileID)
	if err != nil {
		return WorkedDayResponse{}, mapRepositoryError(err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return WorkedDayResponse{}, err
	}

	day := &WorkedDay{
		ID:        uuid.New(),
		ProfileID: p.ID,
		Date:      date,
	}
	if err := qtx.CreateWorkedDay(ctx, day); err != nil {
		return WorkedDayResponse{}, mapRepositoryError(err)
	}

	if err := s.recomputeAndSave(ctx, qtx, p); err != nil {
		return WorkedDayResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WorkedDayResponse{}, err
	}
	return mapWorkedDayToResponse(*day), nil
}

func (s *workRecordService) DeleteWorkedDay(ctx context.Context, companyID, profileID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindProfileByIDAndCompany(ctx, companyID, profileID)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.DeleteWorkedDay(ctx, profileID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hrerrors.ErrWorkRecordNotFound
		}
		return mapRepositoryError(err)
	}

	if err := s.recomputeAndSave(ctx, qtx, p); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *workRecordService) ListWorkedDays(ctx context.Context, companyID, profileID string, start, end *time.Time) ([]WorkedDayResponse, error) {
	if _, err := s.repo.FindProfileByIDAndCompany(ctx, companyID, profileID); err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := validateDateRange(start, end, time.Now().UTC()); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindWorkedDays(ctx, profileID)
	if err != nil {
		return nil, err
	}

	resp := make([]WorkedDayResponse, 0, len(rows))
	for _, d := range rows {
		if inRange(d.Date, start, end) {
			resp = append(resp, mapWorkedDayToResponse(d))
		}
	}
	return resp, nil
}

func (s *workRecordService) CreateWorkHour(ctx context.Context, companyID, profileID string, req CreateWorkHourRequest) (WorkHourResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkHourResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindProfileByIDAndCompany(ctx, companyID, profileID)
	if err != nil {
		return WorkHourResponse{}, mapRepositoryError(err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return WorkHourResponse{}, err
	}

	start, end, err := parseWorkTimes(date, req.StartTime, req.EndTime)
	if err != nil {
		return WorkHourResponse{}, err
	}

	hours, err := resolveHours(start, end, req.Hours)
	if err != nil {
		return WorkHourResponse{}, err
	}

	h := &WorkHour{
		ID:        uuid.New(),
		ProfileID: p.ID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Hours:     hours,
	}
	if err := qtx.CreateWorkHour(ctx, h); err != nil {
		return WorkHourResponse{}, mapRepositoryError(err)
	}

	if err := s.recomputeAndSave(ctx, qtx, p); err != nil {
		return WorkHourResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WorkHourResponse{}, err
	}
	return mapWorkHourToResponse(*h), nil
}

func (s *workRecordService) UpdateWorkHour(ctx context.Context, companyID, profileID, id string, req UpdateWorkHourRequest) (WorkHourResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkHourResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindProfileByIDAndCompany(ctx, companyID, profileID)
	if err != nil {
		return WorkHourResponse{}, mapRepositoryError(err)
	}

	h, err := qtx.FindWorkHourByID(ctx, profileID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkHourResponse{}, hrerrors.ErrWorkRecordNotFound
		}
		return WorkHourResponse{}, mapRepositoryError(err)
	}

	start, end, err := parseWorkTimes(h.Date, req.StartTime, req.EndTime)
	if err != nil {
		return WorkHourResponse{}, err
	}
	if start != nil {
		h.StartTime = start
	}
	if end != nil {
		h.EndTime = end
	}

	hours, err := resolveHours(h.StartTime, h.EndTime, req.Hours)
	if err != nil {
		return WorkHourResponse{}, err
	}
	h.Hours = hours

	if err := qtx.UpdateWorkHour(ctx, h); err != nil {
		return WorkHourResponse{}, mapRepositoryError(err)
	}

	if err := s.recomputeAndSave(ctx, qtx, p); err != nil {
		return WorkHourResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WorkHourResponse{}, err
	}
	return mapWorkHourToResponse(*h), nil
}

func (s *workRecordService) DeleteWorkHour(ctx context.Context, companyID, profileID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindProfileByIDAndCompany(ctx, companyID, profileID)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.DeleteWorkHour(ctx, profileID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hrerrors.ErrWorkRecordNotFound
		}
		return mapRepositoryError(err)
	}

	if err := s.recomputeAndSave(ctx, qtx, p); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *workRecordService) ListWorkHours(ctx context.Context, companyID, profileID string, start, end *time.Time) ([]WorkHourResponse, error) {
	if _, err := s.repo.FindProfileByIDAndCompany(ctx, companyID, profileID); err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := validateDateRange(start, end, time.Now().UTC()); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindWorkHours(ctx, profileID)
	if err != nil {
		return nil, err
	}

	resp := make([]WorkHourResponse, 0, len(rows))
	for _, h := range rows {
		if inRange(h.Date, start, end) {
			resp = append(resp, mapWorkHourToResponse(h))
		}
	}
	return resp, nil
}

func (s *workRecordService) recomputeAndSave(ctx context.Context, qtx Repository, p *PayrollProfile) error {
	if err := recomputeFromLedger(ctx, qtx, p, time.Now().UTC()); err != nil {
		s.logger.Error("recompute profile from ledger failed",
			zap.String("profile_id", p.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return qtx.UpdateProfile(ctx, p)
}

// parseWorkTimes combines the work date with optional HH:MM clock times.
// An end before the start is treated as ending on the following day.
func parseWorkTimes(date time.Time, startStr, endStr *string) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if startStr != nil && *startStr != "" {
		t, err := time.Parse("15:04", *startStr)
		if err != nil {
			return nil, nil, hrerrors.ErrUnresolvableHours
		}
		v := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
		start = &v
	}

	if endStr != nil && *endStr != "" {
		t, err := time.Parse("15:04", *endStr)
		if err != nil {
			return nil, nil, hrerrors.ErrUnresolvableHours
		}
		v := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
		if start != nil && v.Before(*start) {
			v = v.AddDate(0, 0, 1)
		}
		end = &v
	}

	return start, end, nil
}

// resolveHours prefers the explicitly supplied value and otherwise
// derives the duration from the start/end pair.
func resolveHours(start, end *time.Time, explicit *string) (decimal.Decimal, error) {
	if explicit != nil && *explicit != "" {
		d, err := decimal.NewFromString(*explicit)
		if err != nil || d.IsNegative() {
			return decimal.Zero, hrerrors.ErrUnresolvableHours
		}
		return d, nil
	}

	if start == nil || end == nil {
		return decimal.Zero, hrerrors.ErrUnresolvableHours
	}

	hours := decimal.NewFromFloat(end.Sub(*start).Hours()).Round(2)
	if hours.IsNegative() {
		return decimal.Zero, hrerrors.ErrUnresolvableHours
	}
	return hours, nil
}

func validateDateRange(start, end *time.Time, now time.Time) error {
	if start == nil || end == nil {
		return nil
	}
	if start.After(*end) {
		return hrerrors.ErrInvalidPeriod
	}
	if dateutil.Truncate(*end).After(dateutil.Truncate(now)) {
		return hrerrors.ErrPeriodEndInFuture
	}
	return nil
}

func inRange(d time.Time, start, end *time.Time) bool {
	if start != nil && d.Before(dateutil.Truncate(*start)) {
		return false
	}
	if end != nil && d.After(dateutil.Truncate(*end)) {
		return false
	}
	return true
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, hrerrors.ErrInvalidDate
	}
	return t, nil
}

func mapWorkedDayToResponse(d WorkedDay) WorkedDayResponse {
	return WorkedDayResponse{
		ID:        d.ID.String(),
		ProfileID: d.ProfileID.String(),
		Date:      d.Date.Format("2006-01-02"),
	}
}

func mapWorkHourToResponse(h WorkHour) WorkHourResponse {
	resp := WorkHourResponse{
		ID:        h.ID.String(),
		ProfileID: h.ProfileID.String(),
		Date:      h.Date.Format("2006-01-02"),
		Hours:     h.Hours.StringFixed(2),
	}
	if h.StartTime != nil {
		v := h.StartTime.Format(time.RFC3339)
		resp.StartTime = &v
	}
	if h.EndTime != nil {
		v := h.EndTime.Format(time.RFC3339)
		resp.EndTime = &v
	}
	return resp
}
