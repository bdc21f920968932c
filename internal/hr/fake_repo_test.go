package hr

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// fakeRepo is an in-memory Repository for service tests. It hands out
// the profile pointer directly so tests can observe service mutations.
type fakeRepo struct {
	profile       *PayrollProfile
	days          []WorkedDay
	hours         []WorkHour
	payments      []PaymentHistory
	workHistories []WorkHistory

	createdProfile *PayrollProfile
	updatedProfile *PayrollProfile
	clearedLedger  bool

	findProfileErr error
	createDayErr   error
	createHourErr  error
}

func newFakeRepo(profile *PayrollProfile) *fakeRepo {
	return &fakeRepo{profile: profile}
}

func (r *fakeRepo) WithTx(tx *sql.Tx) Repository {
	return r
}

func (r *fakeRepo) CreateProfile(ctx context.Context, p *PayrollProfile) error {
	r.createdProfile = p
	return nil
}

func (r *fakeRepo) FindProfileByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollProfile, error) {
	if r.findProfileErr != nil {
		return nil, r.findProfileErr
	}
	if r.profile == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.profile, nil
}

func (r *fakeRepo) FindAllProfilesByCompany(ctx context.Context, companyID string) ([]PayrollProfile, error) {
	if r.profile == nil {
		return nil, nil
	}
	return []PayrollProfile{*r.profile}, nil
}

func (r *fakeRepo) UpdateProfile(ctx context.Context, p *PayrollProfile) error {
	r.updatedProfile = p
	return nil
}

func (r *fakeRepo) DeleteProfile(ctx context.Context, companyID, id string) error {
	if r.profile == nil {
		return gorm.ErrRecordNotFound
	}
	r.profile = nil
	return nil
}

func (r *fakeRepo) CreateWorkedDay(ctx context.Context, d *WorkedDay) error {
	if r.createDayErr != nil {
		return r.createDayErr
	}
	r.days = append(r.days, *d)
	return nil
}

func (r *fakeRepo) DeleteWorkedDay(ctx context.Context, profileID, id string) error {
	for i, d := range r.days {
		if d.ID.String() == id {
			r.days = append(r.days[:i], r.days[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) FindWorkedDays(ctx context.Context, profileID string) ([]WorkedDay, error) {
	return r.days, nil
}

func (r *fakeRepo) CreateWorkHour(ctx context.Context, h *WorkHour) error {
	if r.createHourErr != nil {
		return r.createHourErr
	}
	r.hours = append(r.hours, *h)
	return nil
}

func (r *fakeRepo) FindWorkHourByID(ctx context.Context, profileID, id string) (*WorkHour, error) {
	for i := range r.hours {
		if r.hours[i].ID.String() == id {
			return &r.hours[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateWorkHour(ctx context.Context, h *WorkHour) error {
	for i := range r.hours {
		if r.hours[i].ID == h.ID {
			r.hours[i] = *h
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) DeleteWorkHour(ctx context.Context, profileID, id string) error {
	for i, h := range r.hours {
		if h.ID.String() == id {
			r.hours = append(r.hours[:i], r.hours[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) FindWorkHours(ctx context.Context, profileID string) ([]WorkHour, error) {
	return r.hours, nil
}

func (r *fakeRepo) CreatePaymentHistory(ctx context.Context, ph *PaymentHistory) error {
	r.payments = append(r.payments, *ph)
	return nil
}

func (r *fakeRepo) CreateWorkHistories(ctx context.Context, rows []WorkHistory) error {
	r.workHistories = append(r.workHistories, rows...)
	return nil
}

func (r *fakeRepo) DeleteAllWorkRecords(ctx context.Context, profileID string) error {
	r.days = nil
	r.hours = nil
	r.clearedLedger = true
	return nil
}

func (r *fakeRepo) FindPaymentHistories(ctx context.Context, companyID, profileID string) ([]PaymentHistory, error) {
	return r.payments, nil
}

func (r *fakeRepo) FindWorkHistories(ctx context.Context, paymentID string) ([]WorkHistory, error) {
	out := make([]WorkHistory, 0, len(r.workHistories))
	for _, wh := range r.workHistories {
		if wh.PaymentID.String() == paymentID {
			out = append(out, wh)
		}
	}
	return out, nil
}
