package hr

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=hr_repo.go -destination=mock/hr_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateProfile(ctx context.Context, p *PayrollProfile) error
	FindProfileByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollProfile, error)
	FindAllProfilesByCompany(ctx context.Context, companyID string) ([]PayrollProfile, error)
	UpdateProfile(ctx context.Context, p *PayrollProfile) error
	DeleteProfile(ctx context.Context, companyID, id string) error

	CreateWorkedDay(ctx context.Context, d *WorkedDay) error
	DeleteWorkedDay(ctx context.Context, profileID, id string) error
	FindWorkedDays(ctx context.Context, profileID string) ([]WorkedDay, error)

	CreateWorkHour(ctx context.Context, h *WorkHour) error
	FindWorkHourByID(ctx context.Context, profileID, id string) (*WorkHour, error)
	UpdateWorkHour(ctx context.Context, h *WorkHour) error
	DeleteWorkHour(ctx context.Context, profileID, id string) error
	FindWorkHours(ctx context.Context, profileID string) ([]WorkHour, error)

	CreatePaymentHistory(ctx context.Context, ph *PaymentHistory) error
	CreateWorkHistories(ctx context.Context, rows []WorkHistory) error
	DeleteAllWorkRecords(ctx context.Context, profileID string) error
	FindPaymentHistories(ctx context.Context, companyID, profileID string) ([]PaymentHistory, error)
	FindWorkHistories(ctx context.Context, paymentID string) ([]WorkHistory, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to the caller's transaction: every gorm
// statement issued through the returned value runs on tx, not on the
// pooled connection, so the caller's Commit/Rollback covers them all.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) CreateProfile(ctx context.Context, p *PayrollProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindProfileByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollProfile, error) {
	var p PayrollProfile
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAllProfilesByCompany(ctx context.Context, companyID string) ([]PayrollProfile, error) {
	var rows []PayrollProfile
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateProfile(ctx context.Context, p *PayrollProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) DeleteProfile(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&PayrollProfile{}, "id = ?", id).Error
}

func (r *repository) CreateWorkedDay(ctx context.Context, d *WorkedDay) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) DeleteWorkedDay(ctx context.Context, profileID, id string) error {
	res := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&WorkedDay{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindWorkedDays(ctx context.Context, profileID string) ([]WorkedDay, error) {
	var rows []WorkedDay
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("work_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateWorkHour(ctx context.Context, h *WorkHour) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindWorkHourByID(ctx context.Context, profileID, id string) (*WorkHour, error) {
	var h WorkHour
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Where("id = ?", id).
		First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) UpdateWorkHour(ctx context.Context, h *WorkHour) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *repository) DeleteWorkHour(ctx context.Context, profileID, id string) error {
	res := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&WorkHour{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindWorkHours(ctx context.Context, profileID string) ([]WorkHour, error) {
	var rows []WorkHour
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("work_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreatePaymentHistory(ctx context.Context, ph *PaymentHistory) error {
	return r.db.WithContext(ctx).Create(ph).Error
}

func (r *repository) CreateWorkHistories(ctx context.Context, rows []WorkHistory) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) DeleteAllWorkRecords(ctx context.Context, profileID string) error {
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&WorkedDay{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&WorkHour{}).Error
}

func (r *repository) FindPaymentHistories(ctx context.Context, companyID, profileID string) ([]PaymentHistory, error) {
	var rows []PaymentHistory
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("profile_id = ?", profileID).
		Order("payment_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindWorkHistories(ctx context.Context, paymentID string) ([]WorkHistory, error) {
	var rows []WorkHistory
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("work_date ASC").
		Find(&rows).Error
	return rows, err
}
