package hr

import (
	"errors"
	"strings"

	hrerrors "go-logistics/internal/hr/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return hrerrors.ErrProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_worked_day_profile_date", "uq_work_hour_profile_date":
				return hrerrors.ErrWorkRecordExists
			case "uq_payroll_profile_employee":
				return hrerrors.ErrProfileAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") &&
		(strings.Contains(errMsg, "uq_worked_day_profile_date") || strings.Contains(errMsg, "uq_work_hour_profile_date")) {
		return hrerrors.ErrWorkRecordExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_payroll_profile_employee") {
		return hrerrors.ErrProfileAlreadyExists
	}

	return err
}
