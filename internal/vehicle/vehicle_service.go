package vehicle

import (
	"context"
	"errors"
	"strings"

	vehicleerrors "go-logistics/internal/vehicle/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateVehicleRequest) (VehicleResponse, error)
	GetAll(ctx context.Context, companyID string) ([]VehicleResponse, error)
	GetAvailable(ctx context.Context, companyID string) ([]VehicleResponse, error)
	GetByID(ctx context.Context, companyID, id string) (VehicleResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateVehicleRequest) (VehicleResponse, error)
	Delete(ctx context.Context, companyID, id string) error

	// EnsureAssignable verifies the vehicle can take one more active
	// delivery. Callers hold their own transaction; the check here is a
	// guard, the unique partial index on deliveries is the backstop.
	EnsureAssignable(ctx context.Context, companyID, vehicleID string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("vehicle.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vehicle.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateVehicleRequest) (VehicleResponse, error) {
	status := req.Status
	if status == "" {
		status = StatusAvailable
	}

	v := &Vehicle{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		PlateNumber: strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		CapacityKg:  req.CapacityKg,
		Status:      status,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		s.logger.Error("create vehicle failed", zap.Error(err))
		return VehicleResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create vehicle success",
		zap.String("vehicle_id", v.ID.String()),
		zap.String("plate_number", v.PlateNumber),
	)
	return mapToResponse(*v), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]VehicleResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetAvailable(ctx context.Context, companyID string) ([]VehicleResponse, error) {
	rows, err := s.repo.FindAvailableByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (VehicleResponse, error) {
	v, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return VehicleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*v), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateVehicleRequest) (VehicleResponse, error) {
	v, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return VehicleResponse{}, mapRepositoryError(err)
	}

	v.PlateNumber = strings.ToUpper(strings.TrimSpace(req.PlateNumber))
	v.Make = req.Make
	v.Model = req.Model
	v.Year = req.Year
	v.CapacityKg = req.CapacityKg
	if req.Status != "" {
		v.Status = req.Status
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return VehicleResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update vehicle success", zap.String("vehicle_id", id))
	return mapToResponse(*v), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	active, err := s.repo.CountActiveDeliveries(ctx, companyID, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return vehicleerrors.ErrVehicleAlreadyAssigned
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("delete vehicle success", zap.String("vehicle_id", id))
	return nil
}

func (s *service) EnsureAssignable(ctx context.Context, companyID, vehicleID string) error {
	v, err := s.repo.FindByIDAndCompany(ctx, companyID, vehicleID)
	if err != nil {
		return mapRepositoryError(err)
	}

	if v.Status != StatusAvailable && v.Status != StatusInService {
		return vehicleerrors.ErrVehicleNotAvailable
	}

	active, err := s.repo.CountActiveDeliveries(ctx, companyID, vehicleID)
	if err != nil {
		return err
	}
	if active > 0 {
		return vehicleerrors.ErrVehicleAlreadyAssigned
	}

	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return vehicleerrors.ErrVehicleNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return vehicleerrors.ErrPlateAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return vehicleerrors.ErrPlateAlreadyExists
	}

	return err
}

func mapToResponse(v Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:          v.ID.String(),
		CompanyID:   v.CompanyID.String(),
		PlateNumber: v.PlateNumber,
		Make:        v.Make,
		Model:       v.Model,
		Year:        v.Year,
		CapacityKg:  v.CapacityKg,
		Status:      v.Status,
	}
}

func mapToListResponse(rows []Vehicle) []VehicleResponse {
	res := make([]VehicleResponse, len(rows))
	for i, v := range rows {
		res[i] = mapToResponse(v)
	}
	return res
}
