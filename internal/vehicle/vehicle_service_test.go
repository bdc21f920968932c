package vehicle

import (
	"context"
	"database/sql"
	"testing"

	vehicleerrors "go-logistics/internal/vehicle/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	vehicles    map[string]*Vehicle
	activeCount map[string]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		vehicles:    map[string]*Vehicle{},
		activeCount: map[string]int64{},
	}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, v *Vehicle) error {
	f.vehicles[v.ID.String()] = v
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Vehicle, error) {
	var rows []Vehicle
	for _, v := range f.vehicles {
		if v.CompanyID.String() == companyID {
			rows = append(rows, *v)
		}
	}
	return rows, nil
}

func (f *fakeRepo) FindAvailableByCompany(ctx context.Context, companyID string) ([]Vehicle, error) {
	var rows []Vehicle
	for _, v := range f.vehicles {
		if v.CompanyID.String() == companyID && v.Status == StatusAvailable {
			rows = append(rows, *v)
		}
	}
	return rows, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok || v.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (f *fakeRepo) Update(ctx context.Context, v *Vehicle) error {
	f.vehicles[v.ID.String()] = v
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	if _, ok := f.vehicles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.vehicles, id)
	return nil
}

func (f *fakeRepo) CountActiveDeliveries(ctx context.Context, companyID, vehicleID string) (int64, error) {
	return f.activeCount[vehicleID], nil
}

func seedVehicle(repo *fakeRepo, companyID uuid.UUID, status string) *Vehicle {
	v := &Vehicle{
		ID:          uuid.New(),
		CompanyID:   companyID,
		PlateNumber: "B-1234-XY",
		Status:      status,
	}
	repo.vehicles[v.ID.String()] = v
	return v
}

func TestCreateVehicleNormalizesPlate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), uuid.NewString(), CreateVehicleRequest{
		PlateNumber: "  b-9876-zz ",
	})
	require.NoError(t, err)

	assert.Equal(t, "B-9876-ZZ", resp.PlateNumber)
	assert.Equal(t, StatusAvailable, resp.Status)
}

func TestEnsureAssignableAvailableVehicle(t *testing.T) {
	repo := newFakeRepo()
	companyID := uuid.New()
	v := seedVehicle(repo, companyID, StatusAvailable)

	svc := NewService(repo)

	assert.NoError(t, svc.EnsureAssignable(context.Background(), companyID.String(), v.ID.String()))
}

func TestEnsureAssignableRejectsDoubleAssignment(t *testing.T) {
	repo := newFakeRepo()
	companyID := uuid.New()
	v := seedVehicle(repo, companyID, StatusInService)
	repo.activeCount[v.ID.String()] = 1

	svc := NewService(repo)

	err := svc.EnsureAssignable(context.Background(), companyID.String(), v.ID.String())
	assert.ErrorIs(t, err, vehicleerrors.ErrVehicleAlreadyAssigned)
}

func TestEnsureAssignableRejectsMaintenance(t *testing.T) {
	repo := newFakeRepo()
	companyID := uuid.New()
	v := seedVehicle(repo, companyID, StatusMaintenance)

	svc := NewService(repo)

	err := svc.EnsureAssignable(context.Background(), companyID.String(), v.ID.String())
	assert.ErrorIs(t, err, vehicleerrors.ErrVehicleNotAvailable)
}

func TestEnsureAssignableUnknownVehicle(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.EnsureAssignable(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, vehicleerrors.ErrVehicleNotFound)
}

func TestDeleteVehicleWithActiveDelivery(t *testing.T) {
	repo := newFakeRepo()
	companyID := uuid.New()
	v := seedVehicle(repo, companyID, StatusInService)
	repo.activeCount[v.ID.String()] = 2

	svc := NewService(repo)

	err := svc.Delete(context.Background(), companyID.String(), v.ID.String())
	assert.ErrorIs(t, err, vehicleerrors.ErrVehicleAlreadyAssigned)
	assert.Contains(t, repo.vehicles, v.ID.String())
}
