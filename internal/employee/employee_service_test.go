package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	employeeerrors "go-logistics/internal/employee/errors"
	"go-logistics/internal/events"
	"go-logistics/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	employees map[string]*Employee
	created   *Employee
	updated   *Employee
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{employees: map[string]*Employee{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, empl *Employee) error {
	f.created = empl
	f.employees[empl.ID.String()] = empl
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var rows []Employee
	for _, e := range f.employees {
		if e.CompanyID.String() == companyID {
			rows = append(rows, *e)
		}
	}
	return rows, nil
}

func (f *fakeRepo) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	return f.FindAllByCompany(ctx, companyID)
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeRepo) FindDriversByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var rows []Employee
	for _, e := range f.employees {
		if e.CompanyID.String() == companyID && e.IsDriver && e.Status == StatusActive {
			rows = append(rows, *e)
		}
	}
	return rows, nil
}

func (f *fakeRepo) Update(ctx context.Context, empl *Employee) error {
	f.updated = empl
	f.employees[empl.ID.String()] = empl
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	if _, ok := f.employees[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.employees, id)
	return nil
}

type fakeCounter struct {
	last int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.last++
	return f.last, nil
}

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
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error                 { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func TestCreateEmployeeGeneratesNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeRepo()
	svc := NewService(db, repo, &fakeCounter{}, nil)

	companyID := uuid.NewString()
	resp, err := svc.Create(context.Background(), companyID, CreateEmployeeRequest{
		FullName: "Jordan Lee",
		Email:    "jordan@acme.test",
		HireDate: "2025-06-02",
		IsDriver: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "EMP-000001", resp.EmployeeNumber)
	assert.Equal(t, StatusActive, resp.Status)
	assert.True(t, resp.IsDriver)
	require.NotNil(t, repo.created)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEmployeeKeepsGivenNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := NewService(db, newFakeRepo(), &fakeCounter{}, nil)

	resp, err := svc.Create(context.Background(), uuid.NewString(), CreateEmployeeRequest{
		FullName:       "Sam Kim",
		Email:          "sam@acme.test",
		EmployeeNumber: "DRV-42",
		HireDate:       "2025-06-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "DRV-42", resp.EmployeeNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEmployeeInvalidHireDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := NewService(db, newFakeRepo(), &fakeCounter{}, nil)

	_, err = svc.Create(context.Background(), uuid.NewString(), CreateEmployeeRequest{
		FullName: "Sam Kim",
		Email:    "sam@acme.test",
		HireDate: "06/02/2025",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEmployeeQueuesOutboxEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	outbox := &fakeOutbox{}
	svc := NewServiceWithOutbox(db, newFakeRepo(), &fakeCounter{}, outbox, nil)

	companyID := uuid.NewString()
	resp, err := svc.Create(context.Background(), companyID, CreateEmployeeRequest{
		FullName: "Jordan Lee",
		Email:    "jordan@acme.test",
		HireDate: "2025-06-02",
	})
	require.NoError(t, err)

	require.Len(t, outbox.created, 1)
	created := outbox.created[0]
	assert.Equal(t, events.EmployeeCreatedTopic, created.Topic)
	assert.Equal(t, resp.ID, created.AggregateID)
	assert.Equal(t, kafka.OutboxStatusPending, created.Status)

	var event events.EmployeeCreatedEvent
	require.NoError(t, json.Unmarshal(created.Payload, &event))
	assert.Equal(t, "employee_created", event.EventType)
	assert.Equal(t, companyID, event.CompanyID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(nil, newFakeRepo(), &fakeCounter{}, nil)

	_, err := svc.GetByID(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestGetDriversFiltersNonDrivers(t *testing.T) {
	repo := newFakeRepo()
	companyID := uuid.New()

	driver := &Employee{ID: uuid.New(), CompanyID: companyID, FullName: "Driver", IsDriver: true, Status: StatusActive}
	clerk := &Employee{ID: uuid.New(), CompanyID: companyID, FullName: "Clerk", Status: StatusActive}
	repo.employees[driver.ID.String()] = driver
	repo.employees[clerk.ID.String()] = clerk

	svc := NewService(nil, repo, &fakeCounter{}, nil)

	rows, err := svc.GetDrivers(context.Background(), companyID.String())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Driver", rows[0].FullName)
}
