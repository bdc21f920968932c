package delivery

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-logistics/internal/customer"
	deliveryerrors "go-logistics/internal/delivery/errors"
	"go-logistics/internal/employee"
	"go-logistics/internal/events"
	"go-logistics/internal/geo"
	"go-logistics/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	deliveries  map[string]*Delivery
	checkpoints []Checkpoint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{deliveries: map[string]*Delivery{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, d *Delivery) error {
	f.deliveries[d.ID.String()] = d
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Delivery, error) {
	var rows []Delivery
	for _, d := range f.deliveries {
		if d.CompanyID.String() == companyID {
			rows = append(rows, *d)
		}
	}
	return rows, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Delivery, error) {
	d, ok := f.deliveries[id]
	if !ok || d.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (f *fakeRepo) FindByIDForUpdate(ctx context.Context, companyID, id string) (*Delivery, error) {
	return f.FindByIDAndCompany(ctx, companyID, id)
}

func (f *fakeRepo) Update(ctx context.Context, d *Delivery) error {
	f.deliveries[d.ID.String()] = d
	return nil
}

func (f *fakeRepo) CreateCheckpoint(ctx context.Context, cp *Checkpoint) error {
	f.checkpoints = append(f.checkpoints, *cp)
	return nil
}

func (f *fakeRepo) ListCheckpoints(ctx context.Context, companyID, deliveryID string) ([]Checkpoint, error) {
	var rows []Checkpoint
	for _, cp := range f.checkpoints {
		if cp.DeliveryID.String() == deliveryID {
			rows = append(rows, cp)
		}
	}
	return rows, nil
}

func (f *fakeRepo) FindOverdue(ctx context.Context, cutoff time.Time, limit int) ([]Delivery, error) {
	var rows []Delivery
	for _, d := range f.deliveries {
		if d.ETA != nil && d.ETA.Before(cutoff) && !IsTerminalStatus(d.Status) && d.LateNotifiedAt == nil {
			rows = append(rows, *d)
		}
	}
	return rows, nil
}

type fakeCustomers struct {
	customers map[string]*customer.Customer
}

func (f *fakeCustomers) FindByIDAndCompany(ctx context.Context, companyID, id string) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

type fakeDrivers struct {
	employees map[string]*employee.Employee
}

func (f *fakeDrivers) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

type fakeVehicles struct {
	err error
}

func (f *fakeVehicles) EnsureAssignable(ctx context.Context, companyID, vehicleID string) error {
	return f.err
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
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error                  { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type fakeEstimator struct {
	estimate geo.RouteEstimate
}

func (f *fakeEstimator) EstimateRoute(ctx context.Context, from, to geo.Point) geo.RouteEstimate {
	return f.estimate
}

type fakeHub struct {
	frames []StatusFrame
}

func (f *fakeHub) Broadcast(ctx context.Context, deliveryID string, payload any) {
	if frame, ok := payload.(StatusFrame); ok {
		f.frames = append(f.frames, frame)
	}
}

type fixture struct {
	repo      *fakeRepo
	customers *fakeCustomers
	drivers   *fakeDrivers
	vehicles  *fakeVehicles
	outbox    *fakeOutbox
	hub       *fakeHub
	svc       Service
	companyID uuid.UUID
}

func newFixture(t *testing.T, db *sql.DB) *fixture {
	t.Helper()

	f := &fixture{
		repo:      newFakeRepo(),
		customers: &fakeCustomers{customers: map[string]*customer.Customer{}},
		drivers:   &fakeDrivers{employees: map[string]*employee.Employee{}},
		vehicles:  &fakeVehicles{},
		outbox:    &fakeOutbox{},
		hub:       &fakeHub{},
		companyID: uuid.New(),
	}
	f.svc = NewService(
		db,
		f.repo,
		f.customers,
		f.drivers,
		f.vehicles,
		&fakeCounter{},
		f.outbox,
		&fakeEstimator{estimate: geo.RouteEstimate{DistanceMeters: 120000, Duration: 3 * time.Hour}},
		f.hub,
	)
	return f
}

func (f *fixture) seedCustomer() *customer.Customer {
	c := &customer.Customer{ID: uuid.New(), CompanyID: f.companyID, Name: "Globex"}
	f.customers.customers[c.ID.String()] = c
	return c
}

func (f *fixture) seedDelivery(status string) *Delivery {
	eta := time.Now().UTC().Add(2 * time.Hour)
	d := &Delivery{
		ID:             uuid.New(),
		CompanyID:      f.companyID,
		TrackingNumber: "DLV-000001",
		CustomerID:     uuid.New(),
		OriginLat:      -6.2,
		OriginLng:      106.8,
		DestLat:        -6.9,
		DestLng:        107.6,
		Status:         status,
		ETA:            &eta,
	}
	f.repo.deliveries[d.ID.String()] = d
	return d
}

func f64(v float64) *float64 { return &v }

func TestIsAllowedStatusTransition(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusPending, StatusPickupInProgress, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInTransit, false},
		{StatusPending, StatusDelivered, false},
		{StatusPickupInProgress, StatusInTransit, true},
		{StatusPickupInProgress, StatusCancelled, true},
		{StatusPickupInProgress, StatusDelivered, false},
		{StatusInTransit, StatusDelivered, true},
		{StatusInTransit, StatusReturned, true},
		{StatusInTransit, StatusFailed, true},
		{StatusInTransit, StatusCancelled, false},
		{StatusDelivered, StatusInTransit, false},
		{StatusReturned, StatusPending, false},
		{StatusFailed, StatusInTransit, false},
		{StatusCancelled, StatusPickupInProgress, false},
		{StatusInTransit, StatusInTransit, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.allowed, isAllowedStatusTransition(tt.from, tt.to))
		})
	}
}

func TestCreateDeliveryEstimatesRoute(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	f := newFixture(t, db)
	cust := f.seedCustomer()

	resp, err := f.svc.Create(context.Background(), f.companyID.String(), CreateDeliveryRequest{
		CustomerID:    cust.ID.String(),
		OriginAddress: "Warehouse 4, Jakarta",
		OriginLat:     f64(-6.2),
		OriginLng:     f64(106.8),
		DestAddress:   "Jl. Braga 12, Bandung",
		DestLat:       f64(-6.9),
		DestLng:       f64(107.6),
	})
	require.NoError(t, err)

	assert.Equal(t, "DLV-000001", resp.TrackingNumber)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, 120000.0, resp.DistanceMeters)
	require.NotNil(t, resp.ETA)
	assert.True(t, resp.ETA.After(time.Now().UTC().Add(2*time.Hour)))

	// one pending checkpoint at the origin
	require.Len(t, f.repo.checkpoints, 1)
	assert.Equal(t, StatusPending, f.repo.checkpoints[0].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDeliveryUnknownCustomer(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	f := newFixture(t, db)

	_, err = f.svc.Create(context.Background(), f.companyID.String(), CreateDeliveryRequest{
		CustomerID:    uuid.NewString(),
		OriginAddress: "A",
		OriginLat:     f64(1), OriginLng: f64(1),
		DestAddress: "B",
		DestLat:     f64(2), DestLng: f64(2),
	})
	assert.ErrorIs(t, err, deliveryerrors.ErrCustomerNotFound)
}

func TestCreateDeliveryNonDriverRejected(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	f := newFixture(t, db)
	cust := f.seedCustomer()

	clerk := &employee.Employee{ID: uuid.New(), CompanyID: f.companyID, FullName: "Clerk"}
	f.drivers.employees[clerk.ID.String()] = clerk

	_, err = f.svc.Create(context.Background(), f.companyID.String(), CreateDeliveryRequest{
		CustomerID:    cust.ID.String(),
		DriverID:      clerk.ID.String(),
		OriginAddress: "A",
		OriginLat:     f64(1), OriginLng: f64(1),
		DestAddress: "B",
		DestLat:     f64(2), DestLng: f64(2),
	})
	assert.ErrorIs(t, err, deliveryerrors.ErrNotADriver)
}

func TestCreateDeliveryInvalidCoordinates(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	f := newFixture(t, db)

	_, err = f.svc.Create(context.Background(), f.companyID.String(), CreateDeliveryRequest{
		CustomerID:    uuid.NewString(),
		OriginAddress: "A",
		OriginLat:     f64(91), OriginLng: f64(0),
		DestAddress: "B",
		DestLat:     f64(0), DestLng: f64(0),
	})
	assert.ErrorIs(t, err, deliveryerrors.ErrInvalidCoordinates)
}

func TestTransitionHappyPathProducesCheckpoints(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	f := newFixture(t, db)
	d := f.seedDelivery(StatusPending)

	steps := []string{StatusPickupInProgress, StatusInTransit, StatusDelivered}
	for _, target := range steps {
		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := f.svc.Transition(context.Background(), f.companyID.String(), d.ID.String(), TransitionRequest{
			Status: target,
		})
		require.NoError(t, err, "transition to %s", target)
		assert.Equal(t, target, resp.Status)
	}

	// one checkpoint per accepted transition
	require.Len(t, f.repo.checkpoints, 3)
	assert.Equal(t, StatusDelivered, f.repo.checkpoints[2].Status)

	// one broadcast frame per transition
	require.Len(t, f.hub.frames, 3)
	assert.Equal(t, "status", f.hub.frames[0].Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionRejectsSkippingStates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	f := newFixture(t, db)
	d := f.seedDelivery(StatusPending)

	_, err = f.svc.Transition(context.Background(), f.companyID.String(), d.ID.String(), TransitionRequest{
		Status: StatusDelivered,
	})
	assert.ErrorIs(t, err, deliveryerrors.ErrInvalidStatusTransition)

	assert.Equal(t, StatusPending, d.Status)
	assert.Empty(t, f.repo.checkpoints)
	assert.Empty(t, f.outbox.created)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionEmitsStatusChangedEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	f := newFixture(t, db)
	d := f.seedDelivery(StatusPending)

	_, err = f.svc.Transition(context.Background(), f.companyID.String(), d.ID.String(), TransitionRequest{
		Status: StatusPickupInProgress,
	})
	require.NoError(t, err)

	require.Len(t, f.outbox.created, 1)
	created := f.outbox.created[0]
	assert.Equal(t, events.DeliveryStatusChangedTopic, created.Topic)

	var event events.DeliveryStatusChangedEvent
	require.NoError(t, json.Unmarshal(created.Payload, &event))
	assert.Equal(t, StatusPending, event.FromStatus)
	assert.Equal(t, StatusPickupInProgress, event.ToStatus)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveredEmitsReportRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	f := newFixture(t, db)
	d := f.seedDelivery(StatusInTransit)

	_, err = f.svc.Transition(context.Background(), f.companyID.String(), d.ID.String(), TransitionRequest{
		Status: StatusDelivered,
	})
	require.NoError(t, err)

	require.Len(t, f.outbox.created, 2)
	assert.Equal(t, events.DeliveryStatusChangedTopic, f.outbox.created[0].Topic)
	assert.Equal(t, events.DeliveryReportRequestedTopic, f.outbox.created[1].Topic)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLocationRefreshesETA(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	f := newFixture(t, db)
	d := f.seedDelivery(StatusInTransit)
	staleETA := *d.ETA

	resp, err := f.svc.UpdateLocation(context.Background(), f.companyID.String(), d.ID.String(), LocationUpdateRequest{
		Lat: f64(-6.5),
		Lng: f64(107.1),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.LastLat)
	assert.Equal(t, -6.5, *resp.LastLat)
	require.NotNil(t, resp.ETA)
	assert.NotEqual(t, staleETA, *resp.ETA)

	// ping produces a checkpoint in the current status
	require.Len(t, f.repo.checkpoints, 1)
	assert.Equal(t, StatusInTransit, f.repo.checkpoints[0].Status)

	// and a location frame
	require.Len(t, f.hub.frames, 1)
	assert.Equal(t, "location", f.hub.frames[0].Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLocationRejectedInTerminalState(t *testing.T) {
	for _, status := range []string{StatusDelivered, StatusReturned, StatusFailed, StatusCancelled} {
		t.Run(status, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectBegin()
			mock.ExpectRollback()

			f := newFixture(t, db)
			d := f.seedDelivery(status)

			_, err = f.svc.UpdateLocation(context.Background(), f.companyID.String(), d.ID.String(), LocationUpdateRequest{
				Lat: f64(1), Lng: f64(1),
			})
			assert.ErrorIs(t, err, deliveryerrors.ErrDeliveryTerminal)
			assert.Empty(t, f.repo.checkpoints)
		})
	}
}

func TestListCheckpointsUnknownDelivery(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	f := newFixture(t, db)

	_, err = f.svc.ListCheckpoints(context.Background(), f.companyID.String(), uuid.NewString())
	assert.ErrorIs(t, err, deliveryerrors.ErrDeliveryNotFound)
}
