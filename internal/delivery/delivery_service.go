package delivery

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-logistics/internal/customer"
	deliveryerrors "go-logistics/internal/delivery/errors"
	"go-logistics/internal/employee"
	"go-logistics/internal/events"
	"go-logistics/internal/geo"
	"go-logistics/internal/messaging/kafka"
	"go-logistics/internal/shared/contextutil"
	"go-logistics/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Broadcaster pushes frames to the delivery's real-time subscribers.
type Broadcaster interface {
	Broadcast(ctx context.Context, deliveryID string, payload any)
}

// VehicleGuard rejects assignment of a vehicle that is unavailable or
// already held by another active delivery.
type VehicleGuard interface {
	EnsureAssignable(ctx context.Context, companyID, vehicleID string) error
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateDeliveryRequest) (DeliveryResponse, error)
	GetAll(ctx context.Context, companyID string) ([]DeliveryResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DeliveryResponse, error)
	Transition(ctx context.Context, companyID, id string, req TransitionRequest) (DeliveryResponse, error)
	UpdateLocation(ctx context.Context, companyID, id string, req LocationUpdateRequest) (DeliveryResponse, error)
	ListCheckpoints(ctx context.Context, companyID, id string) ([]CheckpointResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	customers CustomerDirectory
	drivers   DriverDirectory
	vehicles  VehicleGuard
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	estimator geo.Estimator
	hub       Broadcaster
	logger    *zap.Logger
}

// CustomerDirectory resolves customers owned by the tenant.
type CustomerDirectory interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*customer.Customer, error)
}

// DriverDirectory resolves employees for driver assignment.
type DriverDirectory interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

func NewService(
	db *sql.DB,
	repo Repository,
	customers CustomerDirectory,
	drivers DriverDirectory,
	vehicles VehicleGuard,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	estimator geo.Estimator,
	hub Broadcaster,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("delivery.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("delivery.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		customers: customers,
		drivers:   drivers,
		vehicles:  vehicles,
		counter:   counterRepo,
		outbox:    outboxRepo,
		estimator: estimator,
		hub:       hub,
		logger:    l,
	}
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// isAllowedStatusTransition is the single source of truth for the
// delivery status graph. Terminal states have no outgoing edges.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return false
	}

	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusPickupInProgress || targetStatus == StatusCancelled
	case StatusPickupInProgress:
		return targetStatus == StatusInTransit || targetStatus == StatusCancelled
	case StatusInTransit:
		return targetStatus == StatusDelivered ||
			targetStatus == StatusReturned ||
			targetStatus == StatusFailed
	default:
		return false
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateDeliveryRequest) (DeliveryResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.OriginLat == nil || req.OriginLng == nil || req.DestLat == nil || req.DestLng == nil {
		return DeliveryResponse{}, deliveryerrors.ErrInvalidCoordinates
	}
	originLat, originLng := *req.OriginLat, *req.OriginLng
	destLat, destLng := *req.DestLat, *req.DestLng

	if !validCoordinates(originLat, originLng) || !validCoordinates(destLat, destLng) {
		return DeliveryResponse{}, deliveryerrors.ErrInvalidCoordinates
	}

	if _, err := s.customers.FindByIDAndCompany(ctx, companyID, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeliveryResponse{}, deliveryerrors.ErrCustomerNotFound
		}
		return DeliveryResponse{}, err
	}

	var driverID *uuid.UUID
	if req.DriverID != "" {
		drv, err := s.drivers.FindByIDAndCompany(ctx, companyID, req.DriverID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return DeliveryResponse{}, deliveryerrors.ErrDriverNotFound
			}
			return DeliveryResponse{}, err
		}
		if !drv.IsDriver {
			return DeliveryResponse{}, deliveryerrors.ErrNotADriver
		}
		driverID = &drv.ID
	}

	var vehicleID *uuid.UUID
	if req.VehicleID != "" {
		if err := s.vehicles.EnsureAssignable(ctx, companyID, req.VehicleID); err != nil {
			return DeliveryResponse{}, err
		}
		vid := uuid.MustParse(req.VehicleID)
		vehicleID = &vid
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create delivery begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DeliveryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	nextVal, err := s.counter.GetNextValue(ctx, companyID, "delivery_tracking")
	if err != nil {
		return DeliveryResponse{}, err
	}

	estimate := s.estimator.EstimateRoute(ctx,
		geo.Point{Lat: originLat, Lng: originLng},
		geo.Point{Lat: destLat, Lng: destLng},
	)

	now := time.Now().UTC()
	eta := now.Add(estimate.Duration)

	d := &Delivery{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(companyID),
		TrackingNumber: fmt.Sprintf("DLV-%06d", nextVal),
		CustomerID:     uuid.MustParse(req.CustomerID),
		DriverID:       driverID,
		VehicleID:      vehicleID,
		OriginAddress:  req.OriginAddress,
		OriginLat:      originLat,
		OriginLng:      originLng,
		DestAddress:    req.DestAddress,
		DestLat:        destLat,
		DestLng:        destLng,
		Status:         StatusPending,
		Notes:          req.Notes,
		DistanceMeters: estimate.DistanceMeters,
		EstimatedAt:    &now,
		ETA:            &eta,
	}

	if err := qtx.Create(ctx, d); err != nil {
		s.logger.Error("create delivery persist failed", zap.Error(err))
		return DeliveryResponse{}, err
	}

	if err := qtx.CreateCheckpoint(ctx, &Checkpoint{
		ID:         uuid.New(),
		CompanyID:  d.CompanyID,
		DeliveryID: d.ID,
		Status:     StatusPending,
		Lat:        &d.OriginLat,
		Lng:        &d.OriginLng,
		Notes:      "delivery created",
	}); err != nil {
		return DeliveryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DeliveryResponse{}, err
	}

	s.logger.Info("create delivery success",
		zap.String("request_id", rid),
		zap.String("delivery_id", d.ID.String()),
		zap.String("tracking_number", d.TrackingNumber),
		zap.Bool("eta_fallback", estimate.Fallback),
	)
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]DeliveryResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	res := make([]DeliveryResponse, len(rows))
	for i, d := range rows {
		res[i] = mapToResponse(d)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (DeliveryResponse, error) {
	d, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeliveryResponse{}, deliveryerrors.ErrDeliveryNotFound
		}
		return DeliveryResponse{}, err
	}
	return mapToResponse(*d), nil
}

// Transition moves the delivery along the status graph. The status
// update, the checkpoint and the outbox events commit atomically.
func (s *service) Transition(ctx context.Context, companyID, id string, req TransitionRequest) (DeliveryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition begin tx failed", zap.Error(err))
		return DeliveryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeliveryResponse{}, deliveryerrors.ErrDeliveryNotFound
		}
		return DeliveryResponse{}, err
	}

	fromStatus := d.Status
	if !isAllowedStatusTransition(fromStatus, req.Status) {
		s.logger.Warn("transition rejected",
			zap.String("delivery_id", id),
			zap.String("from_status", fromStatus),
			zap.String("to_status", req.Status),
		)
		return DeliveryResponse{}, deliveryerrors.ErrInvalidStatusTransition
	}

	if req.Lat != nil && req.Lng != nil && !validCoordinates(*req.Lat, *req.Lng) {
		return DeliveryResponse{}, deliveryerrors.ErrInvalidCoordinates
	}

	now := time.Now().UTC()
	d.Status = req.Status
	if req.Lat != nil && req.Lng != nil {
		d.LastLat = req.Lat
		d.LastLng = req.Lng
		d.LastPingAt = &now
	}

	if err := qtx.Update(ctx, d); err != nil {
		return DeliveryResponse{}, err
	}

	if err := qtx.CreateCheckpoint(ctx, &Checkpoint{
		ID:         uuid.New(),
		CompanyID:  d.CompanyID,
		DeliveryID: d.ID,
		Status:     req.Status,
		Lat:        req.Lat,
		Lng:        req.Lng,
		Notes:      req.Notes,
	}); err != nil {
		return DeliveryResponse{}, err
	}

	if err := s.queueStatusEvents(ctx, tx, d, fromStatus, now); err != nil {
		return DeliveryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DeliveryResponse{}, err
	}

	s.broadcast(ctx, d, "status")

	s.logger.Info("transition success",
		zap.String("delivery_id", id),
		zap.String("from_status", fromStatus),
		zap.String("to_status", d.Status),
	)
	return mapToResponse(*d), nil
}

func (s *service) queueStatusEvents(ctx context.Context, tx *sql.Tx, d *Delivery, fromStatus string, now time.Time) error {
	if s.outbox == nil {
		return nil
	}

	outboxRepo := s.outbox.WithTx(tx)
	rid := contextutil.GetRequestID(ctx)

	statusEvent := events.DeliveryStatusChangedEvent{
		EventType:  "delivery_status_changed",
		DeliveryID: d.ID.String(),
		CompanyID:  d.CompanyID.String(),
		FromStatus: fromStatus,
		ToStatus:   d.Status,
		OccurredAt: now,
	}
	payload, err := json.Marshal(statusEvent)
	if err != nil {
		return err
	}
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "delivery",
		AggregateID:   d.ID.String(),
		EventType:     statusEvent.EventType,
		Topic:         events.DeliveryStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return err
	}

	if d.Status != StatusDelivered {
		return nil
	}

	reportEvent := events.DeliveryReportRequestedEvent{
		EventType:  "delivery_report_requested",
		DeliveryID: d.ID.String(),
		CompanyID:  d.CompanyID.String(),
		OccurredAt: now,
	}
	reportPayload, err := json.Marshal(reportEvent)
	if err != nil {
		return err
	}
	return outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "delivery",
		AggregateID:   d.ID.String(),
		EventType:     reportEvent.EventType,
		Topic:         events.DeliveryReportRequestedTopic,
		Payload:       reportPayload,
		Status:        kafka.OutboxStatusPending,
	})
}

// UpdateLocation records a driver ping. Terminal deliveries reject
// pings outright. Each accepted ping refreshes the ETA from the current
// position and pushes a location frame to subscribers.
func (s *service) UpdateLocation(ctx context.Context, companyID, id string, req LocationUpdateRequest) (DeliveryResponse, error) {
	if req.Lat == nil || req.Lng == nil || !validCoordinates(*req.Lat, *req.Lng) {
		return DeliveryResponse{}, deliveryerrors.ErrInvalidCoordinates
	}
	lat, lng := *req.Lat, *req.Lng

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeliveryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeliveryResponse{}, deliveryerrors.ErrDeliveryNotFound
		}
		return DeliveryResponse{}, err
	}

	if IsTerminalStatus(d.Status) {
		return DeliveryResponse{}, deliveryerrors.ErrDeliveryTerminal
	}

	estimate := s.estimator.EstimateRoute(ctx,
		geo.Point{Lat: lat, Lng: lng},
		geo.Point{Lat: d.DestLat, Lng: d.DestLng},
	)

	now := time.Now().UTC()
	eta := now.Add(estimate.Duration)

	d.LastLat = &lat
	d.LastLng = &lng
	d.LastPingAt = &now
	d.EstimatedAt = &now
	d.ETA = &eta

	if err := qtx.Update(ctx, d); err != nil {
		return DeliveryResponse{}, err
	}

	if err := qtx.CreateCheckpoint(ctx, &Checkpoint{
		ID:         uuid.New(),
		CompanyID:  d.CompanyID,
		DeliveryID: d.ID,
		Status:     d.Status,
		Lat:        &lat,
		Lng:        &lng,
		Notes:      req.Notes,
	}); err != nil {
		return DeliveryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DeliveryResponse{}, err
	}

	s.broadcast(ctx, d, "location")
	return mapToResponse(*d), nil
}

func (s *service) ListCheckpoints(ctx context.Context, companyID, id string) ([]CheckpointResponse, error) {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, deliveryerrors.ErrDeliveryNotFound
		}
		return nil, err
	}

	rows, err := s.repo.ListCheckpoints(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	res := make([]CheckpointResponse, len(rows))
	for i, cp := range rows {
		res[i] = CheckpointResponse{
			ID:        cp.ID.String(),
			Status:    cp.Status,
			Lat:       cp.Lat,
			Lng:       cp.Lng,
			Notes:     cp.Notes,
			CreatedAt: cp.CreatedAt,
		}
	}
	return res, nil
}

func (s *service) broadcast(ctx context.Context, d *Delivery, frameType string) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(ctx, d.ID.String(), StatusFrame{
		Type:       frameType,
		DeliveryID: d.ID.String(),
		Status:     d.Status,
		Lat:        d.LastLat,
		Lng:        d.LastLng,
		ETA:        d.ETA,
		SentAt:     time.Now().UTC(),
	})
}

func mapToResponse(d Delivery) DeliveryResponse {
	resp := DeliveryResponse{
		ID:             d.ID.String(),
		CompanyID:      d.CompanyID.String(),
		TrackingNumber: d.TrackingNumber,
		CustomerID:     d.CustomerID.String(),
		OriginAddress:  d.OriginAddress,
		OriginLat:      d.OriginLat,
		OriginLng:      d.OriginLng,
		DestAddress:    d.DestAddress,
		DestLat:        d.DestLat,
		DestLng:        d.DestLng,
		Status:         d.Status,
		Notes:          d.Notes,
		DistanceMeters: d.DistanceMeters,
		ETA:            d.ETA,
		LastLat:        d.LastLat,
		LastLng:        d.LastLng,
		LastPingAt:     d.LastPingAt,
		CreatedAt:      d.CreatedAt,
	}
	if d.DriverID != nil {
		resp.DriverID = d.DriverID.String()
	}
	if d.VehicleID != nil {
		resp.VehicleID = d.VehicleID.String()
	}
	return resp
}
