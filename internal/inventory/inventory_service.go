package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	inventoryerrors "go-logistics/internal/inventory/errors"
	"go-logistics/internal/shared/contextutil"
	"go-logistics/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateItemRequest) (ItemResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ItemResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ItemResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateItemRequest) (ItemResponse, error)
	Delete(ctx context.Context, companyID, id string) error

	AdjustStock(ctx context.Context, companyID, id string, req AdjustStockRequest) (ItemResponse, error)
	ListAdjustments(ctx context.Context, companyID, id string) ([]StockAdjustmentResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("inventory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("inventory.service")
	}
	return &service{db: db, repo: repo, counter: counterRepo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateItemRequest) (ItemResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ItemResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.SKU == "" {
		nextVal, err := s.counter.GetNextValue(ctx, companyID, "inventory_sku")
		if err != nil {
			s.logger.Error("create item generate sku failed", zap.Error(err))
			return ItemResponse{}, err
		}
		req.SKU = fmt.Sprintf("SKU-%06d", nextVal)
	}

	unit := req.Unit
	if unit == "" {
		unit = "unit"
	}

	item := &Item{
		ID:           uuid.New(),
		CompanyID:    uuid.MustParse(companyID),
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		Unit:         unit,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		Location:     req.Location,
	}

	if err := qtx.Create(ctx, item); err != nil {
		s.logger.Error("create item persist failed", zap.Error(err))
		return ItemResponse{}, mapRepositoryError(err)
	}

	if item.Quantity > 0 {
		if err := qtx.CreateAdjustment(ctx, &StockAdjustment{
			ID:        uuid.New(),
			CompanyID: item.CompanyID,
			ItemID:    item.ID,
			Quantity:  item.Quantity,
			Reason:    AdjustmentReasonReceived,
			Notes:     "initial stock",
			ResultQty: item.Quantity,
		}); err != nil {
			return ItemResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ItemResponse{}, err
	}

	s.logger.Info("create item success",
		zap.String("request_id", rid),
		zap.String("item_id", item.ID.String()),
		zap.String("sku", item.SKU),
	)
	return mapToResponse(*item), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ItemResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]ItemResponse, len(rows))
	for i, item := range rows {
		res[i] = mapToResponse(item)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ItemResponse, error) {
	item, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*item), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateItemRequest) (ItemResponse, error) {
	item, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}

	item.Name = req.Name
	item.Description = req.Description
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	item.ReorderLevel = req.ReorderLevel
	item.Location = req.Location

	if err := s.repo.Update(ctx, item); err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update item success", zap.String("item_id", id))
	return mapToResponse(*item), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("delete item success", zap.String("item_id", id))
	return nil
}

// AdjustStock applies a signed quantity delta under a row lock. The
// resulting quantity is never allowed below zero; a violating request
// rolls the whole adjustment back.
func (s *service) AdjustStock(ctx context.Context, companyID, id string, req AdjustStockRequest) (ItemResponse, error) {
	if req.Quantity == 0 {
		return ItemResponse{}, inventoryerrors.ErrZeroAdjustment
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ItemResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	item, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}

	result := item.Quantity + req.Quantity
	if result < 0 {
		s.logger.Warn("stock adjustment rejected",
			zap.String("item_id", id),
			zap.Int64("current", item.Quantity),
			zap.Int64("delta", req.Quantity),
		)
		return ItemResponse{}, inventoryerrors.ErrInsufficientStock
	}

	item.Quantity = result
	if err := qtx.Update(ctx, item); err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}

	if err := qtx.CreateAdjustment(ctx, &StockAdjustment{
		ID:        uuid.New(),
		CompanyID: item.CompanyID,
		ItemID:    item.ID,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		Notes:     req.Notes,
		ResultQty: result,
	}); err != nil {
		return ItemResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ItemResponse{}, err
	}

	s.logger.Info("stock adjusted",
		zap.String("item_id", id),
		zap.Int64("delta", req.Quantity),
		zap.Int64("result_qty", result),
		zap.String("reason", req.Reason),
	)
	return mapToResponse(*item), nil
}

func (s *service) ListAdjustments(ctx context.Context, companyID, id string) ([]StockAdjustmentResponse, error) {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return nil, mapRepositoryError(err)
	}

	rows, err := s.repo.ListAdjustments(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	res := make([]StockAdjustmentResponse, len(rows))
	for i, adj := range rows {
		res[i] = StockAdjustmentResponse{
			ID:        adj.ID.String(),
			ItemID:    adj.ItemID.String(),
			Quantity:  adj.Quantity,
			Reason:    adj.Reason,
			Notes:     adj.Notes,
			ResultQty: adj.ResultQty,
			CreatedAt: adj.CreatedAt,
		}
	}
	return res, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inventoryerrors.ErrItemNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return inventoryerrors.ErrSKUAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return inventoryerrors.ErrSKUAlreadyExists
	}

	return err
}

func mapToResponse(item Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID.String(),
		CompanyID:    item.CompanyID.String(),
		SKU:          item.SKU,
		Name:         item.Name,
		Description:  item.Description,
		Unit:         item.Unit,
		Quantity:     item.Quantity,
		ReorderLevel: item.ReorderLevel,
		Location:     item.Location,
		LowStock:     item.Quantity <= item.ReorderLevel,
	}
}
