package inventory

import (
	"context"
	"database/sql"
	"testing"

	inventoryerrors "go-logistics/internal/inventory/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	items       map[string]*Item
	adjustments []StockAdjustment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]*Item{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, item *Item) error {
	f.items[item.ID.String()] = item
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Item, error) {
	var rows []Item
	for _, item := range f.items {
		if item.CompanyID.String() == companyID {
			rows = append(rows, *item)
		}
	}
	return rows, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Item, error) {
	item, ok := f.items[id]
	if !ok || item.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeRepo) FindByIDForUpdate(ctx context.Context, companyID, id string) (*Item, error) {
	return f.FindByIDAndCompany(ctx, companyID, id)
}

func (f *fakeRepo) Update(ctx context.Context, item *Item) error {
	f.items[item.ID.String()] = item
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	if _, ok := f.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) CreateAdjustment(ctx context.Context, adj *StockAdjustment) error {
	f.adjustments = append(f.adjustments, *adj)
	return nil
}

func (f *fakeRepo) ListAdjustments(ctx context.Context, companyID, itemID string) ([]StockAdjustment, error) {
	var rows []StockAdjustment
	for _, adj := range f.adjustments {
		if adj.ItemID.String() == itemID {
			rows = append(rows, adj)
		}
	}
	return rows, nil
}

type fakeCounter struct {
	last int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.last++
	return f.last, nil
}

func seedItem(repo *fakeRepo, companyID uuid.UUID, qty int64) *Item {
	item := &Item{
		ID:           uuid.New(),
		CompanyID:    companyID,
		SKU:          "SKU-000001",
		Name:         "Pallet wrap",
		Unit:         "roll",
		Quantity:     qty,
		ReorderLevel: 5,
	}
	repo.items[item.ID.String()] = item
	return item
}

func TestCreateItemGeneratesSKUAndLedger(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeRepo()
	svc := NewService(db, repo, &fakeCounter{})

	resp, err := svc.Create(context.Background(), uuid.NewString(), CreateItemRequest{
		Name:     "Pallet wrap",
		Quantity: 40,
	})
	require.NoError(t, err)

	assert.Equal(t, "SKU-000001", resp.SKU)
	assert.Equal(t, int64(40), resp.Quantity)

	require.Len(t, repo.adjustments, 1)
	assert.Equal(t, AdjustmentReasonReceived, repo.adjustments[0].Reason)
	assert.Equal(t, int64(40), repo.adjustments[0].ResultQty)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStockAppliesDelta(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeRepo()
	companyID := uuid.New()
	item := seedItem(repo, companyID, 10)

	svc := NewService(db, repo, &fakeCounter{})

	resp, err := svc.AdjustStock(context.Background(), companyID.String(), item.ID.String(), AdjustStockRequest{
		Quantity: -4,
		Reason:   AdjustmentReasonDispatch,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), resp.Quantity)
	require.Len(t, repo.adjustments, 1)
	assert.Equal(t, int64(-4), repo.adjustments[0].Quantity)
	assert.Equal(t, int64(6), repo.adjustments[0].ResultQty)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := newFakeRepo()
	companyID := uuid.New()
	item := seedItem(repo, companyID, 3)

	svc := NewService(db, repo, &fakeCounter{})

	_, err = svc.AdjustStock(context.Background(), companyID.String(), item.ID.String(), AdjustStockRequest{
		Quantity: -4,
		Reason:   AdjustmentReasonDispatch,
	})
	assert.ErrorIs(t, err, inventoryerrors.ErrInsufficientStock)

	// quantity untouched and nothing in the ledger
	assert.Equal(t, int64(3), item.Quantity)
	assert.Empty(t, repo.adjustments)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStockZeroDelta(t *testing.T) {
	svc := NewService(nil, newFakeRepo(), &fakeCounter{})

	_, err := svc.AdjustStock(context.Background(), uuid.NewString(), uuid.NewString(), AdjustStockRequest{
		Quantity: 0,
		Reason:   AdjustmentReasonCorrected,
	})
	assert.ErrorIs(t, err, inventoryerrors.ErrZeroAdjustment)
}

func TestAdjustStockUnknownItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := NewService(db, newFakeRepo(), &fakeCounter{})

	_, err = svc.AdjustStock(context.Background(), uuid.NewString(), uuid.NewString(), AdjustStockRequest{
		Quantity: 1,
		Reason:   AdjustmentReasonReceived,
	})
	assert.ErrorIs(t, err, inventoryerrors.ErrItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLowStockFlag(t *testing.T) {
	repo := newFakeRepo()
	companyID := uuid.New()
	item := seedItem(repo, companyID, 5)

	svc := NewService(nil, repo, &fakeCounter{})

	resp, err := svc.GetByID(context.Background(), companyID.String(), item.ID.String())
	require.NoError(t, err)
	assert.True(t, resp.LowStock)
}
