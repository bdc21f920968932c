package delivery

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Transitions lock the delivery row with FOR UPDATE; the lock only
// serializes concurrent updates if the statement runs on the caller's
// transaction, so WithTx must bind the gorm session to it.
func TestWithTxBindsStatementsToTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	repo := NewRepository(gormDB).(*repository)

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	qtx := repo.WithTx(tx).(*repository)
	assert.Same(t, tx, qtx.db.Statement.ConnPool)
	assert.NotSame(t, tx, repo.db.Statement.ConnPool)
}
