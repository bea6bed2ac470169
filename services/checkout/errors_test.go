package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyTxError(t *testing.T) {
	notFound := &ProductNotFoundError{ProductID: "P1"}
	noStock := &InsufficientStockError{ProductID: "P1", Requested: 3, Available: 1}

	t.Run("domain errors pass through", func(t *testing.T) {
		assert.Equal(t, notFound, classifyTxError(notFound))
		assert.Equal(t, noStock, classifyTxError(noStock))
		assert.ErrorIs(t, classifyTxError(ErrEmptyCheckout), ErrEmptyCheckout)
	})

	t.Run("serialization failure maps to conflict", func(t *testing.T) {
		err := classifyTxError(fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgSerializationFailure}))
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("deadlock maps to conflict", func(t *testing.T) {
		err := classifyTxError(fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgDeadlockDetected}))
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("lock timeout maps to conflict", func(t *testing.T) {
		err := classifyTxError(&pgconn.PgError{Code: pgLockNotAvailable})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("deadline exceeded maps to conflict", func(t *testing.T) {
		err := classifyTxError(fmt.Errorf("query: %w", context.DeadlineExceeded))
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		plain := fmt.Errorf("boom")
		assert.Equal(t, plain, classifyTxError(plain))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, classifyTxError(nil))
	})
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{ProductID: "P1", Requested: 3, Available: 2}
	assert.Equal(t, "insufficient stock for product P1: requested 3, available 2", err.Error())
}

func TestProductNotFoundErrorMessage(t *testing.T) {
	err := &ProductNotFoundError{ProductID: "P2"}
	assert.Equal(t, "product not found: P2", err.Error())
}
