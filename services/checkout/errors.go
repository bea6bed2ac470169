package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrEmptyCheckout indica uma requisição de checkout sem itens
	ErrEmptyCheckout = errors.New("checkout requires at least one item")

	// ErrInvalidQuantity indica um item com quantidade não positiva
	ErrInvalidQuantity = errors.New("item quantity must be positive")

	// ErrConflict indica que a transação não pôde ser serializada
	// (deadlock, lock timeout, serialization failure); a chamada
	// inteira pode ser repetida pois nada foi persistido
	ErrConflict = errors.New("checkout could not be committed due to contention")

	// ErrStorageUnavailable indica falha de comunicação com o banco
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ProductNotFoundError indica que um item referencia um produto inexistente
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// InsufficientStockError indica estoque insuficiente para um item do checkout
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// pg error codes que indicam disputa por lock entre transações concorrentes
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// classifyTxError traduz erros de infraestrutura para a taxonomia do checkout.
// Erros de domínio (not found, estoque) passam intocados.
func classifyTxError(err error) error {
	if err == nil {
		return nil
	}

	var notFound *ProductNotFoundError
	var noStock *InsufficientStockError
	if errors.As(err, &notFound) || errors.As(err, &noStock) {
		return err
	}
	if errors.Is(err, ErrEmptyCheckout) || errors.Is(err, ErrInvalidQuantity) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return err
}
