package checkout

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository define a interface para operações de banco de dados do checkout
type Repository interface {
	// WithinTx executa fn dentro de uma transação: commit se fn retornar
	// nil, rollback em qualquer erro ou panic
	WithinTx(ctx context.Context, fn func(tx Tx) error) error

	// GetProductForUpdate lê preço e estoque do produto com lock pessimista
	// (SELECT FOR UPDATE); retorna pgx.ErrNoRows se o produto não existir
	GetProductForUpdate(ctx context.Context, tx Tx, productID string) (*ProductSnapshot, error)

	// DecrementStock decrementa o estoque condicionalmente
	// (WHERE stock >= quantity); retorna false se o estoque for insuficiente
	DecrementStock(ctx context.Context, tx Tx, productID string, quantity int) (bool, error)

	// CreateOrder persiste o pedido e suas linhas
	CreateOrder(ctx context.Context, tx Tx, order *Order) error

	// ListOrdersByUser busca os pedidos de um usuário, mais recentes primeiro
	ListOrdersByUser(ctx context.Context, userID string) ([]Order, error)
}

// Tx é o handle opaco da unidade de trabalho
type Tx interface {
	tx() pgx.Tx
}

// PostgresRepository implementa Repository usando PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository cria uma nova instância de PostgresRepository
func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{db: db}
}

type postgresTx struct {
	inner pgx.Tx
}

func (t *postgresTx) tx() pgx.Tx { return t.inner }

// WithinTx abre a transação e garante commit-on-success / rollback-on-error
// em todos os caminhos de saída, inclusive panic
func (r *PostgresRepository) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	pgTx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin checkout tx: %w", err)
	}
	defer pgTx.Rollback(ctx)

	if err := fn(&postgresTx{inner: pgTx}); err != nil {
		return err
	}

	if err := pgTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit checkout tx: %w", err)
	}
	return nil
}

// GetProductForUpdate obtém o produto com lock pessimista (FOR UPDATE).
// A leitura acontece na mesma transação que fará o decremento, nunca antes.
func (r *PostgresRepository) GetProductForUpdate(ctx context.Context, tx Tx, productID string) (*ProductSnapshot, error) {
	var snapshot ProductSnapshot
	err := tx.tx().QueryRow(ctx, `
		SELECT id, price, stock
		FROM products
		WHERE id = $1
		FOR UPDATE
	`, productID).Scan(&snapshot.ID, &snapshot.Price, &snapshot.Stock)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// DecrementStock aplica o decremento condicional; RowsAffected == 0 significa
// que outra transação consumiu o estoque primeiro
func (r *PostgresRepository) DecrementStock(ctx context.Context, tx Tx, productID string, quantity int) (bool, error) {
	tag, err := tx.tx().Exec(ctx, `
		UPDATE products
		SET stock = stock - $2,
		    updated_at = NOW()
		WHERE id = $1 AND stock >= $2
	`, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CreateOrder insere o pedido e as linhas dentro da mesma transação
func (r *PostgresRepository) CreateOrder(ctx context.Context, tx Tx, order *Order) error {
	_, err := tx.tx().Exec(ctx, `
		INSERT INTO orders (id, user_id, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, order.ID, order.UserID, order.Total, order.Status, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range order.Lines {
		_, err = tx.tx().Exec(ctx, `
			INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
		`, line.ID, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice)
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}
	return nil
}

// ListOrdersByUser busca os pedidos do usuário com suas linhas
func (r *PostgresRepository) ListOrdersByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, total, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	byID := map[string]int{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Lines = []OrderLine{}
		byID[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lineRows, err := r.db.Query(ctx, `
		SELECT l.id, l.order_id, l.product_id, l.quantity, l.unit_price
		FROM order_lines l
		JOIN orders o ON o.id = l.order_id
		WHERE o.user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var line OrderLine
		if err := lineRows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		if idx, ok := byID[line.OrderID]; ok {
			orders[idx].Lines = append(orders[idx].Lines, line)
		}
	}
	return orders, lineRows.Err()
}
