package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository define a interface para operações de banco de dados do carrinho
type Repository interface {
	// GetOrCreateCart busca o carrinho do usuário, criando um vazio se preciso
	GetOrCreateCart(ctx context.Context, userID string) (*Cart, error)

	// UpsertItem adiciona o produto ou soma a quantidade se já presente
	UpsertItem(ctx context.Context, cartID, productID string, quantity int) error

	// SetItemQuantity define a quantidade de um item existente
	SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error

	// RemoveItem tira o produto do carrinho
	RemoveItem(ctx context.Context, cartID, productID string) error
}

// PostgresRepository implementa Repository usando PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository cria uma nova instância de PostgresRepository
func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetOrCreateCart(ctx context.Context, userID string) (*Cart, error) {
	var cart Cart
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, created_at FROM carts WHERE user_id = $1
	`, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		_, err = r.db.Exec(ctx, `
			INSERT INTO carts (id, user_id, created_at) VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO NOTHING
		`, uuid.New().String(), userID, time.Now().UTC())
		if err == nil {
			// Relê a linha canônica: em disputa, o DO NOTHING pode ter
			// perdido para um insert concorrente
			err = r.db.QueryRow(ctx, `
				SELECT id, user_id, created_at FROM carts WHERE user_id = $1
			`, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.product_id, i.quantity, p.title, p.price
		FROM cart_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.cart_id = $1
	`, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	cart.Items = []Item{}
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.ProductTitle, &item.ProductPrice); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	return &cart, rows.Err()
}

func (r *PostgresRepository) UpsertItem(ctx context.Context, cartID, productID string, quantity int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`, uuid.New().String(), cartID, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) RemoveItem(ctx context.Context, cartID, productID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}
