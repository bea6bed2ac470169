package address

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository define a interface para operações de banco de dados de endereços
type Repository interface {
	Create(ctx context.Context, a *Address) error
	ListByUser(ctx context.Context, userID string) ([]Address, error)
	GetOwned(ctx context.Context, id, userID string) (*Address, error)
	Update(ctx context.Context, a *Address) error
	Delete(ctx context.Context, id, userID string) error
	ClearDefaults(ctx context.Context, userID string) error
}

// PostgresRepository implementa Repository usando PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{db: db}
}

const addressColumns = "id, user_id, street, city, state, zip_code, country, is_default, created_at"

func (r *PostgresRepository) Create(ctx context.Context, a *Address) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO addresses (id, user_id, street, city, state, zip_code, country, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, a.ID, a.UserID, a.Street, a.City, a.State, a.ZipCode, a.Country, a.IsDefault, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Address, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+addressColumns+` FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Street, &a.City, &a.State,
			&a.ZipCode, &a.Country, &a.IsDefault, &a.CreatedAt); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *PostgresRepository) GetOwned(ctx context.Context, id, userID string) (*Address, error) {
	var a Address
	err := r.db.QueryRow(ctx, `
		SELECT `+addressColumns+` FROM addresses WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&a.ID, &a.UserID, &a.Street, &a.City, &a.State,
		&a.ZipCode, &a.Country, &a.IsDefault, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to query address: %w", err)
	}
	return &a, nil
}

func (r *PostgresRepository) Update(ctx context.Context, a *Address) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE addresses
		SET street = $3, city = $4, state = $5, zip_code = $6, country = $7, is_default = $8
		WHERE id = $1 AND user_id = $2
	`, a.ID, a.UserID, a.Street, a.City, a.State, a.ZipCode, a.Country, a.IsDefault)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM addresses WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *PostgresRepository) ClearDefaults(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE addresses SET is_default = FALSE WHERE user_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear default addresses: %w", err)
	}
	return nil
}
