package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"gitub.com/matheusmosca/ecommerce-api/services/auth"
)

// PostgresRepository implementa Repository reaproveitando as consultas de auth
type PostgresRepository struct {
	db   *pgxpool.Pool
	auth auth.Repository
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{db: db, auth: auth.NewRepository(db)}
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	return r.auth.GetUserByID(ctx, id)
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.auth.GetUserByEmail(ctx, email)
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, user *auth.User) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $2, email = $3, avatar_url = $4, phone = $5, updated_at = NOW()
		WHERE id = $1
	`, user.ID, user.Name, user.Email, user.AvatarURL, user.Phone)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
