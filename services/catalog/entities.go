package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto do catálogo
type Product struct {
	ID          string          `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	Rating      decimal.Decimal `json:"rating" db:"rating"`
	CategoryID  *string         `json:"category_id,omitempty" db:"category_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// Category representa uma categoria, com hierarquia opcional via ParentID
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ParentID  *string   `json:"parent_id,omitempty" db:"parent_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProductFilter são os critérios opcionais da listagem de produtos
type ProductFilter struct {
	CategoryID *string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	MinRating  *decimal.Decimal
	Search     string
}

var (
	// ErrProductNotFound indica produto inexistente
	ErrProductNotFound = errors.New("product not found")

	// ErrCategoryNotFound indica categoria inexistente
	ErrCategoryNotFound = errors.New("category not found")

	// ErrParentCategoryNotFound indica parent_id apontando para categoria inexistente
	ErrParentCategoryNotFound = errors.New("parent category not found")
)
