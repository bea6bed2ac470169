package cart

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Cart é o agregado de carrinho do usuário (um por usuário)
type Cart struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Item é um item do carrinho, enriquecido com dados atuais do produto.
// Preço aqui é informativo: o preço que vale é o congelado no checkout.
type Item struct {
	ID           string          `json:"id" db:"id"`
	ProductID    string          `json:"product_id" db:"product_id"`
	Quantity     int             `json:"quantity" db:"quantity"`
	ProductTitle string          `json:"product_title" db:"product_title"`
	ProductPrice decimal.Decimal `json:"product_price" db:"product_price"`
}

var (
	// ErrItemNotFound indica que o produto não está no carrinho
	ErrItemNotFound = errors.New("item not found in cart")
)
