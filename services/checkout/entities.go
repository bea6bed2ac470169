package checkout

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa um pedido fechado a partir do carrinho
type Order struct {
	ID        string          `json:"id" db:"id"`
	UserID    string          `json:"user_id" db:"user_id"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Status    string          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	Lines     []OrderLine     `json:"items"`
}

// OrderLine é um item do pedido com o preço congelado no momento do checkout
type OrderLine struct {
	ID        string          `json:"id" db:"id"`
	OrderID   string          `json:"order_id" db:"order_id"`
	ProductID string          `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
}

// Subtotal retorna quantity * unit_price da linha
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CheckoutItem representa um item solicitado pelo cliente no checkout
type CheckoutItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// ProductSnapshot é a leitura de preço/estoque feita dentro da transação
type ProductSnapshot struct {
	ID    string          `db:"id"`
	Price decimal.Decimal `db:"price"`
	Stock int             `db:"stock"`
}

// NewOrder cria um pedido PENDING com o total derivado das linhas
func NewOrder(id, userID string, lines []OrderLine) *Order {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return &Order{
		ID:        id,
		UserID:    userID,
		Total:     total,
		Status:    OrderStatusPending,
		CreatedAt: time.Now().UTC(),
		Lines:     lines,
	}
}

// OrderStatus representa os possíveis status de um pedido.
// Apenas PENDING é atribuído aqui; as demais transições pertencem
// aos processos de pagamento e fulfillment.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusFulfilled = "FULFILLED"
)
