package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UseCase contém a lógica de negócio do checkout
type UseCase struct {
	repository Repository
	tracer     trace.Tracer
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository, tracer trace.Tracer) *UseCase {
	return &UseCase{
		repository: repository,
		tracer:     tracer,
	}
}

// Checkout valida os itens contra o catálogo, reserva estoque, congela os
// preços e cria o pedido, tudo em uma única transação. Qualquer falha em
// qualquer item desfaz a transação inteira: nenhum decremento parcial
// sobrevive a um checkout que falhou.
func (uc *UseCase) Checkout(ctx context.Context, userID string, items []CheckoutItem) (*Order, error) {
	ctx, span := uc.tracer.Start(ctx, "checkout")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.Int("item_count", len(items)),
	)

	if len(items) == 0 {
		return nil, ErrEmptyCheckout
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, item.ProductID)
		}
	}

	orderID := uuid.New().String()
	var order *Order

	err := uc.repository.WithinTx(ctx, func(tx Tx) error {
		lines := make([]OrderLine, 0, len(items))

		// Itens são processados na ordem enviada pelo cliente; o primeiro
		// erro aborta a transação e é o único reportado.
		for _, item := range items {
			product, err := uc.repository.GetProductForUpdate(ctx, tx, item.ProductID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return &ProductNotFoundError{ProductID: item.ProductID}
				}
				return fmt.Errorf("failed to read product %s: %w", item.ProductID, err)
			}

			if product.Stock < item.Quantity {
				return &InsufficientStockError{
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: product.Stock,
				}
			}

			ok, err := uc.repository.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// A linha está sob FOR UPDATE, então o guard condicional só
				// falha se outra transação consumiu o estoque antes do lock.
				return &InsufficientStockError{
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: product.Stock,
				}
			}

			lines = append(lines, OrderLine{
				ID:        uuid.New().String(),
				OrderID:   orderID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			})
		}

		order = NewOrder(orderID, userID, lines)
		return uc.repository.CreateOrder(ctx, tx, order)
	})
	if err != nil {
		err = classifyTxError(err)
		span.RecordError(err)
		log.Printf("❌ [CHECKOUT] Failed | UserID=%s | Error=%v", userID, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order_id", order.ID),
		attribute.String("order_total", order.Total.String()),
	)
	log.Printf("✅ [CHECKOUT] Success | OrderID=%s | Total=%s", order.ID, order.Total.String())
	return order, nil
}

// ListOrders busca o histórico de pedidos do usuário
func (uc *UseCase) ListOrders(ctx context.Context, userID string) ([]Order, error) {
	orders, err := uc.repository.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}
