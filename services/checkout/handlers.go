package checkout

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UseCaseInterface define a interface para o use case
type UseCaseInterface interface {
	Checkout(ctx context.Context, userID string, items []CheckoutItem) (*Order, error)
	ListOrders(ctx context.Context, userID string) ([]Order, error)
}

// Handler contém os handlers HTTP do checkout
type Handler struct {
	useCase UseCaseInterface
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase UseCaseInterface) *Handler {
	return &Handler{useCase: useCase}
}

// RegisterRoutes registra as rotas do pedido; authed deve exigir autenticação
func (h *Handler) RegisterRoutes(authed gin.IRoutes) {
	authed.POST("/order/checkout", h.Checkout)
	authed.GET("/order", h.ListOrders)
}

type checkoutRequest struct {
	Items []CheckoutItem `json:"items" binding:"required"`
}

// Checkout fecha o pedido a partir dos itens enviados
func (h *Handler) Checkout(c *gin.Context) {
	userID := c.GetString("userID")

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.useCase.Checkout(c.Request.Context(), userID, req.Items)
	if err != nil {
		status := checkoutStatusCode(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    order,
	})
}

// ListOrders retorna o histórico de pedidos do usuário autenticado
func (h *Handler) ListOrders(c *gin.Context) {
	userID := c.GetString("userID")

	orders, err := h.useCase.ListOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders fetched successfully",
		"data":    orders,
	})
}

// checkoutStatusCode mapeia a taxonomia de erros do checkout para HTTP
func checkoutStatusCode(err error) int {
	var notFound *ProductNotFoundError
	var noStock *InsufficientStockError

	switch {
	case errors.Is(err, ErrEmptyCheckout), errors.Is(err, ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &noStock):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
