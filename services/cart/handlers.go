package cart

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler contém os handlers HTTP do carrinho
type Handler struct {
	useCase *UseCase
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase *UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// RegisterRoutes registra as rotas do carrinho (todas autenticadas)
func (h *Handler) RegisterRoutes(authed gin.IRoutes) {
	authed.GET("/cart", h.GetCart)
	authed.POST("/cart/items", h.AddItem)
	authed.PATCH("/cart/items", h.UpdateItem)
	authed.DELETE("/cart/items/:productID", h.RemoveItem)
}

func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.useCase.GetCart(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart fetched successfully", "data": cart})
}

func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.useCase.AddItem(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add to cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "data": cart})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.useCase.UpdateItem(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item updated", "data": cart})
}

func (h *Handler) RemoveItem(c *gin.Context) {
	err := h.useCase.RemoveItem(c.Request.Context(), c.GetString("userID"), c.Param("productID"))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove item from cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}
