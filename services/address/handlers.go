package address

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler contém os handlers HTTP de endereços
type Handler struct {
	useCase *UseCase
}

func NewHandler(useCase *UseCase) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) RegisterRoutes(authed gin.IRoutes) {
	authed.POST("/address", h.Create)
	authed.GET("/address", h.List)
	authed.PATCH("/address/:id", h.Update)
	authed.DELETE("/address/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.useCase.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create address"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Address created successfully", "data": a})
}

func (h *Handler) List(c *gin.Context) {
	addresses, err := h.useCase.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch addresses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Addresses fetched successfully", "data": addresses})
}

func (h *Handler) Update(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.useCase.Update(c.Request.Context(), c.Param("id"), c.GetString("userID"), req)
	if err != nil {
		if errors.Is(err, ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address updated successfully", "data": a})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.useCase.Delete(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		if errors.Is(err, ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address removed successfully"})
}
