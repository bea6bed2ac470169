package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitub.com/matheusmosca/ecommerce-api/services/auth"
)

// Handler contém os handlers HTTP de perfil
type Handler struct {
	useCase *UseCase
}

func NewHandler(useCase *UseCase) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) RegisterRoutes(authed gin.IRoutes) {
	authed.GET("/users/me", h.GetProfile)
	authed.PATCH("/users/me", h.UpdateProfile)
}

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.useCase.GetProfile(c.Request.Context(), c.GetString(auth.ContextUserID))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User fetched successfully", "data": user})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.useCase.UpdateProfile(c.Request.Context(), c.GetString(auth.ContextUserID), req)
	if err != nil {
		if errors.Is(err, ErrEmailInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "data": user})
}
