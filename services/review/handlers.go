package review

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler contém os handlers HTTP de reviews
type Handler struct {
	useCase *UseCase
}

func NewHandler(useCase *UseCase) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) RegisterRoutes(public gin.IRoutes, authed gin.IRoutes) {
	public.GET("/product/:id/reviews", h.ListReviews)
	authed.POST("/product/:id/reviews", h.AddReview)
}

func (h *Handler) AddReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.useCase.AddReview(c.Request.Context(), c.Param("id"), c.GetString("userID"), req)
	if err != nil {
		if errors.Is(err, ErrAlreadyReviewed) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review created successfully", "data": review})
}

func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.useCase.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reviews fetched successfully", "data": reviews})
}
