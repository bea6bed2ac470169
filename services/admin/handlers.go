package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler contém os handlers HTTP do painel administrativo
type Handler struct {
	useCase *UseCase
}

func NewHandler(useCase *UseCase) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) RegisterRoutes(admin gin.IRoutes) {
	admin.GET("/admin/stats", h.GetDashboardStats)
}

func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.useCase.GetDashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch dashboard stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dashboard stats fetched successfully", "data": stats})
}
