package admin

import (
	"context"

	"github.com/shopspring/decimal"

	"gitub.com/matheusmosca/ecommerce-api/services/catalog"
)

// DashboardStats agrega os números exibidos no painel administrativo
type DashboardStats struct {
	TotalOrders  int64             `json:"total_orders"`
	TotalRevenue decimal.Decimal   `json:"total_revenue"`
	TopProducts  []catalog.Product `json:"top_products"`
}

// Repository define as consultas agregadas do painel
type Repository interface {
	CountOrders(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (decimal.Decimal, error)
	TopProductsByRating(ctx context.Context, limit int) ([]catalog.Product, error)
}

// UseCase contém a lógica do painel administrativo
type UseCase struct {
	repository Repository
}

func NewUseCase(repository Repository) *UseCase {
	return &UseCase{repository: repository}
}

// GetDashboardStats monta as estatísticas do painel
func (uc *UseCase) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	count, err := uc.repository.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := uc.repository.SumRevenue(ctx)
	if err != nil {
		return nil, err
	}
	top, err := uc.repository.TopProductsByRating(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalOrders:  count,
		TotalRevenue: revenue,
		TopProducts:  top,
	}, nil
}
