package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest representa os dados de criação de produto
type CreateProductRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"gte=0"`
	CategoryID  *string         `json:"category_id"`
}

// UpdateProductRequest representa uma atualização parcial de produto.
// Campos nil mantêm o valor atual; Stock cobre também o restock.
type UpdateProductRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	CategoryID  *string          `json:"category_id"`
}

// CategoryRequest representa criação/atualização de categoria
type CategoryRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parent_id"`
}

// UseCase contém a lógica de negócio do catálogo
type UseCase struct {
	repository Repository
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository) *UseCase {
	return &UseCase{repository: repository}
}

// CreateProduct cadastra um novo produto
func (uc *UseCase) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}

	now := time.Now().UTC()
	product := &Product{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Rating:      decimal.Zero,
		CategoryID:  req.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repository.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct busca um produto pelo ID
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*Product, error) {
	return uc.repository.GetProduct(ctx, id)
}

// ListProducts lista produtos aplicando os filtros opcionais
func (uc *UseCase) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	return uc.repository.ListProducts(ctx, filter)
}

// UpdateProduct aplica uma atualização parcial sobre o produto atual
func (uc *UseCase) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	product, err := uc.repository.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("price must not be negative")
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("stock must not be negative")
		}
		product.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}

	if err := uc.repository.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct remove um produto do catálogo
func (uc *UseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.repository.DeleteProduct(ctx, id)
}

// CreateCategory cadastra uma categoria, validando o parent quando informado
func (uc *UseCase) CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error) {
	if req.ParentID != nil {
		if _, err := uc.repository.GetCategory(ctx, *req.ParentID); err != nil {
			return nil, ErrParentCategoryNotFound
		}
	}

	category := &Category{
		ID:        uuid.New().String(),
		Name:      req.Name,
		ParentID:  req.ParentID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repository.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lista todas as categorias
func (uc *UseCase) ListCategories(ctx context.Context) ([]Category, error) {
	return uc.repository.ListCategories(ctx)
}

// UpdateCategory atualiza nome/parent de uma categoria existente
func (uc *UseCase) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*Category, error) {
	category, err := uc.repository.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.ParentID = req.ParentID
	if err := uc.repository.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory remove uma categoria existente
func (uc *UseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.repository.GetCategory(ctx, id); err != nil {
		return err
	}
	return uc.repository.DeleteCategory(ctx, id)
}
