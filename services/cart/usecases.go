package cart

import (
	"context"
	"fmt"
)

// AddItemRequest representa a adição de um produto ao carrinho
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// UpdateItemRequest representa a troca de quantidade de um item
type UpdateItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// UseCase contém a lógica de negócio do carrinho
type UseCase struct {
	repository Repository
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository) *UseCase {
	return &UseCase{repository: repository}
}

// GetCart devolve o carrinho do usuário, criando um vazio no primeiro acesso
func (uc *UseCase) GetCart(ctx context.Context, userID string) (*Cart, error) {
	return uc.repository.GetOrCreateCart(ctx, userID)
}

// AddItem adiciona o produto ao carrinho ou incrementa a quantidade
func (uc *UseCase) AddItem(ctx context.Context, userID string, req AddItemRequest) (*Cart, error) {
	cart, err := uc.repository.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.repository.UpsertItem(ctx, cart.ID, req.ProductID, req.Quantity); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	return uc.repository.GetOrCreateCart(ctx, userID)
}

// UpdateItem define a quantidade de um item já presente
func (uc *UseCase) UpdateItem(ctx context.Context, userID string, req UpdateItemRequest) (*Cart, error) {
	cart, err := uc.repository.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uc.repository.SetItemQuantity(ctx, cart.ID, req.ProductID, req.Quantity); err != nil {
		return nil, err
	}
	return uc.repository.GetOrCreateCart(ctx, userID)
}

// RemoveItem tira o produto do carrinho
func (uc *UseCase) RemoveItem(ctx context.Context, userID, productID string) error {
	cart, err := uc.repository.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	return uc.repository.RemoveItem(ctx, cart.ID, productID)
}
