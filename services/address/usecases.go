package address

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AddressRequest representa criação/atualização de endereço
type AddressRequest struct {
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	ZipCode   string `json:"zip_code" binding:"required"`
	Country   string `json:"country" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// UseCase contém a lógica de negócio de endereços
type UseCase struct {
	repository Repository
}

func NewUseCase(repository Repository) *UseCase {
	return &UseCase{repository: repository}
}

// Create cadastra o endereço; marcar como default desmarca os demais antes
func (uc *UseCase) Create(ctx context.Context, userID string, req AddressRequest) (*Address, error) {
	if req.IsDefault {
		if err := uc.repository.ClearDefaults(ctx, userID); err != nil {
			return nil, err
		}
	}

	a := &Address{
		ID:        uuid.New().String(),
		UserID:    userID,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		Country:   req.Country,
		IsDefault: req.IsDefault,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repository.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List devolve os endereços do usuário, default primeiro
func (uc *UseCase) List(ctx context.Context, userID string) ([]Address, error) {
	return uc.repository.ListByUser(ctx, userID)
}

// Update atualiza um endereço do próprio usuário
func (uc *UseCase) Update(ctx context.Context, id, userID string, req AddressRequest) (*Address, error) {
	a, err := uc.repository.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.IsDefault && !a.IsDefault {
		if err := uc.repository.ClearDefaults(ctx, userID); err != nil {
			return nil, err
		}
	}

	a.Street = req.Street
	a.City = req.City
	a.State = req.State
	a.ZipCode = req.ZipCode
	a.Country = req.Country
	a.IsDefault = req.IsDefault
	if err := uc.repository.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete remove um endereço do próprio usuário
func (uc *UseCase) Delete(ctx context.Context, id, userID string) error {
	return uc.repository.Delete(ctx, id, userID)
}
