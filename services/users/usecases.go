package users

import (
	"context"
	"errors"

	"gitub.com/matheusmosca/ecommerce-api/services/auth"
)

var ErrEmailInUse = errors.New("email is already in use")

// UpdateProfileRequest representa a atualização parcial do perfil
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	AvatarURL *string `json:"avatar_url"`
	Phone     *string `json:"phone"`
}

// Repository define as operações de banco de dados de perfil
type Repository interface {
	GetUserByID(ctx context.Context, id string) (*auth.User, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.User, error)
	UpdateProfile(ctx context.Context, user *auth.User) error
}

// UseCase contém a lógica de negócio de perfil de usuário
type UseCase struct {
	repository Repository
}

func NewUseCase(repository Repository) *UseCase {
	return &UseCase{repository: repository}
}

// GetProfile busca o perfil do usuário autenticado
func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	return uc.repository.GetUserByID(ctx, userID)
}

// UpdateProfile aplica a atualização parcial, rejeitando e-mail já em uso
func (uc *UseCase) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*auth.User, error) {
	user, err := uc.repository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := uc.repository.GetUserByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, auth.ErrUserNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, ErrEmailInUse
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if err := uc.repository.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
