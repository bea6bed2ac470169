package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SignupRequest representa o cadastro de um novo usuário
type SignupRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	Name      string  `json:"name" binding:"required"`
	AvatarURL *string `json:"avatar_url"`
	Phone     *string `json:"phone"`
}

// SigninRequest representa as credenciais de login
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest troca a senha após validar a atual
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UseCase contém a lógica de negócio de autenticação
type UseCase struct {
	repository Repository
	tokens     *TokenManager
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository, tokens *TokenManager) *UseCase {
	return &UseCase{repository: repository, tokens: tokens}
}

// Signup cadastra um novo usuário com a senha em hash bcrypt
func (uc *UseCase) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         RoleUser,
		AvatarURL:    req.AvatarURL,
		Phone:        req.Phone,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ [SIGNUP] UserID=%s", user.ID)
	return user, nil
}

// Signin valida as credenciais, registra o último login e emite os tokens;
// o refresh token fica armazenado em hash para permitir revogação
func (uc *UseCase) Signin(ctx context.Context, req SigninRequest) (*User, TokenPair, error) {
	user, err := uc.repository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	tokens, err := uc.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, TokenPair{}, err
	}

	now := time.Now().UTC()
	if err := uc.repository.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, TokenPair{}, err
	}
	if err := uc.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, TokenPair{}, err
	}

	user.LastLogin = &now
	return user, tokens, nil
}

// Refresh valida o refresh token contra o hash armazenado e rotaciona o par
func (uc *UseCase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := uc.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, ErrAccessDenied
	}

	user, err := uc.repository.GetUserByID(ctx, claims.Subject)
	if err != nil || user.RefreshTokenHash == nil {
		return TokenPair{}, ErrAccessDenied
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.RefreshTokenHash), truncateForBcrypt(refreshToken)); err != nil {
		return TokenPair{}, ErrAccessDenied
	}

	tokens, err := uc.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return TokenPair{}, err
	}
	if err := uc.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return TokenPair{}, err
	}
	return tokens, nil
}

// Logout revoga o refresh token armazenado
func (uc *UseCase) Logout(ctx context.Context, userID string) error {
	return uc.repository.UpdateRefreshToken(ctx, userID, nil)
}

// ResetPassword troca a senha e invalida o refresh token
func (uc *UseCase) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	user, err := uc.repository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return uc.repository.UpdatePassword(ctx, user.ID, string(hash))
}

func (uc *UseCase) storeRefreshToken(ctx context.Context, userID, refreshToken string) error {
	hash, err := bcrypt.GenerateFromPassword(truncateForBcrypt(refreshToken), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash refresh token: %w", err)
	}
	stored := string(hash)
	return uc.repository.UpdateRefreshToken(ctx, userID, &stored)
}

// truncateForBcrypt limita o input a 72 bytes (limite do bcrypt). JWTs são
// maiores que isso; o token completo já é validado por assinatura antes da
// comparação com o hash.
func truncateForBcrypt(token string) []byte {
	if len(token) > 72 {
		token = token[:72]
	}
	return []byte(token)
}
