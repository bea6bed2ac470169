package auth

import (
	"errors"
	"time"
)

// User representa um usuário da loja. PasswordHash e RefreshTokenHash nunca
// são serializados nas respostas.
type User struct {
	ID               string     `json:"id" db:"id"`
	Email            string     `json:"email" db:"email"`
	PasswordHash     string     `json:"-" db:"password"`
	Name             string     `json:"name" db:"name"`
	Role             string     `json:"role" db:"role"`
	AvatarURL        *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	Phone            *string    `json:"phone,omitempty" db:"phone"`
	RefreshTokenHash *string    `json:"-" db:"refresh_token"`
	LastLogin        *time.Time `json:"last_login,omitempty" db:"last_login"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

// Role representa os papéis de usuário
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var (
	// ErrEmailExists indica cadastro com e-mail já usado
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials indica e-mail ou senha incorretos
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccessDenied indica refresh token ausente, inválido ou revogado
	ErrAccessDenied = errors.New("access denied")

	// ErrUserNotFound indica usuário inexistente
	ErrUserNotFound = errors.New("user not found")
)
