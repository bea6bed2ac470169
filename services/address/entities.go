package address

import (
	"errors"
	"time"
)

// Address é um endereço de entrega do usuário
type Address struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Street    string    `json:"street" db:"street"`
	City      string    `json:"city" db:"city"`
	State     string    `json:"state" db:"state"`
	ZipCode   string    `json:"zip_code" db:"zip_code"`
	Country   string    `json:"country" db:"country"`
	IsDefault bool      `json:"is_default" db:"is_default"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

var (
	// ErrAddressNotFound indica endereço inexistente ou de outro usuário
	ErrAddressNotFound = errors.New("address not found or access denied")
)
