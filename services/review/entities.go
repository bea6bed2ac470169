package review

import (
	"errors"
	"time"
)

// Review é uma avaliação de produto; cada usuário avalia um produto uma vez
type Review struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	ProductID      string    `json:"product_id" db:"product_id"`
	Rating         int       `json:"rating" db:"rating"`
	Comment        string    `json:"comment" db:"comment"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	ReviewerName   string    `json:"reviewer_name,omitempty"`
	ReviewerAvatar *string   `json:"reviewer_avatar,omitempty"`
}

var (
	// ErrAlreadyReviewed indica segunda avaliação do mesmo produto pelo usuário
	ErrAlreadyReviewed = errors.New("you have already reviewed this product")
)
