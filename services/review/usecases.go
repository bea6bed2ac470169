package review

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CreateReviewRequest representa uma nova avaliação
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// UseCase contém a lógica de negócio de reviews
type UseCase struct {
	repository Repository
}

func NewUseCase(repository Repository) *UseCase {
	return &UseCase{repository: repository}
}

// AddReview cria a avaliação; a unicidade user/product é garantida pelo banco
func (uc *UseCase) AddReview(ctx context.Context, productID, userID string, req CreateReviewRequest) (*Review, error) {
	review := &Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repository.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews busca as avaliações de um produto, mais recentes primeiro
func (uc *UseCase) ListReviews(ctx context.Context, productID string) ([]Review, error) {
	return uc.repository.ListByProduct(ctx, productID)
}
