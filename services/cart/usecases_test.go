package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository implementa Repository para os testes de use case
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetOrCreateCart(ctx context.Context, userID string) (*Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) UpsertItem(ctx context.Context, cartID, productID string, quantity int) error {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Error(0)
}

func (m *MockRepository) SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Error(0)
}

func (m *MockRepository) RemoveItem(ctx context.Context, cartID, productID string) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

func TestAddItem(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	cart := &Cart{ID: "cart-1", UserID: "user-1"}
	mockRepo.On("GetOrCreateCart", mock.Anything, "user-1").Return(cart, nil)
	mockRepo.On("UpsertItem", mock.Anything, "cart-1", "P1", 2).Return(nil)
	uc := NewUseCase(mockRepo)

	// Act
	result, err := uc.AddItem(context.Background(), "user-1", AddItemRequest{ProductID: "P1", Quantity: 2})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "cart-1", result.ID)
	mockRepo.AssertExpectations(t)
}

func TestUpdateItem_NotInCart(t *testing.T) {
	mockRepo := new(MockRepository)
	cart := &Cart{ID: "cart-1", UserID: "user-1"}
	mockRepo.On("GetOrCreateCart", mock.Anything, "user-1").Return(cart, nil)
	mockRepo.On("SetItemQuantity", mock.Anything, "cart-1", "P1", 5).Return(ErrItemNotFound)
	uc := NewUseCase(mockRepo)

	_, err := uc.UpdateItem(context.Background(), "user-1", UpdateItemRequest{ProductID: "P1", Quantity: 5})

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	mockRepo := new(MockRepository)
	cart := &Cart{ID: "cart-1", UserID: "user-1"}
	mockRepo.On("GetOrCreateCart", mock.Anything, "user-1").Return(cart, nil)
	mockRepo.On("RemoveItem", mock.Anything, "cart-1", "P1").Return(nil)
	uc := NewUseCase(mockRepo)

	err := uc.RemoveItem(context.Background(), "user-1", "P1")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
