package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockRepository implementa Repository para os testes de use case
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdateRefreshToken(ctx context.Context, userID string, hash *string) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}

func (m *MockRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func newTestTokens() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret")
}

func TestSignup_HashesPassword(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	mockRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*auth.User")).Return(nil)
	uc := NewUseCase(mockRepo, newTestTokens())

	// Act
	user, err := uc.Signup(context.Background(), SignupRequest{
		Email:    "a@b.com",
		Password: "super-secret-pw",
		Name:     "Ana",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, RoleUser, user.Role)
	assert.NotEqual(t, "super-secret-pw", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("super-secret-pw")))
	mockRepo.AssertExpectations(t)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("CreateUser", mock.Anything, mock.Anything).Return(ErrEmailExists)
	uc := NewUseCase(mockRepo, newTestTokens())

	user, err := uc.Signup(context.Background(), SignupRequest{
		Email:    "a@b.com",
		Password: "super-secret-pw",
		Name:     "Ana",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func seededUser(t *testing.T, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &User{
		ID:           "user-1",
		Email:        "a@b.com",
		PasswordHash: string(hash),
		Name:         "Ana",
		Role:         RoleUser,
	}
}

func TestSignin_Success(t *testing.T) {
	// Arrange
	user := seededUser(t, "super-secret-pw")
	mockRepo := new(MockRepository)
	mockRepo.On("GetUserByEmail", mock.Anything, "a@b.com").Return(user, nil)
	mockRepo.On("UpdateLastLogin", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).Return(nil)
	mockRepo.On("UpdateRefreshToken", mock.Anything, "user-1", mock.AnythingOfType("*string")).Return(nil)
	uc := NewUseCase(mockRepo, newTestTokens())

	// Act
	signed, tokens, err := uc.Signin(context.Background(), SigninRequest{
		Email:    "a@b.com",
		Password: "super-secret-pw",
	})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotNil(t, signed.LastLogin)
	mockRepo.AssertExpectations(t)
}

func TestSignin_WrongPassword(t *testing.T) {
	user := seededUser(t, "super-secret-pw")
	mockRepo := new(MockRepository)
	mockRepo.On("GetUserByEmail", mock.Anything, "a@b.com").Return(user, nil)
	uc := NewUseCase(mockRepo, newTestTokens())

	_, _, err := uc.Signin(context.Background(), SigninRequest{
		Email:    "a@b.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignin_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("GetUserByEmail", mock.Anything, "a@b.com").Return(nil, ErrUserNotFound)
	uc := NewUseCase(mockRepo, newTestTokens())

	_, _, err := uc.Signin(context.Background(), SigninRequest{
		Email:    "a@b.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	// Arrange: usuário com refresh token emitido e hash armazenado
	tm := newTestTokens()
	tokens, err := tm.Issue("user-1", "a@b.com", RoleUser)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword(truncateForBcrypt(tokens.RefreshToken), bcrypt.MinCost)
	require.NoError(t, err)
	stored := string(hash)
	user := &User{ID: "user-1", Email: "a@b.com", Role: RoleUser, RefreshTokenHash: &stored}

	mockRepo := new(MockRepository)
	mockRepo.On("GetUserByID", mock.Anything, "user-1").Return(user, nil)
	mockRepo.On("UpdateRefreshToken", mock.Anything, "user-1", mock.AnythingOfType("*string")).Return(nil)
	uc := NewUseCase(mockRepo, tm)

	// Act
	rotated, err := uc.Refresh(context.Background(), tokens.RefreshToken)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	mockRepo.AssertExpectations(t)
}

func TestRefresh_RevokedToken(t *testing.T) {
	tm := newTestTokens()
	tokens, err := tm.Issue("user-1", "a@b.com", RoleUser)
	require.NoError(t, err)

	// Logout limpou o hash armazenado
	user := &User{ID: "user-1", Email: "a@b.com", Role: RoleUser, RefreshTokenHash: nil}
	mockRepo := new(MockRepository)
	mockRepo.On("GetUserByID", mock.Anything, "user-1").Return(user, nil)
	uc := NewUseCase(mockRepo, tm)

	_, err = uc.Refresh(context.Background(), tokens.RefreshToken)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestLogout_ClearsRefreshToken(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("UpdateRefreshToken", mock.Anything, "user-1", (*string)(nil)).Return(nil)
	uc := NewUseCase(mockRepo, newTestTokens())

	err := uc.Logout(context.Background(), "user-1")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestResetPassword_InvalidCurrentPassword(t *testing.T) {
	user := seededUser(t, "super-secret-pw")
	mockRepo := new(MockRepository)
	mockRepo.On("GetUserByEmail", mock.Anything, "a@b.com").Return(user, nil)
	uc := NewUseCase(mockRepo, newTestTokens())

	err := uc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:           "a@b.com",
		CurrentPassword: "wrong",
		NewPassword:     "brand-new-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
