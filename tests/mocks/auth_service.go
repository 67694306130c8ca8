package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"arena-comments/internal/domain"
	"arena-comments/internal/service/auth"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	var user *domain.User
	var tokens *domain.TokenPair
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	if args.Get(1) != nil {
		tokens = args.Get(1).(*domain.TokenPair)
	}
	return user, tokens, args.Error(2)
}

func (m *AuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	var user *domain.User
	var tokens *domain.TokenPair
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	if args.Get(1) != nil {
		tokens = args.Get(1).(*domain.TokenPair)
	}
	return user, tokens, args.Error(2)
}

func (m *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *AuthService) ValidateAccessToken(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
