package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go-url-shortener/types"
)

// MockURLService is a mock URLService interface
type MockURLService struct {
	mock.Mock
}

func (m *MockURLService) Shorten(ctx context.Context, targetURL string, owner *types.Identity) (types.ShortenResponse, error) {
	args := m.Called(ctx, targetURL, owner)
	return args.Get(0).(types.ShortenResponse), args.Error(1)
}

func (m *MockURLService) Redirect(ctx context.Context, shortCode string) (string, error) {
	args := m.Called(ctx, shortCode)
	return args.String(0), args.Error(1)
}

// MockUserURLService is a mock UserURLService interface
type MockUserURLService struct {
	mock.Mock
}

func (m *MockUserURLService) ListURLs(ctx context.Context, ownerID string, page, limit int) (types.URLPage, error) {
	args := m.Called(ctx, ownerID, page, limit)
	return args.Get(0).(types.URLPage), args.Error(1)
}

func (m *MockUserURLService) GetURL(ctx context.Context, ownerID, shortCode string) (types.URLView, error) {
	args := m.Called(ctx, ownerID, shortCode)
	return args.Get(0).(types.URLView), args.Error(1)
}

func (m *MockUserURLService) UpdateURL(ctx context.Context, ownerID, shortCode, newURL string) (types.URLView, error) {
	args := m.Called(ctx, ownerID, shortCode, newURL)
	return args.Get(0).(types.URLView), args.Error(1)
}

func (m *MockUserURLService) DeleteURL(ctx context.Context, ownerID, shortCode string) (types.URLView, error) {
	args := m.Called(ctx, ownerID, shortCode)
	return args.Get(0).(types.URLView), args.Error(1)
}

// MockAuthService is a mock AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (types.UserResponse, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(types.UserResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (types.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(types.LoginResponse), args.Error(1)
}
