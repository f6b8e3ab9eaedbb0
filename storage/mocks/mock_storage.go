package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go-url-shortener/types"
)

// MockStore is a mock storage.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindActiveByShortCode(ctx context.Context, shortCode string) (types.Link, error) {
	args := m.Called(ctx, shortCode)
	return args.Get(0).(types.Link), args.Error(1)
}

func (m *MockStore) FindActiveByShortCodeAndOwner(ctx context.Context, shortCode, ownerID string) (types.Link, error) {
	args := m.Called(ctx, shortCode, ownerID)
	return args.Get(0).(types.Link), args.Error(1)
}

func (m *MockStore) ListActiveByOwner(ctx context.Context, ownerID string, offset, limit int) ([]types.Link, int64, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	links, _ := args.Get(0).([]types.Link)
	return links, args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) CreateLink(ctx context.Context, link *types.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockStore) SaveLink(ctx context.Context, link *types.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockStore) IncrementClicks(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) FindUserByID(ctx context.Context, id string) (types.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.User), args.Error(1)
}

func (m *MockStore) FindUserByEmail(ctx context.Context, email string) (types.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(types.User), args.Error(1)
}

func (m *MockStore) CreateUser(ctx context.Context, user *types.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStore) Migrate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
