package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"user-roles-api/internal/domain"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.User], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.Page[domain.User]), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, id uint, f domain.UserFields) (*domain.User, error) {
	args := m.Called(ctx, id, f)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) AttachRoles(ctx context.Context, userID uint, roleIDs []uint) error {
	return m.Called(ctx, userID, roleIDs).Error(0)
}

func (m *mockUserRepository) SyncRoles(ctx context.Context, userID uint, roleIDs []uint) error {
	return m.Called(ctx, userID, roleIDs).Error(0)
}

// Transaction 直接在 mock 自身上执行 fn
func (m *mockUserRepository) Transaction(ctx context.Context, fn func(domain.UserRepository) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}
