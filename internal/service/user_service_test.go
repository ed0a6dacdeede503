package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"user-roles-api/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCreateUser_CreatesThenAttaches(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepository{}
	svc := NewUserService(repo)

	want := &domain.User{ID: 42, Name: "John Doe", Email: "john@example.com",
		Roles: []domain.Role{{ID: 1, Name: "Author"}, {ID: 2, Name: "Editor"}, {ID: 3, Name: "Subscriber"}}}

	repo.On("Transaction", ctx).Return(nil).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "John Doe" && u.Email == "john@example.com"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 42
	}).Return(nil).Once()
	repo.On("AttachRoles", ctx, uint(42), []uint{1, 2, 3}).Return(nil).Once()
	repo.On("FindByID", ctx, uint(42)).Return(want, nil).Once()

	got, err := svc.CreateUser(ctx, domain.UserFields{Name: strPtr("John Doe"), Email: strPtr("john@example.com")}, []uint{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestCreateUser_AttachFailureAborts(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepository{}
	svc := NewUserService(repo)

	repo.On("Transaction", ctx).Return(nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("AttachRoles", ctx, mock.Anything, []uint{9}).Return(domain.ErrUnknownRole)

	_, err := svc.CreateUser(ctx, domain.UserFields{Name: strPtr("x"), Email: strPtr("x@example.com")}, []uint{9})
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCreateUser_DuplicateEmailSkipsAttach(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepository{}
	svc := NewUserService(repo)

	repo.On("Transaction", ctx).Return(nil)
	repo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailTaken)

	_, err := svc.CreateUser(ctx, domain.UserFields{Name: strPtr("x"), Email: strPtr("x@example.com")}, []uint{1})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	repo.AssertNotCalled(t, "AttachRoles", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_SyncsRoles(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepository{}
	svc := NewUserService(repo)
	fields := domain.UserFields{Name: strPtr("Jane Doe")}
	updated := &domain.User{ID: 7, Name: "Jane Doe", Roles: []domain.Role{{ID: 1}, {ID: 4}}}
	synced := &domain.User{ID: 7, Name: "Jane Doe", Roles: []domain.Role{{ID: 2, Name: "Editor"}}}

	repo.On("Transaction", ctx).Return(nil)
	repo.On("Update", ctx, uint(7), fields).Return(updated, nil)
	repo.On("SyncRoles", ctx, uint(7), []uint{2}).Return(nil)
	repo.On("FindByID", ctx, uint(7)).Return(synced, nil)

	got, err := svc.UpdateUser(ctx, 7, fields, []uint{2})
	require.NoError(t, err)
	assert.Equal(t, synced, got)
	repo.AssertExpectations(t)
}

func TestUpdateUser_NilRoleIDsLeavesRolesAlone(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepository{}
	svc := NewUserService(repo)
	updated := &domain.User{ID: 7, Name: "n"}

	repo.On("Transaction", ctx).Return(nil)
	repo.On("Update", ctx, uint(7), domain.UserFields{}).Return(updated, nil)

	got, err := svc.UpdateUser(ctx, 7, domain.UserFields{}, nil)
	require.NoError(t, err)
	assert.Same(t, updated, got)
	repo.AssertNotCalled(t, "SyncRoles", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepository{}
	svc := NewUserService(repo)

	repo.On("Transaction", ctx).Return(nil)
	repo.On("Update", ctx, uint(5), domain.UserFields{}).Return(nil, domain.ErrUserNotFound)

	_, err := svc.UpdateUser(ctx, 5, domain.UserFields{}, []uint{1})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestForwardingOperations(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepository{}
	svc := NewUserService(repo)
	page := domain.Page[domain.User]{Items: []domain.User{{ID: 1}}, Page: 1, PerPage: 30, Total: 1}
	q := domain.ListQuery{Page: 1, PerPage: 30}

	repo.On("List", ctx, q).Return(page, nil)
	repo.On("Delete", ctx, uint(1)).Return(true, nil)
	repo.On("Delete", ctx, uint(2)).Return(false, domain.ErrUserNotFound)
	repo.On("FindByID", ctx, uint(1)).Return(&domain.User{ID: 1}, nil)

	got, err := svc.ListUsers(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, page, got)

	ok, err := svc.DeleteUser(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.DeleteUser(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	u, err := svc.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, u.ID)
}

func TestTransactionBeginFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepository{}
	svc := NewUserService(repo)
	down := errors.New("store down")

	repo.On("Transaction", ctx).Return(down)

	_, err := svc.CreateUser(ctx, domain.UserFields{}, []uint{1})
	assert.ErrorIs(t, err, down)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
