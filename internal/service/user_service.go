package service

import (
	"context"

	"user-roles-api/internal/domain"
)

// UserService 编排仓储调用；实体写入与角色写入放在同一个事务里
type UserService struct {
	repo domain.UserRepository
}

func NewUserService(repo domain.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) ListUsers(ctx context.Context, q domain.ListQuery) (domain.Page[domain.User], error) {
	return s.repo.List(ctx, q)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateUser 建用户并追加角色；任一步失败整体回滚
func (s *UserService) CreateUser(ctx context.Context, f domain.UserFields, roleIDs []uint) (*domain.User, error) {
	u := &domain.User{}
	if f.Name != nil {
		u.Name = *f.Name
	}
	if f.Email != nil {
		u.Email = *f.Email
	}

	var out *domain.User
	err := s.repo.Transaction(ctx, func(tx domain.UserRepository) error {
		if err := tx.Create(ctx, u); err != nil {
			return err
		}
		if err := tx.AttachRoles(ctx, u.ID, roleIDs); err != nil {
			return err
		}
		var err error
		out, err = tx.FindByID(ctx, u.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUser 更新字段并同步角色。roleIDs 为 nil 表示不动角色，
// 非 nil 的空切片表示清空。
func (s *UserService) UpdateUser(ctx context.Context, id uint, f domain.UserFields, roleIDs []uint) (*domain.User, error) {
	var out *domain.User
	err := s.repo.Transaction(ctx, func(tx domain.UserRepository) error {
		u, err := tx.Update(ctx, id, f)
		if err != nil {
			return err
		}
		if roleIDs == nil {
			out = u
			return nil
		}
		if err := tx.SyncRoles(ctx, id, roleIDs); err != nil {
			return err
		}
		out, err = tx.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) (bool, error) {
	return s.repo.Delete(ctx, id)
}
