package repo

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"user-roles-api/internal/domain"
)

type UserRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

var _ domain.UserRepository = (*UserRepo)(nil)

func NewUserRepo(db *gorm.DB, l *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: l.Named("user_repo")}
}

// fail 分类、记录并返回错误；调用方原样上抛
func (r *UserRepo) fail(op string, err error, fields ...zap.Field) error {
	err = classify(err)
	fields = append(fields, zap.String("op", op), zap.Error(err))
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		r.log.Debug("user not found", fields...)
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrUnknownRole):
		r.log.Warn("user write rejected by store", fields...)
	default:
		r.log.Error("user store failure", fields...)
	}
	return err
}

func rolesByID(db *gorm.DB) *gorm.DB { return db.Order("roles.id") }

func (r *UserRepo) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.User], error) {
	q = q.Normalize()
	page := domain.Page[domain.User]{Page: q.Page, PerPage: q.PerPage}

	scope := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&domain.User{})
		if q.RoleID != nil {
			// semi-join：有这个角色即可，用户不会因多行匹配而重复
			tx = tx.Where("EXISTS (SELECT 1 FROM role_user WHERE role_user.user_id = users.id AND role_user.role_id = ?)", *q.RoleID)
		}
		return tx
	}

	if err := scope().Count(&page.Total).Error; err != nil {
		return page, r.fail("list.count", err)
	}
	page.Items = make([]domain.User, 0, q.PerPage)
	err := scope().
		Preload("Roles", rolesByID).
		Order("users.id DESC").
		Limit(q.PerPage).
		Offset(q.Offset()).
		Find(&page.Items).Error
	if err != nil {
		return page, r.fail("list", err)
	}
	return page, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error; err != nil {
		return r.fail("create", err, zap.String("email", u.Email))
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Preload("Roles", rolesByID).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.fail("find", fmt.Errorf("%w: id=%d", domain.ErrUserNotFound, id), zap.Uint("user_id", id))
	}
	if err != nil {
		return nil, r.fail("find", err, zap.Uint("user_id", id))
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, id uint, f domain.UserFields) (*domain.User, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 只更新传入的字段
	updates := map[string]any{}
	if f.Name != nil {
		updates["name"] = *f.Name
	}
	if f.Email != nil {
		updates["email"] = *f.Email
	}
	if len(updates) == 0 {
		return u, nil
	}
	if err := r.db.WithContext(ctx).Model(&domain.User{ID: u.ID}).Updates(updates).Error; err != nil {
		return nil, r.fail("update", err, zap.Uint("user_id", id))
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepo) Delete(ctx context.Context, id uint) (bool, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return false, err
	}

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 外键已 CASCADE，这里显式清理以兼容未开外键的 sqlite
		if err := tx.Where("user_id = ?", id).Delete(&domain.UserRole{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.User{}, id)
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return false, r.fail("delete", err, zap.Uint("user_id", id))
	}
	return deleted > 0, nil
}

func (r *UserRepo) AttachRoles(ctx context.Context, userID uint, roleIDs []uint) error {
	ids := uniqIDs(roleIDs)
	if len(ids) == 0 {
		return nil
	}
	rows := make([]domain.UserRole, 0, len(ids))
	for _, rid := range ids {
		rows = append(rows, domain.UserRole{UserID: userID, RoleID: rid})
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return r.fail("attach_roles", err, zap.Uint("user_id", userID), zap.Uints("role_ids", ids))
	}
	return nil
}

func (r *UserRepo) SyncRoles(ctx context.Context, userID uint, roleIDs []uint) error {
	ids := uniqIDs(roleIDs)

	del := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(ids) > 0 {
		del = del.Where("role_id NOT IN ?", ids)
	}
	if err := del.Delete(&domain.UserRole{}).Error; err != nil {
		return r.fail("sync_roles", err, zap.Uint("user_id", userID), zap.Uints("role_ids", ids))
	}
	// 已有的行因 DoNothing 保持不动
	return r.AttachRoles(ctx, userID, ids)
}

func (r *UserRepo) Transaction(ctx context.Context, fn func(domain.UserRepository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UserRepo{db: tx, log: r.log})
	})
	if err != nil && !isClassified(err) {
		return r.fail("transaction", err)
	}
	return err
}

func uniqIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
