package domain

import (
	"context"
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Roles     []Role    `gorm:"many2many:role_user;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"roles"`
}

func (User) TableName() string { return "users" }

// RoleIDs 返回用户当前持有的角色 id（保持 Roles 的顺序）
func (u *User) RoleIDs() []uint {
	ids := make([]uint, 0, len(u.Roles))
	for _, r := range u.Roles {
		ids = append(ids, r.ID)
	}
	return ids
}

// UserFields 部分更新：nil 字段保持不变
type UserFields struct {
	Name  *string
	Email *string
}

// ListQuery 列表查询条件；RoleID 为 nil 时不过滤
type ListQuery struct {
	Page    int
	PerPage int
	RoleID  *uint
}

type UserRepository interface {
	List(ctx context.Context, q ListQuery) (Page[User], error)
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, id uint, f UserFields) (*User, error)
	Delete(ctx context.Context, id uint) (bool, error)

	// AttachRoles 只做追加，假定用户当前没有这些关联
	AttachRoles(ctx context.Context, userID uint, roleIDs []uint) error
	// SyncRoles 将关联集合替换为 roleIDs：补缺、删多余、保留不变的
	SyncRoles(ctx context.Context, userID uint, roleIDs []uint) error

	// Transaction 在同一个事务里执行 fn；fn 返回错误即回滚
	Transaction(ctx context.Context, fn func(UserRepository) error) error
}
