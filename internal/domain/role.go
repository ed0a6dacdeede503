package domain

import "context"

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;not null" json:"name"`
}

func (Role) TableName() string { return "roles" }

// UserRole 对应 role_user 中间表（无额外字段）
type UserRole struct {
	UserID uint `gorm:"primaryKey"`
	RoleID uint `gorm:"primaryKey"`
}

func (UserRole) TableName() string { return "role_user" }

// SeedRoles 固定的参考角色
var SeedRoles = []Role{
	{ID: 1, Name: "Author"},
	{ID: 2, Name: "Editor"},
	{ID: 3, Name: "Subscriber"},
	{ID: 4, Name: "Administrator"},
}

type RoleRepository interface {
	List(ctx context.Context) ([]Role, error)
	// MissingIDs 返回 ids 中在 roles 表不存在的那些
	MissingIDs(ctx context.Context, ids []uint) ([]uint, error)
}
