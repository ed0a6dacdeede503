package domain

import "errors"

var (
	// ErrStore 其他所有持久化失败（连接、约束、SQL 错误）
	ErrStore = errors.New("store error")

	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken email 唯一约束冲突
	ErrEmailTaken = errors.New("email already taken")
	// ErrUnknownRole role_user 外键指向不存在的角色
	ErrUnknownRole = errors.New("unknown role")
)
