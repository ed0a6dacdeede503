package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"user-roles-api/internal/domain"
)

// Migrate 建 roles / users / role_user（中间表外键级联删除）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Role{}, &domain.User{})
}

// SeedRoles 写入参考角色；已存在的 id 跳过，可重复执行
func SeedRoles(ctx context.Context, db *gorm.DB) (int64, error) {
	roles := append([]domain.Role(nil), domain.SeedRoles...)
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&roles)
	return res.RowsAffected, res.Error
}
