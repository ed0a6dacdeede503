package repo

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"user-roles-api/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	mysqlDupEntry        = 1062
	mysqlNoReferencedRow = 1452
)

// isDuplicate 唯一约束冲突。先看 gorm 翻译后的错误，再按各驱动的原生错误码兜底
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDupEntry
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlNoReferencedRow
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

// isClassified 已经是领域错误的不再二次包装
func isClassified(err error) bool {
	return errors.Is(err, domain.ErrStore) ||
		errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrEmailTaken) ||
		errors.Is(err, domain.ErrUnknownRole)
}

// classify 把存储层错误映射为领域错误，原始错误保留在消息里
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case isClassified(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", domain.ErrUserNotFound, err)
	case isDuplicate(err):
		return fmt.Errorf("%w: %v", domain.ErrEmailTaken, err)
	case isForeignKey(err):
		return fmt.Errorf("%w: %v", domain.ErrUnknownRole, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
}
