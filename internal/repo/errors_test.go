package repo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"user-roles-api/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"gorm not found", gorm.ErrRecordNotFound, domain.ErrUserNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, domain.ErrEmailTaken},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, domain.ErrUnknownRole},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, domain.ErrEmailTaken},
		{"postgres fk", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), domain.ErrUnknownRole},
		{"postgres other", &pgconn.PgError{Code: "57014"}, domain.ErrStore},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, domain.ErrEmailTaken},
		{"mysql fk", &mysql.MySQLError{Number: 1452}, domain.ErrUnknownRole},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, domain.ErrEmailTaken},
		{"sqlite fk", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, domain.ErrUnknownRole},
		{"connection", errors.New("dial tcp: connection refused"), domain.ErrStore},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tc.in), tc.want)
		})
	}
}

func TestClassifyKeepsDomainErrors(t *testing.T) {
	err := fmt.Errorf("%w: id=3", domain.ErrUserNotFound)
	assert.Same(t, err, classify(err))
	assert.NoError(t, classify(nil))
}
