package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-roles-api/internal/domain"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass, want string
	}{
		{
			name: "native dsn kept",
			in:   "app:secret@tcp(127.0.0.1:3306)/users?parseTime=true",
			want: "app:secret@tcp(127.0.0.1:3306)/users?parseTime=true",
		},
		{
			name: "url form gets defaults",
			in:   "mysql://app:secret@db:3306/users",
			want: "app:secret@tcp(db:3306)/users?charset=utf8mb4&parseTime=true",
		},
		{
			name: "jdbc params translated",
			in:   "jdbc:mysql://db:3306/users?useUnicode=true&characterEncoding=utf8&useSSL=false&serverTimezone=UTC",
			user: "root",
			pass: "pw",
			want: "root:pw@tcp(db:3306)/users?charset=utf8&loc=UTC&parseTime=true&tls=false",
		},
		{
			name: "credentials from query",
			in:   "mysql://db:3306/users?user=u&password=p",
			want: "u:p@tcp(db:3306)/users?charset=utf8mb4&parseTime=true",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "app:****@tcp(db:3306)/users", maskDSN("app:secret@tcp(db:3306)/users"))
	assert.Equal(t, "tcp(db:3306)/users", maskDSN("tcp(db:3306)/users"))
}

func TestNewGormUnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestMigrateAndSeedRoles(t *testing.T) {
	db, err := NewGorm(Opts{
		Driver:       "sqlite",
		DSN:          "file:migrate_seed?mode=memory&cache=shared&_foreign_keys=on",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	ctx := context.Background()
	n, err := SeedRoles(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	// 第二次执行不报错也不重复
	_, err = SeedRoles(ctx, db)
	require.NoError(t, err)

	var roles []domain.Role
	require.NoError(t, db.Order("id").Find(&roles).Error)
	assert.Equal(t, domain.SeedRoles, roles)

	assert.True(t, db.Migrator().HasTable("role_user"))
}
