package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"user-roles-api/internal/core/config"
)

func TestRotateFileReceivesEntries(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := New(config.Log{
		Level: "info",
		JSON:  true,
		Rotate: config.Rotate{
			Enable:    true,
			Filename:  file,
			MaxSizeMB: 1,
		},
	})
	l.Info("user created", zap.Uint("user_id", 7))
	l.Debug("dropped below level")
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"user created"`)
	assert.Contains(t, string(b), `"user_id":7`)
	assert.NotContains(t, string(b), "dropped below level")
}

func TestBadLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := Build(Options{Level: "loud"})
	defer cleanup()
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestToStdLogger(t *testing.T) {
	l, cleanup := Build(Options{Level: "info"})
	defer cleanup()
	std := ToStdLogger(l, zapcore.WarnLevel)
	require.NotNil(t, std)
	std.Printf("slow query %d ms", 250)
}
