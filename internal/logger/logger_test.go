package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/afval-ical/internal/logger"
)

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{"console", "json", ""} {
		t.Run("format="+format, func(t *testing.T) {
			l, err := logger.New(logger.Config{Level: "warn", Format: format})
			require.NoError(t, err)
			require.NotNil(t, l)

			// Must not panic at any level.
			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message", logger.String("key", "value"))
			l.Error("error message", logger.Error(errors.New("boom")))
		})
	}
}

func TestConfig_SetDefaults(t *testing.T) {
	var cfg logger.Config
	cfg.SetDefaults()

	assert.Equal(t, logger.DefaultLevel, cfg.Level)
	assert.Equal(t, logger.DefaultFormat, cfg.Format)
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
}

func TestWith_ReturnsDistinctLogger(t *testing.T) {
	base, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	enriched := base.With(logger.String("postal_code", "1234AB"), logger.Int("fragments", 3))
	assert.NotSame(t, base, enriched)
	enriched.Info("filtered out by level")
}

func TestNop(t *testing.T) {
	l := logger.NewNop()
	assert.Same(t, l, l.With(logger.String("k", "v")))
	assert.NoError(t, l.Sync())
}
