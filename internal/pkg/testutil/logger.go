package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yalmn/cryptomorph/internal/pkg/config"
	"github.com/yalmn/cryptomorph/internal/pkg/logger"
)

// SetupTestLogger returns a console logger at info level.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	log, err := logger.New(config.NewLoggerSettings(config.LogLevelInfo, ""))
	require.NoError(t, err)

	return log
}
