package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/textobjects/internal/log"
)

func TestResolveLogLevel(t *testing.T) {
	t.Setenv("TEXTOBJECTS_LOG_LEVEL", "")

	level, err := resolveLogLevel("")
	require.NoError(t, err)
	require.Equal(t, log.LevelDebug, level)

	level, err = resolveLogLevel("warn")
	require.NoError(t, err)
	require.Equal(t, log.LevelWarn, level)

	t.Setenv("TEXTOBJECTS_LOG_LEVEL", "error")
	level, err = resolveLogLevel("")
	require.NoError(t, err)
	require.Equal(t, log.LevelError, level)

	level, err = resolveLogLevel("info")
	require.NoError(t, err)
	require.Equal(t, log.LevelInfo, level, "flag wins over env")

	_, err = resolveLogLevel("loud")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--log-level")
}
