package dlogger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger(t *testing.T) {
	for _, level := range []string{LogLevelInfo, LogLevelDebug, LogLevelNone} {
		logger, err := GetLogger(level)
		require.NoError(t, err)
		require.NotNil(t, logger)
	}

	_, err := GetLogger("not-a-level")
	require.Error(t, err)
}

func TestGetLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := GetLoggerWithWriter(LogLevelDebug, &buf)
	require.NoError(t, err)

	logger.Debug("checking the plumbing")
	require.NoError(t, logger.Sync())
	assert.Contains(t, buf.String(), "checking the plumbing")

	// info level filters debug entries out
	buf.Reset()
	logger, err = GetLoggerWithWriter(LogLevelInfo, &buf)
	require.NoError(t, err)
	logger.Debug("should not appear")
	require.NoError(t, logger.Sync())
	assert.Empty(t, buf.String())
}
