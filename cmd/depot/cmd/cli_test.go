package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePairs(t *testing.T) {
	m := parsePairs([]string{"sha256=deadbeef", "path=a=b.txt"})
	require.Len(t, m, 2)
	assert.Equal(t, "deadbeef", m["sha256"])
	// values may themselves contain '='
	assert.Equal(t, "a=b.txt", m["path"])

	assert.Nil(t, parsePairs(nil))
}

func TestParsePairsRejectsBareKeys(t *testing.T) {
	var fataled bool
	saved := logFatalln
	logFatalln = func(...interface{}) { fataled = true }
	defer func() { logFatalln = saved }()

	_ = parsePairs([]string{"no-separator"})
	assert.True(t, fataled)
}

func TestDefaultStorePath(t *testing.T) {
	assert.NotEmpty(t, defaultStorePath())
}
