package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		json  bool
		debug bool
	}{
		{"console info", false, false},
		{"console debug", false, true},
		{"json info", true, false},
		{"json debug", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.json, tt.debug)
			require.NoError(t, err)
			require.NotNil(t, log)

			if tt.debug {
				assert.True(t, log.Core().Enabled(-1), "debug level should be enabled")
			} else {
				assert.False(t, log.Core().Enabled(-1), "debug level should be disabled")
			}
		})
	}
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "short", TruncateForLog("short", 10))
	assert.Equal(t, "abc...", TruncateForLog("abcdefgh", 3))
	assert.Equal(t, "", TruncateForLog("anything", 0))
	assert.Equal(t, "trimmed", TruncateForLog("  trimmed  ", 20))

	long := strings.Repeat("x", 500)
	got := TruncateForLog(long, 100)
	assert.Len(t, got, 103)
	assert.True(t, strings.HasSuffix(got, "..."))
}
