package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Debug("hidden %d", 1)
	log.Info("reserved booking id=%d", 42)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"reserved booking id=42"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}

func TestFromZap_FormatsMessages(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromZap(zap.New(core))

	log.Warn("slot %s taken", "10:00")
	log.With("turf_id", 7).Error("commit failed: %v", assert.AnError)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "slot 10:00 taken", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, int64(7), entries[1].ContextMap()["turf_id"])
}
