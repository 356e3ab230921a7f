package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("extraction complete", zap.Int("tasks", 3))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "extraction complete", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 3, entry["tasks"])
	assert.Contains(t, entry, "ts")
}

func TestLevelParsing(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: " DEBUG ", Output: &buf})
	require.NoError(t, err)
	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	_, err = New(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Config{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	log, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, log)
}
