package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, cfg *Config) *bytes.Buffer {
	t.Helper()

	InitGlobalLogger(cfg)
	t.Cleanup(func() { InitGlobalLogger(&Config{}) })

	var buf bytes.Buffer
	SetOutput(&buf)

	return &buf
}

func TestInfoWritesKeyValues(t *testing.T) {
	buf := capture(t, &Config{LogLevel: "debug"})

	Info("upload stored", "name", "a.png", "size", 12, "err", errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "upload stored", entry["message"])
	assert.Equal(t, "a.png", entry["name"])
	assert.EqualValues(t, 12, entry["size"])
	assert.Equal(t, "boom", entry["err"])
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, &Config{LogLevel: "error"})

	Debug("hidden")
	Info("hidden")
	assert.Empty(t, buf.String())

	Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestEmptyLevelMeansInfo(t *testing.T) {
	buf := capture(t, &Config{})

	Debug("hidden")
	assert.Empty(t, buf.String())

	Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestOddKeyValues(t *testing.T) {
	buf := capture(t, &Config{})

	Warn("odd", "dangling")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry, "dangling")
	assert.NotEmpty(t, entry["dangling"])
}

func TestFileTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uploadgate.log")
	InitGlobalLogger(&Config{Filename: path, Targets: []string{TargetFile}, LogLevel: "info"})
	t.Cleanup(func() { InitGlobalLogger(&Config{}) })

	Info("to file")

	assert.FileExists(t, path)
}
