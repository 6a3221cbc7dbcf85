package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/config"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/logging"
)

func TestTurnLogger_MapsLevelsAndFields(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := logging.NewTurnLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)).With("run", "abc")

	// Act
	logger.Log(common.LevelDebug, "hidden", nil)
	logger.Log(common.LevelWarning, "sector unpaid", map[string]interface{}{"sector": 12})

	// Assert
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "sector unpaid", entry["message"])
	assert.Equal(t, float64(12), entry["sector"])
	assert.Equal(t, "abc", entry["run"])
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")

	zl, closer, err := logging.New(config.LoggingConfig{Level: "debug", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)
	logging.NewTurnLogger(zl).Log(common.LevelError, "phase failed", map[string]interface{}{"phase": "production"})
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"phase":"production"`)
	assert.Contains(t, string(data), `"level":"error"`)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, _, err := logging.New(config.LoggingConfig{Level: "loud", Output: "stdout"})

	assert.Error(t, err)
}
