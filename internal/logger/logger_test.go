package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "info", "json")

	WithService("conflicts").Info("scan finished", "conflicts", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scan finished", entry["msg"])
	assert.Equal(t, "conflicts", entry["service"])
	assert.EqualValues(t, 3, entry["conflicts"])
}

func TestInitializeWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "warn", "text")

	Info("hidden")
	EnterMethod("DetectConflicts")
	Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "method entered")
	assert.Contains(t, out, "shown")
}

func TestDatabaseResult(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "debug", "text")

	DatabaseResult("list_trips", 4, nil)
	DatabaseResult("list_shifts", 0, errors.New("connection reset"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "rows=4")
	assert.Contains(t, lines[1], "connection reset")
	assert.Contains(t, lines[1], "level=ERROR")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("Debug").String())
	assert.Equal(t, "WARN", parseLevel("warning").String())
	assert.Equal(t, "INFO", parseLevel("nonsense").String())
}
