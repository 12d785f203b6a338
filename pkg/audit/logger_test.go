package audit

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit", "audit.json")

	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	l.Record(Event{
		Operation:  "create",
		VM:         "web01",
		Node:       "pve1",
		VMID:       100,
		Snapshot:   "nightly",
		DurationMS: 1500,
	})
	l.Record(Event{
		Operation: "rollback",
		VM:        "web01",
		Snapshot:  "nightly",
		Error:     errors.New("task failed: job errored"),
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "create", first["operation"])
	assert.Equal(t, "success", first["result"])
	assert.Equal(t, "nightly", first["snapshot"])
	assert.NotEmpty(t, first["correlation_id"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "failure", second["result"])
	assert.Contains(t, second["error"], "job errored")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Record(Event{Operation: "create"})
	assert.NoError(t, l.Close())
}
