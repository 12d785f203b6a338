package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableRender(t *testing.T) {
	buf := &bytes.Buffer{}
	table := NewTableTo(buf, "VMID", "NAME", "NODE", "STATUS")
	table.AddRow("100", "web01", "pve1", "running")
	table.AddRow("205", "", "pve2", "stopped")
	table.Render()

	out := buf.String()
	assert.Contains(t, out, "VMID")
	assert.Contains(t, out, "web01")
	// Empty cells are padded with a dash.
	assert.Contains(t, out, "-")
	assert.Equal(t, 2, table.Count())
}

func TestTablePadsShortRows(t *testing.T) {
	buf := &bytes.Buffer{}
	table := NewTableTo(buf, "A", "B", "C")
	table.AddRow("x")
	table.Render()

	assert.Contains(t, buf.String(), "x")
	assert.Equal(t, 1, table.Count())
}
