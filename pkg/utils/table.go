package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// Table renders aligned tabular output for the listing commands.
type Table struct {
	headers []string
	rows    [][]string
	writer  *tabwriter.Writer
}

// NewTable creates a table writing to stdout with the given headers.
func NewTable(headers ...string) *Table {
	return NewTableTo(os.Stdout, headers...)
}

// NewTableTo creates a table writing to w with the given headers.
func NewTableTo(w io.Writer, headers ...string) *Table {
	return &Table{
		headers: headers,
		writer:  tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
	}
}

// AddRow appends a row, padding missing or empty cells with "-".
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(values) && values[i] != "" {
			row[i] = values[i]
		} else {
			row[i] = "-"
		}
	}
	t.rows = append(t.rows, row)
}

// Render prints headers, a separator line, and all rows.
func (t *Table) Render() {
	fmt.Fprintf(t.writer, "%s\n", strings.Join(t.headers, "\t"))

	separators := make([]string, len(t.headers))
	for i, header := range t.headers {
		separators[i] = strings.Repeat("-", len(header))
	}
	fmt.Fprintf(t.writer, "%s\n", strings.Join(separators, "\t"))

	for _, row := range t.rows {
		fmt.Fprintf(t.writer, "%s\n", strings.Join(row, "\t"))
	}

	t.writer.Flush()
}

// Count returns the number of data rows.
func (t *Table) Count() int {
	return len(t.rows)
}
