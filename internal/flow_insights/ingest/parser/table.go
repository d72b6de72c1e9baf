package parser

import (
	"strings"

	"github.com/sarayu-labs/chat-insights/internal/flow_insights/domain"
)

// Table is a decoded upload: a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

func newTable(records [][]string) *Table {
	t := &Table{}
	if len(records) == 0 {
		return t
	}
	header := make([]string, len(records[0]))
	copy(header, records[0])
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	t.Header = header
	t.Rows = records[1:]
	return t
}

// Column returns the cells under name, one per data row. Cells missing from a
// short row read as "".
func (t *Table) Column(name string) ([]string, error) {
	col := -1
	for i, h := range t.Header {
		if h == name {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, domain.MissingColumn(name)
	}

	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if col < len(row) {
			out[i] = row[col]
		}
	}
	return out, nil
}
