package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/sarayu-labs/chat-insights/internal/flow_insights/domain"
)

// Parser decodes one upload format into a Table.
type Parser interface {
	Parse(r io.Reader) (*Table, error)
	SupportedFormats() []string
}

type Registry struct {
	parsers map[string]Parser
}

// NewRegistry returns a registry holding the CSV and XLSX parsers.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]Parser)}
	r.Register(&CSVParser{})
	r.Register(&XLSXParser{})
	return r
}

// Register binds p to every format it supports, replacing earlier parsers.
func (r *Registry) Register(p Parser) {
	for _, f := range p.SupportedFormats() {
		r.parsers[f] = p
	}
}

func (r *Registry) Get(format string) (Parser, error) {
	p, ok := r.parsers[format]
	if !ok {
		return nil, fmt.Errorf("%w: no parser for format %q", domain.ErrUnsupportedFile, format)
	}
	return p, nil
}

// Sniff picks a format from the file name. Matching is by substring, so
// "report.csv.txt" is still read as CSV.
func Sniff(filename string) (string, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "csv"):
		return "csv", nil
	case strings.Contains(name, "xls"):
		return "xlsx", nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, filename)
}

// Decode sniffs the format of filename and parses content with the matching parser.
func (r *Registry) Decode(filename string, content []byte) (*Table, error) {
	format, err := Sniff(filename)
	if err != nil {
		return nil, err
	}
	p, err := r.Get(format)
	if err != nil {
		return nil, err
	}
	t, err := p.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}
	return t, nil
}
