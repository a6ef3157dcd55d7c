// Package importer parses external transaction files into ledger rows that
// the caller attaches to an account.
package importer

import (
	"io"
	"strings"

	"github.com/moneymap-dev/moneymap/internal/model"
)

// Row is one parsed transaction before it is attached to an account.
// Amounts are in the target account's currency.
type Row struct {
	Date   model.Date
	Kind   model.TxKind
	Amount model.Amount
	Fee    model.Amount
	Tax    model.Amount
	Note   string
}

// Parser converts a file into Rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{})
	return r
}
