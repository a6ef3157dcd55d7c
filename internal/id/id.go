// Package id assigns opaque record identifiers. IDs carry no structure;
// records are only ever looked up by exact match.
package id

import "github.com/google/uuid"

// New returns a fresh opaque record ID.
func New() string {
	return uuid.NewString()
}

// Valid reports whether s looks like an ID this package produced. Imported
// documents may carry foreign IDs; those are accepted anywhere a record ID
// is stored, so this is only used for diagnostics.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
