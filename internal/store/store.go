// Package store persists the record set as one JSON document in the data
// directory. The document is the sole persisted artifact; every save
// rewrites it whole.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/moneymap-dev/moneymap/internal/model"
)

// FileName is the fixed name of the document inside the data directory.
const FileName = "moneymap.json"

// Store reads and writes the document under a data directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the document's absolute location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Load reads the document. A missing file is not an error: it returns
// (nil, nil) so callers can fall back to an empty record set.
func (s *Store) Load() (*model.Document, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	normalize(&doc)
	return &doc, nil
}

// Save writes the document atomically: marshal to a temp file in the same
// directory, then rename over the target.
func (s *Store) Save(doc model.Document) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing document: %w", err)
	}
	return nil
}

// Export writes the document to w in the exact persisted shape.
func Export(w io.Writer, doc model.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("exporting document: %w", err)
	}
	return nil
}

// Import parses a document from r. A parse failure (malformed JSON, value
// outside a closed enumeration) is returned as an error with no partial
// result; referential integrity is NOT checked — orphaned children are the
// caller's display problem, not an import failure.
func Import(r io.Reader) (model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Document{}, fmt.Errorf("reading import: %w", err)
	}
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, fmt.Errorf("parsing import: %w", err)
	}
	normalize(&doc)
	return doc, nil
}

// normalize replaces nil collections so downstream code can range and
// append without nil checks, and fills settings left empty by a sparse
// document.
func normalize(doc *model.Document) {
	if doc.Accounts == nil {
		doc.Accounts = []model.Account{}
	}
	if doc.Transactions == nil {
		doc.Transactions = []model.Transaction{}
	}
	if doc.Positions == nil {
		doc.Positions = []model.Position{}
	}
	if doc.Goals == nil {
		doc.Goals = []model.Goal{}
	}
	if doc.Targets.Allocation == nil {
		doc.Targets.Allocation = map[model.AssetType]model.Percent{}
	}
	if doc.Settings.BaseCurrency == "" {
		doc.Settings.BaseCurrency = model.KRW
	}
	if doc.Settings.USDKRWRate.IsZero() {
		doc.Settings.USDKRWRate = model.ParseAmount(model.DefaultUSDKRWRate)
	}
}
