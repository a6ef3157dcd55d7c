package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/moneymap-dev/moneymap/internal/model"
)

// CSVParser parses the generic transaction CSV format:
// date,kind,amount,fee,tax,note (header row required).
type CSVParser struct{}

const (
	csvNumFields = 6
	colDate      = 0
	colKind      = 1
	colAmount    = 2
	colFee       = 3
	colTax       = 4
	colNote      = 5
)

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads the CSV and returns Rows.
func (p *CSVParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = csvNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transaction CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (Row, error) {
	date, err := model.ParseDate(rec[colDate])
	if err != nil {
		return Row{}, err
	}
	kind, err := model.ParseTxKind(rec[colKind])
	if err != nil {
		return Row{}, err
	}
	// Amounts follow the document's lenient numeric rule: malformed
	// values become zero rather than failing the file.
	return Row{
		Date:   date,
		Kind:   kind,
		Amount: model.ParseAmount(rec[colAmount]),
		Fee:    model.ParseAmount(rec[colFee]),
		Tax:    model.ParseAmount(rec[colTax]),
		Note:   rec[colNote],
	}, nil
}
