package model

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Amount is a monetary or quantity value. Decoding is deliberately lenient:
// a missing, null, or non-numeric value becomes zero instead of failing the
// whole document, so the engine never sees a NaN.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromFloat converts a float, normalizing non-finite values to zero.
func AmountFromFloat(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}
	}
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

// ParseAmount parses a decimal string, coercing malformed input to zero.
func ParseAmount(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return Amount{Decimal: d}
}

// UnmarshalJSON accepts a JSON number or numeric string; anything else
// decodes to zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// MarshalJSON emits the value as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Percent is a percentage value (45.0 means 45%). Decoding follows the same
// lenient rule as Amount.
type Percent float64

// UnmarshalJSON accepts a JSON number; anything else decodes to zero.
func (p *Percent) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*p = 0
		return nil
	}
	*p = Percent(f)
	return nil
}

// Abs returns the magnitude of the percentage.
func (p Percent) Abs() Percent {
	if p < 0 {
		return -p
	}
	return p
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString renders with an explicit sign; zero renders as "-".
func (p Percent) SignedString() string {
	s := fmt.Sprintf("%+.2f%%", float64(p))
	if s == "+0.00%" {
		return "-"
	}
	return s
}
