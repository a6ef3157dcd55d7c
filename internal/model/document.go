// Package model defines the record set of the portfolio ledger: closed,
// explicitly-typed value records owned by a single top-level Document.
// Records never mutate in place; every change replaces the whole record.
package model

import (
	"encoding/json"
	"fmt"
)

// Account is a user-declared account. OpeningBalance is signed and in the
// account's own currency.
type Account struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Type           AssetType `json:"type"`
	Currency       Currency  `json:"currency"`
	OpeningBalance Amount    `json:"openingBalance"`
}

// Transaction is one ledger movement against an account. Amount, Fee, and
// Tax are in the owning account's currency.
type Transaction struct {
	ID        string `json:"id"`
	Date      Date   `json:"date"`
	AccountID string `json:"accountId"`
	Kind      TxKind `json:"kind"`
	Amount    Amount `json:"amount"`
	Fee       Amount `json:"fee"`
	Tax       Amount `json:"tax"`
	Note      string `json:"note"`
}

// Net returns the balance effect magnitude: amount - fee - tax.
func (t Transaction) Net() Amount {
	return NewAmount(t.Amount.Sub(t.Fee.Decimal).Sub(t.Tax.Decimal))
}

// Signed returns the balance effect with the kind's sign applied.
func (t Transaction) Signed() Amount {
	net := t.Net()
	if t.Kind.Inflow() {
		return net
	}
	return NewAmount(net.Neg())
}

// Position is a holding marked to a manually updated last price.
type Position struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	AssetType AssetType `json:"assetType"`
	Quantity  Amount    `json:"quantity"`
	AvgPrice  Amount    `json:"avgPrice"`
	Currency  Currency  `json:"currency"`
	LastPrice Amount    `json:"lastPrice"`
}

// Goal is a savings goal funded by a set of linked accounts. TargetAmount
// is in the base currency.
type Goal struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	TargetAmount Amount   `json:"targetAmount"`
	Deadline     Date     `json:"deadline"`
	AccountIDs   []string `json:"accountIds"`
	Note         string   `json:"note"`
}

// Settings holds the user's global preferences.
type Settings struct {
	BaseCurrency Currency `json:"baseCurrency"`
	USDKRWRate   Amount   `json:"usdKrwRate"`
	RiskProfile  string   `json:"riskProfile"`
	Advanced     bool     `json:"advanced"`
}

// Targets holds the target allocation per asset type (expected, not
// enforced, to sum to 100) and the drift alert threshold.
type Targets struct {
	Allocation     map[AssetType]Percent `json:"allocation"`
	DriftThreshold Percent               `json:"driftThreshold"`
}

// Document is the whole record set: the sole persisted artifact and the
// exact shape of manual export/import.
type Document struct {
	Settings     Settings      `json:"settings"`
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
	Positions    []Position    `json:"positions"`
	Goals        []Goal        `json:"goals"`
	Targets      Targets       `json:"targets"`
}

// DefaultUSDKRWRate seeds new and sparse documents with a manual exchange
// rate, so conversion never falls back to pass-through on a fresh setup.
const DefaultUSDKRWRate = "1350"

// DefaultDocument returns an empty record set with KRW defaults.
func DefaultDocument() Document {
	return Document{
		Settings: Settings{
			BaseCurrency: KRW,
			USDKRWRate:   ParseAmount(DefaultUSDKRWRate),
			RiskProfile:  "moderate",
		},
		Accounts:     []Account{},
		Transactions: []Transaction{},
		Positions:    []Position{},
		Goals:        []Goal{},
		Targets: Targets{
			Allocation:     map[AssetType]Percent{},
			DriftThreshold: 5,
		},
	}
}

// unquote unwraps a JSON string token.
func unquote(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("expected string: %w", err)
	}
	return s, nil
}
