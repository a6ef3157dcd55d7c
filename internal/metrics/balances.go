package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/moneymap-dev/moneymap/internal/model"
)

// AccountBalance is the running balance of one account, in the account's
// own currency and converted to the base currency.
type AccountBalance struct {
	AccountID   string          `json:"accountId"`
	Name        string          `json:"name"`
	Type        model.AssetType `json:"type"`
	Currency    model.Currency  `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	BaseBalance decimal.Decimal `json:"baseBalance"`
}

// ComputeAccountBalances folds every transaction onto its account's opening
// balance. The fold is order-independent (pure addition and subtraction);
// transactions referencing a missing account contribute nothing.
func ComputeAccountBalances(accounts []model.Account, transactions []model.Transaction, settings model.Settings) map[string]AccountBalance {
	running := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		running[a.ID] = a.OpeningBalance.Decimal
	}
	for _, t := range transactions {
		bal, ok := running[t.AccountID]
		if !ok {
			continue
		}
		running[t.AccountID] = bal.Add(t.Signed().Decimal)
	}

	out := make(map[string]AccountBalance, len(accounts))
	for _, a := range accounts {
		bal := running[a.ID]
		out[a.ID] = AccountBalance{
			AccountID:   a.ID,
			Name:        a.Name,
			Type:        a.Type,
			Currency:    a.Currency,
			Balance:     bal,
			BaseBalance: Convert(bal, a.Currency, settings),
		}
	}
	return out
}
