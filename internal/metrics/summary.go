package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/moneymap-dev/moneymap/internal/model"
)

// Summary bundles every derived figure for one snapshot. This is what the
// views (CLI reports, HTTP API) consume.
type Summary struct {
	BaseCurrency model.Currency                      `json:"baseCurrency"`
	Balances     map[string]AccountBalance           `json:"balances"`
	Valuations   []PositionValuation                 `json:"valuations"`
	TypeTotals   map[model.AssetType]decimal.Decimal `json:"typeTotals"`
	TotalAssets  decimal.Decimal                     `json:"totalAssets"`
	Allocation   map[model.AssetType]model.Percent   `json:"allocation"`
	Drift        []Drift                             `json:"drift"`
	Rebalance    *RebalanceSuggestion                `json:"rebalance,omitempty"`
	NetWorth     []NetWorthPoint                     `json:"netWorth"`
	Cashflow     []MonthlyFlow                       `json:"cashflow"`
	Goals        []GoalProgress                      `json:"goals"`
}

// Compute derives the full summary from a snapshot. Called after every
// mutation; everything is recomputed from the raw records, nothing is
// cached.
func Compute(doc model.Document) Summary {
	balances := ComputeAccountBalances(doc.Accounts, doc.Transactions, doc.Settings)
	valuations := ComputePositionValuations(doc.Positions, doc.Settings)
	totals := ComputeTypeTotals(balances, valuations)
	total := TotalAssets(totals)
	allocation := ComputeAllocation(totals, total)
	drift := ComputeDrift(doc.Targets, allocation)

	return Summary{
		BaseCurrency: doc.Settings.BaseCurrency,
		Balances:     balances,
		Valuations:   valuations,
		TypeTotals:   totals,
		TotalAssets:  total,
		Allocation:   allocation,
		Drift:        drift,
		Rebalance:    SuggestRebalance(drift),
		NetWorth:     ComputeNetWorthSeries(doc.Transactions, doc.Accounts, valuations, doc.Settings),
		Cashflow:     ComputeMonthlyIncomeExpense(doc.Transactions, doc.Accounts, doc.Settings),
		Goals:        ComputeGoalProgress(doc.Goals, balances),
	}
}
