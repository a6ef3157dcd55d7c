package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/moneymap-dev/moneymap/internal/model"
)

// ComputeTypeTotals sums base-currency value per asset type: accounts
// contribute their balance under the account type, positions their market
// value under the position's asset type. Types with no entries are absent
// from the map and read as zero downstream.
func ComputeTypeTotals(balances map[string]AccountBalance, valuations []PositionValuation) map[model.AssetType]decimal.Decimal {
	totals := make(map[model.AssetType]decimal.Decimal)
	for _, b := range balances {
		totals[b.Type] = totals[b.Type].Add(b.BaseBalance)
	}
	for _, v := range valuations {
		totals[v.AssetType] = totals[v.AssetType].Add(v.BaseMarketValue)
	}
	return totals
}

// TotalAssets is the grand total across all asset types.
func TotalAssets(totals map[model.AssetType]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum
}

// ComputeAllocation turns type totals into percentages over the full fixed
// asset-type set. When the grand total is zero every percentage is zero.
func ComputeAllocation(totals map[model.AssetType]decimal.Decimal, totalAssets decimal.Decimal) map[model.AssetType]model.Percent {
	out := make(map[model.AssetType]model.Percent, len(model.AssetTypes()))
	hundred := decimal.NewFromInt(100)
	for _, at := range model.AssetTypes() {
		if totalAssets.IsZero() {
			out[at] = 0
			continue
		}
		pct, _ := totals[at].Div(totalAssets).Mul(hundred).Float64()
		out[at] = model.Percent(pct)
	}
	return out
}

// Drift is the deviation of one asset type from its target percentage.
type Drift struct {
	Type     model.AssetType `json:"type"`
	Target   model.Percent   `json:"target"`
	Actual   model.Percent   `json:"actual"`
	Diff     model.Percent   `json:"diff"`
	Alerting bool            `json:"alerting"`
}

// ComputeDrift compares actual allocation against targets for every asset
// type, sorted by descending |diff|. The sort is stable, so equal
// magnitudes keep the canonical asset-type enumeration order. An entry
// alerts when |diff| >= threshold (at-threshold counts).
func ComputeDrift(targets model.Targets, actual map[model.AssetType]model.Percent) []Drift {
	out := make([]Drift, 0, len(model.AssetTypes()))
	for _, at := range model.AssetTypes() {
		target := targets.Allocation[at]
		act := actual[at]
		diff := act - target
		out = append(out, Drift{
			Type:     at,
			Target:   target,
			Actual:   act,
			Diff:     diff,
			Alerting: diff.Abs() >= targets.DriftThreshold,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Diff.Abs() > out[j].Diff.Abs()
	})
	return out
}

// RebalanceSuggestion proposes moving a percentage of total assets from the
// most overweight asset type to the most underweight one. Advisory only.
type RebalanceSuggestion struct {
	From    model.AssetType `json:"from"`
	To      model.AssetType `json:"to"`
	Percent model.Percent   `json:"percent"`
}

// SuggestRebalance picks the largest positive and largest negative drift
// and proposes shifting min(over, -under) percent between them. Returns nil
// when either side is absent.
func SuggestRebalance(drifts []Drift) *RebalanceSuggestion {
	var over, under *Drift
	for i := range drifts {
		d := drifts[i]
		if d.Diff > 0 && (over == nil || d.Diff > over.Diff) {
			over = &drifts[i]
		}
		if d.Diff < 0 && (under == nil || d.Diff < under.Diff) {
			under = &drifts[i]
		}
	}
	if over == nil || under == nil {
		return nil
	}
	move := over.Diff
	if -under.Diff < move {
		move = -under.Diff
	}
	return &RebalanceSuggestion{From: over.Type, To: under.Type, Percent: move}
}
