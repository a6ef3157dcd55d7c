package metrics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneymap-dev/moneymap/internal/model"
)

func TestComputeTypeTotals(t *testing.T) {
	balances := map[string]AccountBalance{
		"a1": {AccountID: "a1", Type: model.AssetCash, BaseBalance: dec("1000")},
		"a2": {AccountID: "a2", Type: model.AssetCash, BaseBalance: dec("500")},
	}
	valuations := []PositionValuation{
		{PositionID: "p1", AssetType: model.AssetStock, BaseMarketValue: dec("2000")},
	}
	got := ComputeTypeTotals(balances, valuations)
	assert.True(t, got[model.AssetCash].Equal(dec("1500")))
	assert.True(t, got[model.AssetStock].Equal(dec("2000")))
	assert.NotContains(t, got, model.AssetBond)
}

func TestComputeAllocation_SumsToHundred(t *testing.T) {
	totals := map[model.AssetType]decimal.Decimal{
		model.AssetCash:  dec("2500"),
		model.AssetStock: dec("5000"),
		model.AssetBond:  dec("2500"),
	}
	got := ComputeAllocation(totals, TotalAssets(totals))

	require.Len(t, got, len(model.AssetTypes()))
	var sum float64
	for _, at := range model.AssetTypes() {
		sum += float64(got[at])
	}
	assert.InDelta(t, 100.0, sum, 0.0001)
	assert.InDelta(t, 50.0, float64(got[model.AssetStock]), 0.0001)
	assert.Equal(t, model.Percent(0), got[model.AssetCrypto])
}

func TestComputeAllocation_ZeroTotal(t *testing.T) {
	got := ComputeAllocation(map[model.AssetType]decimal.Decimal{}, decimal.Zero)
	require.Len(t, got, len(model.AssetTypes()))
	for at, pct := range got {
		assert.Equal(t, model.Percent(0), pct, "type %s", at)
	}
}

func TestComputeDrift_SortedByAbsDiffDescending(t *testing.T) {
	targets := model.Targets{
		Allocation: map[model.AssetType]model.Percent{
			model.AssetStock: 45,
			model.AssetBond:  30,
			model.AssetCash:  25,
		},
		DriftThreshold: 5,
	}
	actual := map[model.AssetType]model.Percent{
		model.AssetStock: 50, // diff +5
		model.AssetBond:  20, // diff -10
		model.AssetCash:  30, // diff +5
	}
	got := ComputeDrift(targets, actual)
	require.Len(t, got, len(model.AssetTypes()))

	assert.Equal(t, model.AssetBond, got[0].Type)
	// Equal |diff| keeps enumeration order: Cash before Stock.
	assert.Equal(t, model.AssetCash, got[1].Type)
	assert.Equal(t, model.AssetStock, got[2].Type)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, float64(got[i-1].Diff.Abs()), float64(got[i].Diff.Abs()))
	}
}

func TestComputeDrift_AtThresholdAlerts(t *testing.T) {
	// Exactly at threshold counts as alerting (>=, not >).
	targets := model.Targets{
		Allocation:     map[model.AssetType]model.Percent{model.AssetStock: 45},
		DriftThreshold: 5,
	}
	actual := map[model.AssetType]model.Percent{model.AssetStock: 50}
	got := ComputeDrift(targets, actual)

	stock := findDrift(t, got, model.AssetStock)
	assert.Equal(t, model.Percent(5), stock.Diff)
	assert.True(t, stock.Alerting)
}

func TestComputeDrift_BelowThresholdDoesNotAlert(t *testing.T) {
	targets := model.Targets{
		Allocation:     map[model.AssetType]model.Percent{model.AssetStock: 45},
		DriftThreshold: 5,
	}
	actual := map[model.AssetType]model.Percent{model.AssetStock: 49}
	got := ComputeDrift(targets, actual)
	assert.False(t, findDrift(t, got, model.AssetStock).Alerting)
}

func findDrift(t *testing.T, drifts []Drift, at model.AssetType) Drift {
	t.Helper()
	for _, d := range drifts {
		if d.Type == at {
			return d
		}
	}
	t.Fatalf("no drift entry for %s", at)
	return Drift{}
}

func TestSuggestRebalance(t *testing.T) {
	drifts := []Drift{
		{Type: model.AssetStock, Diff: 8},
		{Type: model.AssetBond, Diff: -3},
		{Type: model.AssetCash, Diff: -5},
	}
	got := SuggestRebalance(drifts)
	require.NotNil(t, got)
	assert.Equal(t, model.AssetStock, got.From)
	assert.Equal(t, model.AssetCash, got.To)
	// min(over, -under) = min(8, 5) = 5.
	assert.Equal(t, model.Percent(5), got.Percent)
}

func TestSuggestRebalance_NoOverweight(t *testing.T) {
	drifts := []Drift{
		{Type: model.AssetStock, Diff: 0},
		{Type: model.AssetBond, Diff: -3},
	}
	assert.Nil(t, SuggestRebalance(drifts))
}

func TestSuggestRebalance_NoUnderweight(t *testing.T) {
	drifts := []Drift{
		{Type: model.AssetStock, Diff: 3},
	}
	assert.Nil(t, SuggestRebalance(drifts))
}
