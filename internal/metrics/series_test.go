package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneymap-dev/moneymap/internal/model"
)

func TestComputeNetWorthSeries_NoTransactions(t *testing.T) {
	accounts := []model.Account{
		account("a1", "A", model.AssetCash, model.KRW, "1000"),
	}
	got := ComputeNetWorthSeries(nil, accounts, nil, krwSettings())
	assert.Empty(t, got)
}

func TestComputeNetWorthSeries_SeededAndCumulative(t *testing.T) {
	accounts := []model.Account{
		account("a1", "A", model.AssetCash, model.KRW, "1000"),
		account("a2", "B", model.AssetCash, model.KRW, "500"),
	}
	txs := []model.Transaction{
		tx("a1", model.KindDeposit, "2025-01-10", "100", "0", "0"),
		tx("a1", model.KindWithdraw, "2025-02-05", "50", "0", "0"),
		tx("a2", model.KindDeposit, "2025-01-20", "200", "0", "0"),
	}
	got := ComputeNetWorthSeries(txs, accounts, nil, krwSettings())
	require.GreaterOrEqual(t, len(got), 2)

	// Seed 1500; January adds 100 + 200.
	assert.Equal(t, "2025-01", got[0].Month)
	assert.True(t, got[0].Value.Equal(dec("1800")), "got %s", got[0].Value)

	// February subtracts 50, cumulatively.
	assert.Equal(t, "2025-02", got[1].Month)
	assert.True(t, got[1].Value.Equal(dec("1750")), "got %s", got[1].Value)

	// The series runs through the current month.
	assert.Equal(t, model.Today().MonthKey(), got[len(got)-1].Month)
}

func TestComputeNetWorthSeries_PositionsInFinalMonthOnly(t *testing.T) {
	accounts := []model.Account{
		account("a1", "A", model.AssetCash, model.KRW, "0"),
	}
	txs := []model.Transaction{
		tx("a1", model.KindDeposit, "2025-01-10", "100", "0", "0"),
	}
	valuations := []PositionValuation{
		{PositionID: "p1", AssetType: model.AssetStock, BaseMarketValue: dec("5000")},
	}
	got := ComputeNetWorthSeries(txs, accounts, valuations, krwSettings())
	require.NotEmpty(t, got)

	last := got[len(got)-1]
	assert.True(t, last.Value.Equal(dec("5100")), "got %s", last.Value)
	if len(got) > 1 {
		assert.True(t, got[0].Value.Equal(dec("100")), "got %s", got[0].Value)
	}
}

func TestComputeNetWorthSeries_NetsFeeAndTax(t *testing.T) {
	accounts := []model.Account{
		account("a1", "A", model.AssetCash, model.KRW, "0"),
	}
	txs := []model.Transaction{
		tx("a1", model.KindDeposit, "2025-01-10", "1000", "20", "30"),
	}
	got := ComputeNetWorthSeries(txs, accounts, nil, krwSettings())
	require.NotEmpty(t, got)
	assert.True(t, got[0].Value.Equal(dec("950")), "got %s", got[0].Value)
}

func TestComputeNetWorthSeries_OrphanDoesNotAnchorStart(t *testing.T) {
	accounts := []model.Account{
		account("a1", "A", model.AssetCash, model.KRW, "0"),
	}
	// The orphan is older than every real transaction; the series must
	// still start at the first countable month.
	txs := []model.Transaction{
		tx("ghost", model.KindDeposit, "2020-01-10", "999", "0", "0"),
		tx("a1", model.KindDeposit, "2025-01-10", "100", "0", "0"),
	}
	got := ComputeNetWorthSeries(txs, accounts, nil, krwSettings())
	require.NotEmpty(t, got)
	assert.Equal(t, "2025-01", got[0].Month)
	assert.True(t, got[0].Value.Equal(dec("100")), "got %s", got[0].Value)
}

func TestComputeNetWorthSeries_OnlyOrphans(t *testing.T) {
	txs := []model.Transaction{
		tx("ghost", model.KindDeposit, "2020-01-10", "999", "0", "0"),
	}
	got := ComputeNetWorthSeries(txs, nil, nil, krwSettings())
	assert.Empty(t, got)
}

func TestComputeMonthlyIncomeExpense_GrossAmounts(t *testing.T) {
	accounts := []model.Account{
		account("a1", "A", model.AssetCash, model.KRW, "0"),
	}
	// Fee and tax are deliberately NOT netted out of cash-flow buckets,
	// unlike balances. Keep it that way.
	txs := []model.Transaction{
		tx("a1", model.KindIncome, "2025-03-01", "1000", "20", "30"),
		tx("a1", model.KindExpense, "2025-03-10", "400", "5", "5"),
	}
	got := ComputeMonthlyIncomeExpense(txs, accounts, krwSettings())
	require.Len(t, got, 1)
	assert.Equal(t, "2025-03", got[0].Month)
	assert.True(t, got[0].Income.Equal(dec("1000")), "got %s", got[0].Income)
	assert.True(t, got[0].Expense.Equal(dec("400")), "got %s", got[0].Expense)
}

func TestComputeMonthlyIncomeExpense_SortedMonths(t *testing.T) {
	accounts := []model.Account{
		account("a1", "A", model.AssetCash, model.KRW, "0"),
	}
	txs := []model.Transaction{
		tx("a1", model.KindExpense, "2025-03-01", "10", "0", "0"),
		tx("a1", model.KindIncome, "2025-01-01", "10", "0", "0"),
		tx("a1", model.KindSell, "2025-02-01", "10", "0", "0"),
	}
	got := ComputeMonthlyIncomeExpense(txs, accounts, krwSettings())
	require.Len(t, got, 3)
	assert.Equal(t, "2025-01", got[0].Month)
	assert.Equal(t, "2025-02", got[1].Month)
	assert.Equal(t, "2025-03", got[2].Month)
	// Sell counts as income.
	assert.True(t, got[1].Income.Equal(dec("10")))
}

func TestComputeMonthlyIncomeExpense_OrphanSkipped(t *testing.T) {
	got := ComputeMonthlyIncomeExpense([]model.Transaction{
		tx("ghost", model.KindIncome, "2025-01-01", "10", "0", "0"),
	}, nil, krwSettings())
	assert.Empty(t, got)
}
