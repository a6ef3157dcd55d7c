package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/moneymap-dev/moneymap/internal/model"
)

// GoalProgress reports how far a savings goal has come.
type GoalProgress struct {
	GoalID   string          `json:"goalId"`
	Name     string          `json:"name"`
	Target   decimal.Decimal `json:"target"`
	Current  decimal.Decimal `json:"current"`
	Percent  model.Percent   `json:"percent"`
	Deadline model.Date      `json:"deadline"`
}

// ComputeGoalProgress sums each goal's linked accounts' base-currency
// balances against its target. Links to missing accounts contribute
// nothing; a zero target reports zero percent.
func ComputeGoalProgress(goals []model.Goal, balances map[string]AccountBalance) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		current := decimal.Zero
		for _, accountID := range g.AccountIDs {
			if b, ok := balances[accountID]; ok {
				current = current.Add(b.BaseBalance)
			}
		}
		var pct model.Percent
		if !g.TargetAmount.IsZero() {
			f, _ := current.Div(g.TargetAmount.Decimal).Mul(decimal.NewFromInt(100)).Float64()
			pct = model.Percent(f)
		}
		out = append(out, GoalProgress{
			GoalID:   g.ID,
			Name:     g.Name,
			Target:   g.TargetAmount.Decimal,
			Current:  current,
			Percent:  pct,
			Deadline: g.Deadline,
		})
	}
	return out
}
