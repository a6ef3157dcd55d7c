package metrics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/moneymap-dev/moneymap/internal/model"
)

// PositionValuation marks one position to its last manually entered price.
type PositionValuation struct {
	PositionID      string          `json:"positionId"`
	AccountID       string          `json:"accountId"`
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name"`
	AssetType       model.AssetType `json:"assetType"`
	Currency        model.Currency  `json:"currency"`
	MarketValue     decimal.Decimal `json:"marketValue"`
	BaseMarketValue decimal.Decimal `json:"baseMarketValue"`
	GainLoss        decimal.Decimal `json:"gainLoss"`
	GainLossPct     float64         `json:"gainLossPct"`
}

// ComputePositionValuations values every position: market value =
// quantity x last price, unrealized P/L = (last - avg) x quantity. The
// percentage P/L of a zero-cost position is +/-Inf; when the gain is also
// zero it reports 0.
func ComputePositionValuations(positions []model.Position, settings model.Settings) []PositionValuation {
	out := make([]PositionValuation, 0, len(positions))
	for _, p := range positions {
		mv := p.Quantity.Mul(p.LastPrice.Decimal)
		gain := p.LastPrice.Sub(p.AvgPrice.Decimal).Mul(p.Quantity.Decimal)
		out = append(out, PositionValuation{
			PositionID:      p.ID,
			AccountID:       p.AccountID,
			Symbol:          p.Symbol,
			Name:            p.Name,
			AssetType:       p.AssetType,
			Currency:        p.Currency,
			MarketValue:     mv,
			BaseMarketValue: Convert(mv, p.Currency, settings),
			GainLoss:        gain,
			GainLossPct:     gainPct(p.AvgPrice.Decimal, p.LastPrice.Decimal),
		})
	}
	return out
}

func gainPct(avg, last decimal.Decimal) float64 {
	diff := last.Sub(avg)
	if avg.IsZero() {
		if diff.IsZero() {
			return 0
		}
		return math.Inf(diff.Sign())
	}
	pct, _ := diff.Div(avg).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
