package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moneymap-dev/moneymap/internal/model"
)

func TestConvert_SameCurrency(t *testing.T) {
	got := Convert(dec("1000"), model.KRW, krwSettings())
	assert.True(t, got.Equal(dec("1000")))
}

func TestConvert_USDToKRW(t *testing.T) {
	got := Convert(dec("10"), model.USD, krwSettings())
	assert.True(t, got.Equal(dec("13000")))
}

func TestConvert_KRWToUSD(t *testing.T) {
	s := model.Settings{BaseCurrency: model.USD, USDKRWRate: amt("1300")}
	got := Convert(dec("13000"), model.KRW, s)
	assert.True(t, got.Equal(dec("10")))
}

func TestConvert_UnknownCurrencyPassesThrough(t *testing.T) {
	// Unreachable under valid input (the boundary rejects unknown codes),
	// but the engine must not blow up on it either.
	got := Convert(dec("42"), model.Currency("EUR"), krwSettings())
	assert.True(t, got.Equal(dec("42")))
}

func TestConvert_ZeroRatePassesThrough(t *testing.T) {
	s := model.Settings{BaseCurrency: model.KRW}
	got := Convert(dec("10"), model.USD, s)
	assert.True(t, got.Equal(dec("10")))
}
