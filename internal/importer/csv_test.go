package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneymap-dev/moneymap/internal/model"
)

const sampleCSV = `date,kind,amount,fee,tax,note
2025-01-15,Deposit,1000000,0,0,salary
2025-01-20,Buy,500000,500,0,SCHD
`

func TestCSVParser_Parse(t *testing.T) {
	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2025-01-15", rows[0].Date.String())
	assert.Equal(t, model.KindDeposit, rows[0].Kind)
	assert.True(t, rows[0].Amount.Equal(model.ParseAmount("1000000").Decimal))
	assert.Equal(t, "salary", rows[0].Note)

	assert.Equal(t, model.KindBuy, rows[1].Kind)
	assert.True(t, rows[1].Fee.Equal(model.ParseAmount("500").Decimal))
}

func TestCSVParser_HeaderOnly(t *testing.T) {
	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader("date,kind,amount,fee,tax,note\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCSVParser_BadKind(t *testing.T) {
	p := &CSVParser{}
	_, err := p.Parse(strings.NewReader("date,kind,amount,fee,tax,note\n2025-01-15,Transfer,10,0,0,x\n"))
	assert.Error(t, err)
}

func TestCSVParser_BadDate(t *testing.T) {
	p := &CSVParser{}
	_, err := p.Parse(strings.NewReader("date,kind,amount,fee,tax,note\n01/15/2025,Deposit,10,0,0,x\n"))
	assert.Error(t, err)
}

func TestCSVParser_LenientAmounts(t *testing.T) {
	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader("date,kind,amount,fee,tax,note\n2025-01-15,Deposit,oops,,0,x\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Amount.IsZero())
	assert.True(t, rows[0].Fee.IsZero())
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("csv"))
	assert.NotNil(t, r.Get("CSV"))
	assert.Nil(t, r.Get("chase"))

	assert.Panics(t, func() { r.Register(&CSVParser{}) })
}
