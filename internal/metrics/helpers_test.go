package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/moneymap-dev/moneymap/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amt(s string) model.Amount {
	return model.ParseAmount(s)
}

func krwSettings() model.Settings {
	return model.Settings{BaseCurrency: model.KRW, USDKRWRate: amt("1300")}
}

func account(id, name string, at model.AssetType, cur model.Currency, opening string) model.Account {
	return model.Account{ID: id, Name: name, Type: at, Currency: cur, OpeningBalance: amt(opening)}
}

func tx(accountID string, kind model.TxKind, date, amount, fee, tax string) model.Transaction {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return model.Transaction{
		ID:        "tx-" + accountID + "-" + date,
		Date:      d,
		AccountID: accountID,
		Kind:      kind,
		Amount:    amt(amount),
		Fee:       amt(fee),
		Tax:       amt(tax),
	}
}
