package model

import "fmt"

// TxKind is the transaction kind.
type TxKind string

const (
	KindDeposit  TxKind = "Deposit"
	KindWithdraw TxKind = "Withdraw"
	KindBuy      TxKind = "Buy"
	KindSell     TxKind = "Sell"
	KindIncome   TxKind = "Income"
	KindExpense  TxKind = "Expense"
)

// Inflow reports whether the kind increases the owning account's balance.
// Deposit/Income/Sell add (amount - fee - tax); Withdraw/Expense/Buy
// subtract the same quantity.
func (k TxKind) Inflow() bool {
	switch k {
	case KindDeposit, KindIncome, KindSell:
		return true
	default:
		return false
	}
}

// ParseTxKind validates a transaction kind name.
func ParseTxKind(s string) (TxKind, error) {
	switch TxKind(s) {
	case KindDeposit, KindWithdraw, KindBuy, KindSell, KindIncome, KindExpense:
		return TxKind(s), nil
	default:
		return "", fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// UnmarshalJSON rejects kinds outside the closed set.
func (k *TxKind) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return fmt.Errorf("transaction kind: %w", err)
	}
	kind, err := ParseTxKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
