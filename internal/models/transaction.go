package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateTimeLayout is the fixed timestamp format used for transaction dates
// on the wire and on disk.
const DateTimeLayout = "2006-01-02 15:04:05"

// TransactionType represents the type of transaction. The amount column is
// always positive; the sign of its balance effect is carried by the type.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a posted ledger entry against an account.
type Transaction struct {
	Base
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Type        TransactionType `gorm:"column:type;not null" json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	AccountID   string          `gorm:"type:uuid;not null;index" json:"account_id"`

	// AccountName is the owning account's display name, populated by the
	// joined read queries. Never written or migrated.
	AccountName string `gorm:"->;-:migration" json:"account_name,omitempty"`
}

// Delta returns the signed effect this transaction has on its account
// balance: +amount for income, -amount for expense.
func (t *Transaction) Delta() decimal.Decimal {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// ReversalDelta returns the adjustment that undoes Delta, used when the
// transaction is edited or deleted.
func (t *Transaction) ReversalDelta() decimal.Decimal {
	return t.Delta().Neg()
}
