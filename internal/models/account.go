package models

import "github.com/shopspring/decimal"

// Account represents a financial account. Balance is a derived quantity:
// it always equals the initial balance plus the signed sum of all
// transactions currently posted to the account. Every transaction mutation
// adjusts it in the same database transaction.
type Account struct {
	Base
	Name        string          `gorm:"not null" json:"name"`
	Balance     decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"balance"`
	AccountType string          `gorm:"column:account_type" json:"account_type"`
	Currency    string          `gorm:"not null" json:"currency"`
	Notes       string          `json:"notes"`
}
