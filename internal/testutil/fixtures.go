package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount creates an account with zero balance.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, decimal.Zero)
}

// CreateTestAccountWithBalance creates an account with the given balance.
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:        fmt.Sprintf("Test Account %d", nextID()),
		Balance:     balance,
		AccountType: "Checking",
		Currency:    "USD",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction inserts a transaction row directly, without any
// balance adjustment. Use the transaction service when the balance effect
// matters.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID string, transactionType models.TransactionType, amount decimal.Decimal, category string) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		Amount:    amount,
		Type:      transactionType,
		Category:  category,
		Date:      time.Now(),
		AccountID: accountID,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}
