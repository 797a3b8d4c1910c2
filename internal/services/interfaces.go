package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// AccountUpdateFields holds the optional fields for updating an account.
// A nil pointer leaves the field unchanged. Balance edits bypass the
// transaction ledger and are the caller's responsibility.
type AccountUpdateFields struct {
	Name        *string
	AccountType *string
	Currency    *string
	Notes       *string
	Balance     *decimal.Decimal
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(name string, initialBalance decimal.Decimal, accountType, currency, notes string) (*models.Account, error)
	GetAccountByID(accountID string) (*models.Account, error)
	ListAccounts(page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	UpdateAccount(accountID string, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(accountID string) error
	AdjustBalance(tx *gorm.DB, accountID string, delta decimal.Decimal) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Category *string
}

// TransactionServicer defines the contract for the transaction ledger.
// Every mutation keeps the referenced account balances consistent with the
// posted transactions in a single atomic unit.
type TransactionServicer interface {
	CreateTransaction(accountID string, transactionType models.TransactionType, amount decimal.Decimal, category, description string, date time.Time) (*models.Transaction, error)
	GetTransactionByID(transactionID string) (*models.Transaction, error)
	GetAccountTransactions(accountID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetAllTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	UpdateTransaction(transactionID, accountID string, transactionType models.TransactionType, amount decimal.Decimal, category, description string, date time.Time) (*models.Transaction, error)
	DeleteTransaction(transactionID string) error
}

// CategorySummary is one row of a per-category aggregate.
type CategorySummary struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// ReportSummary aggregates income and expense totals.
type ReportSummary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
}

// ReportServicer defines the contract for aggregate report queries.
// All methods are pure reads. An empty accountID means all accounts.
type ReportServicer interface {
	TotalIncome(accountID string) (decimal.Decimal, error)
	TotalExpense(accountID string) (decimal.Decimal, error)
	Summary(accountID string) (*ReportSummary, error)
	ExpensesByCategory() ([]CategorySummary, error)
	IncomeByCategory() ([]CategorySummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
