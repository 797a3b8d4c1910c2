package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// reportService answers aggregate queries over the transaction ledger.
// All methods are pure reads.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// sumByType returns the amount total for one transaction type, optionally
// filtered by account. No matching rows yields zero, not an error.
func (s *reportService) sumByType(transactionType models.TransactionType, accountID string) (decimal.Decimal, error) {
	q := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ?", transactionType)
	if accountID != "" {
		q = q.Where("account_id = ?", accountID)
	}

	var total decimal.Decimal
	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return total, nil
}

// TotalIncome returns the sum of INCOME amounts, optionally filtered by
// account (empty accountID means all accounts).
func (s *reportService) TotalIncome(accountID string) (decimal.Decimal, error) {
	return s.sumByType(models.TransactionTypeIncome, accountID)
}

// TotalExpense returns the sum of EXPENSE amounts, optionally filtered by
// account (empty accountID means all accounts).
func (s *reportService) TotalExpense(accountID string) (decimal.Decimal, error) {
	return s.sumByType(models.TransactionTypeExpense, accountID)
}

// Summary returns income and expense totals together with their net.
func (s *reportService) Summary(accountID string) (*ReportSummary, error) {
	income, err := s.TotalIncome(accountID)
	if err != nil {
		return nil, err
	}
	expense, err := s.TotalExpense(accountID)
	if err != nil {
		return nil, err
	}
	return &ReportSummary{
		TotalIncome:  income,
		TotalExpense: expense,
		Net:          income.Sub(expense),
	}, nil
}

func (s *reportService) sumByCategory(transactionType models.TransactionType) ([]CategorySummary, error) {
	var rows []CategorySummary
	err := s.db.Model(&models.Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("type = ?", transactionType).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if rows == nil {
		rows = []CategorySummary{}
	}
	return rows, nil
}

// ExpensesByCategory returns one row per distinct category among EXPENSE
// transactions, descending by total.
func (s *reportService) ExpensesByCategory() ([]CategorySummary, error) {
	return s.sumByCategory(models.TransactionTypeExpense)
}

// IncomeByCategory returns one row per distinct category among INCOME
// transactions, descending by total.
func (s *reportService) IncomeByCategory() ([]CategorySummary, error) {
	return s.sumByCategory(models.TransactionTypeIncome)
}
