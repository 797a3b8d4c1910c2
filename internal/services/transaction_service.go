package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// transactionService keeps each account's balance consistent with its
// posted transactions. Every mutation pairs the row change with the
// matching balance adjustment inside one database transaction.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
	}
}

func validateTransactionInput(transactionType models.TransactionType, amount decimal.Decimal, accountID string) error {
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}
	if !transactionType.Valid() {
		return apperrors.WithMessage(apperrors.ErrValidation, "transaction type must be INCOME or EXPENSE")
	}
	if accountID == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "account ID is required")
	}
	return nil
}

// CreateTransaction posts a new transaction and applies its signed amount
// to the account balance. Both steps succeed together or neither is
// observable.
func (s *transactionService) CreateTransaction(accountID string, transactionType models.TransactionType, amount decimal.Decimal, category, description string, date time.Time) (*models.Transaction, error) {
	if err := validateTransactionInput(transactionType, amount, accountID); err != nil {
		return nil, err
	}

	// Default date to now if not provided
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		Amount:      amount,
		Type:        transactionType,
		Category:    category,
		Description: description,
		Date:        date,
		AccountID:   accountID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Ensure the account exists before the row insert becomes visible.
		var account models.Account
		if err := tx.Where("id = ?", accountID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrAccountNotFound
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		return s.accountService.AdjustBalance(tx, accountID, transaction.Delta())
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// transactionQuery is the base read query, joined with the owning
// account's display name.
func (s *transactionService) transactionQuery() *gorm.DB {
	return s.db.Model(&models.Transaction{}).
		Select("transactions.*, accounts.name AS account_name").
		Joins("LEFT JOIN accounts ON accounts.id = transactions.account_id")
}

// GetTransactionByID retrieves a transaction by ID, joined with the
// owning account's display name.
func (s *transactionService) GetTransactionByID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.transactionQuery().Where("transactions.id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &transaction, nil
}

// GetAccountTransactions retrieves a paginated, filtered list of transactions
// for one account, newest first. Equal dates are broken by id descending,
// which for UUIDv7 ids means newest-inserted first.
func (s *transactionService) GetAccountTransactions(accountID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	// First verify the account exists
	if _, err := s.accountService.GetAccountByID(accountID); err != nil {
		return nil, err
	}

	return s.listTransactions(page, filter, &accountID)
}

// GetAllTransactions retrieves a paginated, filtered list of transactions
// across all accounts, with the same ordering rule.
func (s *transactionService) GetAllTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	return s.listTransactions(page, filter, nil)
}

func (s *transactionService) listTransactions(page pagination.PageRequest, filter TransactionFilter, accountID *string) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.transactionQuery()
	if accountID != nil {
		base = base.Where("transactions.account_id = ?", *accountID)
	}
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("transactions.date DESC, transactions.id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("transactions.date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("transactions.date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("transactions.type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("transactions.category = ?", *f.Category)
	}
	return q
}

// UpdateTransaction overwrites a transaction's fields and reconciles the
// affected account balances: the old values are reversed and the new
// values applied. When the account changes, the reversal goes to the old
// account and the forward delta to the new one. The read, the adjustments
// and the row overwrite are one atomic unit.
func (s *transactionService) UpdateTransaction(transactionID, accountID string, transactionType models.TransactionType, amount decimal.Decimal, category, description string, date time.Time) (*models.Transaction, error) {
	if err := validateTransactionInput(transactionType, amount, accountID); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now()
	}

	var updated models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var old models.Transaction
		if err := tx.Where("id = ?", transactionID).First(&old).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		updated = models.Transaction{
			Base:        old.Base,
			Amount:      amount,
			Type:        transactionType,
			Category:    category,
			Description: description,
			Date:        date,
			AccountID:   accountID,
		}

		reversal := old.ReversalDelta()
		forward := updated.Delta()

		if old.AccountID == accountID {
			if err := s.accountService.AdjustBalance(tx, accountID, reversal.Add(forward)); err != nil {
				return err
			}
		} else {
			if err := s.accountService.AdjustBalance(tx, old.AccountID, reversal); err != nil {
				return err
			}
			if err := s.accountService.AdjustBalance(tx, accountID, forward); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"amount":      amount,
			"type":        transactionType,
			"category":    category,
			"description": description,
			"date":        date,
			"account_id":  accountID,
		}
		if err := tx.Model(&models.Transaction{}).Where("id = ?", transactionID).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTransaction removes a transaction and reverses its effect on the
// account balance, as one atomic unit.
func (s *transactionService) DeleteTransaction(transactionID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		if err := tx.Where("id = ?", transactionID).First(&transaction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		if err := s.accountService.AdjustBalance(tx, transaction.AccountID, transaction.ReversalDelta()); err != nil {
			return err
		}

		if err := tx.Delete(&transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
}
