package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new account. The balance is stored as given;
// there are no transactions yet.
func (s *accountService) CreateAccount(name string, initialBalance decimal.Decimal, accountType, currency, notes string) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "account name is required")
	}
	if currency == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "currency is required")
	}

	account := &models.Account{
		Name:        name,
		Balance:     initialBalance,
		AccountType: accountType,
		Currency:    currency,
		Notes:       notes,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return account, nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &account, nil
}

// ListAccounts retrieves a paginated list of accounts in creation order.
func (s *accountService) ListAccounts(page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	base := s.db.Model(&models.Account{})

	var totalItems int64
	if err := base.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).
		Order("id ASC").
		Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateAccount updates the supplied fields of an existing account.
// It does not trigger any reconciliation: a direct balance edit is applied
// verbatim.
func (s *accountService) UpdateAccount(accountID string, fields AccountUpdateFields) (*models.Account, error) {
	account, err := s.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		if *fields.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "account name is required")
		}
		updates["name"] = *fields.Name
	}
	if fields.AccountType != nil {
		updates["account_type"] = *fields.AccountType
	}
	if fields.Currency != nil {
		if *fields.Currency == "" {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "currency is required")
		}
		updates["currency"] = *fields.Currency
	}
	if fields.Notes != nil {
		updates["notes"] = *fields.Notes
	}
	if fields.Balance != nil {
		updates["balance"] = *fields.Balance
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		// Reload to get fresh data
		if err := s.db.Where("id = ?", account.ID).First(account).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
	}

	return account, nil
}

// DeleteAccount deletes an account together with every transaction posted
// to it. Both deletes happen in one database transaction; no partial
// cascade is ever observable.
func (s *accountService) DeleteAccount(accountID string) error {
	account, err := s.GetAccountByID(accountID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", account.ID).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if err := tx.Delete(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
}

// AdjustBalance applies balance += delta to the account inside the given
// transaction handle. The transaction ledger calls this in the same atomic
// unit as the row mutation it accounts for.
func (s *accountService) AdjustBalance(tx *gorm.DB, accountID string, delta decimal.Decimal) error {
	var account models.Account
	if err := tx.Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}

	account.Balance = account.Balance.Add(delta)
	if err := tx.Model(&account).Update("balance", account.Balance).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}
