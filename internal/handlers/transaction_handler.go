package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// TransactionRequest represents the payload for creating or updating a
// transaction. Updates overwrite every field.
type TransactionRequest struct {
	AccountID   string          `json:"account_id" binding:"required"`
	Type        string          `json:"type" binding:"required,transaction_type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" binding:"max=100"`
	Description string          `json:"description" binding:"max=500"`
	Date        string          `json:"date" binding:"omitempty,ledger_datetime"`
}

// transactionListQuery holds optional list filters parsed from the query string.
type transactionListQuery struct {
	FromDate string `form:"from_date" binding:"omitempty,ledger_datetime"`
	ToDate   string `form:"to_date" binding:"omitempty,ledger_datetime"`
	Type     string `form:"type" binding:"omitempty,transaction_type"`
	Category string `form:"category"`
}

func (q *transactionListQuery) filter() (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	if q.FromDate != "" {
		t, err := parseDate(q.FromDate)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &t
	}
	if q.ToDate != "" {
		t, err := parseDate(q.ToDate)
		if err != nil {
			return filter, err
		}
		filter.ToDate = &t
	}
	if q.Type != "" {
		transactionType := models.TransactionType(q.Type)
		filter.Type = &transactionType
	}
	if q.Category != "" {
		filter.Category = &q.Category
	}
	return filter, nil
}

// CreateTransaction handles posting a new transaction
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		req.AccountID,
		models.TransactionType(req.Type),
		req.Amount,
		req.Category,
		req.Description,
		date,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"account_id": req.AccountID, "type": req.Type, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactionByID handles the retrieval of a specific transaction
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// GetAccountTransactions handles listing transactions for one account,
// newest first
func (h *TransactionHandler) GetAccountTransactions(c *gin.Context) {
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, filter, err := bindListParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetAccountTransactions(accountID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAllTransactions handles listing transactions across all accounts,
// newest first
func (h *TransactionHandler) GetAllTransactions(c *gin.Context) {
	page, filter, err := bindListParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetAllTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func bindListParams(c *gin.Context) (pagination.PageRequest, services.TransactionFilter, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, services.TransactionFilter{}, apperrors.WithMessage(apperrors.ErrValidation, err.Error())
	}

	var query transactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return page, services.TransactionFilter{}, apperrors.WithMessage(apperrors.ErrValidation, err.Error())
	}

	filter, err := query.filter()
	return page, filter, err
}

// UpdateTransaction handles overwriting a transaction and reconciling the
// affected account balances
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(
		transactionID,
		req.AccountID,
		models.TransactionType(req.Type),
		req.Amount,
		req.Category,
		req.Description,
		date,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_TRANSACTION", "transaction", transactionID, c.ClientIP(),
		map[string]interface{}{"account_id": req.AccountID, "type": req.Type, "amount": req.Amount.String()})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction and restoring the
// account balance
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
