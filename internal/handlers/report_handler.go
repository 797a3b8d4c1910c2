package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
	"fintrack/internal/uuid"
)

// ReportHandler handles aggregate report requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// accountFilter reads the optional account_id query parameter. Empty means
// all accounts.
func accountFilter(c *gin.Context) (string, error) {
	accountID := c.Query("account_id")
	if accountID != "" && !uuid.IsValid(accountID) {
		return "", apperrors.WithMessage(apperrors.ErrValidation, "Invalid account_id")
	}
	return accountID, nil
}

// GetSummary returns total income, total expense and their net, across all
// accounts or for one account
func (h *ReportHandler) GetSummary(c *gin.Context) {
	accountID, err := accountFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.Summary(accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetExpensesByCategory returns expense totals grouped by category,
// descending by total
func (h *ReportHandler) GetExpensesByCategory(c *gin.Context) {
	rows, err := h.reportService.ExpensesByCategory()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": rows})
}

// GetIncomeByCategory returns income totals grouped by category,
// descending by total
func (h *ReportHandler) GetIncomeByCategory(c *gin.Context) {
	rows, err := h.reportService.IncomeByCategory()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": rows})
}
