package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/service"
	apperrors "github.com/ikkim/backoffice-backend/internal/errors"
	"github.com/ikkim/backoffice-backend/internal/middleware"
)

type BankAccountController struct {
	bankAccountService service.BankAccountService
}

func NewBankAccountController(bankAccountService service.BankAccountService) *BankAccountController {
	return &BankAccountController{
		bankAccountService: bankAccountService,
	}
}

type BankAccountRequest struct {
	BankName      string `json:"bank_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
	HolderName    string `json:"holder_name" binding:"required"`
	IsActive      *bool  `json:"is_active"`
	SortOrder     int    `json:"sort_order"`
}

// ListBankAccounts returns configured payout accounts
// GET /api/v1/bank-accounts
func (ctrl *BankAccountController) ListBankAccounts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	activeOnly := c.Query("active") == "true"

	accounts, err := ctrl.bankAccountService.ListBankAccounts(activeOnly)
	if err != nil {
		log.Error("Failed to fetch bank accounts", err, nil)
		apperrors.InternalError(c, "Failed to fetch bank accounts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bank_accounts": accounts,
		"count":         len(accounts),
	})
}

// GetBankAccountByID returns one payout account
// GET /api/v1/bank-accounts/:id
func (ctrl *BankAccountController) GetBankAccountByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	account, err := ctrl.bankAccountService.GetBankAccountByID(id)
	if err != nil {
		if errors.Is(err, service.ErrBankAccountNotFound) {
			apperrors.NotFound(c, apperrors.BankAccountNotFound, "Bank account not found")
			return
		}
		log.Error("Failed to fetch bank account", err, map[string]interface{}{
			"bank_account_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch bank account")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bank_account": account,
	})
}

// CreateBankAccount registers a payout account (admin only)
// POST /api/v1/bank-accounts
func (ctrl *BankAccountController) CreateBankAccount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid bank account request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid bank account data")
		return
	}

	account := &model.BankAccount{
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		HolderName:    req.HolderName,
		IsActive:      true,
		SortOrder:     req.SortOrder,
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	if err := ctrl.bankAccountService.CreateBankAccount(account); err != nil {
		log.Error("Failed to create bank account", err, map[string]interface{}{
			"bank_name": req.BankName,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create bank account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Bank account created successfully",
		"bank_account": account,
	})
}

// UpdateBankAccount updates a payout account (admin only)
// PUT /api/v1/bank-accounts/:id
func (ctrl *BankAccountController) UpdateBankAccount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid bank account data")
		return
	}

	account := &model.BankAccount{
		ID:            id,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		HolderName:    req.HolderName,
		IsActive:      true,
		SortOrder:     req.SortOrder,
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	if err := ctrl.bankAccountService.UpdateBankAccount(account); err != nil {
		if errors.Is(err, service.ErrBankAccountNotFound) {
			apperrors.NotFound(c, apperrors.BankAccountNotFound, "Bank account not found")
			return
		}
		log.Error("Failed to update bank account", err, map[string]interface{}{
			"bank_account_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update bank account")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Bank account updated successfully",
		"bank_account": account,
	})
}

// DeleteBankAccount removes a payout account (admin only)
// DELETE /api/v1/bank-accounts/:id
func (ctrl *BankAccountController) DeleteBankAccount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.bankAccountService.DeleteBankAccount(id); err != nil {
		if errors.Is(err, service.ErrBankAccountNotFound) {
			apperrors.NotFound(c, apperrors.BankAccountNotFound, "Bank account not found")
			return
		}
		log.Error("Failed to delete bank account", err, map[string]interface{}{
			"bank_account_id": id,
		})
		apperrors.InternalError(c, "Failed to delete bank account")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bank account deleted successfully",
	})
}
