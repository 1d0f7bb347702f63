package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/repository"
	"github.com/ikkim/backoffice-backend/internal/app/service"
	apperrors "github.com/ikkim/backoffice-backend/internal/errors"
	"github.com/ikkim/backoffice-backend/internal/middleware"
)

type VoucherController struct {
	voucherService service.VoucherService
}

func NewVoucherController(voucherService service.VoucherService) *VoucherController {
	return &VoucherController{
		voucherService: voucherService,
	}
}

type VoucherRequest struct {
	Code       string     `json:"code"`
	Type       string     `json:"type" binding:"required,oneof=percent fixed"`
	Value      float64    `json:"value" binding:"required,gt=0"`
	MinSpend   float64    `json:"min_spend" binding:"gte=0"`
	StartsAt   *time.Time `json:"starts_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	UsageLimit int        `json:"usage_limit" binding:"gte=0"`
	IsActive   *bool      `json:"is_active"`
}

type RedeemCheckRequest struct {
	Code       string  `json:"code" binding:"required"`
	OrderTotal float64 `json:"order_total" binding:"required,gt=0"`
}

func (req *VoucherRequest) toModel() *model.Voucher {
	voucher := &model.Voucher{
		Code:       req.Code,
		Type:       model.VoucherType(req.Type),
		Value:      req.Value,
		MinSpend:   req.MinSpend,
		StartsAt:   req.StartsAt,
		ExpiresAt:  req.ExpiresAt,
		UsageLimit: req.UsageLimit,
		IsActive:   true,
	}
	if req.IsActive != nil {
		voucher.IsActive = *req.IsActive
	}
	return voucher
}

func respondVoucherError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrVoucherNotFound):
		apperrors.NotFound(c, apperrors.VoucherNotFound, "Voucher not found")
	case errors.Is(err, service.ErrVoucherCodeExists):
		apperrors.Conflict(c, apperrors.VoucherCodeExists, "A voucher with this code already exists")
	case errors.Is(err, service.ErrVoucherInvalidValue):
		apperrors.BadRequest(c, apperrors.VoucherInvalidValue, "Voucher value is invalid for its type")
	case errors.Is(err, service.ErrVoucherNotActive):
		apperrors.BadRequest(c, apperrors.VoucherNotActive, "Voucher is not active")
	case errors.Is(err, service.ErrVoucherNotStarted):
		apperrors.BadRequest(c, apperrors.VoucherNotStarted, "Voucher is not valid yet")
	case errors.Is(err, service.ErrVoucherExpired):
		apperrors.BadRequest(c, apperrors.VoucherExpired, "Voucher has expired")
	case errors.Is(err, service.ErrVoucherUsageLimit):
		apperrors.BadRequest(c, apperrors.VoucherUsageLimit, "Voucher usage limit reached")
	case errors.Is(err, service.ErrVoucherMinSpend):
		apperrors.BadRequest(c, apperrors.VoucherMinSpend, "Order total is below the voucher minimum spend")
	default:
		return false
	}
	return true
}

// ListVouchers returns vouchers with pagination
// GET /api/v1/vouchers
func (ctrl *VoucherController) ListVouchers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, offset := parsePagination(c)

	vouchers, total, err := ctrl.voucherService.ListVouchers(repository.VoucherFilter{
		ActiveOnly: c.Query("active") == "true",
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		log.Error("Failed to fetch vouchers", err, nil)
		apperrors.InternalError(c, "Failed to fetch vouchers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vouchers": vouchers,
		"count":    len(vouchers),
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetVoucherByID returns one voucher
// GET /api/v1/vouchers/:id
func (ctrl *VoucherController) GetVoucherByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	voucher, err := ctrl.voucherService.GetVoucherByID(id)
	if err != nil {
		if respondVoucherError(c, err) {
			return
		}
		log.Error("Failed to fetch voucher", err, map[string]interface{}{
			"voucher_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch voucher")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"voucher": voucher,
	})
}

// CreateVoucher creates a voucher; an empty code gets generated
// POST /api/v1/vouchers
func (ctrl *VoucherController) CreateVoucher(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid voucher request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid voucher data")
		return
	}

	voucher := req.toModel()
	if err := ctrl.voucherService.CreateVoucher(voucher); err != nil {
		if respondVoucherError(c, err) {
			return
		}
		log.Error("Failed to create voucher", err, map[string]interface{}{
			"code": req.Code,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create voucher")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Voucher created successfully",
		"voucher": voucher,
	})
}

// UpdateVoucher updates a voucher
// PUT /api/v1/vouchers/:id
func (ctrl *VoucherController) UpdateVoucher(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid voucher data")
		return
	}

	voucher := req.toModel()
	voucher.ID = id

	if err := ctrl.voucherService.UpdateVoucher(voucher); err != nil {
		if respondVoucherError(c, err) {
			return
		}
		log.Error("Failed to update voucher", err, map[string]interface{}{
			"voucher_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update voucher")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Voucher updated successfully",
		"voucher": voucher,
	})
}

// DeleteVoucher removes a voucher
// DELETE /api/v1/vouchers/:id
func (ctrl *VoucherController) DeleteVoucher(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.voucherService.DeleteVoucher(id); err != nil {
		if respondVoucherError(c, err) {
			return
		}
		log.Error("Failed to delete voucher", err, map[string]interface{}{
			"voucher_id": id,
		})
		apperrors.InternalError(c, "Failed to delete voucher")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Voucher deleted successfully",
	})
}

// RedeemCheck validates a voucher against an order total
// POST /api/v1/vouchers/redeem-check
func (ctrl *VoucherController) RedeemCheck(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RedeemCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid redeem check data")
		return
	}

	result, err := ctrl.voucherService.RedeemCheck(req.Code, req.OrderTotal, time.Now())
	if err != nil {
		if respondVoucherError(c, err) {
			return
		}
		log.Error("Failed to check voucher redemption", err, map[string]interface{}{
			"code": req.Code,
		})
		apperrors.InternalError(c, "Failed to check voucher redemption")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
	})
}
