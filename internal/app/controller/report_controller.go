package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/service"
	apperrors "github.com/ikkim/backoffice-backend/internal/errors"
	"github.com/ikkim/backoffice-backend/internal/middleware"
)

type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// parseReportRange reads from/to query parameters as YYYY-MM-DD dates. The
// upper bound is exclusive: to=2026-03-08 covers everything before that day.
func parseReportRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "from must be a YYYY-MM-DD date")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "to must be a YYYY-MM-DD date")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// GetSalesReport returns sales aggregates for a date range
// GET /api/v1/reports/sales?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ctrl *ReportController) GetSalesReport(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from, to, ok := parseReportRange(c)
	if !ok {
		return
	}

	report, err := ctrl.reportService.GetSalesReport(from, to)
	if err != nil {
		if errors.Is(err, service.ErrReportInvalidRange) {
			apperrors.BadRequest(c, apperrors.ReportInvalidRange, "Report range must have from before to")
			return
		}
		log.Error("Failed to build sales report", err, map[string]interface{}{
			"from": from,
			"to":   to,
		})
		apperrors.InternalError(c, "Failed to build sales report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report": report,
	})
}

// ExportSalesReport streams the sales report as an XLSX attachment
// GET /api/v1/reports/sales/export?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ctrl *ReportController) ExportSalesReport(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from, to, ok := parseReportRange(c)
	if !ok {
		return
	}

	f, err := ctrl.reportService.ExportSalesReport(from, to)
	if err != nil {
		if errors.Is(err, service.ErrReportInvalidRange) {
			apperrors.BadRequest(c, apperrors.ReportInvalidRange, "Report range must have from before to")
			return
		}
		log.Error("Failed to export sales report", err, map[string]interface{}{
			"from": from,
			"to":   to,
		})
		apperrors.InternalError(c, "Failed to export sales report")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("sales-report_%s_%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to stream sales report", err, map[string]interface{}{
			"filename": filename,
		})
	}
}

// ListOrders returns orders placed inside a date range
// GET /api/v1/orders?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ctrl *ReportController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from, to, ok := parseReportRange(c)
	if !ok {
		return
	}

	limit, offset := parsePagination(c)

	orders, total, err := ctrl.reportService.ListOrders(from, to, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrReportInvalidRange) {
			apperrors.BadRequest(c, apperrors.ReportInvalidRange, "Range must have from before to")
			return
		}
		log.Error("Failed to list orders", err, nil)
		apperrors.InternalError(c, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetOrderByID returns one order with its items
// GET /api/v1/orders/:id
func (ctrl *ReportController) GetOrderByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.reportService.GetOrderByID(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// UpdateOrderStatus advances an order's status
// PUT /api/v1/orders/:id/status
func (ctrl *ReportController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid status data")
		return
	}

	order, err := ctrl.reportService.UpdateOrderStatus(id, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Unknown order status")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "Failed to update order status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   order,
	})
}
