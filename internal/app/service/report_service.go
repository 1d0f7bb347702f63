package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/repository"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"github.com/ikkim/backoffice-backend/pkg/pricing"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrReportInvalidRange = errors.New("report range must have from before to")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// SalesReport is the aggregate view over one reporting window.
type SalesReport struct {
	From        time.Time               `json:"from"`
	To          time.Time               `json:"to"`
	Totals      repository.SalesTotals  `json:"totals"`
	Daily       []repository.DailySales `json:"daily"`
	TopProducts []repository.TopProduct `json:"top_products"`
}

type ReportService interface {
	GetSalesReport(from, to time.Time) (*SalesReport, error)
	ExportSalesReport(from, to time.Time) (*excelize.File, error)
	ListOrders(from, to time.Time, limit, offset int) ([]model.Order, int64, error)
	GetOrderByID(id uint) (*model.Order, error)
	UpdateOrderStatus(id uint, status model.OrderStatus) (*model.Order, error)
}

type reportService struct {
	orderRepo repository.OrderRepository
}

func NewReportService(orderRepo repository.OrderRepository) ReportService {
	return &reportService{orderRepo: orderRepo}
}

func (s *reportService) GetSalesReport(from, to time.Time) (*SalesReport, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}

	logger.Info("Building sales report", map[string]interface{}{
		"from": from,
		"to":   to,
	})

	totals, err := s.orderRepo.GetSalesTotals(from, to)
	if err != nil {
		return nil, err
	}

	daily, err := s.orderRepo.GetDailySales(from, to)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.orderRepo.GetTopProducts(from, to, 10)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		From:        from,
		To:          to,
		Totals:      *totals,
		Daily:       daily,
		TopProducts: topProducts,
	}

	logger.Info("Sales report built", map[string]interface{}{
		"order_count":   report.Totals.OrderCount,
		"total_revenue": report.Totals.TotalRevenue,
		"days":          len(report.Daily),
	})
	return report, nil
}

// ExportSalesReport renders the report as a three-sheet workbook. The caller
// owns the returned file and must close it.
func (s *reportService) ExportSalesReport(from, to time.Time) (*excelize.File, error) {
	report, err := s.GetSalesReport(from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	summarySheet := "Summary"
	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		f.Close()
		return nil, err
	}

	summaryRows := [][]interface{}{
		{"Sales Report"},
		{"From", report.From.Format("2006-01-02")},
		{"To", report.To.Format("2006-01-02")},
		{},
		{"Orders", report.Totals.OrderCount},
		{"Items sold", report.Totals.ItemsSold},
		{"Revenue", pricing.FormatAmount(report.Totals.TotalRevenue)},
	}
	for i, row := range summaryRows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	dailySheet := "Daily"
	if _, err := f.NewSheet(dailySheet); err != nil {
		f.Close()
		return nil, err
	}
	header := []interface{}{"Day", "Orders", "Revenue"}
	if err := f.SetSheetRow(dailySheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	for i, day := range report.Daily {
		row := []interface{}{day.Day, day.OrderCount, day.Revenue}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(dailySheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	topSheet := "Top Products"
	if _, err := f.NewSheet(topSheet); err != nil {
		f.Close()
		return nil, err
	}
	header = []interface{}{"SKU", "Name", "Units sold", "Revenue"}
	if err := f.SetSheetRow(topSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	for i, p := range report.TopProducts {
		row := []interface{}{p.SKU, p.Name, p.UnitsSold, p.Revenue}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(topSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	logger.Info("Sales report exported", map[string]interface{}{
		"from": from,
		"to":   to,
	})
	return f, nil
}

func (s *reportService) ListOrders(from, to time.Time, limit, offset int) ([]model.Order, int64, error) {
	if err := checkRange(from, to); err != nil {
		return nil, 0, err
	}

	logger.Debug("Listing orders", map[string]interface{}{
		"from":   from,
		"to":     to,
		"limit":  limit,
		"offset": offset,
	})

	orders, total, err := s.orderRepo.FindByDateRange(from, to, limit, offset)
	if err != nil {
		logger.Error("Failed to list orders", err)
		return nil, 0, err
	}

	return orders, total, nil
}

func (s *reportService) GetOrderByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *reportService) UpdateOrderStatus(id uint, status model.OrderStatus) (*model.Order, error) {
	switch status {
	case model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusShipping,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
	default:
		return nil, ErrInvalidOrderStatus
	}

	logger.Info("Updating order status", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})

	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.Status = status
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})
	return order, nil
}

func checkRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() || !from.Before(to) {
		return ErrReportInvalidRange
	}
	return nil
}
