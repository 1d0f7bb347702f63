package service

import (
	"testing"
	"time"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/repository"
	"github.com/ikkim/backoffice-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReportServiceTest(t *testing.T) (*gorm.DB, ReportService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	orderRepo := repository.NewOrderRepository(testDB)
	svc := NewReportService(orderRepo)
	return testDB, svc
}

func seedOrders(t *testing.T, testDB *gorm.DB) (from, to time.Time) {
	orderRepo := repository.NewOrderRepository(testDB)

	day1 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 14, 30, 0, 0, time.UTC)

	orders := []model.Order{
		{
			Reference:     "ORD-1001",
			TotalAmount:   100,
			Status:        model.OrderStatusDelivered,
			PaymentStatus: model.PaymentStatusCompleted,
			PlacedAt:      day1,
			OrderItems: []model.OrderItem{
				{VariantID: 1, SKU: "TEE-BLK-M", Name: "Black Tee M", Quantity: 2, UnitPrice: 30},
				{VariantID: 2, SKU: "MUG-01", Name: "Stoneware Mug", Quantity: 1, UnitPrice: 40},
			},
		},
		{
			Reference:     "ORD-1002",
			TotalAmount:   60,
			Status:        model.OrderStatusConfirmed,
			PaymentStatus: model.PaymentStatusCompleted,
			PlacedAt:      day2,
			OrderItems: []model.OrderItem{
				{VariantID: 1, SKU: "TEE-BLK-M", Name: "Black Tee M", Quantity: 2, UnitPrice: 30},
			},
		},
		{
			// Unpaid orders never count toward sales.
			Reference:     "ORD-1003",
			TotalAmount:   999,
			Status:        model.OrderStatusPending,
			PaymentStatus: model.PaymentStatusPending,
			PlacedAt:      day2,
			OrderItems: []model.OrderItem{
				{VariantID: 2, SKU: "MUG-01", Name: "Stoneware Mug", Quantity: 5, UnitPrice: 40},
			},
		},
	}
	for i := range orders {
		require.NoError(t, orderRepo.Create(&orders[i]))
	}

	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
}

func TestReportService_GetSalesReport(t *testing.T) {
	testDB, svc := setupReportServiceTest(t)
	defer db.CleanupTestDB(testDB)

	from, to := seedOrders(t, testDB)

	report, err := svc.GetSalesReport(from, to)
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.Totals.OrderCount)
	assert.InDelta(t, 160, report.Totals.TotalRevenue, 0.001)
	assert.Equal(t, int64(5), report.Totals.ItemsSold)

	require.Len(t, report.Daily, 2)
	assert.Equal(t, int64(1), report.Daily[0].OrderCount)
	assert.InDelta(t, 100, report.Daily[0].Revenue, 0.001)
	assert.Equal(t, int64(1), report.Daily[1].OrderCount)
	assert.InDelta(t, 60, report.Daily[1].Revenue, 0.001)

	require.NotEmpty(t, report.TopProducts)
	assert.Equal(t, "TEE-BLK-M", report.TopProducts[0].SKU)
	assert.Equal(t, int64(4), report.TopProducts[0].UnitsSold)
	assert.InDelta(t, 120, report.TopProducts[0].Revenue, 0.001)
}

func TestReportService_GetSalesReport_EmptyRange(t *testing.T) {
	testDB, svc := setupReportServiceTest(t)
	defer db.CleanupTestDB(testDB)

	seedOrders(t, testDB)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	report, err := svc.GetSalesReport(from, to)
	require.NoError(t, err)

	assert.Equal(t, int64(0), report.Totals.OrderCount)
	assert.InDelta(t, 0, report.Totals.TotalRevenue, 0.001)
	assert.Empty(t, report.Daily)
	assert.Empty(t, report.TopProducts)
}

func TestReportService_GetSalesReport_InvalidRange(t *testing.T) {
	testDB, svc := setupReportServiceTest(t)
	defer db.CleanupTestDB(testDB)

	now := time.Now()

	tests := []struct {
		name string
		from time.Time
		to   time.Time
	}{
		{name: "Zero from", from: time.Time{}, to: now},
		{name: "Zero to", from: now, to: time.Time{}},
		{name: "From after to", from: now, to: now.Add(-time.Hour)},
		{name: "From equals to", from: now, to: now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetSalesReport(tt.from, tt.to)
			assert.ErrorIs(t, err, ErrReportInvalidRange)
		})
	}
}

func TestReportService_ExportSalesReport(t *testing.T) {
	testDB, svc := setupReportServiceTest(t)
	defer db.CleanupTestDB(testDB)

	from, to := seedOrders(t, testDB)

	f, err := svc.ExportSalesReport(from, to)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Daily", "Top Products"}, f.GetSheetList())

	rows, err := f.GetRows("Daily")
	require.NoError(t, err)
	// Header plus one row per day with sales.
	assert.Len(t, rows, 3)
}

func TestReportService_UpdateOrderStatus(t *testing.T) {
	testDB, svc := setupReportServiceTest(t)
	defer db.CleanupTestDB(testDB)

	seedOrders(t, testDB)

	orderRepo := repository.NewOrderRepository(testDB)
	order, err := orderRepo.FindByReference("ORD-1002")
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(order.ID, model.OrderStatusShipping)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipping, updated.Status)

	_, err = svc.UpdateOrderStatus(order.ID, "teleported")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, err = svc.UpdateOrderStatus(9999, model.OrderStatusShipping)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
