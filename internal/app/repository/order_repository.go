package repository

import (
	"time"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"gorm.io/gorm"
)

// SalesTotals aggregates orders inside a reporting window.
type SalesTotals struct {
	OrderCount   int64   `json:"order_count"`
	TotalRevenue float64 `json:"total_revenue"`
	ItemsSold    int64   `json:"items_sold"`
}

// DailySales is one row of the per-day revenue breakdown.
type DailySales struct {
	Day        string  `json:"day"`
	OrderCount int64   `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

// TopProduct ranks a variant by units sold inside a reporting window.
type TopProduct struct {
	VariantID uint    `json:"variant_id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	UnitsSold int64   `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByReference(reference string) (*model.Order, error)
	FindByDateRange(from, to time.Time, limit, offset int) ([]model.Order, int64, error)
	UpdateStatus(id uint, status model.OrderStatus) error
	GetSalesTotals(from, to time.Time) (*SalesTotals, error)
	GetDailySales(from, to time.Time) ([]DailySales, error)
	GetTopProducts(from, to time.Time, limit int) ([]TopProduct, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"reference":  order.Reference,
		"item_count": len(order.OrderItems),
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"reference": order.Reference,
		})
		return err
	}

	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("OrderItems").First(&order, id).Error
	if err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByReference(reference string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("OrderItems").Where("reference = ?", reference).First(&order).Error
	if err != nil {
		logger.Error("Failed to find order by reference in database", err, map[string]interface{}{
			"reference": reference,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateStatus(id uint, status model.OrderStatus) error {
	logger.Debug("Updating order status in database", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})

	result := r.db.Model(&model.Order{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		logger.Error("Failed to update order status in database", result.Error, map[string]interface{}{
			"order_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *orderRepository) FindByDateRange(from, to time.Time, limit, offset int) ([]model.Order, int64, error) {
	logger.Debug("Finding orders by date range in database", map[string]interface{}{
		"from": from,
		"to":   to,
	})

	query := r.db.Model(&model.Order{}).
		Where("placed_at >= ? AND placed_at < ?", from, to)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count orders by date range in database", err, nil)
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var orders []model.Order
	if err := query.Preload("OrderItems").Order("placed_at DESC").Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by date range in database", err, map[string]interface{}{
			"from": from,
			"to":   to,
		})
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) GetSalesTotals(from, to time.Time) (*SalesTotals, error) {
	logger.Debug("Calculating sales totals in database", map[string]interface{}{
		"from": from,
		"to":   to,
	})

	totals := &SalesTotals{}

	if err := r.db.Model(&model.Order{}).
		Select("COUNT(*) as order_count, COALESCE(SUM(total_amount), 0) as total_revenue").
		Where("placed_at >= ? AND placed_at < ?", from, to).
		Where("payment_status = ?", model.PaymentStatusCompleted).
		Scan(totals).Error; err != nil {
		logger.Error("Failed to calculate sales totals", err, map[string]interface{}{
			"from": from,
			"to":   to,
		})
		return nil, err
	}

	var itemsResult struct {
		ItemsSold int64
	}
	if err := r.db.Model(&model.OrderItem{}).
		Select("COALESCE(SUM(order_items.quantity), 0) as items_sold").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.placed_at >= ? AND orders.placed_at < ?", from, to).
		Where("orders.payment_status = ?", model.PaymentStatusCompleted).
		Where("orders.deleted_at IS NULL").
		Scan(&itemsResult).Error; err != nil {
		logger.Error("Failed to calculate items sold", err, map[string]interface{}{
			"from": from,
			"to":   to,
		})
		return nil, err
	}
	totals.ItemsSold = itemsResult.ItemsSold

	return totals, nil
}

func (r *orderRepository) GetDailySales(from, to time.Time) ([]DailySales, error) {
	logger.Debug("Calculating daily sales breakdown in database", map[string]interface{}{
		"from": from,
		"to":   to,
	})

	var rows []DailySales
	// DATE() works on both postgres and sqlite.
	if err := r.db.Model(&model.Order{}).
		Select("DATE(placed_at) as day, COUNT(*) as order_count, COALESCE(SUM(total_amount), 0) as revenue").
		Where("placed_at >= ? AND placed_at < ?", from, to).
		Where("payment_status = ?", model.PaymentStatusCompleted).
		Group("DATE(placed_at)").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		logger.Error("Failed to calculate daily sales breakdown", err, map[string]interface{}{
			"from": from,
			"to":   to,
		})
		return nil, err
	}

	return rows, nil
}

func (r *orderRepository) GetTopProducts(from, to time.Time, limit int) ([]TopProduct, error) {
	logger.Debug("Calculating top products in database", map[string]interface{}{
		"from":  from,
		"to":    to,
		"limit": limit,
	})

	if limit <= 0 {
		limit = 10
	}

	var rows []TopProduct
	if err := r.db.Model(&model.OrderItem{}).
		Select("order_items.variant_id, order_items.sku, order_items.name, "+
			"SUM(order_items.quantity) as units_sold, "+
			"COALESCE(SUM(order_items.quantity * order_items.unit_price), 0) as revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.placed_at >= ? AND orders.placed_at < ?", from, to).
		Where("orders.payment_status = ?", model.PaymentStatusCompleted).
		Where("orders.deleted_at IS NULL").
		Group("order_items.variant_id, order_items.sku, order_items.name").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		logger.Error("Failed to calculate top products", err, map[string]interface{}{
			"from": from,
			"to":   to,
		})
		return nil, err
	}

	return rows, nil
}
