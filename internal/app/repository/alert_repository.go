package repository

import (
	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"gorm.io/gorm"
)

type AlertRepository interface {
	Create(alert *model.StockAlert) error
	FindRecent(limit int, unreadOnly bool) ([]model.StockAlert, error)
	MarkRead(id uint) error
	MarkAllRead() error
	GetSettings(userID uint) (*model.AlertSettings, error)
	SaveSettings(settings *model.AlertSettings) error
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(alert *model.StockAlert) error {
	logger.Debug("Creating stock alert in database", map[string]interface{}{
		"type":       alert.Type,
		"variant_id": alert.VariantID,
		"sku":        alert.SKU,
	})

	if err := r.db.Create(alert).Error; err != nil {
		logger.Error("Failed to create stock alert in database", err, map[string]interface{}{
			"variant_id": alert.VariantID,
		})
		return err
	}

	return nil
}

func (r *alertRepository) FindRecent(limit int, unreadOnly bool) ([]model.StockAlert, error) {
	if limit <= 0 {
		limit = 50
	}

	query := r.db.Model(&model.StockAlert{})
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var alerts []model.StockAlert
	if err := query.Order("created_at DESC").Limit(limit).Find(&alerts).Error; err != nil {
		logger.Error("Failed to list stock alerts from database", err, nil)
		return nil, err
	}

	return alerts, nil
}

func (r *alertRepository) MarkRead(id uint) error {
	result := r.db.Model(&model.StockAlert{}).
		Where("id = ?", id).
		UpdateColumn("is_read", true)
	if result.Error != nil {
		logger.Error("Failed to mark stock alert as read in database", result.Error, map[string]interface{}{
			"alert_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *alertRepository) MarkAllRead() error {
	if err := r.db.Model(&model.StockAlert{}).
		Where("is_read = ?", false).
		UpdateColumn("is_read", true).Error; err != nil {
		logger.Error("Failed to mark all stock alerts as read in database", err, nil)
		return err
	}
	return nil
}

func (r *alertRepository) GetSettings(userID uint) (*model.AlertSettings, error) {
	var settings model.AlertSettings
	err := r.db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *alertRepository) SaveSettings(settings *model.AlertSettings) error {
	logger.Debug("Saving alert settings in database", map[string]interface{}{
		"user_id":             settings.UserID,
		"low_stock_threshold": settings.LowStockThreshold,
	})

	if err := r.db.Save(settings).Error; err != nil {
		logger.Error("Failed to save alert settings in database", err, map[string]interface{}{
			"user_id": settings.UserID,
		})
		return err
	}

	return nil
}
