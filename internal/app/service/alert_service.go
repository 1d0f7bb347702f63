package service

import (
	"errors"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/repository"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrAlertNotFound = errors.New("alert not found")

const defaultLowStockThreshold = 5

// AlertBroadcaster pushes a stock alert to connected staff clients. The
// websocket hub satisfies this; tests use a stub.
type AlertBroadcaster interface {
	BroadcastAlert(alert *model.StockAlert)
}

type AlertService interface {
	CheckStockLevel(variant *model.Variant)
	ListAlerts(limit int, unreadOnly bool) ([]model.StockAlert, error)
	MarkRead(id uint) error
	MarkAllRead() error
	GetSettings(userID uint) (*model.AlertSettings, error)
	UpdateSettings(settings *model.AlertSettings) error
}

type alertService struct {
	alertRepo   repository.AlertRepository
	broadcaster AlertBroadcaster
}

func NewAlertService(alertRepo repository.AlertRepository, broadcaster AlertBroadcaster) AlertService {
	return &alertService{
		alertRepo:   alertRepo,
		broadcaster: broadcaster,
	}
}

// CheckStockLevel inspects a variant after a stock change and records an
// alert when the level crossed the threshold. Bundles and untracked variants
// never alert; their stock column carries no meaning.
func (s *alertService) CheckStockLevel(variant *model.Variant) {
	if variant == nil || variant.IsBundle || !variant.TrackStock {
		return
	}
	if variant.Stock > defaultLowStockThreshold {
		return
	}

	alertType := model.AlertTypeLowStock
	if variant.Stock <= 0 {
		alertType = model.AlertTypeOutOfStock
	}

	alert := &model.StockAlert{
		Type:      alertType,
		VariantID: variant.ID,
		SKU:       variant.SKU,
		Stock:     variant.Stock,
	}

	if err := s.alertRepo.Create(alert); err != nil {
		logger.Error("Failed to persist stock alert", err, map[string]interface{}{
			"variant_id": variant.ID,
			"sku":        variant.SKU,
		})
		return
	}

	logger.Info("Stock alert raised", map[string]interface{}{
		"type":       alert.Type,
		"variant_id": alert.VariantID,
		"sku":        alert.SKU,
		"stock":      alert.Stock,
	})

	if s.broadcaster != nil {
		s.broadcaster.BroadcastAlert(alert)
	}
}

func (s *alertService) ListAlerts(limit int, unreadOnly bool) ([]model.StockAlert, error) {
	alerts, err := s.alertRepo.FindRecent(limit, unreadOnly)
	if err != nil {
		logger.Error("Failed to list stock alerts", err)
		return nil, err
	}
	return alerts, nil
}

func (s *alertService) MarkRead(id uint) error {
	if err := s.alertRepo.MarkRead(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlertNotFound
		}
		return err
	}
	return nil
}

func (s *alertService) MarkAllRead() error {
	return s.alertRepo.MarkAllRead()
}

// GetSettings returns stored preferences, or defaults when the user has
// never saved any.
func (s *alertService) GetSettings(userID uint) (*model.AlertSettings, error) {
	settings, err := s.alertRepo.GetSettings(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.AlertSettings{
				UserID:            userID,
				LowStockThreshold: defaultLowStockThreshold,
			}, nil
		}
		logger.Error("Failed to fetch alert settings", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return settings, nil
}

func (s *alertService) UpdateSettings(settings *model.AlertSettings) error {
	if settings.LowStockThreshold < 0 {
		settings.LowStockThreshold = defaultLowStockThreshold
	}

	existing, err := s.alertRepo.GetSettings(settings.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		settings.ID = existing.ID
	}

	if err := s.alertRepo.SaveSettings(settings); err != nil {
		logger.Error("Failed to save alert settings", err, map[string]interface{}{
			"user_id": settings.UserID,
		})
		return err
	}

	logger.Info("Alert settings saved", map[string]interface{}{
		"user_id":             settings.UserID,
		"low_stock_threshold": settings.LowStockThreshold,
	})
	return nil
}
