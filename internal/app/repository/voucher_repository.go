package repository

import (
	"time"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"gorm.io/gorm"
)

// VoucherFilter narrows voucher listings.
type VoucherFilter struct {
	ActiveOnly bool
	Search     string
	Limit      int
	Offset     int
}

type VoucherRepository interface {
	Create(voucher *model.Voucher) error
	FindWithFilter(filter VoucherFilter) ([]model.Voucher, int64, error)
	FindByID(id uint) (*model.Voucher, error)
	FindByCode(code string) (*model.Voucher, error)
	Update(voucher *model.Voucher) error
	Delete(id uint) error
	IncrementUsage(id uint) error
	DeactivateExpired(now time.Time) (int64, error)
}

type voucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) Create(voucher *model.Voucher) error {
	logger.Debug("Creating voucher in database", map[string]interface{}{
		"code": voucher.Code,
		"type": voucher.Type,
	})

	if err := r.db.Create(voucher).Error; err != nil {
		logger.Error("Failed to create voucher in database", err, map[string]interface{}{
			"code": voucher.Code,
		})
		return err
	}

	return nil
}

func (r *voucherRepository) FindWithFilter(filter VoucherFilter) ([]model.Voucher, int64, error) {
	logger.Debug("Listing vouchers from database", map[string]interface{}{
		"active_only": filter.ActiveOnly,
		"search":      filter.Search,
	})

	query := r.db.Model(&model.Voucher{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		query = query.Where("code ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count vouchers in database", err, nil)
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var vouchers []model.Voucher
	if err := query.Order("created_at DESC").Find(&vouchers).Error; err != nil {
		logger.Error("Failed to list vouchers from database", err, nil)
		return nil, 0, err
	}

	return vouchers, total, nil
}

func (r *voucherRepository) FindByID(id uint) (*model.Voucher, error) {
	var voucher model.Voucher
	err := r.db.First(&voucher, id).Error
	if err != nil {
		logger.Error("Failed to find voucher by ID in database", err, map[string]interface{}{
			"voucher_id": id,
		})
		return nil, err
	}
	return &voucher, nil
}

func (r *voucherRepository) FindByCode(code string) (*model.Voucher, error) {
	var voucher model.Voucher
	err := r.db.Where("code = ?", code).First(&voucher).Error
	if err != nil {
		logger.Error("Failed to find voucher by code in database", err, map[string]interface{}{
			"code": code,
		})
		return nil, err
	}
	return &voucher, nil
}

func (r *voucherRepository) Update(voucher *model.Voucher) error {
	logger.Debug("Updating voucher in database", map[string]interface{}{
		"voucher_id": voucher.ID,
	})

	if err := r.db.Save(voucher).Error; err != nil {
		logger.Error("Failed to update voucher in database", err, map[string]interface{}{
			"voucher_id": voucher.ID,
		})
		return err
	}

	return nil
}

func (r *voucherRepository) Delete(id uint) error {
	logger.Debug("Deleting voucher from database", map[string]interface{}{
		"voucher_id": id,
	})

	if err := r.db.Delete(&model.Voucher{}, id).Error; err != nil {
		logger.Error("Failed to delete voucher from database", err, map[string]interface{}{
			"voucher_id": id,
		})
		return err
	}

	return nil
}

func (r *voucherRepository) IncrementUsage(id uint) error {
	logger.Debug("Incrementing voucher usage in database", map[string]interface{}{
		"voucher_id": id,
	})

	result := r.db.Model(&model.Voucher{}).
		Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if result.Error != nil {
		logger.Error("Failed to increment voucher usage in database", result.Error, map[string]interface{}{
			"voucher_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *voucherRepository) DeactivateExpired(now time.Time) (int64, error) {
	logger.Debug("Deactivating expired vouchers in database", map[string]interface{}{
		"now": now,
	})

	result := r.db.Model(&model.Voucher{}).
		Where("is_active = ?", true).
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate expired vouchers in database", result.Error, nil)
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
