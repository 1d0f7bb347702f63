package repository

import (
	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"gorm.io/gorm"
)

type VariantRepository interface {
	Create(variant *model.Variant) error
	FindByID(id uint) (*model.Variant, error)
	FindByProduct(productID uint) ([]model.Variant, error)
	FindBySKU(productID uint, sku string) (*model.Variant, error)
	Update(variant *model.Variant) error
	Delete(id uint) error
	AdjustStock(id uint, delta int) error
	ReplaceBundleItems(variantID uint, items []model.BundleItem) error
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r *variantRepository) Create(variant *model.Variant) error {
	logger.Debug("Creating variant in database", map[string]interface{}{
		"product_id": variant.ProductID,
		"sku":        variant.SKU,
		"is_bundle":  variant.IsBundle,
	})

	if err := r.db.Create(variant).Error; err != nil {
		logger.Error("Failed to create variant in database", err, map[string]interface{}{
			"product_id": variant.ProductID,
			"sku":        variant.SKU,
		})
		return err
	}

	logger.Debug("Variant created in database", map[string]interface{}{
		"variant_id": variant.ID,
		"sku":        variant.SKU,
	})
	return nil
}

func (r *variantRepository) FindByID(id uint) (*model.Variant, error) {
	logger.Debug("Finding variant by ID in database", map[string]interface{}{
		"variant_id": id,
	})

	var variant model.Variant
	err := r.db.Preload("BundleItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("bundle_items.sort_order ASC, bundle_items.id ASC")
	}).First(&variant, id).Error
	if err != nil {
		logger.Error("Failed to find variant by ID in database", err, map[string]interface{}{
			"variant_id": id,
		})
		return nil, err
	}

	return &variant, nil
}

func (r *variantRepository) FindByProduct(productID uint) ([]model.Variant, error) {
	logger.Debug("Finding variants by product in database", map[string]interface{}{
		"product_id": productID,
	})

	var variants []model.Variant
	err := r.db.Where("product_id = ?", productID).
		Preload("BundleItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("bundle_items.sort_order ASC, bundle_items.id ASC")
		}).
		Order("sort_order ASC, id ASC").
		Find(&variants).Error
	if err != nil {
		logger.Error("Failed to find variants by product in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	return variants, nil
}

func (r *variantRepository) FindBySKU(productID uint, sku string) (*model.Variant, error) {
	var variant model.Variant
	err := r.db.Where("product_id = ? AND sku = ?", productID, sku).First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) Update(variant *model.Variant) error {
	logger.Debug("Updating variant in database", map[string]interface{}{
		"variant_id": variant.ID,
		"sku":        variant.SKU,
	})

	if err := r.db.Save(variant).Error; err != nil {
		logger.Error("Failed to update variant in database", err, map[string]interface{}{
			"variant_id": variant.ID,
		})
		return err
	}

	return nil
}

func (r *variantRepository) Delete(id uint) error {
	logger.Debug("Deleting variant from database", map[string]interface{}{
		"variant_id": id,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bundle_id = ?", id).Delete(&model.BundleItem{}).Error; err != nil {
			logger.Error("Failed to delete bundle items for variant", err, map[string]interface{}{
				"variant_id": id,
			})
			return err
		}
		if err := tx.Delete(&model.Variant{}, id).Error; err != nil {
			logger.Error("Failed to delete variant from database", err, map[string]interface{}{
				"variant_id": id,
			})
			return err
		}
		return nil
	})
}

func (r *variantRepository) AdjustStock(id uint, delta int) error {
	logger.Debug("Adjusting variant stock in database", map[string]interface{}{
		"variant_id": id,
		"delta":      delta,
	})

	if err := r.db.Model(&model.Variant{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error; err != nil {
		logger.Error("Failed to adjust variant stock in database", err, map[string]interface{}{
			"variant_id": id,
			"delta":      delta,
		})
		return err
	}

	return nil
}

// ReplaceBundleItems swaps a bundle's bill of materials atomically.
func (r *variantRepository) ReplaceBundleItems(variantID uint, items []model.BundleItem) error {
	logger.Debug("Replacing bundle items in database", map[string]interface{}{
		"variant_id": variantID,
		"item_count": len(items),
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("bundle_id = ?", variantID).Delete(&model.BundleItem{}).Error; err != nil {
			logger.Error("Failed to clear bundle items", err, map[string]interface{}{
				"variant_id": variantID,
			})
			return err
		}

		for i := range items {
			items[i].ID = 0
			items[i].BundleID = variantID
		}
		if len(items) == 0 {
			return nil
		}
		if err := tx.Create(&items).Error; err != nil {
			logger.Error("Failed to create bundle items", err, map[string]interface{}{
				"variant_id": variantID,
			})
			return err
		}
		return nil
	})
}
