package service

import (
	"errors"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/repository"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"github.com/ikkim/backoffice-backend/pkg/pricing"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrVariantSKUExists = errors.New("variant SKU already exists for this product")

	ErrBundleIncompleteItem      = errors.New("bundle item needs a component variant ID or SKU")
	ErrBundleInvalidQuantity     = errors.New("bundle item quantity must be at least 1")
	ErrBundleSelfReference       = errors.New("bundle cannot contain itself")
	ErrBundleDuplicateComponent  = errors.New("bundle contains the same component twice")
	ErrBundleTooFewComponents    = errors.New("bundle needs at least two distinct components")
	ErrBundleUnresolvedComponent = errors.New("bundle item does not match any variant")
	ErrBundleNestedBundle        = errors.New("bundle component cannot be another bundle")
	ErrBundleStockReadOnly       = errors.New("bundle stock is derived and cannot be adjusted")
)

type ProductSort string

const (
	ProductSortName      ProductSort = "name"
	ProductSortCreatedAt ProductSort = "created_at"
)

type ProductListOptions struct {
	Category        *model.ProductCategory
	Search          string
	ActiveOnly      bool
	Sort            ProductSort
	SortAscending   bool
	Limit           int
	Offset          int
	IncludeVariants bool
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, int64, error)
	ListCategories() ([]model.ProductCategory, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error

	CreateVariant(productID uint, variant *model.Variant) error
	UpdateVariant(productID uint, variant *model.Variant) error
	DeleteVariant(productID, variantID uint) error
	AdjustStock(productID, variantID uint, delta int) (*model.Variant, error)
}

type productService struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

func NewProductService(productRepo repository.ProductRepository, variantRepo repository.VariantRepository) ProductService {
	return &productService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, int64, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category":    opts.Category,
		"search":      opts.Search,
		"active_only": opts.ActiveOnly,
		"sort":        opts.Sort,
		"limit":       opts.Limit,
		"offset":      opts.Offset,
	})

	filter := repository.ProductFilter{
		Category:        opts.Category,
		Search:          opts.Search,
		ActiveOnly:      opts.ActiveOnly,
		SortAscending:   opts.SortAscending,
		Limit:           opts.Limit,
		Offset:          opts.Offset,
		IncludeVariants: opts.IncludeVariants,
	}

	switch opts.Sort {
	case ProductSortName:
		filter.SortBy = repository.ProductSortName
	case ProductSortCreatedAt:
		fallthrough
	default:
		filter.SortBy = repository.ProductSortCreatedAt
	}

	products, total, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, 0, err
	}

	for i := range products {
		decorateVariants(&products[i])
	}

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return products, total, nil
}

func (s *productService) ListCategories() ([]model.ProductCategory, error) {
	return s.productRepo.ListCategories()
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	logger.Debug("Fetching product by ID", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	decorateVariants(product)
	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	if product.Category == "" {
		product.Category = model.CategoryOther
	}

	logger.Info("Creating new product", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (s *productService) UpdateProduct(product *model.Product) error {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: product not found", map[string]interface{}{
				"product_id": product.ID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to check product existence", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	if product.Category == "" {
		product.Category = existing.Category
	}
	product.CreatedAt = existing.CreatedAt

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) CreateVariant(productID uint, variant *model.Variant) error {
	logger.Info("Creating variant", map[string]interface{}{
		"product_id": productID,
		"sku":        variant.SKU,
		"is_bundle":  variant.IsBundle,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if existing, err := s.variantRepo.FindBySKU(productID, variant.SKU); err == nil && existing != nil {
		logger.Warn("Variant SKU collision", map[string]interface{}{
			"product_id": productID,
			"sku":        variant.SKU,
		})
		return ErrVariantSKUExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	variant.ProductID = productID
	variant.SalePrice = pricing.NormalizeSalePrice(variant.Price, variant.SalePrice)

	if variant.IsBundle {
		if err := s.validateBundle(variant, product.Variants); err != nil {
			logger.Warn("Bundle validation failed", map[string]interface{}{
				"product_id": productID,
				"sku":        variant.SKU,
				"reason":     err.Error(),
			})
			return err
		}
		// Derived, never written.
		variant.Stock = 0
	}

	if err := s.variantRepo.Create(variant); err != nil {
		logger.Error("Failed to create variant", err, map[string]interface{}{
			"product_id": productID,
			"sku":        variant.SKU,
		})
		return err
	}

	logger.Info("Variant created successfully", map[string]interface{}{
		"variant_id": variant.ID,
		"sku":        variant.SKU,
	})
	return nil
}

func (s *productService) UpdateVariant(productID uint, variant *model.Variant) error {
	logger.Info("Updating variant", map[string]interface{}{
		"product_id": productID,
		"variant_id": variant.ID,
	})

	existing, err := s.variantRepo.FindByID(variant.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}
	if existing.ProductID != productID {
		logger.Warn("Variant does not belong to product", map[string]interface{}{
			"product_id": productID,
			"variant_id": variant.ID,
		})
		return ErrVariantNotFound
	}

	if variant.SKU != existing.SKU {
		if other, err := s.variantRepo.FindBySKU(productID, variant.SKU); err == nil && other != nil && other.ID != variant.ID {
			return ErrVariantSKUExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	variant.ProductID = productID
	variant.CreatedAt = existing.CreatedAt
	variant.SalePrice = pricing.NormalizeSalePrice(variant.Price, variant.SalePrice)

	items := variant.BundleItems
	if variant.IsBundle {
		product, err := s.productRepo.FindByID(productID)
		if err != nil {
			return err
		}
		if err := s.validateBundle(variant, product.Variants); err != nil {
			logger.Warn("Bundle validation failed", map[string]interface{}{
				"product_id": productID,
				"variant_id": variant.ID,
				"reason":     err.Error(),
			})
			return err
		}
		// Stock stays untouched; the column is meaningless for bundles.
		variant.Stock = existing.Stock
	}

	variant.BundleItems = nil
	if err := s.variantRepo.Update(variant); err != nil {
		logger.Error("Failed to update variant", err, map[string]interface{}{
			"variant_id": variant.ID,
		})
		return err
	}

	if variant.IsBundle {
		if err := s.variantRepo.ReplaceBundleItems(variant.ID, items); err != nil {
			logger.Error("Failed to replace bundle items", err, map[string]interface{}{
				"variant_id": variant.ID,
			})
			return err
		}
		variant.BundleItems = items
	} else if len(existing.BundleItems) > 0 {
		// Downgrading a bundle to a plain variant sheds its composition.
		if err := s.variantRepo.ReplaceBundleItems(variant.ID, nil); err != nil {
			logger.Error("Failed to clear bundle items", err, map[string]interface{}{
				"variant_id": variant.ID,
			})
			return err
		}
	}

	logger.Info("Variant updated successfully", map[string]interface{}{
		"variant_id": variant.ID,
	})
	return nil
}

func (s *productService) DeleteVariant(productID, variantID uint) error {
	logger.Info("Deleting variant", map[string]interface{}{
		"product_id": productID,
		"variant_id": variantID,
	})

	existing, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}
	if existing.ProductID != productID {
		return ErrVariantNotFound
	}

	if err := s.variantRepo.Delete(variantID); err != nil {
		logger.Error("Failed to delete variant", err, map[string]interface{}{
			"variant_id": variantID,
		})
		return err
	}

	return nil
}

func (s *productService) AdjustStock(productID, variantID uint, delta int) (*model.Variant, error) {
	logger.Info("Adjusting variant stock", map[string]interface{}{
		"product_id": productID,
		"variant_id": variantID,
		"delta":      delta,
	})

	existing, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	if existing.ProductID != productID {
		return nil, ErrVariantNotFound
	}
	if existing.IsBundle {
		logger.Warn("Rejected stock adjustment on bundle", map[string]interface{}{
			"variant_id": variantID,
		})
		return nil, ErrBundleStockReadOnly
	}

	if err := s.variantRepo.AdjustStock(variantID, delta); err != nil {
		logger.Error("Failed to adjust variant stock", err, map[string]interface{}{
			"variant_id": variantID,
			"delta":      delta,
		})
		return nil, err
	}

	updated, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		return nil, err
	}

	logger.Info("Variant stock adjusted", map[string]interface{}{
		"variant_id": variantID,
		"stock":      updated.Stock,
	})
	return updated, nil
}

// validateBundle enforces the composition rules before a bundle is written:
// every item carries a reference and a positive quantity, every reference
// resolves to a plain variant, nothing references the bundle itself, no
// component appears twice, and at least two distinct components remain.
func (s *productService) validateBundle(bundle *model.Variant, pool []model.Variant) error {
	if len(bundle.BundleItems) < 2 {
		return ErrBundleTooFewComponents
	}

	seen := make(map[uint]bool, len(bundle.BundleItems))
	for i := range bundle.BundleItems {
		item := bundle.BundleItems[i]

		if (item.ComponentVariantID == nil || *item.ComponentVariantID == 0) && item.ComponentSKU == "" {
			return ErrBundleIncompleteItem
		}
		if item.Quantity < 1 {
			return ErrBundleInvalidQuantity
		}

		if item.ComponentVariantID != nil && *item.ComponentVariantID != 0 && *item.ComponentVariantID == bundle.ID {
			return ErrBundleSelfReference
		}
		if item.ComponentSKU != "" && item.ComponentSKU == bundle.SKU {
			return ErrBundleSelfReference
		}

		component := model.ResolveComponent(item, pool)
		if component == nil {
			return ErrBundleUnresolvedComponent
		}
		if component.ID == bundle.ID {
			return ErrBundleSelfReference
		}
		if component.IsBundle {
			return ErrBundleNestedBundle
		}
		if seen[component.ID] {
			return ErrBundleDuplicateComponent
		}
		seen[component.ID] = true
	}

	if len(seen) < 2 {
		return ErrBundleTooFewComponents
	}
	return nil
}

// decorateVariants fills the read-only computed fields on each variant:
// discount display for discounted prices and derived availability for bundles.
// Only plain variants form the component pool; bundles never compose bundles.
func decorateVariants(product *model.Product) {
	components := make([]model.Variant, 0, len(product.Variants))
	for _, v := range product.Variants {
		if !v.IsBundle {
			components = append(components, v)
		}
	}

	for i := range product.Variants {
		v := &product.Variants[i]
		if v.SalePrice != nil {
			v.DiscountPercent = pricing.DiscountPercentDisplay(v.Price, *v.SalePrice)
		}
		if v.IsBundle {
			v.AvailableQty = model.DerivedAvailableQty(v, components)
		}
	}
}
