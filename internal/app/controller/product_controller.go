package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/service"
	apperrors "github.com/ikkim/backoffice-backend/internal/errors"
	"github.com/ikkim/backoffice-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
	alertService   service.AlertService
}

func NewProductController(productService service.ProductService, alertService service.AlertService) *ProductController {
	return &ProductController{
		productService: productService,
		alertService:   alertService,
	}
}

type ProductRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Category    model.ProductCategory `json:"category"`
	ImageURL    string                `json:"image_url"`
	IsActive    *bool                 `json:"is_active"`
}

type BundleItemRequest struct {
	ComponentVariantID *uint  `json:"component_variant_id"`
	ComponentSKU       string `json:"component_sku"`
	Quantity           int    `json:"quantity" binding:"required"`
	SortOrder          int    `json:"sort_order"`
}

type VariantRequest struct {
	SKU         string              `json:"sku" binding:"required"`
	Name        string              `json:"name"`
	Price       float64             `json:"price" binding:"required,gt=0"`
	SalePrice   *float64            `json:"sale_price"`
	Stock       int                 `json:"stock" binding:"gte=0"`
	TrackStock  *bool               `json:"track_stock"`
	IsBundle    bool                `json:"is_bundle"`
	SortOrder   int                 `json:"sort_order"`
	BundleItems []BundleItemRequest `json:"bundle_items"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func (req *VariantRequest) toModel() *model.Variant {
	variant := &model.Variant{
		SKU:       req.SKU,
		Name:      req.Name,
		Price:     req.Price,
		SalePrice: req.SalePrice,
		Stock:     req.Stock,
		IsBundle:  req.IsBundle,
		SortOrder: req.SortOrder,
	}
	variant.TrackStock = true
	if req.TrackStock != nil {
		variant.TrackStock = *req.TrackStock
	}
	for _, item := range req.BundleItems {
		variant.BundleItems = append(variant.BundleItems, model.BundleItem{
			ComponentVariantID: item.ComponentVariantID,
			ComponentSKU:       item.ComponentSKU,
			Quantity:           item.Quantity,
			SortOrder:          item.SortOrder,
		})
	}
	return variant
}

// respondBundleError maps bundle validation failures to 400s with specific codes.
func respondBundleError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrBundleIncompleteItem):
		apperrors.BadRequest(c, apperrors.BundleIncompleteFields, "Each bundle item needs a component variant ID or SKU")
	case errors.Is(err, service.ErrBundleInvalidQuantity):
		apperrors.BadRequest(c, apperrors.BundleInvalidQuantity, "Bundle item quantity must be at least 1")
	case errors.Is(err, service.ErrBundleSelfReference):
		apperrors.BadRequest(c, apperrors.BundleSelfReference, "A bundle cannot contain itself")
	case errors.Is(err, service.ErrBundleDuplicateComponent):
		apperrors.BadRequest(c, apperrors.BundleDuplicateComponent, "A bundle cannot contain the same component twice")
	case errors.Is(err, service.ErrBundleTooFewComponents):
		apperrors.BadRequest(c, apperrors.BundleTooFewComponents, "A bundle needs at least two distinct components")
	case errors.Is(err, service.ErrBundleUnresolvedComponent):
		apperrors.BadRequest(c, apperrors.BundleUnresolvedItem, "A bundle item does not match any variant")
	case errors.Is(err, service.ErrBundleNestedBundle):
		apperrors.BadRequest(c, apperrors.BundleNestedComponent, "A bundle component must be a plain variant, not another bundle")
	default:
		return false
	}
	return true
}

// ListProducts returns products with filtering and pagination
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, offset := parsePagination(c)

	opts := service.ProductListOptions{
		Search:          c.Query("search"),
		ActiveOnly:      c.Query("active") == "true",
		Sort:            service.ProductSort(c.DefaultQuery("sort", "created_at")),
		SortAscending:   c.Query("order") == "asc",
		Limit:           limit,
		Offset:          offset,
		IncludeVariants: c.DefaultQuery("include_variants", "true") == "true",
	}
	if category := c.Query("category"); category != "" {
		cat := model.ProductCategory(category)
		opts.Category = &cat
	}

	products, total, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// ListCategories returns the distinct product categories in use
// GET /api/v1/products/categories
func (ctrl *ProductController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.productService.ListCategories()
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		apperrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// GetProductByID returns a product with its variants and derived quantities
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a new product
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct updates an existing product
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product := &model.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := ctrl.productService.UpdateProduct(product); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a product and its variants
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// CreateVariant adds a variant (or bundle) to a product
// POST /api/v1/products/:id/variants
func (ctrl *ProductController) CreateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid variant creation request", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid variant data")
		return
	}

	variant := req.toModel()
	if err := ctrl.productService.CreateVariant(productID, variant); err != nil {
		if respondBundleError(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrVariantSKUExists):
			apperrors.Conflict(c, apperrors.VariantSKUExists, "A variant with this SKU already exists")
		default:
			log.Error("Failed to create variant", err, map[string]interface{}{
				"product_id": productID,
				"sku":        req.SKU,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create variant")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Variant created successfully",
		"variant": variant,
	})
}

// UpdateVariant updates a variant, replacing bundle composition when given
// PUT /api/v1/products/:id/variants/:variantId
func (ctrl *ProductController) UpdateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseIDParam(c, "variantId")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid variant data")
		return
	}

	variant := req.toModel()
	variant.ID = variantID

	if err := ctrl.productService.UpdateVariant(productID, variant); err != nil {
		if respondBundleError(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrVariantNotFound):
			apperrors.NotFound(c, apperrors.VariantNotFound, "Variant not found")
		case errors.Is(err, service.ErrVariantSKUExists):
			apperrors.Conflict(c, apperrors.VariantSKUExists, "A variant with this SKU already exists")
		default:
			log.Error("Failed to update variant", err, map[string]interface{}{
				"product_id": productID,
				"variant_id": variantID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update variant")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variant updated successfully",
		"variant": variant,
	})
}

// DeleteVariant removes a variant and its bundle composition
// DELETE /api/v1/products/:id/variants/:variantId
func (ctrl *ProductController) DeleteVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseIDParam(c, "variantId")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteVariant(productID, variantID); err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperrors.NotFound(c, apperrors.VariantNotFound, "Variant not found")
			return
		}
		log.Error("Failed to delete variant", err, map[string]interface{}{
			"variant_id": variantID,
		})
		apperrors.InternalError(c, "Failed to delete variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variant deleted successfully",
	})
}

// AdjustStock applies a stock delta to a non-bundle variant
// POST /api/v1/products/:id/variants/:variantId/stock
func (ctrl *ProductController) AdjustStock(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseIDParam(c, "variantId")
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid stock adjustment data")
		return
	}

	variant, err := ctrl.productService.AdjustStock(productID, variantID, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVariantNotFound):
			apperrors.NotFound(c, apperrors.VariantNotFound, "Variant not found")
		case errors.Is(err, service.ErrBundleStockReadOnly):
			apperrors.BadRequest(c, apperrors.BundleStockReadOnly, "Bundle stock is derived from components and cannot be adjusted")
		default:
			log.Error("Failed to adjust stock", err, map[string]interface{}{
				"variant_id": variantID,
				"delta":      req.Delta,
			})
			apperrors.InternalError(c, "Failed to adjust stock")
		}
		return
	}

	if ctrl.alertService != nil {
		ctrl.alertService.CheckStockLevel(variant)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock adjusted successfully",
		"variant": variant,
	})
}
