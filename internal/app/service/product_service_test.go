package service

import (
	"testing"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/repository"
	"github.com/ikkim/backoffice-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*gorm.DB, ProductService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)
	svc := NewProductService(productRepo, variantRepo)
	return testDB, svc
}

func seedProductWithVariants(t *testing.T, svc ProductService) (*model.Product, *model.Variant, *model.Variant) {
	product := &model.Product{
		Name:     "Gift Set",
		Category: model.CategoryFood,
		IsActive: true,
	}
	require.NoError(t, svc.CreateProduct(product))

	jam := &model.Variant{SKU: "JAM-01", Name: "Strawberry Jam", Price: 8.50, Stock: 10, TrackStock: true}
	tea := &model.Variant{SKU: "TEA-01", Name: "Green Tea Tin", Price: 12.00, Stock: 9, TrackStock: true}
	require.NoError(t, svc.CreateVariant(product.ID, jam))
	require.NoError(t, svc.CreateVariant(product.ID, tea))

	return product, jam, tea
}

func TestProductService_CreateVariant_SKUCollision(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, _, _ := seedProductWithVariants(t, svc)

	dup := &model.Variant{SKU: "JAM-01", Name: "Duplicate", Price: 1.00}
	err := svc.CreateVariant(product.ID, dup)
	assert.ErrorIs(t, err, ErrVariantSKUExists)
}

func TestProductService_CreateVariant_NormalizesSalePrice(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, _, _ := seedProductWithVariants(t, svc)

	tests := []struct {
		name      string
		price     float64
		salePrice *float64
		want      *float64
	}{
		{
			name:      "Sale below price kept",
			price:     20.00,
			salePrice: floatPtr(15.00),
			want:      floatPtr(15.00),
		},
		{
			name:      "Sale equal to price dropped",
			price:     20.00,
			salePrice: floatPtr(20.00),
			want:      nil,
		},
		{
			name:      "Sale above price dropped",
			price:     20.00,
			salePrice: floatPtr(25.00),
			want:      nil,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variant := &model.Variant{
				SKU:       "SALE-" + string(rune('A'+i)),
				Name:      "Sale Variant",
				Price:     tt.price,
				SalePrice: tt.salePrice,
			}
			require.NoError(t, svc.CreateVariant(product.ID, variant))

			if tt.want == nil {
				assert.Nil(t, variant.SalePrice)
			} else {
				require.NotNil(t, variant.SalePrice)
				assert.InDelta(t, *tt.want, *variant.SalePrice, 0.001)
			}
		})
	}
}

func TestProductService_CreateBundle_Validation(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, jam, tea := seedProductWithVariants(t, svc)

	tests := []struct {
		name    string
		items   []model.BundleItem
		wantErr error
	}{
		{
			name: "Valid bundle",
			items: []model.BundleItem{
				{ComponentVariantID: &jam.ID, Quantity: 2},
				{ComponentVariantID: &tea.ID, Quantity: 1},
			},
			wantErr: nil,
		},
		{
			name: "Too few items",
			items: []model.BundleItem{
				{ComponentVariantID: &jam.ID, Quantity: 1},
			},
			wantErr: ErrBundleTooFewComponents,
		},
		{
			name: "Item without reference",
			items: []model.BundleItem{
				{ComponentVariantID: &jam.ID, Quantity: 1},
				{Quantity: 1},
			},
			wantErr: ErrBundleIncompleteItem,
		},
		{
			name: "Zero quantity",
			items: []model.BundleItem{
				{ComponentVariantID: &jam.ID, Quantity: 0},
				{ComponentVariantID: &tea.ID, Quantity: 1},
			},
			wantErr: ErrBundleInvalidQuantity,
		},
		{
			name: "Duplicate component",
			items: []model.BundleItem{
				{ComponentVariantID: &jam.ID, Quantity: 1},
				{ComponentSKU: "JAM-01", Quantity: 1},
			},
			wantErr: ErrBundleDuplicateComponent,
		},
		{
			name: "Unresolved component",
			items: []model.BundleItem{
				{ComponentVariantID: &jam.ID, Quantity: 1},
				{ComponentSKU: "MISSING-SKU", Quantity: 1},
			},
			wantErr: ErrBundleUnresolvedComponent,
		},
		{
			name: "Self reference by SKU",
			items: []model.BundleItem{
				{ComponentVariantID: &jam.ID, Quantity: 1},
				{ComponentSKU: "SET-A", Quantity: 1},
			},
			wantErr: ErrBundleSelfReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := &model.Variant{
				SKU:         "SET-A",
				Name:        "Jam & Tea Set",
				Price:       18.00,
				IsBundle:    true,
				BundleItems: tt.items,
			}
			err := svc.CreateVariant(product.ID, bundle)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotZero(t, bundle.ID)
				require.NoError(t, svc.DeleteVariant(product.ID, bundle.ID))
			}
		})
	}
}

func TestProductService_GetProductByID_DerivedQty(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, jam, tea := seedProductWithVariants(t, svc)

	// Untracked extra so the bundle spans tracked and untracked components.
	card := &model.Variant{SKU: "CARD-01", Name: "Gift Card Insert", Price: 0.50, TrackStock: false}
	require.NoError(t, svc.CreateVariant(product.ID, card))

	bundle := &model.Variant{
		SKU:      "SET-A",
		Name:     "Jam & Tea Set",
		Price:    18.00,
		IsBundle: true,
		BundleItems: []model.BundleItem{
			{ComponentVariantID: &jam.ID, Quantity: 2},
			{ComponentVariantID: &tea.ID, Quantity: 3},
			{ComponentVariantID: &card.ID, Quantity: 1},
		},
	}
	require.NoError(t, svc.CreateVariant(product.ID, bundle))

	found, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)

	var got *model.Variant
	for i := range found.Variants {
		if found.Variants[i].ID == bundle.ID {
			got = &found.Variants[i]
		}
	}
	require.NotNil(t, got)

	// jam allows 10/2=5, tea allows 9/3=3, card is untracked.
	require.NotNil(t, got.AvailableQty)
	assert.Equal(t, 3, *got.AvailableQty)
}

func TestProductService_AdjustStock(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, jam, tea := seedProductWithVariants(t, svc)

	bundle := &model.Variant{
		SKU:      "SET-A",
		Name:     "Jam & Tea Set",
		Price:    18.00,
		IsBundle: true,
		BundleItems: []model.BundleItem{
			{ComponentVariantID: &jam.ID, Quantity: 1},
			{ComponentVariantID: &tea.ID, Quantity: 1},
		},
	}
	require.NoError(t, svc.CreateVariant(product.ID, bundle))

	updated, err := svc.AdjustStock(product.ID, jam.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Stock)

	_, err = svc.AdjustStock(product.ID, bundle.ID, 5)
	assert.ErrorIs(t, err, ErrBundleStockReadOnly)

	_, err = svc.AdjustStock(product.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestProductService_GetProductByID_DiscountPercent(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, jam, _ := seedProductWithVariants(t, svc)

	discounted := &model.Variant{
		SKU:       "DEAL-01",
		Name:      "Discounted Tin",
		Price:     20.00,
		SalePrice: floatPtr(15.00),
	}
	require.NoError(t, svc.CreateVariant(product.ID, discounted))

	found, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)

	byID := make(map[uint]*model.Variant, len(found.Variants))
	for i := range found.Variants {
		byID[found.Variants[i].ID] = &found.Variants[i]
	}

	require.NotNil(t, byID[discounted.ID])
	require.NotNil(t, byID[discounted.ID].DiscountPercent)
	assert.Equal(t, 25, *byID[discounted.ID].DiscountPercent)

	// Full-price variants render no discount.
	require.NotNil(t, byID[jam.ID])
	assert.Nil(t, byID[jam.ID].DiscountPercent)
}

func TestProductService_CreateBundle_RejectsBundleComponent(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, jam, tea := seedProductWithVariants(t, svc)

	inner := &model.Variant{
		SKU:      "SET-A",
		Name:     "Jam & Tea Set",
		Price:    18.00,
		IsBundle: true,
		BundleItems: []model.BundleItem{
			{ComponentVariantID: &jam.ID, Quantity: 1},
			{ComponentVariantID: &tea.ID, Quantity: 1},
		},
	}
	require.NoError(t, svc.CreateVariant(product.ID, inner))

	outer := &model.Variant{
		SKU:      "SET-B",
		Name:     "Set of Sets",
		Price:    30.00,
		IsBundle: true,
		BundleItems: []model.BundleItem{
			{ComponentVariantID: &jam.ID, Quantity: 1},
			{ComponentVariantID: &inner.ID, Quantity: 1},
		},
	}
	err := svc.CreateVariant(product.ID, outer)
	assert.ErrorIs(t, err, ErrBundleNestedBundle)

	bySKU := &model.Variant{
		SKU:      "SET-C",
		Name:     "Set of Sets by SKU",
		Price:    30.00,
		IsBundle: true,
		BundleItems: []model.BundleItem{
			{ComponentVariantID: &tea.ID, Quantity: 1},
			{ComponentSKU: "SET-A", Quantity: 1},
		},
	}
	err = svc.CreateVariant(product.ID, bySKU)
	assert.ErrorIs(t, err, ErrBundleNestedBundle)
}

func TestProductService_UpdateVariant_KeepsCreatedAt(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, jam, _ := seedProductWithVariants(t, svc)
	variantRepo := repository.NewVariantRepository(testDB)

	before, err := variantRepo.FindByID(jam.ID)
	require.NoError(t, err)
	require.False(t, before.CreatedAt.IsZero())

	// Controllers rebuild the variant from the request, so the incoming
	// struct carries no timestamps.
	incoming := &model.Variant{
		ID:         jam.ID,
		SKU:        "JAM-01",
		Name:       "Strawberry Jam (Large)",
		Price:      9.50,
		TrackStock: true,
	}
	require.NoError(t, svc.UpdateVariant(product.ID, incoming))

	after, err := variantRepo.FindByID(jam.ID)
	require.NoError(t, err)
	assert.Equal(t, "Strawberry Jam (Large)", after.Name)
	assert.False(t, after.CreatedAt.IsZero(), "created_at must survive an update")
	assert.True(t, after.CreatedAt.Equal(before.CreatedAt))
}

func TestProductService_UpdateVariant_DowngradeClearsBundleItems(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, jam, tea := seedProductWithVariants(t, svc)
	variantRepo := repository.NewVariantRepository(testDB)

	bundle := &model.Variant{
		SKU:      "SET-A",
		Name:     "Jam & Tea Set",
		Price:    18.00,
		IsBundle: true,
		BundleItems: []model.BundleItem{
			{ComponentVariantID: &jam.ID, Quantity: 1},
			{ComponentVariantID: &tea.ID, Quantity: 1},
		},
	}
	require.NoError(t, svc.CreateVariant(product.ID, bundle))

	plain := &model.Variant{
		ID:         bundle.ID,
		SKU:        "SET-A",
		Name:       "Former Set",
		Price:      18.00,
		Stock:      5,
		TrackStock: true,
	}
	require.NoError(t, svc.UpdateVariant(product.ID, plain))

	found, err := variantRepo.FindByID(bundle.ID)
	require.NoError(t, err)
	assert.False(t, found.IsBundle)
	assert.Empty(t, found.BundleItems)
}

func TestProductService_InactiveProductPersisted(t *testing.T) {
	testDB, svc := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:     "Retired Line",
		Category: model.CategoryApparel,
		IsActive: false,
	}
	require.NoError(t, svc.CreateProduct(product))

	found, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive, "inactive flag must survive the round trip")
}

func floatPtr(v float64) *float64 {
	return &v
}
