package repository

import (
	"testing"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupVariantTest(t *testing.T) (*gorm.DB, VariantRepository, uint) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	product := &model.Product{
		Name:     "Classic Tee",
		Category: model.CategoryApparel,
		IsActive: true,
	}
	require.NoError(t, testDB.Create(product).Error)

	repo := NewVariantRepository(testDB)
	return testDB, repo, product.ID
}

func TestVariantRepository_Create(t *testing.T) {
	testDB, repo, productID := setupVariantTest(t)
	defer db.CleanupTestDB(testDB)

	variant := &model.Variant{
		ProductID:  productID,
		SKU:        "TEE-BLK-M",
		Name:       "Black / M",
		Price:      29.90,
		Stock:      12,
		TrackStock: true,
	}

	err := repo.Create(variant)
	assert.NoError(t, err)
	assert.NotZero(t, variant.ID)
}

func TestVariantRepository_UntrackedFlagRoundTrip(t *testing.T) {
	testDB, repo, productID := setupVariantTest(t)
	defer db.CleanupTestDB(testDB)

	variant := &model.Variant{
		ProductID:  productID,
		SKU:        "TEE-CARD",
		Name:       "Gift Card Insert",
		Price:      0.50,
		TrackStock: false,
	}
	require.NoError(t, repo.Create(variant))

	found, err := repo.FindByID(variant.ID)
	require.NoError(t, err)
	assert.False(t, found.TrackStock, "untracked variants must stay untracked after a write")
}

func TestVariantRepository_FindBySKU(t *testing.T) {
	testDB, repo, productID := setupVariantTest(t)
	defer db.CleanupTestDB(testDB)

	variant := &model.Variant{
		ProductID:  productID,
		SKU:        "TEE-BLK-M",
		Name:       "Black / M",
		Price:      29.90,
		TrackStock: true,
	}
	require.NoError(t, repo.Create(variant))

	tests := []struct {
		name    string
		sku     string
		wantErr bool
	}{
		{
			name:    "Existing SKU",
			sku:     "TEE-BLK-M",
			wantErr: false,
		},
		{
			name:    "SKU lookup is case-sensitive",
			sku:     "tee-blk-m",
			wantErr: true,
		},
		{
			name:    "Unknown SKU",
			sku:     "TEE-WHT-L",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindBySKU(productID, tt.sku)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, found)
			} else {
				require.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, variant.ID, found.ID)
			}
		})
	}
}

func TestVariantRepository_AdjustStock(t *testing.T) {
	testDB, repo, productID := setupVariantTest(t)
	defer db.CleanupTestDB(testDB)

	variant := &model.Variant{
		ProductID:  productID,
		SKU:        "TEE-BLK-M",
		Name:       "Black / M",
		Price:      29.90,
		Stock:      10,
		TrackStock: true,
	}
	require.NoError(t, repo.Create(variant))

	err := repo.AdjustStock(variant.ID, -4)
	require.NoError(t, err)

	found, err := repo.FindByID(variant.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, found.Stock)

	err = repo.AdjustStock(variant.ID, 7)
	require.NoError(t, err)

	found, err = repo.FindByID(variant.ID)
	require.NoError(t, err)
	assert.Equal(t, 13, found.Stock)
}

func TestVariantRepository_ReplaceBundleItems(t *testing.T) {
	testDB, repo, productID := setupVariantTest(t)
	defer db.CleanupTestDB(testDB)

	compA := &model.Variant{ProductID: productID, SKU: "TEE-BLK-M", Name: "Black / M", Price: 29.90, TrackStock: true}
	compB := &model.Variant{ProductID: productID, SKU: "TEE-WHT-M", Name: "White / M", Price: 29.90, TrackStock: true}
	bundle := &model.Variant{ProductID: productID, SKU: "TEE-DUO", Name: "Two-Pack", Price: 49.90, IsBundle: true}
	require.NoError(t, repo.Create(compA))
	require.NoError(t, repo.Create(compB))
	require.NoError(t, repo.Create(bundle))

	items := []model.BundleItem{
		{ComponentVariantID: &compA.ID, Quantity: 1},
		{ComponentVariantID: &compB.ID, Quantity: 1},
	}
	require.NoError(t, repo.ReplaceBundleItems(bundle.ID, items))

	found, err := repo.FindByID(bundle.ID)
	require.NoError(t, err)
	require.Len(t, found.BundleItems, 2)

	// Replacing again should not leave stale rows behind.
	replacement := []model.BundleItem{
		{ComponentVariantID: &compA.ID, Quantity: 2},
		{ComponentSKU: "TEE-WHT-M", Quantity: 1},
	}
	require.NoError(t, repo.ReplaceBundleItems(bundle.ID, replacement))

	found, err = repo.FindByID(bundle.ID)
	require.NoError(t, err)
	require.Len(t, found.BundleItems, 2)
	assert.Equal(t, 2, found.BundleItems[0].Quantity)
	assert.Equal(t, "TEE-WHT-M", found.BundleItems[1].ComponentSKU)
}

func TestVariantRepository_Delete(t *testing.T) {
	testDB, repo, productID := setupVariantTest(t)
	defer db.CleanupTestDB(testDB)

	bundle := &model.Variant{ProductID: productID, SKU: "TEE-DUO", Name: "Two-Pack", Price: 49.90, IsBundle: true}
	require.NoError(t, repo.Create(bundle))
	require.NoError(t, repo.ReplaceBundleItems(bundle.ID, []model.BundleItem{
		{ComponentSKU: "TEE-BLK-M", Quantity: 1},
		{ComponentSKU: "TEE-WHT-M", Quantity: 1},
	}))

	err := repo.Delete(bundle.ID)
	require.NoError(t, err)

	found, err := repo.FindByID(bundle.ID)
	assert.Error(t, err)
	assert.Nil(t, found)
}
