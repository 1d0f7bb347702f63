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

func setupVoucherServiceTest(t *testing.T) (*gorm.DB, VoucherService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	voucherRepo := repository.NewVoucherRepository(testDB)
	svc := NewVoucherService(voucherRepo)
	return testDB, svc
}

func TestVoucherService_CreateVoucher(t *testing.T) {
	testDB, svc := setupVoucherServiceTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name    string
		voucher model.Voucher
		wantErr error
	}{
		{
			name:    "Valid percent voucher",
			voucher: model.Voucher{Code: "SAVE20", Type: model.VoucherTypePercent, Value: 20, IsActive: true},
			wantErr: nil,
		},
		{
			name:    "Duplicate code",
			voucher: model.Voucher{Code: "SAVE20", Type: model.VoucherTypeFixed, Value: 5, IsActive: true},
			wantErr: ErrVoucherCodeExists,
		},
		{
			name:    "Percent above 100",
			voucher: model.Voucher{Code: "SAVE200", Type: model.VoucherTypePercent, Value: 120, IsActive: true},
			wantErr: ErrVoucherInvalidValue,
		},
		{
			name:    "Zero fixed value",
			voucher: model.Voucher{Code: "FREE0", Type: model.VoucherTypeFixed, Value: 0, IsActive: true},
			wantErr: ErrVoucherInvalidValue,
		},
		{
			name:    "Unknown type",
			voucher: model.Voucher{Code: "ODD1", Type: "bogus", Value: 10, IsActive: true},
			wantErr: ErrVoucherInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			voucher := tt.voucher
			err := svc.CreateVoucher(&voucher)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotZero(t, voucher.ID)
			}
		})
	}
}

func TestVoucherService_CreateVoucher_GeneratesCode(t *testing.T) {
	testDB, svc := setupVoucherServiceTest(t)
	defer db.CleanupTestDB(testDB)

	voucher := &model.Voucher{Type: model.VoucherTypePercent, Value: 10, IsActive: true}
	require.NoError(t, svc.CreateVoucher(voucher))
	assert.NotEmpty(t, voucher.Code)
}

func TestVoucherService_RedeemCheck(t *testing.T) {
	testDB, svc := setupVoucherServiceTest(t)
	defer db.CleanupTestDB(testDB)

	now := time.Now()
	past := now.Add(-48 * time.Hour)
	recent := now.Add(-time.Hour)
	future := now.Add(48 * time.Hour)

	seed := []model.Voucher{
		{Code: "PCT25", Type: model.VoucherTypePercent, Value: 25, IsActive: true},
		{Code: "FLAT15", Type: model.VoucherTypeFixed, Value: 15, IsActive: true},
		{Code: "BIGFLAT", Type: model.VoucherTypeFixed, Value: 500, IsActive: true},
		{Code: "INACTIVE", Type: model.VoucherTypePercent, Value: 10, IsActive: false},
		{Code: "NOTYET", Type: model.VoucherTypePercent, Value: 10, StartsAt: &future, IsActive: true},
		{Code: "GONE", Type: model.VoucherTypePercent, Value: 10, StartsAt: &past, ExpiresAt: &recent, IsActive: true},
		{Code: "USEDUP", Type: model.VoucherTypePercent, Value: 10, UsageLimit: 1, UsedCount: 1, IsActive: true},
		{Code: "MIN100", Type: model.VoucherTypePercent, Value: 10, MinSpend: 100, IsActive: true},
	}
	for i := range seed {
		require.NoError(t, svc.CreateVoucher(&seed[i]))
	}

	tests := []struct {
		name         string
		code         string
		orderTotal   float64
		wantErr      error
		wantDiscount float64
		wantFinal    float64
	}{
		{
			name:         "Percent discount",
			code:         "PCT25",
			orderTotal:   200,
			wantDiscount: 50,
			wantFinal:    150,
		},
		{
			name:         "Fixed discount",
			code:         "FLAT15",
			orderTotal:   60,
			wantDiscount: 15,
			wantFinal:    45,
		},
		{
			name:         "Fixed discount capped at total",
			code:         "BIGFLAT",
			orderTotal:   80,
			wantDiscount: 80,
			wantFinal:    0,
		},
		{
			name:       "Unknown code",
			code:       "NOPE",
			orderTotal: 100,
			wantErr:    ErrVoucherNotFound,
		},
		{
			name:       "Inactive voucher",
			code:       "INACTIVE",
			orderTotal: 100,
			wantErr:    ErrVoucherNotActive,
		},
		{
			name:       "Not started",
			code:       "NOTYET",
			orderTotal: 100,
			wantErr:    ErrVoucherNotStarted,
		},
		{
			name:       "Expired",
			code:       "GONE",
			orderTotal: 100,
			wantErr:    ErrVoucherExpired,
		},
		{
			name:       "Usage limit reached",
			code:       "USEDUP",
			orderTotal: 100,
			wantErr:    ErrVoucherUsageLimit,
		},
		{
			name:       "Below minimum spend",
			code:       "MIN100",
			orderTotal: 99.99,
			wantErr:    ErrVoucherMinSpend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.RedeemCheck(tt.code, tt.orderTotal, now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.InDelta(t, tt.wantDiscount, result.DiscountAmount, 0.001)
				assert.InDelta(t, tt.wantFinal, result.FinalAmount, 0.001)
			}
		})
	}
}

func TestVoucherService_UpdateVoucher_PreservesUsage(t *testing.T) {
	testDB, svc := setupVoucherServiceTest(t)
	defer db.CleanupTestDB(testDB)

	voucher := &model.Voucher{Code: "KEEPCOUNT", Type: model.VoucherTypePercent, Value: 10, IsActive: true}
	require.NoError(t, svc.CreateVoucher(voucher))

	repo := repository.NewVoucherRepository(testDB)
	require.NoError(t, repo.IncrementUsage(voucher.ID))

	update := *voucher
	update.Value = 15
	update.UsedCount = 0
	require.NoError(t, svc.UpdateVoucher(&update))

	found, err := svc.GetVoucherByID(voucher.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.UsedCount)
	assert.InDelta(t, 15, found.Value, 0.001)
}

func TestVoucherService_UpdateVoucher_KeepsCreatedAt(t *testing.T) {
	testDB, svc := setupVoucherServiceTest(t)
	defer db.CleanupTestDB(testDB)

	voucher := &model.Voucher{Code: "KEEPSTAMP", Type: model.VoucherTypePercent, Value: 10, IsActive: true}
	require.NoError(t, svc.CreateVoucher(voucher))

	before, err := svc.GetVoucherByID(voucher.ID)
	require.NoError(t, err)
	require.False(t, before.CreatedAt.IsZero())

	// Controllers rebuild the voucher from the request without timestamps.
	update := &model.Voucher{
		ID:       voucher.ID,
		Code:     "KEEPSTAMP",
		Type:     model.VoucherTypePercent,
		Value:    20,
		IsActive: true,
	}
	require.NoError(t, svc.UpdateVoucher(update))

	found, err := svc.GetVoucherByID(voucher.ID)
	require.NoError(t, err)
	assert.False(t, found.CreatedAt.IsZero(), "created_at must survive an update")
	assert.True(t, found.CreatedAt.Equal(before.CreatedAt))
}

func TestVoucherService_DeactivateExpired(t *testing.T) {
	testDB, svc := setupVoucherServiceTest(t)
	defer db.CleanupTestDB(testDB)

	now := time.Now()
	past := now.Add(-time.Hour)

	expired := &model.Voucher{Code: "OLD", Type: model.VoucherTypePercent, Value: 10, ExpiresAt: &past, IsActive: true}
	require.NoError(t, svc.CreateVoucher(expired))

	count, err := svc.DeactivateExpired(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	found, err := svc.GetVoucherByID(expired.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}
