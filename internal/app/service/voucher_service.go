package service

import (
	"errors"
	"time"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/repository"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"github.com/ikkim/backoffice-backend/pkg/pricing"
	"github.com/ikkim/backoffice-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrVoucherNotFound     = errors.New("voucher not found")
	ErrVoucherCodeExists   = errors.New("voucher code already exists")
	ErrVoucherInvalidValue = errors.New("voucher value is invalid for its type")
	ErrVoucherNotActive    = errors.New("voucher is not active")
	ErrVoucherNotStarted   = errors.New("voucher is not valid yet")
	ErrVoucherExpired      = errors.New("voucher has expired")
	ErrVoucherUsageLimit   = errors.New("voucher usage limit reached")
	ErrVoucherMinSpend     = errors.New("order total is below the voucher minimum spend")
)

const voucherCodeLength = 8

// RedeemResult reports what a voucher would do to an order total.
type RedeemResult struct {
	Voucher        *model.Voucher `json:"voucher"`
	DiscountAmount float64        `json:"discount_amount"`
	FinalAmount    float64        `json:"final_amount"`
}

type VoucherService interface {
	ListVouchers(opts repository.VoucherFilter) ([]model.Voucher, int64, error)
	GetVoucherByID(id uint) (*model.Voucher, error)
	CreateVoucher(voucher *model.Voucher) error
	UpdateVoucher(voucher *model.Voucher) error
	DeleteVoucher(id uint) error
	RedeemCheck(code string, orderTotal float64, at time.Time) (*RedeemResult, error)
	DeactivateExpired(now time.Time) (int64, error)
}

type voucherService struct {
	voucherRepo repository.VoucherRepository
}

func NewVoucherService(voucherRepo repository.VoucherRepository) VoucherService {
	return &voucherService{voucherRepo: voucherRepo}
}

func (s *voucherService) ListVouchers(opts repository.VoucherFilter) ([]model.Voucher, int64, error) {
	logger.Debug("Listing vouchers", map[string]interface{}{
		"active_only": opts.ActiveOnly,
		"search":      opts.Search,
	})

	vouchers, total, err := s.voucherRepo.FindWithFilter(opts)
	if err != nil {
		logger.Error("Failed to list vouchers", err)
		return nil, 0, err
	}

	return vouchers, total, nil
}

func (s *voucherService) GetVoucherByID(id uint) (*model.Voucher, error) {
	voucher, err := s.voucherRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return voucher, nil
}

func (s *voucherService) CreateVoucher(voucher *model.Voucher) error {
	if err := validateVoucherValue(voucher); err != nil {
		return err
	}

	if voucher.Code == "" {
		voucher.Code = util.GenerateVoucherCode("V", voucherCodeLength)
	}

	logger.Info("Creating voucher", map[string]interface{}{
		"code":  voucher.Code,
		"type":  voucher.Type,
		"value": voucher.Value,
	})

	if existing, err := s.voucherRepo.FindByCode(voucher.Code); err == nil && existing != nil {
		logger.Warn("Voucher code collision", map[string]interface{}{
			"code": voucher.Code,
		})
		return ErrVoucherCodeExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.voucherRepo.Create(voucher); err != nil {
		logger.Error("Failed to create voucher", err, map[string]interface{}{
			"code": voucher.Code,
		})
		return err
	}

	logger.Info("Voucher created successfully", map[string]interface{}{
		"voucher_id": voucher.ID,
		"code":       voucher.Code,
	})
	return nil
}

func (s *voucherService) UpdateVoucher(voucher *model.Voucher) error {
	if err := validateVoucherValue(voucher); err != nil {
		return err
	}

	logger.Info("Updating voucher", map[string]interface{}{
		"voucher_id": voucher.ID,
	})

	existing, err := s.voucherRepo.FindByID(voucher.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVoucherNotFound
		}
		return err
	}

	if voucher.Code != existing.Code {
		if other, err := s.voucherRepo.FindByCode(voucher.Code); err == nil && other != nil && other.ID != voucher.ID {
			return ErrVoucherCodeExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	// Usage count is system-maintained.
	voucher.UsedCount = existing.UsedCount
	voucher.CreatedAt = existing.CreatedAt

	if err := s.voucherRepo.Update(voucher); err != nil {
		logger.Error("Failed to update voucher", err, map[string]interface{}{
			"voucher_id": voucher.ID,
		})
		return err
	}

	return nil
}

func (s *voucherService) DeleteVoucher(id uint) error {
	logger.Info("Deleting voucher", map[string]interface{}{
		"voucher_id": id,
	})

	if _, err := s.voucherRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVoucherNotFound
		}
		return err
	}

	if err := s.voucherRepo.Delete(id); err != nil {
		logger.Error("Failed to delete voucher", err, map[string]interface{}{
			"voucher_id": id,
		})
		return err
	}

	return nil
}

// RedeemCheck validates a voucher against an order total without consuming a
// use. The storefront calls this before checkout; actual consumption happens
// when the order lands.
func (s *voucherService) RedeemCheck(code string, orderTotal float64, at time.Time) (*RedeemResult, error) {
	logger.Debug("Checking voucher redemption", map[string]interface{}{
		"code":        code,
		"order_total": orderTotal,
	})

	voucher, err := s.voucherRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Voucher not found for redemption", map[string]interface{}{
				"code": code,
			})
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}

	if !voucher.IsActive {
		return nil, ErrVoucherNotActive
	}
	if voucher.StartsAt != nil && at.Before(*voucher.StartsAt) {
		return nil, ErrVoucherNotStarted
	}
	if voucher.ExpiresAt != nil && !at.Before(*voucher.ExpiresAt) {
		return nil, ErrVoucherExpired
	}
	if voucher.UsageLimit > 0 && voucher.UsedCount >= voucher.UsageLimit {
		return nil, ErrVoucherUsageLimit
	}
	if orderTotal < voucher.MinSpend {
		return nil, ErrVoucherMinSpend
	}

	var discount float64
	switch voucher.Type {
	case model.VoucherTypePercent:
		discounted, ok := pricing.ApplyDiscountPercent(orderTotal, voucher.Value)
		if !ok {
			return nil, ErrVoucherInvalidValue
		}
		discount = orderTotal - discounted
	case model.VoucherTypeFixed:
		discount = voucher.Value
		if discount > orderTotal {
			discount = orderTotal
		}
	default:
		return nil, ErrVoucherInvalidValue
	}

	result := &RedeemResult{
		Voucher:        voucher,
		DiscountAmount: discount,
		FinalAmount:    orderTotal - discount,
	}

	logger.Info("Voucher redemption check passed", map[string]interface{}{
		"code":            code,
		"discount_amount": result.DiscountAmount,
		"final_amount":    result.FinalAmount,
	})
	return result, nil
}

func (s *voucherService) DeactivateExpired(now time.Time) (int64, error) {
	count, err := s.voucherRepo.DeactivateExpired(now)
	if err != nil {
		logger.Error("Failed to deactivate expired vouchers", err)
		return 0, err
	}

	if count > 0 {
		logger.Info("Expired vouchers deactivated", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}

func validateVoucherValue(voucher *model.Voucher) error {
	switch voucher.Type {
	case model.VoucherTypePercent:
		if voucher.Value <= 0 || voucher.Value > 100 {
			return ErrVoucherInvalidValue
		}
	case model.VoucherTypeFixed:
		if voucher.Value <= 0 {
			return ErrVoucherInvalidValue
		}
	default:
		return ErrVoucherInvalidValue
	}
	return nil
}
