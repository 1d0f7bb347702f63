package scheduler

import (
	"time"

	"github.com/ikkim/backoffice-backend/internal/app/service"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// VoucherScheduler deactivates expired vouchers on a daily cron.
type VoucherScheduler struct {
	cron           *cron.Cron
	voucherService service.VoucherService
}

func NewVoucherScheduler(voucherService service.VoucherService) *VoucherScheduler {
	return &VoucherScheduler{
		cron:           cron.New(),
		voucherService: voucherService,
	}
}

// Start registers the daily sweep. Runs shortly after midnight so vouchers
// that expired during the day are swept before the morning shift.
func (s *VoucherScheduler) Start() error {
	_, err := s.cron.AddFunc("5 0 * * *", func() {
		logger.Info("Starting scheduled voucher expiry sweep", nil)

		count, err := s.voucherService.DeactivateExpired(time.Now())
		if err != nil {
			logger.Error("Failed to deactivate expired vouchers from scheduler", err)
			return
		}

		logger.Info("Voucher expiry sweep finished", map[string]interface{}{
			"deactivated": count,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for voucher expiry sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Voucher scheduler started successfully (daily at 00:05)", nil)

	return nil
}

func (s *VoucherScheduler) Stop() {
	logger.Info("Stopping voucher scheduler...", nil)
	s.cron.Stop()
	logger.Info("Voucher scheduler stopped", nil)
}
