package service

import (
	"errors"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/repository"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrBankAccountNotFound = errors.New("bank account not found")

type BankAccountService interface {
	ListBankAccounts(activeOnly bool) ([]model.BankAccount, error)
	GetBankAccountByID(id uint) (*model.BankAccount, error)
	CreateBankAccount(account *model.BankAccount) error
	UpdateBankAccount(account *model.BankAccount) error
	DeleteBankAccount(id uint) error
}

type bankAccountService struct {
	bankAccountRepo repository.BankAccountRepository
}

func NewBankAccountService(bankAccountRepo repository.BankAccountRepository) BankAccountService {
	return &bankAccountService{bankAccountRepo: bankAccountRepo}
}

func (s *bankAccountService) ListBankAccounts(activeOnly bool) ([]model.BankAccount, error) {
	logger.Debug("Listing bank accounts", map[string]interface{}{
		"active_only": activeOnly,
	})

	accounts, err := s.bankAccountRepo.FindAll(activeOnly)
	if err != nil {
		logger.Error("Failed to list bank accounts", err)
		return nil, err
	}

	return accounts, nil
}

func (s *bankAccountService) GetBankAccountByID(id uint) (*model.BankAccount, error) {
	account, err := s.bankAccountRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Bank account not found", map[string]interface{}{
				"bank_account_id": id,
			})
			return nil, ErrBankAccountNotFound
		}
		logger.Error("Failed to fetch bank account", err, map[string]interface{}{
			"bank_account_id": id,
		})
		return nil, err
	}
	return account, nil
}

func (s *bankAccountService) CreateBankAccount(account *model.BankAccount) error {
	logger.Info("Creating bank account", map[string]interface{}{
		"bank_name":   account.BankName,
		"holder_name": account.HolderName,
	})

	if err := s.bankAccountRepo.Create(account); err != nil {
		logger.Error("Failed to create bank account", err, map[string]interface{}{
			"bank_name": account.BankName,
		})
		return err
	}

	logger.Info("Bank account created successfully", map[string]interface{}{
		"bank_account_id": account.ID,
	})
	return nil
}

func (s *bankAccountService) UpdateBankAccount(account *model.BankAccount) error {
	logger.Info("Updating bank account", map[string]interface{}{
		"bank_account_id": account.ID,
	})

	existing, err := s.bankAccountRepo.FindByID(account.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBankAccountNotFound
		}
		return err
	}
	account.CreatedAt = existing.CreatedAt

	if err := s.bankAccountRepo.Update(account); err != nil {
		logger.Error("Failed to update bank account", err, map[string]interface{}{
			"bank_account_id": account.ID,
		})
		return err
	}

	return nil
}

func (s *bankAccountService) DeleteBankAccount(id uint) error {
	logger.Info("Deleting bank account", map[string]interface{}{
		"bank_account_id": id,
	})

	if _, err := s.bankAccountRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBankAccountNotFound
		}
		return err
	}

	if err := s.bankAccountRepo.Delete(id); err != nil {
		logger.Error("Failed to delete bank account", err, map[string]interface{}{
			"bank_account_id": id,
		})
		return err
	}

	return nil
}
