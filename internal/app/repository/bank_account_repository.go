package repository

import (
	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"gorm.io/gorm"
)

type BankAccountRepository interface {
	Create(account *model.BankAccount) error
	FindAll(activeOnly bool) ([]model.BankAccount, error)
	FindByID(id uint) (*model.BankAccount, error)
	Update(account *model.BankAccount) error
	Delete(id uint) error
}

type bankAccountRepository struct {
	db *gorm.DB
}

func NewBankAccountRepository(db *gorm.DB) BankAccountRepository {
	return &bankAccountRepository{db: db}
}

func (r *bankAccountRepository) Create(account *model.BankAccount) error {
	logger.Debug("Creating bank account in database", map[string]interface{}{
		"bank_name": account.BankName,
		"holder":    account.HolderName,
	})

	if err := r.db.Create(account).Error; err != nil {
		logger.Error("Failed to create bank account in database", err, map[string]interface{}{
			"bank_name": account.BankName,
		})
		return err
	}

	return nil
}

func (r *bankAccountRepository) FindAll(activeOnly bool) ([]model.BankAccount, error) {
	logger.Debug("Listing bank accounts from database", map[string]interface{}{
		"active_only": activeOnly,
	})

	query := r.db.Model(&model.BankAccount{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var accounts []model.BankAccount
	if err := query.Order("sort_order ASC, id ASC").Find(&accounts).Error; err != nil {
		logger.Error("Failed to list bank accounts from database", err, nil)
		return nil, err
	}

	return accounts, nil
}

func (r *bankAccountRepository) FindByID(id uint) (*model.BankAccount, error) {
	var account model.BankAccount
	err := r.db.First(&account, id).Error
	if err != nil {
		logger.Error("Failed to find bank account by ID in database", err, map[string]interface{}{
			"bank_account_id": id,
		})
		return nil, err
	}
	return &account, nil
}

func (r *bankAccountRepository) Update(account *model.BankAccount) error {
	logger.Debug("Updating bank account in database", map[string]interface{}{
		"bank_account_id": account.ID,
	})

	if err := r.db.Save(account).Error; err != nil {
		logger.Error("Failed to update bank account in database", err, map[string]interface{}{
			"bank_account_id": account.ID,
		})
		return err
	}

	return nil
}

func (r *bankAccountRepository) Delete(id uint) error {
	logger.Debug("Deleting bank account from database", map[string]interface{}{
		"bank_account_id": id,
	})

	if err := r.db.Delete(&model.BankAccount{}, id).Error; err != nil {
		logger.Error("Failed to delete bank account from database", err, map[string]interface{}{
			"bank_account_id": id,
		})
		return err
	}

	return nil
}
