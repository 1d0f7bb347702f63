package repository

import (
	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"gorm.io/gorm"
)

type RewardRepository interface {
	Create(reward *model.Reward) error
	FindAll(activeOnly bool) ([]model.Reward, error)
	FindByID(id uint) (*model.Reward, error)
	Update(reward *model.Reward) error
	Delete(id uint) error
}

type rewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) Create(reward *model.Reward) error {
	logger.Debug("Creating reward in database", map[string]interface{}{
		"name":        reward.Name,
		"points_cost": reward.PointsCost,
	})

	if err := r.db.Create(reward).Error; err != nil {
		logger.Error("Failed to create reward in database", err, map[string]interface{}{
			"name": reward.Name,
		})
		return err
	}

	return nil
}

func (r *rewardRepository) FindAll(activeOnly bool) ([]model.Reward, error) {
	logger.Debug("Listing rewards from database", map[string]interface{}{
		"active_only": activeOnly,
	})

	query := r.db.Model(&model.Reward{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rewards []model.Reward
	if err := query.Order("points_cost ASC, id ASC").Find(&rewards).Error; err != nil {
		logger.Error("Failed to list rewards from database", err, nil)
		return nil, err
	}

	return rewards, nil
}

func (r *rewardRepository) FindByID(id uint) (*model.Reward, error) {
	var reward model.Reward
	err := r.db.First(&reward, id).Error
	if err != nil {
		logger.Error("Failed to find reward by ID in database", err, map[string]interface{}{
			"reward_id": id,
		})
		return nil, err
	}
	return &reward, nil
}

func (r *rewardRepository) Update(reward *model.Reward) error {
	logger.Debug("Updating reward in database", map[string]interface{}{
		"reward_id": reward.ID,
	})

	if err := r.db.Save(reward).Error; err != nil {
		logger.Error("Failed to update reward in database", err, map[string]interface{}{
			"reward_id": reward.ID,
		})
		return err
	}

	return nil
}

func (r *rewardRepository) Delete(id uint) error {
	logger.Debug("Deleting reward from database", map[string]interface{}{
		"reward_id": id,
	})

	if err := r.db.Delete(&model.Reward{}, id).Error; err != nil {
		logger.Error("Failed to delete reward from database", err, map[string]interface{}{
			"reward_id": id,
		})
		return err
	}

	return nil
}
