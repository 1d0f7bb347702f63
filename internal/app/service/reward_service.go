package service

import (
	"errors"

	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/repository"
	"github.com/ikkim/backoffice-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRewardNotFound      = errors.New("reward not found")
	ErrRewardInvalidPoints = errors.New("reward points cost must be positive")
)

type RewardService interface {
	ListRewards(activeOnly bool) ([]model.Reward, error)
	GetRewardByID(id uint) (*model.Reward, error)
	CreateReward(reward *model.Reward) error
	UpdateReward(reward *model.Reward) error
	DeleteReward(id uint) error
}

type rewardService struct {
	rewardRepo repository.RewardRepository
}

func NewRewardService(rewardRepo repository.RewardRepository) RewardService {
	return &rewardService{rewardRepo: rewardRepo}
}

func (s *rewardService) ListRewards(activeOnly bool) ([]model.Reward, error) {
	logger.Debug("Listing rewards", map[string]interface{}{
		"active_only": activeOnly,
	})

	rewards, err := s.rewardRepo.FindAll(activeOnly)
	if err != nil {
		logger.Error("Failed to list rewards", err)
		return nil, err
	}

	return rewards, nil
}

func (s *rewardService) GetRewardByID(id uint) (*model.Reward, error) {
	reward, err := s.rewardRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Reward not found", map[string]interface{}{
				"reward_id": id,
			})
			return nil, ErrRewardNotFound
		}
		logger.Error("Failed to fetch reward", err, map[string]interface{}{
			"reward_id": id,
		})
		return nil, err
	}
	return reward, nil
}

func (s *rewardService) CreateReward(reward *model.Reward) error {
	if reward.PointsCost <= 0 {
		return ErrRewardInvalidPoints
	}
	if reward.Stock < -1 {
		reward.Stock = -1
	}

	logger.Info("Creating reward", map[string]interface{}{
		"name":        reward.Name,
		"points_cost": reward.PointsCost,
	})

	if err := s.rewardRepo.Create(reward); err != nil {
		logger.Error("Failed to create reward", err, map[string]interface{}{
			"name": reward.Name,
		})
		return err
	}

	logger.Info("Reward created successfully", map[string]interface{}{
		"reward_id": reward.ID,
	})
	return nil
}

func (s *rewardService) UpdateReward(reward *model.Reward) error {
	if reward.PointsCost <= 0 {
		return ErrRewardInvalidPoints
	}

	logger.Info("Updating reward", map[string]interface{}{
		"reward_id": reward.ID,
	})

	existing, err := s.rewardRepo.FindByID(reward.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRewardNotFound
		}
		return err
	}
	reward.CreatedAt = existing.CreatedAt

	if err := s.rewardRepo.Update(reward); err != nil {
		logger.Error("Failed to update reward", err, map[string]interface{}{
			"reward_id": reward.ID,
		})
		return err
	}

	return nil
}

func (s *rewardService) DeleteReward(id uint) error {
	logger.Info("Deleting reward", map[string]interface{}{
		"reward_id": id,
	})

	if _, err := s.rewardRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRewardNotFound
		}
		return err
	}

	if err := s.rewardRepo.Delete(id); err != nil {
		logger.Error("Failed to delete reward", err, map[string]interface{}{
			"reward_id": id,
		})
		return err
	}

	return nil
}
