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

type RewardController struct {
	rewardService service.RewardService
}

func NewRewardController(rewardService service.RewardService) *RewardController {
	return &RewardController{
		rewardService: rewardService,
	}
}

type RewardRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PointsCost  int    `json:"points_cost" binding:"required,gt=0"`
	Stock       *int   `json:"stock"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

// ListRewards returns loyalty rewards
// GET /api/v1/rewards
func (ctrl *RewardController) ListRewards(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	activeOnly := c.Query("active") == "true"

	rewards, err := ctrl.rewardService.ListRewards(activeOnly)
	if err != nil {
		log.Error("Failed to fetch rewards", err, nil)
		apperrors.InternalError(c, "Failed to fetch rewards")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rewards": rewards,
		"count":   len(rewards),
	})
}

// GetRewardByID returns one reward
// GET /api/v1/rewards/:id
func (ctrl *RewardController) GetRewardByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reward, err := ctrl.rewardService.GetRewardByID(id)
	if err != nil {
		if errors.Is(err, service.ErrRewardNotFound) {
			apperrors.NotFound(c, apperrors.RewardNotFound, "Reward not found")
			return
		}
		log.Error("Failed to fetch reward", err, map[string]interface{}{
			"reward_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch reward")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reward": reward,
	})
}

// CreateReward creates a loyalty reward (admin only)
// POST /api/v1/rewards
func (ctrl *RewardController) CreateReward(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid reward request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid reward data")
		return
	}

	reward := &model.Reward{
		Name:        req.Name,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		Stock:       -1,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.Stock != nil {
		reward.Stock = *req.Stock
	}
	if req.IsActive != nil {
		reward.IsActive = *req.IsActive
	}

	if err := ctrl.rewardService.CreateReward(reward); err != nil {
		if errors.Is(err, service.ErrRewardInvalidPoints) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Points cost must be positive")
			return
		}
		log.Error("Failed to create reward", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create reward")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reward created successfully",
		"reward":  reward,
	})
}

// UpdateReward updates a loyalty reward (admin only)
// PUT /api/v1/rewards/:id
func (ctrl *RewardController) UpdateReward(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid reward data")
		return
	}

	reward := &model.Reward{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		Stock:       -1,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.Stock != nil {
		reward.Stock = *req.Stock
	}
	if req.IsActive != nil {
		reward.IsActive = *req.IsActive
	}

	if err := ctrl.rewardService.UpdateReward(reward); err != nil {
		switch {
		case errors.Is(err, service.ErrRewardNotFound):
			apperrors.NotFound(c, apperrors.RewardNotFound, "Reward not found")
		case errors.Is(err, service.ErrRewardInvalidPoints):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Points cost must be positive")
		default:
			log.Error("Failed to update reward", err, map[string]interface{}{
				"reward_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update reward")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reward updated successfully",
		"reward":  reward,
	})
}

// DeleteReward removes a loyalty reward (admin only)
// DELETE /api/v1/rewards/:id
func (ctrl *RewardController) DeleteReward(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.rewardService.DeleteReward(id); err != nil {
		if errors.Is(err, service.ErrRewardNotFound) {
			apperrors.NotFound(c, apperrors.RewardNotFound, "Reward not found")
			return
		}
		log.Error("Failed to delete reward", err, map[string]interface{}{
			"reward_id": id,
		})
		apperrors.InternalError(c, "Failed to delete reward")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reward deleted successfully",
	})
}
