package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lib/pq"
	"github.com/ikkim/backoffice-backend/internal/app/model"
	"github.com/ikkim/backoffice-backend/internal/app/service"
	apperrors "github.com/ikkim/backoffice-backend/internal/errors"
	"github.com/ikkim/backoffice-backend/internal/middleware"
	ws "github.com/ikkim/backoffice-backend/internal/websocket"
)

type AlertController struct {
	alertService service.AlertService
	hub          *ws.Hub
	upgrader     websocket.Upgrader
}

func NewAlertController(alertService service.AlertService, hub *ws.Hub, allowedOrigins []string) *AlertController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &AlertController{
		alertService: alertService,
		hub:          hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					// Non-browser clients send no Origin header.
					return true
				}
				return allowed[origin]
			},
		},
	}
}

// StreamAlerts upgrades the connection and subscribes the caller to live
// stock alerts. Authentication already happened in middleware; browsers
// cannot set headers on websocket requests, so the token arrives as a
// query parameter.
func (ctrl *AlertController) StreamAlerts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	client := &ws.Client{
		Hub:    ctrl.hub,
		Conn:   &ws.Conn{Conn: conn},
		UserID: userID,
		Send:   make(chan []byte, 256),
	}

	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

type AlertSettingsRequest struct {
	LowStockThreshold int      `json:"low_stock_threshold" binding:"min=0"`
	WatchedCategories []string `json:"watched_categories"`
}

// ListAlerts returns recent stock alerts, newest first.
// Query params: limit (default 50), unread_only.
func (ctrl *AlertController) ListAlerts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	unreadOnly := c.Query("unread_only") == "true"

	alerts, err := ctrl.alertService.ListAlerts(limit, unreadOnly)
	if err != nil {
		log.Error("Failed to list stock alerts", err)
		apperrors.InternalError(c, "Failed to fetch alerts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// MarkRead marks a single alert as read.
func (ctrl *AlertController) MarkRead(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.alertService.MarkRead(id); err != nil {
		if errors.Is(err, service.ErrAlertNotFound) {
			apperrors.NotFound(c, apperrors.AlertNotFound, "Alert not found")
			return
		}
		log.Error("Failed to mark alert as read", err, map[string]interface{}{
			"alert_id": id,
		})
		apperrors.InternalError(c, "Failed to update alert")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Alert marked as read",
	})
}

// MarkAllRead marks every unread alert as read.
func (ctrl *AlertController) MarkAllRead(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.alertService.MarkAllRead(); err != nil {
		log.Error("Failed to mark alerts as read", err)
		apperrors.InternalError(c, "Failed to update alerts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All alerts marked as read",
	})
}

// GetSettings returns the calling user's alert preferences.
func (ctrl *AlertController) GetSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	settings, err := ctrl.alertService.GetSettings(userID)
	if err != nil {
		log.Error("Failed to fetch alert settings", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch alert settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings saves the calling user's alert preferences.
func (ctrl *AlertController) UpdateSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AlertSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid alert settings")
		return
	}

	settings := &model.AlertSettings{
		UserID:            userID,
		LowStockThreshold: req.LowStockThreshold,
		WatchedCategories: pq.StringArray(req.WatchedCategories),
	}
	if settings.WatchedCategories == nil {
		settings.WatchedCategories = pq.StringArray{}
	}

	if err := ctrl.alertService.UpdateSettings(settings); err != nil {
		log.Error("Failed to save alert settings", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to save alert settings")
		return
	}

	log.Info("Alert settings updated", map[string]interface{}{
		"user_id":             userID,
		"low_stock_threshold": settings.LowStockThreshold,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Alert settings saved",
		"settings": settings,
	})
}
