package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"stayr/middleware"
	"stayr/models"
	"stayr/response"
)

type NotificationController struct {
	db *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{db: db}
}

// GetNotifications liệt kê notification của user hiện tại, mới nhất trước
func (ctl *NotificationController) GetNotifications(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	page := 0
	limit := 20
	if parsed, err := strconv.Atoi(c.Query("page")); err == nil && parsed >= 0 {
		page = parsed
	}
	if parsed, err := strconv.Atoi(c.Query("limit")); err == nil && parsed > 0 {
		limit = parsed
	}

	tx := ctl.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if c.Query("unread") == "true" {
		tx = tx.Where("is_read = ?", false)
	}

	var total int64
	tx.Count(&total)

	var notifications []models.Notification
	if err := tx.Order("created_at DESC").Offset(page * limit).Limit(limit).Find(&notifications).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.SuccessWithPagination(c, notifications, page, limit, int(total))
}

// MarkNotificationsRead đánh dấu đã đọc; không có ids thì đánh dấu tất cả
func (ctl *NotificationController) MarkNotificationsRead(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req struct {
		IDs []uint `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tx := ctl.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if len(req.IDs) > 0 {
		tx = tx.Where("id IN ?", req.IDs)
	}
	if err := tx.Update("is_read", true).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, gin.H{"message": "Notifications marked as read"})
}
