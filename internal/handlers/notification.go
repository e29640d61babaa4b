package handlers

import (
	"net/http"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/db"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	var notifications []models.Notification
	db.DB.Preload("Actor").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread":        unreadCount(c),
	})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	user := CurrentUser(c)
	id := c.Param("id")

	var notification models.Notification
	if err := db.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&notification).Error; err != nil {
		Fail(c, http.StatusNotFound, "notification not found")
		return
	}

	notification.IsRead = true
	db.DB.Save(&notification)

	OK(c, nil)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := c.Param("id")

	var notification models.Notification
	if err := db.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&notification).Error; err != nil {
		Fail(c, http.StatusNotFound, "notification not found")
		return
	}

	db.DB.Delete(&notification)

	OK(c, nil)
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := CurrentUser(c)

	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)

	OK(c, nil)
}
