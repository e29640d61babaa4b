package handlers

import (
	"net/http"
	"time"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/db"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// ListReports shows open moderation reports, oldest first.
func (h *AdminHandler) ListReports(c *gin.Context) {
	var reports []models.Report
	db.DB.Preload("User").
		Where("resolved_at IS NULL").
		Order("created_at ASC").
		Limit(100).
		Find(&reports)

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *AdminHandler) ResolveReport(c *gin.Context) {
	var report models.Report
	if err := db.DB.First(&report, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "report not found")
		return
	}

	now := time.Now()
	report.ResolvedAt = &now
	if err := db.DB.Save(&report).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	OK(c, nil)
}

type moderateUserRequest struct {
	Status int `json:"status"` // 0 active, 1 muted, 2 banned
}

// ModerateUser changes a user's standing.
func (h *AdminHandler) ModerateUser(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "user not found")
		return
	}

	var req moderateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status < 0 || req.Status > 2 {
		Fail(c, http.StatusBadRequest, "status must be 0, 1 or 2")
		return
	}

	user.Status = req.Status
	if err := db.DB.Save(&user).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	OK(c, nil)
}
