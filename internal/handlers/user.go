package handlers

import (
	"net/http"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/db"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile is the public view of a user: their pets and recent posts.
func (h *UserHandler) Profile(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		Fail(c, http.StatusNotFound, "user not found")
		return
	}

	var pets []models.Pet
	db.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&pets)

	var posts []models.Post
	db.DB.Preload("Topic").Where("user_id = ?", user.ID).
		Order("created_at DESC").Limit(20).Find(&posts)

	c.JSON(http.StatusOK, gin.H{
		"user":  gin.H{"id": user.ID, "username": user.Username, "avatar": user.Avatar, "bio": user.Bio, "created_at": user.CreatedAt},
		"pets":  pets,
		"posts": posts,
	})
}

type settingsRequest struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
	Phone    string `json:"phone"`
	Wallet   string `json:"wallet"`
}

// UpdateSettings edits the caller's own profile fields.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	user := CurrentUser(c)

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	user.Bio = req.Bio
	user.Phone = req.Phone
	if req.Wallet != "" {
		user.Wallet = req.Wallet
	}

	if err := db.DB.Save(user).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	OK(c, gin.H{"user": user})
}

// MyPets lists the caller's own pets for the dashboard.
func (h *UserHandler) MyPets(c *gin.Context) {
	user := CurrentUser(c)

	var pets []models.Pet
	db.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&pets)

	c.JSON(http.StatusOK, gin.H{"pets": pets})
}
