package handlers

import (
	"net/http"
	"strings"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/db"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct{}

func NewNewsHandler() *NewsHandler {
	return &NewsHandler{}
}

type newsRequest struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// List returns published announcements, newest first.
func (h *NewsHandler) List(c *gin.Context) {
	var items []models.News
	db.DB.Preload("Author").Where("published = ?", true).
		Order("created_at DESC").Limit(20).Find(&items)

	c.JSON(http.StatusOK, gin.H{"news": items})
}

func (h *NewsHandler) Detail(c *gin.Context) {
	var item models.News
	err := db.DB.Preload("Author").
		Where("slug = ? AND published = ?", c.Param("slug"), true).
		First(&item).Error
	if err != nil {
		Fail(c, http.StatusNotFound, "article not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"news":        item,
		"contentHtml": utils.RenderMarkdownCached(item.Content),
	})
}

// Create is admin-only (enforced by the route group).
func (h *NewsHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		Fail(c, http.StatusBadRequest, "title is required")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = strings.ToLower(strings.ReplaceAll(req.Title, " ", "-"))
	}

	item := models.News{
		Slug:      slug,
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  user.ID,
		Published: req.Published,
	}
	if err := db.DB.Create(&item).Error; err != nil {
		Fail(c, http.StatusConflict, "slug already in use")
		return
	}
	OK(c, gin.H{"slug": item.Slug})
}

func (h *NewsHandler) Update(c *gin.Context) {
	var item models.News
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&item).Error; err != nil {
		Fail(c, http.StatusNotFound, "article not found")
		return
	}

	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title != "" {
		item.Title = req.Title
	}
	item.Content = req.Content
	item.Published = req.Published

	if err := db.DB.Save(&item).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	OK(c, nil)
}

func (h *NewsHandler) Delete(c *gin.Context) {
	var item models.News
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&item).Error; err != nil {
		Fail(c, http.StatusNotFound, "article not found")
		return
	}
	if err := db.DB.Delete(&item).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	OK(c, nil)
}
