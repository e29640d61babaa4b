package handlers

import (
	"net/http"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/middleware"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the authenticated user from the context, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// OK writes the standard success envelope, merging any extra fields.
func OK(c *gin.Context, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes the standard error envelope. The message is user-facing;
// callers are expected to surface it and revert any optimistic UI state.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}
