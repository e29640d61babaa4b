package handlers

import (
	"net/http"
	"strings"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/db"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/services"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	mailService    *services.MailService
	captchaService *services.CaptchaService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		mailService:    services.NewMailService(),
		captchaService: services.NewCaptchaService(),
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Captcha  string `json:"captcha"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Captcha issues a math problem and stores the answer in the session.
func (h *AuthHandler) Captcha(c *gin.Context) {
	question, answer := h.captchaService.GenerateMathProblem()
	session := sessions.Default(c)
	session.Set("captcha_answer", answer)
	session.Save()
	c.JSON(http.StatusOK, gin.H{"captcha": question})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	session := sessions.Default(c)
	expectedAnswer, ok := session.Get("captcha_answer").(int)
	if !ok || utils.StringToInt(req.Captcha) != expectedAnswer {
		Fail(c, http.StatusBadRequest, "wrong captcha answer")
		return
	}
	session.Delete("captcha_answer")
	session.Save()

	parts := strings.Split(req.Email, "@")
	if len(parts) != 2 || parts[0] == "" {
		Fail(c, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(req.Password) < 6 {
		Fail(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	user := models.User{
		Username: parts[0],
		Email:    req.Email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		Fail(c, http.StatusConflict, "email already registered")
		return
	}

	h.mailService.SendWelcomeEmail(user.Email, user.Username)

	session.Set("user_id", user.ID)
	session.Save()

	OK(c, gin.H{"user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		Fail(c, http.StatusUnauthorized, "wrong email or password")
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		Fail(c, http.StatusUnauthorized, "wrong email or password")
		return
	}
	if user.Status == models.UserStatusBanned {
		Fail(c, http.StatusForbidden, "this account has been banned")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	OK(c, gin.H{"user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	OK(c, nil)
}

// Me returns the current session's user, for the client to restore state.
func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Fail(c, http.StatusUnauthorized, "login required")
		return
	}
	OK(c, gin.H{"user": user})
}
