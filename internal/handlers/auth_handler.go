package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-citas/internal/auth"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
	"github.com/BruksfildServices01/agenda-citas/internal/httpresp"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens *auth.JWTProvider
	log    *zap.Logger
}

func NewAuthHandler(db *gorm.DB, tokens *auth.JWTProvider, log *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
			return
		}
		h.log.Error("login lookup failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Could not sign in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	token, expires, err := h.tokens.Issue(&user)
	if err != nil {
		h.log.Error("token issue failed", zap.Error(err))
		httperr.Internal(c, "failed_to_generate_token", "Could not sign in.")
		return
	}

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"token":      token,
		"expires_at": expires,
	})
}
