package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sharathcodingit/remi-fitness-booking-app/config"
	"github.com/sharathcodingit/remi-fitness-booking-app/utils"
)

// AuthHandler authenticates the single trainer account.
type AuthHandler struct{}

const trainerTokenTTL = 24 * time.Hour

// LoginHandler handles POST /api/auth/login. The configured trainer
// password may be a bcrypt hash or, for development, a plain string.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid login request", err.Error())
		return
	}

	if req.Email != config.AppConfig.TrainerEmail || !passwordMatches(req.Password) {
		logger.Warn("failed trainer login", zap.String("email", req.Email))
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := utils.GenerateToken(req.Email, trainerTokenTTL)
	if err != nil {
		logger.Error("failed to sign trainer token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "email": req.Email})
}

func passwordMatches(provided string) bool {
	configured := config.AppConfig.TrainerPassword
	if strings.HasPrefix(configured, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(provided)) == 1
}
