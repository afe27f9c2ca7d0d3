package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sharathcodingit/remi-fitness-booking-app/config"
)

func authLoginRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/auth/login", (&AuthHandler{}).LoginHandler)
	return r
}

func TestLoginHandler(t *testing.T) {
	config.AppConfig.TrainerEmail = "trainer@remifitness.local"
	config.AppConfig.TrainerPassword = "letmein"
	r := authLoginRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email": "trainer@remifitness.local", "password": "letmein",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
}

func TestLoginHandler_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)
	config.AppConfig.TrainerEmail = "trainer@remifitness.local"
	config.AppConfig.TrainerPassword = string(hash)
	r := authLoginRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email": "trainer@remifitness.local", "password": "letmein",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	config.AppConfig.TrainerEmail = "trainer@remifitness.local"
	config.AppConfig.TrainerPassword = "letmein"
	r := authLoginRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email": "trainer@remifitness.local", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email": "someone@else.com", "password": "letmein",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{"email": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
