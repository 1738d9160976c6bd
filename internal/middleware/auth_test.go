package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"schedura/config"
	"schedura/internal/auth"
	"schedura/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestRouter(t *testing.T) (*gin.Engine, *config.JWTConfig) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "schedura",
	}
	r := gin.New()
	r.GET("/me", AuthRequired(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	r.POST("/owner-only", AuthRequired(cfg), RequireRole(domain.RoleOwner), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r, cfg
}

func doAuthed(r *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r, cfg := authTestRouter(t)
	token, err := auth.GenerateAccessToken(cfg, 7, "pat@example.com", domain.RoleUser)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doAuthed(r, http.MethodGet, "/me", "Bearer "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthed(r, http.MethodGet, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthed(r, http.MethodGet, "/me", "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthed(r, http.MethodGet, "/me", "Basic "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthed(r, http.MethodGet, "/me", "Bearer not-a-token").Code)
}

func TestRequireRole(t *testing.T) {
	r, cfg := authTestRouter(t)

	owner, err := auth.GenerateAccessToken(cfg, 1, "owner@example.com", domain.RoleOwner)
	require.NoError(t, err)
	user, err := auth.GenerateAccessToken(cfg, 2, "user@example.com", domain.RoleUser)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doAuthed(r, http.MethodPost, "/owner-only", "Bearer "+owner).Code)
	assert.Equal(t, http.StatusForbidden, doAuthed(r, http.MethodPost, "/owner-only", "Bearer "+user).Code)
}
