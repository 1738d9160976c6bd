package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"schedura/internal/models"
	"schedura/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func spaceTestSetup(t *testing.T) (*gin.Engine, *repository.SpaceRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Space{}, &models.SpacePhoto{}))

	repo := repository.NewSpaceRepository(db)
	h := NewSpaceHandler(repo, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", uint(7)) })
	r.GET("/spaces/categories", h.Categories)
	r.GET("/spaces/mine", h.ListMine)
	r.POST("/spaces", h.Create)
	return r, repo
}

func TestSpaceCategoriesEndpoint(t *testing.T) {
	r, _ := spaceTestSetup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/spaces/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Categories, "Conference")
	assert.Len(t, resp.Categories, 5)
}

func TestCreateSpaceRejectsUnknownCategory(t *testing.T) {
	r, _ := spaceTestSetup(t)

	body := `{"name":"Loft","location":"Pune","capacity":10,"price_per_hour":500,"category":"Garage"}`
	req := httptest.NewRequest(http.MethodPost, "/spaces", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMineSpaces(t *testing.T) {
	r, repo := spaceTestSetup(t)
	require.NoError(t, repo.Create(&models.Space{Name: "Mine", Location: "Pune", Capacity: 4, OwnerID: 7}))
	require.NoError(t, repo.Create(&models.Space{Name: "Theirs", Location: "Pune", Capacity: 4, OwnerID: 99}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/spaces/mine", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Spaces []struct {
			Name string `json:"name"`
		} `json:"spaces"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Spaces, 1)
	assert.Equal(t, "Mine", resp.Spaces[0].Name)
}
