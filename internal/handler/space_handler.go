package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"schedura/internal/domain"
	"schedura/internal/middleware"
	"schedura/internal/models"
	"schedura/internal/repository"
	"schedura/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpaceHandler struct {
	spaceRepo *repository.SpaceRepository
	cloud     cloudinary.Client
}

func NewSpaceHandler(spaceRepo *repository.SpaceRepository, cloud cloudinary.Client) *SpaceHandler {
	return &SpaceHandler{spaceRepo: spaceRepo, cloud: cloud}
}

type spaceRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Location       string   `json:"location" binding:"required"`
	Capacity       int      `json:"capacity" binding:"required,min=1"`
	PricePerHour   int64    `json:"price_per_hour" binding:"required,min=0"`
	Category       string   `json:"category"`
	Amenities      []string `json:"amenities"`
	OrganisationID *uint    `json:"organisation_id"`
}

func (r *spaceRequest) validate() string {
	if r.Category != "" && !domain.ValidSpaceCategory(r.Category) {
		return "unknown category"
	}
	return ""
}

func (h *SpaceHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req spaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	amenities, _ := json.Marshal(req.Amenities)
	s := &models.Space{
		Name:           req.Name,
		Description:    req.Description,
		Location:       req.Location,
		Capacity:       req.Capacity,
		PricePerHour:   req.PricePerHour,
		Category:       req.Category,
		AmenitiesJSON:  string(amenities),
		OwnerID:        userID,
		OrganisationID: req.OrganisationID,
	}
	if err := h.spaceRepo.Create(s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, spaceResponse(s))
}

func (h *SpaceHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	spaces, err := h.spaceRepo.List(c.Query("category"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, 0, len(spaces))
	for i := range spaces {
		out = append(out, spaceResponse(&spaces[i]))
	}
	c.JSON(http.StatusOK, gin.H{"spaces": out})
}

// Categories returns the category list the client's picker shows.
func (h *SpaceHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": domain.SpaceCategories})
}

// ListMine returns the caller's own spaces.
func (h *SpaceHandler) ListMine(c *gin.Context) {
	spaces, err := h.spaceRepo.ListByOwner(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, 0, len(spaces))
	for i := range spaces {
		out = append(out, spaceResponse(&spaces[i]))
	}
	c.JSON(http.StatusOK, gin.H{"spaces": out})
}

func (h *SpaceHandler) Get(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, spaceResponse(s))
}

func (h *SpaceHandler) Update(c *gin.Context) {
	s, ok := h.lookupOwned(c)
	if !ok {
		return
	}
	var req spaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	amenities, _ := json.Marshal(req.Amenities)
	s.Name = req.Name
	s.Description = req.Description
	s.Location = req.Location
	s.Capacity = req.Capacity
	s.PricePerHour = req.PricePerHour
	s.Category = req.Category
	s.AmenitiesJSON = string(amenities)
	if err := h.spaceRepo.Update(s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, spaceResponse(s))
}

func (h *SpaceHandler) Delete(c *gin.Context) {
	s, ok := h.lookupOwned(c)
	if !ok {
		return
	}
	if err := h.spaceRepo.Delete(s.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UploadPhoto accepts a multipart image and stores it via Cloudinary.
func (h *SpaceHandler) UploadPhoto(c *gin.Context) {
	s, ok := h.lookupOwned(c)
	if !ok {
		return
	}
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo upload not configured"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer file.Close()
	publicID := uuid.New().String()
	url, thumb, err := h.cloud.UploadImage(c.Request.Context(), file, "spaces", publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	photo := &models.SpacePhoto{SpaceID: s.ID, URL: url, ThumbnailURL: thumb}
	if err := h.spaceRepo.AddPhoto(photo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusCreated, photo)
}

func (h *SpaceHandler) lookup(c *gin.Context) (*models.Space, bool) {
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid space id"})
		return nil, false
	}
	s, err := h.spaceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "space not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return nil, false
	}
	return s, true
}

func (h *SpaceHandler) lookupOwned(c *gin.Context) (*models.Space, bool) {
	s, ok := h.lookup(c)
	if !ok {
		return nil, false
	}
	if s.OwnerID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your space"})
		return nil, false
	}
	return s, true
}

// spaceResponse unpacks the amenities JSON column for clients.
func spaceResponse(s *models.Space) gin.H {
	var amenities []string
	if s.AmenitiesJSON != "" {
		_ = json.Unmarshal([]byte(s.AmenitiesJSON), &amenities)
	}
	return gin.H{
		"id":              s.ID,
		"name":            s.Name,
		"description":     s.Description,
		"location":        s.Location,
		"capacity":        s.Capacity,
		"price_per_hour":  s.PricePerHour,
		"category":        s.Category,
		"amenities":       amenities,
		"owner_id":        s.OwnerID,
		"organisation_id": s.OrganisationID,
		"photos":          s.Photos,
		"created_at":      s.CreatedAt,
	}
}
