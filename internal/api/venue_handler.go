package api

import (
	"net/http"

	"OwlTurf/internal/repository"
	"OwlTurf/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// VenueHandler 场馆接口
type VenueHandler struct {
	venueService *service.VenueService
	logger       *logrus.Logger
}

func NewVenueHandler(db *gorm.DB, logger *logrus.Logger) *VenueHandler {
	return &VenueHandler{
		venueService: service.NewVenueService(db, logger),
		logger:       logger,
	}
}

type venueQuery struct {
	pageQuery
	City     string `form:"city"`
	Sport    string `form:"sport"`
	IsActive *bool  `form:"is_active"`
}

// POST /api/v1/venues
func (h *VenueHandler) CreateVenue(c *gin.Context) {
	var req service.VenueRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.venueService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// ListVenues 场馆列表，默认只返回启用中的场馆
// GET /api/v1/venues?city=Pune&sport=football&is_active=true
func (h *VenueHandler) ListVenues(c *gin.Context) {
	var q venueQuery
	if !bindQuery(c, &q) {
		return
	}
	filter := repository.VenueFilter{City: q.City, Sport: q.Sport, IsActive: true}
	if q.IsActive != nil {
		filter.IsActive = *q.IsActive
	}
	list, err := h.venueService.List(c.Request.Context(), filter, q.page())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/venues/:venue_id
func (h *VenueHandler) GetVenue(c *gin.Context) {
	v, err := h.venueService.Get(c.Request.Context(), c.Param("venue_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// PUT /api/v1/venues/:venue_id
func (h *VenueHandler) UpdateVenue(c *gin.Context) {
	var req service.UpdateVenueRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.venueService.Update(c.Request.Context(), c.Param("venue_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DeleteVenue 停用场馆（软删除）
// DELETE /api/v1/venues/:venue_id
func (h *VenueHandler) DeleteVenue(c *gin.Context) {
	id := c.Param("venue_id")
	if err := h.venueService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Venue deactivated successfully", "venue_id": id})
}

// AddVenueImages 追加场馆图片路径，首张图片同时作为缩略图
// POST /api/v1/venues/:venue_id/images
func (h *VenueHandler) AddVenueImages(c *gin.Context) {
	var req service.VenueImagesRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.venueService.AddImages(c.Request.Context(), c.Param("venue_id"), req.ImageURLs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
