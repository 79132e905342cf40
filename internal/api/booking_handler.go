package api

import (
	"net/http"

	"OwlTurf/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BookingHandler 场地预订接口
type BookingHandler struct {
	bookingService *service.BookingService
	logger         *logrus.Logger
}

func NewBookingHandler(db *gorm.DB, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: service.NewBookingService(db, logger),
		logger:         logger,
	}
}

type bookingQuery struct {
	pageQuery
	StatusFilter string `form:"status_filter" binding:"omitempty,oneof=pending confirmed cancelled completed"`
}

// POST /api/v1/bookings/:user_id
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.bookingService.Create(c.Request.Context(), c.Param("user_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListBookings 用户预订列表，按日期倒序
// GET /api/v1/bookings/:user_id?status_filter=confirmed
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var q bookingQuery
	if !bindQuery(c, &q) {
		return
	}
	list, err := h.bookingService.List(c.Request.Context(), c.Param("user_id"), q.StatusFilter, q.page())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/bookings/:user_id/:booking_id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.bookingService.Get(c.Request.Context(), c.Param("user_id"), c.Param("booking_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBooking 只允许修改预订状态
// PUT /api/v1/bookings/:user_id/:booking_id
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req service.UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.bookingService.UpdateStatus(c.Request.Context(), c.Param("user_id"), c.Param("booking_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /api/v1/bookings/:user_id/:booking_id
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := h.bookingService.Delete(c.Request.Context(), c.Param("user_id"), c.Param("booking_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
