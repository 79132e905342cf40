package api

import (
	"net/http"

	"OwlTurf/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CartHandler 购物车接口
type CartHandler struct {
	cartService *service.CartService
	logger      *logrus.Logger
}

func NewCartHandler(db *gorm.DB, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartService: service.NewCartService(db, logger),
		logger:      logger,
	}
}

// AddToCart 加入购物车，同商品同尺码时累加数量
// POST /api/v1/cart/:user_id
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req service.CartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.cartService.Add(c.Request.Context(), c.Param("user_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GET /api/v1/cart/:user_id
func (h *CartHandler) ListCart(c *gin.Context) {
	items, err := h.cartService.List(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// PUT /api/v1/cart/:user_id/:item_id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req service.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.cartService.Update(c.Request.Context(), c.Param("user_id"), c.Param("item_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DELETE /api/v1/cart/:user_id/:item_id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	if err := h.cartService.Remove(c.Request.Context(), c.Param("user_id"), c.Param("item_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearCart 清空购物车
// DELETE /api/v1/cart/:user_id
func (h *CartHandler) ClearCart(c *gin.Context) {
	n, err := h.cartService.Clear(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.logger.WithFields(logrus.Fields{"user_id": c.Param("user_id"), "removed": n}).Debug("cart cleared")
	c.Status(http.StatusNoContent)
}
