package api

import (
	"net/http"

	"OwlTurf/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddressHandler 收货地址接口，路径中的 user_id 决定归属
type AddressHandler struct {
	addressService *service.AddressService
	logger         *logrus.Logger
}

func NewAddressHandler(db *gorm.DB, logger *logrus.Logger) *AddressHandler {
	return &AddressHandler{
		addressService: service.NewAddressService(db, logger),
		logger:         logger,
	}
}

// POST /api/v1/addresses/:user_id
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	var req service.AddressRequest
	if !bindJSON(c, &req) {
		return
	}
	addr, err := h.addressService.Create(c.Request.Context(), c.Param("user_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, addr)
}

// GET /api/v1/addresses/:user_id
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	list, err := h.addressService.List(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/addresses/:user_id/:address_id
func (h *AddressHandler) GetAddress(c *gin.Context) {
	addr, err := h.addressService.Get(c.Request.Context(), c.Param("user_id"), c.Param("address_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}

// PUT /api/v1/addresses/:user_id/:address_id
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	var req service.UpdateAddressRequest
	if !bindJSON(c, &req) {
		return
	}
	addr, err := h.addressService.Update(c.Request.Context(), c.Param("user_id"), c.Param("address_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}

// SetDefaultAddress 设为默认地址，其他地址的默认标记同时清除
// PUT /api/v1/addresses/:user_id/:address_id/default
func (h *AddressHandler) SetDefaultAddress(c *gin.Context) {
	addr, err := h.addressService.SetDefault(c.Request.Context(), c.Param("user_id"), c.Param("address_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}

// DELETE /api/v1/addresses/:user_id/:address_id
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	if err := h.addressService.Delete(c.Request.Context(), c.Param("user_id"), c.Param("address_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
