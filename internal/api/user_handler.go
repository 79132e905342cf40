package api

import (
	"net/http"

	"OwlTurf/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserHandler 用户相关接口
type UserHandler struct {
	userService *service.UserService
	logger      *logrus.Logger
}

func NewUserHandler(db *gorm.DB, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		userService: service.NewUserService(db, logger),
		logger:      logger,
	}
}

// CreateUser 创建用户并开通钱包
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ListUsers 用户列表
// GET /api/v1/users?skip=0&limit=100
func (h *UserHandler) ListUsers(c *gin.Context) {
	var q pageQuery
	if !bindQuery(c, &q) {
		return
	}
	users, err := h.userService.List(c.Request.Context(), q.page())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser 用户详情
// GET /api/v1/users/:user_id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser 部分更新用户
// PUT /api/v1/users/:user_id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req service.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Update(c.Request.Context(), c.Param("user_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser 删除用户及其钱包、地址、购物车、预订
// DELETE /api/v1/users/:user_id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("user_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
