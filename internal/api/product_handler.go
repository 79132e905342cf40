package api

import (
	"net/http"

	"OwlTurf/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProductHandler 商品目录接口
type ProductHandler struct {
	productService *service.ProductService
	logger         *logrus.Logger
}

func NewProductHandler(db *gorm.DB, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		productService: service.NewProductService(db, logger),
		logger:         logger,
	}
}

type productQuery struct {
	pageQuery
	Category string `form:"category"`
}

// CreateProduct 新建商品
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListProducts 商品列表，可按分类过滤
// GET /api/v1/products?category=shoes&skip=0&limit=100
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var q productQuery
	if !bindQuery(c, &q) {
		return
	}
	list, err := h.productService.List(c.Request.Context(), q.Category, q.page())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/products/:product_id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.productService.Get(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /api/v1/products/:product_id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req service.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.productService.Update(c.Request.Context(), c.Param("product_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/v1/products/:product_id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.Param("product_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
