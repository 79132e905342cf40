package api

import (
	"net/http"

	"OwlTurf/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// WalletHandler 钱包与流水接口
type WalletHandler struct {
	walletService *service.WalletService
	logger        *logrus.Logger
}

func NewWalletHandler(db *gorm.DB, logger *logrus.Logger) *WalletHandler {
	return &WalletHandler{
		walletService: service.NewWalletService(db, logger),
		logger:        logger,
	}
}

// GetWallet 查询余额
// GET /api/v1/wallet/:user_id
func (h *WalletHandler) GetWallet(c *gin.Context) {
	w, err := h.walletService.GetWallet(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// CreateTransaction 充值或扣款，余额不足时整笔拒绝
// POST /api/v1/wallet/:user_id/transactions
func (h *WalletHandler) CreateTransaction(c *gin.Context) {
	var req service.TransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	tx, err := h.walletService.ApplyTransaction(c.Request.Context(), c.Param("user_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// ListTransactions 流水列表，最新在前
// GET /api/v1/wallet/:user_id/transactions?skip=0&limit=100
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	var q pageQuery
	if !bindQuery(c, &q) {
		return
	}
	list, err := h.walletService.ListTransactions(c.Request.Context(), c.Param("user_id"), q.page())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/wallet/:user_id/transactions/:transaction_id
func (h *WalletHandler) GetTransaction(c *gin.Context) {
	tx, err := h.walletService.GetTransaction(c.Request.Context(), c.Param("user_id"), c.Param("transaction_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}
