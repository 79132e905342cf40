package api

import (
	"net/http"

	"OwlTurf/internal/repository"
	"OwlTurf/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReelHandler 短视频接口。路由第一段统一注册为 :id，
// 在 POST /reels/:id 中表示作者 user_id，其余路由中表示 reel_id。
type ReelHandler struct {
	reelService *service.ReelService
	logger      *logrus.Logger
}

func NewReelHandler(db *gorm.DB, logger *logrus.Logger) *ReelHandler {
	return &ReelHandler{
		reelService: service.NewReelService(db, logger),
		logger:      logger,
	}
}

type reelQuery struct {
	pageQuery
	Sport    string `form:"sport"`
	UserID   string `form:"user_id"`
	IsPublic *bool  `form:"is_public"`
}

// POST /api/v1/reels/:user_id
func (h *ReelHandler) CreateReel(c *gin.Context) {
	var req service.CreateReelRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.reelService.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListReels 短视频流，最新在前；is_public=false 时不过滤可见性
// GET /api/v1/reels?sport=cricket&user_id=u1&is_public=true
func (h *ReelHandler) ListReels(c *gin.Context) {
	var q reelQuery
	if !bindQuery(c, &q) {
		return
	}
	filter := repository.ReelFilter{Sport: q.Sport, UserID: q.UserID, PublicOnly: true}
	if q.IsPublic != nil {
		filter.PublicOnly = *q.IsPublic
	}
	list, err := h.reelService.List(c.Request.Context(), filter, q.page())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetReel 查看短视频，浏览数加一
// GET /api/v1/reels/:reel_id
func (h *ReelHandler) GetReel(c *gin.Context) {
	r, err := h.reelService.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// GET /api/v1/reels/user/:user_id
func (h *ReelHandler) ListUserReels(c *gin.Context) {
	var q pageQuery
	if !bindQuery(c, &q) {
		return
	}
	list, err := h.reelService.ListByUser(c.Request.Context(), c.Param("user_id"), q.page())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// PUT /api/v1/reels/:reel_id
func (h *ReelHandler) UpdateReel(c *gin.Context) {
	var req service.UpdateReelRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.reelService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteReel 软删除，仅作者可操作
// DELETE /api/v1/reels/:reel_id/:user_id
func (h *ReelHandler) DeleteReel(c *gin.Context) {
	id := c.Param("id")
	if err := h.reelService.Delete(c.Request.Context(), id, c.Param("user_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reel deleted successfully", "reel_id": id})
}

// POST /api/v1/reels/:reel_id/like/:user_id
func (h *ReelHandler) LikeReel(c *gin.Context) {
	r, err := h.reelService.Like(c.Request.Context(), c.Param("id"), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reel liked successfully", "likes_count": r.LikesCount})
}

// DELETE /api/v1/reels/:reel_id/like/:user_id
func (h *ReelHandler) UnlikeReel(c *gin.Context) {
	r, err := h.reelService.Unlike(c.Request.Context(), c.Param("id"), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reel unliked successfully", "likes_count": r.LikesCount})
}

// POST /api/v1/reels/:reel_id/comments/:user_id
func (h *ReelHandler) CommentReel(c *gin.Context) {
	var req service.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	cm, err := h.reelService.Comment(c.Request.Context(), c.Param("id"), c.Param("user_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

// GET /api/v1/reels/:reel_id/comments
func (h *ReelHandler) ListComments(c *gin.Context) {
	var q pageQuery
	if !bindQuery(c, &q) {
		return
	}
	list, err := h.reelService.ListComments(c.Request.Context(), c.Param("id"), q.page())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DeleteComment 删除评论，仅评论作者可操作
// DELETE /api/v1/reels/:reel_id/comments/:comment_id/:user_id
func (h *ReelHandler) DeleteComment(c *gin.Context) {
	err := h.reelService.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("comment_id"), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// POST /api/v1/reels/:reel_id/share/:user_id
func (h *ReelHandler) ShareReel(c *gin.Context) {
	r, err := h.reelService.Share(c.Request.Context(), c.Param("id"), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reel shared successfully", "shares_count": r.SharesCount})
}
