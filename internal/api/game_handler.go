package api

import (
	"net/http"

	"OwlTurf/internal/repository"
	"OwlTurf/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GameHandler 约球接口。路由第一段统一注册为 :id，
// 在 POST /games/:id 中表示发起人 user_id，其余路由中表示 game_id。
type GameHandler struct {
	gameService *service.GameService
	logger      *logrus.Logger
}

func NewGameHandler(db *gorm.DB, logger *logrus.Logger) *GameHandler {
	return &GameHandler{
		gameService: service.NewGameService(db, logger),
		logger:      logger,
	}
}

type gameQuery struct {
	pageQuery
	Sport      string `form:"sport"`
	Status     string `form:"status" binding:"omitempty,oneof=upcoming full in_progress completed cancelled"`
	SkillLevel string `form:"skill_level" binding:"omitempty,oneof=beginner intermediate advanced any"`
	GameType   string `form:"game_type" binding:"omitempty,oneof=public private tournament"`
}

type userGamesQuery struct {
	IncludePast bool `form:"include_past"`
}

// CreateGame 发起比赛，发起人自动加入
// POST /api/v1/games/:user_id
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req service.CreateGameRequest
	if !bindJSON(c, &req) {
		return
	}
	g, err := h.gameService.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// ListGames 今天及以后的比赛，按日期和开始时间升序
// GET /api/v1/games?sport=football&status=upcoming&skip=0&limit=20
func (h *GameHandler) ListGames(c *gin.Context) {
	var q gameQuery
	if !bindQuery(c, &q) {
		return
	}
	filter := repository.GameFilter{
		Sport:      q.Sport,
		Status:     q.Status,
		SkillLevel: q.SkillLevel,
		GameType:   q.GameType,
	}
	list, err := h.gameService.List(c.Request.Context(), filter, q.page())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/games/:game_id
func (h *GameHandler) GetGame(c *gin.Context) {
	g, err := h.gameService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// ListUserGames 用户发起或参加的比赛
// GET /api/v1/games/user/:user_id?include_past=false
func (h *GameHandler) ListUserGames(c *gin.Context) {
	var q userGamesQuery
	if !bindQuery(c, &q) {
		return
	}
	list, err := h.gameService.ListForUser(c.Request.Context(), c.Param("user_id"), q.IncludePast)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// PUT /api/v1/games/:game_id
func (h *GameHandler) UpdateGame(c *gin.Context) {
	var req service.UpdateGameRequest
	if !bindJSON(c, &req) {
		return
	}
	g, err := h.gameService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// JoinGame 加入比赛，满员后状态变为 full
// POST /api/v1/games/:game_id/join/:user_id
func (h *GameHandler) JoinGame(c *gin.Context) {
	g, err := h.gameService.Join(c.Request.Context(), c.Param("id"), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Joined game successfully", "game": g})
}

// LeaveGame 退出比赛，发起人不能退出
// POST /api/v1/games/:game_id/leave/:user_id
func (h *GameHandler) LeaveGame(c *gin.Context) {
	g, err := h.gameService.Leave(c.Request.Context(), c.Param("id"), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left game successfully", "game": g})
}

// CancelGame 取消比赛，仅发起人可操作
// DELETE /api/v1/games/:game_id/:user_id
func (h *GameHandler) CancelGame(c *gin.Context) {
	g, err := h.gameService.Cancel(c.Request.Context(), c.Param("id"), c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game cancelled successfully", "game_id": g.ID})
}
