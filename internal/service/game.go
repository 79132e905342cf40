package service

import (
	"context"
	"fmt"
	"time"

	"OwlTurf/internal/metrics"
	"OwlTurf/internal/model"
	"OwlTurf/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// CreateGameRequest 发起比赛请求，发起人自动成为第一名成员
type CreateGameRequest struct {
	VenueID           string   `json:"venue_id" binding:"required"`
	Sport             string   `json:"sport" binding:"required,max=64"`
	Title             string   `json:"title" binding:"required,max=255"`
	Description       *string  `json:"description"`
	Date              string   `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime         string   `json:"start_time" binding:"required,clock"`
	EndTime           string   `json:"end_time" binding:"required,clock"`
	Duration          int      `json:"duration" binding:"required,gt=0"`
	MinPlayers        int      `json:"min_players" binding:"required,gte=1"`
	MaxPlayers        int      `json:"max_players" binding:"required,gte=2"`
	GameType          string   `json:"game_type" binding:"omitempty,oneof=public private tournament"`
	SkillLevel        string   `json:"skill_level" binding:"omitempty,oneof=beginner intermediate advanced any"`
	GenderPreference  *string  `json:"gender_preference"`
	AgeGroup          *string  `json:"age_group"`
	PricePerPerson    float64  `json:"price_per_person" binding:"gte=0"`
	TotalCost         float64  `json:"total_cost" binding:"gte=0"`
	SplitCost         *bool    `json:"split_cost"`
	Rules             *string  `json:"rules"`
	RequiredEquipment []string `json:"required_equipment"`
}

// UpdateGameRequest 部分更新比赛；状态只能向前推进（upcoming/full -> in_progress -> completed）
type UpdateGameRequest struct {
	Title          *string  `json:"title" binding:"omitempty,max=255"`
	Description    *string  `json:"description"`
	Date           *string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	StartTime      *string  `json:"start_time" binding:"omitempty,clock"`
	EndTime        *string  `json:"end_time" binding:"omitempty,clock"`
	MaxPlayers     *int     `json:"max_players" binding:"omitempty,gte=2"`
	PricePerPerson *float64 `json:"price_per_person" binding:"omitempty,gte=0"`
	Status         *string  `json:"status" binding:"omitempty,oneof=upcoming full in_progress completed cancelled"`
	Rules          *string  `json:"rules"`
}

// GameService 比赛成员状态机。所有成员变更在事务内锁定比赛行后执行，
// current_players 始终等于成员数且不超过 max_players。
type GameService struct {
	db     *gorm.DB
	games  repository.GameRepository
	users  repository.UserRepository
	venues repository.VenueRepository
	logger *logrus.Logger
	now    func() time.Time
}

func NewGameService(db *gorm.DB, logger *logrus.Logger) *GameService {
	return &GameService{
		db:     db,
		games:  repository.NewGameRepository(db),
		users:  repository.NewUserRepository(db),
		venues: repository.NewVenueRepository(db),
		logger: logger,
		now:    time.Now,
	}
}

func (s *GameService) Create(ctx context.Context, hostID string, req *CreateGameRequest) (*model.Game, error) {
	if req.MaxPlayers < 2 || req.MinPlayers < 1 || req.MinPlayers > req.MaxPlayers {
		return nil, invalid("players must satisfy 1 <= min_players <= max_players and max_players >= 2")
	}
	if _, err := s.users.GetByUID(ctx, hostID); err != nil {
		return nil, wrapStore(err, "host user")
	}
	exists, err := s.venues.Exists(ctx, req.VenueID)
	if err != nil {
		return nil, wrapStore(err, "venue")
	}
	if !exists {
		return nil, notFound("venue")
	}

	g := &model.Game{
		HostID:            hostID,
		VenueID:           req.VenueID,
		Sport:             req.Sport,
		Title:             req.Title,
		Description:       req.Description,
		Date:              req.Date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Duration:          req.Duration,
		MinPlayers:        req.MinPlayers,
		MaxPlayers:        req.MaxPlayers,
		CurrentPlayers:    1,
		GameType:          orDefault(req.GameType, model.GameTypePublic),
		SkillLevel:        orDefault(req.SkillLevel, model.SkillAny),
		GenderPreference:  req.GenderPreference,
		AgeGroup:          req.AgeGroup,
		PricePerPerson:    req.PricePerPerson,
		TotalCost:         req.TotalCost,
		SplitCost:         req.SplitCost == nil || *req.SplitCost,
		Status:            model.GameUpcoming,
		Rules:             req.Rules,
		RequiredEquipment: model.StringList(req.RequiredEquipment),
		Players:           []model.GamePlayer{{UserID: hostID, IsHost: true}},
	}
	if err := s.games.Create(ctx, g); err != nil {
		return nil, wrapStore(err, "game")
	}
	s.logger.WithFields(logrus.Fields{"game_id": g.ID, "host_id": hostID}).Info("game created")
	return g, nil
}

func (s *GameService) Get(ctx context.Context, id string) (*model.Game, error) {
	g, err := s.games.Get(ctx, id)
	if err != nil {
		return nil, wrapStore(err, "game")
	}
	return g, nil
}

// List returns games dated today or later, soonest first.
func (s *GameService) List(ctx context.Context, filter repository.GameFilter, page repository.Page) ([]*model.Game, error) {
	filter.FromDate = s.now().Format(dateLayout)
	list, err := s.games.List(ctx, filter, page)
	if err != nil {
		return nil, wrapStore(err, "games")
	}
	return list, nil
}

// ListForUser returns games the user hosts or has joined.
func (s *GameService) ListForUser(ctx context.Context, userID string, includePast bool) ([]*model.Game, error) {
	from := s.now().Format(dateLayout)
	if includePast {
		from = ""
	}
	list, err := s.games.ListForUser(ctx, userID, from)
	if err != nil {
		return nil, wrapStore(err, "games")
	}
	return list, nil
}

// Join adds userID to the game. Checks run in this order: game and user
// exist, capacity, membership, status.
func (s *GameService) Join(ctx context.Context, gameID, userID string) (*model.Game, error) {
	var game *model.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		games := s.games.WithTx(tx)
		g, err := games.GetForUpdate(ctx, gameID)
		if err != nil {
			return wrapStore(err, "game")
		}
		if _, err := s.users.WithTx(tx).GetByUID(ctx, userID); err != nil {
			return wrapStore(err, "user")
		}
		if g.CurrentPlayers >= g.MaxPlayers {
			return ErrGameFull
		}
		if g.HasPlayer(userID) {
			return ErrAlreadyJoined
		}
		if g.Status != model.GameUpcoming {
			return fmt.Errorf("%w: status is %s", ErrNotJoinable, g.Status)
		}

		if err := games.AddPlayer(ctx, &model.GamePlayer{GameID: g.ID, UserID: userID}); err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyJoined
			}
			return wrapStore(err, "game player")
		}
		g.Players = append(g.Players, model.GamePlayer{GameID: g.ID, UserID: userID})
		g.CurrentPlayers++
		if g.CurrentPlayers >= g.MaxPlayers {
			g.Status = model.GameFull
		}
		if err := games.UpdateFields(ctx, g.ID, map[string]interface{}{
			"current_players": g.CurrentPlayers,
			"status":          g.Status,
		}); err != nil {
			return wrapStore(err, "game")
		}
		g.SyncPlayerIDs()
		game = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordGameMembership("join")
	s.logger.WithFields(logrus.Fields{"game_id": gameID, "user_id": userID, "players": game.CurrentPlayers}).Info("player joined game")
	return game, nil
}

// Leave removes a non-host member. A full game reopens.
func (s *GameService) Leave(ctx context.Context, gameID, userID string) (*model.Game, error) {
	var game *model.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		games := s.games.WithTx(tx)
		g, err := games.GetForUpdate(ctx, gameID)
		if err != nil {
			return wrapStore(err, "game")
		}
		if g.HostID == userID {
			return ErrHostCannotLeave
		}
		if !g.HasPlayer(userID) {
			return ErrNotAMember
		}
		if g.Terminal() {
			return fmt.Errorf("%w: status is %s", ErrGameClosed, g.Status)
		}

		n, err := games.RemovePlayer(ctx, g.ID, userID)
		if err != nil {
			return wrapStore(err, "game player")
		}
		if n == 0 {
			return ErrNotAMember
		}
		kept := g.Players[:0]
		for _, p := range g.Players {
			if p.UserID != userID {
				kept = append(kept, p)
			}
		}
		g.Players = kept
		g.CurrentPlayers--
		if g.Status == model.GameFull {
			g.Status = model.GameUpcoming
		}
		if err := games.UpdateFields(ctx, g.ID, map[string]interface{}{
			"current_players": g.CurrentPlayers,
			"status":          g.Status,
		}); err != nil {
			return wrapStore(err, "game")
		}
		g.SyncPlayerIDs()
		game = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordGameMembership("leave")
	s.logger.WithFields(logrus.Fields{"game_id": gameID, "user_id": userID, "players": game.CurrentPlayers}).Info("player left game")
	return game, nil
}

// Update applies a partial edit. Capacity changes recompute upcoming/full;
// cancelling goes through Cancel.
func (s *GameService) Update(ctx context.Context, gameID string, req *UpdateGameRequest) (*model.Game, error) {
	var game *model.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		games := s.games.WithTx(tx)
		g, err := games.GetForUpdate(ctx, gameID)
		if err != nil {
			return wrapStore(err, "game")
		}
		if g.Terminal() {
			return fmt.Errorf("%w: status is %s", ErrGameClosed, g.Status)
		}

		fields := map[string]interface{}{}
		if req.Title != nil {
			g.Title = *req.Title
			fields["title"] = g.Title
		}
		if req.Description != nil {
			g.Description = req.Description
			fields["description"] = *req.Description
		}
		if req.Date != nil {
			g.Date = *req.Date
			fields["date"] = g.Date
		}
		if req.StartTime != nil {
			g.StartTime = *req.StartTime
			fields["start_time"] = g.StartTime
		}
		if req.EndTime != nil {
			g.EndTime = *req.EndTime
			fields["end_time"] = g.EndTime
		}
		if req.PricePerPerson != nil {
			g.PricePerPerson = *req.PricePerPerson
			fields["price_per_person"] = g.PricePerPerson
		}
		if req.Rules != nil {
			g.Rules = req.Rules
			fields["rules"] = *req.Rules
		}
		if req.Status != nil && *req.Status != g.Status {
			if err := checkTransition(g.Status, *req.Status); err != nil {
				return err
			}
			g.Status = *req.Status
		}
		if req.MaxPlayers != nil {
			if *req.MaxPlayers < g.CurrentPlayers {
				return invalid("max_players %d is below current_players %d", *req.MaxPlayers, g.CurrentPlayers)
			}
			if *req.MaxPlayers < g.MinPlayers {
				return invalid("max_players %d is below min_players %d", *req.MaxPlayers, g.MinPlayers)
			}
			g.MaxPlayers = *req.MaxPlayers
			fields["max_players"] = g.MaxPlayers
		}
		if g.Status == model.GameUpcoming || g.Status == model.GameFull {
			g.Status = model.GameUpcoming
			if g.CurrentPlayers >= g.MaxPlayers {
				g.Status = model.GameFull
			}
		}
		fields["status"] = g.Status

		if err := games.UpdateFields(ctx, g.ID, fields); err != nil {
			return wrapStore(err, "game")
		}
		game = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

func checkTransition(from, to string) error {
	switch to {
	case model.GameInProgress:
		if from == model.GameUpcoming || from == model.GameFull {
			return nil
		}
	case model.GameCompleted:
		if from == model.GameInProgress {
			return nil
		}
	case model.GameCancelled:
		return invalid("use the cancel endpoint to cancel a game")
	case model.GameUpcoming, model.GameFull:
		return invalid("status %s is derived from the player count", to)
	}
	return invalid("cannot move game from %s to %s", from, to)
}

// Cancel is allowed for the host only. Cancelling twice is a no-op.
func (s *GameService) Cancel(ctx context.Context, gameID, userID string) (*model.Game, error) {
	var game *model.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		games := s.games.WithTx(tx)
		g, err := games.GetForUpdate(ctx, gameID)
		if err != nil {
			return wrapStore(err, "game")
		}
		if g.HostID != userID {
			return fmt.Errorf("only the host can cancel the game: %w", ErrForbidden)
		}
		game = g
		switch g.Status {
		case model.GameCancelled:
			return nil
		case model.GameCompleted:
			return fmt.Errorf("%w: status is %s", ErrGameClosed, g.Status)
		}
		g.Status = model.GameCancelled
		return wrapStore(games.UpdateFields(ctx, g.ID, map[string]interface{}{"status": g.Status}), "game")
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordGameMembership("cancel")
	s.logger.WithFields(logrus.Fields{"game_id": gameID, "host_id": userID}).Info("game cancelled")
	return game, nil
}

// AdvanceSchedule starts games whose start time has passed and completes
// games whose end has passed. It returns the number of games moved.
func (s *GameService) AdvanceSchedule(ctx context.Context, now time.Time) (int, error) {
	candidates, err := s.games.ListByStatus(ctx,
		[]string{model.GameUpcoming, model.GameFull, model.GameInProgress},
		now.Format(dateLayout))
	if err != nil {
		return 0, wrapStore(err, "games")
	}
	moved := 0
	for _, g := range candidates {
		start, ok := g.StartsAt(now.Location())
		if !ok || now.Before(start) {
			continue
		}
		to := model.GameInProgress
		if end, ok := g.EndsAt(now.Location()); ok && !now.Before(end) {
			to = model.GameCompleted
		}
		if to == g.Status {
			continue
		}
		n, err := s.games.SetStatusIf(ctx, g.ID, g.Status, to)
		if err != nil {
			return moved, wrapStore(err, "game")
		}
		if n == 0 {
			continue
		}
		moved++
		metrics.RecordGameMembership(to)
		s.logger.WithFields(logrus.Fields{"game_id": g.ID, "from": g.Status, "to": to}).Info("game status advanced")
	}
	return moved, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
