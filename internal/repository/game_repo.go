package repository

import (
	"context"

	"OwlTurf/internal/model"

	"gorm.io/gorm"
)

// GameFilter 比赛列表筛选条件，空字段不过滤
type GameFilter struct {
	Sport      string
	Status     string
	SkillLevel string
	GameType   string
	FromDate   string // YYYY-MM-DD, inclusive
}

// GameRepository 比赛与成员持久化。读取的比赛都带有按加入顺序排列的成员列表。
type GameRepository interface {
	WithTx(tx *gorm.DB) GameRepository
	// Create inserts the game together with its Players rows.
	Create(ctx context.Context, g *model.Game) error
	Get(ctx context.Context, id string) (*model.Game, error)
	// GetForUpdate locks the game row for the rest of the transaction.
	GetForUpdate(ctx context.Context, id string) (*model.Game, error)
	List(ctx context.Context, filter GameFilter, page Page) ([]*model.Game, error)
	ListForUser(ctx context.Context, userID, fromDate string) ([]*model.Game, error)
	// ListByStatus returns games in any of statuses dated on or before lastDate.
	ListByStatus(ctx context.Context, statuses []string, lastDate string) ([]*model.Game, error)
	AddPlayer(ctx context.Context, p *model.GamePlayer) error
	// RemovePlayer never removes the host row.
	RemovePlayer(ctx context.Context, gameID, userID string) (int64, error)
	UpdateFields(ctx context.Context, gameID string, fields map[string]interface{}) error
	// SetStatusIf moves the game to status to only while it is still in from.
	SetStatusIf(ctx context.Context, gameID, from, to string) (int64, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) WithTx(tx *gorm.DB) GameRepository {
	return &gameRepository{db: tx}
}

func playersInJoinOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *gameRepository) Create(ctx context.Context, g *model.Game) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return err
	}
	g.SyncPlayerIDs()
	return nil
}

func (r *gameRepository) Get(ctx context.Context, id string) (*model.Game, error) {
	var g model.Game
	if err := r.db.WithContext(ctx).Preload("Players", playersInJoinOrder).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	g.SyncPlayerIDs()
	return &g, nil
}

func (r *gameRepository) GetForUpdate(ctx context.Context, id string) (*model.Game, error) {
	var g model.Game
	if err := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("game_id = ?", id).Order("id ASC").Find(&g.Players).Error; err != nil {
		return nil, err
	}
	g.SyncPlayerIDs()
	return &g, nil
}

func (r *gameRepository) List(ctx context.Context, filter GameFilter, page Page) ([]*model.Game, error) {
	db := r.db.WithContext(ctx).Model(&model.Game{})
	if filter.Sport != "" {
		db = db.Where("sport = ?", filter.Sport)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.SkillLevel != "" {
		db = db.Where("skill_level = ?", filter.SkillLevel)
	}
	if filter.GameType != "" {
		db = db.Where("game_type = ?", filter.GameType)
	}
	if filter.FromDate != "" {
		db = db.Where("date >= ?", filter.FromDate)
	}
	var list []*model.Game
	db = db.Preload("Players", playersInJoinOrder).Order("date ASC").Order("start_time ASC")
	if err := page.apply(db, 20).Find(&list).Error; err != nil {
		return nil, err
	}
	return syncAll(list), nil
}

func (r *gameRepository) ListForUser(ctx context.Context, userID, fromDate string) ([]*model.Game, error) {
	member := r.db.WithContext(ctx).Model(&model.GamePlayer{}).Select("game_id").Where("user_id = ?", userID)
	db := r.db.WithContext(ctx).Where("host_id = ? OR id IN (?)", userID, member)
	if fromDate != "" {
		db = db.Where("date >= ?", fromDate)
	}
	var list []*model.Game
	if err := db.Preload("Players", playersInJoinOrder).Order("date ASC").Order("start_time ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return syncAll(list), nil
}

func (r *gameRepository) ListByStatus(ctx context.Context, statuses []string, lastDate string) ([]*model.Game, error) {
	var list []*model.Game
	if err := r.db.WithContext(ctx).Where("status IN ? AND date <= ?", statuses, lastDate).
		Order("date ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *gameRepository) AddPlayer(ctx context.Context, p *model.GamePlayer) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gameRepository) RemovePlayer(ctx context.Context, gameID, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("game_id = ? AND user_id = ? AND is_host = ?", gameID, userID, false).
		Delete(&model.GamePlayer{})
	return res.RowsAffected, res.Error
}

func (r *gameRepository) UpdateFields(ctx context.Context, gameID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Game{}).Where("id = ?", gameID).Updates(fields).Error
}

func (r *gameRepository) SetStatusIf(ctx context.Context, gameID, from, to string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Game{}).
		Where("id = ? AND status = ?", gameID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func syncAll(list []*model.Game) []*model.Game {
	for _, g := range list {
		g.SyncPlayerIDs()
	}
	return list
}
