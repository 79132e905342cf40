package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Game is a hosted match at a venue. Membership lives in game_players; the
// host row is inserted with the game and cannot be removed.
// CurrentPlayers always equals len(Players) and never exceeds MaxPlayers.
type Game struct {
	ID                string         `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	HostID            string         `gorm:"column:host_id;type:varchar(128);index;not null" json:"host_id"`
	VenueID           string         `gorm:"column:venue_id;type:varchar(36);index;not null" json:"venue_id"`
	Sport             string         `gorm:"column:sport;type:varchar(64);index;not null" json:"sport"`
	Title             string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description       *string        `gorm:"column:description;type:text" json:"description"`
	Date              string         `gorm:"column:date;type:varchar(10);index;not null;comment:YYYY-MM-DD" json:"date"`
	StartTime         string         `gorm:"column:start_time;type:varchar(5);not null;comment:HH:MM" json:"start_time"`
	EndTime           string         `gorm:"column:end_time;type:varchar(5);not null;comment:HH:MM" json:"end_time"`
	Duration          int            `gorm:"column:duration;not null;comment:minutes" json:"duration"`
	MinPlayers        int            `gorm:"column:min_players;not null" json:"min_players"`
	MaxPlayers        int            `gorm:"column:max_players;not null" json:"max_players"`
	CurrentPlayers    int            `gorm:"column:current_players;not null" json:"current_players"`
	GameType          string         `gorm:"column:game_type;type:varchar(16);not null" json:"game_type"`
	SkillLevel        string         `gorm:"column:skill_level;type:varchar(16);not null" json:"skill_level"`
	GenderPreference  *string        `gorm:"column:gender_preference;type:varchar(16)" json:"gender_preference"`
	AgeGroup          *string        `gorm:"column:age_group;type:varchar(32)" json:"age_group"`
	PricePerPerson    float64        `gorm:"column:price_per_person;not null" json:"price_per_person"`
	TotalCost         float64        `gorm:"column:total_cost;not null" json:"total_cost"`
	SplitCost         bool           `gorm:"column:split_cost;type:boolean;not null" json:"split_cost"`
	Status            string         `gorm:"column:status;type:varchar(16);index;not null" json:"status"`
	Rules             *string        `gorm:"column:rules;type:text" json:"rules"`
	RequiredEquipment datatypes.JSON `gorm:"column:required_equipment" json:"required_equipment"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Players   []GamePlayer `gorm:"foreignKey:GameID" json:"-"`
	PlayerIDs []string     `gorm:"-" json:"player_ids"`
}

// GamePlayer is one membership row. ID order is join order.
type GamePlayer struct {
	ID       uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	GameID   string    `gorm:"column:game_id;type:varchar(36);uniqueIndex:uk_game_player;not null" json:"game_id"`
	UserID   string    `gorm:"column:user_id;type:varchar(128);uniqueIndex:uk_game_player;index;not null" json:"user_id"`
	IsHost   bool      `gorm:"column:is_host;type:boolean;not null" json:"is_host"`
	JoinedAt time.Time `gorm:"column:joined_at;autoCreateTime" json:"joined_at"`
}

func (Game) TableName() string       { return "games" }
func (GamePlayer) TableName() string { return "game_players" }

func (g *Game) BeforeCreate(*gorm.DB) error {
	if g.ID == "" {
		g.ID = newID()
	}
	return nil
}

// SyncPlayerIDs fills PlayerIDs from the loaded Players rows.
func (g *Game) SyncPlayerIDs() {
	g.PlayerIDs = make([]string, 0, len(g.Players))
	for _, p := range g.Players {
		g.PlayerIDs = append(g.PlayerIDs, p.UserID)
	}
}

// HasPlayer reports whether userID is among the loaded members.
func (g *Game) HasPlayer(userID string) bool {
	for _, p := range g.Players {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// Terminal reports whether the game can no longer change membership.
func (g *Game) Terminal() bool {
	return g.Status == GameCompleted || g.Status == GameCancelled
}

// StartsAt is the local start instant. ok is false when Date or StartTime
// cannot be parsed.
func (g *Game) StartsAt(loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02 15:04", g.Date+" "+g.StartTime, loc)
	return t, err == nil
}

// EndsAt prefers Duration and falls back to EndTime on the same date.
func (g *Game) EndsAt(loc *time.Location) (time.Time, bool) {
	start, ok := g.StartsAt(loc)
	if !ok {
		return time.Time{}, false
	}
	if g.Duration > 0 {
		return start.Add(time.Duration(g.Duration) * time.Minute), true
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", g.Date+" "+g.EndTime, loc)
	if err != nil {
		return time.Time{}, false
	}
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return end, true
}
