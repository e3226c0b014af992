package models

import (
	"time"

	"collection-manager/feature/catalog"
)

// GameType classifies a game in the collection.
type GameType string

const (
	GameTypeBase      GameType = "BASE"
	GameTypeExpansion GameType = "EXPANSION"
)

// Game is one board game owned by a user.
//
// Fields sourced from a remote catalog (name, year, player counts, rating,
// weight, ranking, description, image) are remote-owned: reconciliation
// overwrites them on every sync. Commercial/ownership state (trade/sale
// flags, condition, price, notes) is local-owned and never touched by sync.
type Game struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;uniqueIndex:uq_games_owner_ludopedia,priority:1;uniqueIndex:uq_games_owner_bgg,priority:1;not null" json:"user_id"`

	Name          string   `gorm:"not null" json:"name"`
	Description   *string  `gorm:"type:text" json:"description"`
	YearPublished *int     `json:"year_published"`
	GameType      GameType `gorm:"type:varchar(16);default:BASE;not null" json:"game_type"`
	// BaseGameID references the base game (same owner) when this record is
	// an expansion.
	BaseGameID *uint `json:"base_game_id"`

	// Remote identities, one per catalog source.
	LudopediaID *int64 `gorm:"uniqueIndex:uq_games_owner_ludopedia,priority:2" json:"ludopedia_id"`
	BGGID       *int64 `gorm:"uniqueIndex:uq_games_owner_bgg,priority:2" json:"bgg_id"`
	// SequenceOrder is the source-provided display order of the collection.
	SequenceOrder *int `json:"sequence_order"`

	MinPlayers      *int     `json:"min_players"`
	MaxPlayers      *int     `json:"max_players"`
	MinPlaytime     *int     `json:"min_playtime"`
	MaxPlaytime     *int     `json:"max_playtime"`
	MinAge          *int     `json:"min_age"`
	Rating          *float64 `json:"rating"`
	Weight          *float64 `json:"weight"`
	RankingPosition *int     `json:"ranking_position"`

	IsForTrade    bool     `gorm:"default:false;not null" json:"is_for_trade"`
	IsForSale     bool     `gorm:"default:false;not null" json:"is_for_sale"`
	Condition     *string  `gorm:"type:varchar(32)" json:"condition"`
	Price         *float64 `json:"price"`
	PurchasePrice *float64 `json:"purchase_price"`
	Notes         *string  `gorm:"type:text" json:"notes"`

	ImageURL *string `json:"image_url"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// RemoteID returns this record's id on the given source, or nil when the
// record is not linked to that source.
func (g *Game) RemoteID(source catalog.Source) *int64 {
	switch source {
	case catalog.SourceBGG:
		return g.BGGID
	case catalog.SourceLudopedia:
		return g.LudopediaID
	default:
		return nil
	}
}

// SetRemoteID links this record to an id on the given source.
func (g *Game) SetRemoteID(source catalog.Source, id int64) {
	switch source {
	case catalog.SourceBGG:
		g.BGGID = &id
	case catalog.SourceLudopedia:
		g.LudopediaID = &id
	}
}

// ApplyRemote overwrites the remote-owned fields from a normalized catalog
// record. Local-owned fields are deliberately left alone.
func (g *Game) ApplyRemote(r catalog.Game) {
	g.Name = r.Name
	g.Description = r.Description
	g.YearPublished = r.YearPublished
	g.GameType = GameTypeFromKind(r.Kind)
	g.SequenceOrder = r.SequenceOrder
	g.MinPlayers = r.MinPlayers
	g.MaxPlayers = r.MaxPlayers
	g.MinPlaytime = r.MinPlaytime
	g.MaxPlaytime = r.MaxPlaytime
	g.MinAge = r.MinAge
	g.Rating = r.Rating
	g.Weight = r.Weight
	g.RankingPosition = r.RankPosition
	g.PurchasePrice = r.PurchasePrice
	g.ImageURL = r.ImageURL
}

// NewFromRemote builds a fresh record for an owner from a catalog record.
// Local-owned fields start at their defaults.
func NewFromRemote(ownerID uint, source catalog.Source, r catalog.Game) Game {
	g := Game{
		UserID:     ownerID,
		IsForTrade: false,
		IsForSale:  false,
	}
	g.ApplyRemote(r)
	g.SetRemoteID(source, r.RemoteID)
	return g
}

// GameTypeFromKind maps a catalog kind to the local game type.
func GameTypeFromKind(k catalog.Kind) GameType {
	if k == catalog.KindExpansion {
		return GameTypeExpansion
	}
	return GameTypeBase
}

// GameView is the response projection of a Game, enriched with the name of
// its base game when the record is an expansion.
type GameView struct {
	Game
	BaseGameName *string `json:"base_game_name"`
}

// CollectionView is the response shape of a full collection read.
type CollectionView struct {
	UserID     uint       `json:"user_id"`
	TotalGames int        `json:"total_games"`
	Games      []GameView `json:"games"`
}
