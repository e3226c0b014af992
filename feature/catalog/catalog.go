package catalog

import "context"

// Source identifies one remote catalog provider.
type Source string

const (
	// SourceBGG is the BoardGameGeek XML API.
	SourceBGG Source = "bgg"
	// SourceLudopedia is the Ludopedia JSON API.
	SourceLudopedia Source = "ludopedia"
)

// Valid reports whether s names a known source.
func (s Source) Valid() bool {
	return s == SourceBGG || s == SourceLudopedia
}

// Kind classifies a remote game record.
type Kind string

const (
	KindBase      Kind = "BASE"
	KindExpansion Kind = "EXPANSION"
)

// Game is the normalized record shape both remote catalogs map into.
// Name may be blank; consumers must validate it before creating local
// records. Pointer fields are absent when the source did not provide them.
type Game struct {
	RemoteID      int64    `json:"remote_id"`
	Name          string   `json:"name"`
	Description   *string  `json:"description,omitempty"`
	YearPublished *int     `json:"year_published,omitempty"`
	Kind          Kind     `json:"kind"`
	MinPlayers    *int     `json:"min_players,omitempty"`
	MaxPlayers    *int     `json:"max_players,omitempty"`
	MinPlaytime   *int     `json:"min_playtime,omitempty"`
	MaxPlaytime   *int     `json:"max_playtime,omitempty"`
	MinAge        *int     `json:"min_age,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	RankPosition  *int     `json:"rank_position,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
	// SequenceOrder is the record's position in the remote collection,
	// when the source exposes a stable display order.
	SequenceOrder *int `json:"sequence_order,omitempty"`
}

// Client is the contract every remote catalog implementation satisfies.
//
// The credential parameter is source-specific: the remote username for BGG,
// an OAuth access token for Ludopedia. Search needs no credential on either
// source.
type Client interface {
	// Source returns the catalog this client talks to.
	Source() Source
	// Search returns up to limit games matching the query.
	Search(ctx context.Context, query string, limit int) ([]Game, error)
	// FetchDetails returns the full record for one remote id, or (nil, nil)
	// when the id does not exist on the remote.
	FetchDetails(ctx context.Context, remoteID int64, credential string) (*Game, error)
	// FetchUserCollection returns the games the remote account owns.
	FetchUserCollection(ctx context.Context, credential string) ([]Game, error)
}
