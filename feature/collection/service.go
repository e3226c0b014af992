package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	authmodels "collection-manager/feature/auth/models"
	"collection-manager/feature/catalog"
	"collection-manager/feature/collection/models"
	"collection-manager/feature/collection/reconcile"
)

var (
	// ErrGameNotFound is returned when the record is not in the caller's
	// collection.
	ErrGameNotFound = errors.New("game not found in collection")
	// ErrDuplicateGame is returned when the collection already holds the
	// remote id being added.
	ErrDuplicateGame = errors.New("game already in collection")
	// ErrBaseGameNotFound is returned when an expansion references a base
	// game the caller does not own.
	ErrBaseGameNotFound = errors.New("base game not found in collection")
	// ErrBaseGameCycle is returned when a base game reference would make a
	// record its own ancestor.
	ErrBaseGameCycle = errors.New("base game reference creates a cycle")
	// ErrUnknownSource is returned for a catalog name that is not bgg or
	// ludopedia.
	ErrUnknownSource = errors.New("unknown catalog source")
	// ErrMissingCredential is returned when no credential was provided and
	// none is stored for the account.
	ErrMissingCredential = errors.New("missing catalog credential")
)

// GameCreate carries the fields accepted when adding a game by hand.
type GameCreate struct {
	Name          string           `json:"name"`
	Description   *string          `json:"description"`
	YearPublished *int             `json:"year_published"`
	GameType      *models.GameType `json:"game_type"`
	BaseGameID    *uint            `json:"base_game_id"`
	LudopediaID   *int64           `json:"ludopedia_id"`
	BGGID         *int64           `json:"bgg_id"`
	MinPlayers    *int             `json:"min_players"`
	MaxPlayers    *int             `json:"max_players"`
	MinPlaytime   *int             `json:"min_playtime"`
	MaxPlaytime   *int             `json:"max_playtime"`
	MinAge        *int             `json:"min_age"`
	Rating        *float64         `json:"rating"`
	Weight        *float64         `json:"weight"`
	IsForTrade    *bool            `json:"is_for_trade"`
	IsForSale     *bool            `json:"is_for_sale"`
	Condition     *string          `json:"condition"`
	Price         *float64         `json:"price"`
	PurchasePrice *float64         `json:"purchase_price"`
	Notes         *string          `json:"notes"`
	ImageURL      *string          `json:"image_url"`
}

// GameUpdate carries a partial update; nil fields are left unchanged.
type GameUpdate struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	YearPublished *int             `json:"year_published"`
	GameType      *models.GameType `json:"game_type"`
	BaseGameID    *uint            `json:"base_game_id"`
	SequenceOrder *int             `json:"sequence_order"`
	MinPlayers    *int             `json:"min_players"`
	MaxPlayers    *int             `json:"max_players"`
	MinPlaytime   *int             `json:"min_playtime"`
	MaxPlaytime   *int             `json:"max_playtime"`
	MinAge        *int             `json:"min_age"`
	Rating        *float64         `json:"rating"`
	Weight        *float64         `json:"weight"`
	IsForTrade    *bool            `json:"is_for_trade"`
	IsForSale     *bool            `json:"is_for_sale"`
	Condition     *string          `json:"condition"`
	Price         *float64         `json:"price"`
	PurchasePrice *float64         `json:"purchase_price"`
	Notes         *string          `json:"notes"`
	ImageURL      *string          `json:"image_url"`
}

// Service implements collection reads, writes and catalog operations.
type Service struct {
	db      *gorm.DB
	engine  *reconcile.Engine
	clients map[catalog.Source]catalog.Client
	delay   time.Duration
	logger  *zap.Logger
}

// NewService creates the collection service.
func NewService(db *gorm.DB, engine *reconcile.Engine, clients []catalog.Client, delay time.Duration, logger *zap.Logger) *Service {
	bySource := make(map[catalog.Source]catalog.Client, len(clients))
	for _, c := range clients {
		bySource[c.Source()] = c
	}
	return &Service{
		db:      db,
		engine:  engine,
		clients: bySource,
		delay:   delay,
		logger:  logger,
	}
}

// GetCollection returns the caller's full collection, sorted.
func (s *Service) GetCollection(ctx context.Context, userID uint, sortBy, sortOrder string) (*models.CollectionView, error) {
	column, direction := normalizeSort(sortBy, sortOrder)

	var games []models.Game
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(orderClause(column, direction)).
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("loading collection: %w", err)
	}

	views, err := s.withBaseGameNames(ctx, userID, games)
	if err != nil {
		return nil, err
	}

	return &models.CollectionView{
		UserID:     userID,
		TotalGames: len(games),
		Games:      views,
	}, nil
}

// withBaseGameNames resolves the base game's name for every expansion in
// one extra query.
func (s *Service) withBaseGameNames(ctx context.Context, userID uint, games []models.Game) ([]models.GameView, error) {
	baseIDs := make([]uint, 0)
	seen := make(map[uint]struct{})
	for _, g := range games {
		if g.BaseGameID != nil {
			if _, ok := seen[*g.BaseGameID]; !ok {
				seen[*g.BaseGameID] = struct{}{}
				baseIDs = append(baseIDs, *g.BaseGameID)
			}
		}
	}

	names := make(map[uint]string, len(baseIDs))
	if len(baseIDs) > 0 {
		var bases []models.Game
		err := s.db.WithContext(ctx).
			Select("id", "name").
			Where("user_id = ? AND id IN ?", userID, baseIDs).
			Find(&bases).Error
		if err != nil {
			return nil, fmt.Errorf("loading base games: %w", err)
		}
		for _, b := range bases {
			names[b.ID] = b.Name
		}
	}

	views := make([]models.GameView, 0, len(games))
	for _, g := range games {
		view := models.GameView{Game: g}
		if g.BaseGameID != nil {
			if name, ok := names[*g.BaseGameID]; ok {
				view.BaseGameName = &name
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// AddGame inserts a manually created record into the collection.
func (s *Service) AddGame(ctx context.Context, userID uint, in GameCreate) (*models.Game, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("game name is required")
	}

	if in.LudopediaID != nil {
		if err := s.ensureAbsent(ctx, userID, "ludopedia_id", *in.LudopediaID); err != nil {
			return nil, err
		}
	}
	if in.BGGID != nil {
		if err := s.ensureAbsent(ctx, userID, "bgg_id", *in.BGGID); err != nil {
			return nil, err
		}
	}
	if in.BaseGameID != nil {
		if err := s.ensureOwned(ctx, userID, *in.BaseGameID); err != nil {
			return nil, err
		}
	}

	game := models.Game{
		UserID:        userID,
		Name:          in.Name,
		Description:   in.Description,
		YearPublished: in.YearPublished,
		GameType:      models.GameTypeBase,
		BaseGameID:    in.BaseGameID,
		LudopediaID:   in.LudopediaID,
		BGGID:         in.BGGID,
		MinPlayers:    in.MinPlayers,
		MaxPlayers:    in.MaxPlayers,
		MinPlaytime:   in.MinPlaytime,
		MaxPlaytime:   in.MaxPlaytime,
		MinAge:        in.MinAge,
		Rating:        in.Rating,
		Weight:        in.Weight,
		Condition:     in.Condition,
		Price:         in.Price,
		PurchasePrice: in.PurchasePrice,
		Notes:         in.Notes,
		ImageURL:      in.ImageURL,
	}
	if in.GameType != nil {
		game.GameType = *in.GameType
	}
	if in.IsForTrade != nil {
		game.IsForTrade = *in.IsForTrade
	}
	if in.IsForSale != nil {
		game.IsForSale = *in.IsForSale
	}

	if err := s.db.WithContext(ctx).Create(&game).Error; err != nil {
		return nil, fmt.Errorf("adding game: %w", err)
	}
	return &game, nil
}

// GetGame returns one record from the caller's collection.
func (s *Service) GetGame(ctx context.Context, userID, gameID uint) (*models.Game, error) {
	var game models.Game
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", gameID, userID).
		First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading game: %w", err)
	}
	return &game, nil
}

// UpdateGame applies a partial update to one record.
func (s *Service) UpdateGame(ctx context.Context, userID, gameID uint, in GameUpdate) (*models.Game, error) {
	game, err := s.GetGame(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}

	if in.BaseGameID != nil {
		if err := s.ensureNoCycle(ctx, userID, gameID, *in.BaseGameID); err != nil {
			return nil, err
		}
		if err := s.ensureOwned(ctx, userID, *in.BaseGameID); err != nil {
			return nil, err
		}
	}

	applyUpdate(game, in)
	now := time.Now()
	game.UpdatedAt = &now

	if err := s.db.WithContext(ctx).Save(game).Error; err != nil {
		return nil, fmt.Errorf("updating game: %w", err)
	}
	return game, nil
}

// RemoveGame deletes one record from the caller's collection.
func (s *Service) RemoveGame(ctx context.Context, userID, gameID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", gameID, userID).
		Delete(&models.Game{})
	if res.Error != nil {
		return fmt.Errorf("removing game: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrGameNotFound
	}
	return nil
}

// Clear removes every record from the caller's collection and returns the
// removed count.
func (s *Service) Clear(ctx context.Context, userID uint) (int, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Game{})
	if res.Error != nil {
		return 0, fmt.Errorf("clearing collection: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

// Search queries one remote catalog by name.
func (s *Service) Search(ctx context.Context, source catalog.Source, query string, limit int) ([]catalog.Game, error) {
	client, err := s.client(source)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return client.Search(ctx, query, limit)
}

// GameDetails returns the full remote record for one catalog id, or
// (nil, nil) when the remote does not know the id.
func (s *Service) GameDetails(ctx context.Context, source catalog.Source, remoteID int64, credential string) (*catalog.Game, error) {
	client, err := s.client(source)
	if err != nil {
		return nil, err
	}
	return client.FetchDetails(ctx, remoteID, credential)
}

// ImportByIDs fetches each remote id, adds the games the caller does not
// have yet and returns the created records. Unknown ids and already-owned
// games are skipped.
func (s *Service) ImportByIDs(ctx context.Context, userID uint, source catalog.Source, remoteIDs []int64, credential string) ([]models.Game, reconcile.Result, error) {
	client, err := s.client(source)
	if err != nil {
		return nil, reconcile.Result{}, err
	}
	credential, err = s.resolveCredential(ctx, userID, source, credential)
	if err != nil {
		return nil, reconcile.Result{}, err
	}

	var remote []catalog.Game
	for i, id := range remoteIDs {
		if i > 0 {
			// Spacing the detail calls keeps the remote rate limiter happy.
			select {
			case <-ctx.Done():
				return nil, reconcile.Result{}, ctx.Err()
			case <-time.After(s.delay):
			}
		}
		detail, err := client.FetchDetails(ctx, id, credential)
		if err != nil {
			return nil, reconcile.Result{}, err
		}
		if detail == nil {
			s.logger.Warn("remote id not found during import",
				zap.String("source", string(source)), zap.Int64("remote_id", id))
			continue
		}
		remote = append(remote, *detail)
	}

	return s.engine.Import(ctx, userID, source, remote)
}

// ImportCollection adds every game of the remote account's collection the
// caller does not have yet and returns the created records.
func (s *Service) ImportCollection(ctx context.Context, userID uint, source catalog.Source, credential string) ([]models.Game, reconcile.Result, error) {
	remote, err := s.fetchRemoteCollection(ctx, userID, source, credential)
	if err != nil {
		return nil, reconcile.Result{}, err
	}
	return s.engine.Import(ctx, userID, source, remote)
}

// SyncCollection reconciles the caller's collection against the remote
// account: new games are added, known games refreshed and games gone from
// the remote removed.
func (s *Service) SyncCollection(ctx context.Context, userID uint, source catalog.Source, credential string) (reconcile.Result, error) {
	remote, err := s.fetchRemoteCollection(ctx, userID, source, credential)
	if err != nil {
		return reconcile.Result{}, err
	}
	return s.engine.Sync(ctx, userID, source, remote)
}

func (s *Service) fetchRemoteCollection(ctx context.Context, userID uint, source catalog.Source, credential string) ([]catalog.Game, error) {
	client, err := s.client(source)
	if err != nil {
		return nil, err
	}
	credential, err = s.resolveCredential(ctx, userID, source, credential)
	if err != nil {
		return nil, err
	}

	remote, err := client.FetchUserCollection(ctx, credential)
	if err != nil {
		return nil, err
	}
	// An empty remote collection aborts rather than emptying the local one;
	// a deliberate wipe goes through DELETE /collection.
	if len(remote) == 0 {
		return nil, fmt.Errorf("%w: remote collection is empty", catalog.ErrUnavailable)
	}
	return remote, nil
}

// resolveCredential falls back to the account's stored Ludopedia token
// when the request carries none.
func (s *Service) resolveCredential(ctx context.Context, userID uint, source catalog.Source, provided string) (string, error) {
	if provided != "" {
		return provided, nil
	}
	if source != catalog.SourceLudopedia {
		return "", ErrMissingCredential
	}

	var user authmodels.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		return "", fmt.Errorf("loading account: %w", err)
	}
	if user.LudopediaAccessToken == nil || *user.LudopediaAccessToken == "" {
		return "", ErrMissingCredential
	}
	return *user.LudopediaAccessToken, nil
}

func (s *Service) client(source catalog.Source) (catalog.Client, error) {
	client, ok := s.clients[source]
	if !ok {
		return nil, ErrUnknownSource
	}
	return client, nil
}

func (s *Service) ensureAbsent(ctx context.Context, userID uint, column string, remoteID int64) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Game{}).
		Where("user_id = ? AND "+column+" = ?", userID, remoteID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("checking %s: %w", column, err)
	}
	if count > 0 {
		return ErrDuplicateGame
	}
	return nil
}

// maxBaseChainDepth bounds the ancestry walk; chains deeper than this are
// treated as cycles.
const maxBaseChainDepth = 25

// ensureNoCycle rejects a base reference that would make the record its own
// ancestor, following base_game_id links until the chain ends.
func (s *Service) ensureNoCycle(ctx context.Context, userID, gameID, baseID uint) error {
	current := baseID
	for depth := 0; depth < maxBaseChainDepth; depth++ {
		if current == gameID {
			return ErrBaseGameCycle
		}
		var game models.Game
		err := s.db.WithContext(ctx).
			Select("base_game_id").
			Where("id = ? AND user_id = ?", current, userID).
			First(&game).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("walking base game chain: %w", err)
		}
		if game.BaseGameID == nil {
			return nil
		}
		current = *game.BaseGameID
	}
	return ErrBaseGameCycle
}

// ensureOwned verifies that the referenced base game belongs to the caller.
func (s *Service) ensureOwned(ctx context.Context, userID, baseGameID uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Game{}).
		Where("id = ? AND user_id = ?", baseGameID, userID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("checking base game: %w", err)
	}
	if count == 0 {
		return ErrBaseGameNotFound
	}
	return nil
}

func applyUpdate(game *models.Game, in GameUpdate) {
	if in.Name != nil {
		game.Name = *in.Name
	}
	if in.Description != nil {
		game.Description = in.Description
	}
	if in.YearPublished != nil {
		game.YearPublished = in.YearPublished
	}
	if in.GameType != nil {
		game.GameType = *in.GameType
	}
	if in.BaseGameID != nil {
		game.BaseGameID = in.BaseGameID
	}
	if in.SequenceOrder != nil {
		game.SequenceOrder = in.SequenceOrder
	}
	if in.MinPlayers != nil {
		game.MinPlayers = in.MinPlayers
	}
	if in.MaxPlayers != nil {
		game.MaxPlayers = in.MaxPlayers
	}
	if in.MinPlaytime != nil {
		game.MinPlaytime = in.MinPlaytime
	}
	if in.MaxPlaytime != nil {
		game.MaxPlaytime = in.MaxPlaytime
	}
	if in.MinAge != nil {
		game.MinAge = in.MinAge
	}
	if in.Rating != nil {
		game.Rating = in.Rating
	}
	if in.Weight != nil {
		game.Weight = in.Weight
	}
	if in.IsForTrade != nil {
		game.IsForTrade = *in.IsForTrade
	}
	if in.IsForSale != nil {
		game.IsForSale = *in.IsForSale
	}
	if in.Condition != nil {
		game.Condition = in.Condition
	}
	if in.Price != nil {
		game.Price = in.Price
	}
	if in.PurchasePrice != nil {
		game.PurchasePrice = in.PurchasePrice
	}
	if in.Notes != nil {
		game.Notes = in.Notes
	}
	if in.ImageURL != nil {
		game.ImageURL = in.ImageURL
	}
}
