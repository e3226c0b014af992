package collection

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"collection-manager/core/logger"
	authmw "collection-manager/core/middleware/auth"
	"collection-manager/feature/catalog"
	"collection-manager/feature/collection/models"
	"collection-manager/feature/collection/reconcile"
)

// Handler handles HTTP requests for the collection.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the collection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/collection")
	group.Get("/", h.HandleGetCollection)
	group.Delete("/", h.HandleClearCollection)

	group.Post("/games", h.HandleAddGame)
	group.Get("/games/:id", h.HandleGetGame)
	group.Put("/games/:id", h.HandleUpdateGame)
	group.Delete("/games/:id", h.HandleRemoveGame)

	group.Get("/search/:source", h.HandleSearch)
	group.Get("/game-details/:source/:id", h.HandleGameDetails)

	group.Post("/import/:source", h.HandleImportByIDs)
	group.Post("/import-collection/:source", h.HandleImportCollection)
	group.Post("/sync/:source", h.HandleSync)
}

// HandleGetCollection returns the caller's collection.
// @Summary Get collection
// @Description List the authenticated user's games, sorted.
// @Tags collection
// @Produce json
// @Param sortBy query string false "Sort field (sequence_order, name, year_published, purchase_price, rating, weight, ranking_position, created_at)"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} models.CollectionView "Collection"
// @Router /collection [get]
func (h *Handler) HandleGetCollection(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	view, err := h.service.GetCollection(c.Context(), authmw.UserID(c),
		c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		l.Error("Collection read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load collection"})
	}
	return c.JSON(view)
}

// HandleClearCollection removes every game of the caller.
func (h *Handler) HandleClearCollection(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	removed, err := h.service.Clear(c.Context(), authmw.UserID(c))
	if err != nil {
		l.Error("Collection clear failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not clear collection"})
	}
	return c.JSON(fiber.Map{"removed_count": removed})
}

// HandleAddGame adds a manually created game.
// @Summary Add game
// @Tags collection
// @Accept json
// @Produce json
// @Param payload body GameCreate true "Game payload"
// @Success 201 {object} models.Game "Created game"
// @Failure 400 {object} map[string]string "Duplicate or invalid game"
// @Router /collection/games [post]
func (h *Handler) HandleAddGame(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in GameCreate
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	game, err := h.service.AddGame(c.Context(), authmw.UserID(c), in)
	if err != nil {
		if errors.Is(err, ErrDuplicateGame) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Game add failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

// HandleGetGame returns one game of the caller.
func (h *Handler) HandleGetGame(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
	}

	game, err := h.service.GetGame(c.Context(), authmw.UserID(c), uint(id))
	if err != nil {
		return h.collectionError(c, err)
	}
	return c.JSON(game)
}

// HandleUpdateGame applies a partial update to one game.
func (h *Handler) HandleUpdateGame(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
	}

	var in GameUpdate
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	game, err := h.service.UpdateGame(c.Context(), authmw.UserID(c), uint(id), in)
	if err != nil {
		return h.collectionError(c, err)
	}
	return c.JSON(game)
}

// HandleRemoveGame deletes one game of the caller.
func (h *Handler) HandleRemoveGame(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
	}

	if err := h.service.RemoveGame(c.Context(), authmw.UserID(c), uint(id)); err != nil {
		return h.collectionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSearch searches one remote catalog by name.
// @Summary Search catalog
// @Tags collection
// @Produce json
// @Param source path string true "Catalog source (bgg or ludopedia)"
// @Param query query string true "Game name"
// @Param limit query int false "Max results (default 20)"
// @Success 200 {object} map[string][]catalog.Game "Matches"
// @Router /collection/search/{source} [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	source := catalog.Source(c.Params("source"))
	if !source.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown catalog source"})
	}
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing query"})
	}

	games, err := h.service.Search(c.Context(), source, query, c.QueryInt("limit", 20))
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.JSON(fiber.Map{"games": games})
}

// HandleGameDetails returns the full remote record for one catalog id.
func (h *Handler) HandleGameDetails(c *fiber.Ctx) error {
	source := catalog.Source(c.Params("source"))
	if !source.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown catalog source"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid remote id"})
	}

	detail, err := h.service.GameDetails(c.Context(), source, int64(id), c.Query("credential"))
	if err != nil {
		return h.catalogError(c, err)
	}
	if detail == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found on remote catalog"})
	}
	return c.JSON(detail)
}

// HandleImportByIDs imports a hand-picked list of remote ids.
// @Summary Import games by id
// @Tags collection
// @Accept json
// @Produce json
// @Param source path string true "Catalog source (bgg or ludopedia)"
// @Success 201 {object} map[string]interface{} "Created records and counters"
// @Router /collection/import/{source} [post]
func (h *Handler) HandleImportByIDs(c *fiber.Ctx) error {
	source := catalog.Source(c.Params("source"))
	if !source.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown catalog source"})
	}

	var in struct {
		GameIDs    []int64 `json:"game_ids"`
		Credential string  `json:"credential"`
	}
	if err := c.BodyParser(&in); err != nil || len(in.GameIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing game_ids"})
	}

	created, result, err := h.service.ImportByIDs(c.Context(), authmw.UserID(c), source, in.GameIDs, in.Credential)
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(importResponse(created, result))
}

// HandleImportCollection imports the full remote collection, add-only.
func (h *Handler) HandleImportCollection(c *fiber.Ctx) error {
	source := catalog.Source(c.Params("source"))
	if !source.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown catalog source"})
	}

	created, result, err := h.service.ImportCollection(c.Context(), authmw.UserID(c), source, h.credentialParam(c))
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(importResponse(created, result))
}

// importResponse pairs the created records with the run's counters.
func importResponse(created []models.Game, result reconcile.Result) fiber.Map {
	if created == nil {
		created = []models.Game{}
	}
	return fiber.Map{
		"games":        created,
		"added":        result.Added,
		"total_remote": result.TotalRemote,
	}
}

// HandleSync reconciles the collection against the remote account.
// @Summary Sync collection
// @Description Add, refresh and remove games to mirror the remote account.
// @Tags collection
// @Produce json
// @Param source path string true "Catalog source (bgg or ludopedia)"
// @Success 200 {object} reconcile.Result "Sync counters"
// @Failure 401 {object} map[string]string "Missing or rejected credential"
// @Failure 502 {object} map[string]string "Remote catalog unavailable"
// @Router /collection/sync/{source} [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	source := catalog.Source(c.Params("source"))
	if !source.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown catalog source"})
	}

	result, err := h.service.SyncCollection(c.Context(), authmw.UserID(c), source, h.credentialParam(c))
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.JSON(result)
}

// credentialParam accepts the credential as query parameter (BGG username
// or Ludopedia access token). Empty falls back to the stored token.
func (h *Handler) credentialParam(c *fiber.Ctx) string {
	if v := c.Query("credential"); v != "" {
		return v
	}
	if v := c.Query("username"); v != "" {
		return v
	}
	return c.Query("access_token")
}

func (h *Handler) collectionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrGameNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, ErrBaseGameNotFound) || errors.Is(err, ErrBaseGameCycle) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Collection operation failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func (h *Handler) catalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrUnknownSource):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrMissingCredential), errors.Is(err, catalog.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, catalog.ErrUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reconcile.ErrStoreFailure):
		logger.WithRayID(h.service.logger, c).Error("Sync apply failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.service.logger, c).Error("Catalog operation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
