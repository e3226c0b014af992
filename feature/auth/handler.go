package auth

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"collection-manager/core/logger"
	authmw "collection-manager/core/middleware/auth"
)

// Handler handles HTTP requests for authentication and accounts.
type Handler struct {
	service     *Service
	frontendURL string
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, frontendURL string) *Handler {
	return &Handler{service: service, frontendURL: frontendURL}
}

// RegisterRoutes registers the auth routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/auth")
	group.Post("/register", h.HandleRegister)
	group.Post("/login", h.HandleLogin)
	group.Get("/me", h.HandleMe)
	group.Put("/me", h.HandleUpdateProfile)
	group.Post("/me/avatar", h.HandleUploadAvatar)
	group.Get("/users/:id", h.HandleGetUser)

	group.Get("/google/login", h.HandleGoogleLogin)
	group.Get("/google/callback", h.HandleGoogleCallback)

	group.Get("/ludopedia/authorize", h.HandleLudopediaAuthorize)
	group.Post("/ludopedia/callback", h.HandleLudopediaCallback)
}

// HandleRegister creates a new account.
// @Summary Register
// @Description Create a new account with username, email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body RegisterInput true "Registration payload"
// @Success 201 {object} models.User "Created account"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Router /auth/register [post]
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	user, err := h.service.Register(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken), errors.Is(err, ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			l.Error("Registration failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "registration failed"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleLogin authenticates a user and returns an access token.
// @Summary Login
// @Description Exchange username and password for a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Access token"
// @Failure 401 {object} map[string]string "Bad credentials"
// @Router /auth/login [post]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	signed, _, err := h.service.Login(c.Context(), in.Username, in.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "login failed"})
	}

	return c.JSON(fiber.Map{"access_token": signed, "token_type": "bearer"})
}

// HandleMe returns the authenticated account.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User "Account"
// @Router /auth/me [get]
func (h *Handler) HandleMe(c *fiber.Ctx) error {
	user, err := h.service.Me(c.Context(), authmw.UserID(c))
	if err != nil {
		return h.accountError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdateProfile changes the editable profile fields.
func (h *Handler) HandleUpdateProfile(c *fiber.Ctx) error {
	var in ProfileUpdate
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	user, err := h.service.UpdateProfile(c.Context(), authmw.UserID(c), in)
	if err != nil {
		return h.accountError(c, err)
	}
	return c.JSON(user)
}

// HandleUploadAvatar stores a profile picture in media storage.
func (h *Handler) HandleUploadAvatar(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file field"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable file"})
	}
	defer file.Close()

	object, err := h.service.UploadAvatar(c.Context(), authmw.UserID(c),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		l.Error("Avatar upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "avatar upload failed"})
	}

	return c.JSON(fiber.Map{"picture_url": object})
}

// HandleGetUser returns a public account profile.
func (h *Handler) HandleGetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	user, err := h.service.GetUser(c.Context(), uint(id))
	if err != nil {
		return h.accountError(c, err)
	}
	return c.JSON(user)
}

// HandleGoogleLogin returns the Google consent page URL.
func (h *Handler) HandleGoogleLogin(c *fiber.Ctx) error {
	u, err := h.service.GoogleAuthorizeURL()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"authorization_url": u})
}

// HandleGoogleCallback completes the Google flow and redirects to the
// frontend carrying the access token.
func (h *Handler) HandleGoogleCallback(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	code := c.Query("code")
	if code == "" {
		return c.Redirect(h.frontendURL + "/login?error=google_auth_failed")
	}

	signed, _, err := h.service.GoogleSignIn(c.Context(), code)
	if err != nil {
		l.Error("Google sign-in failed", zap.Error(err))
		return c.Redirect(h.frontendURL + "/login?error=google_auth_failed")
	}

	return c.Redirect(h.frontendURL + "/auth/google/callback?token=" + url.QueryEscape(signed))
}

// HandleLudopediaAuthorize returns the Ludopedia consent page URL.
func (h *Handler) HandleLudopediaAuthorize(c *fiber.Ctx) error {
	u, err := h.service.LudopediaAuthorizeURL()
	if err != nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"authorize_url": u})
}

// HandleLudopediaCallback exchanges the authorization code and links the
// Ludopedia account to the authenticated user.
func (h *Handler) HandleLudopediaCallback(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&in); err != nil || in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing authorization code"})
	}

	accessToken, err := h.service.LinkLudopedia(c.Context(), authmw.UserID(c), in.Code)
	if err != nil {
		if errors.Is(err, ErrProviderDisabled) {
			return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Ludopedia linking failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not link ludopedia account"})
	}

	return c.JSON(fiber.Map{"access_token": accessToken, "token_type": "bearer"})
}

func (h *Handler) accountError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Account operation failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
