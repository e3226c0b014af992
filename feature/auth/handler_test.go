package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(svc *Service) *fiber.App {
	app := fiber.New()
	// Simulate an upstream guard for the protected routes.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		c.Locals("username", "alice")
		return c.Next()
	})
	NewHandler(svc, "http://localhost:3000").RegisterRoutes(app)
	return app
}

func TestHandleRegisterInvalidPayload(t *testing.T) {
	app := newTestApp(newTestService(nil))

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleRegisterValidationError(t *testing.T) {
	app := newTestApp(newTestService(nil))

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"a@b.c","username":"ab","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleLoginBadCredentials(t *testing.T) {
	db, mock := setupMockDB(t)
	app := newTestApp(newTestService(db))

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WithArgs("alice", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"alice","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleGoogleLoginUnconfigured(t *testing.T) {
	app := newTestApp(newTestService(nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/google/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleLudopediaAuthorizeUnconfigured(t *testing.T) {
	app := newTestApp(newTestService(nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/ludopedia/authorize", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestHandleGetUserInvalidID(t *testing.T) {
	app := newTestApp(newTestService(nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/users/zero", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
