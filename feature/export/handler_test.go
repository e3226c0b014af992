package export

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mockDB
}

func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		return c.Next()
	})
	NewHandler(NewService(db, zap.NewNop())).RegisterRoutes(app)
	return app
}

func expectSeller(mockDB sqlmock.Sqlmock) {
	mockDB.ExpectQuery("SELECT \\* FROM `users` WHERE `users`.`id` = \\?").
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "full_name"}).
			AddRow(1, "ana", "Ana Silva"))
}

func TestHandleExportWhatsApp(t *testing.T) {
	db, mockDB := setupMockDB(t)
	app := newTestApp(db)

	expectSeller(mockDB)
	mockDB.ExpectQuery("SELECT \\* FROM `games` WHERE user_id = \\? AND is_for_sale = \\? AND price IS NOT NULL").
		WithArgs(uint(1), true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "price", "is_for_sale"}).
			AddRow(1, 1, "Azul", 150.0, true).
			AddRow(2, 1, "Coup", 40.0, true))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/export/whatsapp", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rendered Rendered
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rendered))
	assert.Equal(t, ChannelWhatsApp, rendered.Channel)
	assert.Equal(t, 2, rendered.ItemCount)
	assert.Equal(t, 190.0, rendered.TotalPrice)
	assert.Contains(t, rendered.Text, "ANA SILVA")
}

func TestHandleExportNothingForSale(t *testing.T) {
	db, mockDB := setupMockDB(t)
	app := newTestApp(db)

	expectSeller(mockDB)
	mockDB.ExpectQuery("SELECT \\* FROM `games` WHERE user_id = \\? AND is_for_sale = \\? AND price IS NOT NULL").
		WithArgs(uint(1), true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/export/email", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleExportUnknownChannel(t *testing.T) {
	app := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/export/telegram", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
