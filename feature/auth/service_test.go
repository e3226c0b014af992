package auth

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"collection-manager/core/token"
	"collection-manager/feature/auth/oauth"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
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

	return gormDB, mock
}

func newTestService(db *gorm.DB) *Service {
	tokens := token.NewManager(token.Config{Secret: "test-secret", ExpireMinutes: 30})
	return NewService(db, tokens, nil, nil, oauth.Config{}, nil, "media", zap.NewNop())
}

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count(*)"}).AddRow(n)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Username: "ab", Password: "secret1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Username: "alice", Password: "123"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "not-an-email", Username: "alice", Password: "secret1"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterUsernameTaken(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := newTestService(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE username = \\?").
		WithArgs("alice").
		WillReturnRows(countRows(1))

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "alice@example.com", Username: "alice", Password: "secret1",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterCreatesUser(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := newTestService(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE username = \\?").
		WithArgs("alice").
		WillReturnRows(countRows(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE email = \\?").
		WithArgs("alice@example.com").
		WillReturnRows(countRows(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user, err := svc.Register(context.Background(), RegisterInput{
		Email: "alice@example.com", Username: "alice", Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret1", user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("secret1")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func userRows(t *testing.T, id uint, username, password string) *sqlmock.Rows {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "email", "username", "hashed_password", "is_active"}).
		AddRow(id, username+"@example.com", username, string(hash), true)
}

func TestLogin(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := newTestService(db)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WithArgs("alice", 1).
		WillReturnRows(userRows(t, 1, "alice", "secret1"))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET `last_login`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	signed, user, err := svc.Login(context.Background(), "alice", "secret1")

	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.NotNil(t, user.LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := newTestService(db)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WithArgs("alice", 1).
		WillReturnRows(userRows(t, 1, "alice", "secret1"))

	_, _, err := svc.Login(context.Background(), "alice", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := newTestService(db)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMeNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := newTestService(db)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE `users`.`id` = \\?").
		WithArgs(99, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Me(context.Background(), 99)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProviderDisabled(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.GoogleAuthorizeURL()
	assert.ErrorIs(t, err, ErrProviderDisabled)

	_, err = svc.LudopediaAuthorizeURL()
	assert.ErrorIs(t, err, ErrProviderDisabled)

	_, err = svc.LinkLudopedia(context.Background(), 1, "code")
	assert.ErrorIs(t, err, ErrProviderDisabled)
}
