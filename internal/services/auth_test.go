package services

import (
	"errors"
	"testing"

	"api/internal/activity"
	"api/internal/cache"
	"api/internal/configuration"
	apierrors "api/internal/errors"
	"api/internal/helpers"
	"api/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// --- Mock Activity Logger ---

type MockActivityLogger struct {
	sent []models.Activity
}

func (m *MockActivityLogger) Send(action models.Activity) error {
	m.sent = append(m.sent, action)
	return nil
}

func (m *MockActivityLogger) Search(_ map[string][]string) ([]map[string]any, error) {
	return nil, nil
}

func (m *MockActivityLogger) CountByDay(_ map[string][]string, _ int) ([]models.TimeSeriesPoint, error) {
	return nil, nil
}

func (m *MockActivityLogger) Close() error { return nil }

var _ activity.IActivityLogger = (*MockActivityLogger)(nil)

// --- Mock Cache ---

type MockCache struct {
	attempts    int
	incremented int
	resetCalled bool
}

func (m *MockCache) RegisterPlatform(_ string) error           { return nil }
func (m *MockCache) DeleteInactivePlatform() error             { return nil }
func (m *MockCache) StartIdentityTicker(_ string)              {}
func (m *MockCache) GetRateLimit(_ string, _ int) (int, error) { return 0, nil }
func (m *MockCache) GetLoginAttempts(_ string) (int, error)    { return m.attempts, nil }
func (m *MockCache) IncrementLoginAttempts(_ string) error {
	m.incremented++
	return nil
}
func (m *MockCache) ResetLoginAttempts(_ string) error {
	m.resetCalled = true
	return nil
}
func (m *MockCache) TryAcquireLock(_ string, _ string, _ int) (bool, error) { return true, nil }
func (m *MockCache) RefreshLock(_ string, _ string, _ int) (bool, error)    { return true, nil }
func (m *MockCache) Close() error                                           { return nil }

var _ cache.ICache = (*MockCache)(nil)

// --- Helpers ---

func newServiceMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func userColumns() []string {
	return []string{"id", "email", "hashed_password", "nickname", "phone_number", "role"}
}

func expectUserByEmail(mock sqlmock.Sqlmock, userID uuid.UUID, email, hash string) {
	rows := sqlmock.NewRows(userColumns()).
		AddRow(userID, email, hash, "sora", "010-1234-5678", models.RoleUser)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email =`).WillReturnRows(rows)
}

func testAuthConfig() models.AuthConfig {
	return models.AuthConfig{
		JWTSecret:          "test-secret-key-for-jwt-signing",
		AccessTokenExpiry:  60,
		RefreshTokenExpiry: 600,
		WebURL:             "http://localhost:3000",
	}
}

// --- Tests ---

func TestLogin_Success(t *testing.T) {
	gormDB, mock := newServiceMockDB(t)
	mockCache := &MockCache{}
	activityLogger := &MockActivityLogger{}

	service := AuthService{
		DB:             gormDB,
		Cache:          mockCache,
		AuthConfig:     testAuthConfig(),
		ActivityLogger: activityLogger,
	}

	userID := uuid.New()
	hash, err := helpers.CreateHash("correct-password")
	require.NoError(t, err)

	expectUserByEmail(mock, userID, "test@example.com", hash)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "last_login_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "daily_stats" SET "login_count"=login_count`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	response, err := service.Login(
		zap.NewNop(),
		models.UserClaims{},
		uuid.UUIDs{},
		models.AuthLoginBody{Email: "test@example.com", Password: "correct-password"},
	)

	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.True(t, mockCache.resetCalled)
	assert.Len(t, activityLogger.sent, 1)
	assert.Equal(t, activity.UserLoggedIn, activityLogger.sent[0].Message)

	claims, err := helpers.ParseAccessToken(service.AuthConfig.JWTSecret, "Bearer "+response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestLogin_CounterFailureDoesNotFailLogin(t *testing.T) {
	gormDB, mock := newServiceMockDB(t)

	service := AuthService{
		DB:             gormDB,
		Cache:          &MockCache{},
		AuthConfig:     testAuthConfig(),
		ActivityLogger: &MockActivityLogger{},
	}

	userID := uuid.New()
	hash, err := helpers.CreateHash("correct-password")
	require.NoError(t, err)

	expectUserByEmail(mock, userID, "test@example.com", hash)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "last_login_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// The counter write blows up; the login must still succeed.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "daily_stats"`).
		WillReturnError(errors.New("daily_stats is on fire"))
	mock.ExpectRollback()

	response, err := service.Login(
		zap.NewNop(),
		models.UserClaims{},
		uuid.UUIDs{},
		models.AuthLoginBody{Email: "test@example.com", Password: "correct-password"},
	)

	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	gormDB, mock := newServiceMockDB(t)
	mockCache := &MockCache{}

	service := AuthService{
		DB:             gormDB,
		Cache:          mockCache,
		AuthConfig:     testAuthConfig(),
		ActivityLogger: &MockActivityLogger{},
	}

	hash, err := helpers.CreateHash("correct-password")
	require.NoError(t, err)
	expectUserByEmail(mock, uuid.New(), "test@example.com", hash)

	_, err = service.Login(
		zap.NewNop(),
		models.UserClaims{},
		uuid.UUIDs{},
		models.AuthLoginBody{Email: "test@example.com", Password: "wrong-password"},
	)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, 1, mockCache.incremented)
}

func TestLogin_UnknownEmail(t *testing.T) {
	gormDB, mock := newServiceMockDB(t)

	service := AuthService{
		DB:             gormDB,
		Cache:          &MockCache{},
		AuthConfig:     testAuthConfig(),
		ActivityLogger: &MockActivityLogger{},
	}

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email =`).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := service.Login(
		zap.NewNop(),
		models.UserClaims{},
		uuid.UUIDs{},
		models.AuthLoginBody{Email: "nobody@example.com", Password: "whatever"},
	)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestLogin_LockedOutAfterTooManyAttempts(t *testing.T) {
	gormDB, mock := newServiceMockDB(t)
	mockCache := &MockCache{attempts: configuration.LoginMaxAttempts}

	service := AuthService{
		DB:             gormDB,
		Cache:          mockCache,
		AuthConfig:     testAuthConfig(),
		ActivityLogger: &MockActivityLogger{},
	}

	hash, err := helpers.CreateHash("correct-password")
	require.NoError(t, err)
	expectUserByEmail(mock, uuid.New(), "test@example.com", hash)

	// Even the right password is rejected while locked out.
	_, err = service.Login(
		zap.NewNop(),
		models.UserClaims{},
		uuid.UUIDs{},
		models.AuthLoginBody{Email: "test@example.com", Password: "correct-password"},
	)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 429, apiErr.Status)
}

func TestFindID(t *testing.T) {
	t.Run("returns a masked email on a match", func(t *testing.T) {
		gormDB, mock := newServiceMockDB(t)
		service := AuthService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

		rows := sqlmock.NewRows(userColumns()).
			AddRow(uuid.New(), "soyeon@example.com", "x", "soyeon", "010-1234-5678", models.RoleUser)
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE nickname = .* AND phone_number =`).
			WillReturnRows(rows)

		response, err := service.FindID(
			zap.NewNop(),
			models.UserClaims{},
			uuid.UUIDs{},
			models.FindIDBody{Nickname: "soyeon", PhoneNumber: "010-1234-5678"},
		)

		require.NoError(t, err)
		assert.Equal(t, "so****@example.com", response.MaskedEmail)
	})

	t.Run("404 when nothing matches", func(t *testing.T) {
		gormDB, mock := newServiceMockDB(t)
		service := AuthService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE nickname = .* AND phone_number =`).
			WillReturnRows(sqlmock.NewRows(userColumns()))

		_, err := service.FindID(
			zap.NewNop(),
			models.UserClaims{},
			uuid.UUIDs{},
			models.FindIDBody{Nickname: "ghost", PhoneNumber: "010-0000-0000"},
		)

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.Status)
	})
}
