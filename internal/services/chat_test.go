package services

import (
	"errors"
	"testing"

	apierrors "api/internal/errors"
	"api/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sessionColumns() []string {
	return []string{"id", "user_email", "title"}
}

func expectSession(mock sqlmock.Sqlmock, sessionID uuid.UUID, ownerEmail string) {
	rows := sqlmock.NewRows(sessionColumns()).
		AddRow(sessionID, ownerEmail, "Tuesday check-in")
	mock.ExpectQuery(`SELECT \* FROM "chat_sessions" WHERE id =`).WillReturnRows(rows)
}

func TestGetSession_Ownership(t *testing.T) {
	t.Run("owner can read", func(t *testing.T) {
		gormDB, mock := newServiceMockDB(t)
		service := ChatService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

		sessionID := uuid.New()
		expectSession(mock, sessionID, "owner@example.com")

		session, err := service.GetSession(
			zap.NewNop(),
			models.UserClaims{Email: "owner@example.com", Role: models.RoleUser},
			uuid.UUIDs{sessionID},
		)

		require.NoError(t, err)
		assert.Equal(t, "Tuesday check-in", session.Title)
	})

	t.Run("someone else gets a 403", func(t *testing.T) {
		gormDB, mock := newServiceMockDB(t)
		service := ChatService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

		sessionID := uuid.New()
		expectSession(mock, sessionID, "owner@example.com")

		_, err := service.GetSession(
			zap.NewNop(),
			models.UserClaims{Email: "intruder@example.com", Role: models.RoleUser},
			uuid.UUIDs{sessionID},
		)

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 403, apiErr.Status)
	})

	t.Run("admins bypass ownership", func(t *testing.T) {
		gormDB, mock := newServiceMockDB(t)
		service := ChatService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

		sessionID := uuid.New()
		expectSession(mock, sessionID, "owner@example.com")

		session, err := service.GetSession(
			zap.NewNop(),
			models.UserClaims{Email: "admin@example.com", Role: models.RoleAdmin},
			uuid.UUIDs{sessionID},
		)

		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", session.UserEmail)
	})
}

func TestSaveMessage(t *testing.T) {
	claims := models.UserClaims{Email: "owner@example.com", Role: models.RoleUser}

	t.Run("saves and bumps the chat counter", func(t *testing.T) {
		gormDB, mock := newServiceMockDB(t)
		service := ChatService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

		sessionID := uuid.New()
		messageID := uuid.New()
		expectSession(mock, sessionID, "owner@example.com")

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "chat_messages" .* RETURNING "id"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(messageID))
		mock.ExpectCommit()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "daily_stats" SET "chat_count"=chat_count`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		message, err := service.SaveMessage(
			zap.NewNop(),
			claims,
			uuid.UUIDs{sessionID},
			models.ChatMessageBody{Sender: "user", Content: "hello"},
		)

		require.NoError(t, err)
		assert.Equal(t, messageID, message.ID)
		assert.Equal(t, sessionID, message.SessionID)
		assert.Equal(t, "hello", message.Content)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counter failure does not fail the save", func(t *testing.T) {
		gormDB, mock := newServiceMockDB(t)
		service := ChatService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

		sessionID := uuid.New()
		expectSession(mock, sessionID, "owner@example.com")

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "chat_messages" .* RETURNING "id"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
		mock.ExpectCommit()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "daily_stats"`).
			WillReturnError(errors.New("daily_stats is unreachable"))
		mock.ExpectRollback()

		message, err := service.SaveMessage(
			zap.NewNop(),
			claims,
			uuid.UUIDs{sessionID},
			models.ChatMessageBody{Sender: "assistant", Content: "I hear you"},
		)

		require.NoError(t, err)
		assert.Equal(t, "I hear you", message.Content)
	})

	t.Run("does not write into a foreign session", func(t *testing.T) {
		gormDB, mock := newServiceMockDB(t)
		service := ChatService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

		sessionID := uuid.New()
		expectSession(mock, sessionID, "someone-else@example.com")

		_, err := service.SaveMessage(
			zap.NewNop(),
			claims,
			uuid.UUIDs{sessionID},
			models.ChatMessageBody{Sender: "user", Content: "hello"},
		)

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 403, apiErr.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteSession(t *testing.T) {
	gormDB, mock := newServiceMockDB(t)
	activityLogger := &MockActivityLogger{}
	service := ChatService{DB: gormDB, ActivityLogger: activityLogger}

	sessionID := uuid.New()
	expectSession(mock, sessionID, "owner@example.com")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "chat_messages"`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "chat_sessions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := service.DeleteSession(
		zap.NewNop(),
		models.UserClaims{UserID: uuid.New(), Email: "owner@example.com", Role: models.RoleUser},
		uuid.UUIDs{sessionID},
	)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, activityLogger.sent, 1)
	assert.Equal(t, sessionID.String(), activityLogger.sent[0].Filter.Fields["session_id"])
}
