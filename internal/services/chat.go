package services

import (
	"time"

	"api/internal/activity"
	apierrors "api/internal/errors"
	"api/internal/handlers"
	m "api/internal/middlewares"
	"api/internal/models"
	"api/internal/sql"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ChatService struct {
	DB             *gorm.DB
	ActivityLogger activity.IActivityLogger
}

func (s ChatService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", handlers.GetListHandler(s.GetSessions))
	r.With(m.Validate[models.ChatSessionBody]).Post("/", handlers.CreateHandler(s.CreateSession))

	r.Route("/{id0}", func(r chi.Router) {
		r.Get("/", handlers.GetOneHandler(s.GetSession))
		r.Delete("/", handlers.DeleteHandler(s.DeleteSession))
		r.Get("/messages", handlers.GetListHandler(s.GetMessages))
		r.With(m.Validate[models.ChatMessageBody]).
			Post("/messages", handlers.CreateHandler(s.SaveMessage))
	})

	return r
}

// loadOwnedSession fetches a session and enforces ownership. Admins may
// read and delete any session.
func (s ChatService) loadOwnedSession(
	claims models.UserClaims,
	sessionID uuid.UUID,
) (models.ChatSession, error) {
	session, err := sql.GetChatSessionByID(s.DB, sessionID)
	if err != nil {
		return models.ChatSession{}, err
	}

	if session.UserEmail != claims.Email && claims.Role != models.RoleAdmin {
		return models.ChatSession{}, apierrors.NewAPIError(403, "FORBIDDEN")
	}

	return session, nil
}

func (s ChatService) GetSessions(
	logger *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
) ([]models.ChatSession, error) {
	sessions, err := sql.GetChatSessionsByUser(s.DB, claims.Email)
	if err != nil {
		logger.Error("Failed to list chat sessions", zap.Error(err))
		return nil, err
	}
	return sessions, nil
}

func (s ChatService) CreateSession(
	logger *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
	body models.ChatSessionBody,
) (models.ChatSession, error) {
	session := models.ChatSession{
		UserEmail: claims.Email,
		Title:     body.Title,
	}

	if err := sql.CreateChatSession(s.DB, &session); err != nil {
		logger.Error("Failed to create chat session", zap.Error(err))
		return models.ChatSession{}, err
	}

	return session, nil
}

func (s ChatService) GetSession(
	_ *zap.Logger,
	claims models.UserClaims,
	ids uuid.UUIDs,
) (models.ChatSession, error) {
	return s.loadOwnedSession(claims, ids[0])
}

func (s ChatService) GetMessages(
	logger *zap.Logger,
	claims models.UserClaims,
	ids uuid.UUIDs,
) ([]models.ChatMessage, error) {
	if _, err := s.loadOwnedSession(claims, ids[0]); err != nil {
		return nil, err
	}

	messages, err := sql.GetChatMessagesBySession(s.DB, ids[0])
	if err != nil {
		logger.Error("Failed to list chat messages", zap.Error(err))
		return nil, err
	}
	return messages, nil
}

func (s ChatService) SaveMessage(
	logger *zap.Logger,
	claims models.UserClaims,
	ids uuid.UUIDs,
	body models.ChatMessageBody,
) (models.ChatMessage, error) {
	if _, err := s.loadOwnedSession(claims, ids[0]); err != nil {
		return models.ChatMessage{}, err
	}

	chatMessage := models.ChatMessage{
		SessionID: ids[0],
		Sender:    body.Sender,
		Content:   body.Content,
	}

	if err := sql.CreateChatMessage(s.DB, &chatMessage); err != nil {
		logger.Error("Failed to save chat message", zap.Error(err))
		return models.ChatMessage{}, err
	}

	// Counter writes are best effort; a failed metric never fails the save.
	if statErr := sql.RecordChat(s.DB, time.Now()); statErr != nil {
		logger.Error("Failed to record chat counter", zap.Error(statErr))
	}

	return chatMessage, nil
}

func (s ChatService) DeleteSession(
	logger *zap.Logger,
	claims models.UserClaims,
	ids uuid.UUIDs,
) error {
	session, err := s.loadOwnedSession(claims, ids[0])
	if err != nil {
		return err
	}

	if err = sql.DeleteChatSession(s.DB, session.ID); err != nil {
		logger.Error("Failed to delete chat session", zap.Error(err))
		return err
	}

	action := models.Activity{
		Message: activity.ChatSessionDeleted,
		Object: map[string]any{
			"id":    session.ID.String(),
			"title": session.Title,
		},
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.ChatSessionDeleted,
			"user_id":     claims.UserID.String(),
			"session_id":  session.ID.String(),
			"object_type": "chat_session",
		}),
	}
	if logErr := s.ActivityLogger.Send(action); logErr != nil {
		logger.Error("Failed to log session deletion", zap.Error(logErr))
	}

	return nil
}
