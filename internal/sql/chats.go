package sql

import (
	"errors"

	apierrors "api/internal/errors"
	"api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CreateChatSession(db *gorm.DB, session *models.ChatSession) error {
	return db.Create(session).Error
}

func GetChatSessionByID(db *gorm.DB, sessionID uuid.UUID) (models.ChatSession, error) {
	var session models.ChatSession

	if err := db.Where("id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ChatSession{}, apierrors.NewAPIError(404, apierrors.ErrSessionNotFound)
		}
		return models.ChatSession{}, err
	}

	return session, nil
}

func GetChatSessionsByUser(db *gorm.DB, userEmail string) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := db.Where("user_email = ?", userEmail).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func CreateChatMessage(db *gorm.DB, message *models.ChatMessage) error {
	return db.Create(message).Error
}

func GetChatMessagesBySession(db *gorm.DB, sessionID uuid.UUID) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// DeleteChatSession removes a session and its messages atomically.
func DeleteChatSession(db *gorm.DB, sessionID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ChatMessage{}, "session_id = ?", sessionID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ChatSession{}, "id = ?", sessionID).Error
	})
}
