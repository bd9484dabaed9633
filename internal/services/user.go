package services

import (
	"api/internal/handlers"
	"api/internal/models"
	"api/internal/sql"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func (s UserService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/me", handlers.GetOneHandler(s.GetMe))
	return r
}

func (s UserService) GetMe(
	logger *zap.Logger,
	claims models.UserClaims,
	_ uuid.UUIDs,
) (models.Profile, error) {
	user, err := sql.GetUserByID(s.DB, claims.UserID)
	if err != nil {
		logger.Error("Failed to load profile", zap.Error(err))
		return models.Profile{}, err
	}
	return user.ToProfile(), nil
}
