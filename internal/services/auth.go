package services

import (
	"time"

	"api/internal/activity"
	"api/internal/cache"
	"api/internal/configuration"
	apierrors "api/internal/errors"
	"api/internal/events"
	"api/internal/handlers"
	h "api/internal/helpers"
	"api/internal/messaging"
	m "api/internal/middlewares"
	"api/internal/models"
	"api/internal/sql"

	"github.com/alexedwards/argon2id"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	DB             *gorm.DB
	Cache          cache.ICache
	AuthConfig     models.AuthConfig
	Publisher      messaging.IPublisher
	ActivityLogger activity.IActivityLogger
}

func (s AuthService) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(m.Validate[models.AuthLoginBody]).Post("/login", handlers.CreateHandler(s.Login))
	r.With(m.Validate[models.AuthRefreshBody]).Post("/refresh", handlers.CreateHandler(s.Refresh))
	r.With(m.Validate[models.FindIDBody]).Post("/find-id", handlers.CreateHandler(s.FindID))
	r.With(m.Validate[models.PasswordResetBody]).Post("/reset-password", handlers.CreateHandler(s.ResetPassword))
	return r
}

func (s AuthService) Login(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	body models.AuthLoginBody,
) (models.AuthLoginResponse, error) {
	user, err := sql.GetUserByEmail(s.DB, body.Email)
	if err != nil {
		logger.Error("Failed to look up user", zap.Error(err))
		return models.AuthLoginResponse{}, err
	}
	if user == nil {
		return models.AuthLoginResponse{}, apierrors.NewAPIError(401, apierrors.ErrInvalidCredentials)
	}

	if s.Cache != nil {
		attempts, attemptsErr := s.Cache.GetLoginAttempts(user.ID.String())
		if attemptsErr != nil {
			// Fail open: a cache outage must not block every login.
			logger.Warn("Failed to read login attempts", zap.Error(attemptsErr))
		} else if attempts >= configuration.LoginMaxAttempts {
			return models.AuthLoginResponse{}, apierrors.NewAPIError(429, apierrors.ErrLoginRateLimited)
		}
	}

	match, err := argon2id.ComparePasswordAndHash(body.Password, user.HashedPassword)
	if err != nil || !match {
		if s.Cache != nil {
			if incErr := s.Cache.IncrementLoginAttempts(user.ID.String()); incErr != nil {
				logger.Warn("Failed to increment login attempts", zap.Error(incErr))
			}
		}
		return models.AuthLoginResponse{}, apierrors.NewAPIError(401, apierrors.ErrInvalidCredentials)
	}

	if s.Cache != nil {
		if resetErr := s.Cache.ResetLoginAttempts(user.ID.String()); resetErr != nil {
			logger.Warn("Failed to reset login attempts", zap.Error(resetErr))
		}
	}

	accessToken, err := h.NewAccessToken(s.AuthConfig.JWTSecret, user, s.AuthConfig.AccessTokenExpiry)
	if err != nil {
		logger.Error("Failed to generate access token", zap.Error(err))
		return models.AuthLoginResponse{}, apierrors.ErrGenerateAccessTokenFailed
	}

	refreshToken, err := h.NewRefreshToken(s.AuthConfig.JWTSecret, user, s.AuthConfig.RefreshTokenExpiry)
	if err != nil {
		logger.Error("Failed to generate refresh token", zap.Error(err))
		return models.AuthLoginResponse{}, apierrors.ErrGenerateRefreshTokenFailed
	}

	now := time.Now()
	if touchErr := sql.TouchLastLogin(s.DB, user.ID, now); touchErr != nil {
		logger.Warn("Failed to update last login timestamp", zap.Error(touchErr))
	}

	// Counter writes are best effort; a failed metric never fails the login.
	if statErr := sql.RecordLogin(s.DB, now); statErr != nil {
		logger.Error("Failed to record login counter", zap.Error(statErr))
	}

	action := models.Activity{
		Message: activity.UserLoggedIn,
		Object:  user.ToActivity(),
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.UserLoggedIn,
			"user_id":     user.ID.String(),
			"object_type": "user",
		}),
	}
	if logErr := s.ActivityLogger.Send(action); logErr != nil {
		logger.Error("Failed to log login activity", zap.Error(logErr))
	}

	return models.AuthLoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s AuthService) Refresh(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	body models.AuthRefreshBody,
) (models.AuthRefreshResponse, error) {
	claims, err := h.ParseRefreshToken(s.AuthConfig.JWTSecret, body.RefreshToken)
	if err != nil {
		return models.AuthRefreshResponse{}, apierrors.NewAPIError(401, apierrors.ErrInvalidCredentials)
	}

	// Reload the user so a role change or deletion invalidates old refresh tokens.
	user, err := sql.GetUserByEmail(s.DB, claims.Email)
	if err != nil {
		logger.Error("Failed to look up user", zap.Error(err))
		return models.AuthRefreshResponse{}, err
	}
	if user == nil {
		return models.AuthRefreshResponse{}, apierrors.NewAPIError(401, apierrors.ErrInvalidCredentials)
	}

	accessToken, err := h.NewAccessToken(s.AuthConfig.JWTSecret, user, s.AuthConfig.AccessTokenExpiry)
	if err != nil {
		logger.Error("Failed to generate access token", zap.Error(err))
		return models.AuthRefreshResponse{}, apierrors.ErrGenerateAccessTokenFailed
	}

	return models.AuthRefreshResponse{AccessToken: accessToken}, nil
}

// FindID recovers a forgotten login email from profile fields. The email
// comes back masked so the endpoint cannot be used to harvest addresses.
func (s AuthService) FindID(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	body models.FindIDBody,
) (models.FindIDResponse, error) {
	user, err := sql.FindUserByNicknameAndPhone(s.DB, body.Nickname, body.PhoneNumber)
	if err != nil {
		logger.Error("Failed to look up user", zap.Error(err))
		return models.FindIDResponse{}, err
	}
	if user == nil {
		return models.FindIDResponse{}, apierrors.NewAPIError(404, apierrors.ErrUserNotFound)
	}

	return models.FindIDResponse{MaskedEmail: h.MaskEmail(user.Email)}, nil
}

// ResetPassword issues a temporary password and delivers it through the
// notifications queue. The phone number doubles as a possession check.
func (s AuthService) ResetPassword(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	body models.PasswordResetBody,
) (models.PasswordResetResponse, error) {
	user, err := sql.GetUserByEmail(s.DB, body.Email)
	if err != nil {
		logger.Error("Failed to look up user", zap.Error(err))
		return models.PasswordResetResponse{}, err
	}
	if user == nil || user.PhoneNumber != body.PhoneNumber {
		return models.PasswordResetResponse{}, apierrors.NewAPIError(404, apierrors.ErrUserNotFound)
	}

	tempPassword, err := h.GenerateTempPassword()
	if err != nil {
		logger.Error("Failed to generate temporary password", zap.Error(err))
		return models.PasswordResetResponse{}, err
	}

	hash, err := h.CreateHash(tempPassword)
	if err != nil {
		logger.Error("Failed to hash temporary password", zap.Error(err))
		return models.PasswordResetResponse{}, err
	}

	if err = sql.UpdateUserPassword(s.DB, user.ID, hash); err != nil {
		logger.Error("Failed to update password", zap.Error(err))
		return models.PasswordResetResponse{}, err
	}

	event := events.NewTempPasswordIssued(
		s.Publisher,
		user.Email,
		user.Nickname,
		tempPassword,
		s.AuthConfig.WebURL,
	)
	event.Trigger()

	action := models.Activity{
		Message: activity.TempPasswordIssued,
		Object:  user.ToActivity(),
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.TempPasswordIssued,
			"user_id":     user.ID.String(),
			"object_type": "user",
		}),
	}
	if logErr := s.ActivityLogger.Send(action); logErr != nil {
		logger.Error("Failed to log password reset activity", zap.Error(logErr))
	}

	return models.PasswordResetResponse{Sent: true}, nil
}
