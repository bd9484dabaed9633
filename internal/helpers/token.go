package helpers

import (
	"context"
	"errors"
	"strings"
	"time"

	"api/internal/configuration"
	"api/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// tokenConfig holds configuration for creating a specific token type.
type tokenConfig struct {
	audience      string
	expiryMinutes int
}

func createToken(jwtSecret string, user *models.User, config tokenConfig) (string, error) {
	claims := models.UserClaims{
		Email:  user.Email,
		UserID: user.ID,
		Role:   user.Role,
		Aud:    config.audience,
		Issuer: configuration.AppName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  &jwt.NumericDate{Time: time.Now()},
			ExpiresAt: &jwt.NumericDate{Time: time.Now().Add(time.Minute * time.Duration(config.expiryMinutes))},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ParseToken parses and validates a JWT token without audience validation.
// It validates signature and expiry only. The requireBearer parameter
// controls whether the "Bearer " prefix is required.
func ParseToken(jwtSecret string, tokenString string, requireBearer bool) (models.UserClaims, error) {
	if requireBearer {
		if !strings.HasPrefix(tokenString, "Bearer ") {
			return models.UserClaims{}, errors.New("invalid token")
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	}

	claims := &models.UserClaims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		},
	)
	if err != nil {
		return models.UserClaims{}, errors.New("invalid token")
	}

	return *claims, nil
}

func NewAccessToken(jwtSecret string, user *models.User, expiryMinutes int) (string, error) {
	return createToken(jwtSecret, user, tokenConfig{
		audience:      configuration.AudienceAccessToken,
		expiryMinutes: expiryMinutes,
	})
}

func NewRefreshToken(jwtSecret string, user *models.User, expiryMinutes int) (string, error) {
	return createToken(jwtSecret, user, tokenConfig{
		audience:      configuration.AudienceRefreshToken,
		expiryMinutes: expiryMinutes,
	})
}

// ParseAccessToken validates a bearer access token from the Authorization header.
func ParseAccessToken(jwtSecret string, accessToken string) (models.UserClaims, error) {
	claims, err := ParseToken(jwtSecret, accessToken, true)
	if err != nil {
		return models.UserClaims{}, err
	}

	if claims.Aud != configuration.AudienceAccessToken {
		return models.UserClaims{}, errors.New("invalid access token audience")
	}

	return claims, nil
}

// ParseRefreshToken validates and parses a refresh token.
// Returns error if token is invalid or has wrong audience.
func ParseRefreshToken(jwtSecret string, refreshToken string) (models.UserClaims, error) {
	claims, err := ParseToken(jwtSecret, refreshToken, false)
	if err != nil {
		return models.UserClaims{}, errors.New("invalid refresh token")
	}

	if claims.Aud != configuration.AudienceRefreshToken {
		return models.UserClaims{}, errors.New("invalid refresh token audience")
	}

	return claims, nil
}

func GetUserClaims(c context.Context) (models.UserClaims, error) {
	value, ok := c.Value(models.UserClaimKey{}).(models.UserClaims)
	if !ok {
		return models.UserClaims{}, errors.New("invalid user claims")
	}
	return value, nil
}
