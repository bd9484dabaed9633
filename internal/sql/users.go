package sql

import (
	"errors"
	"time"

	apierrors "api/internal/errors"
	"api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CountUsers(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func GetUserByID(db *gorm.DB, userID uuid.UUID) (models.User, error) {
	var user models.User

	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apierrors.NewAPIError(404, apierrors.ErrUserNotFound)
		}
		return models.User{}, err
	}

	return user, nil
}

// GetUserByEmail returns nil without an error when no user matches.
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var users []models.User
	err := db.Where("email = ?", email).Limit(1).Find(&users).Error
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// GetUsersByIDs resolves a batch of user ids, keyed for projection lookups.
// Missing ids are simply absent from the map.
func GetUsersByIDs(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]models.User, error) {
	byID := make(map[uuid.UUID]models.User, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	for _, user := range users {
		byID[user.ID] = user
	}
	return byID, nil
}

func GetAllProfiles(db *gorm.DB) ([]models.Profile, error) {
	var users []models.User
	if err := db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	profiles := make([]models.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToProfile())
	}
	return profiles, nil
}

// SearchUsers runs the composed filter scopes with pagination, returning
// the page and the unpaginated total.
func SearchUsers(
	db *gorm.DB,
	params models.AdminUserSearchQueryParams,
) ([]models.User, int64, error) {
	scopes := UserSearchScopes(params)

	var total int64
	if err := db.Model(&models.User{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := params.Limits()

	var users []models.User
	err := db.Scopes(scopes...).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func TouchLastLogin(db *gorm.DB, userID uuid.UUID, at time.Time) error {
	return db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_login_at", at).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, hashedPassword string) error {
	return db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("hashed_password", hashedPassword).Error
}

// FindUserByNicknameAndPhone backs the find-id flow.
// Returns nil without an error when no user matches.
func FindUserByNicknameAndPhone(db *gorm.DB, nickname, phoneNumber string) (*models.User, error) {
	var users []models.User
	err := db.Where("nickname = ? AND phone_number = ?", nickname, phoneNumber).
		Limit(1).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func CountUsersByGender(db *gorm.DB) ([]models.GenderCount, error) {
	var counts []models.GenderCount
	err := db.Model(&models.User{}).
		Select("COALESCE(gender, 'UNKNOWN') AS gender, COUNT(*) AS count").
		Group("COALESCE(gender, 'UNKNOWN')").
		Order("gender ASC").
		Scan(&counts).Error
	return counts, err
}

const ageBucketExpr = `CASE
	WHEN age IS NULL THEN 'UNKNOWN'
	WHEN age < 20 THEN '10s'
	WHEN age < 30 THEN '20s'
	WHEN age < 40 THEN '30s'
	WHEN age < 50 THEN '40s'
	WHEN age < 60 THEN '50s'
	ELSE '60s+'
END`

func CountUsersByAgeBucket(db *gorm.DB) ([]models.AgeBucketCount, error) {
	var counts []models.AgeBucketCount
	err := db.Model(&models.User{}).
		Select(ageBucketExpr + " AS bucket, COUNT(*) AS count").
		Group(ageBucketExpr).
		Order("bucket ASC").
		Scan(&counts).Error
	return counts, err
}
