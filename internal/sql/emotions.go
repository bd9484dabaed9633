package sql

import (
	"api/internal/models"

	"gorm.io/gorm"
)

func CreateEmotionRecord(db *gorm.DB, record *models.EmotionRecord) error {
	return db.Create(record).Error
}

func GetEmotionRecordsByUser(db *gorm.DB, userEmail string, limit int) ([]models.EmotionRecord, error) {
	var records []models.EmotionRecord
	err := db.Where("user_email = ?", userEmail).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
