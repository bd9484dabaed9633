package sql

import (
	"time"

	"api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Day normalizes a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IncrementLoginCount bumps the login counter for an existing day row and
// reports how many rows matched. Zero means the day has no row yet.
func IncrementLoginCount(db *gorm.DB, day time.Time) (int64, error) {
	result := db.Model(&models.DailyStat{}).
		Where("stat_date = ?", Day(day).Format(time.DateOnly)).
		UpdateColumn("login_count", gorm.Expr("login_count + ?", 1))
	return result.RowsAffected, result.Error
}

// IncrementChatCount bumps the chat counter for an existing day row and
// reports how many rows matched.
func IncrementChatCount(db *gorm.DB, day time.Time) (int64, error) {
	result := db.Model(&models.DailyStat{}).
		Where("stat_date = ?", Day(day).Format(time.DateOnly)).
		UpdateColumn("chat_count", gorm.Expr("chat_count + ?", 1))
	return result.RowsAffected, result.Error
}

// RecordLogin applies the increment-or-create discipline for a login event.
func RecordLogin(db *gorm.DB, day time.Time) error {
	affected, err := IncrementLoginCount(db, day)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	seed := models.DailyStat{StatDate: Day(day), LoginCount: 1}
	return createSeedRow(db, seed, "login_count")
}

// RecordChat applies the increment-or-create discipline for a chat message.
func RecordChat(db *gorm.DB, day time.Time) error {
	affected, err := IncrementChatCount(db, day)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	seed := models.DailyStat{StatDate: Day(day), ChatCount: 1}
	return createSeedRow(db, seed, "chat_count")
}

// createSeedRow inserts the first row of the day. Another writer may have
// inserted it between the update and this insert; the conflict clause folds
// that race into an increment so no count is lost.
func createSeedRow(db *gorm.DB, seed models.DailyStat, column string) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stat_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column: gorm.Expr("daily_stats." + column + " + 1"),
		}),
	}).Create(&seed).Error
}

// GetDailyStat returns the counter row for one day, or nil when the day
// never saw a write.
func GetDailyStat(db *gorm.DB, day time.Time) (*models.DailyStat, error) {
	var stats []models.DailyStat
	err := db.Where("stat_date = ?", Day(day).Format(time.DateOnly)).
		Limit(1).
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, nil
	}
	return &stats[0], nil
}

// GetDailyStatsRange returns counter rows in [from, to] inclusive,
// oldest first. Days without writes have no row.
func GetDailyStatsRange(db *gorm.DB, from, to time.Time) ([]models.DailyStat, error) {
	var stats []models.DailyStat
	err := db.Where("stat_date BETWEEN ? AND ?",
		Day(from).Format(time.DateOnly), Day(to).Format(time.DateOnly)).
		Order("stat_date ASC").
		Find(&stats).Error
	return stats, err
}
