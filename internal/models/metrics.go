package models

import "time"

// DailyStat is the per-day counter row behind login and chat metrics.
// stat_date is the primary key, one row per calendar day, created lazily
// on the first write of that day.
type DailyStat struct {
	StatDate   time.Time `gorm:"column:stat_date;type:date;primarykey" json:"date"`
	LoginCount int64     `gorm:"not null"                              json:"login_count"`
	ChatCount  int64     `gorm:"not null"                              json:"chat_count"`
}

func (DailyStat) TableName() string {
	return "daily_stats"
}

type DailyRangeQueryParams struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to"   validate:"required,datetime=2006-01-02"`
}

type WeeklyTrendQueryParams struct {
	Weeks int `json:"weeks" validate:"omitempty,gte=1,lte=52"`
}
