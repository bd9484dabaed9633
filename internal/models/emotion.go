package models

import (
	"time"

	"github.com/google/uuid"
)

type EmotionRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	UserEmail string    `gorm:"type:varchar(254);index;not null"               json:"user_email"`
	InputText string    `gorm:"type:text;not null"                             json:"input_text"`
	Happiness int       `gorm:"not null;default:0"                             json:"happiness"`
	Sadness   int       `gorm:"not null;default:0"                             json:"sadness"`
	Anger     int       `gorm:"not null;default:0"                             json:"anger"`
	Anxiety   int       `gorm:"not null;default:0"                             json:"anxiety"`
	Calmness  int       `gorm:"not null;default:0"                             json:"calmness"`
	Etc       int       `gorm:"not null;default:0"                             json:"etc"`
	CreatedAt time.Time `json:"created_at"`
}

type EmotionAnalyzeBody struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type EmotionAnalyzeResponse struct {
	Emotions map[string]int `json:"emotions"`
}
