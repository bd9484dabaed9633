package models

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	UserEmail string    `gorm:"type:varchar(254);index;not null"               json:"user_email"`
	Title     string    `gorm:"type:varchar(255);not null"                     json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;index;not null"                       json:"session_id"`
	Sender    string    `gorm:"type:varchar(16);not null"                      json:"sender"`
	Content   string    `gorm:"type:text;not null"                             json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatSessionBody struct {
	Title string `json:"title" validate:"required,max=255"`
}

type ChatMessageBody struct {
	Sender  string `json:"sender"  validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}
