package models

import (
	"time"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostStatusActive  PostStatus = "active"
	PostStatusDeleted PostStatus = "deleted"
)

type Post struct {
	ID        uuid.UUID  `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"                                json:"user_id"`
	Title     string     `gorm:"type:varchar(255);not null"                     json:"title"`
	Content   string     `gorm:"type:text;not null"                             json:"content"`
	IsPublic  bool       `gorm:"not null;default:true"                          json:"is_public"`
	Status    PostStatus `gorm:"type:varchar(16);not null;default:'active'"     json:"status"`
	ViewCount int64      `gorm:"not null;default:0"                             json:"view_count"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToActivity returns the post fields recorded in moderation activity entries.
func (p *Post) ToActivity() map[string]any {
	return map[string]any{
		"id":        p.ID.String(),
		"title":     p.Title,
		"is_public": p.IsPublic,
	}
}
