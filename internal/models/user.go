package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
	RoleGuest Role = "GUEST"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"

	// GenderUnknown is the reporting label for users without a gender set.
	// It is never stored; the column stays NULL.
	GenderUnknown = "UNKNOWN"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	Email          string     `gorm:"type:varchar(254);uniqueIndex;not null"         json:"email"`
	HashedPassword string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Nickname       string     `gorm:"type:varchar(64);not null"                      json:"nickname"`
	PhoneNumber    string     `gorm:"type:varchar(32);not null;default:''"           json:"phone_number"`
	Role           Role       `gorm:"type:varchar(16);not null;default:'USER'"       json:"role"`
	Gender         *Gender    `gorm:"type:varchar(16)"                               json:"gender"`
	Age            *int       `json:"age"`
	LastLoginAt    *time.Time `json:"last_login_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Profile is the public projection of a user account.
type Profile struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Nickname    string     `json:"nickname"`
	Role        Role       `json:"role"`
	Gender      string     `json:"gender"`
	Age         *int       `json:"age"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// GenderLabel folds the nullable column into the reporting label set.
func (u *User) GenderLabel() string {
	if u.Gender == nil {
		return GenderUnknown
	}
	return string(*u.Gender)
}

func (u *User) ToProfile() Profile {
	return Profile{
		ID:          u.ID,
		Email:       u.Email,
		Nickname:    u.Nickname,
		Role:        u.Role,
		Gender:      u.GenderLabel(),
		Age:         u.Age,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToActivity returns the user fields recorded in activity entries.
func (u *User) ToActivity() map[string]any {
	return map[string]any{
		"id":       u.ID.String(),
		"email":    u.Email,
		"nickname": u.Nickname,
		"role":     string(u.Role),
	}
}
