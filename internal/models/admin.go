package models

import (
	"time"

	"github.com/google/uuid"
)

// Sentinel author fields shown when a post outlives its author.
const (
	DeletedUserNickname = "탈퇴한 사용자"
	DeletedUserEmail    = "deleted@user.com"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is the envelope for paginated admin listings.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
}

// AdminUserSearchQueryParams are the optional user search filters. Absent
// fields do not constrain the search; an empty struct matches every user.
type AdminUserSearchQueryParams struct {
	Keyword string `json:"keyword" validate:"omitempty,max=254"`
	Role    string `json:"role"    validate:"omitempty,oneof=ADMIN USER GUEST"`
	Gender  string `json:"gender"  validate:"omitempty,oneof=MALE FEMALE"`
	AgeFrom *int   `json:"age_from" validate:"omitempty,gte=0,lte=150"`
	AgeTo   *int   `json:"age_to"   validate:"omitempty,gte=0,lte=150"`
	Page    int    `json:"page"    validate:"omitempty,gte=0"`
	Size    int    `json:"size"    validate:"omitempty,gte=1,lte=100"`
}

// AdminPostSearchQueryParams are the optional post search filters.
// Visibility "all" (any case) is equivalent to leaving it out.
type AdminPostSearchQueryParams struct {
	Keyword    string `json:"keyword"    validate:"omitempty,max=254"`
	Visibility string `json:"visibility" validate:"omitempty,max=16"`
	Page       int    `json:"page"       validate:"omitempty,gte=0"`
	Size       int    `json:"size"       validate:"omitempty,gte=1,lte=100"`
}

func pageLimits(page, size int) (limit, offset int) {
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page < 0 {
		page = 0
	}
	return size, page * size
}

func (q AdminUserSearchQueryParams) Limits() (limit, offset int) {
	return pageLimits(q.Page, q.Size)
}

func (q AdminPostSearchQueryParams) Limits() (limit, offset int) {
	return pageLimits(q.Page, q.Size)
}

type AdminUserRow struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Nickname    string     `json:"nickname"`
	PhoneNumber string     `json:"phone_number"`
	Role        Role       `json:"role"`
	Gender      string     `json:"gender"`
	Age         *int       `json:"age"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

type AdminUserDetail struct {
	AdminUserRow
	UpdatedAt time.Time `json:"updated_at"`
}

type AdminPostRow struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	AuthorNickname string    `json:"author_nickname"`
	AuthorEmail    string    `json:"author_email"`
	IsPublic       bool      `json:"is_public"`
	CreatedAt      time.Time `json:"created_at"`
}

type AdminPostDetail struct {
	AdminPostRow
	Content string         `json:"content"`
	Extra   map[string]any `json:"extra"`
}

func NewAdminUserRow(user User) AdminUserRow {
	return AdminUserRow{
		ID:          user.ID,
		Email:       user.Email,
		Nickname:    user.Nickname,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		Gender:      user.GenderLabel(),
		Age:         user.Age,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}

func NewAdminUserDetail(user User) AdminUserDetail {
	return AdminUserDetail{
		AdminUserRow: NewAdminUserRow(user),
		UpdatedAt:    user.UpdatedAt,
	}
}

// NewAdminPostRow projects a post with its author resolved separately.
// A nil author means the account was deleted after posting; sentinel
// values keep the row renderable.
func NewAdminPostRow(post Post, author *User) AdminPostRow {
	row := AdminPostRow{
		ID:             post.ID,
		Title:          post.Title,
		AuthorNickname: DeletedUserNickname,
		AuthorEmail:    DeletedUserEmail,
		IsPublic:       post.IsPublic,
		CreatedAt:      post.CreatedAt,
	}
	if author != nil {
		row.AuthorNickname = author.Nickname
		row.AuthorEmail = author.Email
	}
	return row
}

func NewAdminPostDetail(post Post, author *User) AdminPostDetail {
	detail := AdminPostDetail{
		AdminPostRow: NewAdminPostRow(post, author),
		Content:      post.Content,
		Extra: map[string]any{
			"status":     string(post.Status),
			"view_count": post.ViewCount,
		},
	}
	if author != nil {
		detail.Extra["author_id"] = author.ID.String()
		detail.Extra["author_role"] = string(author.Role)
	}
	return detail
}

// AdminStatsResponse is the dashboard summary: lifetime totals, today's
// counters and the trailing seven day window, plus the full user roster.
type AdminStatsResponse struct {
	TotalUsers  int64     `json:"total_users"`
	TotalPosts  int64     `json:"total_posts"`
	TodayLogins int64     `json:"today_logins"`
	TodayChats  int64     `json:"today_chats"`
	WeekLogins  int64     `json:"week_logins"`
	WeekChats   int64     `json:"week_chats"`
	Users       []Profile `json:"users"`
}

type GenderCount struct {
	Gender string `json:"gender"`
	Count  int64  `json:"count"`
}

type AgeBucketCount struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}

type UserDistributionResponse struct {
	Genders    []GenderCount    `json:"genders"`
	AgeBuckets []AgeBucketCount `json:"age_buckets"`
}

type PostVisibilityBody struct {
	IsPublic bool `json:"is_public"`
}

type PostDeleteBody struct {
	Reason string `json:"reason" validate:"required,max=255"`
}
