package sql

import (
	"strings"

	"api/internal/models"

	"gorm.io/gorm"
)

// Scope is a composable query fragment; scopes combine with AND.
type Scope = func(*gorm.DB) *gorm.DB

// filterRule pairs a presence check with the scope it contributes.
// The rule table keeps filter composition declarative: adding a filter
// is one new row, and an all-absent table means match-all.
type filterRule struct {
	present bool
	scope   Scope
}

func compileScopes(rules []filterRule) []Scope {
	scopes := make([]Scope, 0, len(rules))
	for _, rule := range rules {
		if rule.present {
			scopes = append(scopes, rule.scope)
		}
	}
	return scopes
}

// UserSearchScopes builds the scopes for the admin user search. The keyword
// matches nickname and email case-insensitively and the phone number as-is;
// role and gender match exactly; the age bounds are inclusive.
func UserSearchScopes(params models.AdminUserSearchQueryParams) []Scope {
	keyword := strings.TrimSpace(params.Keyword)

	return compileScopes([]filterRule{
		{keyword != "", func(db *gorm.DB) *gorm.DB {
			pattern := "%" + strings.ToLower(keyword) + "%"
			return db.Where(
				"(LOWER(nickname) LIKE ? OR LOWER(email) LIKE ? OR phone_number LIKE ?)",
				pattern, pattern, "%"+keyword+"%",
			)
		}},
		{params.Role != "", func(db *gorm.DB) *gorm.DB {
			return db.Where("role = ?", params.Role)
		}},
		{params.Gender != "", func(db *gorm.DB) *gorm.DB {
			return db.Where("gender = ?", params.Gender)
		}},
		{params.AgeFrom != nil, func(db *gorm.DB) *gorm.DB {
			return db.Where("age >= ?", params.AgeFrom)
		}},
		{params.AgeTo != nil, func(db *gorm.DB) *gorm.DB {
			return db.Where("age <= ?", params.AgeTo)
		}},
	})
}

// PostSearchScopes builds the scopes for the admin post search. The keyword
// also matches the author through a left join, so authorless posts stay
// searchable by title and content. Visibility "all" in any case means no
// visibility constraint; any other value is compared against "public".
func PostSearchScopes(params models.AdminPostSearchQueryParams) []Scope {
	keyword := strings.TrimSpace(params.Keyword)
	visibility := strings.TrimSpace(params.Visibility)

	return compileScopes([]filterRule{
		{keyword != "", func(db *gorm.DB) *gorm.DB {
			pattern := "%" + strings.ToLower(keyword) + "%"
			return db.
				Joins("LEFT JOIN users ON users.id = posts.user_id").
				Where(
					"(LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ?"+
						" OR LOWER(users.nickname) LIKE ? OR LOWER(users.email) LIKE ?)",
					pattern, pattern, pattern, pattern,
				)
		}},
		{visibility != "" && !strings.EqualFold(visibility, "all"), func(db *gorm.DB) *gorm.DB {
			return db.Where("posts.is_public = ?", strings.EqualFold(visibility, "public"))
		}},
	})
}
