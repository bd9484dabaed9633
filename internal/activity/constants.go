package activity

import (
	"strconv"
	"time"

	"api/internal/models"
)

// Audit actions recorded by the services.
const (
	UserLoggedIn          = "user_logged_in"
	TempPasswordIssued    = "temp_password_issued"
	PostVisibilityUpdated = "post_visibility_updated"
	PostDeleted           = "post_deleted"
	ChatSessionDeleted    = "chat_session_deleted"
	WeeklyDigestSent      = "weekly_digest_sent"
)

func NewLogFilter(fields map[string]string) models.LogFilter {
	return models.LogFilter{
		Timestamp: strconv.FormatInt(time.Now().UnixNano(), 10),
		Fields:    fields,
	}
}
