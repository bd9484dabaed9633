package services

import (
	"testing"
	"time"

	apierrors "api/internal/errors"
	"api/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetUser_NotFound(t *testing.T) {
	gormDB, mock := newServiceMockDB(t)
	service := AdminService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id =`).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := service.GetUser(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{uuid.New()})

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Contains(t, apiErr.Codes, apierrors.ErrUserNotFound)
}

func TestGetPost_DanglingAuthorGetsSentinels(t *testing.T) {
	gormDB, mock := newServiceMockDB(t)
	service := AdminService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

	postID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "content", "is_public", "status", "view_count"}).
		AddRow(postID, nil, "My diary", "content here", true, "active", int64(12))
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE id =`).WillReturnRows(rows)

	detail, err := service.GetPost(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{postID})

	require.NoError(t, err)
	assert.Equal(t, models.DeletedUserNickname, detail.AuthorNickname)
	assert.Equal(t, models.DeletedUserEmail, detail.AuthorEmail)
	assert.Equal(t, "My diary", detail.Title)
	assert.Equal(t, "content here", detail.Content)
	assert.NotContains(t, detail.Extra, "author_id")
}

func TestGetPost_ResolvedAuthor(t *testing.T) {
	gormDB, mock := newServiceMockDB(t)
	service := AdminService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

	postID := uuid.New()
	authorID := uuid.New()

	postRows := sqlmock.NewRows([]string{"id", "user_id", "title", "content", "is_public", "status", "view_count"}).
		AddRow(postID, authorID, "Hello", "body", false, "active", int64(0))
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE id =`).WillReturnRows(postRows)

	authorRows := sqlmock.NewRows(userColumns()).
		AddRow(authorID, "author@example.com", "x", "author", "010-1111-2222", models.RoleUser)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id IN`).WillReturnRows(authorRows)

	detail, err := service.GetPost(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{postID})

	require.NoError(t, err)
	assert.Equal(t, "author", detail.AuthorNickname)
	assert.Equal(t, "author@example.com", detail.AuthorEmail)
	assert.Equal(t, authorID.String(), detail.Extra["author_id"])
}

func TestGetStats(t *testing.T) {
	gormDB, mock := newServiceMockDB(t)
	service := AdminService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(17)))

	today := time.Now().UTC().Truncate(24 * time.Hour)
	mock.ExpectQuery(`SELECT \* FROM "daily_stats" WHERE stat_date =`).
		WillReturnRows(sqlmock.NewRows([]string{"stat_date", "login_count", "chat_count"}).
			AddRow(today, int64(5), int64(8)))
	mock.ExpectQuery(`SELECT \* FROM "daily_stats" WHERE stat_date BETWEEN`).
		WillReturnRows(sqlmock.NewRows([]string{"stat_date", "login_count", "chat_count"}).
			AddRow(today.AddDate(0, 0, -1), int64(2), int64(3)).
			AddRow(today, int64(5), int64(8)))

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(uuid.New(), "a@example.com", "x", "a", "", models.RoleAdmin).
			AddRow(uuid.New(), "b@example.com", "x", "b", "", models.RoleUser))

	response, err := service.GetStats(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{})

	require.NoError(t, err)
	assert.Equal(t, int64(42), response.TotalUsers)
	assert.Equal(t, int64(17), response.TotalPosts)
	assert.Equal(t, int64(5), response.TodayLogins)
	assert.Equal(t, int64(8), response.TodayChats)
	assert.Equal(t, int64(7), response.WeekLogins)
	assert.Equal(t, int64(11), response.WeekChats)
	assert.Len(t, response.Users, 2)
}

func TestGetDailyMetrics_RangeValidation(t *testing.T) {
	gormDB, _ := newServiceMockDB(t)
	service := AdminService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

	t.Run("rejects from after to", func(t *testing.T) {
		_, err := service.GetDailyMetrics(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{},
			models.DailyRangeQueryParams{From: "2025-03-12", To: "2025-03-10"})

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.Status)
		assert.Contains(t, apiErr.Codes, apierrors.ErrInvalidDateRange)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		_, err := service.GetDailyMetrics(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{},
			models.DailyRangeQueryParams{From: "12-03-2025", To: "2025-03-13"})

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.Status)
	})
}

func TestGetUserDistribution(t *testing.T) {
	gormDB, mock := newServiceMockDB(t)
	service := AdminService{DB: gormDB, ActivityLogger: &MockActivityLogger{}}

	mock.ExpectQuery(`SELECT COALESCE\(gender, 'UNKNOWN'\) AS gender`).
		WillReturnRows(sqlmock.NewRows([]string{"gender", "count"}).
			AddRow("FEMALE", int64(10)).
			AddRow("MALE", int64(8)).
			AddRow("UNKNOWN", int64(3)))

	mock.ExpectQuery(`SELECT CASE`).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "count"}).
			AddRow("20s", int64(12)).
			AddRow("30s", int64(6)).
			AddRow("UNKNOWN", int64(3)))

	response, err := service.GetUserDistribution(zap.NewNop(), models.UserClaims{}, uuid.UUIDs{})

	require.NoError(t, err)
	require.Len(t, response.Genders, 3)
	assert.Equal(t, "FEMALE", response.Genders[0].Gender)
	assert.Equal(t, int64(10), response.Genders[0].Count)
	require.Len(t, response.AgeBuckets, 3)
	assert.Equal(t, "20s", response.AgeBuckets[0].Bucket)
}

func TestDeletePost_RecordsReasonInActivity(t *testing.T) {
	gormDB, mock := newServiceMockDB(t)
	activityLogger := &MockActivityLogger{}
	service := AdminService{DB: gormDB, ActivityLogger: activityLogger}

	postID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "content", "is_public", "status", "view_count"}).
		AddRow(postID, nil, "Spam post", "buy stuff", true, "active", int64(1))
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE id =`).WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "posts"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := service.DeletePost(zap.NewNop(), models.UserClaims{UserID: uuid.New()}, uuid.UUIDs{postID},
		models.PostDeleteBody{Reason: "spam"})

	require.NoError(t, err)
	require.Len(t, activityLogger.sent, 1)
	object, ok := activityLogger.sent[0].Object.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "spam", object["reason"])
}
