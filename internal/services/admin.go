package services

import (
	"time"

	"api/internal/activity"
	"api/internal/configuration"
	apierrors "api/internal/errors"
	"api/internal/handlers"
	m "api/internal/middlewares"
	"api/internal/models"
	"api/internal/rollup"
	"api/internal/sql"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AdminService struct {
	DB             *gorm.DB
	ActivityLogger activity.IActivityLogger
}

func (s AdminService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(m.AuthorizeRole(models.RoleAdmin))

	r.Get("/stats", handlers.GetOneHandler(s.GetStats))
	r.Get("/distribution", handlers.GetOneHandler(s.GetUserDistribution))

	r.With(m.ValidateQuery[models.ActivityQueryParams]).
		Get("/activity", handlers.GetOneWithQueryHandler(s.GetActivity))

	r.Route("/users", func(r chi.Router) {
		r.With(m.ValidateQuery[models.AdminUserSearchQueryParams]).
			Get("/", handlers.GetOneWithQueryHandler(s.SearchUsers))
		r.Get("/{id0}", handlers.GetOneHandler(s.GetUser))
	})

	r.Route("/posts", func(r chi.Router) {
		r.With(m.ValidateQuery[models.AdminPostSearchQueryParams]).
			Get("/", handlers.GetOneWithQueryHandler(s.SearchPosts))
		r.Route("/{id0}", func(r chi.Router) {
			r.Get("/", handlers.GetOneHandler(s.GetPost))
			r.With(m.Validate[models.PostVisibilityBody]).
				Patch("/visibility", handlers.UpdateHandler(s.UpdatePostVisibility))
			r.With(m.Validate[models.PostDeleteBody]).
				Delete("/", handlers.DeleteWithBodyHandler(s.DeletePost))
		})
	})

	r.Route("/metrics", func(r chi.Router) {
		r.With(m.ValidateQuery[models.DailyRangeQueryParams]).
			Get("/daily", handlers.GetOneWithQueryHandler(s.GetDailyMetrics))
		r.With(m.ValidateQuery[models.WeeklyTrendQueryParams]).
			Get("/weekly", handlers.GetOneWithQueryHandler(s.GetWeeklyTrend))
	})

	return r
}

// GetStats assembles the dashboard summary: lifetime totals, today's
// counters, the trailing week window and the user roster.
func (s AdminService) GetStats(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
) (models.AdminStatsResponse, error) {
	var response models.AdminStatsResponse
	var err error

	if response.TotalUsers, err = sql.CountUsers(s.DB); err != nil {
		logger.Error("Failed to count users", zap.Error(err))
		return models.AdminStatsResponse{}, err
	}
	if response.TotalPosts, err = sql.CountPosts(s.DB); err != nil {
		logger.Error("Failed to count posts", zap.Error(err))
		return models.AdminStatsResponse{}, err
	}

	today := time.Now()

	todayRow, err := sql.GetDailyStat(s.DB, today)
	if err != nil {
		logger.Error("Failed to load today's counters", zap.Error(err))
		return models.AdminStatsResponse{}, err
	}
	snapshot := rollup.TodaySnapshot(todayRow, today)
	response.TodayLogins = snapshot.LoginCount
	response.TodayChats = snapshot.ChatCount

	windowStart := rollup.Day(today).AddDate(0, 0, -(configuration.TrailingWindowDays - 1))
	rows, err := sql.GetDailyStatsRange(s.DB, windowStart, today)
	if err != nil {
		logger.Error("Failed to load counter range", zap.Error(err))
		return models.AdminStatsResponse{}, err
	}
	window := rollup.TrailingWindow(today, rows)
	response.WeekLogins = window.LoginCount
	response.WeekChats = window.ChatCount

	if response.Users, err = sql.GetAllProfiles(s.DB); err != nil {
		logger.Error("Failed to load user roster", zap.Error(err))
		return models.AdminStatsResponse{}, err
	}

	return response, nil
}

func (s AdminService) SearchUsers(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	queryParams models.AdminUserSearchQueryParams,
) (models.Page[models.AdminUserRow], error) {
	users, total, err := sql.SearchUsers(s.DB, queryParams)
	if err != nil {
		logger.Error("Failed to search users", zap.Error(err))
		return models.Page[models.AdminUserRow]{}, err
	}

	rows := make([]models.AdminUserRow, 0, len(users))
	for i := range users {
		rows = append(rows, models.NewAdminUserRow(users[i]))
	}

	limit, _ := queryParams.Limits()
	return models.Page[models.AdminUserRow]{
		Items:      rows,
		TotalCount: total,
		Page:       queryParams.Page,
		Size:       limit,
	}, nil
}

func (s AdminService) GetUser(
	logger *zap.Logger,
	_ models.UserClaims,
	ids uuid.UUIDs,
) (models.AdminUserDetail, error) {
	user, err := sql.GetUserByID(s.DB, ids[0])
	if err != nil {
		logger.Warn("Failed to load user", zap.Error(err))
		return models.AdminUserDetail{}, err
	}
	return models.NewAdminUserDetail(user), nil
}

// resolveAuthors batch-loads the authors of a page of posts. Posts whose
// author is gone stay in the result; projection fills in sentinels.
func (s AdminService) resolveAuthors(posts []models.Post) (map[uuid.UUID]models.User, error) {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(posts))
	for i := range posts {
		if posts[i].UserID == nil || seen[*posts[i].UserID] {
			continue
		}
		seen[*posts[i].UserID] = true
		ids = append(ids, *posts[i].UserID)
	}
	return sql.GetUsersByIDs(s.DB, ids)
}

func authorOf(post models.Post, authors map[uuid.UUID]models.User) *models.User {
	if post.UserID == nil {
		return nil
	}
	if author, ok := authors[*post.UserID]; ok {
		return &author
	}
	return nil
}

func (s AdminService) SearchPosts(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	queryParams models.AdminPostSearchQueryParams,
) (models.Page[models.AdminPostRow], error) {
	posts, total, err := sql.SearchPosts(s.DB, queryParams)
	if err != nil {
		logger.Error("Failed to search posts", zap.Error(err))
		return models.Page[models.AdminPostRow]{}, err
	}

	authors, err := s.resolveAuthors(posts)
	if err != nil {
		logger.Error("Failed to resolve post authors", zap.Error(err))
		return models.Page[models.AdminPostRow]{}, err
	}

	rows := make([]models.AdminPostRow, 0, len(posts))
	for i := range posts {
		rows = append(rows, models.NewAdminPostRow(posts[i], authorOf(posts[i], authors)))
	}

	limit, _ := queryParams.Limits()
	return models.Page[models.AdminPostRow]{
		Items:      rows,
		TotalCount: total,
		Page:       queryParams.Page,
		Size:       limit,
	}, nil
}

func (s AdminService) GetPost(
	logger *zap.Logger,
	_ models.UserClaims,
	ids uuid.UUIDs,
) (models.AdminPostDetail, error) {
	post, err := sql.GetPostByID(s.DB, ids[0])
	if err != nil {
		logger.Warn("Failed to load post", zap.Error(err))
		return models.AdminPostDetail{}, err
	}

	authors, err := s.resolveAuthors([]models.Post{post})
	if err != nil {
		logger.Error("Failed to resolve post author", zap.Error(err))
		return models.AdminPostDetail{}, err
	}

	return models.NewAdminPostDetail(post, authorOf(post, authors)), nil
}

func (s AdminService) UpdatePostVisibility(
	logger *zap.Logger,
	claims models.UserClaims,
	ids uuid.UUIDs,
	body models.PostVisibilityBody,
) (models.AdminPostDetail, error) {
	post, err := sql.UpdatePostVisibility(s.DB, ids[0], body.IsPublic)
	if err != nil {
		logger.Error("Failed to update post visibility", zap.Error(err))
		return models.AdminPostDetail{}, err
	}

	action := models.Activity{
		Message: activity.PostVisibilityUpdated,
		Object:  post.ToActivity(),
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.PostVisibilityUpdated,
			"user_id":     claims.UserID.String(),
			"post_id":     post.ID.String(),
			"object_type": "post",
		}),
	}
	if logErr := s.ActivityLogger.Send(action); logErr != nil {
		logger.Error("Failed to log visibility update", zap.Error(logErr))
	}

	authors, err := s.resolveAuthors([]models.Post{post})
	if err != nil {
		logger.Error("Failed to resolve post author", zap.Error(err))
		return models.AdminPostDetail{}, err
	}

	return models.NewAdminPostDetail(post, authorOf(post, authors)), nil
}

// DeletePost removes a post for moderation. The reason is mandatory and
// lands in the audit trail, not the database.
func (s AdminService) DeletePost(
	logger *zap.Logger,
	claims models.UserClaims,
	ids uuid.UUIDs,
	body models.PostDeleteBody,
) error {
	post, err := sql.DeletePost(s.DB, ids[0])
	if err != nil {
		logger.Error("Failed to delete post", zap.Error(err))
		return err
	}

	object := post.ToActivity()
	object["reason"] = body.Reason

	action := models.Activity{
		Message: activity.PostDeleted,
		Object:  object,
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.PostDeleted,
			"user_id":     claims.UserID.String(),
			"post_id":     post.ID.String(),
			"object_type": "post",
		}),
	}
	if logErr := s.ActivityLogger.Send(action); logErr != nil {
		logger.Error("Failed to log post deletion", zap.Error(logErr))
	}

	return nil
}

func (s AdminService) GetDailyMetrics(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	queryParams models.DailyRangeQueryParams,
) ([]models.DailyStat, error) {
	from, err := time.Parse(time.DateOnly, queryParams.From)
	if err != nil {
		return nil, apierrors.NewAPIError(400, apierrors.ErrInvalidDateRange)
	}
	to, err := time.Parse(time.DateOnly, queryParams.To)
	if err != nil {
		return nil, apierrors.NewAPIError(400, apierrors.ErrInvalidDateRange)
	}
	if from.After(to) {
		return nil, apierrors.NewAPIError(400, apierrors.ErrInvalidDateRange)
	}

	rows, err := sql.GetDailyStatsRange(s.DB, from, to)
	if err != nil {
		logger.Error("Failed to load counter range", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (s AdminService) GetWeeklyTrend(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	queryParams models.WeeklyTrendQueryParams,
) ([]rollup.WeekBucket, error) {
	weeks := queryParams.Weeks
	if weeks < 1 {
		weeks = configuration.DefaultTrendWeeks
	}

	today := time.Now()
	start := rollup.TrendStart(today, weeks)

	rows, err := sql.GetDailyStatsRange(s.DB, start, today)
	if err != nil {
		logger.Error("Failed to load counter range", zap.Error(err))
		return nil, err
	}

	return rollup.WeekBuckets(rows), nil
}

func (s AdminService) GetUserDistribution(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
) (models.UserDistributionResponse, error) {
	genders, err := sql.CountUsersByGender(s.DB)
	if err != nil {
		logger.Error("Failed to count users by gender", zap.Error(err))
		return models.UserDistributionResponse{}, err
	}

	ageBuckets, err := sql.CountUsersByAgeBucket(s.DB)
	if err != nil {
		logger.Error("Failed to count users by age bucket", zap.Error(err))
		return models.UserDistributionResponse{}, err
	}

	return models.UserDistributionResponse{
		Genders:    genders,
		AgeBuckets: ageBuckets,
	}, nil
}

func (s AdminService) GetActivity(
	logger *zap.Logger,
	_ models.UserClaims,
	_ uuid.UUIDs,
	queryParams models.ActivityQueryParams,
) (models.ActivityResponse, error) {
	criteria := map[string][]string{}
	if queryParams.Action != "" {
		criteria["action"] = []string{queryParams.Action}
	}
	if queryParams.UserID != "" {
		criteria["user_id"] = []string{queryParams.UserID}
	}

	days := queryParams.Days
	if days == 0 {
		days = configuration.TrailingWindowDays
	}

	entries, err := s.ActivityLogger.Search(criteria)
	if err != nil {
		logger.Error("Failed to search activity", zap.Error(err))
		return models.ActivityResponse{}, err
	}

	perDay, err := s.ActivityLogger.CountByDay(criteria, days)
	if err != nil {
		logger.Error("Failed to count activity by day", zap.Error(err))
		return models.ActivityResponse{}, err
	}

	return models.ActivityResponse{Entries: entries, PerDay: perDay}, nil
}
