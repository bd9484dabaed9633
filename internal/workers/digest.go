package workers

import (
	"context"
	"time"

	"api/internal/activity"
	"api/internal/configuration"
	"api/internal/events"
	"api/internal/messaging"
	"api/internal/models"
	"api/internal/rollup"
	"api/internal/sql"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WeeklyDigestWorker periodically mails every admin a summary of the
// trailing activity window. Delivery goes through the notifications
// queue like any other notification.
type WeeklyDigestWorker struct {
	DB             *gorm.DB
	Publisher      messaging.IPublisher
	ActivityLogger activity.IActivityLogger
	WebURL         string
	RunInterval    time.Duration
}

// Start runs an immediate digest cycle, then repeats on the configured
// interval until the context is cancelled.
func (w *WeeklyDigestWorker) Start(ctx context.Context) {
	zap.L().Info("Starting weekly digest worker",
		zap.Duration("interval", w.RunInterval))

	w.runDigest()

	ticker := time.NewTicker(w.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Weekly digest worker shutting down")
			return
		case <-ticker.C:
			w.runDigest()
		}
	}
}

func (w *WeeklyDigestWorker) runDigest() {
	startTime := time.Now()
	zap.L().Info("Starting weekly digest cycle")

	tracker := &RunTracker{DB: w.DB}
	run, err := tracker.StartRun("weekly_digest")
	if err != nil {
		zap.L().Error("Failed to start worker run tracking", zap.Error(err))
		return
	}

	queued, err := w.sendDigests()
	if err != nil {
		zap.L().Error("Weekly digest cycle failed", zap.Error(err))
		tracker.FailRun(run)
		return
	}
	tracker.CompleteRun(run)

	zap.L().Info("Weekly digest cycle complete",
		zap.Int("digests_queued", queued),
		zap.Duration("duration", time.Since(startTime)))
}

func (w *WeeklyDigestWorker) sendDigests() (int, error) {
	today := time.Now()
	windowStart := rollup.Day(today).AddDate(0, 0, -(configuration.TrailingWindowDays - 1))

	rows, err := sql.GetDailyStatsRange(w.DB, windowStart, today)
	if err != nil {
		return 0, err
	}
	window := rollup.TrailingWindow(today, rows)

	totalUsers, err := sql.CountUsers(w.DB)
	if err != nil {
		return 0, err
	}
	totalPosts, err := sql.CountPosts(w.DB)
	if err != nil {
		return 0, err
	}

	var admins []models.User
	if err = w.DB.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		return 0, err
	}

	for i := range admins {
		event := events.NewWeeklyDigest(
			w.Publisher,
			admins[i].Email,
			window.StartDate.Format(time.DateOnly),
			window.EndDate.Format(time.DateOnly),
			window.LoginCount,
			window.ChatCount,
			totalUsers,
			totalPosts,
			w.WebURL,
		)
		event.Trigger()
	}

	action := models.Activity{
		Message: activity.WeeklyDigestSent,
		Object: map[string]any{
			"start_date":  window.StartDate.Format(time.DateOnly),
			"end_date":    window.EndDate.Format(time.DateOnly),
			"login_count": window.LoginCount,
			"chat_count":  window.ChatCount,
			"recipients":  len(admins),
		},
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.WeeklyDigestSent,
			"object_type": "digest",
		}),
	}
	if logErr := w.ActivityLogger.Send(action); logErr != nil {
		zap.L().Error("Failed to log digest activity", zap.Error(logErr))
	}

	return len(admins), nil
}
