package core

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"api/internal/activity"
	c "api/internal/cache"
	"api/internal/configuration"
	"api/internal/events"
	h "api/internal/helpers"
	m "api/internal/middlewares"
	"api/internal/models"
	"api/internal/notifier"
	"api/internal/services"
	"api/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateAdminUser seeds the configured admin account. Reruns refresh the
// password so a rotated configuration value takes effect on restart.
func CreateAdminUser(db *gorm.DB, config models.Configuration) {
	adminUser := models.User{
		Email:    config.App.AdminEmail,
		Nickname: "admin",
		Role:     models.RoleAdmin,
	}

	hash, _ := h.CreateHash(config.App.AdminPassword)
	adminUser.HashedPassword = hash
	db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"hashed_password", "role"}),
	}).Create(&adminUser)
}

func StartWorkers(
	profile models.AppProfile,
	eventsManager *EventsManager,
	db *gorm.DB,
	activityLogger activity.IActivityLogger,
	notify notifier.INotifier,
	config models.Configuration,
	cache c.ICache,
	appIdentity string,
) {
	eventParams := &events.EventParams{
		WebURL:         config.App.WebURL,
		Notifier:       notify,
		ActivityLogger: activityLogger,
	}

	notifications := eventsManager.GetSubscriber(configuration.EventsNotifications).Subscribe()
	go events.HandleEvents(eventParams, notifications)
	zap.L().Info("Started notifications worker")

	startWorker(profile.Workers.WeeklyDigest, "weekly_digest", cache, appIdentity, func(ctx context.Context) {
		worker := &workers.WeeklyDigestWorker{
			DB:             db,
			Publisher:      eventsManager.GetPublisher(configuration.EventsNotifications),
			ActivityLogger: activityLogger,
			WebURL:         config.App.WebURL,
			RunInterval:    time.Duration(config.App.DigestIntervalHrs) * time.Hour,
		}
		worker.Start(ctx)
	})
}

func startWorker(
	mode models.WorkerMode,
	workerName string,
	cache c.ICache,
	appIdentity string,
	runWorker func(context.Context),
) {
	if mode == models.WorkerModeDisabled {
		return
	}

	if mode == models.WorkerModeSingleton {
		go startSingletonWorker(cache, appIdentity, workerName, runWorker)
	} else {
		go runWorker(context.Background())
		zap.L().Info("Started worker", zap.String("worker", workerName))
	}
}

func startSingletonWorker(cache c.ICache, instanceID string, workerName string, runWorker func(context.Context)) {
	lockKey := fmt.Sprintf(configuration.CacheAppWorkerLockKey, workerName)
	ticker := time.NewTicker(time.Duration(configuration.CacheAppWorkerLockRefresh) * time.Second)
	defer ticker.Stop()

	var workerStarted bool
	var cancelWorker context.CancelFunc

	for {
		if !workerStarted {
			acquired, err := cache.TryAcquireLock(lockKey, instanceID, configuration.CacheAppWorkerLockTTL)
			if err != nil {
				zap.L().Error("Failed to acquire worker lock", zap.String("worker", workerName), zap.Error(err))
			}

			if acquired {
				zap.L().Info("Acquired worker lock, starting worker", zap.String("worker", workerName))
				workerStarted = true
				var ctx context.Context
				ctx, cancelWorker = context.WithCancel(context.Background())
				go runWorker(ctx)
			}
		} else {
			refreshed, err := cache.RefreshLock(lockKey, instanceID, configuration.CacheAppWorkerLockTTL)
			if err != nil || !refreshed {
				zap.L().Warn("Lost worker lock, stopping worker", zap.String("worker", workerName))
				workerStarted = false
				if cancelWorker != nil {
					cancelWorker()
					cancelWorker = nil
				}
			}
		}

		<-ticker.C
	}
}

func StartHTTPServer(
	config models.Configuration,
	db *gorm.DB,
	cache c.ICache,
	activityLogger activity.IActivityLogger,
	eventsManager *EventsManager,
) {
	r := chi.NewRouter()

	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(m.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authConfig := config.App.GetAuthConfig()
	publisher := eventsManager.GetPublisher(configuration.EventsNotifications)

	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Use(m.Authenticate(authConfig.JWTSecret))
		apiRouter.Use(m.RateLimit(cache, config.App.RateLimitPerMin))

		apiRouter.Mount("/v1/auth", services.AuthService{
			DB:             db,
			Cache:          cache,
			AuthConfig:     authConfig,
			Publisher:      publisher,
			ActivityLogger: activityLogger,
		}.Routes())

		apiRouter.Mount("/v1/users", services.UserService{
			DB: db,
		}.Routes())

		apiRouter.Mount("/v1/chats", services.ChatService{
			DB:             db,
			ActivityLogger: activityLogger,
		}.Routes())

		apiRouter.Mount("/v1/emotions", services.NewEmotionService(db, config.Emotion).Routes())

		apiRouter.Mount("/v1/admin", services.AdminService{
			DB:             db,
			ActivityLogger: activityLogger,
		}.Routes())
	})

	zap.L().Info("HTTP server starting", zap.Int("port", config.App.Port))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.App.Port),
		Handler:      otelhttp.NewHandler(r, "http.server"),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	err := server.ListenAndServe()
	if err != nil {
		zap.L().Error("Failed to start the app", zap.Error(err))
	}
}
