package configuration

const AppName = "maumlog"

// JWT Audience constants for token type separation.
const (
	AudienceAccessToken  = "app:*"
	AudienceRefreshToken = "auth:refresh"
)

const (
	CacheMaxAppIdentityLifetime = 60
	CacheAppIdentityKey         = "app:identity"
	CacheAppRateLimitKey        = "app:ratelimit:%s"
	CacheAppWorkerLockKey       = "app:worker:lock:%s" //nolint:gosec // not a credential
	CacheAppWorkerLockTTL       = 60
	CacheAppWorkerLockRefresh   = 55
	CacheLoginAttemptsKey       = "login:attempts:%s"
)

const (
	// LoginMaxAttempts is the number of failed logins before lockout.
	LoginMaxAttempts = 10
	// LoginLockoutSeconds is the lockout duration after max failed logins.
	LoginLockoutSeconds = 900
)

const (
	EventsNotifications = "notifications"
)

// Messaging provider types.
const (
	ProviderJetstream = "jetstream"
	ProviderMemory    = "memory"
)

// TrailingWindowDays is the length of the rolling stats window, today included.
const TrailingWindowDays = 7

// DefaultTrendWeeks is the weekly trend span when the caller does not pick one.
const DefaultTrendWeeks = 4

var ArrayConfigFields = []string{
	"app.trusted_proxies",
	"app.allowed_origins",
	"cache.redis.hosts",
	"cache.valkey.hosts",
}

var ConfigFileSearchPaths = []string{
	"./config.yaml",
	"templates/config.yaml",
}
