package models

type Configuration struct {
	App       AppConfiguration       `mapstructure:"app"       validate:"required"`
	Database  DatabaseConfiguration  `mapstructure:"database"  validate:"required"`
	Cache     CacheConfiguration     `mapstructure:"cache"     validate:"required"`
	Events    EventsConfiguration    `mapstructure:"events"    validate:"required"`
	Notifier  NotifierConfiguration  `mapstructure:"notifier"  validate:"required"`
	Activity  ActivityConfiguration  `mapstructure:"activity"  validate:"required"`
	Emotion   EmotionConfiguration   `mapstructure:"emotion"   validate:"required"`
	Telemetry TelemetryConfiguration `mapstructure:"telemetry"`
}

type AppConfiguration struct {
	Profile            string   `mapstructure:"profile"              validate:"oneof=default api worker"`
	AdminEmail         string   `mapstructure:"admin_email"          validate:"required,email"`
	AdminPassword      string   `mapstructure:"admin_password"       validate:"required"`
	APIURL             string   `mapstructure:"api_url"              validate:"required"`
	WebURL             string   `mapstructure:"web_url"              validate:"required"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"      validate:"required"`
	JWTSecret          string   `mapstructure:"jwt_secret"           validate:"required"`
	AccessTokenExpiry  int      `mapstructure:"access_token_expiry"  validate:"gte=1,lte=1440"`
	RefreshTokenExpiry int      `mapstructure:"refresh_token_expiry" validate:"gte=1,lte=10080"`
	LogLevel           string   `mapstructure:"log_level"            validate:"oneof=debug info warn error fatal panic"`
	Port               int      `mapstructure:"port"                 validate:"gte=80,lte=65535"`
	TrustedProxies     []string `mapstructure:"trusted_proxies"      validate:"required"`
	RateLimitPerMin    int      `mapstructure:"rate_limit_per_min"   validate:"gte=1"`
	DigestIntervalHrs  int      `mapstructure:"digest_interval_hrs"  validate:"gte=1,lte=336"`
}

type DatabaseConfiguration struct {
	Type     string `mapstructure:"type"     validate:"required,oneof=postgres sqlite"`
	Host     string `mapstructure:"host"     validate:"required_if=Type postgres"`
	Port     int32  `mapstructure:"port"     validate:"omitempty,gte=80,lte=65535"`
	User     string `mapstructure:"user"     validate:"required_if=Type postgres"`
	Password string `mapstructure:"password" validate:"required_if=Type postgres"`
	Name     string `mapstructure:"name"     validate:"required_if=Type postgres"`
	SSLMode  string `mapstructure:"sslmode"`
	// Path is the sqlite database file, only read when Type is sqlite.
	Path string `mapstructure:"path" validate:"required_if=Type sqlite"`
}

type CacheConfiguration struct {
	Type   string                    `mapstructure:"type"   validate:"required,oneof=redis valkey"`
	Redis  *RedisCacheConfiguration  `mapstructure:"redis"  validate:"required_if=Type redis"`
	Valkey *ValkeyCacheConfiguration `mapstructure:"valkey" validate:"required_if=Type valkey"`
}

type RedisCacheConfiguration struct {
	Hosts         []string `mapstructure:"hosts"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type ValkeyCacheConfiguration struct {
	Hosts         []string `mapstructure:"hosts"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type QueueConfig struct {
	Name string `mapstructure:"name" validate:"required"`
}

type EventsConfiguration struct {
	Type      string                 `mapstructure:"type"      validate:"required,oneof=jetstream memory"`
	Queues    map[string]QueueConfig `mapstructure:"queues"    validate:"required"`
	Jetstream *JetStreamEventsConfig `mapstructure:"jetstream" validate:"required_if=Type jetstream"`
}

type JetStreamEventsConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port string `mapstructure:"port" validate:"required"`
}

type MailerConfiguration struct {
	Host          string `mapstructure:"host"            validate:"required"`
	Port          int    `mapstructure:"port"            validate:"required"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	Sender        string `mapstructure:"sender"          validate:"required"`
	EnableTLS     bool   `mapstructure:"enable_tls"`
	SkipVerifyTLS bool   `mapstructure:"skip_verify_tls"`
}

type NotifierConfiguration struct {
	Type       string                           `mapstructure:"type"       validate:"required,oneof=smtp filesystem"`
	SMTP       *MailerConfiguration             `mapstructure:"smtp"       validate:"required_if=Type smtp"`
	Filesystem *FilesystemNotifierConfiguration `mapstructure:"filesystem" validate:"required_if=Type filesystem"`
}

type FilesystemNotifierConfiguration struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type ActivityConfiguration struct {
	Type       string                           `mapstructure:"type"       validate:"required,oneof=filesystem"`
	Filesystem *FilesystemActivityConfiguration `mapstructure:"filesystem" validate:"required_if=Type filesystem"`
}

type FilesystemActivityConfiguration struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type EmotionConfiguration struct {
	APIURL         string `mapstructure:"api_url"         validate:"required,http_url"`
	APIKey         string `mapstructure:"api_key"         validate:"required"`
	Model          string `mapstructure:"model"           validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1,lte=120"`
}

type TelemetryConfiguration struct {
	Tracing   TracingConfiguration   `mapstructure:"tracing"`
	Profiling ProfilingConfiguration `mapstructure:"profiling"`
}

type TracingConfiguration struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint" validate:"required_if=Enabled true"`
}

type ProfilingConfiguration struct {
	Enabled       bool   `mapstructure:"enabled"`
	ServerAddress string `mapstructure:"server_address" validate:"required_if=Enabled true"`
}

// AuthConfig groups authentication-related configuration for services.
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  int
	RefreshTokenExpiry int
	WebURL             string
}

// GetAuthConfig extracts authentication configuration from AppConfiguration.
func (c *AppConfiguration) GetAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:          c.JWTSecret,
		AccessTokenExpiry:  c.AccessTokenExpiry,
		RefreshTokenExpiry: c.RefreshTokenExpiry,
		WebURL:             c.WebURL,
	}
}
