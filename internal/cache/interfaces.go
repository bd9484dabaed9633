package cache

type ICache interface {
	RegisterPlatform(id string) error
	DeleteInactivePlatform() error
	StartIdentityTicker(id string)

	GetRateLimit(userIdentifier string, requestsPerMinute int) (int, error)

	// GetLoginAttempts returns the current number of failed login attempts.
	GetLoginAttempts(userID string) (int, error)
	// IncrementLoginAttempts bumps failed logins and arms the lockout TTL.
	// Uses configuration.LoginLockoutSeconds for the lockout duration.
	IncrementLoginAttempts(userID string) error
	// ResetLoginAttempts clears the counter (called on successful login).
	ResetLoginAttempts(userID string) error

	// TryAcquireLock attempts to take a distributed worker lock.
	TryAcquireLock(key string, instanceID string, ttlSeconds int) (bool, error)
	// RefreshLock extends a held lock; false means the lock was lost.
	RefreshLock(key string, instanceID string, ttlSeconds int) (bool, error)

	Close() error
}
