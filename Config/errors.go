package Config

import "errors"

var (
	// ErrConfigNotFound is returned when an explicitly given config file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	ErrInvalidPort      = errors.New("invalid port: must be between 1 and 65535")
	ErrNoDatabasePath   = errors.New("no database path configured")
	ErrIncompleteMySQL  = errors.New("mysql driver needs addr and name")
	ErrUnknownDriver    = errors.New("unknown database driver: use sqlite or mysql")
	ErrNoUploadURL      = errors.New("no upload url configured")
	ErrInvalidTimeout   = errors.New("invalid upload timeout: must be positive")
	ErrNoJWTSecret      = errors.New("no jwt secret configured: set CHECKLIST_JWT_SECRET or auth.jwt_secret")
	ErrWeakJWTSecret    = errors.New("jwt secret is a placeholder or shorter than 16 characters")
	ErrInvalidRetention = errors.New("invalid draft retention: must be non-negative")
)
