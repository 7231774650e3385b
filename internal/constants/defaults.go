// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines the fallback values applied when the configuration
// file and environment leave a setting empty.
package constants

import "time"

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultAppName is reported in every log line.
	DefaultAppName = "upark-api"

	// DefaultAppVersion is used when neither config nor build flags provide one.
	DefaultAppVersion = "1.0.0"

	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 3000

	// DefaultDBPort is the default PostgreSQL port.
	DefaultDBPort = 5432

	// DefaultDBSSLMode is passed to lib/pq when building a DSN from parts.
	DefaultDBSSLMode = "disable"

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default number of idle connections kept open.
	DefaultDBMinConnections = 5

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultBcryptCost is the work factor used for password hashes.
	DefaultBcryptCost = 10

	// DefaultSMTPPort is the submission port used with STARTTLS.
	DefaultSMTPPort = 587

	// DefaultMailFromName is the display name on outgoing mail.
	DefaultMailFromName = "UPark"

	// DefaultResetBaseURL prefixes the confirmation link sent by email.
	DefaultResetBaseURL = "http://localhost:3000"

	// DefaultEventsTopic is the Kafka topic for user audit events.
	DefaultEventsTopic = "user_events"
)

// Environment Types define the recognized application running environments.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// Mail providers accepted in the mail.provider setting.
const (
	MailProviderSMTP     = "smtp"
	MailProviderSendGrid = "sendgrid"
	MailProviderLog      = "log"
)

// Timeouts and durations.
const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultResetTokenTTL is how long a password reset link stays valid.
	DefaultResetTokenTTL = 1 * time.Hour

	// DBConnectTimeout bounds the initial ping.
	DBConnectTimeout = 10 * time.Second

	// DBHealthCheckTimeout bounds the /health probe.
	DBHealthCheckTimeout = 5 * time.Second

	// MailSendTimeout bounds a single mail dispatch.
	MailSendTimeout = 30 * time.Second

	// EventPublishTimeout bounds a single audit event write.
	EventPublishTimeout = 5 * time.Second
)

// Limits.
const (
	// MaxRequestBodySize is the maximum size in bytes for HTTP request bodies.
	MaxRequestBodySize = 1 << 20

	// ResetTokenBytes is the number of random bytes in a reset token before hex encoding.
	ResetTokenBytes = 32
)

// LogRedactedValue replaces secrets in log output.
const LogRedactedValue = "[REDACTED]"
