package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/upark/upark-api/internal/config"
	"github.com/upark/upark-api/internal/constants"
)

// InitLogger initializes the application logger with the given configuration
func InitLogger(cfg *config.AppConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = newLogger(cfg, os.Stdout)

	log.Info().Str("level", level.String()).Msg("Logger initialized")
}

// newLogger builds the base logger. Console output is only used outside production.
func newLogger(cfg *config.AppConfig, out io.Writer) zerolog.Logger {
	output := out
	if strings.ToLower(cfg.Logging.Format) == "console" && !cfg.App.IsProduction() {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("env", cfg.App.Environment).
		Logger()
}

// LogHTTPRequest logs an HTTP request with request details
func LogHTTPRequest(requestID, method, path, remoteAddr, userAgent string, statusCode int, latency time.Duration) {
	// Health probes are noisy; only show them when debugging.
	if strings.HasSuffix(path, constants.HealthPath) && zerolog.GlobalLevel() > zerolog.DebugLevel {
		return
	}

	event := log.Debug()
	switch {
	case statusCode >= 500:
		event = log.Error()
	case statusCode >= 400:
		event = log.Warn()
	case strings.HasPrefix(path, constants.APIBasePath):
		event = log.Info()
	}

	event.
		Str(constants.RequestIDContextKey, requestID).
		Str("method", method).
		Str("path", path).
		Str("remote_addr", remoteAddr).
		Str("user_agent", userAgent).
		Int("status", statusCode).
		Dur("latency", latency).
		Msg("HTTP Request")
}

// LogError logs an error with context information
func LogError(err error, context map[string]interface{}) {
	event := log.Error().Err(err)

	for key, value := range context {
		switch v := value.(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case bool:
			event = event.Bool(key, v)
		default:
			event = event.Interface(key, v)
		}
	}

	event.Msg("Error occurred")
}

// LogPanic logs a recovered panic value together with the request fields
func LogPanic(recovered interface{}, stack []byte, fields map[string]string) {
	event := log.Error().
		Str("panic", fmt.Sprint(recovered)).
		Str("stack", string(stack))
	for key, value := range fields {
		event = event.Str(key, value)
	}
	event.Msg("Panic recovered")
}

// LogDBQuery logs a database query for debugging.
// String arguments are redacted when the statement touches credentials or reset tokens.
func LogDBQuery(query string, args []interface{}, duration time.Duration, err error) {
	lowered := strings.ToLower(query)
	sensitive := strings.Contains(lowered, constants.ColumnPasswordHash) ||
		strings.Contains(lowered, "secret") ||
		strings.Contains(lowered, constants.ColumnResetToken)

	safeArgs := make([]interface{}, len(args))
	for i, arg := range args {
		if _, ok := arg.(string); ok && sensitive {
			safeArgs[i] = constants.LogRedactedValue
			continue
		}
		safeArgs[i] = arg
	}

	event := log.Debug()
	if err != nil {
		event = log.Error().Err(err)
	}

	event.
		Str("query", query).
		Interface("args", safeArgs).
		Dur("duration", duration).
		Msg("Database query executed")
}

// LogAuth logs authentication events such as logins and password changes.
// Failures are logged at warn level.
func LogAuth(event string, userID, username string, success bool, reason string) {
	logEvent := log.Info()
	if !success {
		logEvent = log.Warn()
	}

	logEvent = logEvent.
		Str("event", event).
		Str(constants.UserIDContextKey, userID).
		Str(constants.UsernameContextKey, username).
		Bool("success", success)

	if reason != "" {
		logEvent = logEvent.Str("reason", reason)
	}

	logEvent.Msg(constants.LogCategoryAuth)
}
