package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/upark/upark-api/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App          AppSettings      `yaml:"app"`
	Database     DatabaseSettings `yaml:"database"`
	Server       ServerSettings   `yaml:"server"`
	Logging      LoggingSettings  `yaml:"logging"`
	CORS         CORSSettings     `yaml:"cors"`
	PasswordHash HashSettings     `yaml:"password_hash"`
	Mail         MailSettings     `yaml:"mail"`
	Reset        ResetSettings    `yaml:"reset"`
	Events       EventSettings    `yaml:"events"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// DatabaseSettings contains database connection settings.
// URL takes precedence over the individual connection fields.
type DatabaseSettings struct {
	URL      string `yaml:"url" env:"DATABASE_URL"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	RequestLog bool   `yaml:"request_log" env:"LOG_REQUESTS"`
}

// CORSSettings contains CORS configuration
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// HashSettings contains password hashing settings
type HashSettings struct {
	Cost int `yaml:"cost" env:"BCRYPT_COST"`
}

// MailSettings selects and configures the outgoing mail provider.
type MailSettings struct {
	Provider       string `yaml:"provider" env:"MAIL_PROVIDER"`
	Host           string `yaml:"host" env:"SMTP_HOST"`
	Port           int    `yaml:"port" env:"SMTP_PORT"`
	Username       string `yaml:"username" env:"EMAIL_USER"`
	Password       string `yaml:"password" env:"EMAIL_PASS"`
	FromAddress    string `yaml:"from_address" env:"MAIL_FROM"`
	FromName       string `yaml:"from_name" env:"MAIL_FROM_NAME"`
	SendGridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
}

// ResetSettings controls the password reset flow.
type ResetSettings struct {
	BaseURL  string        `yaml:"base_url" env:"RESET_BASE_URL"`
	TokenTTL time.Duration `yaml:"token_ttl" env:"RESET_TOKEN_TTL"`
}

// EventSettings configures the optional audit event stream.
type EventSettings struct {
	Enabled bool     `yaml:"enabled" env:"EVENTS_ENABLED"`
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS"`
	Topic   string   `yaml:"topic" env:"EVENTS_TOPIC"`
}

// ConnectionString returns the lib/pq connection string
func (dbs *DatabaseSettings) ConnectionString() string {
	if dbs.URL != "" {
		return dbs.URL
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", dbs.Host, dbs.Port),
		Path:   "/" + dbs.Name,
	}
	if dbs.Password != "" {
		u.User = url.UserPassword(dbs.User, dbs.Password)
	} else {
		u.User = url.User(dbs.User)
	}

	q := url.Values{}
	q.Set("sslmode", dbs.SSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// ConfirmURL builds the link a user follows to confirm a reset.
func (rs *ResetSettings) ConfirmURL(token string) string {
	return strings.TrimRight(rs.BaseURL, "/") + constants.APIBasePath + constants.ConfirmResetPath + "/" + url.PathEscape(token)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logConfig(config)

	return config, nil
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = constants.DefaultAppVersion
	}

	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	if config.Database.Host == "" {
		config.Database.Host = "localhost"
	}
	if config.Database.Port == 0 {
		config.Database.Port = constants.DefaultDBPort
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = constants.DefaultDBSSLMode
	}
	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConnections
	}

	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"*"}
	}

	if config.PasswordHash.Cost == 0 {
		config.PasswordHash.Cost = constants.DefaultBcryptCost
	}

	if config.Mail.Provider == "" {
		switch {
		case config.Mail.SendGridAPIKey != "":
			config.Mail.Provider = constants.MailProviderSendGrid
		case config.Mail.Host != "" || config.App.IsProduction():
			config.Mail.Provider = constants.MailProviderSMTP
		default:
			config.Mail.Provider = constants.MailProviderLog
		}
	}
	if config.Mail.Port == 0 {
		config.Mail.Port = constants.DefaultSMTPPort
	}
	if config.Mail.FromAddress == "" {
		config.Mail.FromAddress = config.Mail.Username
	}
	if config.Mail.FromName == "" {
		config.Mail.FromName = constants.DefaultMailFromName
	}

	if config.Reset.BaseURL == "" {
		config.Reset.BaseURL = constants.DefaultResetBaseURL
	}
	if config.Reset.TokenTTL == 0 {
		config.Reset.TokenTTL = constants.DefaultResetTokenTTL
	}

	if config.Events.Topic == "" {
		config.Events.Topic = constants.DefaultEventsTopic
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		log.Warn().Str("environment", config.App.Environment).Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	if config.Database.URL == "" && config.Database.User == "" {
		return fmt.Errorf("database url or user must be set")
	}

	logLevel := strings.ToLower(config.Logging.Level)
	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	if config.PasswordHash.Cost < 4 || config.PasswordHash.Cost > 31 {
		return fmt.Errorf("bcrypt cost must be between 4 and 31, got %d", config.PasswordHash.Cost)
	}

	switch config.Mail.Provider {
	case constants.MailProviderSMTP:
		if config.Mail.Host == "" {
			return fmt.Errorf("smtp host must be set when mail provider is smtp")
		}
		if config.Mail.FromAddress == "" {
			return fmt.Errorf("mail from address must be set when mail provider is smtp")
		}
	case constants.MailProviderSendGrid:
		if config.Mail.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid api key must be set when mail provider is sendgrid")
		}
		if config.Mail.FromAddress == "" {
			return fmt.Errorf("mail from address must be set when mail provider is sendgrid")
		}
	case constants.MailProviderLog:
		if config.App.IsProduction() {
			return fmt.Errorf("mail provider %q is not allowed in production", constants.MailProviderLog)
		}
	default:
		return fmt.Errorf("unknown mail provider: %s", config.Mail.Provider)
	}

	if _, err := url.ParseRequestURI(config.Reset.BaseURL); err != nil {
		return fmt.Errorf("invalid reset base url %q: %w", config.Reset.BaseURL, err)
	}

	if config.Events.Enabled && len(config.Events.Brokers) == 0 {
		return fmt.Errorf("kafka brokers must be set when events are enabled")
	}

	return nil
}

// logConfig logs the current configuration, masking sensitive values
func logConfig(config *AppConfig) {
	log.Info().
		Str("environment", config.App.Environment).
		Str("version", config.App.Version).
		Str("server", config.Server.ServerAddress()).
		Bool("db_url_set", config.Database.URL != "").
		Str("db_host", config.Database.Host).
		Int("db_port", config.Database.Port).
		Str("db_name", config.Database.Name).
		Str("log_level", config.Logging.Level).
		Str("mail_provider", config.Mail.Provider).
		Str("reset_base_url", config.Reset.BaseURL).
		Dur("reset_token_ttl", config.Reset.TokenTTL).
		Bool("events_enabled", config.Events.Enabled).
		Msg("Configuration loaded")
}
