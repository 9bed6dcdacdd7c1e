package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Data source kinds
const (
	DataSourceMySQL  = "mysql"
	DataSourceSQLite = "sqlite"
	DataSourceMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	LogLevel   string
	DataSource string
	Timezone   string
	Database   DatabaseConfig
	SQLitePath string
	JWT        JWTConfig
	Cookie     CookieConfig
	Defaults   SettingsDefaults
	Archive    ArchiveConfig
	Storage    StorageConfig
	AMQP       AMQPConfig
	Admin      AdminConfig

	// EnvFileLoaded reports whether a .env file was found
	EnvFileLoaded bool
}

// DatabaseConfig holds MySQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds access token configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// CookieConfig holds auth cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// SettingsDefaults seed the app settings until an admin saves them
type SettingsDefaults struct {
	PointValue         int64
	MonthlyPointCap    int
	Currency           string
	DashboardQuote     string
	StrictPenaltyMode  bool
	AllowMemberActions bool
}

// ArchiveConfig controls month closing
type ArchiveConfig struct {
	ClosingEnabled    bool
	AutoCloseSchedule string
}

// StorageConfig holds avatar storage configuration
type StorageConfig struct {
	AvatarDir     string
	PublicBaseURL string
	MaxAvatarSize int64
}

// AMQPConfig holds event publishing configuration. Empty URL disables publishing.
type AMQPConfig struct {
	URL      string
	Exchange string
}

// AdminConfig is the bootstrap administrator created by the seeder
type AdminConfig struct {
	Email    string
	Password string
	FullName string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// .env is optional outside development
	envLoaded := godotenv.Load() == nil

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:       appMode,
		Port:          getEnv("PORT", "3000"),
		LogLevel:      getEnv("LOG_LEVEL", defaultLogLevel(appMode)),
		Timezone:      getEnv("APP_TIMEZONE", "UTC"),
		Database:      loadDatabaseConfig(appMode),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/teampulse.db"),
		JWT:           loadJWTConfig(appMode),
		Cookie:        loadCookieConfig(appMode),
		Defaults:      loadSettingsDefaults(),
		Archive:       loadArchiveConfig(),
		Storage:       loadStorageConfig(),
		AMQP:          loadAMQPConfig(),
		Admin:         loadAdminConfig(),
		EnvFileLoaded: envLoaded,
	}
	config.DataSource = strings.ToLower(getEnv("DATA_SOURCE", defaultDataSource(appMode)))

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// defaultDataSource picks mysql when a database host is configured and
// falls back to the in-memory sample team otherwise
func defaultDataSource(mode string) string {
	if os.Getenv(modePrefix(mode)+"DB_HOST") != "" {
		return DataSourceMySQL
	}
	return DataSourceMemory
}

func defaultLogLevel(mode string) string {
	if mode == "prod" {
		return "info"
	}
	return "debug"
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "teampulse"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	return JWTConfig{
		Secret:          getEnv(modePrefix(mode)+"JWT_SECRET", "default_secret"),
		AccessTokenMins: getEnvInt("ACCESS_TOKEN_MINUTES", 60),
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	return CookieConfig{
		Secure:   getEnvBool(modePrefix(mode)+"COOKIE_SECURE", false),
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadSettingsDefaults() SettingsDefaults {
	return SettingsDefaults{
		PointValue:         int64(getEnvInt("POINT_VALUE", 1000)),
		MonthlyPointCap:    getEnvInt("MONTHLY_POINT_CAP", 0),
		Currency:           getEnv("CURRENCY", "COP"),
		DashboardQuote:     getEnv("DASHBOARD_QUOTE", "El talento gana partidos, pero el trabajo en equipo gana campeonatos."),
		StrictPenaltyMode:  getEnvBool("STRICT_PENALTY_MODE", false),
		AllowMemberActions: getEnvBool("ALLOW_MEMBER_ACTIONS", false),
	}
}

func loadArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		ClosingEnabled:    getEnvBool("MONTH_CLOSING_ENABLED", true),
		AutoCloseSchedule: getEnv("AUTO_CLOSE_SCHEDULE", ""),
	}
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		AvatarDir:     getEnv("AVATAR_DIR", "./data/avatars"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		MaxAvatarSize: 5 << 20,
	}
}

func loadAMQPConfig() AMQPConfig {
	return AMQPConfig{
		URL:      getEnv("AMQP_URL", ""),
		Exchange: getEnv("AMQP_EXCHANGE", "teampulse"),
	}
}

func loadAdminConfig() AdminConfig {
	return AdminConfig{
		Email:    getEnv("ADMIN_EMAIL", ""),
		Password: getEnv("ADMIN_PASSWORD", ""),
		FullName: getEnv("ADMIN_NAME", "Administrador"),
	}
}

// Validate checks the configuration and reports every problem at once
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataSource {
	case DataSourceMySQL, DataSourceMemory:
	case DataSourceSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, "SQLITE_PATH cannot be empty when DATA_SOURCE is sqlite")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid DATA_SOURCE '%s': must be one of mysql, sqlite, memory", c.DataSource))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("invalid APP_TIMEZONE '%s': %v", c.Timezone, err))
	}

	if c.Defaults.PointValue < 0 {
		errs = append(errs, fmt.Sprintf("invalid POINT_VALUE %d: must not be negative", c.Defaults.PointValue))
	}
	if c.Defaults.MonthlyPointCap < 0 {
		errs = append(errs, fmt.Sprintf("invalid MONTHLY_POINT_CAP %d: must not be negative", c.Defaults.MonthlyPointCap))
	}

	if c.JWT.AccessTokenMins < 1 {
		errs = append(errs, fmt.Sprintf("invalid ACCESS_TOKEN_MINUTES %d: must be at least 1", c.JWT.AccessTokenMins))
	}
	if c.IsProd() && c.JWT.Secret == "default_secret" {
		errs = append(errs, "PROD_JWT_SECRET must be set in prod mode")
	}

	if c.Archive.AutoCloseSchedule != "" {
		if _, err := cron.ParseStandard(c.Archive.AutoCloseSchedule); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AUTO_CLOSE_SCHEDULE '%s': %v", c.Archive.AutoCloseSchedule, err))
		}
	}

	if c.AMQP.URL != "" {
		if parsed, err := url.Parse(c.AMQP.URL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP_URL: %v", err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP_URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQP.Exchange == "" {
			errs = append(errs, "AMQP_EXCHANGE cannot be empty when AMQP_URL is set")
		}
	}

	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		errs = append(errs, "ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// Location returns the time zone used to derive month tags
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5173"
	}
	return origins
}
