package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds the clock policy knobs. Durations are offsets
// from local midnight; Timezone is the company-local zone all policy
// rules are evaluated in.
type AttendanceConfig struct {
	Timezone         string
	GraceWindowStart time.Duration
	GraceWindowEnd   time.Duration
	EndOfDayCutoff   time.Duration
	MorningThreshold time.Duration
}

func Load() (*Config, error) {
	// A missing .env is fine in production; plain env vars take over.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hamkke-hr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
		MinConns: int32(dbMinConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy configuration
	config.Attendance = AttendanceConfig{
		Timezone: getEnv("ATTENDANCE_TIMEZONE", "Asia/Seoul"),
	}
	for _, v := range []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"ATTENDANCE_GRACE_WINDOW_START", "8h", &config.Attendance.GraceWindowStart},
		{"ATTENDANCE_GRACE_WINDOW_END", "9h", &config.Attendance.GraceWindowEnd},
		{"ATTENDANCE_END_OF_DAY_CUTOFF", "18h", &config.Attendance.EndOfDayCutoff},
		{"ATTENDANCE_MORNING_THRESHOLD", "9h", &config.Attendance.MorningThreshold},
	} {
		d, err := time.ParseDuration(getEnv(v.key, v.fallback))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", v.key, err)
		}
		*v.dst = d
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	if c.Attendance.GraceWindowStart > c.Attendance.GraceWindowEnd {
		return fmt.Errorf("ATTENDANCE_GRACE_WINDOW_START must not be after ATTENDANCE_GRACE_WINDOW_END")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
