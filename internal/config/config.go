package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Booking  BookingConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration for the operator surface
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// BookingConfig holds the scheduling defaults applied when a booking link
// or branch settings row does not specify a value of its own.
type BookingConfig struct {
	LinkExpiry               time.Duration
	DefaultMaxUses           int
	InterviewDurationMinutes int
	TrialDurationMinutes     int
	SlotDurationMinutes      int
	MinimumNoticeHours       int
	LapseGraceHours          int
	SweepInterval            time.Duration
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "flowhire-scheduling"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
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
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Booking configuration
	linkExpiry, err := time.ParseDuration(getEnv("BOOKING_LINK_EXPIRY", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_LINK_EXPIRY: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("BOOKING_SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_SWEEP_INTERVAL: %w", err)
	}
	maxUses, err := strconv.Atoi(getEnv("BOOKING_DEFAULT_MAX_USES", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_DEFAULT_MAX_USES: %w", err)
	}
	interviewMinutes, err := strconv.Atoi(getEnv("BOOKING_INTERVIEW_DURATION_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_INTERVIEW_DURATION_MINUTES: %w", err)
	}
	trialMinutes, err := strconv.Atoi(getEnv("BOOKING_TRIAL_DURATION_MINUTES", "240"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TRIAL_DURATION_MINUTES: %w", err)
	}
	slotMinutes, err := strconv.Atoi(getEnv("BOOKING_SLOT_DURATION_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_SLOT_DURATION_MINUTES: %w", err)
	}
	noticeHours, err := strconv.Atoi(getEnv("BOOKING_MINIMUM_NOTICE_HOURS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_MINIMUM_NOTICE_HOURS: %w", err)
	}
	graceHours, err := strconv.Atoi(getEnv("BOOKING_LAPSE_GRACE_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_LAPSE_GRACE_HOURS: %w", err)
	}

	config.Booking = BookingConfig{
		LinkExpiry:               linkExpiry,
		DefaultMaxUses:           maxUses,
		InterviewDurationMinutes: interviewMinutes,
		TrialDurationMinutes:     trialMinutes,
		SlotDurationMinutes:      slotMinutes,
		MinimumNoticeHours:       noticeHours,
		LapseGraceHours:          graceHours,
		SweepInterval:            sweepInterval,
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
	if c.Booking.DefaultMaxUses < 1 {
		return fmt.Errorf("BOOKING_DEFAULT_MAX_USES must be at least 1")
	}
	if c.Booking.SlotDurationMinutes < 1 {
		return fmt.Errorf("BOOKING_SLOT_DURATION_MINUTES must be at least 1")
	}
	if c.Booking.LapseGraceHours < 0 {
		return fmt.Errorf("BOOKING_LAPSE_GRACE_HOURS must not be negative")
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
