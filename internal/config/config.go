package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/salon/internal/schedule"
	"github.com/joshua-takyi/salon/internal/timezone"
	"github.com/kelseyhightower/envconfig"
)

// Database is the part of the configuration every binary needs.
type Database struct {
	MongoDBURI      string `envconfig:"MONGODB_URI"`
	MongoDBPassword string `envconfig:"MONGODB_PASSWORD"`
	MongoDBDatabase string `envconfig:"MONGODB_DATABASE" default:"salon"`
}

type Config struct {
	Database

	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	Timezone      string        `envconfig:"SALON_TIMEZONE" default:"Asia/Kolkata"`
	BusinessOpen  string        `envconfig:"BUSINESS_OPEN" default:"07:00"`
	BusinessClose string        `envconfig:"BUSINESS_CLOSE" default:"20:00"`
	SlotInterval  time.Duration `envconfig:"SLOT_INTERVAL" default:"30m"`
	ClosedDays    string        `envconfig:"CLOSED_DAYS" default:"sunday"`
	ConflictRule  string        `envconfig:"BOOKING_CONFLICT_RULE" default:"overlap"`

	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" default:"24h"`
	CleanupGrace    time.Duration `envconfig:"CLEANUP_GRACE" default:"24h"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	MailFrom     string `envconfig:"MAIL_FROM"`
	MailFromName string `envconfig:"MAIL_FROM_NAME" default:"My Hairstyles"`
	OwnerEmail   string `envconfig:"OWNER_EMAIL"`

	RedisURL   string        `envconfig:"REDIS_URL"`
	RateLimit  int64         `envconfig:"RATE_LIMIT" default:"100"`
	RateWindow time.Duration `envconfig:"RATE_WINDOW" default:"15m"`

	CorsOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,https://my-hairstyles.vercel.app,https://my-hairstyles-1.onrender.com"`

	CloudinaryCloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `envconfig:"CLOUDINARY_API_SECRET"`

	hours schedule.BusinessHours
	rule  schedule.Rule
}

// LoadEnv reads .env.local then .env. Missing files are fine; real
// environment variables always win.
func LoadEnv() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if cfg.MongoDBURI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if !timezone.IsValid(cfg.Timezone) {
		return nil, fmt.Errorf("SALON_TIMEZONE %q is not a known timezone", cfg.Timezone)
	}

	rule, err := schedule.ParseRule(cfg.ConflictRule)
	if err != nil {
		return nil, fmt.Errorf("BOOKING_CONFLICT_RULE: %w", err)
	}
	cfg.rule = rule

	if cfg.hours, err = cfg.parseHours(); err != nil {
		return nil, err
	}
	if cfg.CleanupInterval <= 0 {
		return nil, errors.New("CLEANUP_INTERVAL must be positive")
	}
	return cfg, nil
}

// LoadDatabaseConfig reads only the database settings.
func LoadDatabaseConfig() (*Database, error) {
	db := &Database{}
	if err := envconfig.Process("", db); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if db.MongoDBURI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}
	return db, nil
}

func (c *Config) parseHours() (schedule.BusinessHours, error) {
	open, err := schedule.ParseClock(c.BusinessOpen)
	if err != nil {
		return schedule.BusinessHours{}, fmt.Errorf("BUSINESS_OPEN: %w", err)
	}
	closing, err := schedule.ParseClock(c.BusinessClose)
	if err != nil {
		return schedule.BusinessHours{}, fmt.Errorf("BUSINESS_CLOSE: %w", err)
	}
	if closing <= open {
		return schedule.BusinessHours{}, errors.New("BUSINESS_CLOSE must be after BUSINESS_OPEN")
	}
	if c.SlotInterval <= 0 {
		return schedule.BusinessHours{}, errors.New("SLOT_INTERVAL must be positive")
	}
	closed, err := schedule.ParseWeekdays(c.ClosedDays)
	if err != nil {
		return schedule.BusinessHours{}, fmt.Errorf("CLOSED_DAYS: %w", err)
	}
	return schedule.BusinessHours{
		Open:       open,
		Close:      closing,
		Interval:   c.SlotInterval,
		ClosedDays: closed,
		Location:   timezone.Location(c.Timezone),
	}, nil
}

func (c *Config) BusinessHours() schedule.BusinessHours {
	return c.hours
}

func (c *Config) BookingRule() schedule.Rule {
	return c.rule
}

// MongoURI returns the connection string with the password placeholder filled in.
func (d *Database) MongoURI() string {
	return strings.Replace(d.MongoDBURI, "<password>", d.MongoDBPassword, 1)
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
