package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	JWTSecret     string
	LogLevel      string
	MaxPhotoBytes int64

	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	PhotoPublicBaseURL string

	SMSAccessKeyID     string
	SMSAccessKeySecret string
	SMSEndpoint        string
	SMSSignName        string
	SMSTemplates       map[ports.NotificationKind]string

	AutoAssignSchedule  string
	AutoAssignOlderThan time.Duration
	AutoAssignLimit     int
	StaffDirectory      string
}

var smsTemplateEnv = map[ports.NotificationKind]string{
	ports.NotifyOutForDelivery: "SMS_TEMPLATE_OUT_FOR_DELIVERY",
	ports.NotifyDelivered:      "SMS_TEMPLATE_DELIVERED",
	ports.NotifyDeliveryFailed: "SMS_TEMPLATE_DELIVERY_FAILED",
	ports.NotifyReturnReviewed: "SMS_TEMPLATE_RETURN_REVIEWED",
	ports.NotifyReturnReceived: "SMS_TEMPLATE_RETURN_RECEIVED",
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment take precedence over it.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var problems []error
	maxPhotoBytes, err := envInt64("MAX_PHOTO_BYTES", 10<<20)
	problems = append(problems, err)
	olderThan, err := envDuration("AUTO_ASSIGN_OLDER_THAN", 24*time.Hour)
	problems = append(problems, err)
	limit, err := envInt64("AUTO_ASSIGN_LIMIT", 100)
	problems = append(problems, err)
	if err = errors.Join(problems...); err != nil {
		return Config{}, err
	}

	templates := make(map[ports.NotificationKind]string, len(smsTemplateEnv))
	for kind, key := range smsTemplateEnv {
		if code := env(key, ""); code != "" {
			templates[kind] = code
		}
	}

	cfg := Config{
		HTTPPort:      env("HTTP_PORT", "8080"),
		DBHost:        env("DB_HOST", "localhost"),
		DBPort:        env("DB_PORT", "5432"),
		DBUser:        env("DB_USER", "postgres"),
		DBPassword:    env("DB_PASSWORD", ""),
		DBName:        env("DB_NAME", "fulfillment"),
		DBSslMode:     env("DB_SSLMODE", "disable"),
		JWTSecret:     env("JWT_SECRET", ""),
		LogLevel:      env("LOG_LEVEL", "info"),
		MaxPhotoBytes: maxPhotoBytes,

		AWSRegion:          env("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        env("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     env("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: env("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        env("AWS_ENDPOINT", ""),
		PhotoPublicBaseURL: env("PHOTO_PUBLIC_BASE_URL", ""),

		SMSAccessKeyID:     env("SMS_ACCESS_KEY_ID", ""),
		SMSAccessKeySecret: env("SMS_ACCESS_KEY_SECRET", ""),
		SMSEndpoint:        env("SMS_ENDPOINT", ""),
		SMSSignName:        env("SMS_SIGN_NAME", ""),
		SMSTemplates:       templates,

		AutoAssignSchedule:  env("AUTO_ASSIGN_SCHEDULE", "@hourly"),
		AutoAssignOlderThan: olderThan,
		AutoAssignLimit:     int(limit),
		StaffDirectory:      env("STAFF_DIRECTORY", ""),
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var problems []error
	required := map[string]string{
		"HTTP_PORT":     c.HTTPPort,
		"DB_HOST":       c.DBHost,
		"DB_NAME":       c.DBName,
		"JWT_SECRET":    c.JWTSecret,
		"AWS_REGION":    c.AWSRegion,
		"AWS_S3_BUCKET": c.AWSS3Bucket,
	}
	for key, value := range required {
		if value == "" {
			problems = append(problems, fmt.Errorf("%s is required", key))
		}
	}
	if c.SMSEnabled() && c.SMSSignName == "" {
		problems = append(problems, errors.New("SMS_SIGN_NAME is required when SMS credentials are set"))
	}
	if c.MaxPhotoBytes <= 0 {
		problems = append(problems, errors.New("MAX_PHOTO_BYTES must be positive"))
	}
	if c.AutoAssignOlderThan <= 0 {
		problems = append(problems, errors.New("AUTO_ASSIGN_OLDER_THAN must be positive"))
	}
	if c.AutoAssignLimit <= 0 {
		problems = append(problems, errors.New("AUTO_ASSIGN_LIMIT must be positive"))
	}
	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

// SMSEnabled reports whether SMS credentials were configured.
func (c Config) SMSEnabled() bool {
	return c.SMSAccessKeyID != "" && c.SMSAccessKeySecret != ""
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envInt64(key string, fallback int64) (int64, error) {
	raw := env(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := env(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
