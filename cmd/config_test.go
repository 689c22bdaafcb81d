package cmd

import (
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AWS_S3_BUCKET", "proofs")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTO_ASSIGN_OLDER_THAN", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SMS_ACCESS_KEY_ID", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "@hourly", cfg.AutoAssignSchedule)
	assert.Equal(t, 24*time.Hour, cfg.AutoAssignOlderThan)
	assert.Equal(t, 100, cfg.AutoAssignLimit)
	assert.Equal(t, int64(10<<20), cfg.MaxPhotoBytes)
	assert.False(t, cfg.SMSEnabled())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTO_ASSIGN_OLDER_THAN", "12h")
	t.Setenv("AUTO_ASSIGN_LIMIT", "25")
	t.Setenv("SMS_ACCESS_KEY_ID", "id")
	t.Setenv("SMS_ACCESS_KEY_SECRET", "secret")
	t.Setenv("SMS_SIGN_NAME", "Fulfillment")
	t.Setenv("SMS_TEMPLATE_DELIVERED", "SMS_1001")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 12*time.Hour, cfg.AutoAssignOlderThan)
	assert.Equal(t, 25, cfg.AutoAssignLimit)
	assert.True(t, cfg.SMSEnabled())
	assert.Equal(t, "SMS_1001", cfg.SMSTemplates[ports.NotifyDelivered])
	assert.NotContains(t, cfg.SMSTemplates, ports.NotifyReturnReviewed)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("malformed duration", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("AUTO_ASSIGN_OLDER_THAN", "a day")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "AUTO_ASSIGN_OLDER_THAN")
	})

	t.Run("missing secret", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "JWT_SECRET is required")
	})
}

func TestConfigValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Config{
		HTTPPort:            "8080",
		DBHost:              "localhost",
		DBName:              "fulfillment",
		AWSRegion:           "us-east-1",
		LogLevel:            "loud",
		SMSAccessKeyID:      "id",
		SMSAccessKeySecret:  "secret",
		AutoAssignOlderThan: time.Hour,
		AutoAssignLimit:     10,
	}

	err := cfg.Validate()

	require.Error(t, err)
	for _, want := range []string{"JWT_SECRET", "AWS_S3_BUCKET", "SMS_SIGN_NAME", "MAX_PHOTO_BYTES", "LOG_LEVEL"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "app", DBPassword: "pw", DBName: "fulfillment", DBSslMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=fulfillment sslmode=disable", cfg.DSN())
}
