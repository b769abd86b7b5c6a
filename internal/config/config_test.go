package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModerationEnabled(t *testing.T) {
	// Only the literal string "false", any casing, disables moderation.
	assert.False(t, ModerationEnabled("false"))
	assert.False(t, ModerationEnabled("FALSE"))
	assert.False(t, ModerationEnabled("False"))
	assert.False(t, ModerationEnabled(" false "))

	assert.True(t, ModerationEnabled(""))
	assert.True(t, ModerationEnabled("true"))
	assert.True(t, ModerationEnabled("0"))
	assert.True(t, ModerationEnabled("no"))
	assert.True(t, ModerationEnabled("disabled"))
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.internal",
		DBPort:     5433,
		DBUser:     "civic",
		DBPassword: "pw",
		DBName:     "civicboard",
		DBSSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal user=civic password=pw dbname=civicboard port=5433 sslmode=require TimeZone=UTC",
		cfg.DSN(),
	)
}
