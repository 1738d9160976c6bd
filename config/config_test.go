package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	c := &Config{}
	c.Database.DSN = "user:pass@tcp(localhost:3306)/schedura?parseTime=true"
	c.JWT.AccessSecret = "access"
	c.JWT.RefreshSecret = "refresh"
	c.Payment.WebhookSecret = "hook"
	c.Payment.StoreTimeout = 5 * time.Second
	return c
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no dsn", func(c *Config) { c.Database.DSN = "" }},
		{"no access secret", func(c *Config) { c.JWT.AccessSecret = "" }},
		{"no refresh secret", func(c *Config) { c.JWT.RefreshSecret = "" }},
		{"no webhook secret", func(c *Config) { c.Payment.WebhookSecret = "" }},
		{"zero store timeout", func(c *Config) { c.Payment.StoreTimeout = 0 }},
		{"negative store timeout", func(c *Config) { c.Payment.StoreTimeout = -time.Second }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	// No env set for these keys in the test process.
	c := Load()
	require.NotNil(t, c)
	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, 15*time.Minute, c.JWT.AccessExpiry)
	assert.Equal(t, "schedura", c.JWT.Issuer)
	assert.Equal(t, 5*time.Second, c.Payment.StoreTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("PAYMENT_STORE_TIMEOUT", "250ms")
	t.Setenv("DB_MAX_OPEN_CONNS", "17")

	c := Load()
	assert.Equal(t, "9999", c.Server.Port)
	assert.Equal(t, 250*time.Millisecond, c.Payment.StoreTimeout)
	assert.Equal(t, 17, c.Database.MaxOpenConns)
}
