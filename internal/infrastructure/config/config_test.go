package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerServiceSettings(t *testing.T) {
	defaults := BreakerConfig{
		FailureThreshold:  5,
		ResetTimeout:      30 * time.Second,
		HalfOpenSuccesses: 2,
		CallTimeout:       5 * time.Second,
	}

	t.Run("No overrides yields an empty map", func(t *testing.T) {
		assert.Empty(t, defaults.ServiceSettings())
	})

	t.Run("Zero-valued fields fall back to the defaults", func(t *testing.T) {
		cfg := defaults
		cfg.Services = map[string]BreakerServiceConfig{
			"card-network": {FailureThreshold: 3, ResetTimeout: 60 * time.Second},
			"ach-network":  {CallTimeout: 15 * time.Second},
		}

		settings := cfg.ServiceSettings()

		require.Len(t, settings, 2)
		assert.Equal(t, BreakerServiceConfig{
			FailureThreshold:  3,
			ResetTimeout:      60 * time.Second,
			HalfOpenSuccesses: 2,
			CallTimeout:       5 * time.Second,
		}, settings["card-network"])
		assert.Equal(t, BreakerServiceConfig{
			FailureThreshold:  5,
			ResetTimeout:      30 * time.Second,
			HalfOpenSuccesses: 2,
			CallTimeout:       15 * time.Second,
		}, settings["ach-network"])
	})
}

func TestBreakerServicesUnmarshal(t *testing.T) {
	yaml := `
breaker:
  failureThreshold: 5
  resetTimeout: 30
  halfOpenSuccesses: 2
  callTimeout: 5
  services:
    card-network:
      failureThreshold: 3
      resetTimeout: 60
`
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	require.Contains(t, cfg.Breaker.Services, "card-network")
	assert.Equal(t, 3, cfg.Breaker.Services["card-network"].FailureThreshold)
	assert.Equal(t, time.Duration(60), cfg.Breaker.Services["card-network"].ResetTimeout)
}
