package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Mongo       MongoConfig    `mapstructure:"mongo"`
	Kafka       KafkaConfig    `mapstructure:"kafka"`
	Rails       RailsConfig    `mapstructure:"rails"`
	Breaker     BreakerConfig  `mapstructure:"breaker"`
	Archival    ArchivalConfig `mapstructure:"archival"`
	Feed        FeedConfig     `mapstructure:"feed"`
	Logger      LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
}

// RedisConfig contains Redis connection settings for the idempotency guard
// and balance cache
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dialTimeout"`  // seconds
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`  // seconds
	WriteTimeout time.Duration `mapstructure:"writeTimeout"` // seconds
}

// MongoConfig contains warm archive tier settings
type MongoConfig struct {
	URI         string        `mapstructure:"uri"`
	Database    string        `mapstructure:"database"`
	Timeout     time.Duration `mapstructure:"timeout"` // seconds
	MaxPoolSize uint64        `mapstructure:"maxPoolSize"`
}

// KafkaConfig contains event producer settings
type KafkaConfig struct {
	Brokers      string        `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"` // seconds
}

// RailsConfig contains external payment processor settings
type RailsConfig struct {
	BankAPIURL     string        `mapstructure:"bankApiUrl"`
	CardNetworkURL string        `mapstructure:"cardNetworkUrl"`
	ACHNetworkURL  string        `mapstructure:"achNetworkUrl"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"` // seconds
}

// BreakerConfig contains circuit breaker defaults applied to every external
// service, plus optional per-service overrides keyed by service name
type BreakerConfig struct {
	FailureThreshold  int                             `mapstructure:"failureThreshold"`
	ResetTimeout      time.Duration                   `mapstructure:"resetTimeout"` // seconds
	HalfOpenSuccesses int                             `mapstructure:"halfOpenSuccesses"`
	CallTimeout       time.Duration                   `mapstructure:"callTimeout"` // seconds
	Services          map[string]BreakerServiceConfig `mapstructure:"services"`
}

// BreakerServiceConfig overrides the breaker defaults for one external
// service. Zero-valued fields fall back to the defaults.
type BreakerServiceConfig struct {
	FailureThreshold  int           `mapstructure:"failureThreshold"`
	ResetTimeout      time.Duration `mapstructure:"resetTimeout"` // seconds
	HalfOpenSuccesses int           `mapstructure:"halfOpenSuccesses"`
	CallTimeout       time.Duration `mapstructure:"callTimeout"` // seconds
}

// ServiceSettings merges each per-service override with the defaults
func (b BreakerConfig) ServiceSettings() map[string]BreakerServiceConfig {
	out := make(map[string]BreakerServiceConfig, len(b.Services))
	for name, override := range b.Services {
		merged := BreakerServiceConfig{
			FailureThreshold:  b.FailureThreshold,
			ResetTimeout:      b.ResetTimeout,
			HalfOpenSuccesses: b.HalfOpenSuccesses,
			CallTimeout:       b.CallTimeout,
		}
		if override.FailureThreshold > 0 {
			merged.FailureThreshold = override.FailureThreshold
		}
		if override.ResetTimeout > 0 {
			merged.ResetTimeout = override.ResetTimeout
		}
		if override.HalfOpenSuccesses > 0 {
			merged.HalfOpenSuccesses = override.HalfOpenSuccesses
		}
		if override.CallTimeout > 0 {
			merged.CallTimeout = override.CallTimeout
		}
		out[name] = merged
	}
	return out
}

// ArchivalConfig contains storage tiering settings
type ArchivalConfig struct {
	HotRetentionDays  int           `mapstructure:"hotRetentionDays"`
	WarmRetentionDays int           `mapstructure:"warmRetentionDays"`
	BatchSize         int           `mapstructure:"batchSize"`
	Interval          time.Duration `mapstructure:"interval"` // minutes
	Enabled           bool          `mapstructure:"enabled"`
}

// FeedConfig contains fan-out worker pool settings
type FeedConfig struct {
	WorkerCount int `mapstructure:"workerCount"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
