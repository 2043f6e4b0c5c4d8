package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix("PF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}

	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.dialTimeout", 5)  // seconds
	v.SetDefault("redis.readTimeout", 2)  // seconds
	v.SetDefault("redis.writeTimeout", 2) // seconds

	v.SetDefault("mongo.database", "payflow_archive")
	v.SetDefault("mongo.timeout", 5) // seconds
	v.SetDefault("mongo.maxPoolSize", 20)

	v.SetDefault("kafka.topic", "payflow.transfer.events")
	v.SetDefault("kafka.writeTimeout", 5) // seconds

	v.SetDefault("rails.requestTimeout", 10) // seconds

	v.SetDefault("breaker.failureThreshold", 5)
	v.SetDefault("breaker.resetTimeout", 30) // seconds
	v.SetDefault("breaker.halfOpenSuccesses", 2)
	v.SetDefault("breaker.callTimeout", 5) // seconds

	v.SetDefault("archival.hotRetentionDays", 90)
	v.SetDefault("archival.warmRetentionDays", 2555) // 7 years
	v.SetDefault("archival.batchSize", 500)
	v.SetDefault("archival.interval", 60) // minutes
	v.SetDefault("archival.enabled", true)

	v.SetDefault("feed.workerCount", 32)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
}

// getEnvironment determines the environment based on PF_ENV
func getEnvironment() string {
	env := os.Getenv("PF_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
// for sensitive settings
func processEnvOverrides(v *viper.Viper) {
	if dbHost := os.Getenv("PF_DB_HOST"); dbHost != "" {
		v.Set("database.host", dbHost)
	}
	if dbUser := os.Getenv("PF_DB_USERNAME"); dbUser != "" {
		v.Set("database.username", dbUser)
	}
	if dbPass := os.Getenv("PF_DB_PASSWORD"); dbPass != "" {
		v.Set("database.password", dbPass)
	}
	if dbName := os.Getenv("PF_DB_NAME"); dbName != "" {
		v.Set("database.database", dbName)
	}
	if sslMode := os.Getenv("PF_DB_SSL_MODE"); sslMode != "" {
		v.Set("database.sslMode", sslMode)
	}
	if redisAddr := os.Getenv("PF_REDIS_ADDR"); redisAddr != "" {
		v.Set("redis.addr", redisAddr)
	}
	if redisPass := os.Getenv("PF_REDIS_PASSWORD"); redisPass != "" {
		v.Set("redis.password", redisPass)
	}
	if mongoURI := os.Getenv("PF_MONGO_URI"); mongoURI != "" {
		v.Set("mongo.uri", mongoURI)
	}
	if kafkaBrokers := os.Getenv("PF_KAFKA_BROKERS"); kafkaBrokers != "" {
		v.Set("kafka.brokers", kafkaBrokers)
	}
}

// processDurations converts raw numeric config values into durations with
// their documented units
func processDurations(cfg *Config) {
	cfg.Server.ReadTimeout *= time.Second
	cfg.Server.WriteTimeout *= time.Second
	cfg.Server.IdleTimeout *= time.Second
	cfg.Server.ReadHeaderTimeout *= time.Second
	cfg.Server.ShutdownTimeout *= time.Second

	cfg.Database.ConnMaxLifetime *= time.Minute
	cfg.Database.ConnMaxIdleTime *= time.Minute
	cfg.Database.QueryTimeout *= time.Second

	cfg.Redis.DialTimeout *= time.Second
	cfg.Redis.ReadTimeout *= time.Second
	cfg.Redis.WriteTimeout *= time.Second

	cfg.Mongo.Timeout *= time.Second
	cfg.Kafka.WriteTimeout *= time.Second
	cfg.Rails.RequestTimeout *= time.Second

	cfg.Breaker.ResetTimeout *= time.Second
	cfg.Breaker.CallTimeout *= time.Second
	for name, s := range cfg.Breaker.Services {
		s.ResetTimeout *= time.Second
		s.CallTimeout *= time.Second
		cfg.Breaker.Services[name] = s
	}

	cfg.Archival.Interval *= time.Minute
}
