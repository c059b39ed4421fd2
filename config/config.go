package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Scheduling SchedulingConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
}

type AppConfig struct {
	Port           string
	Env            string
	LogLevel       string
	MigrateOnStart bool
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	TimeZone     string
	MaxIdleConns int
	MaxOpenConns int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// SchedulingConfig toggles the appointment rules that differ from the
// legacy behaviour of the hospital platform.
type SchedulingConfig struct {
	// StrictTransitions rejects a second decision on an appointment that is
	// no longer Pending. When false the last decision simply overwrites.
	StrictTransitions bool
	// EnforceAvailability rejects appointment requests that fall outside
	// the doctor's published weekly availability.
	EnforceAvailability bool
}

type CacheConfig struct {
	BadgeTTL   time.Duration
	ProfileTTL time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MIGRATE_ON_START", false)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SCHEDULING_STRICT_TRANSITIONS", true)
	viper.SetDefault("SCHEDULING_ENFORCE_AVAILABILITY", false)
	viper.SetDefault("RATE_LIMIT_RPS", 50)
	viper.SetDefault("RATE_LIMIT_BURST", 100)

	// The .env file is optional; containers usually inject plain env vars.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	badgeTTL, err := time.ParseDuration(viper.GetString("BADGE_CACHE_TTL"))
	if err != nil {
		badgeTTL = 30 * time.Second
	}

	profileTTL, err := time.ParseDuration(viper.GetString("PROFILE_CACHE_TTL"))
	if err != nil {
		profileTTL = 10 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:           viper.GetString("APP_PORT"),
			Env:            viper.GetString("APP_ENV"),
			LogLevel:       viper.GetString("LOG_LEVEL"),
			MigrateOnStart: viper.GetBool("MIGRATE_ON_START"),
		},
		DB: DBConfig{
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			Name:         viper.GetString("DB_NAME"),
			SSLMode:      viper.GetString("DB_SSLMODE"),
			TimeZone:     viper.GetString("DB_TIMEZONE"),
			MaxIdleConns: viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Scheduling: SchedulingConfig{
			StrictTransitions:   viper.GetBool("SCHEDULING_STRICT_TRANSITIONS"),
			EnforceAvailability: viper.GetBool("SCHEDULING_ENFORCE_AVAILABILITY"),
		},
		Cache: CacheConfig{
			BadgeTTL:   badgeTTL,
			ProfileTTL: profileTTL,
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
