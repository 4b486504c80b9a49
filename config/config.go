package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Firebase FirebaseConfig
	Booking  BookingConfig
	Stats    StatsConfig
	Reminder ReminderConfig
}

type AppConfig struct {
	Port       string
	Env        string
	LogLevel   string
	CORSOrigin string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// FirebaseConfig points at the project backing the document store and the
// identity provider. An empty CredentialsFile means application default credentials.
type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
}

type BookingConfig struct {
	DraftTTL time.Duration
}

type StatsConfig struct {
	CacheTTL time.Duration
}

type ReminderConfig struct {
	Interval time.Duration
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

func LoadConfig() (*Config, error) {
	loadEnv()
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_LOG_LEVEL", "info")
	viper.SetDefault("REDIS_PORT", "6379")

	cfg := &Config{
		App: AppConfig{
			Port:       viper.GetString("APP_PORT"),
			Env:        viper.GetString("APP_ENV"),
			LogLevel:   viper.GetString("APP_LOG_LEVEL"),
			CORSOrigin: viper.GetString("CORS_ALLOW_ORIGIN"),
		},
		DB: LoadDBConfig(),
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  parseDuration(viper.GetString("JWT_ACCESS_EXPIRY"), 15*time.Minute),
			RefreshExpiry: parseDuration(viper.GetString("JWT_REFRESH_EXPIRY"), 7*24*time.Hour),
		},
		Firebase: FirebaseConfig{
			ProjectID:       viper.GetString("FIREBASE_PROJECT_ID"),
			CredentialsFile: viper.GetString("FIREBASE_CREDENTIALS_FILE"),
		},
		Booking: BookingConfig{
			DraftTTL: parseDuration(viper.GetString("BOOKING_DRAFT_TTL"), 30*time.Minute),
		},
		Stats: StatsConfig{
			CacheTTL: parseDuration(viper.GetString("STATS_CACHE_TTL"), time.Minute),
		},
		Reminder: ReminderConfig{
			Interval: parseDuration(viper.GetString("REMINDER_INTERVAL"), time.Minute),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

// LoadDBConfig reads only the database settings, for tools that do not
// need the rest of the configuration.
func LoadDBConfig() DBConfig {
	loadEnv()
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_AUTO_MIGRATE", true)

	return DBConfig{
		Host:        viper.GetString("DB_HOST"),
		Port:        viper.GetString("DB_PORT"),
		User:        viper.GetString("DB_USER"),
		Password:    viper.GetString("DB_PASSWORD"),
		Name:        viper.GetString("DB_NAME"),
		SSLMode:     viper.GetString("DB_SSLMODE"),
		AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
	}
}

func loadEnv() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()
	viper.AutomaticEnv()
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
