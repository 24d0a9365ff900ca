package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort      string `mapstructure:"APP_PORT"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	Env          string `mapstructure:"ENV"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`

	// Shared key that dashboards exchange for role-scoped JWTs.
	ServiceAPIKey string `mapstructure:"SERVICE_API_KEY"`

	// Collection identifiers, consumed as opaque values.
	BookingsCollection    string `mapstructure:"BOOKINGS_COLLECTION"`
	CommissionsCollection string `mapstructure:"COMMISSIONS_COLLECTION"`
	ProvidersCollection   string `mapstructure:"PROVIDERS_COLLECTION"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`

	// Expiration sweeper tuning. The response window is the single
	// authoritative timeout for pending bookings.
	SweepIntervalSeconds  int `mapstructure:"SWEEP_INTERVAL_SECONDS"`
	ResponseWindowMinutes int `mapstructure:"RESPONSE_WINDOW_MINUTES"`

	// Path to the Firebase service account key used for push broadcasts.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVICE_API_KEY", "dev-service-key")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "massage_platform")
	viper.SetDefault("BOOKINGS_COLLECTION", "bookings")
	viper.SetDefault("COMMISSIONS_COLLECTION", "commission_records")
	viper.SetDefault("PROVIDERS_COLLECTION", "providers")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("SWEEP_INTERVAL_SECONDS", 60)
	viper.SetDefault("RESPONSE_WINDOW_MINUTES", 5)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SweepInterval returns the sweeper poll interval.
func SweepInterval() time.Duration {
	return time.Duration(AppConfig.SweepIntervalSeconds) * time.Second
}

// ResponseWindow returns how long a pending booking may wait for a provider
// response before being expired.
func ResponseWindow() time.Duration {
	return time.Duration(AppConfig.ResponseWindowMinutes) * time.Minute
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
