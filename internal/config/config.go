package config

import (
	"errors"
	"strings"
	"time"

	"alcyxob/fitness-planner/internal/ai"
	"alcyxob/fitness-planner/internal/domain"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig           `mapstructure:"server"`
	Database DatabaseConfig         `mapstructure:"database"`
	S3       S3Config               `mapstructure:"s3"`
	JWT      JWTConfig              `mapstructure:"jwt"`
	AI       ai.Config              `mapstructure:"ai"`
	Rules    domain.ValidationRules `mapstructure:"rules"`
	Log      LogConfig              `mapstructure:"log"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// S3Config configures the plan snapshot archive. With Enabled false the
// service runs without an archive and exports are unavailable.
type S3Config struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// JWTConfig holds the secret used to verify bearer tokens. Tokens are
// issued elsewhere.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or text
}

// LoadConfig reads config.yaml from path, overlaid by environment variables
// such as AI_API_KEY or DATABASE_URI.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	v.AutomaticEnv()

	setDefaults(v)

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// Defaults and env vars are enough to run.
		err = nil
	} else if err != nil {
		return
	}

	// Duration strings ("60s", "15m") decode straight into time.Duration.
	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// the config file does not mention.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitness_planner")

	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "fitness-plans")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.presign_expiry", "15m")

	v.SetDefault("jwt.secret", "")

	retry := ai.DefaultRetryConfig()
	v.SetDefault("ai.provider", ai.ProviderOpenAI)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.max_tokens", ai.DefaultMaxTokens)
	v.SetDefault("ai.temperature", ai.DefaultTemperature)
	v.SetDefault("ai.timeout", retry.Timeout.String())
	v.SetDefault("ai.max_retries", retry.MaxRetries)
	v.SetDefault("ai.initial_backoff", retry.InitialBackoff.String())
	v.SetDefault("ai.max_backoff", retry.MaxBackoff.String())
	v.SetDefault("ai.max_concurrent_calls", retry.MaxConcurrentCalls)
	v.SetDefault("ai.requests_per_second", 0)

	rules := domain.DefaultValidationRules()
	v.SetDefault("rules.min_protein_per_kg", rules.MinProteinPerKg)
	v.SetDefault("rules.max_protein_per_kg", rules.MaxProteinPerKg)
	v.SetDefault("rules.min_calories", rules.MinCalories)
	v.SetDefault("rules.max_calories", rules.MaxCalories)
	v.SetDefault("rules.protein_percent.min", rules.ProteinPercent.Min)
	v.SetDefault("rules.protein_percent.max", rules.ProteinPercent.Max)
	v.SetDefault("rules.carbs_percent.min", rules.CarbsPercent.Min)
	v.SetDefault("rules.carbs_percent.max", rules.CarbsPercent.Max)
	v.SetDefault("rules.fat_percent.min", rules.FatPercent.Min)
	v.SetDefault("rules.fat_percent.max", rules.FatPercent.Max)
	v.SetDefault("rules.min_sessions_per_week", rules.MinSessionsPerWeek)
	v.SetDefault("rules.max_sessions_per_week", rules.MaxSessionsPerWeek)
	v.SetDefault("rules.min_volume_per_muscle_group", rules.MinVolumePerMuscleGroup)
	v.SetDefault("rules.max_volume_per_muscle_group", rules.MaxVolumePerMuscleGroup)
	v.SetDefault("rules.max_session_duration", rules.MaxSessionDuration)
	v.SetDefault("rules.rest_days_per_week.min", rules.RestDaysPerWeek.Min)
	v.SetDefault("rules.rest_days_per_week.max", rules.RestDaysPerWeek.Max)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
