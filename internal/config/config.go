package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	RedisURL       string        `mapstructure:"REDIS_URL"`
	AdminKey       string        `mapstructure:"ADMIN_KEY"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`

	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`
	OpenAIKey     string `mapstructure:"OPENAI_API_KEY"`
	PrimaryModel  string `mapstructure:"PRIMARY_MODEL"`
	FallbackModel string `mapstructure:"FALLBACK_MODEL"`

	QualityThreshold  float64       `mapstructure:"QUALITY_THRESHOLD"`
	CandidateCount    int           `mapstructure:"CANDIDATE_COUNT"`
	BaseTemperature   float64       `mapstructure:"BASE_TEMPERATURE"`
	TemperatureStep   float64       `mapstructure:"TEMPERATURE_STEP"`
	MaxResponseTokens int           `mapstructure:"MAX_RESPONSE_TOKENS"`
	ModelTimeout      time.Duration `mapstructure:"MODEL_TIMEOUT"`
	ModelMaxRetries   int           `mapstructure:"MODEL_MAX_RETRIES"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("PRIMARY_MODEL", "gpt-4o")
	v.SetDefault("FALLBACK_MODEL", "claude-3-5-sonnet-20241022")
	v.SetDefault("QUALITY_THRESHOLD", 8.0)
	v.SetDefault("CANDIDATE_COUNT", 3)
	v.SetDefault("BASE_TEMPERATURE", 0.3)
	v.SetDefault("TEMPERATURE_STEP", 0.2)
	v.SetDefault("MAX_RESPONSE_TOKENS", 300)
	v.SetDefault("MODEL_TIMEOUT", "45s")
	v.SetDefault("MODEL_MAX_RETRIES", 2)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
