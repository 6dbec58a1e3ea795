package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	LLM      LLMConfig      `mapstructure:"llm"`
	S3       S3Config       `mapstructure:"s3"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	// Plan generation can take a while with large token budgets.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig selects the storage backend. Driver is "mongo" or "memory".
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// LLMConfig configures the text generation provider: "groq", "openai" or "gemini".
type LLMConfig struct {
	Provider   string `mapstructure:"provider"`
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max_retries"`
	// Timeout bounds one attempt, TotalTimeout all attempts plus backoff.
	Timeout      time.Duration `mapstructure:"timeout"`
	TotalTimeout time.Duration `mapstructure:"total_timeout"`
}

type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type CacheConfig struct {
	PlanSize int `mapstructure:"plan_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in the working directory, if present, is loaded into the
// environment first.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, llm.api_key -> LLM_API_KEY
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}
	fitLLMTimeouts(&config)
	return config, nil
}

// Headroom left between the last generation attempt and the HTTP write deadline.
const writeDeadlineMargin = 5 * time.Second

// fitLLMTimeouts keeps text generation inside the server's write deadline:
// WriteTimeout does not cancel the request context, so a retry running past
// it finishes for nobody.
func fitLLMTimeouts(cfg *Config) {
	llm := &cfg.LLM
	if wt := cfg.Server.WriteTimeout; wt > 0 {
		limit := wt - writeDeadlineMargin
		if limit <= 0 {
			limit = wt / 2
		}
		if llm.TotalTimeout <= 0 || llm.TotalTimeout > limit {
			llm.TotalTimeout = limit
		}
	}
	if llm.TotalTimeout > 0 && (llm.Timeout <= 0 || llm.Timeout > llm.TotalTimeout) {
		llm.Timeout = llm.TotalTimeout
	}
}

// Every key needs a default (even an empty one) so AutomaticEnv can see it
// during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.write_timeout", "2m")

	v.SetDefault("database.driver", "mongo")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitness_planner")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "24h")

	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.max_retries", 2)
	v.SetDefault("llm.timeout", "50s")
	v.SetDefault("llm.total_timeout", "110s")

	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "fitness-plans")
	v.SetDefault("s3.use_ssl", true)

	v.SetDefault("cache.plan_size", 512)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}
