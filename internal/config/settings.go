package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type RedisConfig struct {
	Addr string
	Pass string
}

type Settings struct {
	Port       string
	Debug      bool
	GroqAPIKey string
	UploadDir  string
	OutputDir  string
	SessionTTL time.Duration
	Redis      RedisConfig
}

// Load reads settings from the environment. GROQ_API_KEY is the only
// required variable; the process refuses to start without it.
func Load() (*Settings, error) {
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8000")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("OUTPUT_DIR", "outputs")
	viper.SetDefault("SESSION_TTL", "1h")
	viper.SetDefault("DEBUG", false)

	apiKey := viper.GetString("GROQ_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY not found in environment variables")
	}

	settings := Settings{
		Port:       viper.GetString("PORT"),
		Debug:      viper.GetBool("DEBUG"),
		GroqAPIKey: apiKey,
		UploadDir:  viper.GetString("UPLOAD_DIR"),
		OutputDir:  viper.GetString("OUTPUT_DIR"),
		SessionTTL: viper.GetDuration("SESSION_TTL"),
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
			Pass: viper.GetString("REDIS_PASS"),
		},
	}

	if settings.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", settings.SessionTTL)
	}

	return &settings, nil
}
