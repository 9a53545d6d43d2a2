package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. SCRY_SERVER_PORT for server.port.
const EnvPrefix = "SCRY"

// Load configuration from environment variables and optionally a config.yaml
// file in the working directory. Environment variables take precedence over
// values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are unknown to Unmarshal unless bound explicitly.
	for _, key := range []string{"database.url", "auth.jwt_secret", "llm.base_url", "llm.model", "llm.api_key"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyProviderDefaults(&cfg.LLM)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate runs struct validation over a Config.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})

	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.max_tokens", 2000)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout_seconds", 60)

	v.SetDefault("generation.default_count", 5)
	v.SetDefault("generation.max_count", 50)
	v.SetDefault("generation.enforce_set_ownership", false)
}

// providerDefaults holds the model and API key variable used for each
// provider when llm.model or llm.api_key is not set.
var providerDefaults = map[string]struct {
	model  string
	keyEnv string
}{
	"openai": {model: "gpt-4o-mini", keyEnv: "OPENAI_API_KEY"},
	"gemini": {model: "gemini-2.0-flash", keyEnv: "GEMINI_API_KEY"},
}

// applyProviderDefaults fills model and key from the provider's defaults.
// A key is never taken from another provider's variable.
func applyProviderDefaults(cfg *LLMConfig) {
	defaults, ok := providerDefaults[cfg.Provider]
	if !ok {
		return
	}
	if cfg.Model == "" {
		cfg.Model = defaults.model
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(defaults.keyEnv)
	}
}
