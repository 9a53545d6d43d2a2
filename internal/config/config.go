package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// CORSAllowedOrigins is passed to the CORS middleware as-is.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains the settings for the chat-completion provider.
//
// APIKey is deliberately not required here: a missing key is reported per
// request with a configuration error instead of preventing startup.
type LLMConfig struct {
	Provider       string  `mapstructure:"provider"        validate:"required,oneof=openai gemini"`
	APIKey         string  `mapstructure:"api_key"`
	BaseURL        string  `mapstructure:"base_url"        validate:"omitempty,url"`
	Model          string  `mapstructure:"model"           validate:"required"`
	MaxTokens      int     `mapstructure:"max_tokens"      validate:"required,gt=0"`
	Temperature    float64 `mapstructure:"temperature"     validate:"gte=0,lte=2"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// GenerationConfig controls how many flashcards a single request may ask for
// and whether set ownership is checked before generating.
type GenerationConfig struct {
	DefaultCount        int  `mapstructure:"default_count"         validate:"required,gt=0"`
	MaxCount            int  `mapstructure:"max_count"             validate:"required,gtefield=DefaultCount"`
	EnforceSetOwnership bool `mapstructure:"enforce_set_ownership"`
}
