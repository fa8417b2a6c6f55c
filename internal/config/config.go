package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	State    StateConfig    `mapstructure:"state"`
	Provider ProviderConfig `mapstructure:"provider"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host                    string        `mapstructure:"host"`
	Port                    int           `mapstructure:"port"`
	Mode                    string        `mapstructure:"mode"`
	ReadTimeout             time.Duration `mapstructure:"read_timeout"`
	WriteTimeout            time.Duration `mapstructure:"write_timeout"`
	GracefulShutdownTimeout time.Duration `mapstructure:"graceful_shutdown_timeout"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type StateConfig struct {
	Backend string `mapstructure:"backend"` // "redis" | "memory"
}

type ProviderConfig struct {
	Backend string `mapstructure:"backend"` // "http" | "openai"

	// CallbackURL is the externally reachable URL of this service's
	// completion endpoint, registered with every submission.
	CallbackURL string `mapstructure:"callback_url"`

	HTTP   HTTPProviderConfig   `mapstructure:"http"`
	OpenAI OpenAIProviderConfig `mapstructure:"openai"`
}

type HTTPProviderConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
}

type OpenAIProviderConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads config.yaml, overlays environment variables, and returns Config.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Environment variable override: PROVIDER_OPENAI_API_KEY -> provider.openai.api_key
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate catches deployment-level misconfiguration before the server
// binds, so operators can tell "this deployment is unconfigured" apart from
// per-request failures.
func (c *Config) Validate() error {
	if c.Provider.CallbackURL == "" {
		return fmt.Errorf("provider.callback_url is required")
	}

	switch c.Provider.Backend {
	case "http":
		if c.Provider.HTTP.Endpoint == "" {
			return fmt.Errorf("provider.http.endpoint is required for the http backend")
		}
	case "openai":
		if c.Provider.OpenAI.APIKey == "" {
			return fmt.Errorf("provider.openai.api_key is required for the openai backend")
		}
	default:
		return fmt.Errorf("unknown provider backend: %q", c.Provider.Backend)
	}

	switch c.State.Backend {
	case "redis":
		if c.Redis.Host == "" {
			return fmt.Errorf("redis.host is required for the redis state backend")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown state backend: %q", c.State.Backend)
	}

	return nil
}
