package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		State: StateConfig{Backend: "memory"},
		Provider: ProviderConfig{
			Backend:     "http",
			CallbackURL: "https://summaryhub.example.com/api/v1/callbacks/summary",
			HTTP:        HTTPProviderConfig{Endpoint: "https://inference.example.com/jobs"},
		},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsMissingCallbackURL(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.CallbackURL = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingProviderCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.HTTP.Endpoint = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Provider.Backend = "openai"
	assert.Error(t, cfg.Validate())

	cfg.Provider.OpenAI.APIKey = "sk-test"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownBackends(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.Backend = "carrier-pigeon"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.State.Backend = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.State.Backend = "redis"
	assert.Error(t, cfg.Validate()) // redis backend needs a host

	cfg.Redis.Host = "localhost"
	assert.NoError(t, cfg.Validate())
}
