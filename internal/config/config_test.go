package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "ENV", "AI_PROVIDER", "GROQ_BASE_URL")
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, ProviderGroq, cfg.Provider)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.GroqBaseURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Production(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("ENV", " Production ")
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErrs []string
	}{
		{
			name: "groq with key",
			cfg:  Config{Port: "5001", Env: EnvDevelopment, Provider: ProviderGroq, GroqAPIKey: "k"},
		},
		{
			name: "gemini with key",
			cfg:  Config{Port: "5001", Env: EnvProduction, Provider: ProviderGemini, GeminiAPIKey: "k"},
		},
		{
			name:     "groq without key",
			cfg:      Config{Port: "5001", Env: EnvDevelopment, Provider: ProviderGroq},
			wantErrs: []string{"GROQ_API_KEY"},
		},
		{
			name:     "everything wrong",
			cfg:      Config{Env: "staging", Provider: "llama.cpp"},
			wantErrs: []string{"PORT", "ENV", "AI_PROVIDER"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if len(tc.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tc.wantErrs {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestLoadClient_TrimsTrailingSlash(t *testing.T) {
	unsetEnv(t, "LOG_LEVEL", "CHAT_LOG_FILE")
	t.Setenv("RELAY_URL", "https://relay.example.com/")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "https://relay.example.com", cfg.RelayURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
}

// unsetEnv clears keys for the duration of the test; t.Setenv restores them.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}
