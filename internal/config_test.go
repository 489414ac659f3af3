package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)

	config, err := Load()
	req.NoError(err)

	req.Equal(8080, config.Port)
	req.Equal(10, config.MaxRequestsPerHour)
	req.Equal(time.Hour, config.RateLimitWindow)
	req.Equal(500, config.MaxPromptLength)
	req.Equal(300, config.MaxOutputTokens)
	req.InDelta(0.2, config.Temperature, 1e-9)
	req.Equal("memory", config.RateLimitStore)
	req.Equal(DefaultBlockedKeywords, config.BlockedKeywords())
	req.Equal(DefaultAllowedTopics, config.AllowedTopics())
	req.Equal(DefaultSystemPrompt, config.SystemPromptOrDefault())
	req.Equal(DefaultOffTopicNote, config.OffTopicNoteOrDefault())
	req.False(config.TrustProxyHeaders, "forwarding headers are ignored unless enabled")
}

func TestDefaultSystemPrompt_CarriesProfileFacts(t *testing.T) {
	req := require.New(t)
	req.Contains(DefaultSystemPrompt, "IMPORTANT RULES:")
	req.Contains(DefaultSystemPrompt, "Key information about Atishay:")
	for _, fact := range []string{
		"San Jose State University (SJSU)",
		"Software Engineering Intern at Veena Agencies",
		"Genomic Classification with ULMFiT",
		"Teaching Assistant for CS-46B",
		"Java, Python, JavaScript, TypeScript, React, Next.js, Spring Boot",
		"AI Product Review System, SevRidy platform, Personal Finance Tracker, and Plutus",
	} {
		req.Contains(DefaultSystemPrompt, fact)
	}
}

func TestLoad_Overrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("CHAT_MAX_REQUESTS_PER_WINDOW", "3")
	t.Setenv("CHAT_RATE_LIMIT_WINDOW", "15m")
	t.Setenv("CHAT_MAX_PROMPT_LENGTH", "120")
	t.Setenv("CHAT_TEMPERATURE", "0.5")
	t.Setenv("CHAT_BLOCKED_KEYWORDS", " Hack | | DROP TABLE|hack ")
	t.Setenv("CHAT_ALLOWED_TOPICS", "go|Kubernetes")
	t.Setenv("CHAT_SYSTEM_PROMPT", "You are terse.")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	config, err := Load()
	req.NoError(err)
	req.Equal(3, config.MaxRequestsPerHour)
	req.Equal(15*time.Minute, config.RateLimitWindow)
	req.Equal(120, config.MaxPromptLength)
	req.InDelta(0.5, config.Temperature, 1e-9)
	req.Equal([]string{"hack", "drop table"}, config.BlockedKeywords())
	req.Equal([]string{"go", "kubernetes"}, config.AllowedTopics())
	req.Equal("You are terse.", config.SystemPromptOrDefault())
	req.True(config.TrustProxyHeaders)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero ceiling", "CHAT_MAX_REQUESTS_PER_WINDOW", "0"},
		{"negative prompt length", "CHAT_MAX_PROMPT_LENGTH", "-1"},
		{"temperature out of range", "CHAT_TEMPERATURE", "3"},
		{"unknown store", "RATE_LIMIT_STORE", "memcached"},
		{"not a duration", "CHAT_RATE_LIMIT_WINDOW", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "test.env")
	req.NoError(os.WriteFile(path, []byte("CHAT_MAX_PROMPT_LENGTH=42\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CHAT_MAX_PROMPT_LENGTH") })

	config, err := Load(path)
	req.NoError(err)
	req.Equal(42, config.MaxPromptLength)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	req.Error(err)
}
