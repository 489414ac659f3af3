package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

// listSeparator splits list-valued variables. A comma cannot be used because
// go-env reserves it inside struct tags.
const listSeparator = "|"

var (
	DefaultBlockedKeywords = []string{
		"hack",
		"exploit",
		"bypass",
		"jailbreak",
		"ignore instructions",
		"system prompt",
		"pretend",
		"roleplay",
	}
	DefaultAllowedTopics = []string{
		"atishay",
		"jain",
		"portfolio",
		"experience",
		"projects",
		"skills",
		"education",
		"sjsu",
		"software",
		"engineering",
		"internship",
		"research",
	}
)

const DefaultSystemPrompt = `You are an AI assistant trained to answer questions about Atishay Jain, a Computer Science student at SJSU and Software Engineering intern.

IMPORTANT RULES:
1. Only answer questions related to Atishay Jain's professional background, education, projects, and skills
2. If asked about unrelated topics, politely redirect to Atishay's portfolio information
3. Do not provide personal information beyond what's publicly available in his portfolio
4. Keep responses professional and concise
5. If you don't know something about Atishay, say so honestly

Key information about Atishay:
- Computer Science student at San Jose State University (SJSU)
- Software Engineering Intern at Veena Agencies
- Research Assistant working on Genomic Classification with ULMFiT
- Teaching Assistant for CS-46B (Advanced Java Programming)
- Experience with Java, Python, JavaScript, TypeScript, React, Next.js, Spring Boot
- Projects include AI Product Review System, SevRidy platform, Personal Finance Tracker, and Plutus`

const DefaultOffTopicNote = `NOTE: This question seems unrelated to Atishay Jain. Please redirect the conversation to his professional background.`

type Config struct {
	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=8080" validate:"gt=0,lte=65535"`
	HealthPort      int           `env:"HEALTH_PORT,default=0" validate:"gte=0,lte=65535"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s" validate:"gt=0"`

	// Chat gate
	OpenAIAPIKey        string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL       string        `env:"OPENAI_BASE_URL,default=https://api.openai.com/v1" validate:"url"`
	Model               string        `env:"CHAT_MODEL,default=ft:gpt-4o-mini-2024-07-18:portfolio:mychatbot:AvSIww4z" validate:"required"`
	MaxOutputTokens     int           `env:"CHAT_MAX_OUTPUT_TOKENS,default=300" validate:"gt=0"`
	Temperature         float64       `env:"CHAT_TEMPERATURE,default=0.2" validate:"gte=0,lte=2"`
	PresencePenalty     float64       `env:"CHAT_PRESENCE_PENALTY,default=0.1" validate:"gte=-2,lte=2"`
	FrequencyPenalty    float64       `env:"CHAT_FREQUENCY_PENALTY,default=0.1" validate:"gte=-2,lte=2"`
	UpstreamTimeout     time.Duration `env:"CHAT_UPSTREAM_TIMEOUT,default=30s" validate:"gt=0"`
	MaxRequestsPerHour  int           `env:"CHAT_MAX_REQUESTS_PER_WINDOW,default=10" validate:"gt=0"`
	RateLimitWindow     time.Duration `env:"CHAT_RATE_LIMIT_WINDOW,default=1h" validate:"gt=0"`
	MaxPromptLength     int           `env:"CHAT_MAX_PROMPT_LENGTH,default=500" validate:"gt=0"`
	BlockedKeywordsList string        `env:"CHAT_BLOCKED_KEYWORDS"`
	AllowedTopicsList   string        `env:"CHAT_ALLOWED_TOPICS"`
	SystemPrompt        string        `env:"CHAT_SYSTEM_PROMPT"`
	OffTopicNote        string        `env:"CHAT_OFF_TOPIC_NOTE"`

	// Client identification
	// Only enable behind a proxy that overwrites X-Forwarded-For; otherwise
	// clients pick their own key.
	TrustProxyHeaders bool   `env:"TRUST_PROXY_HEADERS,default=false"`
	ClientKeySalt     string `env:"CLIENT_KEY_SALT"`

	// Storage
	RateLimitStore string `env:"RATE_LIMIT_STORE,default=memory" validate:"oneof=memory redis"`
	RedisAddr      string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB,default=0" validate:"gte=0"`
	BadgerFilepath string `env:"BADGER_FILEPATH,default=./data/feedback" validate:"required"`

	// Profile proxies
	GitHubToken       string        `env:"GITHUB_TOKEN"`
	GitHubLogin       string        `env:"GITHUB_LOGIN,default=Atishay8192261"`
	GitHubGraphQLURL  string        `env:"GITHUB_GRAPHQL_URL,default=https://api.github.com/graphql" validate:"url"`
	InstagramToken    string        `env:"INSTAGRAM_ACCESS_TOKEN"`
	InstagramUserID   string        `env:"INSTAGRAM_USER_ID"`
	InstagramGraphURL string        `env:"INSTAGRAM_GRAPH_URL,default=https://graph.instagram.com" validate:"url"`
	ProxyTimeout      time.Duration `env:"PROXY_TIMEOUT,default=10s" validate:"gt=0"`
	CacheTTL          time.Duration `env:"CACHE_TTL,default=10m" validate:"gte=0"`

	// Admin
	AdminJWTSecret    string        `env:"ADMIN_JWT_SECRET"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h" validate:"gt=0"`
}

var validate = validator.New()

// Load reads an optional .env file, then the environment, then validates the result.
// Variables already present in the environment win over the .env file.
func Load(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && len(dotenvFiles) > 0 {
		return Config{}, fmt.Errorf("loading %v: %w", dotenvFiles, err)
	}
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) BlockedKeywords() []string {
	return splitList(c.BlockedKeywordsList, DefaultBlockedKeywords)
}

func (c Config) AllowedTopics() []string {
	return splitList(c.AllowedTopicsList, DefaultAllowedTopics)
}

func (c Config) SystemPromptOrDefault() string {
	if strings.TrimSpace(c.SystemPrompt) == "" {
		return DefaultSystemPrompt
	}
	return c.SystemPrompt
}

func (c Config) OffTopicNoteOrDefault() string {
	if strings.TrimSpace(c.OffTopicNote) == "" {
		return DefaultOffTopicNote
	}
	return c.OffTopicNote
}

// splitList returns the trimmed, non-empty, lower-cased items of raw, or
// fallback when raw holds none.
func splitList(raw string, fallback []string) []string {
	items := lo.FilterMap(strings.Split(raw, listSeparator), func(s string, _ int) (string, bool) {
		s = strings.ToLower(strings.TrimSpace(s))
		return s, s != ""
	})
	if len(items) == 0 {
		return append([]string(nil), fallback...)
	}
	return lo.Uniq(items)
}
