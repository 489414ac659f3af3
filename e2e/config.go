package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_SERVER_URL is the base URL of a running folio-gate
	ServerURL string `envconfig:"E2E_SERVER_URL" default:"http://localhost:8080"`
	// E2E_HEALTH_ADDR is the gRPC health endpoint, empty to skip health checks
	HealthAddr string `envconfig:"E2E_HEALTH_ADDR"`
	// E2E_ADMIN_TOKEN is a token minted with cmd/feedback -mint-token
	AdminToken string `envconfig:"E2E_ADMIN_TOKEN"`
	// E2E_DEBUG_JSON allows dumping full request/response bodies
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
