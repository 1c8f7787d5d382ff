// Package web parses web command configuration and launches the server.
package web

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/octofit/tracker/internal/platform/cmd"
	"github.com/octofit/tracker/internal/services/web"
)

const generatedSecretLen = 32

// Config holds the web command configuration.
type Config struct {
	HTTPAddr             string        `env:"OCTOFIT_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	APIBaseURL           string        `env:"OCTOFIT_WEB_API_BASE_URL" envDefault:"http://localhost:8000/api/"`
	APITimeout           time.Duration `env:"OCTOFIT_WEB_API_TIMEOUT" envDefault:"0s"`
	DBPath               string        `env:"OCTOFIT_WEB_DB_PATH" envDefault:"data/octofit-web.db"`
	SessionSecret        string        `env:"OCTOFIT_WEB_SESSION_SECRET"`
	SessionTTL           time.Duration `env:"OCTOFIT_WEB_SESSION_TTL" envDefault:"24h"`
	SessionPruneInterval time.Duration `env:"OCTOFIT_WEB_SESSION_PRUNE_INTERVAL" envDefault:"15m"`
	WorkspaceTTL         time.Duration `env:"OCTOFIT_WEB_WORKSPACE_TTL" envDefault:"30m"`
	WorkspaceCapacity    uint64        `env:"OCTOFIT_WEB_WORKSPACE_CAPACITY" envDefault:"1000"`
	TrustForwardedProto  bool          `env:"OCTOFIT_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "REST API base URL")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "Per-call REST API timeout (0 disables)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite path for web sessions")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Web session lifetime")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honor X-Forwarded-Proto from a fronting proxy")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		serverConfig, err := cfg.serverConfig()
		if err != nil {
			return err
		}
		server, err := web.NewServerWithContext(ctx, serverConfig)
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func (cfg Config) serverConfig() (web.Config, error) {
	secret := []byte(strings.TrimSpace(cfg.SessionSecret))
	if len(secret) == 0 {
		generated, err := randomSecret()
		if err != nil {
			return web.Config{}, err
		}
		log.Printf("session secret not configured; generated an ephemeral key, sessions end on restart")
		secret = generated
	}
	return web.Config{
		HTTPAddr:             cfg.HTTPAddr,
		APIBaseURL:           cfg.APIBaseURL,
		APITimeout:           cfg.APITimeout,
		SessionDBPath:        cfg.DBPath,
		SessionSecret:        secret,
		SessionTTL:           cfg.SessionTTL,
		SessionPruneInterval: cfg.SessionPruneInterval,
		WorkspaceTTL:         cfg.WorkspaceTTL,
		WorkspaceCapacity:    cfg.WorkspaceCapacity,
		TrustForwardedProto:  cfg.TrustForwardedProto,
	}, nil
}

func randomSecret() ([]byte, error) {
	secret := make([]byte, generatedSecretLen)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	return secret, nil
}
