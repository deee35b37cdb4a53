package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultEnvFiles are loaded, when present, before the environment is parsed.
var DefaultEnvFiles = []string{".env", ".env.local"}

type UpstreamOptions struct {
	URL         string        `env:"UPSTREAM_URL" envDefault:"https://api.1337co.de/v3/employees"`
	APIKey      string        `env:"UPSTREAM_API_KEY,required,notEmpty"`
	AuthScheme  string        `env:"UPSTREAM_AUTH_SCHEME"`
	Timeout     time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`
	MaxAttempts int           `env:"UPSTREAM_MAX_ATTEMPTS" envDefault:"1"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"true"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

// Server is the Employee Proxy configuration.
type Server struct {
	Upstream   UpstreamOptions
	Prometheus PrometheusOptions

	Port               int      `env:"PORT" envDefault:"3000"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	RequestIDHeader    string   `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
}

type SFTPOptions struct {
	Host                  string `env:"SFTP_HOST"`
	Port                  int    `env:"SFTP_PORT" envDefault:"22"`
	User                  string `env:"SFTP_USER"`
	Pass                  string `env:"SFTP_PASS"`
	Dir                   string `env:"SFTP_DIR" envDefault:"/inbound"`
	KnownHosts            string `env:"SFTP_KNOWN_HOSTS"`
	InsecureIgnoreHostKey bool   `env:"SFTP_INSECURE_IGNORE_HOSTKEY" envDefault:"false"`
}

// CLI is the Directory View configuration.
type CLI struct {
	SFTP SFTPOptions

	ProxyURL string `env:"DIRECTORY_PROXY_URL" envDefault:"http://localhost:3000/api/employees"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

// LoadEnv loads the env files that exist and reports how many were found.
func LoadEnv(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// LoadServer reads the proxy configuration and fails when UPSTREAM_API_KEY
// is missing.
func LoadServer() (Server, error) {
	var cfg Server
	if _, err := LoadEnv(DefaultEnvFiles); err != nil {
		return cfg, fmt.Errorf("load env files: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Server) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT=%d", c.Port)
	}
	if c.Upstream.MaxAttempts < 1 {
		return fmt.Errorf("invalid UPSTREAM_MAX_ATTEMPTS=%d (must be >= 1)", c.Upstream.MaxAttempts)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL=%q: %w", c.LogLevel, err)
	}
	return nil
}

func (c Server) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func LoadCLI() (CLI, error) {
	var cfg CLI
	if _, err := LoadEnv(DefaultEnvFiles); err != nil {
		return cfg, fmt.Errorf("load env files: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Logger builds the process logger at the given level; unknown levels fall
// back to info.
func Logger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
