package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"asset_checker/internal/domain/adaptors"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultHost    = `127.0.0.1`
	DefaultPort    = 5500
	DefaultPage    = `index.html`
	DefaultTimeout = 6 * time.Second
)

type AppConfig struct {
	LogLevel    string
	Host        string
	Port        int
	Page        string
	Timeout     time.Duration
	MetricsFile string
}

// NewAppConfig reads config.env from the working directory when it exists and
// then the process environment. Unset values fall back to the defaults above.
func NewAppConfig() (*AppConfig, error) {
	return Load(`config.env`)
}

func Load(envFile string) (*AppConfig, error) {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	var errMsg []string
	cfg := AppConfig{
		LogLevel:    envOr("APP_LOG_LEVEL", string(adaptors.DefaultLogLevel)),
		Host:        envOr("CHECKER_HOST", DefaultHost),
		Page:        envOr("CHECKER_PAGE", DefaultPage),
		MetricsFile: os.Getenv("CHECKER_METRICS_FILE"),
		Port:        DefaultPort,
		Timeout:     DefaultTimeout,
	}

	if value := os.Getenv("CHECKER_DEFAULT_PORT"); value != "" {
		port, err := strconv.Atoi(value)
		if err != nil {
			errMsg = append(errMsg, fmt.Sprintf("CHECKER_DEFAULT_PORT: %q is not a number", value))
		} else {
			cfg.Port = port
		}
	}

	if value := os.Getenv("CHECKER_TIMEOUT_DURATION"); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			errMsg = append(errMsg, fmt.Sprintf("CHECKER_TIMEOUT_DURATION: invalid duration format: %v", err))
		} else {
			cfg.Timeout = duration
		}
	}

	if len(errMsg) != 0 {
		return nil, fmt.Errorf(`validation failed: %s`, strings.Join(errMsg, "\n"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate is exported so command line overrides can be checked again.
func (cfg *AppConfig) Validate() error {
	var errMsg []string
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		errMsg = append(errMsg, fmt.Sprintf(`log level %q is invalid`, cfg.LogLevel))
	}

	if cfg.Host == "" {
		errMsg = append(errMsg, `host is empty`)
	}

	if err := ValidatePort(cfg.Port); err != nil {
		errMsg = append(errMsg, err.Error())
	}

	if strings.TrimLeft(cfg.Page, "/") == "" {
		errMsg = append(errMsg, `page is empty`)
	}

	if cfg.Timeout <= 0 {
		errMsg = append(errMsg, `timeout must be positive`)
	}

	if len(errMsg) != 0 {
		return fmt.Errorf(`validation failed: %s`, strings.Join(errMsg, "\n"))
	}
	return nil
}

func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf(`port %d is out of range 1-65535`, port)
	}
	return nil
}

// BaseURL is the server root every relative reference resolves against.
func (cfg *AppConfig) BaseURL() string {
	return `http://` + net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)) + `/`
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
