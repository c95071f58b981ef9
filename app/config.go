package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thenaterhood/dnschat/models"
	"github.com/thenaterhood/dnschat/ratelimit"
)

type AppConfig struct {
	// Server is the DNS server queries are sent to. Empty means the
	// default chat zone is queried through the platform resolver path.
	Server string `json:"server" yaml:"server"`
	// MethodPreference orders the transports: automatic, udp-only,
	// never-https, prefer-https or native-first.
	MethodPreference string `json:"method_preference" yaml:"method_preference"`
	PreferHttps      bool   `json:"prefer_https" yaml:"prefer_https"`
	// EnableMockDns appends a deterministic offline responder as the
	// terminal fallback transport.
	EnableMockDns bool `json:"enable_mock_dns" yaml:"enable_mock_dns"`
	// AllowExperimentalTransports permits the raw UDP/TCP transports.
	// When false the platform resolver is the only sanctioned path.
	AllowExperimentalTransports bool `json:"allow_experimental_transports" yaml:"allow_experimental_transports"`
	// QueryTimeoutSeconds bounds each individual transport attempt.
	QueryTimeoutSeconds int `json:"query_timeout_seconds" yaml:"query_timeout_seconds"`
	MaxRetries          int `json:"max_retries" yaml:"max_retries"`
	// RetryDelayMs is the backoff base; attempt n sleeps base * 2^n.
	RetryDelayMs      int  `json:"retry_delay_ms" yaml:"retry_delay_ms"`
	RateLimit         int  `json:"rate_limit" yaml:"rate_limit"`
	RateWindowSeconds int  `json:"rate_window_seconds" yaml:"rate_window_seconds"`
	DisableMetrics    bool `json:"disable_metrics" yaml:"disable_metrics"`
	DisableQueryLog   bool `json:"disable_query_log" yaml:"disable_query_log"`
	LogLevel          int  `json:"log_level" yaml:"log_level"`
	// RespectResolvConf makes the native transport discover the
	// platform nameservers from resolv.conf when no server is set.
	RespectResolvConf bool   `json:"respect_resolvconf" yaml:"respect_resolvconf"`
	ResolvConfPath    string `json:"resolvconf_path" yaml:"resolvconf_path"`
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Server:                      "",
		MethodPreference:            string(models.PreferenceAutomatic),
		AllowExperimentalTransports: true,
		QueryTimeoutSeconds:         10,
		MaxRetries:                  3,
		RetryDelayMs:                1000,
		RateLimit:                   ratelimit.DefaultLimit,
		RateWindowSeconds:           int(ratelimit.DefaultWindow / time.Second),
		ResolvConfPath:              "/etc/resolv.conf",
	}
}

// GetConfig loads configuration from a JSON or YAML file, selected by
// extension, on top of the defaults. A missing file returns the defaults
// and the open error so the caller can decide whether that matters.
func GetConfig(path string) (*AppConfig, error) {
	config := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return GetDefaultConfig(), err
	}

	if err := config.Validate(); err != nil {
		return GetDefaultConfig(), err
	}

	return config, nil
}

func (config *AppConfig) Validate() error {
	if config.Server != "" {
		if err := models.ValidateServer(config.Server); err != nil {
			return fmt.Errorf("server: %w", err)
		}
	}

	if config.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1")
	}

	if config.QueryTimeoutSeconds < 1 {
		return fmt.Errorf("query_timeout_seconds must be at least 1")
	}

	return nil
}

func (config *AppConfig) QueryTimeout() time.Duration {
	return time.Duration(config.QueryTimeoutSeconds) * time.Second
}

func (config *AppConfig) RetryDelay() time.Duration {
	return time.Duration(config.RetryDelayMs) * time.Millisecond
}

func (config *AppConfig) RateWindow() time.Duration {
	return time.Duration(config.RateWindowSeconds) * time.Second
}

func (config *AppConfig) Preference() models.Preference {
	return models.ParsePreference(config.MethodPreference)
}
