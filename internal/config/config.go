// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EngineLexRank = "lexrank"
	EngineMMR     = "mmr"
)

type Config struct {
	ArchiveBaseURL         string
	UserAgent              string
	ProxyURLs              []string
	TLSFingerprint         bool
	RequestTimeout         time.Duration
	PageSize               int
	SubmissionRequestLimit int
	SummarySentences       int
	SummarizerEngine       string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	proxyURLs, err := parseProxyURLs(os.Getenv("ARCHIVE_PROXY_URLS"))
	if err != nil {
		return nil, err
	}

	tlsFingerprint, err := getEnvBool("USE_TLS_FINGERPRINT", false)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := getEnvDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	pageSize, err := getEnvInt("PAGE_SIZE", 500)
	if err != nil {
		return nil, err
	}
	requestLimit, err := getEnvInt("SUBMISSION_REQUEST_LIMIT", 1)
	if err != nil {
		return nil, err
	}
	summarySentences, err := getEnvInt("SUMMARY_SENTENCES", 7)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ArchiveBaseURL:         getEnv("ARCHIVE_BASE_URL", "https://api.pushshift.io"),
		UserAgent:              getEnv("ARCHIVE_USER_AGENT", "reddit-digest/1.0"),
		ProxyURLs:              proxyURLs,
		TLSFingerprint:         tlsFingerprint,
		RequestTimeout:         requestTimeout,
		PageSize:               pageSize,
		SubmissionRequestLimit: requestLimit,
		SummarySentences:       summarySentences,
		SummarizerEngine:       strings.ToLower(getEnv("SUMMARIZER_ENGINE", EngineLexRank)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.ArchiveBaseURL); err != nil {
		return fmt.Errorf("invalid ARCHIVE_BASE_URL %q: %w", c.ArchiveBaseURL, err)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", c.RequestTimeout)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.SubmissionRequestLimit <= 0 {
		return fmt.Errorf("SUBMISSION_REQUEST_LIMIT must be positive, got %d", c.SubmissionRequestLimit)
	}
	if c.SummarySentences <= 0 {
		return fmt.Errorf("SUMMARY_SENTENCES must be positive, got %d", c.SummarySentences)
	}
	switch c.SummarizerEngine {
	case EngineLexRank, EngineMMR:
	default:
		return fmt.Errorf("unknown SUMMARIZER_ENGINE %q (want %s or %s)", c.SummarizerEngine, EngineLexRank, EngineMMR)
	}
	if c.TLSFingerprint {
		// The fingerprinting dialer tunnels through http CONNECT or SOCKS5 only.
		for _, proxyURL := range c.ProxyURLs {
			if strings.HasPrefix(proxyURL, "https://") {
				return fmt.Errorf("USE_TLS_FINGERPRINT does not support https proxies, got %s", proxyURL)
			}
		}
	}
	return nil
}

func parseProxyURLs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var proxyURLs []string
	for _, proxy := range strings.Split(raw, ",") {
		proxy = strings.TrimSpace(proxy)
		if proxy == "" {
			continue
		}

		if !strings.HasPrefix(proxy, "http://") && !strings.HasPrefix(proxy, "https://") && !strings.HasPrefix(proxy, "socks5://") {
			return nil, fmt.Errorf("invalid ARCHIVE_PROXY_URLS entry %q, must start with http://, https:// or socks5://", proxy)
		}

		if _, err := url.Parse(proxy); err != nil {
			return nil, fmt.Errorf("invalid ARCHIVE_PROXY_URLS entry %q: %w", proxy, err)
		}

		proxyURLs = append(proxyURLs, proxy)
	}

	return proxyURLs, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return intValue, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return boolValue, nil
}

// getEnvDuration wants a unit ("30s", "2m"). A bare number is an error.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return duration, nil
}
