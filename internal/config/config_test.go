package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"ARCHIVE_BASE_URL", "ARCHIVE_USER_AGENT", "ARCHIVE_PROXY_URLS", "USE_TLS_FINGERPRINT",
		"REQUEST_TIMEOUT", "PAGE_SIZE", "SUBMISSION_REQUEST_LIMIT", "SUMMARY_SENTENCES", "SUMMARIZER_ENGINE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.ArchiveBaseURL != "https://api.pushshift.io" {
		t.Errorf("Unexpected base URL %s", cfg.ArchiveBaseURL)
	}
	if cfg.PageSize != 500 {
		t.Errorf("Expected page size 500, got %d", cfg.PageSize)
	}
	if cfg.SubmissionRequestLimit != 1 {
		t.Errorf("Expected submission request limit 1, got %d", cfg.SubmissionRequestLimit)
	}
	if cfg.SummarySentences != 7 {
		t.Errorf("Expected 7 summary sentences, got %d", cfg.SummarySentences)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.SummarizerEngine != EngineLexRank {
		t.Errorf("Expected lexrank engine, got %s", cfg.SummarizerEngine)
	}
	if len(cfg.ProxyURLs) != 0 || cfg.TLSFingerprint {
		t.Errorf("Expected direct connection by default, got %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ARCHIVE_BASE_URL", "http://localhost:9000")
	t.Setenv("ARCHIVE_PROXY_URLS", " http://a:1 , socks5://u:p@b:2 ,")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("SUBMISSION_REQUEST_LIMIT", "3")
	t.Setenv("SUMMARIZER_ENGINE", "MMR")
	t.Setenv("USE_TLS_FINGERPRINT", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if len(cfg.ProxyURLs) != 2 || cfg.ProxyURLs[1] != "socks5://u:p@b:2" {
		t.Errorf("Unexpected proxies %v", cfg.ProxyURLs)
	}
	if cfg.RequestTimeout != 5*time.Second || cfg.SubmissionRequestLimit != 3 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.SummarizerEngine != EngineMMR || !cfg.TLSFingerprint {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"ARCHIVE_PROXY_URLS", "ftp://proxy"},
		{"SUBMISSION_REQUEST_LIMIT", "0"},
		{"SUBMISSION_REQUEST_LIMIT", "five"},
		{"SUMMARY_SENTENCES", "-2"},
		{"SUMMARY_SENTENCES", "7x"},
		{"PAGE_SIZE", "500.5"},
		{"REQUEST_TIMEOUT", "30"},
		{"USE_TLS_FINGERPRINT", "sometimes"},
		{"SUMMARIZER_ENGINE", "gpt"},
		{"ARCHIVE_BASE_URL", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			if err == nil {
				t.Fatalf("Expected error for %s=%s", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("Expected error to name %s, got %v", tt.key, err)
			}
		})
	}
}

func TestValidateRejectsHTTPSProxyWithFingerprinting(t *testing.T) {
	cfg := &Config{
		ArchiveBaseURL:         "https://api.pushshift.io",
		ProxyURLs:              []string{"http://a:1", "https://b:2"},
		TLSFingerprint:         true,
		RequestTimeout:         time.Second,
		PageSize:               500,
		SubmissionRequestLimit: 1,
		SummarySentences:       7,
		SummarizerEngine:       EngineLexRank,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Expected https proxy to be rejected with TLS fingerprinting")
	}

	cfg.TLSFingerprint = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("https proxy without fingerprinting should be valid, got %v", err)
	}
}
