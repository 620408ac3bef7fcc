// pkg/utils/http_client.go
package utils

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrStatus is returned by Do for any non-2xx response.
var ErrStatus = errors.New("unexpected HTTP status")

type ClientOptions struct {
	ProxyURLs      []string
	UserAgent      string
	Timeout        time.Duration
	TLSFingerprint bool
}

// SingleAttemptClient sends each request exactly once. The archive API is
// queried page by page and a failed page aborts the run, so there is no
// retry loop here.
type SingleAttemptClient struct {
	client    *http.Client
	userAgent string
}

func NewSingleAttemptClient(opts ClientOptions) (*SingleAttemptClient, error) {
	if opts.Timeout <= 0 {
		return nil, fmt.Errorf("request timeout must be positive, got %v", opts.Timeout)
	}

	rotator, err := NewProxyRotator(opts.ProxyURLs)
	if err != nil {
		return nil, fmt.Errorf("failed to create proxy rotator: %w", err)
	}

	for i, p := range opts.ProxyURLs {
		log.Printf("Proxy #%d: %s", i+1, MaskProxyURL(p))
	}

	httpClient := &http.Client{
		Transport: NewRotatingTransport(rotator, opts.TLSFingerprint, opts.Timeout),
		Timeout:   opts.Timeout,
	}

	log.Printf("Created HTTP client (proxies: %d, TLS fingerprinting: %t, timeout: %v)",
		rotator.Len(), opts.TLSFingerprint, opts.Timeout)

	return &SingleAttemptClient{
		client:    httpClient,
		userAgent: opts.UserAgent,
	}, nil
}

func (c *SingleAttemptClient) Timeout() time.Duration {
	return c.client.Timeout
}

func (c *SingleAttemptClient) Do(req *http.Request) (*http.Response, []byte, error) {
	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request %s: %w", req.URL.Redacted(), err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decompress gzip response: %w", err)
		}
		defer gr.Close()
		reader = gr
	}

	bodyBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("%w: %d from %s", ErrStatus, resp.StatusCode, req.URL.Redacted())
	}

	resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	return resp, bodyBytes, nil
}
