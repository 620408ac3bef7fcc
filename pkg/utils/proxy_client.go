// pkg/utils/proxy_client.go
package utils

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	utls "github.com/refraction-networking/utls"
	proxy "golang.org/x/net/proxy"
)

type BrowserType int

const (
	Chrome BrowserType = iota
	Firefox
	Safari
	Edge
)

var clientHelloIDs = []utls.ClientHelloID{
	utls.HelloChrome_Auto,
	utls.HelloFirefox_Auto,
	utls.HelloSafari_Auto,
	utls.HelloEdge_Auto,
}

var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-US,en;q=0.8",
	"en-GB,en;q=0.9,en-US;q=0.8",
	"en-CA,en;q=0.9,fr-CA;q=0.8",
}

var userAgents = map[BrowserType][]string{
	Chrome: {
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	},
	Firefox: {
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:124.0) Gecko/20100101 Firefox/124.0",
		"Mozilla/5.0 (X11; Linux x86_64; rv:122.0) Gecko/20100101 Firefox/122.0",
	},
	Safari: {
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
	},
	Edge: {
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36 Edg/122.0.2365.80",
	},
}

func browserTypeFor(clientHelloID utls.ClientHelloID) BrowserType {
	switch clientHelloID {
	case utls.HelloFirefox_Auto:
		return Firefox
	case utls.HelloSafari_Auto:
		return Safari
	case utls.HelloEdge_Auto:
		return Edge
	default:
		return Chrome
	}
}

func randomItem[T any](items []T) T {
	return items[rand.Intn(len(items))]
}

// addBrowserHeaders makes a JSON API request look like it came from the
// browser whose TLS hello we presented.
func addBrowserHeaders(req *http.Request, browserType BrowserType) {
	req.Header.Set("User-Agent", randomItem(userAgents[browserType]))
	req.Header.Set("Accept-Language", randomItem(acceptLanguages))
	req.Header.Set("Accept-Encoding", "gzip")

	if rand.Intn(10) > 3 {
		req.Header.Set("DNT", "1")
	}

	switch browserType {
	case Firefox:
		req.Header.Set("Accept", "application/json,text/plain;q=0.9,*/*;q=0.8")
	default:
		req.Header.Set("Accept", "application/json,text/plain,*/*")
		req.Header.Set("Sec-Fetch-Dest", "empty")
		req.Header.Set("Sec-Fetch-Mode", "cors")
	}
}

type ProxyRotator struct {
	parsedURLs []*url.URL
	currentIdx uint32
}

func NewProxyRotator(proxyURLs []string) (*ProxyRotator, error) {
	rotator := &ProxyRotator{}

	for _, rawURL := range proxyURLs {
		parsedURL, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse proxy URL %s: %w", MaskProxyURL(rawURL), err)
		}
		switch parsedURL.Scheme {
		case "http", "https", "socks5":
		default:
			return nil, fmt.Errorf("unsupported proxy scheme %q in %s", parsedURL.Scheme, MaskProxyURL(rawURL))
		}
		rotator.parsedURLs = append(rotator.parsedURLs, parsedURL)
	}

	return rotator, nil
}

// NextProxy returns nil when no proxies are configured.
func (r *ProxyRotator) NextProxy() *url.URL {
	if r == nil || len(r.parsedURLs) == 0 {
		return nil
	}

	idx := (atomic.AddUint32(&r.currentIdx, 1) - 1) % uint32(len(r.parsedURLs))
	return r.parsedURLs[idx]
}

func (r *ProxyRotator) Len() int {
	if r == nil {
		return 0
	}
	return len(r.parsedURLs)
}

type FingerprintingDialer struct {
	proxyURL      *url.URL
	clientHelloID utls.ClientHelloID
	browserType   BrowserType
	dialTimeout   time.Duration
}

func NewFingerprintingDialer(proxyURL *url.URL, dialTimeout time.Duration) *FingerprintingDialer {
	helloID := randomItem(clientHelloIDs)

	return &FingerprintingDialer{
		proxyURL:      proxyURL,
		clientHelloID: helloID,
		browserType:   browserTypeFor(helloID),
		dialTimeout:   dialTimeout,
	}
}

func (d *FingerprintingDialer) DialTLSContext(ctx context.Context, network, addr string) (net.Conn, error) {
	var conn net.Conn
	var err error

	if d.proxyURL == nil {
		dialer := net.Dialer{Timeout: d.dialTimeout}
		conn, err = dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, fmt.Errorf("direct dial: %w", err)
		}
	} else {
		conn, err = d.dialThroughProxy(ctx, network, addr)
		if err != nil {
			return nil, fmt.Errorf("proxy dial: %w", err)
		}
	}

	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}

	spec, err := utls.UTLSIdToSpec(d.clientHelloID)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("uTLS spec: %w", err)
	}
	// net/http speaks HTTP/1.1 over a custom TLS dialer, so h2 must not be offered.
	for _, ext := range spec.Extensions {
		if alpn, ok := ext.(*utls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
		}
	}

	uconn := utls.UClient(conn, &utls.Config{ServerName: host}, utls.HelloCustom)
	if err := uconn.ApplyPreset(&spec); err != nil {
		conn.Close()
		return nil, fmt.Errorf("uTLS preset: %w", err)
	}
	if err := uconn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("uTLS handshake: %w", err)
	}

	return uconn, nil
}

func (d *FingerprintingDialer) dialThroughProxy(ctx context.Context, network, addr string) (net.Conn, error) {
	switch d.proxyURL.Scheme {
	case "http":
		dialer := net.Dialer{Timeout: d.dialTimeout}
		conn, err := dialer.DialContext(ctx, "tcp", d.proxyURL.Host)
		if err != nil {
			return nil, fmt.Errorf("dial HTTP proxy: %w", err)
		}

		connectReq := &http.Request{
			Method: http.MethodConnect,
			URL:    &url.URL{Opaque: addr},
			Host:   addr,
			Header: make(http.Header),
		}
		if d.proxyURL.User != nil {
			password, _ := d.proxyURL.User.Password()
			creds := base64.StdEncoding.EncodeToString([]byte(d.proxyURL.User.Username() + ":" + password))
			connectReq.Header.Set("Proxy-Authorization", "Basic "+creds)
		}

		if deadline, ok := ctx.Deadline(); ok {
			conn.SetDeadline(deadline)
			defer conn.SetDeadline(time.Time{})
		}

		if err := connectReq.Write(conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("write CONNECT: %w", err)
		}

		resp, err := http.ReadResponse(bufio.NewReader(conn), connectReq)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("read CONNECT response: %w", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			conn.Close()
			return nil, fmt.Errorf("proxy refused CONNECT: %s", resp.Status)
		}

		return conn, nil

	case "socks5":
		auth := &proxy.Auth{}
		if d.proxyURL.User != nil {
			auth.User = d.proxyURL.User.Username()
			if password, ok := d.proxyURL.User.Password(); ok {
				auth.Password = password
			}
		}

		dialer, err := proxy.SOCKS5("tcp", d.proxyURL.Host, auth, &net.Dialer{
			Timeout:   d.dialTimeout,
			KeepAlive: 30 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("create SOCKS5 dialer: %w", err)
		}

		if cd, ok := dialer.(proxy.ContextDialer); ok {
			conn, err := cd.DialContext(ctx, network, addr)
			if err != nil {
				return nil, fmt.Errorf("dial via SOCKS5 proxy: %w", err)
			}
			return conn, nil
		}

		conn, err := dialer.Dial(network, addr)
		if err != nil {
			return nil, fmt.Errorf("dial via SOCKS5 proxy: %w", err)
		}
		return conn, nil

	default:
		return nil, fmt.Errorf("proxy scheme %s not supported with TLS fingerprinting", d.proxyURL.Scheme)
	}
}

// rotatingTransport picks the next proxy for every request. Routes are
// built once per proxy so connections can be reused between pages.
type rotatingTransport struct {
	rotator *ProxyRotator
	direct  *route
	byProxy map[string]*route
}

// route holds the transports for one egress. fingerprint is nil unless
// TLS fingerprinting is on.
type route struct {
	plain       http.RoundTripper
	fingerprint http.RoundTripper
	browserType BrowserType
}

func newBaseTransport(timeout time.Duration) *http.Transport {
	return &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     false,
	}
}

func NewRotatingTransport(rotator *ProxyRotator, fingerprint bool, timeout time.Duration) http.RoundTripper {
	t := &rotatingTransport{
		rotator: rotator,
		byProxy: make(map[string]*route),
	}

	t.direct = newRoute(nil, fingerprint, timeout)
	if rotator != nil {
		for _, p := range rotator.parsedURLs {
			t.byProxy[p.String()] = newRoute(p, fingerprint, timeout)
		}
	}

	return t
}

func newRoute(proxyURL *url.URL, fingerprint bool, timeout time.Duration) *route {
	plain := newBaseTransport(timeout)
	if proxyURL != nil {
		plain.Proxy = http.ProxyURL(proxyURL)
	}
	r := &route{plain: plain}

	if fingerprint {
		// net/http skips DialTLSContext for proxied requests, so the
		// dialer does the proxy hop itself.
		dialer := NewFingerprintingDialer(proxyURL, timeout)
		fp := newBaseTransport(timeout)
		fp.DialTLSContext = dialer.DialTLSContext
		r.fingerprint = fp
		r.browserType = dialer.browserType
	}

	return r
}

func (t *rotatingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := t.direct
	if p := t.rotator.NextProxy(); p != nil {
		r = t.byProxy[p.String()]
	}

	if r.fingerprint == nil {
		return r.plain.RoundTrip(req)
	}

	reqCopy := req.Clone(req.Context())
	addBrowserHeaders(reqCopy, r.browserType)

	if req.URL.Scheme == "https" {
		return r.fingerprint.RoundTrip(reqCopy)
	}
	return r.plain.RoundTrip(reqCopy)
}

// MaskProxyURL hides the password part of a proxy URL for logging.
func MaskProxyURL(proxyURL string) string {
	if !strings.Contains(proxyURL, "@") {
		return proxyURL
	}

	parsedURL, err := url.Parse(proxyURL)
	if err != nil {
		return "[masked]"
	}

	if parsedURL.User != nil {
		username := parsedURL.User.Username()
		return strings.Replace(proxyURL, parsedURL.User.String(), username+":****", 1)
	}

	return proxyURL
}
