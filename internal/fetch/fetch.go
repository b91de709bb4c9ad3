package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultMaxRedirects = 5

// Client issues single GET requests with a browser-identifying User-Agent,
// bounded redirects, and an optional relaxed-TLS mode. It performs no
// retries and keeps no state between calls; every request stands alone.
type Client struct {
	// UserAgent is sent verbatim when non-empty.
	UserAgent string
	// Timeout bounds each request. Zero means no client-side bound beyond ctx.
	Timeout time.Duration
	// MaxRedirects caps redirect following. Zero means default (5).
	MaxRedirects int
	// InsecureSkipTLSVerify disables certificate verification. Off by
	// default; enabling it trades transport trust for extraction success.
	InsecureSkipTLSVerify bool
	// HTTPClient overrides the internally built client when set. The
	// redirect policy is still attached.
	HTTPClient *http.Client

	// internal client initialized on first use; one instance keeps the
	// transport's connection pool alive across requests
	client     *http.Client
	clientOnce sync.Once
}

// Get fetches url and returns the body and Content-Type. Non-2xx statuses,
// non-HTTP(S) schemes, and non-text content types are errors.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("new request: %w", err)
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return nil, "", fmt.Errorf("unsupported URL scheme: %q", rawURL)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(req.Context(), c.Timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !isExtractableContentType(contentType) {
		return nil, "", fmt.Errorf("unsupported content type: %s", contentType)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	return b, contentType, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client.
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	c.clientOnce.Do(func() {
		c.client = &http.Client{
			Transport:     newTransport(c.InsecureSkipTLSVerify),
			Timeout:       c.Timeout,
			CheckRedirect: c.checkRedirectFunc(),
		}
	})
	return c.client
}

// newTransport builds the HTTP transport. TLS certificate verification stays
// on unless insecure is set.
func newTransport(insecure bool) *http.Transport {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if insecure {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return t
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.MaxRedirects
	if max <= 0 {
		max = defaultMaxRedirects
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		if req.URL == nil || !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// isExtractableContentType admits HTML variants and plain text; everything
// else (PDF, images, binaries) is rejected before reading the body.
func isExtractableContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return strings.HasPrefix(ct, "text/html") ||
		strings.HasPrefix(ct, "application/xhtml+xml") ||
		strings.HasPrefix(ct, "text/plain")
}
