package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
	"github.com/moonblokz/telemetry-cli/internal/infra/buildinfo"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
)

const (
	// CommandPath is the hub endpoint receiving command documents.
	CommandPath = "/command"

	// APIKeyHeader carries the API key.
	APIKeyHeader = "X-Api-Key"

	// DefaultTimeout bounds each request when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes caps how much of an error body is read and reported.
	maxBodyBytes = 64 << 10
)

// HubClient sends commands to a telemetry hub.
type HubClient struct {
	mu      sync.RWMutex
	baseURL string
	apiKey  string

	client    *http.Client
	userAgent string
	logger    logger.Logger
}

// Option configures a HubClient.
type Option func(*HubClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HubClient) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HubClient) {
		c.client = hc
	}
}

// WithTLSConfig sets the TLS client configuration, e.g. a custom root CA.
// A nil config keeps the defaults.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *HubClient) {
		if cfg == nil {
			return
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = cfg
		c.client.Transport = transport
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(c *HubClient) {
		c.logger = l
	}
}

// NewHubClient creates a client for the hub at hubURL.
func NewHubClient(hubURL, apiKey string, opts ...Option) *HubClient {
	c := &HubClient{
		baseURL:   normalizeBaseURL(hubURL),
		apiKey:    apiKey,
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: buildinfo.UserAgent("telemetry-cli"),
		logger:    logger.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// UpdateCredentials swaps the hub URL and API key. Safe for concurrent use
// with Send.
func (c *HubClient) UpdateCredentials(hubURL, apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = normalizeBaseURL(hubURL)
	c.apiKey = apiKey
}

// BaseURL returns the base URL of the client.
func (c *HubClient) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SendCommand converts cmd to its canonical document and sends it.
func (c *HubClient) SendCommand(ctx context.Context, cmd domain.Command) error {
	doc, err := domain.ToDocument(cmd)
	if err != nil {
		return err
	}
	return c.Send(ctx, doc)
}

// Send posts a document to the hub and maps the response status to an error.
func (c *HubClient) Send(ctx context.Context, doc *domain.Document) error {
	start := time.Now()

	resp, err := c.Post(ctx, CommandPath, doc)
	if err != nil {
		c.logger.Debug("hub request failed",
			"command", doc.Command,
			"error", err,
		)
		return domain.ErrHubUnreachable.WithDetails(err.Error()).WithCause(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("hub responded",
		"command", doc.Command,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return CheckResponse(resp)
}

// Post performs a POST request with a JSON body.
func (c *HubClient) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	c.mu.RLock()
	url, apiKey := c.baseURL+path, c.apiKey
	c.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(APIKeyHeader, apiKey)
	req.Header.Set("User-Agent", c.userAgent)

	return c.client.Do(req)
}

// CheckResponse maps a hub response status onto the error taxonomy.
// It reads (up to a limit) but does not close the body.
func CheckResponse(resp *http.Response) error {
	code := resp.StatusCode

	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized:
		return domain.ErrHubUnauthorized
	case code >= 400 && code < 500:
		return domain.ErrHubClientError.WithDetails(statusWithBody(code, readBody(resp)))
	case code >= 500 && code < 600:
		return domain.ErrHubServerError.WithDetails(statusWithBody(code, readBody(resp)))
	default:
		return domain.ErrHubUnexpectedStatus.WithDetails(strconv.Itoa(code))
	}
}

func readBody(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func statusWithBody(code int, body string) string {
	if body == "" {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(code) + " - " + body
}

func normalizeBaseURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "http://" + u
	}
	return u
}
