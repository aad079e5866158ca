// Package gateway provides the uniform request/response capability for the
// four ServeXa microservices: identity (auth), appointments, vehicles, and
// notifications.
//
// The client is explicitly constructed and injected; there is no package
// singleton. All calls share one long-lived http.Client; each call is
// independently addressed and stateless, so no per-request locking is needed.
// An optional bearer credential is forwarded verbatim on every request.
//
// Absence is signalled distinctly from failure: a missing record yields a nil
// value or empty list with a nil error, while transport and HTTP errors yield
// a *ServiceError for the caller to catch.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/CharukaVithana/ServeXa/internal/log"
)

// DefaultTimeout bounds each downstream request when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// ServiceError reports a failed downstream call. It is distinct from absence:
// a 2xx response with an empty body is not an error.
type ServiceError struct {
	Service string // logical service name, e.g. "appointment-service"
	Status  int    // HTTP status, 0 for transport failures
	Err     error  // underlying cause, may be nil for plain HTTP errors
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("calling %s: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("calling %s: unexpected status %d", e.Service, e.Status)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Config carries the per-service base URLs and shared transport settings.
type Config struct {
	AuthURL         string
	AppointmentURL  string
	VehicleURL      string
	NotificationURL string

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the transport; nil builds one from Timeout.
	// Used by tests to point at httptest servers.
	HTTPClient *http.Client

	Logger log.Logger
}

// Client is the downstream service gateway.
// Safe for concurrent use; construct once at startup and Close on shutdown.
type Client struct {
	httpc *http.Client

	auth         string
	appointment  string
	vehicle      string
	notification string

	logger log.Logger
}

// New creates a gateway client. Base URLs must be non-empty; trailing slashes
// are trimmed so path joining stays predictable.
func New(cfg Config) (*Client, error) {
	for name, u := range map[string]string{
		"auth":         cfg.AuthURL,
		"appointment":  cfg.AppointmentURL,
		"vehicle":      cfg.VehicleURL,
		"notification": cfg.NotificationURL,
	} {
		if u == "" {
			return nil, fmt.Errorf("gateway: %s service URL is empty", name)
		}
	}

	httpc := cfg.HTTPClient
	if httpc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	return &Client{
		httpc:        httpc,
		auth:         strings.TrimRight(cfg.AuthURL, "/"),
		appointment:  strings.TrimRight(cfg.AppointmentURL, "/"),
		vehicle:      strings.TrimRight(cfg.VehicleURL, "/"),
		notification: strings.TrimRight(cfg.NotificationURL, "/"),
		logger:       logger.With("component", "gateway"),
	}, nil
}

// Close releases idle transport connections. The client must not be used
// after Close.
func (c *Client) Close() {
	c.httpc.CloseIdleConnections()
}

// getJSON performs a GET against one service and decodes the JSON response
// into out. A nil decode target skips decoding.
//
// Error contract:
//   - transport failure or non-2xx status: *ServiceError
//   - 2xx with empty body: out untouched (absence)
//   - 2xx with undecodable body: logged, out untouched (absence, spec policy
//     for data-shape surprises)
func (c *Client) getJSON(ctx context.Context, service, base, path string, query url.Values, token string, out any) error {
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &ServiceError{Service: service, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &ServiceError{Service: service, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("downstream call",
		"service", service,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &ServiceError{Service: service, Status: resp.StatusCode}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ServiceError{Service: service, Err: err}
	}
	if len(body) == 0 {
		c.logger.Warn("empty response body", "service", service, "path", path)
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		// Unexpected shape is treated as absence, never raised.
		c.logger.Warn("undecodable response body, treating as absent",
			"service", service, "path", path, "error", err)
		return nil
	}
	return nil
}

// envelope is the {success, data, message} wrapper used by the auth and
// notification services.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// dataIsAbsent reports whether an envelope carries no usable payload.
func (e envelope) dataIsAbsent() bool {
	if len(e.Data) == 0 {
		return true
	}
	s := strings.TrimSpace(string(e.Data))
	return s == "null" || s == `""`
}
