package status_poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const maxHealthResponseBytes = 1 << 20

type HealthClient interface {
	GetHealth(ctx context.Context) (HealthStatus, error)
}

// HealthStatus is the payload of the backend health endpoint.
type HealthStatus struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	Timestamp   string  `json:"timestamp"`
	Environment string  `json:"environment"`
	Uptime      float64 `json:"uptime"`
}

type ProbeErrorKind string

const (
	ProbeErrorTransport ProbeErrorKind = "transport"
	ProbeErrorHTTP      ProbeErrorKind = "http"
	ProbeErrorMalformed ProbeErrorKind = "malformed"
)

type ProbeError struct {
	Kind       ProbeErrorKind
	StatusCode int
	Err        error
}

func (e *ProbeError) Error() string {
	switch e.Kind {
	case ProbeErrorHTTP:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	case ProbeErrorMalformed:
		return fmt.Sprintf("malformed response: %v", e.Err)
	default:
		return fmt.Sprintf("network error: %v", e.Err)
	}
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

type healthClient struct {
	client    *http.Client
	healthURL string
}

// GetHealth performs exactly one request; retrying is left to the next scheduled probe.
func (h *healthClient) GetHealth(ctx context.Context) (HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.healthURL, nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("HealthClient.GetHealth creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return HealthStatus{}, &ProbeError{Kind: ProbeErrorTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxHealthResponseBytes))
		return HealthStatus{}, &ProbeError{Kind: ProbeErrorHTTP, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHealthResponseBytes))
	if err != nil {
		return HealthStatus{}, &ProbeError{Kind: ProbeErrorTransport, Err: err}
	}
	return decodeHealthStatus(body)
}

func decodeHealthStatus(body []byte) (HealthStatus, error) {
	var payload struct {
		HealthStatus
		Uptime *float64 `json:"uptime"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return HealthStatus{}, &ProbeError{Kind: ProbeErrorMalformed, Err: err}
	}
	switch {
	case payload.Status != "success":
		return HealthStatus{}, &ProbeError{Kind: ProbeErrorMalformed, Err: fmt.Errorf("unexpected status %q", payload.Status)}
	case payload.Uptime == nil:
		return HealthStatus{}, &ProbeError{Kind: ProbeErrorMalformed, Err: errors.New("missing uptime")}
	case *payload.Uptime < 0:
		return HealthStatus{}, &ProbeError{Kind: ProbeErrorMalformed, Err: fmt.Errorf("negative uptime %v", *payload.Uptime)}
	}
	status := payload.HealthStatus
	status.Uptime = *payload.Uptime
	return status, nil
}

func NewHealthClient(baseURL string, healthPath string, requestTimeout time.Duration) (HealthClient, error) {
	healthURL, err := url.JoinPath(baseURL, healthPath)
	if err != nil {
		return nil, fmt.Errorf("NewHealthClient: %w", err)
	}
	return &healthClient{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		healthURL: healthURL,
	}, nil
}
