package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/curanet/careadm/pkg/config"
	pkgerrors "github.com/curanet/careadm/pkg/errors"
	"github.com/curanet/careadm/pkg/logger"
	"github.com/curanet/careadm/pkg/types"
)

const (
	headerAuthorization = "Authorization"
	headerResidenceID   = "X-Residence-Id"
	headerRequestID     = "X-Request-Id"
)

var errLoggerRequired = errors.New("api logger is required")

// Client speaks to the CuraNet backend with centralized auth headers,
// residence scoping, circuit breaking, and error mapping.
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	logger     *logger.Logger

	mu             sync.RWMutex
	tokenSource    func() string
	residenceScope func() string
	onUnauthorized func()
}

// NewClient initializes the backend client and validates the base URL.
func NewClient(cfg config.APIConfig, breakerCfg config.BreakerConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("api base url is required")
	}

	if breakerCfg.MinRequests == 0 {
		breakerCfg.MinRequests = 5
	}
	if breakerCfg.FailureRate <= 0 {
		breakerCfg.FailureRate = 0.6
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "curanet-api",
		MaxRequests: breakerCfg.MaxRequests,
		Interval:    breakerCfg.Interval,
		Timeout:     breakerCfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < breakerCfg.MinRequests {
				return false
			}
			rate := float64(counts.TotalFailures) / float64(counts.Requests)
			return rate >= breakerCfg.FailureRate
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    base,
		breaker:    breaker,
		logger:     logg,
	}, nil
}

// SetTokenSource registers the bearer token provider, normally the session
// holder. A nil source sends unauthenticated requests.
func (c *Client) SetTokenSource(source func() string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokenSource = source
}

// SetResidenceScope registers the selected-residence provider. When it
// returns a non-empty id, residence-scoped requests carry the id in the
// X-Residence-Id header.
func (c *Client) SetResidenceScope(scope func() string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.residenceScope = scope
}

// SetUnauthorizedHook registers the callback fired when the backend rejects
// the session: a 401, or an error message mentioning "token".
func (c *Client) SetUnauthorizedHook(hook func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = hook
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokenSource == nil {
		return ""
	}
	return c.tokenSource()
}

func (c *Client) residence() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.residenceScope == nil {
		return ""
	}
	return c.residenceScope()
}

func (c *Client) fireUnauthorized() {
	c.mu.RLock()
	hook := c.onUnauthorized
	c.mu.RUnlock()
	if hook != nil {
		hook()
	}
}

// residenceHeaderExempt reports whether a path never receives the
// residence header: auth endpoints and the residence resources themselves.
func residenceHeaderExempt(path string) bool {
	trimmed := strings.TrimPrefix(path, "/v1/")
	return strings.HasPrefix(trimmed, "auth") || strings.HasPrefix(trimmed, "residences")
}

type backendResponse struct {
	status int
	body   []byte
}

// serverError carries a 500-class response through the circuit breaker so
// the caller can still inspect the status and body.
type serverError struct {
	backendResponse
}

func (e *serverError) Error() string {
	return fmt.Sprintf("backend returned %d", e.status)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, header http.Header, body, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestID, uuid.NewString())

	if token := c.token(); token != "" && !strings.HasPrefix(path, "/v1/auth/login") {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}
	// The residence scope rides a side-channel header, never a query param.
	// A request that already carries the header keeps its own value.
	if req.Header.Get(headerResidenceID) == "" && !residenceHeaderExempt(path) {
		if id := c.residence(); id != "" {
			req.Header.Set(headerResidenceID, id)
		}
	}

	result, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		payload, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}
		// Only transport failures and 500-class responses feed the breaker.
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, &serverError{backendResponse{status: resp.StatusCode, body: payload}}
		}
		return backendResponse{status: resp.StatusCode, body: payload}, nil
	})

	var response backendResponse
	var failed *serverError
	switch {
	case err == nil:
		response = result.(backendResponse)
	case errors.As(err, &failed):
		response = failed.backendResponse
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		return pkgerrors.Wrap(pkgerrors.CodeUnavailable, err, "backend circuit open")
	default:
		c.logger.Error(c.logger.WithField(ctx, "dump", pkgerrors.Dump(err)), "backend unreachable", err)
		return pkgerrors.Wrap(pkgerrors.CodeUnavailable, err, fmt.Sprintf("%s %s", method, path))
	}

	if response.status >= http.StatusBadRequest {
		return c.mapError(ctx, method, path, response)
	}

	if out != nil && len(response.body) > 0 {
		if err := json.Unmarshal(response.body, out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode response body")
		}
	}
	return nil
}

func (c *Client) mapError(ctx context.Context, method, path string, response backendResponse) error {
	message := errorMessage(response.body)

	// A 401 from anywhere, or any error mentioning the token, means the
	// session is no longer usable.
	if response.status == http.StatusUnauthorized || containsToken(message) {
		c.fireUnauthorized()
	}

	code := pkgerrors.CodeForStatus(response.status)
	if message == "" {
		message = pkgerrors.MetadataFor(code).PublicMessage
	}

	ctx = c.logger.WithFields(ctx, map[string]any{
		"method": method,
		"path":   path,
		"status": response.status,
	})
	c.logger.Warn(ctx, "backend request failed: "+message)

	return pkgerrors.New(code, message)
}

func errorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	var flat struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat.Message
	}
	return ""
}

func containsToken(message string) bool {
	return strings.Contains(strings.ToLower(message), "token")
}

func (c *Client) get(ctx context.Context, path string, query url.Values, header http.Header, out any) error {
	return c.do(ctx, http.MethodGet, path, query, header, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, nil)
}
