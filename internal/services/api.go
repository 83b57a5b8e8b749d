// HTTP client for the album backend
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/desertthunder/musicdb/internal/shared"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const defaultBaseURL string = "http://127.0.0.1:8000"

// HTTPError reports a backend response with a non-success status code.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Status)
}

func (e *HTTPError) Unwrap() error {
	return shared.ErrHTTPStatus
}

// APIService provides methods for making GET requests against the album backend.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewAPIService creates a new API service instance for the album backend.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// SetRateLimit throttles outbound requests to rps per second. Zero or less removes the limit.
func (a *APIService) SetRateLimit(rps float64) {
	if rps <= 0 {
		a.limiter = nil
		return
	}
	a.limiter = rate.NewLimiter(rate.Limit(rps), 1)
}

// BaseURL returns the backend origin requests are sent to.
func (a *APIService) BaseURL() string {
	return a.baseURL
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the status code is in the 2xx range.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get performs a GET request to the specified path and returns the raw response, whatever its status.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// GetJSON performs a GET request and returns the JSON body of a successful response.
//
// A non-2xx status fails with [*HTTPError]. A body that is not JSON fails with [shared.ErrMalformedJSON].
func (a *APIService) GetJSON(ctx context.Context, path string) ([]byte, error) {
	resp, err := a.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	if !gjson.ValidBytes(resp.Body) {
		return nil, fmt.Errorf("%w from %s", shared.ErrMalformedJSON, path)
	}

	return resp.Body, nil
}
