package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/common"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/credstore"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/logging"
	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/models"
)

// HTTPClient implements Client over plain HTTP+JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   credstore.Store
	log     logging.Logger

	// onUnauthorized is invoked once per failing request chain when the
	// server rejects the presented credential. It must be idempotent.
	onUnauthorized func(ctx context.Context)
}

// NewHTTPClient constructs a gateway for the backend at baseURL. The timeout
// is a fixed upper bound on every outbound request; requests exceeding it
// surface as network-error failures, never as credential rejections.
func NewHTTPClient(baseURL string, timeout time.Duration, creds credstore.Store, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		log:     log,
	}
}

// SetUnauthorizedHandler installs the hook invoked on credential rejection.
// Typically this is the session store's Logout. Set once during wiring,
// before the client is used.
func (c *HTTPClient) SetUnauthorizedHandler(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

// request describes one outbound call. The attempt count is immutable: a
// retried request is a new value produced by next(), never a mutation. The
// unauthorized hook fires only for attempt 0, which guards against loops if
// the teardown path ever issues requests of its own.
type request struct {
	method  string
	path    string
	body    any
	attempt int
}

func (r request) next() request {
	r.attempt++
	return r
}

// envelope is the backend's uniform response body.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

// call performs req and returns the decoded envelope. Any failure comes back
// as *APIError. A 401 additionally triggers the unauthorized hook before the
// error is propagated to the caller.
func (c *HTTPClient) call(ctx context.Context, req request) (*envelope, error) {
	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, &APIError{Message: "failed to encode request: " + err.Error(), NoResponse: true}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return nil, &APIError{Message: "failed to build request: " + err.Error(), NoResponse: true}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(common.RequestIDHeader, uuid.NewString())

	// A credential read failure must not block the request: proceed
	// unauthenticated, since some callers probe pre-authentication state.
	token, err := c.creds.Load(ctx)
	if err != nil {
		c.log.Warn(ctx, "credential read failed, sending request unauthenticated", "error", err)
	} else if token != "" {
		httpReq.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &APIError{Message: err.Error(), NoResponse: true}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: "failed to read response: " + err.Error(), StatusCode: resp.StatusCode}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if req.attempt == 0 && c.onUnauthorized != nil {
			c.log.Warn(ctx, "credential rejected, tearing down session", "path", req.path)
			c.onUnauthorized(ctx)
		}
		return nil, &APIError{Message: serverMessage(data, "session expired"), StatusCode: resp.StatusCode}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &APIError{Message: "malformed response body", StatusCode: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		return nil, &APIError{Message: serverMessage(data, resp.Status), StatusCode: resp.StatusCode}
	}

	return &env, nil
}

// serverMessage extracts a human-readable message from an error body,
// falling back to fallback when the body carries none.
func serverMessage(data []byte, fallback string) string {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return fallback
}

func decodeData[T any](env *envelope) (T, error) {
	var v T
	if len(env.Data) == 0 {
		return v, &APIError{Message: "response carries no data"}
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return v, &APIError{Message: "malformed response data"}
	}
	return v, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	env, err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": email, "password": password},
	})
	if err != nil {
		return "", err
	}
	if env.Token == "" {
		return "", &APIError{Message: "login response carries no token"}
	}
	return env.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (string, error) {
	env, err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   map[string]string{"name": name, "email": email, "password": password},
	})
	if err != nil {
		return "", err
	}
	if env.Token == "" {
		return "", &APIError{Message: "registration response carries no token"}
	}
	return env.Token, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.UserProfile, error) {
	env, err := c.call(ctx, request{method: http.MethodGet, path: "/users/me"})
	if err != nil {
		return nil, err
	}
	return decodeData[*models.UserProfile](env)
}

func (c *HTTPClient) GenerateIdeas(ctx context.Context, topic, audience string) ([]models.Idea, error) {
	body := map[string]string{"topic": topic}
	if audience != "" {
		body["audience"] = audience
	}
	env, err := c.call(ctx, request{method: http.MethodPost, path: "/ideation/generate", body: body})
	if err != nil {
		return nil, err
	}
	return decodeData[[]models.Idea](env)
}

func (c *HTTPClient) SavedIdeas(ctx context.Context) ([]models.Idea, error) {
	env, err := c.call(ctx, request{method: http.MethodGet, path: "/ideation/saved"})
	if err != nil {
		return nil, err
	}
	return decodeData[[]models.Idea](env)
}

func (c *HTTPClient) GenerateScript(ctx context.Context, ideaID string) (*models.Script, error) {
	env, err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/scripts/generate",
		body:   map[string]string{"ideaId": ideaID},
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*models.Script](env)
}

func (c *HTTPClient) ListScripts(ctx context.Context) ([]models.Script, error) {
	env, err := c.call(ctx, request{method: http.MethodGet, path: "/scripts"})
	if err != nil {
		return nil, err
	}
	return decodeData[[]models.Script](env)
}

func (c *HTTPClient) AnalyzeSEO(ctx context.Context, title, description string) (*models.SEOReport, error) {
	env, err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/seo/analyze",
		body:   map[string]string{"title": title, "description": description},
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*models.SEOReport](env)
}

func (c *HTTPClient) CalendarEvents(ctx context.Context) ([]models.CalendarEvent, error) {
	env, err := c.call(ctx, request{method: http.MethodGet, path: "/calendar/events"})
	if err != nil {
		return nil, err
	}
	return decodeData[[]models.CalendarEvent](env)
}

func (c *HTTPClient) ScheduleEvent(ctx context.Context, event models.CalendarEvent) (*models.CalendarEvent, error) {
	env, err := c.call(ctx, request{method: http.MethodPost, path: "/calendar/schedule", body: event})
	if err != nil {
		return nil, err
	}
	return decodeData[*models.CalendarEvent](env)
}
