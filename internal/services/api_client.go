// internal/services/api_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/netflix100plus/admin-console/internal/config"
	"github.com/netflix100plus/admin-console/internal/utils"
)

const (
	RefreshPath = "/admin/refresh-tokens"
	LoginPath   = "/admin/login"
	LogoutPath  = "/admin/logout"
	MePath      = "/admin/me"

	accessTokenCookie = "accessToken"
)

// APIClient talks to the backend with cookie credentials. A 401 triggers one
// shared token refresh; requests that fail while it runs wait for its outcome.
type APIClient struct {
	baseURL *url.URL
	http    *http.Client
	jar     http.CookieJar
	limiter *rate.Limiter
	log     *logrus.Entry

	mu               sync.Mutex
	refreshing       bool
	waiters          []chan error
	onSessionExpired func(ctx context.Context)
}

type apiResponse struct {
	status int
	body   []byte
}

func NewAPIClient(cfg config.APIConfig, log *logrus.Entry) (*APIClient, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &APIClient{
		baseURL: base,
		http:    &http.Client{Jar: jar, Timeout: cfg.Timeout},
		jar:     jar,
		limiter: rate.NewLimiter(limit, burst),
		log:     log.WithField("component", "api_client"),
	}, nil
}

// OnSessionExpired registers the hook run when a token refresh fails.
// It runs before any queued request is released.
func (c *APIClient) OnSessionExpired(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionExpired = fn
}

func (c *APIClient) Jar() http.CookieJar {
	return c.jar
}

func (c *APIClient) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// AccessTokenExpiry reports when the current access token cookie expires.
func (c *APIClient) AccessTokenExpiry() (time.Time, bool) {
	for _, cookie := range c.jar.Cookies(c.baseURL) {
		if cookie.Name != accessTokenCookie {
			continue
		}
		exp, err := utils.TokenExpiry(cookie.Value)
		if err != nil {
			c.log.WithError(err).Debug("Access token cookie is not a readable JWT")
			return time.Time{}, false
		}
		return exp, true
	}
	return time.Time{}, false
}

func (c *APIClient) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *APIClient) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *APIClient) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *APIClient) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

// Do sends one request and decodes a 2xx JSON body into out.
func (c *APIClient) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	resp, err := c.send(ctx, method, path, query, payload)
	if err != nil {
		return err
	}

	if resp.status == http.StatusUnauthorized && !skipsRefresh(path) {
		if err := c.refreshOrWait(ctx); err != nil {
			return err
		}

		// retried once; a second rejection ends the session for this call
		resp, err = c.send(ctx, method, path, query, payload)
		if err != nil {
			return err
		}
		if resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden {
			return &utils.AuthError{Status: resp.status, Message: backendMessage(resp.body)}
		}
	}

	return decodeResponse(resp, out)
}

// refreshOrWait either performs the refresh or queues behind the one in flight.
func (c *APIClient) refreshOrWait(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		waiter := make(chan error, 1)
		c.waiters = append(c.waiters, waiter)
		c.mu.Unlock()

		select {
		case err := <-waiter:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	// one caller's cancellation must not fail everyone queued behind it
	detached := context.WithoutCancel(ctx)
	err := c.refresh(detached)

	c.mu.Lock()
	c.refreshing = false
	waiters := c.waiters
	c.waiters = nil
	hook := c.onSessionExpired
	c.mu.Unlock()

	if err != nil {
		c.log.WithError(err).WithField("queued", len(waiters)).Warn("Token refresh failed, ending session")
		if hook != nil {
			hook(detached)
		}
	} else {
		c.log.WithField("queued", len(waiters)).Debug("Token refreshed")
	}

	for _, waiter := range waiters {
		waiter <- err
	}
	return err
}

func (c *APIClient) refresh(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodPost, RefreshPath, nil, nil)
	if err == nil {
		err = decodeResponse(resp, nil)
	}
	if err == nil {
		return nil
	}
	if utils.IsAuthError(err) {
		return err
	}
	return &utils.AuthError{Status: http.StatusUnauthorized, Message: "session refresh failed", Err: err}
}

func (c *APIClient) send(ctx context.Context, method, path string, query url.Values, payload []byte) (*apiResponse, error) {
	op := method + " " + path

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &utils.TransportError{Op: op, Err: err}
	}

	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, &utils.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Warn("Backend request failed")
		return nil, &utils.TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &utils.TransportError{Op: op, Err: err}
	}

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   res.StatusCode,
		"duration": time.Since(start).Milliseconds(),
	}).Debug("Backend request processed")

	return &apiResponse{status: res.StatusCode, body: body}, nil
}

// queuedWaiters is the number of requests parked behind the refresh.
func (c *APIClient) queuedWaiters() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

func skipsRefresh(path string) bool {
	switch strings.TrimRight(path, "/") {
	case RefreshPath, LoginPath, LogoutPath:
		return true
	}
	return false
}

func decodeResponse(resp *apiResponse, out interface{}) error {
	switch {
	case resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden:
		return &utils.AuthError{Status: resp.status, Message: backendMessage(resp.body)}
	case resp.status < 200 || resp.status > 299:
		return &utils.APIError{
			Status:  resp.status,
			Code:    backendCode(resp.body),
			Message: backendMessage(resp.body),
			Body:    resp.body,
		}
	}

	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return &utils.ValidationError{Message: "unexpected response shape", Err: err}
	}
	return nil
}

type backendErrorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

// backendMessage extracts "message", which the backend sends as a string or a list.
func backendMessage(body []byte) string {
	var parsed backendErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Message) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(parsed.Message, &single); err == nil {
		return single
	}
	var list []string
	if err := json.Unmarshal(parsed.Message, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

func backendCode(body []byte) string {
	var parsed backendErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Code != "" {
		return parsed.Code
	}
	return strings.ToUpper(strings.ReplaceAll(parsed.Error, " ", "_"))
}
