package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/RRRwang/vxtuisong/internal/domain"
	"github.com/RRRwang/vxtuisong/internal/ports"
	"golang.org/x/sync/singleflight"
)

const (
	defaultAPIBaseURL = "https://api.weixin.qq.com"

	// expirySkew is subtracted from the provider-reported lifetime so a
	// token never expires while an in-flight send still holds it.
	expirySkew = 300 * time.Second

	maxTokenResponseBytes = 1 << 20
)

var _ ports.TokenSource = (*TokenAuthority)(nil)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenAuthority exchanges the app credentials for an access token and
// caches it until shortly before expiry. Concurrent callers that miss the
// cache coalesce into a single upstream fetch.
type TokenAuthority struct {
	AppID      string
	AppSecret  string
	BaseURL    string
	HTTPClient *http.Client
	Clock      ports.Clock
	Logger     *slog.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	group     singleflight.Group
}

func (a *TokenAuthority) Token(ctx context.Context) (string, error) {
	a.mu.Lock()
	if a.token != "" && a.clock().Now().Before(a.expiresAt) {
		token := a.token
		a.mu.Unlock()
		return token, nil
	}
	a.mu.Unlock()

	result, err, _ := a.group.Do("token", func() (any, error) {
		// Re-check under the lock: another caller may have refreshed
		// while this one was queued behind the flight.
		a.mu.Lock()
		if a.token != "" && a.clock().Now().Before(a.expiresAt) {
			token := a.token
			a.mu.Unlock()
			return token, nil
		}
		a.mu.Unlock()

		return a.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (a *TokenAuthority) refresh(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/cgi-bin/token?grant_type=client_credential&appid=%s&secret=%s",
		a.baseURL(), url.QueryEscape(a.AppID), url.QueryEscape(a.AppSecret))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}

	resp, err := a.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("request access token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		a.logger().Error("token exchange rejected", "response", string(body))
		return "", fmt.Errorf("%w: response missing access_token", domain.ErrAuthRejected)
	}

	expiresAt := a.clock().Now().Add(time.Duration(payload.ExpiresIn)*time.Second - expirySkew)

	a.mu.Lock()
	a.token = payload.AccessToken
	a.expiresAt = expiresAt
	a.mu.Unlock()

	return payload.AccessToken, nil
}

func (a *TokenAuthority) baseURL() string {
	if a.BaseURL != "" {
		return a.BaseURL
	}
	return defaultAPIBaseURL
}

func (a *TokenAuthority) httpClient() *http.Client {
	if a.HTTPClient != nil {
		return a.HTTPClient
	}
	return http.DefaultClient
}

func (a *TokenAuthority) clock() ports.Clock {
	if a.Clock != nil {
		return a.Clock
	}
	return ports.SystemClock{}
}

func (a *TokenAuthority) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}
