package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/RRRwang/vxtuisong/internal/domain"
	"github.com/RRRwang/vxtuisong/internal/ports"
)

const defaultSendTimeout = 10 * time.Second

var _ ports.TemplateSender = (*TemplateMessageSender)(nil)

type templateMessage struct {
	ToUser     string         `json:"touser"`
	TemplateID string         `json:"template_id"`
	URL        string         `json:"url"`
	TopColor   string         `json:"topcolor"`
	Data       domain.Payload `json:"data"`
}

type sendResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// TemplateMessageSender posts template messages to the WeChat send endpoint.
// Each send obtains the (usually cached) access token from the TokenSource
// right before the POST, so a token refreshed mid-run is picked up.
type TemplateMessageSender struct {
	Tokens      ports.TokenSource
	TemplateID  string
	RedirectURL string
	BaseURL     string
	HTTPClient  *http.Client
	SendTimeout time.Duration
	Logger      *slog.Logger
}

func (s *TemplateMessageSender) Send(ctx context.Context, recipient string, payload domain.Payload) error {
	token, err := s.Tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("obtain access token: %w", err)
	}

	redirect := s.RedirectURL
	if redirect == "" {
		redirect = domain.DefaultRedirectURL
	}

	message := templateMessage{
		ToUser:     recipient,
		TemplateID: s.TemplateID,
		URL:        redirect,
		TopColor:   domain.TopColor,
		Data:       payload,
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode template message: %w", err)
	}

	timeout := s.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/cgi-bin/message/template/send?access_token=%s",
		s.baseURL(), url.QueryEscape(token))
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("send template message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenResponseBytes))
	if err != nil {
		return fmt.Errorf("read send response: %w", err)
	}

	var result sendResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("decode send response: %w", err)
	}
	if result.ErrCode != 0 {
		s.logger().Error("template message rejected", "recipient", recipient, "response", string(raw))
		return fmt.Errorf("send rejected: errcode %d: %s", result.ErrCode, result.ErrMsg)
	}

	return nil
}

func (s *TemplateMessageSender) baseURL() string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	return defaultAPIBaseURL
}

func (s *TemplateMessageSender) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

func (s *TemplateMessageSender) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
