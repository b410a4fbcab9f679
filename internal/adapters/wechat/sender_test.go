package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RRRwang/vxtuisong/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context) (string, error) {
	return s.token, s.err
}

func TestSendPostsTemplateMessage(t *testing.T) {
	t.Parallel()

	payload := domain.Payload{
		"date":    {Value: "2024-03-15 星期五", Color: "#aabbcc"},
		"weather": {Value: "晴", Color: "#112233"},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cgi-bin/message/template/send", r.URL.Path)
		assert.Equal(t, "tok-1", r.URL.Query().Get("access_token"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var message struct {
			ToUser     string         `json:"touser"`
			TemplateID string         `json:"template_id"`
			URL        string         `json:"url"`
			TopColor   string         `json:"topcolor"`
			Data       domain.Payload `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&message))
		assert.Equal(t, "user-1", message.ToUser)
		assert.Equal(t, "tpl-1", message.TemplateID)
		assert.Equal(t, "https://example.com/brief", message.URL)
		assert.Equal(t, "#FF0000", message.TopColor)
		assert.Equal(t, payload, message.Data)

		_, _ = fmt.Fprint(w, `{"errcode":0,"errmsg":"ok"}`)
	}))
	t.Cleanup(server.Close)

	sender := &TemplateMessageSender{
		Tokens:      staticTokens{token: "tok-1"},
		TemplateID:  "tpl-1",
		RedirectURL: "https://example.com/brief",
		BaseURL:     server.URL,
		HTTPClient:  server.Client(),
	}

	require.NoError(t, sender.Send(context.Background(), "user-1", payload))
}

func TestSendDefaultsRedirectURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var message struct {
			URL string `json:"url"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&message))
		assert.Equal(t, domain.DefaultRedirectURL, message.URL)
		_, _ = fmt.Fprint(w, `{"errcode":0}`)
	}))
	t.Cleanup(server.Close)

	sender := &TemplateMessageSender{
		Tokens:     staticTokens{token: "tok-1"},
		TemplateID: "tpl-1",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	}

	require.NoError(t, sender.Send(context.Background(), "user-1", domain.Payload{}))
}

func TestSendFailsOnNonZeroErrCode(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"errcode":40003,"errmsg":"invalid openid"}`)
	}))
	t.Cleanup(server.Close)

	sender := &TemplateMessageSender{
		Tokens:     staticTokens{token: "tok-1"},
		TemplateID: "tpl-1",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	}

	err := sender.Send(context.Background(), "user-1", domain.Payload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "errcode 40003")
}

func TestSendFailsWhenTokenUnavailable(t *testing.T) {
	t.Parallel()

	sender := &TemplateMessageSender{
		Tokens:     staticTokens{err: domain.ErrAuthRejected},
		TemplateID: "tpl-1",
	}

	err := sender.Send(context.Background(), "user-1", domain.Payload{})
	require.ErrorIs(t, err, domain.ErrAuthRejected)
}
