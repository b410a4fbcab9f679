package ports

import (
	"context"

	"github.com/RRRwang/vxtuisong/internal/domain"
)

// TokenSource yields a currently-valid access token, refreshing it from the
// provider when the cached one is missing or near expiry.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TemplateSender delivers one template message to one recipient.
type TemplateSender interface {
	Send(ctx context.Context, recipient string, payload domain.Payload) error
}
