// Package session stores the single pending URL per conversation. The text
// handler writes it, the button-press handler reads it; every new link
// overwrites the previous one.
package session

import "context"

// Store is the per-conversation pending-URL store. GetPendingURL returns the
// empty string when no URL is remembered for the chat.
type Store interface {
	SetPendingURL(ctx context.Context, chatID int64, url string) error
	GetPendingURL(ctx context.Context, chatID int64) (string, error)
	Ping(ctx context.Context) error
	Close() error
}
