// Package errors provides domain-specific sentinel errors for the bot.
// Use errors.Is() to check these errors in your code.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingReplyToken indicates an event arrived without a reply token.
	ErrMissingReplyToken = errors.New("missing reply token")

	// ErrEmptyMessage indicates a message event carried no text.
	ErrEmptyMessage = errors.New("empty message text")

	// ErrStoreUnavailable indicates the catalog store could not be reached.
	ErrStoreUnavailable = errors.New("catalog store unavailable")

	// ErrReplyFailed indicates the messaging platform rejected a reply.
	ErrReplyFailed = errors.New("reply delivery failed")

	// ErrNoChannelToken indicates the channel access token is not configured.
	ErrNoChannelToken = errors.New("channel access token not configured")
)

// DeliveryError reports a failed carousel chunk delivery with its position.
type DeliveryError struct {
	Chunk int // zero-based chunk index
	Total int // total chunks in the delivery
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed for chunk %d/%d: %v", e.Chunk+1, e.Total, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// NewDeliveryError creates a delivery error for one chunk.
func NewDeliveryError(chunk, total int, err error) *DeliveryError {
	return &DeliveryError{Chunk: chunk, Total: total, Err: err}
}
