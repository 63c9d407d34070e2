package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrMissingReplyToken,
		ErrEmptyMessage,
		ErrStoreUnavailable,
		ErrReplyFailed,
		ErrNoChannelToken,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v should not match %v", a, b)
			}
		}
	}
}

func TestSentinelWrapping(t *testing.T) {
	wrapped := fmt.Errorf("fetch courses: %w", ErrStoreUnavailable)
	if !errors.Is(wrapped, ErrStoreUnavailable) {
		t.Error("wrapped error should match ErrStoreUnavailable")
	}
}

func TestDeliveryError(t *testing.T) {
	cause := errors.New("http 429")
	err := NewDeliveryError(1, 3, cause)

	if got := err.Error(); got != "delivery failed for chunk 2/3: http 429" {
		t.Errorf("unexpected message: %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("DeliveryError should unwrap to its cause")
	}

	var de *DeliveryError
	if !errors.As(err, &de) {
		t.Fatal("errors.As should find DeliveryError")
	}
	if de.Chunk != 1 || de.Total != 3 {
		t.Errorf("unexpected chunk position: %d/%d", de.Chunk, de.Total)
	}
}
