package feed

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRateLimitErrorMessage(t *testing.T) {
	err := &RateLimitError{StatusCode: 429, RetryAfter: time.Second}
	if err.Error() != "feed rate limited (status=429)" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	custom := &RateLimitError{Message: "slow down"}
	if custom.Error() != "slow down" {
		t.Fatalf("unexpected message %q", custom.Error())
	}
}

func TestAsRateLimitErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("fetch: %w", &RateLimitError{Feed: "http", RetryAfter: 2 * time.Second})
	rl, ok := AsRateLimitError(wrapped)
	if !ok || rl.RetryAfter != 2*time.Second || rl.Feed != "http" {
		t.Fatalf("expected rate limit error, got %+v %v", rl, ok)
	}
	if _, ok := AsRateLimitError(errors.New("plain")); ok {
		t.Fatalf("expected plain error not to match")
	}
}
