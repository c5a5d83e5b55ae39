package llm

import (
	"context"
	"errors"
	"net"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ErrorClass partitions reasoning-service failures by how the caller should
// react to them.
type ErrorClass int

// Error classes
const (
	// ClassRetryable covers timeouts, rate limits, 5xx responses and
	// transport failures: back off and try again.
	ClassRetryable ErrorClass = iota
	// ClassFatal covers client errors other than rate limiting: retrying
	// the same request cannot succeed.
	ClassFatal
)

// Classify places a GenerateContent error into an ErrorClass. Unknown errors
// default to retryable, matching how transient transport failures surface.
func Classify(err error) ErrorClass {
	if errors.Is(err, context.DeadlineExceeded) {
		return ClassRetryable
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusTooManyRequests:
			return ClassRetryable
		case gerr.Code >= 500:
			return ClassRetryable
		case gerr.Code >= 400:
			return ClassFatal
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ClassRetryable
	}

	return ClassRetryable
}
