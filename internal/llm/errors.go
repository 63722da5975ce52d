package llm

import (
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

var (
	// ErrRateLimited reports an upstream 429.
	ErrRateLimited = errors.New("llm: rate limited")
	// ErrQuotaExceeded reports an upstream 402.
	ErrQuotaExceeded = errors.New("llm: quota exceeded")
)

// classify maps gateway API errors onto the sentinel errors above so
// callers can log a distinct reason while handling every upstream failure
// the same way. Other errors pass through unchanged.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return ErrRateLimited
		case http.StatusPaymentRequired:
			return ErrQuotaExceeded
		}
	}
	return err
}
