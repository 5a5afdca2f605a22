package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// RetryPolicy defines retry behavior for provider requests.
type RetryPolicy struct {
	MaxRetries int           // retries after the first attempt
	Backoff    time.Duration // multiplied by the attempt index (linear)
}

// DefaultRetryPolicy returns the policy used for AI provider handshakes.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		Backoff:    time.Second,
	}
}

// AttemptFunc issues a single request attempt.
type AttemptFunc func() (*resty.Response, error)

// DoWithRetry executes attempt up to MaxRetries+1 times. A response is
// accepted as soon as its status is not retryable: success and redirect
// statuses pass through, and so does any 4xx other than 429, since the
// request itself is wrong and repeating it cannot help. 5xx, 429 and
// transport errors are retried after a linear backoff of Backoff*attempt.
// Context cancellation always wins over pending retries. The final
// response or error is surfaced as-is, never re-wrapped.
func DoWithRetry(ctx context.Context, policy RetryPolicy, operation string, attempt AttemptFunc) (*resty.Response, error) {
	var (
		lastResp *resty.Response
		lastErr  error
	)

	for i := 1; i <= policy.MaxRetries+1; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lastResp, lastErr = attempt()

		if lastErr == nil && !retryableStatus(lastResp.StatusCode()) {
			if i > 1 {
				log.Info().
					Str("operation", operation).
					Int("attempt", i).
					Msg("request succeeded after retry")
			}
			return lastResp, nil
		}

		// Cancellation surfaced as a transport error propagates immediately.
		if lastErr != nil && (errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded)) {
			return nil, lastErr
		}

		if i == policy.MaxRetries+1 {
			break
		}

		// The rejected response body will never be read.
		discardBody(lastResp)

		delay := policy.Backoff * time.Duration(i)
		log.Warn().
			Err(lastErr).
			Str("operation", operation).
			Int("attempt", i).
			Int("status", statusCode(lastResp)).
			Dur("retry_delay", delay).
			Msg("retrying request")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastResp, lastErr
}

// retryableStatus reports whether a status warrants another attempt:
// 5xx and 429 only.
func retryableStatus(status int) bool {
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}

func statusCode(resp *resty.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode()
}

func discardBody(resp *resty.Response) {
	if resp == nil {
		return
	}
	if body := resp.RawBody(); body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
		_ = body.Close()
	}
}
