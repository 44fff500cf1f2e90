// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay is the first backoff interval. Tests override this to
// avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

// RetryMaxDelay caps a single backoff interval.
var RetryMaxDelay = 30 * time.Second

// DefaultMaxRetries is the retry budget for enumeration and listing queries.
const DefaultMaxRetries = 3

// Transient reports whether a response status is worth retrying:
// 429 Too Many Requests and any 5xx.
func Transient(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// Backoff returns the delay before retry number attempt (0-based):
// RetryBaseDelay doubled per attempt, capped at RetryMaxDelay.
func Backoff(attempt int) time.Duration {
	d := RetryBaseDelay
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= RetryMaxDelay {
			return RetryMaxDelay
		}
	}
	if d > RetryMaxDelay {
		return RetryMaxDelay
	}
	return d
}

// DoWithRetry executes an HTTP request and retries transient failures
// (transport errors, 429, 5xx) with exponential backoff: 1s, 2s, 4s, ...
// capped at 30s.
//
// maxRetries of 0 disables retrying. On each retried response the body is
// drained and closed before sleeping. If the context is cancelled during a
// request or a backoff wait the function returns ctx.Err(). After
// exhausting retries the last response (or transport error) is returned so
// the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, context.Canceled) || attempt >= maxRetries {
				return nil, err
			}
		} else {
			if !Transient(resp.StatusCode) || attempt >= maxRetries {
				return resp, nil
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		timer := time.NewTimer(Backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
