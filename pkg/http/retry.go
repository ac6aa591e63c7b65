package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultRetryDelay = time.Second

// RetryableTransport replays a request on transport errors and on gateway or throttling responses.
// The wait doubles after every attempt and stops early when the request context is done.
type RetryableTransport struct {
	Transport  http.RoundTripper
	RetryCount int
	// BaseDelay is the wait before the first retry, defaulting to one second
	BaseDelay time.Duration
}

func (t *RetryableTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var payload []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("buffering request body: %w", err)
		}
		payload = b
	}

	base := t.BaseDelay
	if base <= 0 {
		base = defaultRetryDelay
	}

	var (
		resp *http.Response
		err  error
	)
	for attempt := 0; attempt <= t.RetryCount; attempt++ {
		if attempt > 0 {
			discard(resp)
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(backoff(base, attempt-1)):
			}
		}

		if payload != nil {
			req.Body = io.NopCloser(bytes.NewReader(payload))
		}
		resp, err = t.Transport.RoundTrip(req)
		if !retryable(err, resp) {
			break
		}
	}

	return resp, err
}

func backoff(base time.Duration, attempt int) time.Duration {
	return base << uint(attempt)
}

func retryable(err error, resp *http.Response) bool {
	if err != nil || resp == nil {
		return true
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func discard(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
