package connect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/tdeslauriers/palisade/internal/util"
)

// TokenHeader is the header the backend reads the client token from.
const TokenHeader = "X-Vault-Token"

var rng *rand.Rand

// retries and jitter
func init() {
	// initialize global random num gen -> jitter
	seed := time.Now().UnixNano()
	rng = rand.New(rand.NewSource(seed))
}

// add jitter to backoff so that retrying clients do not all retry at the same time
func addJitter(attempt int, baseBackoff, maxBackoff time.Duration) time.Duration {
	// Get the next exponential backoff interval
	backoff := baseBackoff * time.Duration(1<<attempt)

	// Use the custom Rand instance for jitter calculation
	jitter := backoff/2 + time.Duration(rng.Int63n(int64(backoff/2)))

	// Check that the backoff is not too big
	if jitter > maxBackoff {
		jitter = maxBackoff
	}

	return jitter
}

// retryable reports whether a response status is worth another attempt.
// 500 is excluded: the backend uses it for internal errors that retrying
// will not fix.
func retryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		(statusCode > 500 && statusCode <= 599)
}

// RetryConfiguration holds the configuration for retrying backend calls.
type RetryConfiguration struct {
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// Caller makes authenticated http calls against the backend with retry logic.
// The verb helpers (GetJson, PostJson, etc) layer typed encoding on top of it.
type Caller struct {
	BackendUrl  string
	BackendName string
	TlsClient   TlsClient
	RetryConfig RetryConfiguration

	logger *slog.Logger
}

// NewCaller creates a new backend Caller.
func NewCaller(url, name string, client TlsClient, retry RetryConfiguration) *Caller {
	return &Caller{
		BackendUrl:  url,
		BackendName: name,
		TlsClient:   client,
		RetryConfig: retry,

		logger: slog.Default().
			With(slog.String(util.PackageKey, util.PackageConnect)).
			With(slog.String(util.ComponentKey, util.ComponentCaller)).
			With(slog.String(util.FrameworkKey, util.FrameworkPalisade)),
	}
}

// backendError is the error body shape the backend returns on 4xx/5xx.
type backendError struct {
	Errors []string `json:"errors"`
}

// do executes one call against the backend with retries, returning the raw
// response body. A nil return with nil error means the backend responded with
// no content, eg 204 on a role upsert.
func (caller *Caller) do(ctx context.Context, method, endpoint, token string, body []byte) ([]byte, error) {

	url := fmt.Sprintf("%s%s", caller.BackendUrl, endpoint)

	logger := caller.logger.With(
		slog.String("backend", caller.BackendName),
		slog.String("method", method),
		slog.String("url", url),
	)

	// retry loop
	for attempt := 0; attempt < caller.RetryConfig.MaxRetries; attempt++ {

		// set up request
		var reader io.Reader
		if body != nil {
			reader = bytes.NewBuffer(body)
		}
		request, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, &ErrorHttp{
				StatusCode: http.StatusInternalServerError,
				Message:    fmt.Sprintf("failed to create %s request: %v", method, err),
			}
		}
		if body != nil {
			request.Header.Set("Content-Type", "application/json")
		}

		// client token
		if token != "" {
			request.Header.Set(TokenHeader, token)
		}

		// TlsClient makes http request
		response, err := caller.TlsClient.Do(request)
		if err != nil {
			// check if network error such as timeout, etc.
			if nErr, ok := err.(net.Error); ok && nErr.Timeout() {
				// apply backoff/jitter to timeout
				backoff := addJitter(attempt, caller.RetryConfig.BaseBackoff, caller.RetryConfig.MaxBackoff)
				logger.Error(fmt.Sprintf("attempt %d - %s request timed out (retrying in %v...)", attempt+1, method, backoff), "err", err.Error())
				time.Sleep(backoff)
				continue // jump to next loop iteration
			}
			// jump out of retry loop and return 503: Service Unavailable error
			return nil, &ErrorHttp{
				StatusCode: http.StatusServiceUnavailable,
				Message:    fmt.Sprintf("backend unavailable: attempt %d - %s request failed: %v", attempt+1, method, err),
			}
		}

		// read response body
		raw, err := io.ReadAll(response.Body)
		response.Body.Close()
		if err != nil {
			// jump out of retry loop and return error
			return nil, &ErrorHttp{
				StatusCode: http.StatusInternalServerError,
				Message:    fmt.Sprintf("failed to read response body: %v", err),
			}
		}

		// handle response status codes 2xx, 4xx, 5xx
		// 2xx -> success
		if response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices {

			if len(raw) == 0 || response.StatusCode == http.StatusNoContent {
				return nil, nil
			}

			// validate response Content-Type is application/json
			contentType := response.Header.Get("Content-Type")
			if !strings.HasPrefix(contentType, "application/json") {
				return nil, &ErrorHttp{
					StatusCode: http.StatusUnsupportedMediaType,
					Message:    fmt.Sprintf("unexpected content type returned: got %v want application/json", contentType),
				}
			}

			return raw, nil // success -> jump out of retry and return
		}

		// parse the backend's error body; fall back to the raw body
		e := &ErrorHttp{
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("%s %s failed", method, endpoint),
		}
		var be backendError
		if err := json.Unmarshal(raw, &be); err == nil && len(be.Errors) > 0 {
			e.Errors = be.Errors
		} else if len(raw) > 0 {
			e.Message = fmt.Sprintf("%s: %s", e.Message, strings.TrimSpace(string(raw)))
		}

		// 429/5xx -> retry w/ backoff
		if retryable(response.StatusCode) && attempt < caller.RetryConfig.MaxRetries-1 {
			backoff := addJitter(attempt, caller.RetryConfig.BaseBackoff, caller.RetryConfig.MaxBackoff)
			logger.Error(fmt.Sprintf("attempt %d - %s request failed (retrying in %v...)", attempt+1, method, backoff), "err", e.Error())
			time.Sleep(backoff)
			continue // jump out of the loop to next iteration
		}

		// 4xx and exhausted retries -> jump out of retry loop and return error
		return nil, e
	}

	return nil, &ErrorHttp{
		StatusCode: http.StatusServiceUnavailable,
		Message:    fmt.Sprintf("backend unavailable: %s %s retries exhausted", method, endpoint),
	}
}
