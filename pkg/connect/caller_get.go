package connect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetJson makes a GET request to a backend endpoint with the provided client
// token and unmarshals the response body into the generic type T.
func GetJson[T any](caller *Caller, ctx context.Context, endpoint, token string) (T, error) {

	// initialize zero value of generic type T
	var data T

	raw, err := caller.do(ctx, http.MethodGet, endpoint, token, nil)
	if err != nil {
		return data, err
	}

	if raw == nil {
		return data, &ErrorHttp{
			StatusCode: http.StatusInternalServerError,
			Message:    fmt.Sprintf("GET %s returned no response body", endpoint),
		}
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		return data, &ErrorHttp{
			StatusCode: http.StatusInternalServerError,
			Message:    fmt.Sprintf("failed to unmarshal response body json: %v", err),
		}
	}

	return data, nil
}

// ListJson makes a list request to a backend endpoint. The backend exposes
// listing as GET with a list query flag rather than a separate route.
func ListJson[T any](caller *Caller, ctx context.Context, endpoint, token string) (T, error) {
	return GetJson[T](caller, ctx, fmt.Sprintf("%s?list=true", endpoint), token)
}
