package connect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// PostJson makes a POST request to a backend endpoint, marshaling cmd as the
// json request body and unmarshaling the response into the generic type T.
// Endpoints that respond with no content (eg role upserts) yield the zero
// value of T.
func PostJson[TCmd, T any](caller *Caller, ctx context.Context, endpoint, token string, cmd TCmd) (T, error) {

	// initialize zero value of generic type T
	var data T

	body, err := json.Marshal(cmd)
	if err != nil {
		return data, &ErrorHttp{
			StatusCode: http.StatusInternalServerError,
			Message:    fmt.Sprintf("failed to marshal request body to json: %v", err),
		}
	}

	raw, err := caller.do(ctx, http.MethodPost, endpoint, token, body)
	if err != nil {
		return data, err
	}

	if raw == nil {
		return data, nil
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		return data, &ErrorHttp{
			StatusCode: http.StatusInternalServerError,
			Message:    fmt.Sprintf("failed to unmarshal response body json: %v", err),
		}
	}

	return data, nil
}
