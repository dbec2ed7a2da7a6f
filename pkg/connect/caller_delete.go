package connect

import (
	"context"
	"net/http"
)

// Delete makes a DELETE request to a backend endpoint. Following rest
// conventions the resource is identified by the url path, not a request body,
// and the backend responds with no content.
func Delete(caller *Caller, ctx context.Context, endpoint, token string) error {
	_, err := caller.do(ctx, http.MethodDelete, endpoint, token, nil)
	return err
}
