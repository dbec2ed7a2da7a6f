package diagnostics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/tdeslauriers/palisade/internal/util"
	"github.com/tdeslauriers/palisade/pkg/connect"
)

// HealthStatus is the backend's self-reported state. The backend signals
// sealed/standby through the response status code as well as the body, so the
// check reads the body on non-2xx codes too.
type HealthStatus struct {
	Initialized bool   `json:"initialized"`
	Sealed      bool   `json:"sealed"`
	Standby     bool   `json:"standby"`
	Version     string `json:"version"`
}

// HealthChecker reports whether the backend is reachable and unsealed.
type HealthChecker interface {

	// Check calls the backend's health endpoint. It returns a status whenever
	// the backend answered, even if sealed or on standby; an error means the
	// backend could not be reached or gave an unreadable answer.
	Check(ctx context.Context) (*HealthStatus, error)
}

// NewHealthChecker creates a HealthChecker for the backend at the given base url.
func NewHealthChecker(backendUrl string, client connect.TlsClient) HealthChecker {
	return &healthChecker{
		backendUrl: backendUrl,
		client:     client,

		logger: slog.Default().
			With(slog.String(util.PackageKey, util.PackageDiagnostics)).
			With(slog.String(util.ComponentKey, util.ComponentHealth)).
			With(slog.String(util.FrameworkKey, util.FrameworkPalisade)),
	}
}

var _ HealthChecker = (*healthChecker)(nil)

type healthChecker struct {
	backendUrl string
	client     connect.TlsClient

	logger *slog.Logger
}

func (h *healthChecker) Check(ctx context.Context) (*HealthStatus, error) {

	// the health endpoint needs no token and must not be retried: a sealed or
	// standby backend answers with a non-2xx code, which the generic caller's
	// retry loop would misread as a transient failure
	url := fmt.Sprintf("%s/v1/sys/health", h.backendUrl)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create health check request: %v", err)
	}

	response, err := h.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("backend health check failed: %v", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read health check response body: %v", err)
	}

	var status HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal health check response: %v", err)
	}

	if status.Sealed {
		h.logger.Warn("backend is sealed")
	}

	return &status, nil
}
