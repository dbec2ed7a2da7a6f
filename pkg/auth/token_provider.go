package auth

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tdeslauriers/palisade/internal/util"
	"golang.org/x/net/context"
)

// TokenProvider supplies the client token attached to every backend call.
// Implementations may cache, renew, or re-login as needed; callers only ever
// ask for a usable token.
type TokenProvider interface {
	// GetToken returns a client token valid for backend calls.
	GetToken(ctx context.Context) (string, error)
}

// NewStaticTokenProvider returns a TokenProvider that always yields the
// provided token. Intended for short-lived tooling where the token arrives
// via config rather than a login flow.
func NewStaticTokenProvider(token string) TokenProvider {
	return &staticTokenProvider{
		token: token,

		logger: slog.Default().
			With(slog.String(util.ComponentKey, util.ComponentTokenProvider)).
			With(slog.String(util.PackageKey, util.PackageAuth)).
			With(slog.String(util.FrameworkKey, util.FrameworkPalisade)),
	}
}

var _ TokenProvider = (*staticTokenProvider)(nil)

type staticTokenProvider struct {
	token string

	logger *slog.Logger
}

func (p *staticTokenProvider) GetToken(ctx context.Context) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("no client token configured")
	}
	return p.token, nil
}

// NewEnvTokenProvider returns a TokenProvider that reads the token from the
// named environment variable on every call, so a rotated token is picked up
// without a restart.
func NewEnvTokenProvider(envVar string) TokenProvider {
	return &envTokenProvider{
		envVar: envVar,

		logger: slog.Default().
			With(slog.String(util.ComponentKey, util.ComponentTokenProvider)).
			With(slog.String(util.PackageKey, util.PackageAuth)).
			With(slog.String(util.FrameworkKey, util.FrameworkPalisade)),
	}
}

var _ TokenProvider = (*envTokenProvider)(nil)

type envTokenProvider struct {
	envVar string

	logger *slog.Logger
}

func (p *envTokenProvider) GetToken(ctx context.Context) (string, error) {

	token, ok := os.LookupEnv(p.envVar)
	if !ok || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%s not set", p.envVar)
	}

	return strings.TrimSpace(token), nil
}
