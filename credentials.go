package formrec

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// TokenScope is the fixed scope for which bearer tokens are requested.
const TokenScope = "https://api.skriba.build/.default"

// apiKeyHeader carries the static key when authenticating with a KeyCredential.
const apiKeyHeader = "X-Api-Key"

// tokenRefreshWindow is how long before expiry a cached token is considered
// stale and refreshed.
const tokenRefreshWindow = 2 * time.Minute

// Credential authorises outgoing requests. The client is agnostic to the
// concrete mechanism; the two implementations provided by this package are
// [KeyCredential] and [TokenCredential].
type Credential interface {
	// Authorize mutates the request to carry the caller's identity.
	Authorize(ctx context.Context, req *http.Request) error
}

// KeyCredential authenticates with a static API key sent on every request.
type KeyCredential struct {
	key string
}

// NewKeyCredential creates a KeyCredential from a service API key.
func NewKeyCredential(key string) (*KeyCredential, error) {
	if key == "" {
		return nil, ErrInvalidOperation{Message: "api key is required but not provided"}
	}
	return &KeyCredential{key: key}, nil
}

func (c *KeyCredential) Authorize(_ context.Context, req *http.Request) error {
	req.Header.Set(apiKeyHeader, c.key)
	return nil
}

// AccessToken is a bearer token together with its expiry time.
type AccessToken struct {
	Token     string
	ExpiresOn time.Time
}

// TokenSource mints a bearer token for the given scope. Implementations are
// typically backed by an identity provider's client-credentials flow.
type TokenSource interface {
	Token(ctx context.Context, scope string) (AccessToken, error)
}

// TokenCredential authenticates with bearer tokens obtained from a
// TokenSource. Tokens are cached and refreshed shortly before they expire,
// so the source is only consulted when needed.
type TokenCredential struct {
	source TokenSource

	mu     sync.Mutex
	cached AccessToken
}

// NewTokenCredential creates a TokenCredential from a TokenSource.
func NewTokenCredential(source TokenSource) (*TokenCredential, error) {
	if source == nil {
		return nil, ErrInvalidOperation{Message: "token source is required but not provided"}
	}
	return &TokenCredential{source: source}, nil
}

func (c *TokenCredential) Authorize(ctx context.Context, req *http.Request) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func (c *TokenCredential) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached.Token != "" && time.Until(c.cached.ExpiresOn) > tokenRefreshWindow {
		return c.cached.Token, nil
	}

	token, err := c.source.Token(ctx, TokenScope)
	if err != nil {
		return "", err
	}
	c.cached = token
	return token.Token, nil
}
