package usecase

import (
	"context"
	"time"

	"github.com/taskdeck/backend/domain"
)

// IdentityProvider abstracts an external OAuth provider. Exchange turns an
// authorization code into a verified identity; any underlying failure must
// surface as a generic auth error.
type IdentityProvider interface {
	Name() string
	AuthorizeURL(state string) string
	Exchange(ctx context.Context, code string) (domain.ProviderSignIn, error)
}

// HandshakeStates persists pending OAuth states between the redirect to the
// provider and the callback. Take consumes the state so it cannot be replayed.
type HandshakeStates interface {
	Put(state string, expiresAt time.Time) error
	Take(state string) (bool, error)
}
