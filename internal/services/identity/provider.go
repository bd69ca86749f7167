package identity

import (
	"context"

	"github.com/solhaven/astrocade/internal/model"
)

// Profile is what an identity provider knows about a user after a
// successful code exchange. The ID is the stable external identifier;
// everything else is display data.
type Profile struct {
	ID       model.Identity
	Username string
}

// Provider is the identity capability the rest of the system depends on.
// The synchronization middleware never talks to a concrete provider, so
// alternates can be substituted without touching it.
type Provider interface {
	// Name is the provider's route segment (e.g. "discord")
	Name() string

	// AuthCodeURL returns the provider consent URL for a login attempt
	AuthCodeURL(state string) string

	// Exchange redeems an authorization code for the user's profile
	Exchange(ctx context.Context, code string) (*Profile, error)
}
