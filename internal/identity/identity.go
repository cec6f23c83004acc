// Package identity supplies the three facts the chat client needs about the
// current user: an id, a display name, and whether they are signed in. The
// hosted auth provider is out of scope; this is its local stand-in.
package identity

import "github.com/pennyplan/coach-go/internal/config"

// Provider is an opaque source of user identity.
type Provider interface {
	UserID() string
	DisplayName() string
	SignedIn() bool
}

// Static is a configuration-backed Provider. An empty user id means nobody is
// signed in; requests then fall back to the shared demo identity.
type Static struct {
	ID   string
	Name string
}

// FromConfig builds a Static provider from configuration.
func FromConfig(cfg config.IdentityConfig) Static {
	return Static{ID: cfg.UserID, Name: cfg.Name}
}

func (s Static) UserID() string {
	if s.ID == "" {
		return "demo-user"
	}
	return s.ID
}

func (s Static) DisplayName() string {
	if s.Name == "" {
		return "Guest"
	}
	return s.Name
}

func (s Static) SignedIn() bool { return s.ID != "" }
