package identity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pennyplan/coach-go/internal/config"
)

func TestStatic_SignedIn(t *testing.T) {
	p := FromConfig(config.IdentityConfig{UserID: "u-1", Name: "Sam"})
	require.True(t, p.SignedIn())
	require.Equal(t, "u-1", p.UserID())
	require.Equal(t, "Sam", p.DisplayName())
}

func TestStatic_SignedOutFallsBackToDemoUser(t *testing.T) {
	p := FromConfig(config.IdentityConfig{})
	require.False(t, p.SignedIn())
	require.Equal(t, "demo-user", p.UserID())
	require.Equal(t, "Guest", p.DisplayName())
}
