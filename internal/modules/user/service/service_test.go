package service

import (
	"testing"

	"github.com/reshetovitsme/discord-thread-digest/internal/modules/user/domain"
	"github.com/stretchr/testify/require"
)

func TestIsAuthorized(t *testing.T) {
	open := New(nil)
	require.True(t, open.IsAuthorized(domain.User{ID: "1"}))
	require.False(t, open.IsAuthorized(domain.User{ID: "2", Bot: true}))

	restricted := New([]string{"1", "3"})
	require.True(t, restricted.IsAuthorized(domain.User{ID: "3"}))
	require.False(t, restricted.IsAuthorized(domain.User{ID: "2"}))
}

func TestUserString(t *testing.T) {
	require.Equal(t, "alice", domain.User{ID: "1", Username: "alice"}.String())
	require.Equal(t, "1", domain.User{ID: "1"}.String())
}
