package trailhead_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
)

func TestUserPatchApply(t *testing.T) {
	// Arrange
	u := trailhead.User{ID: "u1", Email: "a@b.com", Name: "A"}

	// Act
	same := trailhead.UserPatch{}.Apply(u)
	renamed := trailhead.UserPatch{Name: "X"}.Apply(u)

	// Assert
	require.Equal(t, u, same)
	require.Equal(t, trailhead.User{ID: "u1", Email: "a@b.com", Name: "X"}, renamed)
}

func TestUserListItemTimes(t *testing.T) {
	// Arrange
	ms := int64(1700000000000)
	item := trailhead.UserListItem{RegistrationDate: ms}

	// Act + Assert
	require.Equal(t, time.UnixMilli(ms).UTC(), item.RegisteredAt())
	require.True(t, item.LastActiveAt().IsZero())

	// Arrange
	item.LastActiveTimestamp = &ms

	// Act + Assert
	require.Equal(t, time.UnixMilli(ms).UTC(), item.LastActiveAt())
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	require.False(t, trailhead.Session{}.Expired(now))
	require.True(t, trailhead.Session{ExpiresAt: now.Add(-time.Minute).UnixMilli()}.Expired(now))
	require.False(t, trailhead.Session{ExpiresAt: now.Add(time.Minute).UnixMilli()}.Expired(now))
}
