package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsObjectIDHex(t *testing.T) {
	assert.True(t, IsObjectIDHex("507f1f77bcf86cd799439011"))
	assert.True(t, IsObjectIDHex("507F1F77BCF86CD799439011"))
	assert.False(t, IsObjectIDHex("507f1f77bcf86cd79943901"))   // too short
	assert.False(t, IsObjectIDHex("507f1f77bcf86cd7994390111")) // too long
	assert.False(t, IsObjectIDHex("507f1f77bcf86cd79943901z"))
	assert.False(t, IsObjectIDHex("student@example.com"))
	assert.False(t, IsObjectIDHex(""))
}

func TestResolveUserByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	user := User{Username: "ada", Email: "ada@example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.CreateUser(ctx, &user))

	resolved, err := ResolveUser(ctx, s, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, "ada@example.com", resolved.Email)
}

func TestResolveUserByEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	user := User{Username: "ada", Email: "ada@example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.CreateUser(ctx, &user))

	resolved, err := ResolveUser(ctx, s, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestResolveUserCreatesFromUnknownEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	resolved, err := ResolveUser(ctx, s, "new.student@example.com")
	require.NoError(t, err)
	assert.False(t, resolved.ID.IsZero())
	assert.Equal(t, "new.student@example.com", resolved.Email)
	assert.Equal(t, "new.student", resolved.Username)
	assert.Empty(t, resolved.Password)

	// Resolving again returns the same record rather than a second one.
	again, err := ResolveUser(ctx, s, "new.student@example.com")
	require.NoError(t, err)
	assert.Equal(t, resolved.ID, again.ID)
}

func TestResolveUserUnknownID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// Hex-shaped identifiers are never treated as emails, so an unknown id
	// does not create a user.
	_, err := ResolveUser(ctx, s, "507f1f77bcf86cd799439011")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ResolveUser(ctx, s, "not-an-email")
	assert.ErrorIs(t, err, ErrNotFound)
}
