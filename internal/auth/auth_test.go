package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alphabot-ai/stance/internal/apperr"
	"github.com/alphabot-ai/stance/internal/store/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st, bcrypt.MinCost)
}

func TestCreateAndAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", user.PasswordHash)

	got, err := svc.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
	_, err = svc.Authenticate(ctx, "nobody", "secret")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "pw")
	assert.True(t, apperr.IsKind(err, apperr.KindBadInput))
	_, err = svc.Create(ctx, "alice", "")
	assert.True(t, apperr.IsKind(err, apperr.KindBadInput))

	_, err = svc.Create(ctx, "alice", "pw")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice", "other")
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Contains(t, err.Error(), "alice")
}

func TestUpdatePassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "alice", "old")
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, user.ID, "nope", "new")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	err = svc.UpdatePassword(ctx, user.ID, "old", "")
	assert.True(t, apperr.IsKind(err, apperr.KindBadInput))

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "old", "new"))
	_, err = svc.Authenticate(ctx, "alice", "new")
	assert.NoError(t, err)
}

func TestUpdateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	alice, err := svc.Create(ctx, "alice", "pw")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", "pw")
	require.NoError(t, err)

	err = svc.UpdateUsername(ctx, alice.ID, "bob")
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	require.NoError(t, svc.UpdateUsername(ctx, alice.ID, "carol"))
	got, err := svc.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Username)
}

func TestIDsToUsernames(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	alice, err := svc.Create(ctx, "alice", "pw")
	require.NoError(t, err)
	bob, err := svc.Create(ctx, "bob", "pw")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, bob.ID))

	names, err := svc.IDsToUsernames(ctx, []string{bob.ID, alice.ID, alice.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{DeletedUser, "alice", "alice"}, names)

	ids, err := svc.UsernamesToIDs(ctx, []string{"alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID}, ids)

	_, err = svc.UsernamesToIDs(ctx, []string{"alice", "bob"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
