package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/store"
)

func TestUserUniqueUsername(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	alice := model.User{ID: uuid.NewString(), Username: "alice", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	bob := model.User{ID: uuid.NewString(), Username: "bob", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	if err := st.CreateUser(ctx, &alice); err != nil {
		t.Fatalf("create alice: %v", err)
	}
	if err := st.CreateUser(ctx, &bob); err != nil {
		t.Fatalf("create bob: %v", err)
	}

	dup := model.User{ID: uuid.NewString(), Username: "alice", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	if err := st.CreateUser(ctx, &dup); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if err := st.UpdateUsername(ctx, bob.ID, "alice", now); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on rename, got %v", err)
	}

	users, err := st.ListUsersByIDs(ctx, []string{alice.ID, bob.ID, "missing"})
	if err != nil {
		t.Fatalf("list by ids: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	if err := st.DeleteUser(ctx, alice.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := st.GetUserByUsername(ctx, "alice"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	live := model.Session{ID: "live", UserID: "u1", ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	stale := model.Session{ID: "stale", UserID: "u2", ExpiresAt: now.Add(-time.Hour), CreatedAt: now}
	for _, s := range []model.Session{live, stale} {
		if err := st.PutSession(ctx, s); err != nil {
			t.Fatalf("put session: %v", err)
		}
	}

	n, err := st.DeleteExpiredSessions(ctx, now)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged session, got %d", n)
	}
	if _, err := st.GetSession(ctx, "stale"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected stale session gone, got %v", err)
	}
	got, err := st.GetSession(ctx, "live")
	if err != nil {
		t.Fatalf("get live session: %v", err)
	}
	if got.UserID != "u1" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestFriendships(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	req := model.FriendRequest{ID: uuid.NewString(), From: "a", To: "b", Status: model.RequestPending, CreatedAt: now, UpdatedAt: now}
	if err := st.CreateFriendRequest(ctx, &req); err != nil {
		t.Fatalf("create request: %v", err)
	}
	again := req
	again.ID = uuid.NewString()
	if err := st.CreateFriendRequest(ctx, &again); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for second pending request, got %v", err)
	}
	if err := st.UpdateFriendRequestStatus(ctx, req.ID, model.RequestAccepted, now); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := st.GetPendingFriendRequest(ctx, "a", "b"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected no pending request, got %v", err)
	}

	f := model.Friendship{ID: uuid.NewString(), User1: "b", User2: "a", CreatedAt: now, UpdatedAt: now}
	if err := st.CreateFriendship(ctx, &f); err != nil {
		t.Fatalf("create friendship: %v", err)
	}
	if f.User1 != "a" || f.User2 != "b" {
		t.Fatalf("expected ordered pair, got %s %s", f.User1, f.User2)
	}
	if _, err := st.GetFriendship(ctx, "b", "a"); err != nil {
		t.Fatalf("get friendship reversed: %v", err)
	}
	list, err := st.ListFriendships(ctx, "b")
	if err != nil || len(list) != 1 {
		t.Fatalf("list friendships: %v %v", list, err)
	}
	if err := st.DeleteFriendship(ctx, "b", "a"); err != nil {
		t.Fatalf("delete friendship: %v", err)
	}
	if err := st.DeleteFriendship(ctx, "a", "b"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
