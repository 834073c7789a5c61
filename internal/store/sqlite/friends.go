package sqlite

import (
	"context"
	"time"

	"github.com/alphabot-ai/stance/internal/model"
)

const (
	friendRequestColumns = `id, from_id, to_id, status, created_at, updated_at`
	friendshipColumns    = `id, user1, user2, created_at, updated_at`
)

func (s *Store) CreateFriendRequest(ctx context.Context, request *model.FriendRequest) error {
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO friend_requests (id, from_id, to_id, status, created_at, updated_at)
VALUES (:id, :from_id, :to_id, :status, :created_at, :updated_at)
`, request)
	return insertErr(err)
}

func (s *Store) GetPendingFriendRequest(ctx context.Context, from, to string) (model.FriendRequest, error) {
	var r model.FriendRequest
	err := s.getOne(ctx, &r, `SELECT `+friendRequestColumns+` FROM friend_requests WHERE from_id = ? AND to_id = ? AND status = ?`,
		from, to, model.RequestPending)
	return r, err
}

func (s *Store) UpdateFriendRequestStatus(ctx context.Context, id string, status model.FriendRequestStatus, at time.Time) error {
	return affectedOrNotFound(s.db.ExecContext(ctx, `UPDATE friend_requests SET status = ?, updated_at = ? WHERE id = ?`, status, at, id))
}

func (s *Store) DeleteFriendRequest(ctx context.Context, id string) error {
	return affectedOrNotFound(s.db.ExecContext(ctx, `DELETE FROM friend_requests WHERE id = ?`, id))
}

// ListFriendRequests returns every request sent or received by user.
func (s *Store) ListFriendRequests(ctx context.Context, user string) ([]model.FriendRequest, error) {
	requests := []model.FriendRequest{}
	err := s.db.SelectContext(ctx, &requests, `
SELECT `+friendRequestColumns+` FROM friend_requests
WHERE from_id = ? OR to_id = ?
ORDER BY created_at DESC, rowid DESC
`, user, user)
	return requests, err
}

func orderedPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

func (s *Store) CreateFriendship(ctx context.Context, friendship *model.Friendship) error {
	friendship.User1, friendship.User2 = orderedPair(friendship.User1, friendship.User2)
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO friendships (id, user1, user2, created_at, updated_at)
VALUES (:id, :user1, :user2, :created_at, :updated_at)
`, friendship)
	return insertErr(err)
}

func (s *Store) GetFriendship(ctx context.Context, user1, user2 string) (model.Friendship, error) {
	user1, user2 = orderedPair(user1, user2)
	var f model.Friendship
	err := s.getOne(ctx, &f, `SELECT `+friendshipColumns+` FROM friendships WHERE user1 = ? AND user2 = ?`, user1, user2)
	return f, err
}

func (s *Store) DeleteFriendship(ctx context.Context, user1, user2 string) error {
	user1, user2 = orderedPair(user1, user2)
	return affectedOrNotFound(s.db.ExecContext(ctx, `DELETE FROM friendships WHERE user1 = ? AND user2 = ?`, user1, user2))
}

func (s *Store) ListFriendships(ctx context.Context, user string) ([]model.Friendship, error) {
	friendships := []model.Friendship{}
	err := s.db.SelectContext(ctx, &friendships, `
SELECT `+friendshipColumns+` FROM friendships
WHERE user1 = ? OR user2 = ?
ORDER BY created_at DESC, rowid DESC
`, user, user)
	return friendships, err
}
