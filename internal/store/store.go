package store

import (
	"context"
	"errors"
	"time"

	"github.com/alphabot-ai/stance/internal/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

type Store interface {
	UserStore
	SessionStore
	TopicStore
	ResponseStore
	SideStore
	LabelStore
	FriendStore
	VoteStore
	Close() error
}

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListUsersByIDs(ctx context.Context, ids []string) ([]model.User, error)
	UpdateUsername(ctx context.Context, id, username string, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id, hash string, at time.Time) error
	DeleteUser(ctx context.Context, id string) error
}

type SessionStore interface {
	PutSession(ctx context.Context, session model.Session) error
	GetSession(ctx context.Context, id string) (model.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type TopicStore interface {
	CreateTopic(ctx context.Context, topic *model.Topic) error
	GetTopic(ctx context.Context, id string) (model.Topic, error)
	GetTopicByTitle(ctx context.Context, title string) (model.Topic, error)
	ListTopics(ctx context.Context) ([]model.Topic, error)
	SearchTopics(ctx context.Context, substring string) ([]model.Topic, error)
	ListTopicsByIDs(ctx context.Context, ids []string) ([]model.Topic, error)
	DeleteTopic(ctx context.Context, id string) error
}

type ResponseStore interface {
	CreateResponse(ctx context.Context, response *model.Response) error
	GetResponse(ctx context.Context, kind model.Kind, id string) (model.Response, error)
	ListResponses(ctx context.Context, filter model.ResponseFilter) ([]model.Response, error)
	ListResponsesByIDs(ctx context.Context, kind model.Kind, ids []string) ([]model.Response, error)
	UpdateResponse(ctx context.Context, kind model.Kind, id string, update model.ResponseUpdate, at time.Time) error
	DeleteResponse(ctx context.Context, kind model.Kind, id string) error
	CountResponsesByTarget(ctx context.Context, kind model.Kind, targets []string) (map[string]int, error)
}

type SideStore interface {
	CreateSide(ctx context.Context, side *model.Side) error
	GetSide(ctx context.Context, user, issue string) (model.Side, error)
	ListSidesByUser(ctx context.Context, user string) ([]model.Side, error)
	ListSidesByIssue(ctx context.Context, issue string) ([]model.Side, error)
	UpdateSideDegree(ctx context.Context, user, issue string, degree model.Degree, at time.Time) error
}

type LabelStore interface {
	CreateLabel(ctx context.Context, label *model.Label) error
	GetLabelByTitle(ctx context.Context, kind model.Kind, title string) (model.Label, error)
	ListLabels(ctx context.Context, kind model.Kind) ([]model.Label, error)
	DeleteLabel(ctx context.Context, kind model.Kind, id string) error
	AddLabelItem(ctx context.Context, labelID, item string, at time.Time) error
	RemoveLabelItem(ctx context.Context, labelID, item string) error
}

type FriendStore interface {
	CreateFriendRequest(ctx context.Context, request *model.FriendRequest) error
	GetPendingFriendRequest(ctx context.Context, from, to string) (model.FriendRequest, error)
	UpdateFriendRequestStatus(ctx context.Context, id string, status model.FriendRequestStatus, at time.Time) error
	DeleteFriendRequest(ctx context.Context, id string) error
	ListFriendRequests(ctx context.Context, user string) ([]model.FriendRequest, error)
	CreateFriendship(ctx context.Context, friendship *model.Friendship) error
	GetFriendship(ctx context.Context, user1, user2 string) (model.Friendship, error)
	DeleteFriendship(ctx context.Context, user1, user2 string) error
	ListFriendships(ctx context.Context, user string) ([]model.Friendship, error)
}

type VoteStore interface {
	GetVote(ctx context.Context, user, response string) (model.Vote, error)
	PutVote(ctx context.Context, vote *model.Vote) error
	DeleteVote(ctx context.Context, user, response string) error
	TallyVotes(ctx context.Context, responses []string) (map[string]model.Tally, error)
}
