package model

import "time"

// Kind tags the entity a response or a label points at.
type Kind string

const (
	KindTopic    Kind = "topic"
	KindResponse Kind = "response"
)

func (k Kind) Valid() bool {
	return k == KindTopic || k == KindResponse
}

// Target is a reference to a topic or a response.
type Target struct {
	Kind Kind
	ID   string
}

type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Session binds a browser session to a user. An empty UserID means the
// session is logged out.
type Session struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (s Session) LoggedIn() bool {
	return s.UserID != ""
}

type Topic struct {
	ID          string    `db:"id"`
	Author      string    `db:"author"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Response struct {
	ID        string    `db:"id"`
	Kind      Kind      `db:"kind"`
	Author    string    `db:"author"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Target    string    `db:"target"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Ref returns what the response answers. Kind doubles as the kind of the
// target: topic responses point at topics, replies at responses.
func (r Response) Ref() Target {
	return Target{Kind: r.Kind, ID: r.Target}
}

// ResponseFilter narrows a response listing. Empty fields match anything.
type ResponseFilter struct {
	Kind   Kind
	Author string
	Target string
}

// ResponseUpdate carries a partial update. Nil fields are left untouched.
type ResponseUpdate struct {
	Title   *string
	Content *string
}

type Side struct {
	ID        string    `db:"id"`
	User      string    `db:"user_id"`
	Issue     string    `db:"issue"`
	Degree    Degree    `db:"degree"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Label struct {
	ID        string    `db:"id"`
	Kind      Kind      `db:"kind"`
	Author    string    `db:"author"`
	Title     string    `db:"title"`
	Items     []string  `db:"-"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type FriendRequestStatus string

const (
	RequestPending  FriendRequestStatus = "pending"
	RequestAccepted FriendRequestStatus = "accepted"
	RequestRejected FriendRequestStatus = "rejected"
)

type FriendRequest struct {
	ID        string              `db:"id"`
	From      string              `db:"from_id"`
	To        string              `db:"to_id"`
	Status    FriendRequestStatus `db:"status"`
	CreatedAt time.Time           `db:"created_at"`
	UpdatedAt time.Time           `db:"updated_at"`
}

// Friendship is stored with User1 < User2 so a pair has one row.
type Friendship struct {
	ID        string    `db:"id"`
	User1     string    `db:"user1"`
	User2     string    `db:"user2"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const (
	VoteUp   = 1
	VoteDown = -1
)

type Vote struct {
	ID        string    `db:"id"`
	User      string    `db:"user_id"`
	Response  string    `db:"response"`
	Value     int       `db:"value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Tally aggregates the votes of one response.
type Tally struct {
	Up   int `db:"up"`
	Down int `db:"down"`
}

func (t Tally) Count() int {
	return t.Up - t.Down
}
