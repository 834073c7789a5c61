package client

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/alphabot-ai/stance/internal/config"
	httpapp "github.com/alphabot-ai/stance/internal/http"
	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/rate"
	"github.com/alphabot-ai/stance/internal/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dsnName := strings.NewReplacer("/", "_").Replace(t.Name())
	st, err := sqlite.Open(fmt.Sprintf("file:client_%s?mode=memory&cache=shared", dsnName))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	cfg := config.Config{
		Env:        "development",
		SessionTTL: time.Hour,
		BcryptCost: bcrypt.MinCost,
		RateLimits: config.RateLimits{LoginPerMinute: 1000, WritePerMinute: 1000},
	}
	server, err := httpapp.NewServer(st, rate.NewMemory(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(server)
	t.Cleanup(func() {
		ts.Close()
		_ = st.Close()
	})
	return ts
}

func TestClientNew(t *testing.T) {
	c := New("https://example.com")
	if c.BaseURL != "https://example.com" {
		t.Errorf("expected base URL 'https://example.com', got '%s'", c.BaseURL)
	}
	if c.HTTPClient == nil || c.HTTPClient.Jar == nil {
		t.Error("expected an HTTP client with a cookie jar")
	}
}

func TestSessionFlow(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)

	if _, err := c.Me(); StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %v", err)
	}
	if err := c.RegisterAndLogin("alice", "pw"); err != nil {
		t.Fatalf("register and login: %v", err)
	}
	me, err := c.Me()
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Username != "alice" {
		t.Fatalf("expected alice, got %q", me.Username)
	}
	if err := c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := c.Me(); StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %v", err)
	}

	// the account is already there
	if err := c.RegisterAndLogin("alice", "pw"); err != nil {
		t.Fatalf("second register and login: %v", err)
	}
}

func TestTopicResponseVote(t *testing.T) {
	ts := newTestServer(t)
	alice, bob := New(ts.URL), New(ts.URL)
	if err := alice.RegisterAndLogin("alice", "pw"); err != nil {
		t.Fatalf("alice: %v", err)
	}
	if err := bob.RegisterAndLogin("bob", "pw"); err != nil {
		t.Fatalf("bob: %v", err)
	}

	topic, err := alice.CreateTopic("Tabs or spaces", "pick one")
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	if topic.Author != "alice" {
		t.Fatalf("expected author alice, got %q", topic.Author)
	}

	resp, err := bob.RespondToTopic("Tabs or spaces", "Tabs", "obviously")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if resp.TargetTitle != "Tabs or spaces" {
		t.Fatalf("expected target title, got %q", resp.TargetTitle)
	}
	reply, err := alice.RespondToResponse(resp.ID, "No", "spaces")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply.TargetTitle != "Tabs" {
		t.Fatalf("expected reply target title Tabs, got %q", reply.TargetTitle)
	}

	if err := alice.Upvote(resp.ID); err != nil {
		t.Fatalf("upvote: %v", err)
	}
	if err := bob.Downvote(resp.ID); err != nil {
		t.Fatalf("downvote: %v", err)
	}
	if err := bob.Upvote(resp.ID); err != nil {
		t.Fatalf("switch vote: %v", err)
	}
	count, err := alice.VoteCount(resp.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}

	if _, err := bob.TakeSide("Tabs or spaces", model.Agree); err != nil {
		t.Fatalf("take side: %v", err)
	}
	if _, err := bob.TakeSide("Tabs or spaces", model.Disagree); StatusOf(err) != http.StatusConflict {
		t.Fatalf("expected 409 on second side, got %v", err)
	}

	if err := bob.DeleteTopic("Tabs or spaces"); StatusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403 deleting another user's topic, got %v", err)
	}
}

func TestFriends(t *testing.T) {
	ts := newTestServer(t)
	alice, bob := New(ts.URL), New(ts.URL)
	if err := alice.RegisterAndLogin("alice", "pw"); err != nil {
		t.Fatalf("alice: %v", err)
	}
	if err := bob.RegisterAndLogin("bob", "pw"); err != nil {
		t.Fatalf("bob: %v", err)
	}

	if err := alice.SendFriendRequest("bob"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := bob.AcceptFriendRequest("alice"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	friends, err := bob.Friends()
	if err != nil {
		t.Fatalf("friends: %v", err)
	}
	if len(friends) != 1 || friends[0] != "alice" {
		t.Fatalf("expected [alice], got %v", friends)
	}
}
