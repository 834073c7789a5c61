package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func newTopic(title string) *model.Topic {
	now := time.Now().UTC()
	return &model.Topic{
		ID:        uuid.NewString(),
		Author:    uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newResponse(kind model.Kind, author, target string) *model.Response {
	now := time.Now().UTC()
	return &model.Response{
		ID:        uuid.NewString(),
		Kind:      kind,
		Author:    author,
		Title:     "title",
		Content:   "content",
		Target:    target,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	st := newTestStore(t)
	if err := applySchema(st.db); err != nil {
		t.Fatalf("reapply schema: %v", err)
	}
	var version int
	if err := st.db.Get(&version, `SELECT MAX(version) FROM schema_version`); err != nil {
		t.Fatalf("schema version: %v", err)
	}
	if version != len(migrations) {
		t.Fatalf("expected version %d, got %d", len(migrations), version)
	}
}

func TestTopicLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	topic := newTopic("Pineapple on pizza")
	if err := st.CreateTopic(ctx, topic); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	got, err := st.GetTopicByTitle(ctx, "Pineapple on pizza")
	if err != nil {
		t.Fatalf("get topic: %v", err)
	}
	if got.ID != topic.ID || got.Author != topic.Author {
		t.Fatalf("unexpected topic: %+v", got)
	}

	if err := st.CreateTopic(ctx, newTopic("Pineapple on pizza")); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	found, err := st.SearchTopics(ctx, "PIZZA")
	if err != nil {
		t.Fatalf("search topics: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 search hit, got %d", len(found))
	}

	if err := st.DeleteTopic(ctx, topic.ID); err != nil {
		t.Fatalf("delete topic: %v", err)
	}
	if _, err := st.GetTopic(ctx, topic.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.DeleteTopic(ctx, topic.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListTopicsNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if err := st.CreateTopic(ctx, newTopic(title)); err != nil {
			t.Fatalf("create topic: %v", err)
		}
	}
	topics, err := st.ListTopics(ctx)
	if err != nil {
		t.Fatalf("list topics: %v", err)
	}
	if len(topics) != 3 || topics[0].Title != "third" || topics[2].Title != "first" {
		t.Fatalf("unexpected order: %+v", topics)
	}

	byID, err := st.ListTopicsByIDs(ctx, nil)
	if err != nil || len(byID) != 0 {
		t.Fatalf("expected empty result for no ids, got %v %v", byID, err)
	}
}

func TestResponsesByKind(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	author := uuid.NewString()
	topicID := uuid.NewString()
	toTopic := newResponse(model.KindTopic, author, topicID)
	if err := st.CreateResponse(ctx, toTopic); err != nil {
		t.Fatalf("create response: %v", err)
	}
	reply := newResponse(model.KindResponse, author, toTopic.ID)
	if err := st.CreateResponse(ctx, reply); err != nil {
		t.Fatalf("create reply: %v", err)
	}

	if _, err := st.GetResponse(ctx, model.KindResponse, toTopic.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected kind mismatch to be not found, got %v", err)
	}

	byAuthor, err := st.ListResponses(ctx, model.ResponseFilter{Kind: model.KindTopic, Author: author})
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if len(byAuthor) != 1 || byAuthor[0].ID != toTopic.ID {
		t.Fatalf("unexpected responses: %+v", byAuthor)
	}

	all, err := st.ListResponses(ctx, model.ResponseFilter{Author: author})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both kinds, got %d", len(all))
	}

	title := "edited"
	if err := st.UpdateResponse(ctx, model.KindTopic, toTopic.ID, model.ResponseUpdate{Title: &title}, time.Now().UTC()); err != nil {
		t.Fatalf("update response: %v", err)
	}
	got, _ := st.GetResponse(ctx, model.KindTopic, toTopic.ID)
	if got.Title != "edited" || got.Content != "content" {
		t.Fatalf("partial update failed: %+v", got)
	}

	counts, err := st.CountResponsesByTarget(ctx, model.KindTopic, []string{topicID, "other"})
	if err != nil {
		t.Fatalf("count responses: %v", err)
	}
	if counts[topicID] != 1 || counts["other"] != 0 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	if err := st.DeleteResponse(ctx, model.KindTopic, toTopic.ID); err != nil {
		t.Fatalf("delete response: %v", err)
	}
	left, _ := st.ListResponsesByIDs(ctx, model.KindTopic, []string{toTopic.ID})
	if len(left) != 0 {
		t.Fatalf("expected response to be gone")
	}
}

func TestSideUniquePerIssue(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	side := model.Side{ID: uuid.NewString(), User: "u1", Issue: "t1", Degree: model.Agree, CreatedAt: now, UpdatedAt: now}
	if err := st.CreateSide(ctx, &side); err != nil {
		t.Fatalf("create side: %v", err)
	}
	dup := side
	dup.ID = uuid.NewString()
	if err := st.CreateSide(ctx, &dup); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if err := st.UpdateSideDegree(ctx, "u1", "t1", model.Neutral, now); err != nil {
		t.Fatalf("update side: %v", err)
	}
	got, err := st.GetSide(ctx, "u1", "t1")
	if err != nil {
		t.Fatalf("get side: %v", err)
	}
	if got.Degree != model.Neutral {
		t.Fatalf("expected Neutral, got %s", got.Degree)
	}
	if err := st.UpdateSideDegree(ctx, "u2", "t1", model.Agree, now); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLabelItems(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	label := model.Label{ID: uuid.NewString(), Kind: model.KindTopic, Author: "u1", Title: "food", CreatedAt: now, UpdatedAt: now}
	if err := st.CreateLabel(ctx, &label); err != nil {
		t.Fatalf("create label: %v", err)
	}
	same := label
	same.ID = uuid.NewString()
	same.Kind = model.KindResponse
	if err := st.CreateLabel(ctx, &same); err != nil {
		t.Fatalf("same title under another kind should be allowed: %v", err)
	}

	if err := st.AddLabelItem(ctx, label.ID, "t1", now); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if err := st.AddLabelItem(ctx, label.ID, "t1", now); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	got, err := st.GetLabelByTitle(ctx, model.KindTopic, "food")
	if err != nil {
		t.Fatalf("get label: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0] != "t1" {
		t.Fatalf("unexpected items: %v", got.Items)
	}

	if err := st.RemoveLabelItem(ctx, label.ID, "t2"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.DeleteLabel(ctx, model.KindTopic, label.ID); err != nil {
		t.Fatalf("delete label: %v", err)
	}
	var n int
	if err := st.db.Get(&n, `SELECT COUNT(*) FROM label_items WHERE label_id = ?`, label.ID); err != nil {
		t.Fatalf("count items: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected items removed with label, got %d", n)
	}
}

func TestVoteTally(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	put := func(user string, value int) {
		t.Helper()
		v := model.Vote{ID: uuid.NewString(), User: user, Response: "r1", Value: value, CreatedAt: now, UpdatedAt: now}
		if err := st.PutVote(ctx, &v); err != nil {
			t.Fatalf("put vote: %v", err)
		}
	}
	put("a", model.VoteUp)
	put("b", model.VoteUp)
	put("c", model.VoteDown)
	put("c", model.VoteUp)

	tallies, err := st.TallyVotes(ctx, []string{"r1", "r2"})
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if tallies["r1"] != (model.Tally{Up: 3, Down: 0}) {
		t.Fatalf("unexpected tally: %+v", tallies["r1"])
	}
	if tallies["r2"].Count() != 0 {
		t.Fatalf("expected zero tally for r2")
	}

	if err := st.DeleteVote(ctx, "a", "r1"); err != nil {
		t.Fatalf("delete vote: %v", err)
	}
	if err := st.DeleteVote(ctx, "a", "r1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
