package topic

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphabot-ai/stance/internal/apperr"
	"github.com/alphabot-ai/stance/internal/store/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st)
}

func TestCreateTopic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "", "d")
	assert.True(t, apperr.IsKind(err, apperr.KindBadInput))

	created, err := svc.Create(ctx, "alice", "X", "d")
	require.NoError(t, err)
	assert.Equal(t, "X", created.Title)
	assert.Equal(t, "alice", created.Author)

	_, err = svc.Create(ctx, "bob", "X", "other")
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, "Topic with title X already exists!", err.Error())
}

func TestSearchTopicTitles(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"Cats vs Dogs", "Best dog food", "Tabs or spaces"} {
		_, err := svc.Create(ctx, "alice", title, "")
		require.NoError(t, err)
	}
	found, err := svc.SearchTopicTitles(ctx, "DOG")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	all, err := svc.GetAllTopics(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Tabs or spaces", all[0].Title)
}

func TestAssertAuthorIsUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", "X", "")
	require.NoError(t, err)

	require.NoError(t, svc.AssertAuthorIsUser(ctx, created.ID, "alice"))

	err = svc.AssertAuthorIsUser(ctx, created.ID, "bob")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
	assert.True(t, apperr.HasCode(err, CodeAuthorMismatch))
	e, _ := apperr.As(err)
	assert.Equal(t, "bob is not the author of topic X!", e.FormatWith("bob", "X"))

	err = svc.AssertAuthorIsUser(ctx, "missing", "alice")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestIDsToTitles(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "alice", "A", "")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "alice", "B", "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, b.ID))

	titles, err := svc.IDsToTitles(ctx, []string{b.ID, a.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{DeletedTopic, "A"}, titles)

	err = svc.Delete(ctx, b.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
