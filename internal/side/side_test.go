package side

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphabot-ai/stance/internal/apperr"
	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/store/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st)
}

func TestOneSidePerIssue(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	side, err := svc.Create(ctx, "alice", "X", "Agree")
	require.NoError(t, err)
	assert.Equal(t, model.Agree, side.Degree)

	_, err = svc.Create(ctx, "alice", "X", "Disagree")
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.True(t, apperr.HasCode(err, CodeExists))

	_, err = svc.Create(ctx, "bob", "X", "Disagree")
	require.NoError(t, err)

	sides, err := svc.GetSidesByIssue(ctx, "X")
	require.NoError(t, err)
	assert.Len(t, sides, 2)
}

func TestRejectsUnknownDegree(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, degree := range []string{"", "agree", "Very Agree"} {
		_, err := svc.Create(ctx, "alice", "X", degree)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound), degree)
	}
	for _, degree := range model.Degrees {
		_, err := svc.Create(ctx, string(degree), "X", string(degree))
		assert.NoError(t, err, degree)
	}
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	next := "Neutral"
	err := svc.Update(ctx, "alice", "X", &next)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.True(t, apperr.HasCode(err, CodeMissing))

	_, err = svc.Create(ctx, "alice", "X", "Agree")
	require.NoError(t, err)
	require.NoError(t, svc.AssertUserHasSide(ctx, "alice", "X"))

	require.NoError(t, svc.Update(ctx, "alice", "X", nil))
	require.NoError(t, svc.Update(ctx, "alice", "X", &next))

	bad := "Sideways"
	err = svc.Update(ctx, "alice", "X", &bad)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	sides, err := svc.GetSideByUserAndIssue(ctx, "alice", "X")
	require.NoError(t, err)
	require.Len(t, sides, 1)
	assert.Equal(t, model.Neutral, sides[0].Degree)

	none, err := svc.GetSideByUserAndIssue(ctx, "bob", "X")
	require.NoError(t, err)
	assert.Empty(t, none)
}
