package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWith(t *testing.T) {
	err := Unauthorized("{0} is not the author of topic {1}!", "u-1", "t-1").WithCode("topic_author_mismatch")

	assert.Equal(t, "u-1 is not the author of topic t-1!", err.Error())
	assert.Equal(t, "bob is not the author of topic X!", err.FormatWith("bob", "X"))
	assert.Equal(t, "plain", BadInput("plain").Error())
}

func TestKindThroughWrapping(t *testing.T) {
	base := NotFound("Topic not found!")
	wrapped := fmt.Errorf("delete: %w", base)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(nil, KindNotFound))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, base, e)
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindBadInput:        http.StatusBadRequest,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindUnauthorized:    http.StatusForbidden,
		KindUnauthenticated: http.StatusUnauthorized,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), kind.String())
	}
}

func TestHasCode(t *testing.T) {
	err := Conflict("{0} already has a side for {1}!", "u", "t").WithCode("side_exists")
	assert.True(t, HasCode(err, "side_exists"))
	assert.False(t, HasCode(err, "side_missing"))
	assert.False(t, HasCode(errors.New("x"), "side_exists"))
}
