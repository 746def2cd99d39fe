package validate

import (
	"strings"
	"testing"

	"vidtube/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	id := uuid.NewString()
	got, err := ID("video id", id)
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ID("video id", "not-an-id")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
	assert.Equal(t, "invalid video id", apperror.Message(err))
}

func TestID_Canonicalizes(t *testing.T) {
	id := uuid.NewString()
	for _, spelling := range []string{
		strings.ToUpper(id),
		"{" + id + "}",
		"urn:uuid:" + id,
		strings.ReplaceAll(id, "-", ""),
	} {
		got, err := ID("channel id", spelling)
		assert.NoError(t, err, spelling)
		assert.Equal(t, id, got, spelling)
	}
}

func TestIDs_StopsAtFirstBad(t *testing.T) {
	_, err := IDs("video id", []string{uuid.NewString(), "", uuid.NewString()})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))

	got, err := IDs("video id", nil)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestIDs_CanonicalizesBeforeUnique(t *testing.T) {
	id := uuid.NewString()
	got, err := IDs("video id", []string{id, strings.ToUpper(id), "{" + id + "}"})
	assert.NoError(t, err)
	assert.Equal(t, []string{id}, Unique(got))
}

func TestText(t *testing.T) {
	got, err := Text("content", "  hello  ")
	assert.NoError(t, err)
	assert.Equal(t, "hello", got)

	_, err = Text("content", " \n\t ")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []string{}, Unique(nil))
}
