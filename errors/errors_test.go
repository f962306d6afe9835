package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	tts := map[string]struct {
		err      error
		expected int
	}{
		"plain error defaults to 500": {
			err:      stderrors.New("boom"),
			expected: 500,
		},
		"explicit code": {
			err:      New("missing", WithCode(404)),
			expected: 404,
		},
		"code inherited from cause": {
			err:      New("wrapping", WithCause(BadRequest("bad payload"))),
			expected: 400,
		},
		"explicit code wins over cause": {
			err:      New("wrapping", WithCode(502), WithCause(BadRequest("bad payload"))),
			expected: 502,
		},
	}

	for name, tt := range tts {
		assert.Equal(t, tt.expected, Code(tt.err), name)
	}
}

func TestErrorString(t *testing.T) {
	err := New("indexing failed", WithCause(stderrors.New("connection refused")))
	assert.Equal(t, "indexing failed: connection refused", err.Error())

	assert.Equal(t, "indexing failed", New("indexing failed").Error())
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root")
	err := New("outer", WithCause(cause))
	assert.True(t, stderrors.Is(err, cause))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("no such recipe")))
	assert.False(t, IsNotFound(BadRequest("nope")))
	assert.False(t, IsNotFound(stderrors.New("boom")))
}
