package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NewNotFound("session not found")))
	assert.Equal(t, KindValidation, KindOf(NewValidation("bad body", nil)))
	assert.Equal(t, KindAdapter, KindOf(NewAdapter("answer generation failed", errors.New("timeout"))))
	assert.Equal(t, KindStorage, KindOf(errors.New("connection refused")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := NewNotFound("session not found")
	wrapped := fmt.Errorf("while handling request: %w", inner)

	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := NewAdapter("answer generation failed", errors.New("model unavailable"))
	assert.Equal(t, "answer generation failed: model unavailable", err.Error())
	assert.Equal(t, "model unavailable", errors.Unwrap(err).Error())

	bare := NewNotFound("session not found")
	assert.Equal(t, "session not found", bare.Error())
}
