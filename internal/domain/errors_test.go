package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorIs(t *testing.T) {
	err := fmt.Errorf("load: %w", NotFoundError{Resource: "blog post"})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "load: blog post not found", err.Error())
}

func TestParseErrorIs(t *testing.T) {
	inner := errors.New("bad field")
	err := fmt.Errorf("wrap: %w", &ParseError{Document: "vi/home", Err: inner})
	assert.True(t, errors.Is(err, ErrParse))
	assert.True(t, errors.Is(err, inner))
	assert.False(t, errors.Is(err, ErrNotFound))
}
