package repository

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/domain"
)

func TestFileSourceFetch(t *testing.T) {
	fsys := fstest.MapFS{
		"vi/home.json": {Data: []byte(`{"hero":{}}`)},
		"en/404.json":  {Data: []byte(`{"title":"Not found"}`)},
	}
	src := NewFileSource(fsys)
	ctx := context.Background()

	raw, err := src.Fetch(ctx, tptech.LocaleVI, tptech.DomainHome)
	require.NoError(t, err)
	assert.Equal(t, `{"hero":{}}`, string(raw))

	raw, err = src.Fetch(ctx, tptech.LocaleEN, tptech.DomainNotFound)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Not found")

	_, err = src.Fetch(ctx, tptech.LocaleEN, tptech.DomainHome)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = src.Fetch(ctx, "fr", tptech.DomainHome)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMemoryFragments(t *testing.T) {
	f := NewMemoryFragments()

	_, ok := f.Get("blog:vi:a:1")
	assert.False(t, ok)

	f.Set("blog:vi:a:1", []byte("<p>hi</p>"))
	v, ok := f.Get("blog:vi:a:1")
	require.True(t, ok)
	assert.Equal(t, "<p>hi</p>", string(v))
}
