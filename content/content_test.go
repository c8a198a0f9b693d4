package content

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/infra/repository"
	"github.com/totegamma/tptech/internal/usecase"
	"github.com/totegamma/tptech/schemas"
)

func TestEveryDocumentLoadsAndRoundTrips(t *testing.T) {
	uc := usecase.NewContentUsecase(repository.NewFileSource(FS()), time.Minute)
	ctx := context.Background()

	for _, pair := range schemas.Pairs() {
		t.Run(pair.String(), func(t *testing.T) {
			doc, err := uc.Load(ctx, pair.Locale, pair.Domain)
			require.NoError(t, err)

			raw, err := json.Marshal(doc.Value)
			require.NoError(t, err)
			again, err := schemas.Decode(pair.Domain, raw)
			require.NoError(t, err)
			assert.Equal(t, doc.Value, again)
		})
	}
}

func TestPreload(t *testing.T) {
	uc := usecase.NewContentUsecase(repository.NewFileSource(FS()), time.Minute)
	assert.NoError(t, uc.Preload(context.Background()))
}

func TestBlogSlugsResolve(t *testing.T) {
	blog := usecase.NewBlogUsecase(usecase.NewContentUsecase(repository.NewFileSource(FS()), time.Minute))
	ctx := context.Background()

	for _, l := range tptech.Locales {
		posts, err := blog.List(ctx, l)
		require.NoError(t, err)
		require.NotEmpty(t, posts)

		for _, p := range posts {
			got, err := blog.GetBySlug(ctx, l, p.Slug)
			require.NoError(t, err)
			assert.Equal(t, p, got)

			related, err := blog.Related(ctx, l, p, usecase.DefaultRelatedLimit)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(related), usecase.DefaultRelatedLimit)
			for _, r := range related {
				assert.NotEqual(t, p.ID, r.ID)
				assert.Equal(t, p.Category, r.Category)
			}
		}
	}
}
