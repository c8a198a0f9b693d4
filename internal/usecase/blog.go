package usecase

import (
	"context"
	"sync"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/domain"
)

const DefaultRelatedLimit = 3

// Catalog indexes one locale's posts by slug and category, keeping catalog order.
type Catalog struct {
	posts      []tptech.BlogPost
	version    uint64
	bySlug     map[string]int
	byCategory map[string][]int
}

func NewCatalog(posts []tptech.BlogPost) *Catalog {
	c := &Catalog{
		posts:      posts,
		bySlug:     make(map[string]int, len(posts)),
		byCategory: make(map[string][]int),
	}
	for i, p := range posts {
		if _, dup := c.bySlug[p.Slug]; !dup {
			c.bySlug[p.Slug] = i
		}
		c.byCategory[p.Category] = append(c.byCategory[p.Category], i)
	}
	return c
}

func (c *Catalog) Posts() []tptech.BlogPost {
	return c.posts
}

// Version is the checksum of the blog document the catalog was built from.
func (c *Catalog) Version() uint64 {
	return c.version
}

// BySlug matches the slug exactly, without normalisation.
func (c *Catalog) BySlug(slug string) (tptech.BlogPost, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return tptech.BlogPost{}, false
	}
	return c.posts[i], true
}

// Related returns up to limit posts sharing post's category, excluding post itself, in catalog order.
func (c *Catalog) Related(post tptech.BlogPost, limit int) []tptech.BlogPost {
	if limit <= 0 {
		return []tptech.BlogPost{}
	}
	related := make([]tptech.BlogPost, 0, limit)
	for _, i := range c.byCategory[post.Category] {
		if c.posts[i].ID == post.ID {
			continue
		}
		related = append(related, c.posts[i])
		if len(related) == limit {
			break
		}
	}
	return related
}

type BlogUsecase struct {
	content *ContentUsecase

	mu       sync.Mutex
	catalogs map[tptech.Locale]*Catalog
}

func NewBlogUsecase(content *ContentUsecase) *BlogUsecase {
	return &BlogUsecase{
		content:  content,
		catalogs: make(map[tptech.Locale]*Catalog),
	}
}

// Catalog returns the indexed catalog for locale, rebuilding the index only
// when the underlying blog document changed.
func (uc *BlogUsecase) Catalog(ctx context.Context, locale tptech.Locale) (*Catalog, error) {
	doc, sum, err := uc.content.Blog(ctx, locale)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if c, ok := uc.catalogs[locale]; ok && c.version == sum {
		return c, nil
	}
	catalog := NewCatalog(doc.Posts)
	catalog.version = sum
	uc.catalogs[locale] = catalog
	return catalog, nil
}

func (uc *BlogUsecase) List(ctx context.Context, locale tptech.Locale) ([]tptech.BlogPost, error) {
	catalog, err := uc.Catalog(ctx, locale)
	if err != nil {
		return nil, err
	}
	return catalog.Posts(), nil
}

// GetBySlug returns domain.ErrNotFound (as a NotFoundError) when no post has the slug.
func (uc *BlogUsecase) GetBySlug(ctx context.Context, locale tptech.Locale, slug string) (tptech.BlogPost, error) {
	catalog, err := uc.Catalog(ctx, locale)
	if err != nil {
		return tptech.BlogPost{}, err
	}
	post, ok := catalog.BySlug(slug)
	if !ok {
		return tptech.BlogPost{}, domain.NotFoundError{Resource: "blog post " + slug}
	}
	return post, nil
}

func (uc *BlogUsecase) Related(ctx context.Context, locale tptech.Locale, post tptech.BlogPost, limit int) ([]tptech.BlogPost, error) {
	catalog, err := uc.Catalog(ctx, locale)
	if err != nil {
		return nil, err
	}
	return catalog.Related(post, limit), nil
}
