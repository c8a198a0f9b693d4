package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/domain"
	"github.com/totegamma/tptech/schemas"
)

var tracer = otel.Tracer("content")

// Document is a decoded content document and the checksum of the bytes it came from.
type Document struct {
	Locale   tptech.Locale
	Domain   tptech.ContentDomain
	Checksum uint64
	Value    any
}

type parsedDocument struct {
	checksum uint64
	value    any
}

// ContentUsecase resolves the published document for a (locale, domain) pair.
// Parsed documents are memoised by checksum, so a republished document is
// picked up on the next call while unchanged ones are not re-decoded.
type ContentUsecase struct {
	source DocumentSource
	parsed *cache.Cache
}

func NewContentUsecase(source DocumentSource, ttl time.Duration) *ContentUsecase {
	cleanup := 2 * ttl
	if cleanup <= 0 {
		cleanup = 15 * time.Minute
	}
	return &ContentUsecase{
		source: source,
		parsed: cache.New(ttl, cleanup),
	}
}

func (uc *ContentUsecase) Load(ctx context.Context, locale tptech.Locale, d tptech.ContentDomain) (Document, error) {
	ctx, span := tracer.Start(ctx, "Content.Usecase.Load")
	defer span.End()

	pair := schemas.Pair{Locale: locale, Domain: d}
	span.SetAttributes(attribute.String("document", pair.String()))

	if _, err := schemas.DocumentPath(locale, d); err != nil {
		return Document{}, domain.NotFoundError{Resource: "content " + pair.String()}
	}

	raw, err := uc.source.Fetch(ctx, locale, d)
	if err != nil {
		span.RecordError(err)
		return Document{}, err
	}

	sum := xxh3.Hash(raw)
	key := pair.String()

	if x, found := uc.parsed.Get(key); found {
		cached := x.(parsedDocument)
		if cached.checksum == sum {
			return Document{Locale: locale, Domain: d, Checksum: sum, Value: cached.value}, nil
		}
	}

	value, err := schemas.Decode(d, raw)
	if err != nil {
		span.RecordError(err)
		return Document{}, &domain.ParseError{Document: key, Err: err}
	}

	uc.parsed.Set(key, parsedDocument{checksum: sum, value: value}, cache.DefaultExpiration)

	return Document{Locale: locale, Domain: d, Checksum: sum, Value: value}, nil
}

func loadAs[T any](ctx context.Context, uc *ContentUsecase, locale tptech.Locale, d tptech.ContentDomain) (T, uint64, error) {
	var zero T
	doc, err := uc.Load(ctx, locale, d)
	if err != nil {
		return zero, 0, err
	}
	v, ok := doc.Value.(T)
	if !ok {
		return zero, 0, &domain.ParseError{
			Document: schemas.Pair{Locale: locale, Domain: d}.String(),
			Err:      fmt.Errorf("unexpected document type %T", doc.Value),
		}
	}
	return v, doc.Checksum, nil
}

func (uc *ContentUsecase) Home(ctx context.Context, locale tptech.Locale) (tptech.HomeContent, error) {
	v, _, err := loadAs[tptech.HomeContent](ctx, uc, locale, tptech.DomainHome)
	return v, err
}

func (uc *ContentUsecase) Services(ctx context.Context, locale tptech.Locale) ([]tptech.Service, error) {
	v, _, err := loadAs[tptech.ServicesDocument](ctx, uc, locale, tptech.DomainServices)
	return v.Services, err
}

func (uc *ContentUsecase) Settings(ctx context.Context, locale tptech.Locale) (tptech.SiteSettings, error) {
	v, _, err := loadAs[tptech.SiteSettings](ctx, uc, locale, tptech.DomainSettings)
	return v, err
}

func (uc *ContentUsecase) Contact(ctx context.Context, locale tptech.Locale) (tptech.ContactContent, error) {
	v, _, err := loadAs[tptech.ContactContent](ctx, uc, locale, tptech.DomainContact)
	return v, err
}

func (uc *ContentUsecase) NotFound(ctx context.Context, locale tptech.Locale) (tptech.NotFoundContent, error) {
	v, _, err := loadAs[tptech.NotFoundContent](ctx, uc, locale, tptech.DomainNotFound)
	return v, err
}

// Blog returns the locale's catalog document and its checksum.
func (uc *ContentUsecase) Blog(ctx context.Context, locale tptech.Locale) (tptech.BlogDocument, uint64, error) {
	return loadAs[tptech.BlogDocument](ctx, uc, locale, tptech.DomainBlog)
}

// Preload loads every (locale, domain) document and reports all failures together.
func (uc *ContentUsecase) Preload(ctx context.Context) error {
	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	g.SetLimit(4)

	for _, pair := range schemas.Pairs() {
		g.Go(func() error {
			_, err := uc.Load(ctx, pair.Locale, pair.Domain)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", pair, err))
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}
