package usecase

import (
	"context"

	"github.com/totegamma/tptech"
)

// DocumentSource fetches the raw bytes of one published content document.
// A missing document must be reported as domain.NotFoundError.
type DocumentSource interface {
	Fetch(ctx context.Context, locale tptech.Locale, d tptech.ContentDomain) ([]byte, error)
}

// PreferenceStore persists a visitor's locale choice outside the request.
// An empty value with a nil error means nothing was stored.
type PreferenceStore interface {
	LoadLocale(ctx context.Context, visitorID string) (string, error)
	SaveLocale(ctx context.Context, visitorID string, locale string) error
}

// LocalePersister is the durable slot a LocaleStore reads at start and writes on change.
type LocalePersister interface {
	Load() (string, error)
	Save(locale string) error
}

// FragmentCache stores rendered fragments keyed by content checksum.
type FragmentCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}
