package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/domain"
	"github.com/totegamma/tptech/schemas"
)

type fakeSource struct {
	mu    sync.Mutex
	docs  map[string][]byte
	calls int
	err   error
}

func newFakeSource() *fakeSource {
	return &fakeSource{docs: make(map[string][]byte)}
}

func (f *fakeSource) put(l tptech.Locale, d tptech.ContentDomain, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[schemas.Pair{Locale: l, Domain: d}.String()] = []byte(body)
}

func (f *fakeSource) Fetch(ctx context.Context, l tptech.Locale, d tptech.ContentDomain) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	raw, ok := f.docs[schemas.Pair{Locale: l, Domain: d}.String()]
	if !ok {
		return nil, domain.NotFoundError{Resource: "content " + string(l) + "/" + string(d)}
	}
	return raw, nil
}

func postJSON(id, slug, category string) string {
	return fmt.Sprintf(`{"id":%q,"slug":%q,"title":"Post %s","excerpt":"","content":"body","author":"tp","date":"2025-01-15","category":%q,"tags":[],"featuredImage":"","seo":{"metaTitle":"t","metaDescription":"","keywords":[]}}`,
		id, slug, id, category)
}

func blogJSON(posts ...string) string {
	body := `{"posts":[`
	for i, p := range posts {
		if i > 0 {
			body += ","
		}
		body += p
	}
	return body + `]}`
}

const contactJSON = `{"title":"Liên hệ","hotline":"Hotline","contacts":[{"phone":"0901234567"}]}`

type fakePreferences struct {
	mu      sync.Mutex
	values  map[string]string
	loadErr error
	saveErr error
}

func (f *fakePreferences) LoadLocale(ctx context.Context, visitorID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return "", f.loadErr
	}
	return f.values[visitorID], nil
}

func (f *fakePreferences) SaveLocale(ctx context.Context, visitorID, locale string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[visitorID] = locale
	return nil
}
