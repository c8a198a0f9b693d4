package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/domain"
)

type localeSubscriber struct {
	id int
	fn func(tptech.Locale)
}

// LocaleStore holds the active locale of one visitor session.
// It starts from the persisted choice when valid and otherwise from tptech.DefaultLocale.
// Once the persister fails the store keeps working in memory for the rest of its life.
type LocaleStore struct {
	mu        sync.RWMutex
	current   tptech.Locale
	persister LocalePersister
	subs      []localeSubscriber
	nextID    int
}

func NewLocaleStore(persister LocalePersister) *LocaleStore {
	s := &LocaleStore{
		current:   tptech.DefaultLocale,
		persister: persister,
	}
	if persister == nil {
		return s
	}

	raw, err := persister.Load()
	if err != nil {
		slog.Warn(
			"locale storage unavailable, keeping locale in memory",
			slog.String("error", err.Error()),
			slog.String("module", "locale"),
		)
		s.persister = nil
		return s
	}
	if l, ok := tptech.ParseLocale(raw); ok {
		s.current = l
	}
	return s
}

// NewLocaleStoreAt starts from initial without reading or writing persister.
// Later changes are persisted as usual. It is used when the starting locale
// was already resolved for the request and must not become the saved choice.
func NewLocaleStoreAt(initial tptech.Locale, persister LocalePersister) *LocaleStore {
	s := &LocaleStore{
		current:   tptech.DefaultLocale,
		persister: persister,
	}
	if initial.Valid() {
		s.current = initial
	}
	return s
}

func (s *LocaleStore) Get() tptech.Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set switches to locale, persists it and notifies subscribers before returning.
// Unsupported values are ignored.
func (s *LocaleStore) Set(locale tptech.Locale) {
	if !locale.Valid() {
		return
	}

	s.mu.Lock()
	changed := s.current != locale
	s.current = locale
	persister := s.persister
	subs := make([]localeSubscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if persister != nil {
		if err := persister.Save(string(locale)); err != nil {
			slog.Warn(
				"failed to persist locale, keeping locale in memory",
				slog.String("error", err.Error()),
				slog.String("module", "locale"),
			)
			s.mu.Lock()
			s.persister = nil
			s.mu.Unlock()
		}
	}

	if !changed {
		return
	}
	for _, sub := range subs {
		sub.fn(locale)
	}
}

// Toggle switches to the other supported locale and returns it.
func (s *LocaleStore) Toggle() tptech.Locale {
	next := s.Get().Toggle()
	s.Set(next)
	return next
}

// Subscribe registers fn to be called synchronously after every locale change.
func (s *LocaleStore) Subscribe(fn func(tptech.Locale)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, localeSubscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Persistent reports whether changes still reach durable storage.
func (s *LocaleStore) Persistent() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persister != nil
}

// MemoryPersister keeps the locale in a variable. The zero value is empty.
type MemoryPersister struct {
	mu    sync.Mutex
	value string
}

func (m *MemoryPersister) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

func (m *MemoryPersister) Save(locale string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = locale
	return nil
}

type preferencePersister struct {
	ctx       context.Context
	store     PreferenceStore
	visitorID string
}

// NewPreferencePersister binds a PreferenceStore to one visitor.
func NewPreferencePersister(ctx context.Context, store PreferenceStore, visitorID string) LocalePersister {
	return &preferencePersister{ctx: ctx, store: store, visitorID: visitorID}
}

func (p *preferencePersister) Load() (string, error) {
	v, err := p.store.LoadLocale(p.ctx, p.visitorID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return v, nil
}

func (p *preferencePersister) Save(locale string) error {
	err := p.store.SaveLocale(p.ctx, p.visitorID, locale)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}
