package uistate

import (
	"fmt"
	"sync"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/usecase"
)

const (
	EventMenuToggle       = "menu.toggle"
	EventSubmenuToggle    = "submenu.toggle"
	EventLinkSelect       = "link.select"
	EventDropdownEnter    = "dropdown.enter"
	EventDropdownLeave    = "dropdown.leave"
	EventModalOpen        = "modal.open"
	EventModalClose       = "modal.close"
	EventModalBackdrop    = "modal.backdrop"
	EventLightboxOpen     = "lightbox.open"
	EventLightboxNext     = "lightbox.next"
	EventLightboxPrev     = "lightbox.prev"
	EventLightboxClose    = "lightbox.close"
	EventLightboxBackdrop = "lightbox.backdrop"
	EventScroll           = "scroll"
	EventLocaleToggle     = "locale.toggle"
	EventLocaleSet        = "locale.set"
	EventHeartbeat        = "h"
)

// Event is one interaction reported by the browser.
type Event struct {
	Type     string  `json:"type"`
	Key      string  `json:"key,omitempty"`
	Index    int     `json:"index,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Children bool    `json:"children,omitempty"`
}

type Snapshot struct {
	Locale   tptech.Locale `json:"locale"`
	Nav      Navigation    `json:"nav"`
	Modal    ContactModal  `json:"modal"`
	Lightbox Lightbox      `json:"lightbox"`
	Header   Header        `json:"header"`
	Content  any           `json:"content,omitempty"`
}

// Session is the interaction state of one open page.
// Any locale change, local or remote, collapses the mobile navigation.
type Session struct {
	mu       sync.Mutex
	locale   *usecase.LocaleStore
	nav      Navigation
	modal    ContactModal
	lightbox Lightbox
	header   Header

	unsubscribe func()
}

func NewSession(locale *usecase.LocaleStore, gallerySize int) *Session {
	s := &Session{
		locale:   locale,
		lightbox: NewLightbox(gallerySize),
	}
	s.unsubscribe = locale.Subscribe(func(tptech.Locale) {
		s.mu.Lock()
		s.nav.CollapseMobile()
		s.mu.Unlock()
	})
	return s
}

func (s *Session) Close() {
	s.unsubscribe()
}

func (s *Session) Locale() tptech.Locale {
	return s.locale.Get()
}

func (s *Session) ToggleLocale() tptech.Locale {
	return s.locale.Toggle()
}

func (s *Session) SetGallerySize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lightbox.Resize(n)
}

// Apply feeds one event into the state machines. It reports whether the
// locale changed so the caller can reload localized content.
func (s *Session) Apply(ev Event) (localeChanged bool, err error) {
	switch ev.Type {
	case EventLocaleToggle:
		s.locale.Toggle()
		return true, nil
	case EventLocaleSet:
		l, ok := tptech.ParseLocale(ev.Key)
		if !ok {
			return false, fmt.Errorf("unsupported locale %q", ev.Key)
		}
		before := s.locale.Get()
		s.locale.Set(l)
		return before != l, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case EventHeartbeat:
	case EventMenuToggle:
		s.nav.ToggleMobile()
	case EventSubmenuToggle:
		s.nav.ToggleSubmenu(ev.Key)
	case EventLinkSelect:
		s.nav.SelectLink(ev.Key, ev.Children)
	case EventDropdownEnter:
		s.nav.HoverEnter(ev.Key, ev.Children)
	case EventDropdownLeave:
		s.nav.HoverLeave()
	case EventModalOpen:
		s.modal.Show()
	case EventModalClose:
		s.modal.Close()
	case EventModalBackdrop:
		s.modal.Click(true)
	case EventLightboxOpen:
		return false, s.lightbox.Show(ev.Index)
	case EventLightboxNext:
		s.lightbox.Next()
	case EventLightboxPrev:
		s.lightbox.Prev()
	case EventLightboxClose:
		s.lightbox.Close()
	case EventLightboxBackdrop:
		s.lightbox.Click(true)
	case EventScroll:
		s.header.OnScroll(ev.Y)
	default:
		return false, fmt.Errorf("unknown event type %q", ev.Type)
	}
	return false, nil
}

func (s *Session) Snapshot() Snapshot {
	locale := s.locale.Get()
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Locale:   locale,
		Nav:      s.nav,
		Modal:    s.modal,
		Lightbox: s.lightbox,
		Header:   s.header,
	}
}
