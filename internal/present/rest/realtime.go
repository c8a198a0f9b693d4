package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/present/rest/middleware"
	"github.com/totegamma/tptech/internal/service"
	"github.com/totegamma/tptech/internal/uistate"
	"github.com/totegamma/tptech/internal/usecase"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// pageContent is the locale dependent content a page needs after a language switch.
type pageContent struct {
	Settings tptech.SiteSettings   `json:"settings"`
	Contact  tptech.ContactContent `json:"contact"`
	Home     tptech.HomeContent    `json:"home"`
}

func (h *Handler) pageContentLoader(locale tptech.Locale) func(ctx context.Context) (pageContent, error) {
	return func(ctx context.Context) (pageContent, error) {
		var pc pageContent
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			pc.Settings, err = h.content.Settings(ctx, locale)
			return err
		})
		g.Go(func() (err error) {
			pc.Contact, err = h.content.Contact(ctx, locale)
			return err
		})
		g.Go(func() (err error) {
			pc.Home, err = h.content.Home(ctx, locale)
			return err
		})
		err := g.Wait()
		return pc, err
	}
}

func gallerySize(home tptech.HomeContent) int {
	if home.Projects == nil {
		return 0
	}
	return len(home.Projects.Images)
}

func (h *Handler) handleRealtime(c echo.Context) error {
	initial := middleware.RequestLocale(c)
	visitorID := middleware.VisitorID(c.Request().Context())

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	sessionID := uuid.NewString()

	var persister usecase.LocalePersister = &usecase.MemoryPersister{}
	if h.prefs != nil && visitorID != "" {
		persister = usecase.NewPreferencePersister(ctx, h.prefs, visitorID)
	}
	store := usecase.NewLocaleStoreAt(initial, persister)

	size := 0
	if home, err := h.content.Home(ctx, initial); err == nil {
		size = gallerySize(home)
	}
	session := uistate.NewSession(store, size)
	defer session.Close()

	loader := usecase.NewLatestLoader[pageContent]()
	unsubscribe := store.Subscribe(func(l tptech.Locale) {
		loader.Start(ctx, h.pageContentLoader(l))
	})
	defer unsubscribe()

	var remote <-chan service.LocaleEvent
	if h.signal != nil && visitorID != "" {
		remote = h.signal.SubscribeLocale(ctx, visitorID)
	}

	events := make(chan uistate.Event)
	go func() {
		defer cancel()
		for {
			var ev uistate.Event
			err := ws.ReadJSON(&ev)
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else if ctx.Err() == nil {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	write := func(snap uistate.Snapshot) bool {
		err := ws.WriteJSON(snap)
		if err != nil {
			slog.ErrorContext(
				ctx, "Error writing message",
				slog.String("error", err.Error()),
				slog.String("module", "socket"),
			)
			return false
		}
		return true
	}

	if !write(session.Snapshot()) {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			changed, err := session.Apply(ev)
			if err != nil {
				slog.InfoContext(
					ctx, "Rejected event",
					slog.String("type", ev.Type),
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				continue
			}
			if ev.Type == uistate.EventHeartbeat {
				continue
			}
			if changed {
				h.announceLocale(ctx, session.Locale(), sessionID)
			}
			if !write(session.Snapshot()) {
				return nil
			}

		case ev, ok := <-remote:
			if !ok {
				remote = nil
				continue
			}
			if ev.Origin == sessionID || ev.Locale == session.Locale() {
				continue
			}
			store.Set(ev.Locale)
			if !write(session.Snapshot()) {
				return nil
			}

		case r := <-loader.Results():
			if !loader.Accept(r) {
				slog.DebugContext(ctx, "Discarding superseded content load", slog.String("module", "socket"))
				continue
			}
			if r.Err != nil {
				slog.ErrorContext(
					ctx, "Failed to reload content",
					slog.String("error", r.Err.Error()),
					slog.String("module", "socket"),
				)
				continue
			}
			session.SetGallerySize(gallerySize(r.Value.Home))
			snap := session.Snapshot()
			snap.Content = r.Value
			if !write(snap) {
				return nil
			}
		}
	}
}
