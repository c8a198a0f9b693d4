package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/domain"
	"github.com/totegamma/tptech/internal/usecase"
)

var tracer = otel.Tracer("locale")

const cookieMaxAge = 365 * 24 * time.Hour

type LocaleMiddleware struct {
	prefs usecase.PreferenceStore
}

// NewLocaleMiddleware builds the middleware. prefs may be nil, in which case
// the locale lives only in the visitor's cookie.
func NewLocaleMiddleware(prefs usecase.PreferenceStore) *LocaleMiddleware {
	return &LocaleMiddleware{
		prefs: prefs,
	}
}

// IdentifyLocale attaches the visitor id and a LocaleStore to the request context.
func (m *LocaleMiddleware) IdentifyLocale(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Locale.Middleware.IdentifyLocale")
		defer span.End()

		visitorID := ""
		if cookie, err := c.Cookie(domain.VisitorCookie); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				visitorID = cookie.Value
			}
		}
		if visitorID == "" {
			visitorID = uuid.NewString()
			c.SetCookie(newCookie(domain.VisitorCookie, visitorID))
		}

		persister := &cookiePersister{c: c}
		if m.prefs != nil {
			persister.mirror = usecase.NewPreferencePersister(ctx, m.prefs, visitorID)
		}
		store := usecase.NewLocaleStore(persister)

		span.SetAttributes(
			attribute.String("VisitorId", visitorID),
			attribute.String("Locale", string(store.Get())),
		)

		ctx = context.WithValue(ctx, domain.VisitorIDCtxKey, visitorID)
		ctx = context.WithValue(ctx, domain.LocaleStoreCtxKey, store)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func newCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// cookiePersister keeps the locale in the "locale" cookie and, when a mirror
// is configured, copies it there so other devices of the same visitor id and
// realtime sessions can see it. Mirror failures never break the cookie path.
type cookiePersister struct {
	c      echo.Context
	mirror usecase.LocalePersister
}

func (p *cookiePersister) Load() (string, error) {
	if cookie, err := p.c.Cookie(domain.LocaleCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	if p.mirror == nil {
		return "", nil
	}
	v, err := p.mirror.Load()
	if err != nil {
		slog.Warn("locale mirror unavailable", slog.String("error", err.Error()), slog.String("module", "locale"))
		return "", nil
	}
	return v, nil
}

func (p *cookiePersister) Save(locale string) error {
	p.c.SetCookie(newCookie(domain.LocaleCookie, locale))
	if p.mirror != nil {
		if err := p.mirror.Save(locale); err != nil {
			slog.Warn("failed to mirror locale", slog.String("error", err.Error()), slog.String("module", "locale"))
		}
	}
	return nil
}

// LocaleStore returns the request's store, or a fresh in-memory one outside the middleware.
func LocaleStore(ctx context.Context) *usecase.LocaleStore {
	store, ok := ctx.Value(domain.LocaleStoreCtxKey).(*usecase.LocaleStore)
	if !ok {
		return usecase.NewLocaleStore(nil)
	}
	return store
}

func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(domain.VisitorIDCtxKey).(string)
	return id
}

// RequestLocale is the locale a response should use. A valid X-Locale header
// overrides the visitor's choice for that request only.
func RequestLocale(c echo.Context) tptech.Locale {
	if l, ok := tptech.ParseLocale(c.Request().Header.Get(domain.LocaleHeader)); ok {
		return l
	}
	return LocaleStore(c.Request().Context()).Get()
}
