package rest

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/content"
	"github.com/totegamma/tptech/internal/config"
	"github.com/totegamma/tptech/internal/domain"
	"github.com/totegamma/tptech/internal/infra/repository"
	"github.com/totegamma/tptech/internal/present/rest/middleware"
	"github.com/totegamma/tptech/internal/present/web"
	"github.com/totegamma/tptech/internal/uistate"
	"github.com/totegamma/tptech/internal/usecase"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	return newTestServerFS(t, content.FS(), nil)
}

func newTestServerFS(t *testing.T, fsys fs.FS, prefs usecase.PreferenceStore) *echo.Echo {
	t.Helper()

	contentUC := usecase.NewContentUsecase(repository.NewFileSource(fsys), time.Minute)
	blogUC := usecase.NewBlogUsecase(contentUC)

	tr, err := web.NewTranslator()
	require.NoError(t, err)
	renderer, err := web.NewRenderer(tr)
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.Use(middleware.NewLocaleMiddleware(nil).IdentifyLocale)

	site := config.Site{FormAction: "/", MessagingBase: "https://zalo.me"}
	h := NewHandler(site, contentUC, blogUC, web.NewArticleRenderer(repository.NewMemoryFragments()), prefs, nil)
	h.RegisterRoutes(e)
	return e
}

func do(e *echo.Echo, method, target, body string, header map[string]string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestBlogAPI(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/blog/website-responsive", "", map[string]string{domain.LocaleHeader: "en"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/api/blog/responsive-website", "", map[string]string{domain.LocaleHeader: "en"})
	require.Equal(t, http.StatusOK, rec.Code)
	var post tptech.BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Equal(t, "4", post.ID)

	rec = do(e, http.MethodGet, "/api/blog/seo-ready-website-design/related?limit=2", "", map[string]string{domain.LocaleHeader: "en"})
	require.Equal(t, http.StatusOK, rec.Code)
	var related []tptech.BlogPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &related))
	require.Len(t, related, 2)
	for _, r := range related {
		assert.NotEqual(t, "1", r.ID)
		assert.Equal(t, "Web design", r.Category)
	}

	rec = do(e, http.MethodGet, "/api/blog/seo-ready-website-design/related?limit=x", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBlogDetailMissRedirects(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/blog/nonexistent-slug", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/blog", rec.Header().Get(echo.HeaderLocation))

	rec = do(e, http.MethodGet, "/blog/thiet-ke-website-chuan-seo", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h2>Website chuẩn SEO</h2>")
	assert.Contains(t, rec.Body.String(), "Bài viết liên quan")
}

func TestNav(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/nav?path=/services/design", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var nav []navItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nav))
	active := map[string]bool{}
	for _, n := range nav {
		active[n.Href] = n.Active
	}
	assert.False(t, active["/"])
	assert.True(t, active["/services"])
	assert.False(t, active["/blog"])
}

func TestLocaleAPI(t *testing.T) {
	e := newTestServer(t)
	jsonHeader := map[string]string{echo.HeaderContentType: echo.MIMEApplicationJSON}

	rec := do(e, http.MethodGet, "/api/locale", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"locale":"vi","persistent":true}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/locale", `{"locale":"fr"}`, jsonHeader)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/locale", `{"locale":"en"}`, jsonHeader)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := findCookie(rec, domain.LocaleCookie)
	require.NotNil(t, cookie)
	assert.Equal(t, "en", cookie.Value)

	rec = do(e, http.MethodGet, "/api/locale", "", nil, cookie)
	assert.JSONEq(t, `{"locale":"en","persistent":true}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/", "", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
}

func TestLocaleForm(t *testing.T) {
	e := newTestServer(t)
	form := map[string]string{echo.HeaderContentType: echo.MIMEApplicationForm}

	rec := do(e, http.MethodPost, "/locale", url.Values{"redirect": {"/blog"}}.Encode(), form)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/blog", rec.Header().Get(echo.HeaderLocation))
	cookie := findCookie(rec, domain.LocaleCookie)
	require.NotNil(t, cookie)
	assert.Equal(t, "en", cookie.Value)

	rec = do(e, http.MethodPost, "/locale", url.Values{"redirect": {"//evil.example"}}.Encode(), form, cookie)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "vi", findCookie(rec, domain.LocaleCookie).Value)
}

func TestContentAPI(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/content/contact", "", map[string]string{domain.LocaleHeader: "en"})
	require.Equal(t, http.StatusOK, rec.Code)
	var contact tptech.ContactContent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contact))
	assert.Equal(t, "Contact us", contact.Title)

	rec = do(e, http.MethodGet, "/api/content/pricing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPagesAndNotFound(t *testing.T) {
	e := newTestServer(t)

	for _, path := range []string{"/", "/about", "/contact", "/blog"} {
		rec := do(e, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := do(e, http.MethodGet, "/", "", nil)
	assert.Contains(t, rec.Body.String(), `name="form-name" value="contact"`)
	assert.Contains(t, rec.Body.String(), `href="https://zalo.me/0901234567"`)

	footer := footerOf(t, rec.Body.String())
	assert.Contains(t, footer, `<h3>Liên kết nhanh</h3>`)
	assert.Contains(t, footer, `<a href="/blog">Blog</a>`)
	assert.Contains(t, footer, `<h3>Dịch vụ</h3>`)
	assert.Contains(t, footer, `<a href="/services/seo">SEO tổng thể</a>`)
	assert.Contains(t, footer, `<h3>Liên hệ</h3>`)

	rec = do(e, http.MethodGet, "/about", "", map[string]string{domain.LocaleHeader: "en"})
	footer = footerOf(t, rec.Body.String())
	assert.Contains(t, footer, `<a href="/services/ads">Online advertising</a>`)
	assert.NotContains(t, footer, `<a href="/contact">Contact</a>`)

	rec = do(e, http.MethodGet, "/does/not/exist", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Không tìm thấy trang")

	rec = do(e, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVisitorCookieIssuedOnce(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/healthz", "", nil)
	visitor := findCookie(rec, domain.VisitorCookie)
	require.NotNil(t, visitor)

	rec = do(e, http.MethodGet, "/healthz", "", nil, visitor)
	assert.Nil(t, findCookie(rec, domain.VisitorCookie))
}

func TestSafeRedirect(t *testing.T) {
	assert.Equal(t, "/blog/a", safeRedirect("/blog/a"))
	assert.Equal(t, "/", safeRedirect(""))
	assert.Equal(t, "/", safeRedirect("https://evil.example"))
	assert.Equal(t, "/", safeRedirect("//evil.example"))
	assert.Equal(t, "/", safeRedirect("/\\evil.example"))
}

func TestRealtimeSession(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t))
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/realtime", nil)
	require.NoError(t, err)
	defer ws.Close()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))

	read := func() uistate.Snapshot {
		var snap uistate.Snapshot
		require.NoError(t, ws.ReadJSON(&snap))
		return snap
	}

	snap := read()
	assert.Equal(t, tptech.LocaleVI, snap.Locale)
	assert.Equal(t, 4, snap.Lightbox.Size)

	require.NoError(t, ws.WriteJSON(uistate.Event{Type: uistate.EventMenuToggle}))
	require.NoError(t, ws.WriteJSON(uistate.Event{Type: uistate.EventLinkSelect, Key: "/services", Children: true}))
	read()
	snap = read()
	assert.True(t, snap.Nav.MobileOpen)
	assert.Equal(t, "/services", snap.Nav.OpenSubmenu)

	require.NoError(t, ws.WriteJSON(uistate.Event{Type: uistate.EventLocaleToggle}))
	for {
		snap = read()
		assert.Equal(t, tptech.LocaleEN, snap.Locale)
		assert.False(t, snap.Nav.MobileOpen)
		assert.Empty(t, snap.Nav.OpenSubmenu)
		if snap.Content != nil {
			break
		}
	}
	content, ok := snap.Content.(map[string]any)
	require.True(t, ok)
	settings := content["settings"].(map[string]any)
	assert.Equal(t, "Professional website solutions", settings["tagline"])
}

func footerOf(t *testing.T, body string) string {
	t.Helper()
	i := strings.Index(body, `<footer`)
	require.GreaterOrEqual(t, i, 0)
	return body[i:]
}

func brokenContent(t *testing.T, name, body string) fs.FS {
	t.Helper()

	fsys := fstest.MapFS{}
	err := fs.WalkDir(content.FS(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(content.FS(), path)
		if err != nil {
			return err
		}
		fsys[path] = &fstest.MapFile{Data: data}
		return nil
	})
	require.NoError(t, err)
	fsys[name] = &fstest.MapFile{Data: []byte(body)}
	return fsys
}

func TestMalformedContentIsNotLeaked(t *testing.T) {
	e := newTestServerFS(t, brokenContent(t, "vi/home.json", `{"hero":{"title":""},"secretField":1}`), nil)

	rec := do(e, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, rec.Body.String(), "Đã có lỗi xảy ra")
	assert.NotContains(t, rec.Body.String(), "secretField")
	assert.NotContains(t, rec.Body.String(), "schema")

	rec = do(e, http.MethodGet, "/api/content/home", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/blog", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBrokenSettingsStillRendersErrorPage(t *testing.T) {
	e := newTestServerFS(t, brokenContent(t, "en/settings.json", `{"siteName":`), nil)

	rec := do(e, http.MethodGet, "/about", "", map[string]string{domain.LocaleHeader: "en"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.NotContains(t, rec.Body.String(), "unexpected EOF")
}

type recordingPrefs struct {
	mu    sync.Mutex
	saved []string
}

func (p *recordingPrefs) LoadLocale(ctx context.Context, visitorID string) (string, error) {
	return "", nil
}

func (p *recordingPrefs) SaveLocale(ctx context.Context, visitorID, locale string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved = append(p.saved, locale)
	return nil
}

func (p *recordingPrefs) Saved() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.saved...)
}

func TestRealtimeHeaderLocaleIsNotSaved(t *testing.T) {
	prefs := &recordingPrefs{}
	srv := httptest.NewServer(newTestServerFS(t, content.FS(), prefs))
	defer srv.Close()

	header := http.Header{}
	header.Set(domain.LocaleHeader, "en")
	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/realtime", header)
	require.NoError(t, err)
	defer ws.Close()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))

	var snap uistate.Snapshot
	require.NoError(t, ws.ReadJSON(&snap))
	assert.Equal(t, tptech.LocaleEN, snap.Locale)
	assert.Empty(t, prefs.Saved())

	require.NoError(t, ws.WriteJSON(uistate.Event{Type: uistate.EventLocaleToggle}))
	require.NoError(t, ws.ReadJSON(&snap))
	assert.Equal(t, tptech.LocaleVI, snap.Locale)
	assert.Equal(t, []string{"vi"}, prefs.Saved())
}
