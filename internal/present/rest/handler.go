package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/config"
	"github.com/totegamma/tptech/internal/present/rest/middleware"
	"github.com/totegamma/tptech/internal/present/rest/presenter"
	"github.com/totegamma/tptech/internal/present/web"
	"github.com/totegamma/tptech/internal/service"
	"github.com/totegamma/tptech/internal/usecase"
)

type Handler struct {
	site     config.Site
	content  *usecase.ContentUsecase
	blog     *usecase.BlogUsecase
	articles *web.ArticleRenderer
	prefs    usecase.PreferenceStore
	signal   *service.SignalService
}

// NewHandler wires the site routes. prefs and signal are optional and only
// present when redis is configured.
func NewHandler(
	site config.Site,
	content *usecase.ContentUsecase,
	blog *usecase.BlogUsecase,
	articles *web.ArticleRenderer,
	prefs usecase.PreferenceStore,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		site:     site,
		content:  content,
		blog:     blog,
		articles: articles,
		prefs:    prefs,
		signal:   signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.handleHome)
	e.GET("/about", h.handleAbout)
	e.GET("/contact", h.handleContact)
	e.GET("/blog", h.handleBlog)
	e.GET("/blog/:slug", h.handlePost)
	e.POST("/locale", h.handleLocaleForm)

	api := e.Group("/api")
	api.GET("/content/:domain", h.handleContent)
	api.GET("/locale", h.handleGetLocale)
	api.POST("/locale", h.handleSetLocale)
	api.GET("/blog", h.handleBlogList)
	api.GET("/blog/:slug", h.handleBlogPost)
	api.GET("/blog/:slug/related", h.handleBlogRelated)
	api.GET("/nav", h.handleNav)

	e.GET("/healthz", h.handleHealth)
	e.GET("/realtime", h.handleRealtime)
	e.StaticFS("/static", web.Static())
	e.RouteNotFound("/*", h.handleNotFound)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) newPage(c echo.Context, locale tptech.Locale, title string) (web.Page, error) {
	ctx := c.Request().Context()

	settings, err := h.content.Settings(ctx, locale)
	if err != nil {
		return web.Page{}, err
	}
	contact, err := h.content.Contact(ctx, locale)
	if err != nil {
		return web.Page{}, err
	}

	return web.Page{
		Locale:   locale,
		Path:     c.Request().URL.Path,
		Title:    title,
		Settings: settings,
		Contact:  contact,
		Site:     h.site,
	}, nil
}

func (h *Handler) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	locale := middleware.RequestLocale(c)

	home, err := h.content.Home(ctx, locale)
	if err != nil {
		return h.renderError(c, locale, err)
	}
	services, err := h.content.Services(ctx, locale)
	if err != nil {
		return h.renderError(c, locale, err)
	}

	page, err := h.newPage(c, locale, home.Hero.Title)
	if err != nil {
		return h.renderError(c, locale, err)
	}
	page.SEO = &home.SEO
	page.Form = home.FormContact
	page.Body = web.HomeBody{Home: home, Services: services}

	return c.Render(http.StatusOK, "home", page)
}

func (h *Handler) handleAbout(c echo.Context) error {
	locale := middleware.RequestLocale(c)

	home, err := h.content.Home(c.Request().Context(), locale)
	if err != nil {
		return h.renderError(c, locale, err)
	}

	page, err := h.newPage(c, locale, home.About.Title)
	if err != nil {
		return h.renderError(c, locale, err)
	}
	page.Body = web.AboutBody{About: home.About}

	return c.Render(http.StatusOK, "about", page)
}

func (h *Handler) handleContact(c echo.Context) error {
	locale := middleware.RequestLocale(c)

	home, err := h.content.Home(c.Request().Context(), locale)
	if err != nil {
		return h.renderError(c, locale, err)
	}

	page, err := h.newPage(c, locale, "")
	if err != nil {
		return h.renderError(c, locale, err)
	}
	page.Title = page.Contact.Title
	page.Form = home.FormContact

	return c.Render(http.StatusOK, "contact", page)
}

func (h *Handler) handleBlog(c echo.Context) error {
	locale := middleware.RequestLocale(c)

	posts, err := h.blog.List(c.Request().Context(), locale)
	if err != nil {
		return h.renderError(c, locale, err)
	}

	page, err := h.newPage(c, locale, "Blog")
	if err != nil {
		return h.renderError(c, locale, err)
	}
	page.Body = web.BlogBody{Posts: posts}

	return c.Render(http.StatusOK, "blog", page)
}

func (h *Handler) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	locale := middleware.RequestLocale(c)

	catalog, err := h.blog.Catalog(ctx, locale)
	if err != nil {
		return h.renderError(c, locale, err)
	}
	post, ok := catalog.BySlug(c.Param("slug"))
	if !ok {
		return c.Redirect(http.StatusFound, "/blog")
	}

	page, err := h.newPage(c, locale, post.Title)
	if err != nil {
		return h.renderError(c, locale, err)
	}
	page.SEO = &post.SEO
	page.Body = web.PostBody{
		Post:    post,
		HTML:    h.articles.Render(locale, post, catalog.Version()),
		Related: catalog.Related(post, usecase.DefaultRelatedLimit),
	}

	return c.Render(http.StatusOK, "post", page)
}

func (h *Handler) handleNotFound(c echo.Context) error {
	locale := middleware.RequestLocale(c)

	content, err := h.content.NotFound(c.Request().Context(), locale)
	if err != nil {
		return h.renderError(c, locale, err)
	}

	page, err := h.newPage(c, locale, content.Title)
	if err != nil {
		return h.renderError(c, locale, err)
	}
	page.Body = content

	return c.Render(http.StatusNotFound, "notfound", page)
}

// renderError answers an HTML route that failed to load its content. The
// page is built without site settings since those may be what failed.
func (h *Handler) renderError(c echo.Context, locale tptech.Locale, err error) error {
	presenter.RecordError(c, err)
	page := web.Page{
		Locale: locale,
		Path:   c.Request().URL.Path,
		Title:  "500",
		Site:   h.site,
	}
	if rerr := c.Render(http.StatusInternalServerError, "error", page); rerr != nil {
		return c.String(http.StatusInternalServerError, presenter.InternalErrorMessage)
	}
	return nil
}

// handleLocaleForm serves the no-script language switch. An explicit "locale"
// field selects that language, otherwise the current one is toggled.
func (h *Handler) handleLocaleForm(c echo.Context) error {
	ctx := c.Request().Context()
	store := middleware.LocaleStore(ctx)

	if l, ok := tptech.ParseLocale(c.FormValue("locale")); ok {
		store.Set(l)
	} else {
		store.Toggle()
	}
	h.announceLocale(ctx, store.Get(), "form")

	return c.Redirect(http.StatusSeeOther, safeRedirect(c.FormValue("redirect")))
}

// safeRedirect only allows local absolute paths.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

func (h *Handler) announceLocale(ctx context.Context, locale tptech.Locale, origin string) {
	if h.signal == nil {
		return
	}
	visitorID := middleware.VisitorID(ctx)
	if visitorID == "" {
		return
	}
	err := h.signal.PublishLocale(ctx, visitorID, service.LocaleEvent{Locale: locale, Origin: origin})
	if err != nil {
		slog.WarnContext(ctx, "failed to publish locale change", slog.String("error", err.Error()), slog.String("module", "locale"))
	}
}

func (h *Handler) handleContent(c echo.Context) error {
	d := tptech.ContentDomain(c.Param("domain"))
	doc, err := h.content.Load(c.Request().Context(), middleware.RequestLocale(c), d)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, doc.Value)
}

type localeResponse struct {
	Locale     tptech.Locale `json:"locale"`
	Persistent bool          `json:"persistent"`
}

func (h *Handler) handleGetLocale(c echo.Context) error {
	store := middleware.LocaleStore(c.Request().Context())
	return presenter.OK(c, localeResponse{Locale: store.Get(), Persistent: store.Persistent()})
}

type setLocaleRequest struct {
	Locale string `json:"locale"`
}

func (h *Handler) handleSetLocale(c echo.Context) error {
	ctx := c.Request().Context()

	var req setLocaleRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	locale, ok := tptech.ParseLocale(req.Locale)
	if !ok {
		return presenter.BadRequestMessage(c, "unsupported locale")
	}

	store := middleware.LocaleStore(ctx)
	store.Set(locale)
	h.announceLocale(ctx, locale, "api")

	return presenter.OK(c, localeResponse{Locale: store.Get(), Persistent: store.Persistent()})
}

func (h *Handler) handleBlogList(c echo.Context) error {
	posts, err := h.blog.List(c.Request().Context(), middleware.RequestLocale(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, posts)
}

func (h *Handler) handleBlogPost(c echo.Context) error {
	post, err := h.blog.GetBySlug(c.Request().Context(), middleware.RequestLocale(c), c.Param("slug"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, post)
}

func (h *Handler) handleBlogRelated(c echo.Context) error {
	ctx := c.Request().Context()
	locale := middleware.RequestLocale(c)

	limit := usecase.DefaultRelatedLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return presenter.BadRequestMessage(c, "invalid limit")
		}
		limit = n
	}

	post, err := h.blog.GetBySlug(ctx, locale, c.Param("slug"))
	if err != nil {
		return presenter.Error(c, err)
	}
	related, err := h.blog.Related(ctx, locale, post, limit)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, related)
}

type navItem struct {
	Label    string    `json:"label"`
	Href     string    `json:"href"`
	Active   bool      `json:"active"`
	Children []navItem `json:"children,omitempty"`
}

func buildNav(path string, items []tptech.MenuItem) []navItem {
	nav := make([]navItem, 0, len(items))
	for _, item := range items {
		n := navItem{
			Label:  item.Label,
			Href:   item.Href,
			Active: tptech.IsActiveLink(path, item.Href),
		}
		if item.HasChildren() {
			n.Children = buildNav(path, item.Children)
		}
		nav = append(nav, n)
	}
	return nav
}

func (h *Handler) handleNav(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		path = "/"
	}

	settings, err := h.content.Settings(c.Request().Context(), middleware.RequestLocale(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, buildNav(path, settings.Menu))
}
