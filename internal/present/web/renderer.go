package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and browser script served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page is the data every template receives. Body carries the page specific part.
type Page struct {
	Locale   tptech.Locale
	Path     string
	Title    string
	SEO      *tptech.SEOData
	Settings tptech.SiteSettings
	Contact  tptech.ContactContent
	Form     *tptech.HomeFormContact
	Site     config.Site
	Body     any
}

type HomeBody struct {
	Home     tptech.HomeContent
	Services []tptech.Service
}

type BlogBody struct {
	Posts []tptech.BlogPost
}

type PostBody struct {
	Post    tptech.BlogPost
	HTML    template.HTML
	Related []tptech.BlogPost
}

type AboutBody struct {
	About tptech.HomeAbout
}

var pageNames = []string{"home", "blog", "post", "about", "contact", "notfound", "error"}

// Renderer implements echo.Renderer over the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer(tr *Translator) (*Renderer, error) {
	funcs := template.FuncMap{
		"t":         tr.T,
		"active":    tptech.IsActiveLink,
		"date":      tptech.FormatDate,
		"tel":       func(phone string) template.URL { return template.URL(tptech.TelLink(phone)) },
		"mailto":    func(email string) template.URL { return template.URL(tptech.MailtoLink(email)) },
		"messaging": tptech.MessagingLink,
		"join":      strings.Join,
	}

	base, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/form.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		page, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return page.ExecuteTemplate(w, "layout", data)
}
