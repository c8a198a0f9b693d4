package schemas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/totegamma/tptech"
)

// FieldError describes one schema violation.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError is returned when a document does not match its domain schema.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	if len(e.Errors) == 1 {
		if e.Errors[0].Field == "" {
			return "schema: " + e.Errors[0].Message
		}
		return fmt.Sprintf("schema: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field)
	}
	return fmt.Sprintf("schema: %d errors (%s)", len(e.Errors), strings.Join(parts, ", "))
}

type checker struct {
	errs []FieldError
}

func (c *checker) add(field, format string, args ...any) {
	c.errs = append(c.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.add(field, "is required")
	}
}

func (c *checker) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &SchemaError{Errors: c.errs}
}

// Decode strictly decodes raw into the document type of the domain and validates it.
// The returned value is one of tptech.HomeContent, tptech.BlogDocument,
// tptech.ServicesDocument, tptech.SiteSettings, tptech.ContactContent or tptech.NotFoundContent.
func Decode(d tptech.ContentDomain, raw []byte) (any, error) {
	switch d {
	case tptech.DomainHome:
		var v tptech.HomeContent
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, ValidateHome(v)
	case tptech.DomainBlog:
		var v tptech.BlogDocument
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, ValidateBlog(v)
	case tptech.DomainServices:
		var v tptech.ServicesDocument
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, ValidateServices(v)
	case tptech.DomainSettings:
		var v tptech.SiteSettings
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, ValidateSettings(v)
	case tptech.DomainContact:
		var v tptech.ContactContent
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, ValidateContact(v)
	case tptech.DomainNotFound:
		var v tptech.NotFoundContent
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, ValidateNotFound(v)
	default:
		return nil, &SchemaError{Errors: []FieldError{{Message: fmt.Sprintf("unknown content domain %q", d)}}}
	}
}

func strictUnmarshal(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &SchemaError{Errors: []FieldError{{Message: err.Error()}}}
	}
	if _, err := dec.Token(); err != io.EOF {
		return &SchemaError{Errors: []FieldError{{Message: "unexpected data after document"}}}
	}
	return nil
}

func ValidateHome(h tptech.HomeContent) error {
	c := &checker{}
	c.required("hero.title", h.Hero.Title)
	c.required("hero.ctaText", h.Hero.CTAText)
	c.required("about.title", h.About.Title)
	c.required("services.title", h.Services.Title)
	c.required("cta.title", h.CTA.Title)
	c.required("cta.buttonText", h.CTA.ButtonText)
	c.required("seo.metaTitle", h.SEO.MetaTitle)
	if h.Projects != nil {
		for i, img := range h.Projects.Images {
			c.required(fmt.Sprintf("projects.images[%d].src", i), img.Src)
		}
	}
	return c.err()
}

func ValidateBlog(b tptech.BlogDocument) error {
	c := &checker{}
	ids := make(map[string]bool, len(b.Posts))
	slugs := make(map[string]bool, len(b.Posts))
	for i, p := range b.Posts {
		prefix := fmt.Sprintf("posts[%d]", i)
		c.required(prefix+".id", p.ID)
		c.required(prefix+".slug", p.Slug)
		c.required(prefix+".title", p.Title)
		c.required(prefix+".content", p.Content)
		c.required(prefix+".category", p.Category)
		if _, err := time.Parse("2006-01-02", p.Date); err != nil {
			c.add(prefix+".date", "must be an ISO-8601 date, got %q", p.Date)
		}
		if p.ID != "" {
			if ids[p.ID] {
				c.add(prefix+".id", "duplicate id %q", p.ID)
			}
			ids[p.ID] = true
		}
		if p.Slug != "" {
			if slugs[p.Slug] {
				c.add(prefix+".slug", "duplicate slug %q", p.Slug)
			}
			slugs[p.Slug] = true
		}
	}
	return c.err()
}

func ValidateServices(s tptech.ServicesDocument) error {
	c := &checker{}
	slugs := make(map[string]bool, len(s.Services))
	for i, svc := range s.Services {
		prefix := fmt.Sprintf("services[%d]", i)
		c.required(prefix+".id", svc.ID)
		c.required(prefix+".slug", svc.Slug)
		c.required(prefix+".title", svc.Title)
		if slugs[svc.Slug] {
			c.add(prefix+".slug", "duplicate slug %q", svc.Slug)
		}
		slugs[svc.Slug] = true
	}
	return c.err()
}

func ValidateSettings(s tptech.SiteSettings) error {
	c := &checker{}
	c.required("siteName", s.SiteName)
	c.required("contact.phone", s.Contact.Phone)
	c.required("contact.email", s.Contact.Email)
	if len(s.Menu) == 0 {
		c.add("menu", "must not be empty")
	}
	checkMenu(c, "menu", s.Menu)
	return c.err()
}

func checkMenu(c *checker, prefix string, items []tptech.MenuItem) {
	hrefs := make(map[string]bool, len(items))
	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", prefix, i)
		c.required(field+".label", item.Label)
		c.required(field+".href", item.Href)
		if hrefs[item.Href] {
			c.add(field+".href", "duplicate href %q among siblings", item.Href)
		}
		hrefs[item.Href] = true
		if len(item.Children) > 0 {
			checkMenu(c, field+".children", item.Children)
		}
	}
}

func ValidateContact(ct tptech.ContactContent) error {
	c := &checker{}
	c.required("title", ct.Title)
	if len(ct.Contacts) == 0 {
		c.add("contacts", "must not be empty")
	}
	for i, p := range ct.Contacts {
		c.required(fmt.Sprintf("contacts[%d].phone", i), p.Phone)
	}
	return c.err()
}

func ValidateNotFound(n tptech.NotFoundContent) error {
	c := &checker{}
	c.required("title", n.Title)
	c.required("buttons.home", n.Buttons.Home)
	return c.err()
}
