package tptech

import (
	"golang.org/x/text/language"
)

// Locale is the display language of the site.
type Locale string

const (
	LocaleVI Locale = "vi"
	LocaleEN Locale = "en"

	DefaultLocale = LocaleVI
)

// Locales lists every supported locale in display order.
var Locales = []Locale{LocaleVI, LocaleEN}

func (l Locale) Valid() bool {
	return l == LocaleVI || l == LocaleEN
}

// Toggle returns the other supported locale.
func (l Locale) Toggle() Locale {
	if l == LocaleVI {
		return LocaleEN
	}
	return LocaleVI
}

func (l Locale) Tag() language.Tag {
	if l == LocaleEN {
		return language.English
	}
	return language.Vietnamese
}

func (l Locale) String() string {
	return string(l)
}

// ContentDomain names a category of content. Each domain has one document per locale.
type ContentDomain string

const (
	DomainHome     ContentDomain = "home"
	DomainBlog     ContentDomain = "blog"
	DomainServices ContentDomain = "services"
	DomainSettings ContentDomain = "settings"
	DomainContact  ContentDomain = "contact"
	DomainNotFound ContentDomain = "not-found"
)

var Domains = []ContentDomain{
	DomainHome,
	DomainBlog,
	DomainServices,
	DomainSettings,
	DomainContact,
	DomainNotFound,
}

func (d ContentDomain) String() string {
	return string(d)
}

type SEOData struct {
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Keywords        []string `json:"keywords"`
	OGImage         string   `json:"ogImage,omitempty"`
	Canonical       string   `json:"canonical,omitempty"`
}

type StatItem struct {
	Number int    `json:"number"`
	Suffix string `json:"suffix"`
	Label  string `json:"label"`
}

// MenuItem is a navigation entry. Href identifies the entry among its siblings.
type MenuItem struct {
	Label    string     `json:"label"`
	Href     string     `json:"href"`
	Children []MenuItem `json:"children,omitempty"`
}

func (m MenuItem) HasChildren() bool {
	return len(m.Children) > 0
}

type SiteSettings struct {
	SiteName string         `json:"siteName"`
	Tagline  string         `json:"tagline"`
	Logo     string         `json:"logo"`
	Contact  SiteContact    `json:"contact"`
	Social   SocialLinks    `json:"social"`
	Menu     []MenuItem     `json:"menu"`
	Footer   FooterSettings `json:"footer"`
}

const footerQuickLinks = 4

// FooterLinks returns the leading menu entries shown in the footer.
func (s SiteSettings) FooterLinks() []MenuItem {
	if len(s.Menu) <= footerQuickLinks {
		return s.Menu
	}
	return s.Menu[:footerQuickLinks]
}

// ServiceLinks returns the children of the first menu entry that has any.
func (s SiteSettings) ServiceLinks() []MenuItem {
	for _, item := range s.Menu {
		if item.HasChildren() {
			return item.Children
		}
	}
	return nil
}

type SiteContact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type SocialLinks struct {
	Facebook string `json:"facebook,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

type FooterSettings struct {
	Description string `json:"description"`
	Copyright   string `json:"copyright"`
	QuickLinks  string `json:"quickLinks"`
	Services    string `json:"services"`
	Contact     string `json:"contact"`
}

// BlogPost is a single article. Slug is the only externally addressable key;
// ID is used for list keys and related-post exclusion.
type BlogPost struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	Author        string   `json:"author"`
	Date          string   `json:"date"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featuredImage"`
	SEO           SEOData  `json:"seo"`
}

type BlogDocument struct {
	Posts []BlogPost `json:"posts"`
}

type Service struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
	SEO         *SEOData `json:"seo,omitempty"`
}

type ServicesDocument struct {
	Services []Service `json:"services"`
}

type HomeContent struct {
	Hero        HomeHero         `json:"hero"`
	About       HomeAbout        `json:"about"`
	Services    HomeServices     `json:"services"`
	Projects    *HomeProjects    `json:"projects,omitempty"`
	FormContact *HomeFormContact `json:"formContact,omitempty"`
	CTA         HomeCTA          `json:"cta"`
	SEO         SEOData          `json:"seo"`
}

type HomeHero struct {
	Title           string   `json:"title"`
	Subtitle        string   `json:"subtitle"`
	Description     string   `json:"description"`
	Paragraphs      []string `json:"paragraphs"`
	CTAText         string   `json:"ctaText"`
	CTAPhone        string   `json:"ctaPhone"`
	CTALink         string   `json:"ctaLink"`
	BackgroundImage string   `json:"backgroundImage,omitempty"`
	Image           string   `json:"image,omitempty"`
}

type HomeAbout struct {
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	Points          []string   `json:"points"`
	Stats           []StatItem `json:"stats"`
	ViewDetailsText string     `json:"viewDetailsText,omitempty"`
}

type HomeServices struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type ProjectImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type HomeProjects struct {
	Title    string         `json:"title"`
	ViewMore string         `json:"viewMore,omitempty"`
	Images   []ProjectImage `json:"images"`
}

// HomeFormContact holds the labels of the four-field contact form.
type HomeFormContact struct {
	Title1             string `json:"title1"`
	Title2             string `json:"title2"`
	CompanyLabel       string `json:"companyLabel"`
	PhoneLabel         string `json:"phoneLabel"`
	EmailLabel         string `json:"emailLabel"`
	MessageLabel       string `json:"messageLabel"`
	SubmitLabel        string `json:"submitLabel"`
	CompanyPlaceholder string `json:"companyPlaceholder"`
	PhonePlaceholder   string `json:"phonePlaceholder"`
	EmailPlaceholder   string `json:"emailPlaceholder"`
	MessagePlaceholder string `json:"messagePlaceholder"`
}

type HomeCTA struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ButtonText  string `json:"buttonText"`
	ButtonLink  string `json:"buttonLink"`
}

// ContactContent feeds the contact modal.
type ContactContent struct {
	Title    string         `json:"title"`
	Hotline  string         `json:"hotline"`
	Contacts []ContactPhone `json:"contacts"`
}

type ContactPhone struct {
	Phone string `json:"phone"`
}

type NotFoundContent struct {
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle"`
	Description string          `json:"description"`
	Buttons     NotFoundButtons `json:"buttons"`
}

type NotFoundButtons struct {
	Home    string `json:"home"`
	Contact string `json:"contact"`
}
