package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/tptech"
)

func TestDocumentPath(t *testing.T) {
	p, err := DocumentPath(tptech.LocaleVI, tptech.DomainHome)
	require.NoError(t, err)
	assert.Equal(t, "vi/home.json", p)

	p, err = DocumentPath(tptech.LocaleEN, tptech.DomainNotFound)
	require.NoError(t, err)
	assert.Equal(t, "en/404.json", p)

	_, err = DocumentPath("fr", tptech.DomainHome)
	assert.Error(t, err)

	_, err = DocumentPath(tptech.LocaleEN, "pricing")
	assert.Error(t, err)
}

func TestPairsCoverEveryDomain(t *testing.T) {
	pairs := Pairs()
	assert.Len(t, pairs, len(tptech.Locales)*len(tptech.Domains))
	for _, p := range pairs {
		_, err := DocumentPath(p.Locale, p.Domain)
		assert.NoError(t, err, p.String())
	}
}

func TestDecodeBlog(t *testing.T) {
	raw := []byte(`{"posts":[{"id":"1","slug":"a","title":"A","excerpt":"","content":"x","author":"me","date":"2025-01-02","category":"web","tags":["go"],"featuredImage":"","seo":{"metaTitle":"A","metaDescription":"","keywords":[]}}]}`)

	v, err := Decode(tptech.DomainBlog, raw)
	require.NoError(t, err)
	doc, ok := v.(tptech.BlogDocument)
	require.True(t, ok)
	require.Len(t, doc.Posts, 1)
	assert.Equal(t, "a", doc.Posts[0].Slug)
	assert.Equal(t, []string{"go"}, doc.Posts[0].Tags)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(tptech.DomainContact, []byte(`{"title":"x","hotline":"h","contacts":[{"phone":"1"}],"extra":true}`))
	var se *SchemaError
	require.True(t, errors.As(err, &se))
}

func TestDecodeReportsMissingFields(t *testing.T) {
	_, err := Decode(tptech.DomainBlog, []byte(`{"posts":[{"id":"1","slug":"a","date":"yesterday"},{"id":"1","slug":"a","date":"2025-01-01"}]}`))
	var se *SchemaError
	require.True(t, errors.As(err, &se))

	fields := map[string]bool{}
	for _, fe := range se.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["posts[0].title"])
	assert.True(t, fields["posts[0].date"])
	assert.True(t, fields["posts[1].id"])
	assert.True(t, fields["posts[1].slug"])
}

func TestDecodeSettingsDuplicateSiblingHref(t *testing.T) {
	raw := []byte(`{"siteName":"TP","tagline":"","logo":"","contact":{"email":"a@b.c","phone":"1","address":""},"social":{},
	"menu":[{"label":"Home","href":"/"},{"label":"Again","href":"/"}],
	"footer":{"description":"","copyright":"","quickLinks":"","services":"","contact":""}}`)

	_, err := Decode(tptech.DomainSettings, raw)
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "menu[1].href", se.Errors[0].Field)
}

func TestDecodeTrailingData(t *testing.T) {
	_, err := Decode(tptech.DomainNotFound, []byte(`{"title":"t","subtitle":"","description":"","buttons":{"home":"h","contact":"c"}} {}`))
	assert.Error(t, err)
}
