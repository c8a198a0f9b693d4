package web

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/usecase"
)

type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading2
	BlockHeading3
)

type Block struct {
	Kind BlockKind
	Text string
}

// ParseBlocks splits article text on blank lines. A block starting with "## "
// is a section heading, "### " a subsection heading, anything else a paragraph.
// Only the first marker is stripped.
func ParseBlocks(content string) []Block {
	parts := strings.Split(content, "\n\n")
	blocks := make([]Block, 0, len(parts))
	for _, p := range parts {
		switch {
		case strings.HasPrefix(p, "## "):
			blocks = append(blocks, Block{Kind: BlockHeading2, Text: strings.Replace(p, "## ", "", 1)})
		case strings.HasPrefix(p, "### "):
			blocks = append(blocks, Block{Kind: BlockHeading3, Text: strings.Replace(p, "### ", "", 1)})
		default:
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: p})
		}
	}
	return blocks
}

// RenderBlocks writes blocks as escaped HTML.
func RenderBlocks(blocks []Block) template.HTML {
	var buf bytes.Buffer
	for _, b := range blocks {
		text := template.HTMLEscapeString(b.Text)
		switch b.Kind {
		case BlockHeading2:
			fmt.Fprintf(&buf, "<h2>%s</h2>\n", text)
		case BlockHeading3:
			fmt.Fprintf(&buf, "<h3>%s</h3>\n", text)
		default:
			fmt.Fprintf(&buf, "<p>%s</p>\n", text)
		}
	}
	return template.HTML(buf.String())
}

// ArticleRenderer renders post bodies, reusing earlier output while the blog
// document is unchanged.
type ArticleRenderer struct {
	cache usecase.FragmentCache
}

func NewArticleRenderer(cache usecase.FragmentCache) *ArticleRenderer {
	return &ArticleRenderer{cache: cache}
}

func (r *ArticleRenderer) Render(locale tptech.Locale, post tptech.BlogPost, checksum uint64) template.HTML {
	key := fmt.Sprintf("article:%s:%s:%x", locale, post.ID, checksum)
	if r.cache != nil {
		if v, ok := r.cache.Get(key); ok {
			return template.HTML(v)
		}
	}
	html := RenderBlocks(ParseBlocks(post.Content))
	if r.cache != nil {
		r.cache.Set(key, []byte(html))
	}
	return html
}
