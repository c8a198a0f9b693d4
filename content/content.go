// Package content embeds the published site documents, one JSON file per
// locale and content domain.
package content

import (
	"embed"
	"io/fs"
)

//go:embed vi/*.json en/*.json
var documents embed.FS

func FS() fs.FS {
	return documents
}
