package repository

import (
	"context"
	"errors"
	"io/fs"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/domain"
	"github.com/totegamma/tptech/schemas"
)

// FileSource reads documents laid out as <locale>/<name>.json from a file system,
// either the embedded bundle or a directory on disk.
type FileSource struct {
	fsys fs.FS
}

func NewFileSource(fsys fs.FS) *FileSource {
	return &FileSource{fsys: fsys}
}

func (s *FileSource) Fetch(ctx context.Context, locale tptech.Locale, d tptech.ContentDomain) ([]byte, error) {
	path, err := schemas.DocumentPath(locale, d)
	if err != nil {
		return nil, domain.NotFoundError{Resource: "content " + string(locale) + "/" + string(d)}
	}

	raw, err := fs.ReadFile(s.fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.NotFoundError{Resource: "content " + path}
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}
