package main

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/totegamma/tptech/client"
	"github.com/totegamma/tptech/content"
	"github.com/totegamma/tptech/internal/config"
	"github.com/totegamma/tptech/internal/infra/database"
	"github.com/totegamma/tptech/internal/infra/repository"
	"github.com/totegamma/tptech/internal/usecase"
)

func openSource(ctx context.Context, cfg config.Config) (usecase.DocumentSource, error) {
	switch cfg.Content.Source {
	case config.SourceDir:
		return repository.NewFileSource(os.DirFS(cfg.Content.Dir)), nil
	case config.SourcePostgres:
		repo, err := openDocumentRepository(cfg.Server.PostgresDsn)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.SourceOrigin:
		return client.New(cfg.Content.OriginURL), nil
	default:
		return repository.NewFileSource(content.FS()), nil
	}
}

func openDocumentRepository(dsn string) (*repository.DocumentRepository, error) {
	db, err := database.NewPostgres(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}
	err = database.MigratePostgres(db)
	if err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}
	return repository.NewDocumentRepository(db), nil
}
