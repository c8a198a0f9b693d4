package main

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/totegamma/tptech/content"
	"github.com/totegamma/tptech/internal/infra/repository"
	"github.com/totegamma/tptech/schemas"
)

var seedDir string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Validate content files and publish them to postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.Server.PostgresDsn == "" {
			return errors.New("seed requires server.postgresDsn")
		}

		from := repository.NewFileSource(content.FS())
		if seedDir != "" {
			from = repository.NewFileSource(os.DirFS(seedDir))
		}

		repo, err := openDocumentRepository(cfg.Server.PostgresDsn)
		if err != nil {
			return err
		}

		for _, pair := range schemas.Pairs() {
			raw, err := from.Fetch(ctx, pair.Locale, pair.Domain)
			if err != nil {
				return errors.Wrapf(err, "read %s", pair)
			}
			_, err = schemas.Decode(pair.Domain, raw)
			if err != nil {
				return errors.Wrapf(err, "validate %s", pair)
			}
			err = repo.Upsert(ctx, pair.Locale, pair.Domain, raw)
			if err != nil {
				return errors.Wrapf(err, "publish %s", pair)
			}
			slog.Info("published", slog.String("document", pair.String()), slog.Int("bytes", len(raw)))
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", "", "content directory to publish (default: the embedded content)")
}
