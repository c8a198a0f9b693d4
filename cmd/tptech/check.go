package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/totegamma/tptech"
	"github.com/totegamma/tptech/internal/usecase"
	"github.com/totegamma/tptech/schemas"
)

var dumpDocuments bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate every content document",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		source, err := openSource(ctx, cfg)
		if err != nil {
			return err
		}
		uc := usecase.NewContentUsecase(source, cfg.Content.CacheTTL)

		err = uc.Preload(ctx)
		if err != nil {
			return err
		}

		if dumpDocuments {
			for _, pair := range schemas.Pairs() {
				doc, err := uc.Load(ctx, pair.Locale, pair.Domain)
				if err != nil {
					return err
				}
				tptech.JsonPrint(pair.String(), doc.Value)
			}
		}

		fmt.Printf("%d documents ok (source: %s)\n", len(schemas.Pairs()), cfg.Content.Source)
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&dumpDocuments, "dump", false, "print every decoded document")
}
