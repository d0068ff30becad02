package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"kitchencost/internal/config"
	"kitchencost/internal/db"
	applog "kitchencost/internal/log"
	"kitchencost/internal/pricelist"
	"kitchencost/internal/store"
)

var openDatabaseFunc = func() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return db.Configure(cfg.Database)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

type importOptions struct {
	format string
	dryRun bool
}

func newRootCmd() *cobra.Command {
	opts := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import_ingredients <file>",
		Short: "Import ingredient prices from a CSV or PDF price list",
		Long: `Reads a supplier price list and creates or updates ingredients by name.

CSV files need a header naming the name, quantity, unit and unit price columns
(nome, quantidade, unidade, preco are accepted too). PDF catalogues are read
line by line, expecting "<name> <quantity> <unit> <price>".`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], *opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(pricelist.FormatAuto), "price list format: auto, csv or pdf")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "parse and report without writing to the database")
	return cmd
}

func runImport(cmd *cobra.Command, path string, opts importOptions) error {
	format, err := pricelist.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read price list: %w", err)
	}

	entries, problems, err := pricelist.Read(data, path, format)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	for _, problem := range problems {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", problem.Error())
	}

	var target pricelist.Upserter
	if !opts.dryRun {
		database, err := openDatabaseFunc()
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() {
			if err := db.Close(database); err != nil {
				applog.Warn(cmd.Context(), "failed to close database", "error", err)
			}
		}()
		target = store.NewIngredientStore(database)
	}

	summary, err := pricelist.Apply(cmd.Context(), target, entries, opts.dryRun)
	if err != nil {
		return err
	}
	for _, problem := range summary.Problems {
		fmt.Fprintf(cmd.ErrOrStderr(), "rejected %s\n", problem.Error())
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		fmt.Fprintf(out, "Parsed %d ingredients from %s (dry run, nothing written)\n", summary.Parsed, filepath.Base(path))
		return nil
	}
	fmt.Fprintf(out, "Imported %d ingredients from %s: %d created, %d updated\n",
		summary.Created+summary.Updated, filepath.Base(path), summary.Created, summary.Updated)
	return nil
}
