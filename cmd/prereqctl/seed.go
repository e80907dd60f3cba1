package main

import (
	"fmt"

	"github.com/spf13/cobra"

	appMigrations "github.com/yigit/prereqplanner/internal/app/migrations"
	"github.com/yigit/prereqplanner/internal/config"
	"github.com/yigit/prereqplanner/internal/db"
	"github.com/yigit/prereqplanner/internal/seed"
)

type seedOptions struct {
	csvPath    string
	target     string
	sqlitePath string
}

func newSeedCmd(root *rootOptions) *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a catalog export into the catalog database",
		Long: `Reads a catalog CSV (or JSON) export and upserts it into PostgreSQL or
SQLite. Connection settings come from --config. PostgreSQL migrations run
first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "catalog export to load (.csv or .json)")
	cmd.Flags().StringVar(&opts.target, "target", config.SourcePostgres, "database to seed (postgres or sqlite)")
	cmd.Flags().StringVar(&opts.sqlitePath, "sqlite-path", "", "SQLite file, overrides the configured path")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}

func runSeed(cmd *cobra.Command, root *rootOptions, opts *seedOptions) error {
	ctx := cmd.Context()
	lgr := root.cliLogger(cmd)

	courses, err := loadCatalogFile(ctx, opts.csvPath)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(root.configPath)
	if err != nil {
		return err
	}

	var n int
	switch opts.target {
	case config.SourcePostgres:
		pg, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer pg.Close()

		if err := appMigrations.NewMigrator(pg.Pool, lgr).MigrateFromDirectory(ctx, cfg.Database.MigrationsDir); err != nil {
			return err
		}
		if n, err = seed.Postgres(ctx, pg, courses, lgr); err != nil {
			return err
		}

	case config.SourceSQLite:
		path := cfg.Database.SQLitePath
		if opts.sqlitePath != "" {
			path = opts.sqlitePath
		}
		sdb, err := db.NewSQLiteDB(ctx, path)
		if err != nil {
			return err
		}
		defer sdb.Close()

		if n, err = seed.SQLite(ctx, sdb, courses, lgr); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown seed target %q (want %s or %s)", opts.target, config.SourcePostgres, config.SourceSQLite)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d courses into %s.\n", n, opts.target)
	return nil
}
