package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	appModels "github.com/yigit/prereqplanner/internal/app/models"
	appRepos "github.com/yigit/prereqplanner/internal/app/repositories"
	"github.com/yigit/prereqplanner/internal/pkg/catalog"
	"github.com/yigit/prereqplanner/internal/pkg/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "prereqctl",
		Short:         "Prerequisite parser and plan validator tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", filepath.Join("configs", "config.yaml"), "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newParseCmd(),
		newAuditCmd(opts),
		newValidateCmd(opts),
		newSeedCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

// cliLogger logs to stderr so command output on stdout stays machine readable.
func (o *rootOptions) cliLogger(cmd *cobra.Command) zerolog.Logger {
	return logger.New(logger.Config{
		Level:  logger.LogLevel(o.logLevel),
		Pretty: true,
		Output: cmd.ErrOrStderr(),
	})
}

func loadCatalogFile(ctx context.Context, path string) ([]appModels.Course, error) {
	if path == "" {
		return nil, fmt.Errorf("--catalog is required")
	}
	return appRepos.NewFileCourseRepository(path).LoadCourses(ctx)
}

func compileCatalogFile(ctx context.Context, path string) (*catalog.Snapshot, error) {
	records, err := loadCatalogFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return catalog.Compile(records), nil
}
