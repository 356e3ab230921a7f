// Package main provides the playbook command: it extracts tasks, milestones,
// templates and tips from playbook documents and seeds them into a store.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/playbook/internal/logging"
	"github.com/cognicore/playbook/pkg/playbook/config"
)

const (
	envDB        = "PLAYBOOK_DB"
	envLogLevel  = "PLAYBOOK_LOG_LEVEL"
	envLogFormat = "PLAYBOOK_LOG_FORMAT"
	envCatalog   = "PLAYBOOK_CATALOG"
)

var rootCmd = &cobra.Command{
	Use:               "playbook",
	Short:             "Extract structured creator content from playbook documents",
	Long:              "playbook turns creator playbook documents (roadmaps, template catalogues and strategy guides) into tasks, milestones, templates and tips.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	logLevel    string
	logFormat   string
	catalogPath string

	logger  *zap.Logger
	catalog *config.Catalog
)

func init() {
	defaults := logging.NewDefaultConfig()
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (env "+envLogLevel+", default "+defaults.Level+")")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json (env "+envLogFormat+", default "+defaults.Format+")")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a catalog YAML file (env "+envCatalog+", default built-in)")
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg := logging.NewDefaultConfig()
	cfg.Level = firstNonEmpty(logLevel, os.Getenv(envLogLevel), cfg.Level)
	cfg.Format = firstNonEmpty(logFormat, os.Getenv(envLogFormat), cfg.Format)
	cfg.Output = cmd.ErrOrStderr()

	log, err := logging.New(cfg)
	if err != nil {
		return err
	}
	logger = log

	catalog = config.Default()
	if path := firstNonEmpty(catalogPath, os.Getenv(envCatalog)); path != "" {
		cat, err := config.LoadCatalog(path)
		if err != nil {
			return err
		}
		catalog = cat
		logger.Debug("loaded catalog", zap.String("path", path), zap.Int("version", cat.Version))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
