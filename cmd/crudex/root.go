package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/crudex/internal/config"
	logpkg "github.com/kailas-cloud/crudex/internal/logger"
)

var envName string

var rootCmd = &cobra.Command{
	Use:   "crudex",
	Short: "crudex serves resource CRUD endpoints backed by SQL",
	Long: `crudex exposes create, retrieve, update, delete and list operations for
registered entity types, including parent-scoped (nested) resources.

Configuration is read from config/<env>.yaml; the environment defaults to $ENV or "local".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envName, "env", config.GetEnv(), "configuration environment (local, docker, prod, test)")
}

// loadRuntime reads the configuration for the selected environment and
// builds the process logger from it.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envName)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(envName, logpkg.Options{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Encoding,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}
