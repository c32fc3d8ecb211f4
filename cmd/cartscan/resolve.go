package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cartscan/cartscan/internal/config"
	"github.com/cartscan/cartscan/internal/lookup"
	"github.com/cartscan/cartscan/internal/model"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <barcode> [barcode...]",
		Short: "Look up barcodes and add the products to the list",
		Long: `Resolve looks up one or more barcodes in the configured product
databases without a scanning session, for codes you already have (typed
from a package, pasted from a file). Lookups run concurrently; results
are added to the list in the order the codes were given.

Unlike a scan session, explicitly typed codes are validated up front:
a code with a bad check digit is rejected with an error instead of
being silently retried.

Examples:
  cartscan resolve 4006381333931
  cartscan resolve 012345678905 96385074`,
		Args: cobra.MinimumNArgs(1),
		RunE: runResolveCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .cartscan in current or home directory)")
	cmd.Flags().IntP("concurrency", "n", 0,
		"Maximum number of concurrent lookups")
	cmd.Flags().Bool("dry-run", false,
		"Print the resolved names without adding them to the list")

	return cmd
}

// runResolveCmd executes the resolve command.
func runResolveCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildResolveConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env file", "error", err)
	}

	// Validate every code before resolving any: a typo should fail the
	// whole command, not add half the batch.
	codes := make([]string, 0, len(args))
	for _, arg := range args {
		code := model.NormalizeCode(arg)
		if !model.IsValidCode(code) {
			return fmt.Errorf("invalid barcode %q (check digit mismatch or empty code)", arg)
		}
		codes = append(codes, code)
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	resolver := lookup.NewResolverFromConfig(cfg, nil, lookup.WithLogger(logger))
	batch := lookup.NewBatchResolver(resolver,
		lookup.WithConcurrency(cfg.ResolveConcurrency),
		lookup.WithBatchLogger(logger),
	)

	results, err := batch.ResolveAll(cmd.Context(), codes)
	if err != nil {
		return fmt.Errorf("lookup aborted: %w", err)
	}

	if dryRun {
		for _, result := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", result.Code, result.Name)
		}
		return nil
	}

	s, cleanup, err := openList(cmd, logger, false)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, result := range results {
		if err := s.Add(cmd.Context(), result.Name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", result.Name)
	}
	return nil
}

// buildResolveConfig builds the lookup configuration for the resolve
// command from the config file and flags.
func buildResolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if concurrency, err := cmd.Flags().GetInt("concurrency"); err != nil {
		return nil, err
	} else if concurrency > 0 {
		cfg.ResolveConcurrency = concurrency
	}

	return cfg, nil
}
