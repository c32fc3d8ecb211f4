package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cartscan/cartscan/internal/config"
	"github.com/cartscan/cartscan/internal/lookup"
	"github.com/cartscan/cartscan/internal/scan"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a product barcode and add it to the list",
		Long: `Scan runs one scanning session: it reads decode attempts from the
scanner device, requires several consecutive identical reads to filter
misreads, looks the confirmed barcode up in the configured product
databases, and appends the product name to the shopping list.

The session ends on the first confirmed code. Press Ctrl+C to cancel;
a cancelled session leaves the list untouched. If no provider knows the
product, the item is added as "Unknown product (<code>)" so you can
rename it with the edit command.

By default decode attempts are read line by line from standard input,
which is where keyboard-wedge USB scanners type their decodes. Serial
scanners are read from their device path instead.

Examples:
  # Keyboard-wedge scanner (or type a barcode and press enter)
  cartscan scan

  # Serial scanner
  cartscan scan --device /dev/ttyACM0

  # Require five consecutive identical reads
  cartscan scan --threshold 5

  # Use a custom configuration file
  cartscan scan -c myconfig.yaml`,
		Args: cobra.NoArgs,
		RunE: runScanCmd,
	}

	// Capture flags
	cmd.Flags().StringP("device", "d", "",
		"Scanner device path (default: standard input)")

	// Confirmation flags
	cmd.Flags().IntP("threshold", "t", 0,
		fmt.Sprintf("Consecutive identical reads required to confirm (default %d)", config.DefaultConfirmThreshold))
	cmd.Flags().Duration("interval", 0,
		fmt.Sprintf("Minimum pause between decode attempts (default %s)", config.DefaultSampleInterval))
	cmd.Flags().DurationP("timeout", "T", 0,
		fmt.Sprintf("Abandon the session after this long (default %s)", config.DefaultSessionTimeout))

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .cartscan in current or home directory)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	// Provider API keys may live in a .env file next to the config.
	// Missing file is fine; the environment may carry the keys already.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env file", "error", err)
	}

	// Set up context with signal handling so Ctrl+C cancels the session
	// cleanly and the device handle is released.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cmd, cfg, logger)
}

// buildConfig creates a Config from the config file and command flags.
// Precedence: flags over file over defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently run on defaults.
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

	// Flags override the file.
	if device, err := cmd.Flags().GetString("device"); err != nil {
		return nil, err
	} else if device != "" {
		cfg.DevicePath = device
	}

	if threshold, err := cmd.Flags().GetInt("threshold"); err != nil {
		return nil, err
	} else if threshold != 0 {
		cfg.ConfirmThreshold = threshold
	}

	if interval, err := cmd.Flags().GetDuration("interval"); err != nil {
		return nil, err
	} else if interval != 0 {
		cfg.SampleInterval = interval
	}

	if timeout, err := cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, err
	} else if timeout != 0 {
		cfg.SessionTimeout = timeout
	}

	return cfg, nil
}

// runScan executes the scan session.
func runScan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	s, cleanup, err := openList(cmd, logger, true)
	if err != nil {
		return err
	}
	defer cleanup()

	resolver := lookup.NewResolverFromConfig(cfg, nil, lookup.WithLogger(logger))
	if resolver.ProviderCount() == 0 {
		logger.Warn("no lookup providers enabled; scanned items will use the fallback label")
	}

	capture := scan.NewLineCapture(cfg.DevicePath)
	engine := scan.NewEngine(cfg.ConfirmThreshold, scan.WithEngineLogger(logger))

	session := scan.NewSession(
		capture,
		&scan.LineDecoder{},
		engine,
		resolver,
		s,
		scan.WithSessionLogger(logger),
		scan.WithSampleInterval(cfg.SampleInterval),
		scan.WithSessionTimeout(cfg.SessionTimeout),
	)

	device := cfg.DevicePath
	if device == "" {
		device = "standard input"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Scanning from %s (need %d matching reads, Ctrl+C to cancel)...\n",
		device, cfg.ConfirmThreshold)

	name, err := session.Run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, scan.ErrSessionCancelled):
			fmt.Fprintln(cmd.OutOrStdout(), "Scan cancelled. Nothing was added.")
			return nil
		case errors.Is(err, scan.ErrCaptureUnavailable):
			return fmt.Errorf("scanner device unavailable: %w", err)
		case errors.Is(err, scan.ErrPermissionDenied):
			return fmt.Errorf("no permission to read the scanner device: %w", err)
		default:
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", name)
	return nil
}
