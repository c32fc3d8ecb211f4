package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cartscan/cartscan/internal/config"
	"github.com/cartscan/cartscan/internal/log"
	"github.com/cartscan/cartscan/internal/model"
	"github.com/cartscan/cartscan/internal/render"
	"github.com/cartscan/cartscan/internal/store"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the redacting structured logger and installs it as
// the slog default.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	logger := log.NewRedactedLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)
	return logger
}

// openList opens the persisted list for a command. The returned cleanup
// function closes the database and must be called on every path.
//
// Every mutating command renders the whole list after its mutations
// through the store's change callback, so the user always sees the state
// they just produced.
func openList(cmd *cobra.Command, logger *slog.Logger, renderOnChange bool) (*store.Store, func(), error) {
	persister, err := store.OpenSQLite(config.XDGDataDir(), store.DefaultOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open list database: %w", err)
	}

	opts := []store.Option{store.WithLogger(logger)}
	if renderOnChange {
		writer := render.NewListWriter(cmd.OutOrStdout())
		opts = append(opts, store.WithOnChange(func(snapshot model.Snapshot) {
			if _, err := writer.Write(snapshot); err != nil {
				logger.Warn("failed to render list", "error", err)
			}
		}))
	}

	s, err := store.Load(cmd.Context(), persister, opts...)
	if err != nil {
		_ = persister.Close() //nolint:errcheck // Best effort cleanup
		return nil, nil, err
	}

	cleanup := func() {
		if err := persister.Close(); err != nil {
			logger.Warn("failed to close list database", "error", err)
		}
	}
	return s, cleanup, nil
}

// parseIndex converts a 1-based index argument into the 0-based index
// the store uses.
func parseIndex(arg string, length int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid item number %q (expected a number, see 'cartscan list')", arg)
	}
	if n < 1 || n > length {
		if length == 0 {
			return 0, fmt.Errorf("item %d does not exist: the list is empty", n)
		}
		return 0, fmt.Errorf("item %d does not exist (valid range: 1-%d)", n, length)
	}
	return n - 1, nil
}

// NewAddCmd creates the add command.
func NewAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <item> [item...]",
		Short: "Add items to the shopping list",
		Long: `Add appends one or more items to the end of the shopping list.

Examples:
  cartscan add "Oat milk"
  cartscan add Bread Eggs "Greek yogurt"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(cmd)
			s, cleanup, err := openList(cmd, logger, true)
			if err != nil {
				return err
			}
			defer cleanup()

			for _, text := range args {
				if err := s.Add(cmd.Context(), text); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the shopping list",
		Long: `List prints the shopping list with item numbers.

The numbers are what the check, edit, and remove commands accept. They
are re-derived on every run: removing an item renumbers everything after
it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := setupLogger(cmd)
			s, cleanup, err := openList(cmd, logger, false)
			if err != nil {
				return err
			}
			defer cleanup()

			_, err = render.NewListWriter(cmd.OutOrStdout()).Write(s.Snapshot())
			return err
		},
	}
}

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <number> [number...]",
		Short: "Toggle the checked state of items",
		Long: `Check toggles items between checked and unchecked by their list
number. Checking an item you already checked unchecks it again.

Examples:
  cartscan check 2
  cartscan check 1 3 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(cmd)
			s, cleanup, err := openList(cmd, logger, true)
			if err != nil {
				return err
			}
			defer cleanup()

			for _, arg := range args {
				index, err := parseIndex(arg, s.Len())
				if err != nil {
					return err
				}
				if err := s.Toggle(cmd.Context(), index); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// NewEditCmd creates the edit command.
func NewEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <number> <new text>",
		Short: "Replace the text of an item",
		Long: `Edit replaces the text of the item at the given list number.
The checked state is kept.

Examples:
  cartscan edit 2 "Whole milk"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(cmd)
			s, cleanup, err := openList(cmd, logger, true)
			if err != nil {
				return err
			}
			defer cleanup()

			index, err := parseIndex(args[0], s.Len())
			if err != nil {
				return err
			}
			return s.Edit(cmd.Context(), index, strings.Join(args[1:], " "))
		},
	}
}

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <number>",
		Aliases: []string{"rm"},
		Short:   "Remove an item from the list",
		Long: `Remove deletes the item at the given list number. Items after it
shift up, so their numbers change.

Examples:
  cartscan remove 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(cmd)
			s, cleanup, err := openList(cmd, logger, true)
			if err != nil {
				return err
			}
			defer cleanup()

			index, err := parseIndex(args[0], s.Len())
			if err != nil {
				return err
			}
			return s.Remove(cmd.Context(), index)
		},
	}
}

// NewClearCmd creates the clear command.
func NewClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the list",
		Long: `Clear empties the shopping list. It asks for confirmation unless
--yes is given.

Examples:
  cartscan clear
  cartscan clear -y`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := setupLogger(cmd)

			yes, err := cmd.Flags().GetBool("yes")
			if err != nil {
				return err
			}

			s, cleanup, err := openList(cmd, logger, false)
			if err != nil {
				return err
			}
			defer cleanup()

			if s.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Shopping list is already empty.")
				return nil
			}

			if !yes && !confirmClear(cmd, s.Len()) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			if err := s.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Shopping list cleared.")
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// confirmClear asks the user to confirm emptying the list. Anything but
// an explicit yes counts as no.
func confirmClear(cmd *cobra.Command, length int) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "Remove all %d items? [y/N] ", length)

	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// NewShareCmd creates the share command.
func NewShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Export the list for sharing",
		Long: `Share prints the list in a format suitable for pasting elsewhere:
plain text by default, or JSON / Markdown with the matching flag.

Examples:
  # Plain text to the terminal (pipe to a clipboard tool to copy)
  cartscan share

  # Markdown task list written to a file
  cartscan share --markdown -o list.md`,
		Args: cobra.NoArgs,
		RunE: runShareCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output a Markdown task list (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write to the specified file path instead of stdout")

	return cmd
}

// runShareCmd executes the share command.
func runShareCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if asJSON && asMarkdown {
		return fmt.Errorf("--json and --markdown are mutually exclusive")
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	s, cleanup, err := openList(cmd, logger, false)
	if err != nil {
		return err
	}
	defer cleanup()

	output := cmd.OutOrStdout()
	if outputPath != "" {
		dir := filepath.Dir(outputPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer render.Writer
	switch {
	case asJSON:
		writer = render.NewJSONWriter(output)
	case asMarkdown:
		writer = render.NewMarkdownWriter(output)
	default:
		writer = render.NewShareWriter(output)
	}

	_, err = writer.Write(s.Snapshot())
	return err
}
