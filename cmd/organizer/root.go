package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"organizer/internal/config"
	"organizer/internal/logging"
	"organizer/internal/organize"
	"organizer/internal/report"
	"organizer/internal/services"
)

func newRootCommand() *cobra.Command {
	var (
		configFlag string
		outputFlag string
		dryRun     bool
		recursive  bool
		byType     bool
		byDate     bool
		duplicates bool
	)

	rootCmd := &cobra.Command{
		Use:           "organizer <source>",
		Short:         "Organize files by type, date, or find duplicates",
		Example:       "  organizer ~/Downloads --by-type --dry-run",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(configFlag)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			source, err := filepath.Abs(args[0])
			if err != nil {
				return services.Wrap(services.ErrValidation, "setup", "resolve source", args[0], err)
			}
			if info, err := os.Stat(source); err != nil || !info.IsDir() {
				return services.Wrap(services.ErrValidation, "setup", "check source",
					fmt.Sprintf("'%s' is not a valid directory", args[0]), err)
			}
			if !byType && !byDate && !duplicates {
				_ = cmd.Help()
				return services.Wrap(services.ErrValidation, "setup", "check policies",
					"specify at least one action (--by-type, --by-date, or --duplicates)", nil)
			}

			dest := source
			if outputFlag != "" {
				if dest, err = filepath.Abs(outputFlag); err != nil {
					return services.Wrap(services.ErrValidation, "setup", "resolve output", outputFlag, err)
				}
			}

			lock := flock.New(runLockPath(source))
			locked, err := lock.TryLock()
			if err != nil {
				return services.Wrap(services.ErrLocked, "setup", "acquire lock", source, err)
			}
			if !locked {
				return services.Wrap(services.ErrLocked, "setup", "acquire lock",
					"another organizer run is active on "+source, nil)
			}
			defer func() {
				_ = lock.Unlock()
			}()

			ctx := services.WithRunID(cmd.Context(), uuid.NewString())
			org := organize.New(organize.Options{
				Source:     source,
				Dest:       dest,
				Recursive:  recursive,
				DryRun:     dryRun,
				Duplicates: duplicates,
				ByType:     byType,
				ByDate:     byDate,
			}, cfg.Categories, logger)

			summary, err := org.Run(ctx)
			if err != nil {
				return err
			}
			report.Print(cmd.OutOrStdout(), summary, terminalOutput(cmd))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory (default: in place)")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview without moving")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Include subdirectories")
	rootCmd.Flags().BoolVar(&byType, "by-type", false, "Sort by file type")
	rootCmd.Flags().BoolVar(&byDate, "by-date", false, "Sort by modification date")
	rootCmd.Flags().BoolVar(&duplicates, "duplicates", false, "Find and isolate duplicates")

	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// runLockPath derives a per-source lock file under the system temp directory
// so two runs cannot interleave moves on the same tree.
func runLockPath(source string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("organizer-%x.lock", xxhash.Sum64String(source)))
}

func terminalOutput(cmd *cobra.Command) bool {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return report.IsTerminal(f)
	}
	return false
}
