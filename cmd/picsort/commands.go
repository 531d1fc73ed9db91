// Package picsort builds the picsort command tree. Commands parse
// flags, call into pkg/commands, and render the results; all actual
// work happens in the library packages.
package picsort

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/picsort/internal/version"
	"github.com/arthur-debert/picsort/pkg/cobrax/topics"
	"github.com/arthur-debert/picsort/pkg/commands"
	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/logging"
	"github.com/arthur-debert/picsort/pkg/scan"
	"github.com/arthur-debert/picsort/pkg/style"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity int
		format    string
		noColor   bool
	)

	rootCmd := &cobra.Command{
		Use:     "picsort",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			// Show help but return an error to indicate incorrect usage
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, MsgFlagNoColor)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetHelpCommandGroupID("misc")

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newSortCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newLedgerCmd())
	rootCmd.AddCommand(newCleanupCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help from the embedded topic files
	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".txt", ".md"},
			// Always use Glamour renderer for markdown files
			Renderer: topics.NewGlamourRenderer(),
		}
		if err := topics.Initialize(rootCmd, sub, opts); err != nil {
			log.Debug().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// outputFormat reads the persistent format flags. --no-color forces
// plain text for everything except JSON output.
func outputFormat(cmd *cobra.Command) (style.Format, error) {
	raw, _ := cmd.Root().PersistentFlags().GetString("format")
	format, err := style.ParseFormat(raw)
	if err != nil {
		return format, err
	}

	if noColor, _ := cmd.Root().PersistentFlags().GetBool("no-color"); noColor && format != style.FormatJSON {
		return style.FormatText, nil
	}
	return format, nil
}

func newSortCmd() *cobra.Command {
	var (
		out     string
		apply   bool
		cleanup bool
	)

	cmd := &cobra.Command{
		Use:     "sort SOURCE",
		Short:   MsgSortShort,
		Long:    MsgSortLong,
		Example: MsgSortExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			p, err := initPaths(args[0], out, format)
			if err != nil {
				return err
			}

			log.Info().
				Str("source", p.SourceRoot()).
				Str("output", p.OutputRoot()).
				Bool("apply", apply).
				Msg("Sorting dump")

			progress := newScanProgress(format)
			defer progress.Done()
			moving := newMoveProgress(format)
			defer moving.Done()

			result, err := commands.Sort(commands.SortOptions{
				Source:   p.SourceRoot(),
				Out:      p.OutputRoot(),
				Apply:    apply,
				Cleanup:  cleanup,
				Progress: progress.Update,
				ScanDone: func(s *scan.Result) {
					progress.Done()
					if format != style.FormatJSON {
						fmt.Printf(MsgScanSummaryFormat, s.ValidCount(), s.InvalidCount())
						if apply && s.ValidCount() > 0 && format.Resolve() != style.FormatTerminal {
							fmt.Println(MsgMovingFiles)
						}
					}
				},
				MoveProgress: moving.Update,
			})
			progress.Done()
			moving.Done()
			if err != nil {
				return fmt.Errorf(MsgErrSort, err)
			}

			fmt.Println(style.NewRenderer(format).RenderReport(result.Report))

			verbosity, _ := cmd.Root().PersistentFlags().GetCount("verbose")
			if verbosity > 0 && format != style.FormatJSON {
				printInvalid(result.Scan, format)
			}

			if apply && cleanup && format != style.FormatJSON {
				fmt.Printf(MsgCleanupFormat, result.CleanedDirs)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)
	cmd.Flags().BoolVar(&apply, "apply", false, MsgFlagApply)
	cmd.Flags().BoolVar(&cleanup, "cleanup", false, MsgFlagCleanup)

	return cmd
}

func newScanCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "scan SOURCE",
		Short:   MsgScanShort,
		Long:    MsgScanLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			p, err := initPaths(args[0], out, format)
			if err != nil {
				return err
			}

			progress := newScanProgress(format)
			defer progress.Done()

			info, err := commands.Scan(commands.ScanOptions{
				Source:   p.SourceRoot(),
				Out:      p.OutputRoot(),
				Progress: progress.Update,
			})
			progress.Done()
			if err != nil {
				return fmt.Errorf(MsgErrScan, err)
			}

			if format == style.FormatJSON {
				fmt.Println(renderScanJSON(info.Result))
				return nil
			}

			fmt.Printf(MsgScanSummaryFormat, info.Result.ValidCount(), info.Result.InvalidCount())
			printInvalid(info.Result, format)

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)

	return cmd
}

func newLedgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ledger",
		Short:   MsgLedgerShort,
		Long:    MsgLedgerLong,
		GroupID: "core",
	}

	cmd.AddCommand(newLedgerListCmd())
	cmd.AddCommand(newLedgerVerifyCmd())

	return cmd
}

func newLedgerListCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "list SOURCE",
		Short: MsgLedgerListShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			result, err := commands.LedgerList(commands.LedgerOptions{Source: args[0], Out: out})
			if err != nil {
				return fmt.Errorf(MsgErrLedger, err)
			}

			if format == style.FormatJSON {
				fmt.Println(renderLedgerJSON(result))
				return nil
			}

			for _, e := range result.Entries {
				fmt.Printf(MsgLedgerEntryFormat, e.Target, e.Source)
			}
			fmt.Printf(MsgLedgerCountFormat, len(result.Entries), result.Paths.LedgerPath())

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)

	return cmd
}

func newLedgerVerifyCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "verify SOURCE",
		Short: MsgLedgerVerifyShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			result, err := commands.LedgerVerify(commands.LedgerOptions{Source: args[0], Out: out})
			if err != nil {
				return fmt.Errorf(MsgErrLedger, err)
			}

			if format == style.FormatJSON {
				fmt.Println(renderVerifyJSON(result))
			} else if result.Ok() {
				fmt.Printf(MsgVerifyOkFormat, result.Total)
			} else {
				fmt.Printf(MsgVerifyMissingFormat, len(result.Missing), result.Total)
				for _, e := range result.Missing {
					fmt.Printf(MsgMissingItemFormat, e.Target)
				}
			}

			if !result.Ok() {
				return errors.Newf(errors.ErrNotFound, "%d migrated files are missing from %s",
					len(result.Missing), result.Paths.OutputRoot())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)

	return cmd
}

func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "cleanup SOURCE",
		Short:   MsgCleanupShort,
		Long:    MsgCleanupLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Cleanup(commands.CleanupOptions{Source: args[0]})
			if err != nil {
				return fmt.Errorf(MsgErrCleanup, err)
			}

			fmt.Printf(MsgCleanupFormat, result.Removed)
			return nil
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	var (
		write bool
		dir   string
	)

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.GenConfig(commands.GenConfigOptions{Write: write, Dir: dir})
			if err != nil {
				return fmt.Errorf(MsgErrGenConfig, err)
			}

			if result.Path != "" {
				fmt.Printf(MsgConfigWrittenFormat, result.Path)
			} else {
				fmt.Println(result.ConfigContent)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, MsgFlagWrite)
	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagDir)

	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Delegate to the topic-aware help command
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				}
				if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
				}
			}
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
