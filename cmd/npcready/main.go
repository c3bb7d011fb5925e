package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agbru/npcready/internal/app"
	"github.com/agbru/npcready/internal/cli"
	"github.com/agbru/npcready/internal/config"
	apperrors "github.com/agbru/npcready/internal/errors"
	"github.com/agbru/npcready/internal/npc"
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, out, errOut io.Writer) int {
	exitCode := apperrors.ExitSuccess
	root := newRootCmd(&exitCode)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	if err := root.ExecuteContext(ctx); err != nil {
		return cli.HandleError(err, errOut)
	}
	return exitCode
}

func newRootCmd(exitCode *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "npcready",
		Short: "npcready: coordinated NPC subsystem initialization",
		Long: "npcready starts every subsystem of an NPC, waits for each to report ready, " +
			"and resolves to exactly one outcome: ready, failed, or timed out.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("log-level", "l", config.DefaultLogLevel, "Set log level. Available: debug, info, warn, error")
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		levelStr, _ := c.Flags().GetString("log-level")
		level, err := zerolog.ParseLevel(levelStr)
		if err != nil {
			return apperrors.NewConfigError("invalid log level %q", levelStr)
		}
		zerolog.SetGlobalLevel(level)
		return nil
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.NewConfigError("%v", err)
	})

	cmd.AddCommand(newRunCmd(exitCode))
	cmd.AddCommand(newRosterCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newRunCmd(exitCode *int) *cobra.Command {
	cfg := config.Defaults()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Initialize the NPC and report its readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
			resolved, roster, err := config.Resolve(cmd.Flags(), cfg)
			if err != nil {
				return err
			}
			application := app.New(resolved, roster, cmd.ErrOrStderr())
			*exitCode = application.Run(cmd.Context(), cmd.OutOrStdout())
			return nil
		},
	}
	config.BindFlags(cmd.Flags(), &cfg)
	return cmd
}

func newRosterCmd() *cobra.Command {
	cfg := config.Defaults()
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Print the resolved roster as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
			resolved, roster, err := config.Resolve(cmd.Flags(), cfg)
			if err != nil {
				return err
			}
			if roster == nil {
				roster = npc.DefaultRoster()
			}
			roster.Deadline = resolved.Deadline
			return cli.DisplayRoster(roster, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&cfg.RosterFile, "roster", "r", "", "YAML roster file (default: built-in NPC roster)")
	cmd.Flags().DurationVarP(&cfg.Deadline, "deadline", "d", cfg.Deadline, "readiness deadline for the whole roster")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.PrintVersion(cmd.OutOrStdout())
		},
	}
}
