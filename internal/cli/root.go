package cli

import (
	"fmt"
	"os"

	"github.com/dshills/mypykaizen/internal/baseline"
	"github.com/dshills/mypykaizen/internal/checker"
	"github.com/dshills/mypykaizen/internal/config"
	"github.com/dshills/mypykaizen/internal/gate"
	"github.com/dshills/mypykaizen/internal/logging"
	"github.com/dshills/mypykaizen/internal/sanitize"
	"github.com/spf13/cobra"
)

// ExitRuntimeError is returned when the gate itself fails: bad config, the
// checker could not be started, or the baseline could not be read or saved.
const ExitRuntimeError = 4

// newRunner builds the checker runner. Tests replace it.
var newRunner = func(cfg config.Config, cmd *cobra.Command) checker.Runner {
	return &checker.ExecRunner{
		Command:        cfg.Checker,
		VersionCommand: cfg.EffectiveVersionCommand(),
		Stdin:          cmd.InOrStdin(),
		Stdout:         cmd.OutOrStdout(),
		Stderr:         cmd.ErrOrStderr(),
	}
}

// exitCode is set by the root command handler to control the process exit code.
var exitCode = gate.ExitSuccess

var rootCmd = &cobra.Command{
	Use:   "mypykaizen [checker arguments...]",
	Short: "Run mypy and fail only when type errors increase",
	Long: "mypykaizen runs the type checker with the given arguments and compares its error " +
		"counts with the baseline in " + baseline.DefaultFileName + ". All arguments are forwarded.",
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE:               runGate,
}

// Run executes the root command with args and returns an exit code.
func Run(args []string) int {
	if args == nil {
		args = []string{}
	}
	exitCode = gate.ExitSuccess
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "mypykaizen: error: %v\n", err)
		return ExitRuntimeError
	}
	return exitCode
}

func runGate(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	format, _ := logging.ParseFormat(cfg.LogFormat)
	logger := logging.New(cmd.ErrOrStderr(), level, format)
	logger.Debug("starting", "checker", cfg.Checker, "args", args)

	g := &gate.Gate{
		Runner:    newRunner(cfg, cmd),
		Store:     baseline.NewStore(baseline.DefaultFileName, logger),
		Sanitizer: sanitize.New(),
		Stdout:    cmd.OutOrStdout(),
		Color:     cfg.Color,
		Logger:    logger,
	}

	code, err := g.Run(cmd.Context(), args)
	if err != nil {
		return err
	}
	exitCode = code
	return nil
}
