package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/conformd/cxxlint/checker"
	"github.com/conformd/cxxlint/config"
	"github.com/conformd/cxxlint/report"
	"github.com/conformd/cxxlint/rules"
)

const exitFatal = 2

type checkOptions struct {
	ConfigPath string
	Format     string
	Output     string
	Jobs       int
	Extensions []string
	Exclude    []string
}

var checkOpts checkOptions

func main() {
	root := &cobra.Command{
		Use:           "cxxlint",
		Short:         "Checks C++ sources against the coding-standard rule set",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCommand(), newRulesCommand())

	if err := root.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "cxxlint:", err)
		os.Exit(exitFatal)
	}
}

// exitError carries the process exit status out of a command
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] PATH...",
		Short: "Run the conformance rules over the given files or directories",
		Example: `  # check a directory tree with the default rules
  cxxlint check Source/

  # write a SARIF report for CI
  cxxlint check --format sarif --output report.sarif Source/

  # custom configuration and more workers
  cxxlint check --config cxxlint.yaml --jobs 8 Source/Runtime Source/Editor`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
	flags := cmd.Flags()
	flags.StringVarP(&checkOpts.ConfigPath, "config", "c", "", "path to the configuration file")
	flags.StringVarP(&checkOpts.Format, "format", "f", report.FormatText, "report format: text, sarif or json")
	flags.StringVarP(&checkOpts.Output, "output", "o", "", "report target (default stdout)")
	flags.IntVarP(&checkOpts.Jobs, "jobs", "j", 0, "number of parallel workers (default: number of CPUs)")
	flags.StringSliceVar(&checkOpts.Extensions, "ext", nil, "override the checked file extensions")
	flags.StringSliceVar(&checkOpts.Exclude, "exclude", nil, "additional exclude patterns")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(checkOpts.ConfigPath)
	if err != nil {
		return fatal(checker.NewConfigError(err))
	}
	if checkOpts.Jobs > 0 {
		cfg.Checker.Jobs = checkOpts.Jobs
	}
	if len(checkOpts.Extensions) > 0 {
		cfg.Checker.Extensions = normalizeExtensions(checkOpts.Extensions)
	}
	cfg.Checker.Exclude = append(cfg.Checker.Exclude, checkOpts.Exclude...)

	logger := newLogger(cfg)
	runner, err := checker.New(cfg, logger)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return fatal(err)
	}

	result, err := runner.Run(cmd.Context(), args)
	if err != nil {
		logger.Error("run failed", "error", err)
		return fatal(err)
	}

	if err := report.Save(cmd.Context(), checkOpts.Output, checkOpts.Format, result); err != nil {
		logger.Error("failed to write report", "error", err)
		return fatal(err)
	}

	if code := result.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the registered rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, def := range rules.Definitions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-20s %-8s %s\n",
					def.ID, def.Category, def.Severity, def.Summary)
			}
			return nil
		},
	}
}

func fatal(err error) error {
	fmt.Fprintln(os.Stderr, "cxxlint:", err)
	return &exitError{code: exitFatal}
}

func newLogger(cfg *config.Config) hclog.Logger {
	level := cfg.Logger.Level
	if env := os.Getenv("CXXLINT_LOG_LEVEL"); env != "" {
		level = env
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:        "cxxlint",
		Output:      os.Stderr,
		DisableTime: true,
		Level:       hclog.LevelFromString(strings.ToLower(level)),
	})
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, strings.ToLower(ext))
	}
	return out
}
