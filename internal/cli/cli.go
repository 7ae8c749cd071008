// Package cli is the command-line shell over the grade use cases. It parses
// arguments, invokes one use case and renders the result or the error.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/okian/gradebook/internal/app"
	"github.com/okian/gradebook/internal/config"
	"github.com/okian/gradebook/pkg/logger"
	"github.com/okian/gradebook/pkg/metrics"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// File permission constants.
const (
	metricsFilePermission = 0600
)

var errUsage = errors.New("usage error")

// env is what a command needs to run.
type env struct {
	cfg    *config.Config
	uc     *app.UseCases
	out    io.Writer
	errOut io.Writer
}

type command struct {
	summary string
	run     func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"token":      {"show the configured API token", runToken},
	"get":        {"get one grade: -username U -course C", runGet},
	"grades":     {"list every grade of a user: -username U", runGrades},
	"log":        {"log a grade for yourself: -course C -grade N", runLog},
	"form-team":  {"form a new team: -name T", runFormTeam},
	"join-team":  {"join an existing team: -name T", runJoinTeam},
	"leave-team": {"leave your current team", runLeaveTeam},
	"my-team":    {"show your team and its members", runMyTeam},
	"average":    {"average grade across your team: -course C", runAverage},
	"top":        {"top grade across your team: -course C", runTop},
}

// Run executes one command and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gradebook", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configFile  = fs.String("config", "", "YAML config file (default $GRADEBOOK_CONFIG)")
		envFile     = fs.String("env-file", "", "dotenv file loaded before reading the environment (default .env)")
		baseURL     = fs.String("base-url", "", "grade service base URL, overrides config")
		metricsFile = fs.String("metrics-file", "", "write Prometheus metrics to this file on exit")
		verbose     = fs.Bool("verbose", false, "enable debug logging")
	)
	fs.Usage = func() { ShowHelp(stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	name := fs.Arg(0)
	if name == "" || name == "help" {
		ShowHelp(stdout)
		return ExitOK
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		ShowHelp(stderr)
		return ExitUsage
	}

	cfg, err := config.Load(ctx,
		config.WithFile(*configFile),
		config.WithEnvFile(*envFile),
		config.WithBaseURL(*baseURL),
	)
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config: "+err.Error())
		return ExitFailure
	}

	log := setupLogging(ctx, cfg, *verbose, stderr)
	log.Debug(ctx, "running command", logger.String("command", name), logger.String("base_url", cfg.BaseURL))

	e := &env{
		cfg:    cfg,
		uc:     app.New(app.NewClient(cfg, log.Named("gradeapi")), log.Named("usecase")),
		out:    stdout,
		errOut: stderr,
	}
	err = cmd.run(ctx, e, fs.Args()[1:])

	if *metricsFile != "" {
		if werr := writeMetrics(*metricsFile); werr != nil {
			log.Warn(ctx, "failed to write metrics", logger.String("file", *metricsFile), logger.Error(werr))
		}
	}

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errUsage):
		return ExitUsage
	default:
		fmt.Fprintln(stderr, err.Error())
		return ExitFailure
	}
}

func setupLogging(ctx context.Context, cfg *config.Config, verbose bool, stderr io.Writer) logger.Logger {
	_ = logger.Init(logger.WithWriter(stderr), logger.WithJSON(cfg.LogJSON))
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to warn", logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("warn")
	}
	return logger.Get()
}

func writeMetrics(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, metricsFilePermission)
	if err != nil {
		return fmt.Errorf("open metrics file: %w", err)
	}
	if err := metrics.WriteText(f, metrics.GetRegistry()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ShowHelp prints usage information.
func ShowHelp(w io.Writer) {
	fmt.Fprint(w, `gradebook: fetch and log course grades and manage your team

Usage:
  gradebook [global options] <command> [command options]

Commands:
`)
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-11s %s\n", n, commands[n].summary)
	}
	fmt.Fprint(w, `
Global options:
  -config string        YAML config file (default $GRADEBOOK_CONFIG)
  -env-file string      dotenv file loaded before reading the environment (default .env)
  -base-url string      grade service base URL, overrides config
  -metrics-file string  write Prometheus metrics to this file on exit
  -verbose              enable debug logging

The API token is read from $GRADEBOOK_TOKEN, or else from the variable named
by token_env (default $token).

Examples:
  gradebook get -username alice -course csc207
  gradebook log -course csc207 -grade 85
  gradebook form-team -name owls
  gradebook average -course csc207
`)
}
