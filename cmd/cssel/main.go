package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssel/config"
	"cssel/gen"
	"cssel/misc"
	"cssel/selector"
	"cssel/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()
	return nil
}

// Ignore urfave/cli default error handling - cli.Exit() looks non-transparent
// and unnecessary, subcommands return regular errors.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "CSS selector construction toolkit",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "force debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:         "build",
				Usage:        "Builds a single selector from category flags and prints it",
				OnUsageError: usageErrorHandler,
				Action:       buildSelector,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "element", Aliases: []string{"e"}, Usage: "element (type) `NAME`"},
					&cli.StringFlag{Name: "id", Usage: "id `NAME`"},
					&cli.StringSliceFlag{Name: "class", Usage: "class `NAME` (repeatable)"},
					&cli.StringSliceFlag{Name: "attr", Usage: "attribute `EXPR` (repeatable)"},
					&cli.StringSliceFlag{Name: "pseudo-class", Usage: "pseudo-class `NAME` (repeatable)"},
					&cli.StringFlag{Name: "pseudo-element", Usage: "pseudo-element `NAME`"},
					&cli.BoolFlag{Name: "check", Usage: "lexically check fragment values before building"},
				},
				ArgsUsage: " ",
			},
			{
				Name:         "generate",
				Usage:        "Builds selectors from a YAML definitions file",
				OnUsageError: usageErrorHandler,
				Action:       gen.Run,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Usage: "output `FORMAT`: list or go (default from configuration)"},
					&cli.StringFlag{Name: "package", Usage: "package `NAME` for generated Go source"},
				},
				ArgsUsage: "SOURCE [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to YAML file with selector definitions

DESTINATION:
    file name to write generated output to, if absent - STDOUT
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

// buildSelector assembles a single selector from command line flags. Flags are
// applied in the mandated category order, so any combination of flags yields a
// valid chain.
func buildSelector(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	type value struct {
		cat selector.Category
		v   string
	}
	var values []value
	if v := cmd.String("element"); v != "" {
		values = append(values, value{selector.CategoryElement, v})
	}
	if v := cmd.String("id"); v != "" {
		values = append(values, value{selector.CategoryID, v})
	}
	for _, v := range cmd.StringSlice("class") {
		values = append(values, value{selector.CategoryClass, v})
	}
	for _, v := range cmd.StringSlice("attr") {
		values = append(values, value{selector.CategoryAttribute, v})
	}
	for _, v := range cmd.StringSlice("pseudo-class") {
		values = append(values, value{selector.CategoryPseudoClass, v})
	}
	if v := cmd.String("pseudo-element"); v != "" {
		values = append(values, value{selector.CategoryPseudoElement, v})
	}
	if len(values) == 0 {
		return fmt.Errorf("no selector fragments specified")
	}

	b := selector.New()
	for _, val := range values {
		if cmd.Bool("check") {
			if err := selector.CheckFragment(val.cat, val.v); err != nil {
				return err
			}
		}
		switch val.cat {
		case selector.CategoryElement:
			b.Element(val.v)
		case selector.CategoryID:
			b.ID(val.v)
		case selector.CategoryClass:
			b.Class(val.v)
		case selector.CategoryAttribute:
			b.Attr(val.v)
		case selector.CategoryPseudoClass:
			b.PseudoClass(val.v)
		case selector.CategoryPseudoElement:
			b.PseudoElement(val.v)
		}
	}

	s, err := b.Build()
	if err != nil {
		return err
	}
	env.Log.Debug("Built selector", zap.String("selector", s))
	fmt.Println(s)
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputting configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration to '%s': %w", fname, err)
	}
	return nil
}
