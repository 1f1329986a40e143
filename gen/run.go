package gen

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssel/state"
)

// Run implements the "generate" subcommand: read selector definitions from
// SOURCE, build them and write the rendered output to DESTINATION or STDOUT.
func Run(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	log := env.Log

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no source file specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	src := cmd.Args().Get(0)

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read definitions file '%s': %w", src, err)
	}

	set, err := Parse(data)
	if err != nil {
		return fmt.Errorf("unable to parse definitions file '%s': %w", src, err)
	}

	entries, err := Build(set, log)
	if err != nil {
		return fmt.Errorf("unable to build selectors from '%s': %w", src, err)
	}

	format := cmd.String("format")
	if format == "" {
		format = env.Cfg.Generator.Format
	}
	pkg := cmd.String("package")
	if pkg == "" {
		pkg = env.Cfg.Generator.Package
	}

	var rendered string
	switch format {
	case "", "list":
		rendered, err = RenderList(entries)
	case "go":
		rendered, err = RenderGo(entries, pkg)
	default:
		return fmt.Errorf("unsupported output format '%s'", format)
	}
	if err != nil {
		return err
	}

	out := os.Stdout
	fname := cmd.Args().Get(1)
	if len(fname) > 0 {
		if out, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	} else {
		fname = "STDOUT"
	}

	if _, err := out.WriteString(rendered); err != nil {
		return fmt.Errorf("unable to write output to '%s': %w", fname, err)
	}

	log.Info("Generated selectors", zap.Int("count", len(entries)), zap.String("format", format), zap.String("file", fname))
	return nil
}
