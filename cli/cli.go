package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pure/bind"
	"github.com/ardnew/pure/cli/cmd"
	"github.com/ardnew/pure/lang"
	"github.com/ardnew/pure/log"
	"github.com/ardnew/pure/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// CLI is the top-level command-line interface for pure.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Token tokenConfig `embed:"" group:"token" prefix:"token-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Bind []string `help:"Bindings file(s) or '-' for stdin" short:"b" type:"existingfile"`

	Version kong.VersionFlag `help:"Print version and exit"`

	Init cmd.Init `cmd:"" help:"Initialize configuration file"`
	Tree cmd.Tree `cmd:"" help:"Print the element tree of a formula"`
	Repl cmd.Repl `cmd:"" help:"Start an interactive session"`

	Exec cmd.Exec `cmd:"" default:"withargs" help:"Render formulas"`
}

// Run executes the pure CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := pkg.MkdirAll()
	if err != nil {
		return err
	}

	configFilePath := pkg.ConfigPath(baseConfig)

	vars := kong.Vars{
		"version":            pkg.Version(),
		cmd.ConfigIdentifier: configFilePath + ".yaml",
		cmd.CacheIdentifier:  pkg.CacheDir(),
		cmd.TreeFormatEnum:   strings.Join(lang.OutputFormats(), ","),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Token.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Token.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath+".yaml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	engine, err := cli.engine(ctx)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithEngine(ctx, engine)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// engine creates the formula engine from the token flags and installs the
// merged bindings documents.
func (c *CLI) engine(ctx context.Context) (*lang.Engine, error) {
	engine, err := lang.New(
		lang.WithTokens(c.Token.tokens()),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return nil, err
	}

	docs := make([]*bind.Document, 0, len(c.Bind))

	for _, path := range c.Bind {
		doc, err := bind.LoadFile(ctx, path)
		if err != nil {
			return nil, cmd.ErrBindings.Wrap(err).With(slog.String("file", path))
		}

		docs = append(docs, doc)
	}

	if len(docs) > 0 {
		if err := bind.Merge(docs...).Apply(ctx, engine); err != nil {
			return nil, cmd.ErrBindings.Wrap(err)
		}
	}

	return engine, nil
}
