// javadoc2html generates HTML documentation pages from the documentation
// comments of Java source files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/phobologic/javadoc2html/internal/config"
	"github.com/phobologic/javadoc2html/internal/discover"
	"github.com/phobologic/javadoc2html/internal/site"
	"github.com/phobologic/javadoc2html/internal/watch"
)

var version = "dev"

// errNoOutput is returned when none of the given paths could be documented.
var errNoOutput = errors.New("no documentation generated")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the command-line flags. Only flags set explicitly override
// the loaded configuration.
type options struct {
	configFile   string
	verbose      bool
	logFormat    string
	output       string
	project      string
	include      []string
	exclude      []string
	bodyTracking string
	onMalformed  string
	maxFileSize  int64
	skipTests    bool
	check        bool
	watch        bool
	showVersion  bool
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "javadoc2html [flags] [path...]",
		Short: "Generate HTML documentation from Java source comments",
		Long: `javadoc2html reads the documentation comments of Java source files and
writes one HTML page per file plus a project index.

Each path is a project root directory or a single .java file and defaults to
the current directory. Pages are written to <root>/<project>_html_doc unless
configured otherwise in .javadoc2html.yaml, JAVADOC2HTML_* variables or flags.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.showVersion {
				_, _ = fmt.Fprintf(stdout, "javadoc2html %s\n", version)
				return nil
			}
			if len(args) == 0 {
				args = []string{"."}
			}
			return generate(cmd.Context(), args, o, cmd.Flags(), stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configFile, "config", "", "config file (default: <root>/"+config.FileName+")")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&o.logFormat, "log-format", "", "log format: console or json")
	addParseFlags(pf, o)

	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "", "output directory")
	f.StringVarP(&o.project, "project", "p", "", "project name (default: base name of the root)")
	f.StringSliceVar(&o.include, "include", nil, "glob patterns of sources to include")
	f.StringSliceVar(&o.exclude, "exclude", nil, "glob patterns of sources to exclude")
	f.Int64Var(&o.maxFileSize, "max-file-size", config.DefaultMaxFileSize, "skip files larger than this many bytes")
	f.BoolVar(&o.skipTests, "skip-tests", false, "skip test sources")
	f.BoolVar(&o.check, "check", false, "report stale pages as diffs instead of writing them")
	f.BoolVar(&o.watch, "watch", false, "regenerate when sources change")
	f.BoolVarP(&o.showVersion, "version", "V", false, "show version and exit")

	cmd.AddCommand(newParseCmd(o, stdout, stderr))
	cmd.AddCommand(newInitCmd(stdout, stderr))
	return cmd
}

// addParseFlags registers the parser flags shared by the root and parse
// commands.
func addParseFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVar(&o.bodyTracking, "body-tracking", "", "declaration body tracking: presence or depth")
	fs.StringVar(&o.onMalformed, "on-malformed", "", "malformed declaration policy: abort or skip")
}

// generate documents every path and, in watch mode, keeps regenerating
// them until interrupted.
func generate(ctx context.Context, paths []string, o *options, flags *pflag.FlagSet, stdout, stderr io.Writer) error {
	boot := newLogger(stderr, config.LogConfig{Level: "info", Format: o.logFormat}, o.verbose)

	var (
		projects []*project
		drift    int
	)
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			boot.Warn().Err(err).Str("path", path).Msg("skipping path")
			continue
		}
		p, err := newProject(path, o, flags, stderr)
		if err != nil {
			boot.Error().Err(err).Str("path", path).Msg("skipping path")
			continue
		}
		res, err := p.generate(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			p.logger.Error().Err(err).Str("path", path).Msg("generation failed")
			continue
		}
		for _, d := range res.Drift {
			_, _ = fmt.Fprint(stdout, d.Diff)
		}
		drift += len(res.Drift)
		projects = append(projects, p)
	}

	if len(projects) == 0 {
		return errNoOutput
	}
	if o.check {
		if drift > 0 {
			return fmt.Errorf("%d page(s) out of date", drift)
		}
		return nil
	}
	if o.watch {
		return watchProjects(ctx, projects, boot)
	}
	return nil
}

// project is one documented path with its resolved configuration.
type project struct {
	path   string
	root   string
	logger zerolog.Logger
	gen    *site.Generator
}

func newProject(path string, o *options, flags *pflag.FlagSet, stderr io.Writer) (*project, error) {
	root, err := discover.Root(path)
	if err != nil {
		return nil, err
	}
	cfg, err := config.NewLoader(root, o.configFile).Load()
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, o, flags, root); err != nil {
		return nil, err
	}

	logger := newLogger(stderr, cfg.Log, o.verbose)
	return &project{
		path:   path,
		root:   root,
		logger: logger,
		gen:    site.NewGenerator(cfg, logger, o.check),
	}, nil
}

func (p *project) generate(ctx context.Context) (*site.Result, error) {
	return p.gen.Run(ctx, p.path)
}

// applyFlags overrides cfg with the flags set on the command line and
// validates the result.
func applyFlags(cfg *config.Config, o *options, flags *pflag.FlagSet, root string) error {
	if flags.Changed("project") {
		cfg.Project = o.project
		if !flags.Changed("output") {
			cfg.Output = config.DefaultOutput(root, cfg.Project)
		}
	}
	if flags.Changed("output") {
		out, err := filepath.Abs(o.output)
		if err != nil {
			return fmt.Errorf("resolving output: %w", err)
		}
		cfg.Output = out
	}
	if flags.Changed("include") {
		cfg.Include = o.include
	}
	if flags.Changed("exclude") {
		cfg.Exclude = o.exclude
	}
	if flags.Changed("max-file-size") {
		cfg.MaxFileSize = o.maxFileSize
	}
	if flags.Changed("skip-tests") {
		cfg.SkipTests = o.skipTests
	}
	if flags.Changed("body-tracking") {
		cfg.Parse.BodyTracking = o.bodyTracking
	}
	if flags.Changed("on-malformed") {
		cfg.Parse.OnMalformed = o.onMalformed
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// newLogger writes to w in the configured format. An unknown level falls
// back to info.
func newLogger(w io.Writer, lc config.LogConfig, verbose bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil || lc.Level == "" {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	out := w
	if lc.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// watchProjects regenerates each project when its sources change, until
// ctx is canceled or an interrupt arrives.
func watchProjects(ctx context.Context, projects []*project, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	watchers := make([]*watch.Watcher, 0, len(projects))
	for _, p := range projects {
		w, err := watch.New(p.root, watch.DefaultDebounce, p.logger)
		if err != nil {
			for _, started := range watchers {
				_ = started.Close()
			}
			return fmt.Errorf("watching %s: %w", p.root, err)
		}
		watchers = append(watchers, w)
	}

	logger.Info().Int("projects", len(projects)).Msg("watching for changes, press Ctrl-C to stop")

	var wg sync.WaitGroup
	errs := make([]error, len(projects))
	for i, p := range projects {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = watchers[i].Run(ctx, func(files []string) {
				p.logger.Info().Strs("changed", files).Msg("regenerating")
				if _, err := p.generate(ctx); err != nil && !errors.Is(err, context.Canceled) {
					p.logger.Error().Err(err).Msg("generation failed")
				}
			})
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}
