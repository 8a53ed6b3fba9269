package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/leli/internal/config"
	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
	"git.home.luguber.info/inful/leli/internal/logfields"
	"git.home.luguber.info/inful/leli/internal/metrics"
	"git.home.luguber.info/inful/leli/internal/render"
	"git.home.luguber.info/inful/leli/internal/version"
)

// Global carries state shared by all subcommands once flags are parsed.
type Global struct {
	Logger   *slog.Logger
	Config   *config.Config
	Recorder *metrics.PrometheusRecorder
	RunID    string
	// Out receives user-facing progress lines.
	Out io.Writer
	// LogOut receives log records; stderr when nil.
	LogOut io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (optional)" default:"leli.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	MetricsFile string           `help:"Write Prometheus metrics to this textfile after the run" type:"path"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Extract   ExtractCmd   `cmd:"" help:"Extract code blocks from Markdown into source files"`
	Translate TranslateCmd `cmd:"" help:"Render a folder of Markdown into standalone HTML"`
	Save      SaveCmd      `cmd:"" help:"Record generated HTML paths in the database"`
	Watch     WatchCmd     `cmd:"" help:"Extract a folder and keep it in sync on changes"`
	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; load configuration and set up logging once.
func (c *CLI) AfterApply(g *Global) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if env := os.Getenv(config.EnvLogLevel); env != "" {
		level = config.NormalizeLogLevel(env)
	}
	if c.Verbose {
		level = config.LogLevelDebug
	}

	w := g.LogOut
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level.Slog()}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if cfg.Logging.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	}

	g.RunID = uuid.NewString()
	g.Logger = slog.New(handler).With(logfields.RunID(g.RunID))
	slog.SetDefault(g.Logger)
	g.Config = cfg
	g.Recorder = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
	if g.Out == nil {
		g.Out = os.Stdout
	}
	return nil
}

// NewParser builds the kong parser for cli. Options are appended to the
// defaults, so tests can override kong.Exit and kong.Writers.
func NewParser(cli *CLI, g *Global, opts ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name("leli"),
		kong.Description("Literate programming helper: extract code from Markdown and render it as HTML."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(g, cli),
	}
	return kong.New(cli, append(base, opts...)...)
}

// Execute parses args and runs the selected command. The parsed CLI is
// returned so the caller can honor --verbose when reporting err.
func Execute(ctx context.Context, args []string, g *Global, opts ...kong.Option) (*CLI, error) {
	cli := &CLI{}
	if g == nil {
		g = &Global{}
	}
	parser, err := NewParser(cli, g, opts...)
	if err != nil {
		return cli, ferrors.WrapError(err, ferrors.CategoryInternal, "build command line parser").Build()
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		if ferrors.IsClassified(err) {
			return cli, err
		}
		return cli, ferrors.WrapError(err, ferrors.CategoryValidation, err.Error()).Build()
	}
	kctx.BindTo(ctx, (*context.Context)(nil))

	start := time.Now()
	err = kctx.Run()
	finishRun(g, cli, kctx.Command(), time.Since(start), err)
	return cli, err
}

func finishRun(g *Global, cli *CLI, command string, d time.Duration, err error) {
	if g.Recorder == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	g.Recorder.ObserveRunDuration(command, d)
	g.Recorder.IncRunOutcome(command, result)
	slog.Debug("Command finished", slog.String("command", command), logfields.Outcome(result), logfields.DurationMS(float64(d.Milliseconds())))

	if cli.MetricsFile == "" {
		return
	}
	if werr := g.Recorder.WriteTextfile(cli.MetricsFile); werr != nil {
		slog.Warn("Failed to write metrics", logfields.Path(cli.MetricsFile), logfields.Error(werr))
	}
}

// firstNonEmpty returns the first non-empty value; flags come before config.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// newRenderer returns the renderer for engine.
func newRenderer(engine config.Engine, converter string) render.DocumentRenderer {
	if engine == config.EngineGoldmark {
		return render.NewGoldmarkRenderer()
	}
	return &render.PandocRenderer{Binary: converter}
}

// resolveEngine applies a --engine flag over the configured engine.
func resolveEngine(flag string, cfg *config.Config) (config.Engine, error) {
	if flag == "" {
		return cfg.Translate.Engine, nil
	}
	engine, err := config.ParseEngine(flag)
	if err != nil {
		return "", ferrors.ValidationError(fmt.Sprintf("unknown engine %q", flag)).WithCause(err).Build()
	}
	return engine, nil
}

func scriptFrom(flag string, cfg *config.Config) render.Script {
	return render.Script{
		LocalPath: firstNonEmpty(flag, cfg.Translate.Script),
		URL:       cfg.Translate.ScriptURL,
	}
}
