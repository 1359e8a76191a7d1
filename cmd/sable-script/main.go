// Command sable-script renders script templates from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/sablebot/scripting/metrics"
	"github.com/sablebot/scripting/script"
	"github.com/sablebot/scripting/tags"
	"github.com/sablebot/scripting/tagscript"
)

var app = cli.Command{
	Name:  "sable-script",
	Usage: "Chat script template renderer",

	Flags: []cli.Flag{
		&flagLog,
		&flagLogFormat,
	},
	Commands: []*cli.Command{
		{
			Name:      "render",
			Aliases:   []string{"format"},
			Usage:     "Render templates into message payloads",
			ArgsUsage: "[template files, or - for stdin]",
			Flags: []cli.Flag{
				&flagContext,
				&cli.BoolFlag{
					Name:  "text",
					Usage: "Print message content only, not the JSON payload",
				},
			},
			Action: cliRender,
		},
		{
			Name:      "eval",
			Aliases:   []string{"tagscript"},
			Usage:     "Evaluate a tag script",
			ArgsUsage: "script",
			Flags: []cli.Flag{
				&flagContext,
				&cli.IntFlag{
					Name:  "limit",
					Usage: "Maximum characters of block output",
				},
			},
			Action: cliEval,
		},
		{
			Name:  "tag",
			Usage: "Manage stored tags",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:       "db",
					Usage:      "SQLite database holding tags",
					Required:   true,
					Persistent: true,
				},
				&cli.StringFlag{
					Name:       "guild",
					Usage:      "Guild owning the tags",
					Value:      "default",
					Persistent: true,
				},
			},
			Commands: []*cli.Command{
				{
					Name:      "save",
					Usage:     "Save a tag's template from stdin or a file",
					ArgsUsage: "name [template file]",
					Action:    cliTagSave,
				},
				{
					Name:      "show",
					Usage:     "Print a tag's template",
					ArgsUsage: "name",
					Action:    cliTagShow,
				},
				{
					Name:      "run",
					Usage:     "Evaluate a stored tag and render the result",
					ArgsUsage: "name",
					Flags:     []cli.Flag{&flagContext},
					Action:    cliTagRun,
				},
				{
					Name:   "list",
					Usage:  "List tag names",
					Action: cliTagList,
				},
				{
					Name:      "delete",
					Usage:     "Delete a tag",
					ArgsUsage: "name",
					Action:    cliTagDelete,
				},
			},
		},
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		stop()
	}()
	err := app.Run(ctx, os.Args)
	if err != nil {
		fmt.Println(err)
	}
}

func cliRender(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	pairs, _, err := loadContext(cmd.String("context"))
	if err != nil {
		return err
	}
	m := newMetrics()
	text := cmd.Bool("text")
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	args := cmd.Args().Slice()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		group.Go(func() error {
			tpl, err := readTemplate(arg)
			if err != nil {
				return err
			}
			m.SubstituteCount.Observe(1)
			s := script.New(tpl, pairs...)
			if text {
				fmt.Println(s.Content())
				return nil
			}
			return printJSON(s.Data())
		})
	}
	return group.Wait()
}

func cliEval(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	if cmd.Args().Len() != 1 {
		return errors.New("eval takes exactly one script argument")
	}
	pairs, seed, err := loadContext(cmd.String("context"))
	if err != nil {
		return err
	}
	resp, err := evalScript(cmd.Args().First(), seed, int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	return printResponse(resp, pairs)
}

func cliTagSave(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	if cmd.Args().Len() < 1 {
		return errors.New("tag save needs a name")
	}
	name := cmd.Args().First()
	src := "-"
	if cmd.Args().Len() > 1 {
		src = cmd.Args().Get(1)
	}
	tpl, err := readTemplate(src)
	if err != nil {
		return err
	}
	db, err := openTags(ctx, cmd)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := tags.Save(ctx, db, cmd.String("guild"), name, tpl, os.Getenv("USER"), time.Now()); err != nil {
		return err
	}
	slog.InfoContext(ctx, "saved", slog.String("tag", name), slog.Int("len", len(tpl)))
	return nil
}

func cliTagShow(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	if cmd.Args().Len() != 1 {
		return errors.New("tag show needs a name")
	}
	db, err := openTags(ctx, cmd)
	if err != nil {
		return err
	}
	defer db.Close()
	tpl, _, err := lookup(ctx, db, cmd.String("guild"), cmd.Args().First())
	if err != nil {
		return err
	}
	fmt.Println(tpl)
	return nil
}

func cliTagRun(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	if cmd.Args().Len() != 1 {
		return errors.New("tag run needs a name")
	}
	pairs, seed, err := loadContext(cmd.String("context"))
	if err != nil {
		return err
	}
	db, err := openTags(ctx, cmd)
	if err != nil {
		return err
	}
	defer db.Close()
	tpl, _, err := lookup(ctx, db, cmd.String("guild"), cmd.Args().First())
	if err != nil {
		return err
	}
	resp, err := evalScript(tpl, seed, 0)
	if err != nil {
		return err
	}
	return printResponse(resp, pairs)
}

func cliTagList(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	db, err := openTags(ctx, cmd)
	if err != nil {
		return err
	}
	defer db.Close()
	names, err := tags.List(ctx, db, cmd.String("guild"))
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func cliTagDelete(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	if cmd.Args().Len() != 1 {
		return errors.New("tag delete needs a name")
	}
	db, err := openTags(ctx, cmd)
	if err != nil {
		return err
	}
	defer db.Close()
	return tags.Delete(ctx, db, cmd.String("guild"), cmd.Args().First())
}

// openTags opens the tags database named by the command's db flag and
// ensures the schema exists.
func openTags(ctx context.Context, cmd *cli.Command) (*sqlitex.Pool, error) {
	db, err := sqlitex.NewPool(cmd.String("db"), sqlitex.PoolOptions{PoolSize: runtime.GOMAXPROCS(0)})
	if err != nil {
		return nil, fmt.Errorf("couldn't open tags db: %w", err)
	}
	if err := tags.Init(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func lookup(ctx context.Context, db *sqlitex.Pool, guild, name string) (string, time.Time, error) {
	m := newMetrics()
	start := time.Now()
	tpl, tm, err := tags.Lookup(ctx, db, guild, name)
	m.TagLookupLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", time.Time{}, err
	}
	if tpl == "" {
		return "", time.Time{}, fmt.Errorf("no tag named %s", name)
	}
	return tpl, tm, nil
}

func readTemplate(name string) (string, error) {
	if name == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("couldn't read template from stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("couldn't read template: %w", err)
	}
	return string(b), nil
}

var (
	flagContext = cli.StringFlag{
		Name:  "context",
		Usage: "TOML file defining the user, channel, and guild context",
		Action: func(ctx context.Context, cmd *cli.Command, s string) error {
			i, err := os.Stat(s)
			if err != nil {
				return err
			}
			if !i.Mode().IsRegular() {
				return errors.New("context must be a regular file")
			}
			return nil
		},
	}

	flagLog = cli.StringFlag{
		Name:       "log",
		Usage:      "Logging level, one of debug, info, warn, error",
		Value:      "info",
		Persistent: true,
		Action: func(ctx context.Context, c *cli.Command, s string) error {
			var l slog.Level
			return l.UnmarshalText([]byte(s))
		},
	}

	flagLogFormat = cli.StringFlag{
		Name:       "log-format",
		Usage:      "Logging format, either text or json",
		Value:      "text",
		Persistent: true,
		Action: func(ctx context.Context, c *cli.Command, s string) error {
			switch strings.ToLower(s) {
			case "text", "json":
				return nil
			default:
				return errors.New("unknown logging format")
			}
		},
	}
)

func loggerFromFlags(cmd *cli.Command) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(cmd.String("log"))); err != nil {
		panic(err)
	}
	var h slog.Handler
	switch strings.ToLower(cmd.String("log-format")) {
	case "text":
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	case "json":
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	}
	return slog.New(h)
}

// metrics configuration
func newMetrics() *metrics.Metrics {
	return &metrics.Metrics{
		RendersCount: metrics.NewPromCounter(
			prometheus.NewCounter(
				prometheus.CounterOpts{
					Namespace: "sable",
					Subsystem: "script",
					Name:      "renders",
					Help:      "Number of tag script evaluations.",
				},
			),
		),
		BlocksCount: metrics.NewPromCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sable",
					Subsystem: "script",
					Name:      "blocks",
					Help:      "Number of blocks evaluated, by declaration.",
				},
				[]string{"block"},
			),
		),
		WorkloadsCount: metrics.NewPromCounter(
			prometheus.NewCounter(
				prometheus.CounterOpts{
					Namespace: "sable",
					Subsystem: "script",
					Name:      "workloads_exceeded",
					Help:      "Number of evaluations halted by the output limit.",
				},
			),
		),
		RenderLatency: metrics.NewPromHistogram(
			prometheus.NewHistogram(
				prometheus.HistogramOpts{
					Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1},
					Namespace: "sable",
					Subsystem: "script",
					Name:      "render_latency",
					Help:      "How long one tag script evaluation takes in seconds.",
				},
			),
		),
		SubstituteCount: metrics.NewPromCounter(
			prometheus.NewCounter(
				prometheus.CounterOpts{
					Namespace: "sable",
					Subsystem: "script",
					Name:      "substitutions",
					Help:      "Number of variable substitution passes.",
				},
			),
		),
		TagLookupLatency: metrics.NewPromHistogram(
			prometheus.NewHistogram(
				prometheus.HistogramOpts{
					Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1},
					Namespace: "sable",
					Subsystem: "tags",
					Name:      "lookup_latency",
					Help:      "How long a tag lookup takes in seconds.",
				},
			),
		),
	}
}

// evalScript runs the tag script interpreter over src.
func evalScript(src string, seed map[string]string, limit int) (*tagscript.Response, error) {
	in := tagscript.Default()
	in.CharLimit = limit
	in.Metrics = newMetrics()
	return in.Process(src, seed)
}
