package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/kazz187/pmgraph/internal/config"
	"github.com/kazz187/pmgraph/internal/report"
	"github.com/kazz187/pmgraph/pkg/cerr"
	"github.com/kazz187/pmgraph/pkg/clog"
	"github.com/kazz187/pmgraph/pkg/color"
	"github.com/kazz187/pmgraph/pkg/panicerr"
	"github.com/kazz187/pmgraph/pkg/storage"
)

type cli struct {
	app *kingpin.Application

	root      *string
	corpusDir *string
	color     *string
	ascii     *bool
	logLevel  *string

	statusCmd     *kingpin.CmdClause
	standupCmd    *kingpin.CmdClause
	nextCmd       *kingpin.CmdClause
	blockedCmd    *kingpin.CmdClause
	inProgressCmd *kingpin.CmdClause

	epicListCmd    *kingpin.CmdClause
	epicShowCmd    *kingpin.CmdClause
	epicShowName   *string
	epicStatusCmd  *kingpin.CmdClause
	epicStatusName *string

	prdListCmd   *kingpin.CmdClause
	prdStatusCmd *kingpin.CmdClause

	searchCmd   *kingpin.CmdClause
	searchQuery *string

	validateCmd *kingpin.CmdClause
	watchCmd    *kingpin.CmdClause
}

func newCLI() *cli {
	c := &cli{app: kingpin.New("pmgraph", "Reports on a PRD, epic and task markdown corpus")}

	c.root = c.app.Flag("root", "Project directory holding the corpus directory").String()
	c.corpusDir = c.app.Flag("corpus-dir", "Name of the corpus directory inside the project").String()
	c.color = c.app.Flag("color", "Colour output: auto, always or never").Enum("auto", "always", "never")
	c.ascii = c.app.Flag("ascii", "Replace emoji with ASCII tags").Bool()
	c.logLevel = c.app.Flag("log-level", "Log level: debug, info, warn or error").String()

	c.statusCmd = c.app.Command("status", "Show the project dashboard").Default()
	c.standupCmd = c.app.Command("standup", "Show the daily standup report")
	c.nextCmd = c.app.Command("next", "List tasks that are ready to start")
	c.blockedCmd = c.app.Command("blocked", "List blocked tasks")
	c.inProgressCmd = c.app.Command("in-progress", "List work in progress and active epics")

	c.epicListCmd = c.app.Command("epic-list", "List epics by status")
	c.epicShowCmd = c.app.Command("epic-show", "Show an epic and its tasks")
	c.epicShowName = c.epicShowCmd.Arg("name", "Epic name").String()
	c.epicStatusCmd = c.app.Command("epic-status", "Show the progress of an epic")
	c.epicStatusName = c.epicStatusCmd.Arg("name", "Epic name").String()

	c.prdListCmd = c.app.Command("prd-list", "List PRDs by status")
	c.prdStatusCmd = c.app.Command("prd-status", "Show the PRD status report")

	c.searchCmd = c.app.Command("search", "Search the corpus")
	c.searchQuery = c.searchCmd.Arg("query", "Text to search for; quote it when it contains spaces").String()

	c.validateCmd = c.app.Command("validate", "Check the corpus for structural problems")
	c.watchCmd = c.app.Command("watch", "Re-render the dashboard whenever the corpus changes")
	return c
}

// applyFlags overrides env values with the flags that were given.
func (c *cli) applyFlags(env *config.Env) {
	if *c.root != "" {
		env.Root = *c.root
	}
	if *c.corpusDir != "" {
		env.CorpusDir = *c.corpusDir
	}
	if *c.color != "" {
		env.Color = *c.color
	}
	if *c.ascii {
		env.ASCII = true
	}
	if *c.logLevel != "" {
		env.LogLevel = *c.logLevel
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := newCLI()
	c.app.UsageWriter(stderr)
	c.app.ErrorWriter(stderr)

	command, err := c.app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "pmgraph: error: %v, try --help\n", err)
		return cerr.InvalidArgument.ExitCode()
	}

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "pmgraph: %v\n", err)
		return cerr.InvalidArgument.ExitCode()
	}
	c.applyFlags(env)

	slog.SetDefault(clog.NewLogger(stderr, env.Env, env.SlogLevel(), env.Colored(isTerminal(stderr))))
	ctx = clog.ContextWithRun(ctx)
	clog.AddAttribute(ctx, "command", command)

	errOut := report.New(stderr, report.Options{Color: env.Colored(isTerminal(stderr)), ASCII: env.ASCII})

	store, root, err := openStorage(ctx, env)
	if err != nil {
		return fail(ctx, errOut, err)
	}
	clog.AddAttributes(ctx, map[string]any{
		"storage": env.StorageEnv.Type,
		"root":    root,
	})
	settings := config.LoadSettings(ctx, store)

	app := &application{
		store:    store,
		root:     root,
		settings: settings,
		out: report.New(stdout, report.Options{
			Color:         env.Colored(isTerminal(stdout)),
			ASCII:         env.ASCII,
			BarWidth:      settings.Progress.BarWidth,
			StandupWindow: time.Duration(settings.Standup.Window),
		}),
	}

	start := time.Now()
	err = panicerr.Run(ctx, func(ctx context.Context) error {
		return c.dispatch(ctx, app, command)
	})
	if err != nil {
		return fail(ctx, errOut, err)
	}
	slog.DebugContext(ctx, "command finished", "elapsed", time.Since(start).String())
	return 0
}

func (c *cli) dispatch(ctx context.Context, app *application, command string) error {
	switch command {
	case c.statusCmd.FullCommand():
		return app.status(ctx)
	case c.standupCmd.FullCommand():
		return app.standup(ctx)
	case c.nextCmd.FullCommand():
		return app.next(ctx)
	case c.blockedCmd.FullCommand():
		return app.blocked(ctx)
	case c.inProgressCmd.FullCommand():
		return app.inProgress(ctx)
	case c.epicListCmd.FullCommand():
		return app.epicList(ctx)
	case c.epicShowCmd.FullCommand():
		return app.epicShow(ctx, *c.epicShowName)
	case c.epicStatusCmd.FullCommand():
		return app.epicStatus(ctx, *c.epicStatusName)
	case c.prdListCmd.FullCommand():
		return app.prdList(ctx)
	case c.prdStatusCmd.FullCommand():
		return app.prdStatus(ctx)
	case c.searchCmd.FullCommand():
		return app.search(ctx, *c.searchQuery)
	case c.validateCmd.FullCommand():
		return app.validate(ctx)
	case c.watchCmd.FullCommand():
		return app.watch(ctx)
	default:
		return cerr.Usage(fmt.Sprintf("unknown command %q", command))
	}
}

func openStorage(ctx context.Context, env *config.Env) (storage.Storage, string, error) {
	switch env.StorageEnv.Type {
	case "s3":
		store, err := storage.NewS3Storage(ctx, env.StorageEnv.S3Bucket, env.StorageEnv.S3Prefix, env.StorageEnv.S3Region)
		if err != nil {
			return nil, "", cerr.NewError(cerr.Unavailable, "failed to create S3 storage", err)
		}
		return store, fmt.Sprintf("s3://%s/%s", env.StorageEnv.S3Bucket, env.StorageEnv.S3Prefix), nil
	case "local", "":
		root := env.CorpusPath()
		store, err := storage.NewLocalStorage(root)
		if err != nil {
			return nil, "", cerr.NewError(cerr.Unavailable, "failed to create local storage", err)
		}
		return store, root, nil
	default:
		return nil, "", cerr.Usage(fmt.Sprintf("unknown storage type %q", env.StorageEnv.Type))
	}
}

// fail reports err to the user and returns the matching exit code.
func fail(ctx context.Context, out *report.Renderer, err error) int {
	code := cerr.CodeOf(err)
	switch code {
	case cerr.InvalidArgument, cerr.NotFound:
		slog.DebugContext(ctx, "command rejected", "error", err)
	default:
		clog.AddError(ctx, err)
		slog.ErrorContext(ctx, "command failed", "error", err)
	}
	if werr := out.Error(cerr.Message(err)); werr != nil {
		slog.ErrorContext(ctx, "failed to write error", "error", werr)
	}
	return code.ExitCode()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && color.Supported(f)
}
