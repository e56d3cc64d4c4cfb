package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/greeenboii/greeenboii"
	"github.com/greeenboii/greeenboii/color"
	"github.com/greeenboii/greeenboii/exec"
	"github.com/greeenboii/greeenboii/goquery"
	"github.com/greeenboii/greeenboii/htmltomarkdown"
	ghttp "github.com/greeenboii/greeenboii/http"
	"github.com/greeenboii/greeenboii/libsql"
	"github.com/greeenboii/greeenboii/rod"
	"github.com/greeenboii/greeenboii/search"
	gslog "github.com/greeenboii/greeenboii/slog"
	"github.com/greeenboii/greeenboii/sqlite"
	"github.com/greeenboii/greeenboii/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Turso credentials usually live in a .env file next to the project.
	_ = godotenv.Load()

	m := NewMain()
	m.Stdin = os.Stdin

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin is read by interactive prompts. Nil reads nothing.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	TaskService    greeenboii.TaskService
	HistoryService greeenboii.HistoryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("greeenboii"),
		kong.Description("Search the web, keep to-dos and gists, and scaffold projects."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := kongCtx.Command()
	cmd := "menu"
	if fields := strings.Fields(command); len(fields) > 0 {
		cmd = fields[0]
	}

	deps.Logger = newLogger(stderr, cli.Debug)

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	switch cmd {
	case "menu", "search", "todo", "history":
		if err := m.openDB(stderr); err != nil {
			return err
		}
		defer m.Close()

		m.TaskService = sqlite.NewTaskService(m.DB)
		m.HistoryService = sqlite.NewHistoryService(m.DB)
		deps.Tasks = m.TaskService
		deps.History = m.HistoryService
	}

	switch cmd {
	case "menu", "search":
		flags := &cli.Search.SearchFlags
		if cmd == "menu" {
			flags = &cli.Menu.SearchFlags
		}

		fetcher, err := newFetcher(flags.Browser, flags.Timeout, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		// One searcher per process, so the menu's repeated searches share
		// the per-host rate limiter.
		searcher, err := newSearcher(flags, fetcher, deps.Logger)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", greeenboii.ErrorMessage(err))
			return err
		}
		deps.Searcher = searcher

		reporter := color.NewReporter(stdout)
		reporter.Verbose = flags.Verbose
		deps.Reporter = reporter

	case "gist":
		client, err := libsql.NewClient(cli.TursoURL, cli.TursoToken)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Set TURSO_DATABASE_URL and TURSO_AUTH_TOKEN, or add them to .env")
			return err
		}
		deps.Gists = libsql.NewGistService(client)

		if strings.HasPrefix(command, "gist clip") {
			fetcher, err := newFetcher(cli.Gist.Clip.Browser, cli.Gist.Clip.Timeout, stderr)
			if err != nil {
				return err
			}
			defer fetcher.Close()

			deps.Fetcher = gslog.NewLoggingFetcher(fetcher, deps.Logger)
			deps.Extractor = trafilatura.NewExtractor()
			deps.Converter = htmltomarkdown.NewConverter()
		}

	case "new":
		deps.Scaffolder = exec.NewScaffolder(&exec.CommandRunner{Stdout: stdout, Stderr: stderr})
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(stderr io.Writer) error {
	if dir := filepath.Dir(m.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(stderr, "Hint: Set GREEENBOII_DB to use a different database path\n")
			return fmt.Errorf("failed to create database directory %q: %w", dir, err)
		}
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set GREEENBOII_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	return nil
}

// newLogger writes structured logs to stderr. Only warnings are shown unless
// debug is set.
func newLogger(stderr io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// newFetcher returns the plain HTTP fetcher, or a headless browser when
// browser is set.
func newFetcher(browser bool, timeout time.Duration, stderr io.Writer) (greeenboii.Fetcher, error) {
	if !browser {
		return ghttp.NewFetcher(ghttp.WithTimeout(timeout)), nil
	}

	fetcher, err := rod.NewFetcher()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return fetcher, nil
}

// newSearcher wires the search coordinator for the selected engines.
func newSearcher(c *SearchFlags, fetcher greeenboii.Fetcher, logger *slog.Logger) (greeenboii.Searcher, error) {
	engines, err := greeenboii.SelectEngines(greeenboii.DefaultEngines(), c.Engine)
	if err != nil {
		return nil, err
	}

	for _, engine := range engines {
		if err := engine.Validate(); err != nil {
			return nil, err
		}
	}
	extractor := goquery.NewExtractor(engines)

	coordinator := &search.Coordinator{
		Engines:     engines,
		URLs:        greeenboii.NewURLBuilder(engines, greeenboii.RandomTokens{}),
		Fetcher:     gslog.NewLoggingFetcher(fetcher, logger),
		Extractor:   gslog.NewLoggingLinkExtractor(extractor, logger),
		RateLimiter: search.NewDomainLimiter(searchRate),
		Timeout:     c.Timeout,
		Delay:       c.Delay,
	}
	return gslog.NewLoggingSearcher(coordinator, logger), nil
}

// searchRate is the request rate per engine host, in requests per second.
const searchRate = 1.0

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "greeenboii.db"
	}
	return filepath.Join(home, ".greeenboii", "greeenboii.db")
}
