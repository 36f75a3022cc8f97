package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/crawl"
	"github.com/fwojciec/docgraph/gemini"
	"github.com/fwojciec/docgraph/goquery"
	"github.com/fwojciec/docgraph/htmltomarkdown"
	dochttp "github.com/fwojciec/docgraph/http"
	"github.com/fwojciec/docgraph/markdown"
	"github.com/fwojciec/docgraph/readability"
	"github.com/fwojciec/docgraph/rod"
	docslog "github.com/fwojciec/docgraph/slog"
	"github.com/fwojciec/docgraph/sqlite"
	"github.com/fwojciec/docgraph/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	GraphService docgraph.GraphStore
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docgraph"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docgraph --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCGRAPH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.GraphService = sqlite.NewGraphService(m.DB)
	deps.DB = m.DB
	deps.Graphs = m.GraphService
	deps.Sitemaps = dochttp.NewSitemapService(nil)
	if cli.Verbose {
		deps.Graphs = docslog.NewLoggingGraphStore(deps.Graphs, logger)
		deps.Sitemaps = docslog.NewLoggingSitemapService(deps.Sitemaps, logger)
	}

	// Wire the fetch pipeline for commands that retrieve pages
	switch cmd {
	case "crawl":
		closeFetchers, err := m.wirePages(ctx, deps, cli, logger, pageOptions{
			fetcher:   cli.Crawl.Fetcher,
			extractor: cli.Crawl.Extractor,
			probeURL:  cli.Crawl.URL,
			noCache:   cli.Crawl.NoCache,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: the browser fetcher needs Chrome or Chromium installed")
			return err
		}
		defer closeFetchers()

	case "extend":
		closeFetchers, err := m.wirePages(ctx, deps, cli, logger, pageOptions{
			fetcher:   cli.Extend.Fetcher,
			extractor: cli.Extend.Extractor,
			probeURL:  cli.Extend.URL,
			noCache:   cli.Extend.NoCache,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: the browser fetcher needs Chrome or Chromium installed")
			return err
		}
		defer closeFetchers()

		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.Tokens = tokenCounter

		deps.Traverser = &crawl.Traverser{
			Pages:       deps.Pages,
			RateLimiter: crawl.NewDomainLimiter(1.0),
			Store:       deps.Graphs,
			Concurrency: cli.Extend.Concurrency,
		}

	case "export":
		deps.Writer = newGraphWriter(cli.Export.Dir)
	}

	return kongCtx.Run(deps)
}

// pageOptions carries the per-command flags that shape the fetch pipeline.
type pageOptions struct {
	fetcher   string
	extractor string
	probeURL  string
	noCache   bool
}

// wirePages builds the page-fetching pipeline: fetcher, link selection,
// content extraction, markdown conversion, structured extraction, and the
// cache decorator. It returns a cleanup func that closes any fetchers it
// started.
func (m *Main) wirePages(ctx context.Context, deps *Dependencies, cli *CLI, logger *slog.Logger, opts pageOptions) (func(), error) {
	var fetchers []docgraph.Fetcher
	closeAll := func() {
		for _, f := range fetchers {
			f.Close()
		}
	}

	var extractor docgraph.Extractor = trafilatura.NewExtractor()
	if opts.extractor == "readability" {
		extractor = readability.NewExtractor()
	}

	var fetcher docgraph.Fetcher
	switch opts.fetcher {
	case "browser":
		rendered, err := rod.NewFetcher()
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetchers = append(fetchers, rendered)
		fetcher = rendered

	case "auto":
		plain := dochttp.NewFetcher()
		rendered, err := rod.NewFetcher()
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetchers = append(fetchers, plain, rendered)
		fetcher = crawl.ProbeFetcher(ctx, opts.probeURL, plain, rendered, extractor)

	default:
		plain := dochttp.NewFetcher()
		fetchers = append(fetchers, plain)
		fetcher = plain
	}

	if cli.Verbose {
		fetcher = docslog.NewLoggingFetcher(fetcher, logger)
	}

	structured, err := newStructuredExtractor(ctx)
	if err != nil {
		closeAll()
		return nil, err
	}

	deps.Pages = &crawl.Dispatcher{
		Fetcher:    fetcher,
		Links:      goquery.NewSelector(),
		Extractor:  extractor,
		Converter:  htmltomarkdown.NewConverter(),
		Structured: structured,
	}

	if !opts.noCache {
		cache, err := sqlite.NewPageCache(ctx, m.DB)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("failed to open page cache: %w", err)
		}
		deps.Pages = sqlite.NewCachingPageService(cache, deps.Pages)
	}

	if cli.Verbose {
		deps.Pages = docslog.NewLoggingPageService(deps.Pages, logger)
	}

	return closeAll, nil
}

// newStructuredExtractor picks the structured extraction backend: Gemini
// when an API key is configured, the markdown heuristics otherwise.
func newStructuredExtractor(ctx context.Context) (docgraph.StructuredExtractor, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return markdown.NewStructuredExtractor(), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return gemini.NewStructuredExtractor(client), nil
}

// tokenizerModel is used for token counting.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("DOCGRAPH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docgraph.db"
	}
	dir := filepath.Join(home, ".docgraph")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docgraph.db")
}
