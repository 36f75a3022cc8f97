package main

import (
	"context"
	"io"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/crawl"
	"github.com/fwojciec/docgraph/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Graphs    docgraph.GraphStore
	Pages     docgraph.PageService
	Sitemaps  docgraph.SitemapService
	Traverser *crawl.Traverser
	Writer    docgraph.GraphWriter
	Tokens    docgraph.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log service operations to stderr"`

	Crawl    CrawlCmd    `cmd:"" help:"Fetch a single documentation page"`
	Extend   ExtendCmd   `cmd:"" help:"Build a knowledge graph by traversing a documentation site"`
	Graph    GraphCmd    `cmd:"" help:"Show a stored knowledge graph"`
	List     ListCmd     `cmd:"" help:"List stored knowledge graphs"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored knowledge graph"`
	Discover DiscoverCmd `cmd:"" help:"List a site's URLs from its sitemap"`
	Export   ExportCmd   `cmd:"" help:"Export a stored graph to a JSON file"`
	Analyze  AnalyzeCmd  `cmd:"" help:"Print framework analysis instructions"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL       string `arg:"" help:"Page URL"`
	Mode      string `short:"m" default:"markdown" enum:"markdown,structured,links" help:"Extraction mode"`
	Fetcher   string `default:"http" enum:"http,browser,auto" help:"Fetch strategy (auto probes whether rendering is needed)"`
	Extractor string `default:"trafilatura" enum:"trafilatura,readability" help:"Content extraction backend"`
	NoCache   bool   `help:"Bypass the page cache"`
}

// ExtendCmd is the "extend" subcommand.
type ExtendCmd struct {
	Framework   string   `arg:"" help:"Framework name for the graph"`
	URL         string   `arg:"" help:"Documentation root URL"`
	Depth       int      `short:"d" default:"2" help:"Maximum link distance from the root"`
	Pattern     []string `short:"p" help:"Substring a link must contain to be followed (repeatable)"`
	Pages       int      `default:"50" help:"Maximum number of pages to fetch"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit per level"`
	Fetcher     string   `default:"http" enum:"http,browser,auto" help:"Fetch strategy (auto probes whether rendering is needed)"`
	Extractor   string   `default:"trafilatura" enum:"trafilatura,readability" help:"Content extraction backend"`
	NoCache     bool     `help:"Bypass the page cache"`
}

// GraphCmd is the "graph" subcommand.
type GraphCmd struct {
	Framework string `arg:"" help:"Framework name"`
	Context   bool   `help:"Render the graph as LLM-ready markdown instead of JSON"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Framework string `arg:"" help:"Framework name"`
	Force     bool   `help:"Confirm deletion"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL     string   `arg:"" help:"Site URL"`
	Filter  []string `short:"F" name:"filter" help:"Include URLs matching regex (repeatable)"`
	Exclude []string `short:"X" help:"Exclude URLs matching regex (repeatable)"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Framework string `arg:"" help:"Framework name"`
	Dir       string `short:"o" default:"." help:"Output directory"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Framework string `arg:"" help:"Framework name"`
	URL       string `arg:"" help:"Documentation root URL"`
}
