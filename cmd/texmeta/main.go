package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/texmeta"
	"github.com/fwojciec/texmeta/htmltomarkdown"
	"github.com/fwojciec/texmeta/lsstdoc"
	texslog "github.com/fwojciec/texmeta/slog"
	"github.com/fwojciec/texmeta/sqlite"
	"github.com/fwojciec/texmeta/tex"
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
	DocumentService texmeta.DocumentService
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
		db := m.DB
		m.DB = nil
		return db.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("texmeta"),
		kong.Description("Extract catalog metadata from LaTeX documents"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'texmeta --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	cfg := lsstdoc.DefaultConfig()
	if cli.Config != "" {
		if cfg, err = lsstdoc.LoadConfig(cli.Config); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", texmeta.ErrorMessage(err))
			return err
		}
	}

	// Extraction pipeline, with logging decorators when verbose
	var normalizer texmeta.Normalizer = tex.NewNormalizer()
	if deps.Logger != nil {
		normalizer = texslog.NewLoggingNormalizer(normalizer, deps.Logger)
	}
	deps.Normalizer = normalizer
	deps.Parser = lsstdoc.NewParser(lsstdoc.NewRenderer(cfg), htmltomarkdown.NewConverter())

	var extractor texmeta.Extractor = lsstdoc.NewExtractor(deps.Normalizer, deps.Parser)
	if deps.Logger != nil {
		extractor = texslog.NewLoggingExtractor(extractor, deps.Logger)
	}
	deps.Extractor = extractor

	// Only catalog commands need the database
	if kongCtx.Selected() != nil && kongCtx.Selected().Name != "parse" {
		if err := m.openCatalog(deps, stderr); err != nil {
			return err
		}
		defer m.Close()
	}

	return kongCtx.Run(deps)
}

func (m *Main) openCatalog(deps *Dependencies, stderr io.Writer) error {
	// An injected service is used as is. Otherwise the catalog is opened for
	// this run only; Run closes it on return.
	svc := m.DocumentService
	if svc == nil {
		if dir := filepath.Dir(m.DBPath); dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set TEXMETA_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		svc = sqlite.NewDocumentService(m.DB)
	}

	deps.Documents = svc
	if deps.Logger != nil {
		deps.Documents = texslog.NewLoggingDocumentService(deps.Documents, deps.Logger)
	}
	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("TEXMETA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "texmeta.db"
	}
	return filepath.Join(home, ".texmeta", "texmeta.db")
}
