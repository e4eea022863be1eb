package config

import (
	"net"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/marcosnunesmbs/portfolio/internal/trace"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "portfolio"

	// DefaultBeforeTrace and DefaultAfterTrace are the traces compared when
	// no path is given on the command line or in the configuration file.
	DefaultBeforeTrace = "Trace-20260126T101209/Trace-20260126T101209.json"
	DefaultAfterTrace  = "Trace-20260126T122613/Trace-20260126T122613.json"

	// DefaultAnalysisFile receives the JSON summary. It is overwritten on every run.
	DefaultAnalysisFile = "analysis-data.json"

	// DefaultBatchConcurrency is the number of trace pairs compared at once.
	DefaultBatchConcurrency = trace.DefaultConcurrency

	// DefaultSiteOutput is where the rendered page is written.
	DefaultSiteOutput = "public/index.html"

	// DefaultAssetsDir is served under /assets/ by the site server.
	DefaultAssetsDir = "assets"

	// DefaultServerAddr is the listen address of the site server.
	DefaultServerAddr = ":8080"

	// DefaultShutdownTimeout bounds graceful shutdown of the site server.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultHistoryLimit is the number of comparisons listed by `history`.
	DefaultHistoryLimit = 20
)

// Config holds all configuration options.
// It is populated from defaults, the configuration file and CLI flags, in
// that order, and passed explicitly to the components that need it.
type Config struct {
	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the configuration file requested with --config.
	// If empty, .portfolio.yaml is searched in the current and home directories.
	ConfigFilePath string

	// BeforeTrace and AfterTrace are the compared trace files.
	BeforeTrace string
	AfterTrace  string

	// AnalysisFile receives the JSON summary.
	AnalysisFile string

	// MarkdownReport prints the comparison as Markdown instead of console lines.
	MarkdownReport bool

	// ExcelReport, when set, is the path of an additional .xlsx report.
	ExcelReport string

	// SaveHistory stores the comparison in the history database.
	SaveHistory bool

	// Batch compares every pair in Pairs instead of BeforeTrace/AfterTrace.
	Batch bool

	// Pairs are the trace pairs compared in batch mode.
	Pairs []trace.Pair

	// BatchConcurrency is the number of pairs compared at once.
	BatchConcurrency int

	// DataFile overrides the embedded portfolio lists. Empty uses the defaults.
	DataFile string

	// TemplateFile overrides the embedded page template. Empty uses the default.
	TemplateFile string

	// SiteOutput is where `render` writes the page.
	SiteOutput string

	// AssetsDir is served under /assets/ by `serve`.
	AssetsDir string

	// ServerAddr is the listen address of `serve`.
	ServerAddr string

	// Watch re-renders the page when the data file or template changes.
	Watch bool

	// DBDir is the directory of the history database.
	DBDir string
}

// NewConfig returns a Config populated with default values.
func NewConfig() *Config {
	return &Config{
		BeforeTrace:      DefaultBeforeTrace,
		AfterTrace:       DefaultAfterTrace,
		AnalysisFile:     DefaultAnalysisFile,
		BatchConcurrency: DefaultBatchConcurrency,
		SiteOutput:       DefaultSiteOutput,
		AssetsDir:        DefaultAssetsDir,
		ServerAddr:       DefaultServerAddr,
		DBDir:            XDGDataDir(),
	}
}

// ApplyFile copies every non-empty value of f into c.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	setIfNotEmpty(&c.BeforeTrace, f.Trace.Before)
	setIfNotEmpty(&c.AfterTrace, f.Trace.After)
	setIfNotEmpty(&c.AnalysisFile, f.Trace.Output)
	if f.Trace.Concurrency > 0 {
		c.BatchConcurrency = f.Trace.Concurrency
	}
	if len(f.Trace.Pairs) > 0 {
		c.Pairs = f.Trace.Pairs
	}

	setIfNotEmpty(&c.DataFile, f.Site.Data)
	setIfNotEmpty(&c.TemplateFile, f.Site.Template)
	setIfNotEmpty(&c.SiteOutput, f.Site.Output)
	setIfNotEmpty(&c.AssetsDir, f.Site.Assets)
	setIfNotEmpty(&c.ServerAddr, f.Site.Addr)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// XDGDataDir returns the XDG data directory for the application.
// On Linux: ~/.local/share/portfolio
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the application.
// On Linux: ~/.config/portfolio
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ValidateCompare checks the options used by the trace comparator.
// It returns the first problem found.
func (c *Config) ValidateCompare() error {
	if c.AnalysisFile == "" {
		return ErrNoAnalysisFile
	}

	if c.Batch {
		if len(c.Pairs) == 0 {
			return ErrNoPairs
		}
		if c.BatchConcurrency <= 0 {
			return ErrInvalidConcurrency
		}
		return nil
	}

	if c.BeforeTrace == "" || c.AfterTrace == "" {
		return ErrNoTracePaths
	}
	return nil
}

// ValidateSite checks the options used by `render` and `serve`.
func (c *Config) ValidateSite() error {
	if c.SiteOutput == "" {
		return ErrNoSiteOutput
	}
	if _, port, err := net.SplitHostPort(c.ServerAddr); err != nil || port == "" {
		return ErrInvalidServerAddr
	}
	return nil
}
