package server

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/marcosnunesmbs/portfolio/internal/content"
	"github.com/marcosnunesmbs/portfolio/internal/model"
	"github.com/marcosnunesmbs/portfolio/internal/render"
)

// DefaultDebounce is how long Watch waits for file events to settle.
const DefaultDebounce = 200 * time.Millisecond

// Page is an immutable rendered snapshot.
type Page struct {
	HTML       []byte
	Portfolio  *model.Portfolio
	Result     render.Result
	RenderedAt time.Time
}

// Site renders the portfolio page and keeps the latest result.
type Site struct {
	dataPath     string
	templatePath string
	debounce     time.Duration
	logger       *slog.Logger

	page    atomic.Pointer[Page]
	reloads atomic.Int64
}

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) {
		s.logger = logger
	}
}

// WithDebounce sets the settle delay used by Watch.
func WithDebounce(d time.Duration) Option {
	return func(s *Site) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// NewSite renders the page once and returns the Site.
// Empty paths use the embedded data and template.
func NewSite(dataPath, templatePath string, opts ...Option) (*Site, error) {
	s := &Site{
		dataPath:     dataPath,
		templatePath: templatePath,
		debounce:     DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the latest rendered page.
func (s *Site) Current() *Page {
	return s.page.Load()
}

// Reloads returns how many times the page has been rendered successfully.
func (s *Site) Reloads() int64 {
	return s.reloads.Load()
}

// Reload renders the page from the data file and template. On error the
// previous page stays in place.
func (s *Site) Reload() error {
	p, err := content.Load(s.dataPath)
	if err != nil {
		return err
	}

	tmpl, err := render.OpenTemplate(s.templatePath)
	if err != nil {
		return err
	}
	defer tmpl.Close()

	var buf bytes.Buffer
	res, err := render.Page(&buf, tmpl, p)
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	if len(res.Skipped) > 0 {
		s.logger.Warn("template lacks containers", "skipped", res.Skipped)
	}

	s.page.Store(&Page{
		HTML:       buf.Bytes(),
		Portfolio:  p,
		Result:     res,
		RenderedAt: time.Now().UTC(),
	})
	s.reloads.Add(1)

	s.logger.Debug("page rendered",
		"certifications", res.Certifications,
		"skills", res.Skills,
		"projects", res.Projects,
	)
	return nil
}
