package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/marcosnunesmbs/portfolio/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed data/portfolio.yaml
var defaultData []byte

// Default returns the embedded portfolio lists.
// Every call returns a fresh copy.
func Default() (*model.Portfolio, error) {
	p, err := Decode(bytes.NewReader(defaultData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedded portfolio: %w", err)
	}
	return p, nil
}

// Load reads the portfolio lists from a YAML file.
// An empty path returns Default.
func Load(path string) (*model.Portfolio, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path) //nolint:gosec // User-provided data path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open portfolio data: %w", err)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio data %s: %w", path, err)
	}
	return p, nil
}

// Decode parses portfolio lists from YAML.
// Unknown keys are rejected so that typos in field names do not silently
// drop values.
func Decode(r io.Reader) (*model.Portfolio, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p model.Portfolio
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyPortfolio
		}
		return nil, err
	}
	if p.Len() == 0 {
		return nil, ErrEmptyPortfolio
	}
	return &p, nil
}
