package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/marcosnunesmbs/portfolio/internal/trace"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".portfolio.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .portfolio.yaml configuration file.
type File struct {
	Trace TraceSection `yaml:"trace"`
	Site  SiteSection  `yaml:"site"`
}

// TraceSection configures the trace comparator.
type TraceSection struct {
	Before      string       `yaml:"before,omitempty"`
	After       string       `yaml:"after,omitempty"`
	Output      string       `yaml:"output,omitempty"`
	Concurrency int          `yaml:"concurrency,omitempty" validate:"omitempty,min=1,max=64"`
	Pairs       []trace.Pair `yaml:"pairs,omitempty" validate:"dive"`
}

// SiteSection configures the page renderer and the site server.
type SiteSection struct {
	Data     string `yaml:"data,omitempty"`
	Template string `yaml:"template,omitempty"`
	Output   string `yaml:"output,omitempty"`
	Assets   string `yaml:"assets,omitempty"`
	Addr     string `yaml:"addr,omitempty" validate:"omitempty,hostname_port"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints of the configuration file.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid configuration file: %w", err)
	}
	return nil
}

// LoadConfigFile loads and validates the configuration file at path.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cf.Validate(); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .portfolio.yaml in the current directory
// 3. Look for .portfolio.yaml in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
