package main

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/marcosnunesmbs/portfolio/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/portfolio.yaml
var configTemplateText string

var configTemplate = template.Must(template.New("portfolio.yaml").
	Funcs(template.FuncMap{"quote": strconv.Quote}).
	Parse(configTemplateText))

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

// initValues are the settings written into a new configuration file.
type initValues struct {
	Before string
	After  string
	Addr   string
}

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new portfolio configuration file",
		Long: `Initialize creates a new .portfolio.yaml configuration file in the current directory.

The generated file includes:
- The trace paths compared by default and the analysis output
- A commented example of batch trace pairs
- The page data, template, output and server settings

The file is checked the same way 'portfolio' loads it before it replaces
anything on disk.

Examples:
  # Create .portfolio.yaml in current directory
  portfolio init

  # Seed the traces compared by 'portfolio compare'
  portfolio init --before traces/old.json --after traces/new.json

  # Create config file at a specific path, overwriting it
  portfolio init -o myconfig.yaml -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName, "Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().String("before", config.DefaultBeforeTrace, "Trace written as trace.before")
	cmd.Flags().String("after", config.DefaultAfterTrace, "Trace written as trace.after")
	cmd.Flags().String("addr", config.DefaultServerAddr, "Listen address written as site.addr")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	var vals initValues
	for name, dst := range map[string]*string{"before": &vals.Before, "after": &vals.After, "addr": &vals.Addr} {
		if *dst, err = cmd.Flags().GetString(name); err != nil {
			return err
		}
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, vals); err != nil {
		return fmt.Errorf("failed to render config template: %w", err)
	}

	cf, err := writeConfigFile(outputPath, buf.Bytes())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintf(out, "  trace.before: %s\n", cf.Trace.Before)
	fmt.Fprintf(out, "  trace.after:  %s\n", cf.Trace.After)
	fmt.Fprintf(out, "  site.output:  %s\n", cf.Site.Output)
	fmt.Fprintf(out, "  site.addr:    %s\n", cf.Site.Addr)
	fmt.Fprintln(out, "\nEdit this file to add batch trace pairs or a custom data file and template.")

	return nil
}

// writeConfigFile writes content next to path, loads it back with
// config.LoadConfigFile and only then renames it over path. A file that fails
// to load leaves path untouched.
func writeConfigFile(path string, content []byte) (*config.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".portfolio-*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to write configuration file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, werr := tmp.Write(content)
	if err := errors.Join(werr, tmp.Close()); err != nil {
		return nil, fmt.Errorf("failed to write configuration file: %w", err)
	}

	cf, err := config.LoadConfigFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("generated configuration is invalid: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return nil, fmt.Errorf("failed to write configuration file: %w", err)
	}
	return cf, nil
}
