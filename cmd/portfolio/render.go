package main

import (
	"fmt"

	"github.com/marcosnunesmbs/portfolio/internal/config"
	"github.com/marcosnunesmbs/portfolio/internal/content"
	"github.com/marcosnunesmbs/portfolio/internal/render"
	"github.com/spf13/cobra"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the portfolio page",
		Long: `Render builds the portfolio page and writes it as static HTML.

One element is appended per certification, skill and project to the
certifications-container, skills-container and projects-container elements of
the template, in list order. A container missing from the template is skipped.

Examples:
  # Render the built-in lists and template to public/index.html
  portfolio render

  # Use your own lists and template
  portfolio render --data me.yaml --template index.html -o dist/index.html`,
		Args: cobra.NoArgs,
		RunE: runRenderCmd,
	}

	addSiteFlags(cmd)
	cmd.Flags().StringP("output", "o", config.DefaultSiteOutput, "Output HTML file")

	return cmd
}

// addSiteFlags registers the flags shared by render and serve.
func addSiteFlags(cmd *cobra.Command) {
	cmd.Flags().String("data", "", "YAML file with certifications, skills and projects (default: built-in lists)")
	cmd.Flags().String("template", "", "HTML page template (default: built-in page)")
}

// runRenderCmd executes the render command.
func runRenderCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyStringFlags(cmd, map[string]*string{
		"data":     &cfg.DataFile,
		"template": &cfg.TemplateFile,
		"output":   &cfg.SiteOutput,
	}); err != nil {
		return err
	}
	if cfg.SiteOutput == "" {
		return fmt.Errorf("configuration error: %w", config.ErrNoSiteOutput)
	}

	logger := setupLogger(cmd)

	p, err := content.Load(cfg.DataFile)
	if err != nil {
		return err
	}

	tmpl, err := render.OpenTemplate(cfg.TemplateFile)
	if err != nil {
		return err
	}
	defer tmpl.Close()

	res, err := render.WriteFile(cfg.SiteOutput, tmpl, p)
	if err != nil {
		return err
	}
	for _, id := range res.Skipped {
		logger.Warn("container not found in template, skipped", "id", id)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d certifications, %d skills and %d projects to %s\n",
		res.Certifications, res.Skills, res.Projects, cfg.SiteOutput)
	return nil
}
