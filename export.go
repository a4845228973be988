// api/export.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"edaboard/api/dashboard"
	"edaboard/api/render"
	"edaboard/api/utils"
)

type exportOptions struct {
	dashboard string
	format    string
	outDir    string
	timeout   time.Duration
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render one dashboard to files",
		Long: `Render one dashboard without starting the server.

--format png writes one <region>.png per drawn chart.
--format html writes <dashboard>.html with the interactive charts inlined.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !utils.IsValidExportFormat(opts.format) {
				return fmt.Errorf("invalid format %q: use png or html", opts.format)
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()
			return runExport(cmd.Context(), a, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.dashboard, "dashboard", "d", dashboard.Retail, "dashboard to export (retail or population)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "png", "output format (png or html)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "directory to write files into")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", time.Minute, "upper bound for the whole export")
	return cmd
}

func runExport(ctx context.Context, a *app, opts *exportOptions) error {
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	var renderer render.Renderer = &render.PNGRenderer{}
	if opts.format == "html" {
		renderer = &render.EChartsRenderer{AssetsHost: a.cfg.EChartsAssetsHost}
	}

	res, err := a.runner.Run(ctx, opts.dashboard, renderer)
	if err != nil {
		return err
	}

	var written []string
	if opts.format == "html" {
		path := filepath.Join(opts.outDir, res.Name+".html")
		if err := writePage(path, a.cfg.EChartsAssetsHost, res); err != nil {
			return err
		}
		written = append(written, path)
	} else {
		for _, d := range res.Surface.Drawings() {
			path := filepath.Join(opts.outDir, d.Region+".png")
			if err := os.WriteFile(path, d.Content, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			written = append(written, path)
		}
	}

	a.log.Info("Dashboard exported",
		zap.String("dashboard", res.Name),
		zap.String("format", opts.format),
		zap.Strings("files", written),
		zap.Int("failures", len(res.Failures)))
	return nil
}

func writePage(path, assetsHost string, res *dashboard.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := render.WritePage(w, render.Page{
		Title:      res.Title,
		AssetsHost: assetsHost,
		Summary:    res.Summary,
		Surface:    res.Surface,
	}); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return w.Flush()
}
