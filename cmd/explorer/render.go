package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jengzang/route-simplex/internal/colorize"
	"github.com/jengzang/route-simplex/internal/config"
	"github.com/jengzang/route-simplex/internal/interaction"
	"github.com/jengzang/route-simplex/internal/models"
	"github.com/jengzang/route-simplex/internal/render"
	"github.com/jengzang/route-simplex/internal/service"
	"github.com/jengzang/route-simplex/internal/spatial"
	"github.com/jengzang/route-simplex/internal/triangulation"
)

func renderCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "render <triangulation.json>",
		Short: "Render a saved triangulation response to PNG canvases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read triangulation: %w", err)
			}
			var data models.Triangulation
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("failed to parse triangulation: %w", err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			ctrl, files, err := renderTriangulation(cfg, &data, outDir)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), ctrl, files)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

// renderTriangulation draws both selector canvases the way a session
// shows them after a triangulation response
func renderTriangulation(cfg *config.Config, data *models.Triangulation, outDir string) (*interaction.Controller, []string, error) {
	simplex := spatial.NewSimplex(cfg.Corners())
	ctrl := interaction.New(simplex, cfg.Explorer.HitThreshold, nil)
	if err := ctrl.ApplyTriangulation(data, nil); err != nil {
		return nil, nil, err
	}

	renderer := render.NewRenderer(simplex, cfg.Explorer.CanvasWidth, cfg.Explorer.CanvasHeight)
	var files []string
	for _, mode := range []triangulation.Mode{triangulation.Diversity, triangulation.Gradient} {
		path := filepath.Join(outDir, mode.String()+".png")
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, err
		}
		err = renderer.Render(ctrl.Scene(mode), mode).EncodePNG(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return ctrl, files, nil
}

func printReport(w io.Writer, ctrl *interaction.Controller, files []string) {
	summary := service.Summarize(ctrl.Tree())
	brand.Fprintf(w, "triangulation")
	fmt.Fprintf(w, "  %d points, %d triangles, %d distinct routes\n", summary.Points, summary.Triangles, summary.DistinctRoutes)
	fmt.Fprintf(w, "  leaves: %d diversity, %d gradient\n", summary.DiversityLeaves, summary.GradientLeaves)
	l := summary.LengthKm
	fmt.Fprintf(w, "  route entropy %.2f, length km min %.1f q1 %.1f median %.1f q3 %.1f max %.1f\n\n",
		summary.RouteEntropy, l.Min, l.Q1, l.Median, l.Q3, l.Max)

	headers := []string{"#", "weights", "colour", "length km", "height m", "unsuitability", "geodesic km"}
	rows := make([][]string, 0, len(ctrl.Tree().Points))
	for i, p := range ctrl.Tree().Points {
		geodesic := 0.0
		if g := p.Route.Route.Geometry; g != nil {
			geodesic = spatial.PathLength(g.Coordinates) / 1000
		}
		rows = append(rows, []string{
			fmt.Sprint(i),
			p.Weights.String(),
			colorize.Categorical(i),
			fmt.Sprintf("%.1f", p.Route.Length/1000),
			fmt.Sprintf("%.1f", p.Route.Height/10),
			fmt.Sprint(p.Route.Unsuitability),
			fmt.Sprintf("%.2f", geodesic),
		})
	}
	printTable(w, headers, rows)

	fmt.Fprintln(w)
	for _, f := range files {
		subtle.Fprintf(w, "  wrote %s\n", f)
	}
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		var b strings.Builder
		b.WriteString("  ")
		for i, cell := range cells {
			fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
		}
		return strings.TrimRight(b.String(), " ")
	}
	subtle.Fprintln(w, line(headers))
	for _, row := range rows {
		fmt.Fprintln(w, line(row))
	}
}
