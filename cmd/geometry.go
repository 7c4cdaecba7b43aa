package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cansyan/dock/internal/observability"
	"github.com/cansyan/dock/layout"
	"github.com/cansyan/dock/ui"
)

func newGeometryCmd(o *options) *cobra.Command {
	var (
		width, height float64
		layoutFile    string
	)
	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Print the rectangles of the docked panels without a terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("width and height must be positive, got %vx%v", width, height)
			}
			logger, err := observability.NewLogger(o.cfg.Logger, nil)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ws := newWorkspace(o.cfg.Dock, logger)
			if err := ws.restore(layoutFile); err != nil {
				return err
			}
			return printGeometry(cmd.OutOrStdout(), ws, layout.Rect{Width: width, Height: height}, logger)
		},
	}
	cmd.Flags().Float64Var(&width, "width", 120, "layout width in cells")
	cmd.Flags().Float64Var(&height, "height", 40, "layout height in cells")
	cmd.Flags().StringVar(&layoutFile, "layout", "", "layout file to restore (default is dock.layout_file)")
	return cmd
}

func printGeometry(w io.Writer, ws *workspace, r layout.Rect, logger *zap.Logger) error {
	d := ws.dock.DockLayout()
	limits := d.Fit()
	d.Update(r)
	if err := d.Validate(); err != nil {
		logger.Error("dock tree is inconsistent", zap.Error(err))
		return err
	}

	fmt.Fprintf(w, "layout %s min %gx%g\n", formatRect(r), limits.MinWidth, limits.MinHeight)
	for bar := range d.TabBars() {
		area := bar.Rect()
		if geo, ok := d.HitTestTabAreas(area.X, area.Y); ok {
			area.Width, area.Height = geo.Width, geo.Height
		}
		fmt.Fprintf(w, "area %s\n", formatRect(area))
		for i, t := range bar.Titles() {
			p, ok := t.Owner.(*ui.Panel)
			if !ok {
				continue
			}
			if i != bar.CurrentIndex() {
				fmt.Fprintf(w, "    %-10s %s\n", p.ID, t.Label)
				continue
			}
			fmt.Fprintf(w, "  * %-10s %s %s\n", p.ID, t.Label, formatRect(p.Rect()))
		}
	}
	return nil
}

func formatRect(r layout.Rect) string {
	return fmt.Sprintf("%gx%g+%g+%g", r.Width, r.Height, r.X, r.Y)
}
