package cmd

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cansyan/dock/internal/observability"
	"github.com/cansyan/dock/ui"
)

func newRunCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive shell",
		Long: `Start the interactive shell. The layout file is restored on start and
saved on exit. Ctrl+S or the Save button saves it at any time, F1 shows
the key help and Esc quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the terminal belongs to the UI, so logs only go to the file
			logger, err := observability.NewLogger(o.cfg.Logger, nil)
			if err != nil {
				return err
			}
			defer logger.Sync()
			zap.ReplaceGlobals(logger)
			return runShell(o, nil, logger)
		},
	}
}

// runShell runs the shell on screen, or on the terminal when screen is nil.
func runShell(o *options, screen tcell.Screen, logger *zap.Logger) error {
	app, ws, err := newShell(o, screen, logger)
	if err != nil {
		return err
	}
	logger.Info("shell started", zap.Int("panels", len(ws.dock.Panels())))
	if err := app.Run(); err != nil {
		return err
	}
	return ws.save()
}

// newShell restores the workspace and builds the app around it: the dock,
// a status bar with a Save button and the F1 help overlay.
func newShell(o *options, screen tcell.Screen, logger *zap.Logger) (*ui.App, *workspace, error) {
	ui.Theme = ui.ThemeByName(o.cfg.Dock.Theme)

	ws := newWorkspace(o.cfg.Dock, logger)
	if err := ws.restore(""); err != nil {
		return nil, nil, err
	}

	status := ui.NewText(statusLine(ws))
	ws.dock.OnClose = func(p *ui.Panel) {
		logger.Info("panel closed", zap.String("id", p.ID))
		status.SetText(statusLine(ws))
	}
	saveLayout := func() {
		if err := ws.save(); err != nil {
			logger.Error("save layout", zap.Error(err))
			status.SetText("save failed: " + err.Error())
			return
		}
		status.SetText("layout saved")
	}
	saveBtn := ui.NewButton("Save")
	saveBtn.OnClick = saveLayout
	root := ui.VStack(
		ui.Fill(ws.dock),
		ui.Divider(),
		ui.PaddingH(ui.HStack(status, ui.Spacer(), saveBtn), 1),
	)

	app, err := ui.NewApp(root, screen, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open terminal: %w", err)
	}
	help := ui.Border(ui.PaddingH(ui.NewText(helpText), 1))
	app.OnKey = func(ev *tcell.EventKey) bool {
		switch ev.Key() {
		case tcell.KeyCtrlS:
			saveLayout()
		case tcell.KeyF1:
			if app.OverlayShown() {
				app.HideOverlay()
			} else {
				app.ShowOverlay(help)
			}
		default:
			return false
		}
		return true
	}
	app.Focus(ws.dock)
	return app, ws, nil
}

const helpText = `Drag a handle to resize the areas.
Click a tab to select it, x closes it.
Type in the filter to narrow the files.
Ctrl+S  save layout
F1      toggle this help
Esc     close help or quit`

func statusLine(ws *workspace) string {
	return fmt.Sprintf("%d panels docked  |  F1 help  |  Esc quit", len(ws.dock.Panels()))
}
