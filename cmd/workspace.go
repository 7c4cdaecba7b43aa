package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"

	"github.com/cansyan/dock/internal/config"
	"github.com/cansyan/dock/layout"
	"github.com/cansyan/dock/ui"
)

// sampleFiles backs the files panel. Opening one shows it in the editor.
var sampleFiles = []struct{ name, body string }{
	{"main.go", "package main\n\nfunc main() {\n\tcmd.Execute()\n}"},
	{"go.mod", "module github.com/cansyan/dock\n\ngo 1.24"},
	{"cmd/root.go", "package cmd\n\nfunc Execute() error"},
	{"layout/dock.go", "package layout\n\ntype DockLayout struct"},
	{"ui/dock.go", "package ui\n\ntype DockPanel struct"},
}

// workspace is the demo set of panels and the dock holding them.
type workspace struct {
	dock   *ui.DockPanel
	panels []*ui.Panel
	cfg    config.DockConfig
	logger *zap.Logger

	files  *ui.List
	filter *ui.TextField
	editor *ui.Text
}

func newWorkspace(cfg config.DockConfig, logger *zap.Logger) *workspace {
	ws := &workspace{
		dock:   ui.NewDockPanel(cfg.Spacing, logger),
		cfg:    cfg,
		logger: logger,
		files:  ui.NewList(),
		editor: ui.NewText(sampleFiles[0].body),
	}
	for _, f := range sampleFiles {
		ws.files.Append(f.name, func() { ws.open(f.name) })
	}
	ws.filter = ui.NewTextField().OnChange(ws.files.Filter)
	ws.panels = []*ui.Panel{
		ui.NewPanel("files", "Files", ui.VStack(
			ui.PaddingH(ws.filter, 1),
			ui.Divider(),
			ui.Fill(ws.files),
		)),
		ui.NewPanel("editor", sampleFiles[0].name, ws.editor).SetClosable(true),
		ui.NewPanel("readme", "README", ui.NewText("Drag a handle to resize.\nClick a tab to select it.\nF1 shows the key help.")).SetClosable(true),
		ui.NewPanel("outline", "Outline", ui.NewText("main\n  main()")),
		ui.NewPanel("terminal", "Terminal", ui.NewText("$ dock run")),
	}
	return ws
}

// open shows the named sample file in the editor panel and brings it to
// the front.
func (ws *workspace) open(name string) {
	for _, f := range sampleFiles {
		if f.name != name {
			continue
		}
		ed := ws.panel("editor")
		ed.Title().Label = f.name
		ws.editor.SetText(f.body)
		if !ws.dock.DockLayout().Contains(ed) {
			if err := ws.dock.AddPanel(ed, layout.AddOptions{Mode: layout.TabAfter}); err != nil {
				ws.logger.Error("dock editor", zap.Error(err))
				return
			}
		}
		ws.dock.DockLayout().SelectWidget(ed)
		ws.dock.Refresh()
		ws.logger.Debug("file opened", zap.String("name", name))
		return
	}
	ws.logger.Warn("unknown file", zap.String("name", name))
}

func (ws *workspace) panel(id string) *ui.Panel {
	for _, p := range ws.panels {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// arrangeDefault docks the panels in the built-in arrangement: files on
// the left, the editor tabs in the middle with the outline beside them and
// the terminal below.
func (ws *workspace) arrangeDefault() error {
	steps := []struct {
		id   string
		mode layout.InsertMode
		ref  string
	}{
		{"editor", layout.TabAfter, ""},
		{"readme", layout.TabAfter, "editor"},
		{"files", layout.SplitLeft, "editor"},
		{"outline", layout.SplitRight, "editor"},
		{"terminal", layout.SplitBottom, "editor"},
	}
	for _, s := range steps {
		opts := layout.AddOptions{Mode: s.mode}
		if s.ref != "" {
			opts.Ref = ws.panel(s.ref)
		}
		if err := ws.dock.AddPanel(ws.panel(s.id), opts); err != nil {
			return fmt.Errorf("dock %s: %w", s.id, err)
		}
	}
	ws.dock.DockLayout().SelectWidget(ws.panel("editor"))
	return nil
}

// restore loads path, or the configured layout file when path is empty.
// Without a saved layout the default arrangement is used.
func (ws *workspace) restore(path string) error {
	if path == "" {
		path = ws.cfg.LayoutFile
	}
	if path == "" {
		return ws.arrangeDefault()
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("resolve layout path: %w", err)
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		ws.logger.Info("no saved layout", zap.String("file", path))
		return ws.arrangeDefault()
	}
	if err != nil {
		return fmt.Errorf("read layout: %w", err)
	}
	if err := ws.dock.UnmarshalLayout(b, ws.panels, ws.cfg.StrictLayout); err != nil {
		return fmt.Errorf("restore layout %s: %w", path, err)
	}
	if ws.dock.DockLayout().IsEmpty() {
		ws.logger.Warn("saved layout is empty, using default", zap.String("file", path))
		return ws.arrangeDefault()
	}
	ws.logger.Info("layout restored", zap.String("file", path))
	return nil
}

// save writes the arrangement to the configured layout file, if any.
func (ws *workspace) save() error {
	if ws.cfg.LayoutFile == "" {
		return nil
	}
	path, err := homedir.Expand(ws.cfg.LayoutFile)
	if err != nil {
		return fmt.Errorf("resolve layout path: %w", err)
	}
	b, err := ws.dock.MarshalLayout()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	ws.logger.Info("layout saved", zap.String("file", path))
	return nil
}
