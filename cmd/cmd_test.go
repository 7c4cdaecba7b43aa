package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cansyan/dock/internal/config"
	"github.com/cansyan/dock/layout"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGeometryDefaultArrangement(t *testing.T) {
	out, err := execute(t, "geometry", "--width", "100", "--height", "30")
	require.NoError(t, err)

	assert.Contains(t, out, "layout 100x30+0+0")
	// files, editor+readme, terminal and outline areas
	assert.Equal(t, 4, strings.Count(out, "area "))
	assert.Contains(t, out, "* editor")
	assert.Contains(t, out, "    readme")
	assert.Contains(t, out, "* files")
	assert.Contains(t, out, "* terminal")
	assert.Contains(t, out, "* outline")
}

func TestGeometryRejectsEmptySize(t *testing.T) {
	_, err := execute(t, "geometry", "--width", "0")
	assert.Error(t, err)
}

func TestGeometryFromLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	saved := `{"main": {"type": "split-area", "orientation": "vertical", "sizes": [1, 3],
		"children": [
			{"type": "tab-area", "widgets": ["terminal", "nope"], "currentIndex": 0},
			{"type": "tab-area", "widgets": ["editor", "files"], "currentIndex": 1}
		]}}`
	require.NoError(t, os.WriteFile(path, []byte(saved), 0o644))

	out, err := execute(t, "geometry", "--width", "80", "--height", "41", "--layout", path)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "area "))
	// 40 rows after the handle, split 1:3; each tab bar takes one row
	assert.Contains(t, out, "area 80x10+0+0")
	assert.Contains(t, out, "* terminal   Terminal 80x9+0+1")
	assert.Contains(t, out, "area 80x30+0+11")
	assert.Contains(t, out, "* files      Files 80x29+0+12")
	assert.Contains(t, out, "    editor")
	assert.NotContains(t, out, "outline")
}

func TestGeometryBadLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"main": {"type": "grid"}}`), 0o644))

	_, err := execute(t, "geometry", "--layout", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, layout.ErrInvalidConfig)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dock.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("dock:\n  spacing: -2\n"), 0o644))

	_, err := execute(t, "--config", cfgPath, "geometry")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestWorkspaceSaveRestore(t *testing.T) {
	cfg := config.Default().Dock
	cfg.LayoutFile = filepath.Join(t.TempDir(), "layout.json")
	logger := zaptest.NewLogger(t)

	ws := newWorkspace(cfg, logger)
	require.NoError(t, ws.restore(""))
	ws.dock.RemovePanel(ws.panel("readme"))
	require.NoError(t, ws.save())

	var before bytes.Buffer
	require.NoError(t, printGeometry(&before, ws, layout.Rect{Width: 120, Height: 40}, logger))

	restored := newWorkspace(cfg, logger)
	require.NoError(t, restored.restore(""))
	var after bytes.Buffer
	require.NoError(t, printGeometry(&after, restored, layout.Rect{Width: 120, Height: 40}, logger))

	assert.Equal(t, before.String(), after.String())
	assert.NotContains(t, after.String(), "readme")
}

func TestWorkspaceMissingLayoutFile(t *testing.T) {
	cfg := config.Default().Dock
	cfg.LayoutFile = filepath.Join(t.TempDir(), "missing.json")

	ws := newWorkspace(cfg, zaptest.NewLogger(t))
	require.NoError(t, ws.restore(""))
	assert.Len(t, ws.dock.Panels(), 5)
}

func TestWorkspaceLayoutInHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	cfg := config.Default().Dock
	cfg.LayoutFile = "~/layout.json"
	ws := newWorkspace(cfg, zaptest.NewLogger(t))
	require.NoError(t, ws.restore(""))
	require.NoError(t, ws.save())

	_, err := os.Stat(filepath.Join(home, "layout.json"))
	require.NoError(t, err)
	require.NoError(t, newWorkspace(cfg, zaptest.NewLogger(t)).restore(""))
}

func TestWorkspaceOpenFile(t *testing.T) {
	ws := newWorkspace(config.Default().Dock, zaptest.NewLogger(t))
	require.NoError(t, ws.restore(""))
	d := ws.dock.DockLayout()
	editor := ws.panel("editor")
	d.SelectWidget(ws.panel("readme"))

	ws.filter.SetText("dock")
	assert.Equal(t, []string{"layout/dock.go", "ui/dock.go"}, ws.files.Visible())

	ws.open("go.mod")
	assert.Equal(t, "go.mod", editor.Title().Label)
	assert.Contains(t, ws.editor.String(), "module github.com/cansyan/dock")
	assert.Same(t, editor.Title(), d.FindTabBar(editor).CurrentTitle())

	// a closed editor is docked again
	ws.dock.RemovePanel(editor)
	ws.open("main.go")
	require.True(t, d.Contains(editor))
	assert.Equal(t, "main.go", editor.Title().Label)
	require.NoError(t, d.Validate())

	ws.open("missing.go")
	assert.Equal(t, "main.go", editor.Title().Label)
}

func TestShellSaveButtonAndHelp(t *testing.T) {
	o := &options{cfg: config.Default()}
	o.cfg.Dock.LayoutFile = filepath.Join(t.TempDir(), "layout.json")
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(80, 20)

	app, _, err := newShell(o, s, zaptest.NewLogger(t))
	require.NoError(t, err)
	app.Render()

	app.HandleEvent(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone))
	assert.True(t, app.OverlayShown())
	assert.False(t, app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, app.OverlayShown())

	// the Save button ends the status row
	app.HandleEvent(tcell.NewEventMouse(75, 19, tcell.Button1, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(75, 19, tcell.ButtonNone, tcell.ModNone))
	_, err = os.Stat(o.cfg.Dock.LayoutFile)
	require.NoError(t, err)
}
