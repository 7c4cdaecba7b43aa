package ui

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var Theme = selectTheme()

func selectTheme() ColorTheme {
	if detectLightTerminal() {
		return NewBreakersTheme()
	}
	return NewMarianaTheme()
}

// detectLightTerminal detects if terminal has a light background via COLORFGBG.
// iTerm2 and other terminals set this as "foreground;background".
// Background 7 or 15 indicates light, 0-6 and 8 indicate dark.
func detectLightTerminal() bool {
	colorfgbg := os.Getenv("COLORFGBG")
	if colorfgbg == "" {
		return false
	}
	parts := strings.Split(colorfgbg, ";")
	if len(parts) != 2 {
		return false
	}
	bg := parts[1]
	return bg == "7" || bg == "15"
}

type ColorTheme struct {
	Foreground Color
	Background Color
	Border     Color
	Hover      Color
	Selection  Color
	// ActiveTab is the label color of the current tab in a dock area.
	ActiveTab Color
	// Handle is drawn while a dock handle is hovered or dragged.
	Handle Color
}

// ThemeByName returns the named theme, or the detected one for "" and
// unknown names.
func ThemeByName(name string) ColorTheme {
	switch strings.ToLower(name) {
	case "breakers", "light":
		return NewBreakersTheme()
	case "mariana", "dark":
		return NewMarianaTheme()
	default:
		return selectTheme()
	}
}

func NewBreakersTheme() ColorTheme {
	return ColorTheme{
		Foreground: tcell.GetColor("#333333"), // grey3
		Background: tcell.GetColor("#fbffff"), // white5 (extremely light cyan-white)
		Border:     tcell.GetColor("#d9e0e4"), // white2 (selection_border)
		Hover:      tcell.GetColor("#dae0e2"), // white3
		Selection:  tcell.GetColor("#dae0e2"), // white3 (line_highlight / selection)
		ActiveTab:  tcell.GetColor("#5fb3b3"), // blue2
		Handle:     tcell.GetColor("#6699cc"), // blue
	}
}

func NewMarianaTheme() ColorTheme {
	return ColorTheme{
		Foreground: tcell.GetColor("#d8dee9"), // white3
		Background: tcell.GetColor("#303841"), // blue3
		Border:     tcell.GetColor("#65737e"), // blue4 (selection_border)
		Hover:      tcell.GetColor("#4e5a65"),
		Selection:  tcell.GetColor("#4e5a65"), // blue2 (alpha handled by terminal blending)
		ActiveTab:  tcell.GetColor("#fac863"), // orange
		Handle:     tcell.GetColor("#5fb3b3"), // blue5
	}
}
