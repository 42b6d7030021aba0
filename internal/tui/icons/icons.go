// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("CYRLAB_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	// Check for terminals known to commonly have Nerd Fonts
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	// Default to Unicode fallback for maximum compatibility
	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Sections
	Home        = Icon{"󰋜", "⌂"} // nf-md-home
	Orders      = Icon{"󰒚", "▤"} // nf-md-package_variant
	Maintenance = Icon{"󰣪", "⚒"} // nf-md-hammer_wrench
	Visits      = Icon{"󰗡", "◎"} // nf-md-map_marker_check
	Users       = Icon{"󰀄", "◆"} // nf-md-account
	Reports     = Icon{"󰈙", "▥"} // nf-md-file_document
	Catalogs    = Icon{"󰉋", "▣"} // nf-md-folder
	Products    = Icon{"󰏗", "■"} // nf-md-package

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Search = Icon{"󰍉", "/"} // nf-md-magnify
	Add    = Icon{"󰐕", "+"} // nf-md-plus
	Edit   = Icon{"󰏫", "✎"} // nf-md-pencil
	Delete = Icon{"󰆴", "✗"} // nf-md-delete
	Back   = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit   = Icon{"󰗼", "×"} // nf-md-exit_to_app
	Logout = Icon{"󰍃", "⏻"} // nf-md-logout

	// Application
	App    = Icon{"󰂔", "◈"} // nf-md-flask (lab theme)
	Shield = Icon{"󰒃", "⛊"} // nf-md-shield_check
	Key    = Icon{"󰌆", "⚿"} // nf-md-key
)
