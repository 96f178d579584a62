package render

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

// UnicodeLevel represents the level of Unicode support.
type UnicodeLevel int

const (
	UnicodeNone     UnicodeLevel = iota // ASCII only
	UnicodeBasic                        // Basic box-drawing
	UnicodeExtended                     // Full box-drawing with rounded corners
	UnicodeFull                         // Including emoji, complex scripts
)

// TerminalCapabilities represents the features supported by the current terminal.
type TerminalCapabilities struct {
	Name         string
	UnicodeLevel UnicodeLevel
	IsCJK        bool // CJK environment detected
}

// DetectCapabilities detects the current terminal's capabilities.
func DetectCapabilities() TerminalCapabilities {
	// Allow override via environment variable
	switch os.Getenv("GRIDWORLD_TERMINAL_MODE") {
	case "ascii":
		return ForceASCII()
	case "basic":
		return ForceBasic()
	case "unicode":
		return ForceUnicode()
	}

	term := os.Getenv("TERM")
	caps := TerminalCapabilities{
		Name:         term,
		UnicodeLevel: UnicodeBasic,
		IsCJK:        detectCJKEnvironment(),
	}

	switch {
	case !detectUTF8Locale() || term == "linux" || term == "dumb":
		caps.UnicodeLevel = UnicodeNone
	case os.Getenv("WT_SESSION") != "" || strings.HasPrefix(term, "xterm-kitty"):
		caps.UnicodeLevel = UnicodeFull
	case strings.Contains(term, "xterm") || term == "alacritty" || os.Getenv("TMUX") != "":
		caps.UnicodeLevel = UnicodeExtended
	}
	return caps
}

// Apply adjusts opts for the terminal: ASCII-only terminals get the ASCII
// fallback and basic Unicode terminals get square corners. It also sets
// go-runewidth's process-wide condition so that CJK environments count
// ambiguous-width runes as wide.
func (c TerminalCapabilities) Apply(opts Options) Options {
	switch c.UnicodeLevel {
	case UnicodeNone:
		opts.ASCII = true
	case UnicodeBasic:
		opts.SquareCorners = true
	}
	runewidth.DefaultCondition.EastAsianWidth = c.IsCJK
	return opts
}

// detectUTF8Locale checks if the locale supports UTF-8.
func detectUTF8Locale() bool {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := strings.ToUpper(os.Getenv(env))
		if strings.Contains(value, "UTF-8") || strings.Contains(value, "UTF8") {
			return true
		}
	}
	return false
}

// detectCJKEnvironment checks for CJK (Chinese, Japanese, Korean) environment.
func detectCJKEnvironment() bool {
	for _, env := range []string{"LANG", "LC_ALL", "LC_CTYPE"} {
		prefix := strings.Split(os.Getenv(env), "_")[0]
		if prefix == "ja" || prefix == "ko" || prefix == "zh" {
			return true
		}
	}
	return os.Getenv("EAST_ASIAN_AMBIGUOUS") == "2"
}

// ForceASCII returns capabilities configured for ASCII-only output.
func ForceASCII() TerminalCapabilities {
	return TerminalCapabilities{Name: "ascii", UnicodeLevel: UnicodeNone}
}

// ForceBasic returns capabilities for a terminal with plain box-drawing only.
func ForceBasic() TerminalCapabilities {
	return TerminalCapabilities{Name: "basic", UnicodeLevel: UnicodeBasic}
}

// ForceUnicode returns capabilities configured for full Unicode support.
func ForceUnicode() TerminalCapabilities {
	return TerminalCapabilities{Name: "unicode", UnicodeLevel: UnicodeFull}
}

// asciiFallback maps box-drawing runes to their closest ASCII shape.
// Other non-ASCII runes become '?'.
func asciiFallback(r rune) rune {
	if r < 0x80 {
		return r
	}
	switch r {
	case '─', '━', '═', '╌', '┄':
		return '-'
	case '│', '┃', '║', '╎', '┆':
		return '|'
	case '┌', '┐', '└', '┘', '╭', '╮', '╯', '╰', '├', '┤', '┬', '┴', '┼',
		'╔', '╗', '╚', '╝', '╠', '╣', '╦', '╩', '╬':
		return '+'
	case '█', '▓', '▒':
		return '#'
	case '░', '·', '•':
		return '.'
	}
	return '?'
}

// squareCorner maps rounded box corners to the square corners every
// box-drawing font has.
func squareCorner(r rune) rune {
	switch r {
	case '╭':
		return '┌'
	case '╮':
		return '┐'
	case '╯':
		return '┘'
	case '╰':
		return '└'
	}
	return r
}
