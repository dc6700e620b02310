package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Bodhi update status colors
	Testing  = color.New(color.FgYellow)
	Stable   = color.New(color.FgGreen)
	Pending  = color.New(color.FgCyan)
	Obsolete = color.New(color.FgRed)
	Unpushed = color.New(color.FgMagenta)

	// Structural colors
	Dim     = color.New(color.Faint)
	Header  = color.New(color.FgWhite, color.Bold)
	Package = color.New(color.FgBlue, color.Bold)
	Link    = color.New(color.FgCyan, color.Underline)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// IsTerminal returns true if stdout is a terminal
func IsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// StatusColor returns the color for a Bodhi update status
func StatusColor(status string) *color.Color {
	switch status {
	case "testing":
		return Testing
	case "stable":
		return Stable
	case "pending":
		return Pending
	case "obsolete", "revoked":
		return Obsolete
	case "unpushed":
		return Unpushed
	default:
		return color.New(color.Reset)
	}
}

// Sprint returns a colored string without printing
func Sprint(c *color.Color, a ...interface{}) string {
	return c.Sprint(a...)
}

// FormatStatus formats a Bodhi status with its color. An empty status is
// shown as "[unknown]".
func FormatStatus(status string) string {
	if status == "" {
		status = "unknown"
	}
	c := StatusColor(status)
	return c.Sprintf("[%s]", status)
}

// FormatPackage formats a package name, optionally followed by version-release
func FormatPackage(name, vr string) string {
	if vr != "" {
		return Package.Sprint(name) + " " + vr
	}
	return Package.Sprint(name)
}

// FormatLink formats a URL
func FormatLink(url string) string {
	return Link.Sprint(url)
}

// Box writes a boxed message to w
func Box(w io.Writer, title, content string) {
	fmt.Fprintln(w)
	Header.Fprintln(w, "┌─ "+title+" ─")
	fmt.Fprintln(w, "│")
	fmt.Fprintln(w, "│  "+content)
	fmt.Fprintln(w, "│")
	Header.Fprintln(w, "└────────────────")
	fmt.Fprintln(w)
}
