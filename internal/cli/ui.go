package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chartnote/pkg/errors"
	"github.com/matzehuels/chartnote/pkg/render/sink"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - titles, selection
	colorGreen  = lipgloss.Color("35")  // Green - drawn annotations
	colorYellow = lipgloss.Color("220") // Amber - problems, skipped annotations
	colorBlue   = lipgloss.Color("75")  // Light blue - links, commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - labels
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconDrawn   = "✓"
	iconSkipped = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconBelow   = "↓"
	undefined   = "—"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(StyleSuccess.Render(iconDrawn) + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(StyleDim.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printProblem prints one validation problem with its code.
func printProblem(p error) {
	code := errors.GetCode(p)
	fmt.Println(StyleWarning.Render(iconSkipped) + " " + StyleDim.Render("["+string(code)+"]") + " " + StyleWarning.Render(errors.UserMessage(p)))
}

// printArtifact prints a written output file and its size.
func printArtifact(path string, size int) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path) + " " + StyleDim.Render(byteSize(size)))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints the annotation counts of a run and whether its output
// came from the cache. Skipped counts are unknown for cached output.
func printStats(total, drawn int, cached bool) {
	line := "  " + StyleDim.Render(fmt.Sprintf("%d annotations", total))
	sep := StyleDim.Render(" · ")
	if cached {
		fmt.Println(line + sep + StyleSuccess.Render("cached"))
		return
	}
	line += sep + StyleDim.Render(fmt.Sprintf("%d drawn", drawn))
	if skipped := total - drawn; skipped > 0 {
		line += sep + StyleWarning.Render(fmt.Sprintf("%d skipped", skipped))
	}
	fmt.Println(line + sep + StyleDim.Render("fresh"))
}

func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func byteSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f kB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

// =============================================================================
// Placement Formatting
// =============================================================================

// placementName returns the annotation name, or its index when unnamed.
func placementName(a sink.Placement, i int) string {
	if a.Name != "" {
		return a.Name
	}
	return "#" + strconv.Itoa(i)
}

// drawnMark renders the drawn/skipped marker of a placement.
func drawnMark(drawn bool) string {
	if drawn {
		return StyleSuccess.Render(iconDrawn)
	}
	return StyleWarning.Render(iconSkipped)
}

// plaqueBox formats the plaque rectangle, or a dash when nothing was drawn.
func plaqueBox(a sink.Placement) string {
	if a.Plaque == nil {
		return undefined
	}
	s := fmt.Sprintf("%s,%s %s×%s", coord(&a.Plaque.X), coord(&a.Plaque.Y), coord(&a.Plaque.W), coord(&a.Plaque.H))
	if a.Flipped {
		s += " " + iconBelow
	}
	return s
}

// coord formats an optional coordinate.
func coord(v *float64) string {
	if v == nil {
		return undefined
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func dash(s string) string {
	if s == "" {
		return undefined
	}
	return s
}
