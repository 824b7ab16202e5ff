package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent  = lipgloss.Color("36")  // identifiers, spinner
	colorOK      = lipgloss.Color("35")  // clean documents, completed writes
	colorIssue   = lipgloss.Color("220") // failsafe decode issues
	colorFailure = lipgloss.Color("167") // documents that could not be read
	colorKind    = lipgloss.Color("75")  // meta-model kinds, suggested commands
	colorText    = lipgloss.Color("255")
	colorLabel   = lipgloss.Color("245")
	colorMuted   = lipgloss.Color("240")
)

var (
	// StyleHighlight marks identifiers and resolved objects.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	// StyleKind marks meta-model kind names such as Submodel or Property.
	StyleKind = lipgloss.NewStyle().Foreground(colorKind)

	// StyleDim is used for paths, sources and other secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	styleValue       = lipgloss.NewStyle().Foreground(colorText)
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorKind)
)

// =============================================================================
// Status lines
// =============================================================================

// status is the leading marker of a report line.
type status struct {
	icon  string
	style lipgloss.Style
	// body styles the message itself; nil leaves it plain.
	body *lipgloss.Style
}

var (
	statusOK      = status{icon: "✓", style: lipgloss.NewStyle().Foreground(colorOK)}
	statusFailure = status{icon: "✗", style: lipgloss.NewStyle().Foreground(colorFailure)}
	statusIssue   = status{icon: "!", style: lipgloss.NewStyle().Foreground(colorIssue), body: ptr(lipgloss.NewStyle().Foreground(colorIssue))}
	statusInfo    = status{icon: "›", style: lipgloss.NewStyle().Foreground(colorLabel)}
)

func ptr[T any](v T) *T { return &v }

func (s status) line(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if s.body != nil {
		msg = s.body.Render(msg)
	}
	return s.style.Render(s.icon) + " " + msg
}

func printSuccess(format string, args ...any) { fmt.Println(statusOK.line(format, args...)) }
func printError(format string, args ...any)   { fmt.Println(statusFailure.line(format, args...)) }
func printWarning(format string, args ...any) { fmt.Println(statusIssue.line(format, args...)) }
func printInfo(format string, args ...any)    { fmt.Println(statusInfo.line(format, args...)) }

// printDetail prints an indented secondary line, such as an issue path.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + styleValue.Render(path))
}

// printKeyValue prints one labelled attribute of an object.
func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + styleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Document counts
// =============================================================================

// printStats prints the root collection counts of a document.
func printStats(n counts, cached bool) {
	fmt.Println("  " + statsLine(n, cached))
}

func statsLine(n counts, cached bool) string {
	var parts []string
	add := func(count int, name string) {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", count, name))
		}
	}
	add(n.Shells, "shells")
	add(n.Submodels, "submodels")
	add(n.Assets, "assets")
	add(n.ConceptDescriptions, "concept descriptions")
	if len(parts) == 0 {
		parts = append(parts, "empty")
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}

	origin := lipgloss.NewStyle().Foreground(colorLabel).Render("fresh")
	if cached {
		origin = lipgloss.NewStyle().Foreground(colorOK).Render("cached")
	}
	return strings.Join(append(parts, origin), StyleDim.Render(" · "))
}
