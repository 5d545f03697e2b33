package list

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Spinner frames shared by the header and footer progress states.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var (
	decorationDimStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6B7280"))

	decorationErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#EF4444"))

	decorationAccentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#E5A00D"))

	decorationSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F9FAFB")).
				Background(lipgloss.Color("#374151"))
)

func renderDecorationLine(text string, style lipgloss.Style, width int, selected bool) string {
	if selected {
		style = decorationSelectedStyle
	}
	return style.MaxWidth(width).Render(text)
}

// HeaderHolder renders the decorator's leading row: a spinner during
// refresh, a retry line on error, or a new-items announcement.
type HeaderHolder struct {
	mode         HeaderMode
	newItems     int
	spinnerFrame int
	retry        func()
}

func newHeaderHolder(retryProxy func()) *HeaderHolder {
	return &HeaderHolder{retry: retryProxy}
}

func (h *HeaderHolder) bind(mode HeaderMode, newItems int) {
	h.mode = mode
	h.newItems = newItems
}

// SetSpinnerFrame implements Spinning.
func (h *HeaderHolder) SetSpinnerFrame(frame int) {
	h.spinnerFrame = frame
}

// Click implements Clickable. Only the error and new-items states react;
// the handler proxy tolerates a handler that has not been registered yet.
func (h *HeaderHolder) Click() {
	switch h.mode {
	case HeaderError, HeaderNewItems:
		h.retry()
	}
}

func (h *HeaderHolder) View(width int, selected bool) string {
	switch h.mode {
	case HeaderProgress:
		spinner := spinnerFrames[h.spinnerFrame%len(spinnerFrames)]
		return renderDecorationLine(spinner+" Refreshing...", decorationDimStyle, width, selected)
	case HeaderError:
		return renderDecorationLine("✗ Couldn't refresh. Press enter to retry", decorationErrorStyle, width, selected)
	case HeaderNewItems:
		msg := "New stories available. Press enter to show"
		if h.newItems > 0 {
			msg = fmt.Sprintf("%d new stories. Press enter to show", h.newItems)
		}
		return renderDecorationLine("↑ "+msg, decorationAccentStyle, width, selected)
	default:
		return ""
	}
}

// FooterHolder renders the decorator's trailing row: a spinner while more
// items load, or a retry line on error.
type FooterHolder struct {
	mode         FooterMode
	spinnerFrame int
	retry        func()
}

func newFooterHolder(retryProxy func()) *FooterHolder {
	return &FooterHolder{retry: retryProxy}
}

func (h *FooterHolder) bind(mode FooterMode) {
	h.mode = mode
}

// SetSpinnerFrame implements Spinning.
func (h *FooterHolder) SetSpinnerFrame(frame int) {
	h.spinnerFrame = frame
}

// Click implements Clickable; only the error state reacts.
func (h *FooterHolder) Click() {
	if h.mode == FooterError {
		h.retry()
	}
}

func (h *FooterHolder) View(width int, selected bool) string {
	switch h.mode {
	case FooterProgress:
		spinner := spinnerFrames[h.spinnerFrame%len(spinnerFrames)]
		return renderDecorationLine(spinner+" Loading more...", decorationDimStyle, width, selected)
	case FooterError:
		return renderDecorationLine("✗ Couldn't load more. Press enter to retry", decorationErrorStyle, width, selected)
	default:
		return ""
	}
}
