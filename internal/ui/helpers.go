package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"parley/internal/models"
	"parley/internal/styles"
)

// clockNow is the client clock used for optimistic timestamps (HH:MM).
func clockNow() string {
	return time.Now().Format("15:04")
}

func (m *Model) formatUserMessage(content, timestamp string) string {
	label := m.Styles.UserLabel.Render("YOU") + " " + m.Styles.Timestamp.Render(timestamp)
	width := m.Viewport.Width
	if width < 10 {
		width = 80
	}
	msg := m.Styles.UserMsg.Width(width - 4).Render(content)
	return fmt.Sprintf("%s\n%s", label, msg)
}

func (m *Model) formatAssistantMessage(content, timestamp string) string {
	label := m.Styles.AssistantLabel.Render("ASSISTANT") + " " + m.Styles.Timestamp.Render(timestamp)
	display := m.renderMarkdown(content)
	msg := m.Styles.AssistantMsg.Render(display)
	return fmt.Sprintf("%s\n%s", label, msg)
}

func (m *Model) formatErrorMessage(text string) string {
	return m.Styles.Error.Render(text)
}

// appendUserEntry renders a user message into the transcript. Optimistic
// entries are never rolled back.
func (m *Model) appendUserEntry(content, timestamp string) {
	m.Messages = append(m.Messages, m.formatUserMessage(content, timestamp))
}

func (m *Model) appendAssistantEntry(content, timestamp string) {
	m.Messages = append(m.Messages, m.formatAssistantMessage(content, timestamp))
	m.LastReply = content
}

func (m *Model) appendErrorEntry(text string) {
	m.Messages = append(m.Messages, m.formatErrorMessage(text))
}

func (m *Model) renderMarkdown(content string) string {
	if m.Renderer == nil {
		return content
	}
	rendered, err := m.Renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}

func (m *Model) rebuildRenderer() {
	width := m.Viewport.Width - 4
	if width < 20 {
		width = 20
	}
	m.Renderer, _ = glamour.NewTermRenderer(
		glamour.WithStylePath(styles.GlamourStyle(m.ThemeName)),
		glamour.WithWordWrap(width),
	)
}

// conversationIDOrDefault returns the active conversation id, minting one
// when no conversation exists yet so consecutive voice turns share a thread.
func (m *Model) conversationIDOrDefault() string {
	if m.ConversationID == "" {
		m.ConversationID = uuid.NewString()
	}
	return m.ConversationID
}

// sortedLanguages turns the backend's code -> name mapping into a stable
// list ordered by display name.
func sortedLanguages(langs map[string]string) []models.Language {
	out := make([]models.Language, 0, len(langs))
	for code, name := range langs {
		out = append(out, models.Language{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *Model) languageNameFor(code string) string {
	for _, l := range m.Languages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}

func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

func WrappedLineCount(value string, width int) int {
	if width <= 0 {
		return 1
	}
	lines := strings.Split(value, "\n")
	if len(lines) == 0 {
		return 1
	}
	count := 0
	for _, line := range lines {
		w := runewidth.StringWidth(line)
		if w == 0 {
			count++
			continue
		}
		count += (w-1)/width + 1
	}
	return count
}

func (m *Model) updateInputLayout() {
	if m.WindowWidth == 0 || m.WindowHeight == 0 {
		return
	}

	inputWidth := m.WindowWidth - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	contentWidth := inputWidth - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	maxInputHeight := 6
	lineCount := WrappedLineCount(m.TextInput.Value(), contentWidth)
	if lineCount < 1 {
		lineCount = 1
	}
	if lineCount > maxInputHeight {
		lineCount = maxInputHeight
	}

	m.TextInput.MaxHeight = maxInputHeight
	m.TextInput.SetWidth(inputWidth)
	m.TextInput.SetHeight(lineCount)

	inputBoxHeight := m.TextInput.Height() + 2
	reserved := inputBoxHeight + 6
	viewportHeight := m.WindowHeight - reserved
	if viewportHeight < 5 {
		viewportHeight = 5
	}
	m.Viewport.Height = viewportHeight
}

// UpdateViewport re-renders the transcript, appending the typing indicator
// while any chat turn is in flight. An empty transcript shows the welcome
// screen instead.
func (m *Model) UpdateViewport() {
	if len(m.Messages) == 0 && m.PendingTurns == 0 {
		m.Viewport.SetContent(m.welcomeScreen())
		return
	}

	content := strings.Join(m.Messages, "\n\n")
	if m.PendingTurns > 0 {
		indicator := m.Styles.AssistantLabel.Render("ASSISTANT") + "\n" +
			fmt.Sprintf("%s typing…", m.Spinner.View())
		if content != "" {
			content = content + "\n\n" + indicator
		} else {
			content = indicator
		}
	}
	m.Viewport.SetContent(content)
	m.Viewport.GotoBottom()
}

func (m *Model) resizeModal() {
	m.ModalWidth = m.WindowWidth - 10
	if m.ModalWidth > ModalWidthMax {
		m.ModalWidth = ModalWidthMax
	}
	if m.ModalWidth < ModalWidthMin {
		m.ModalWidth = ModalWidthMin
	}
}

// modalContentWidth is the inner width available to modal content, inside the
// modal frame's border and padding.
func (m *Model) modalContentWidth() int {
	return m.ModalWidth - 6
}

// rebuildStyles rebuilds the style set for the current theme and modal width
// and refreshes every component holding a copy of one of its styles.
func (m *Model) rebuildStyles() {
	m.Styles = styles.NewSet(styles.ForName(m.ThemeName), m.modalContentWidth())
	m.Spinner.Style = m.Styles.Title
}

func (m *Model) placeModal(modal string) string {
	framed := m.Styles.Modal.Width(m.ModalWidth).Render(modal)
	return lipgloss.Place(
		m.WindowWidth,
		m.WindowHeight,
		lipgloss.Center,
		lipgloss.Center,
		framed,
	)
}
