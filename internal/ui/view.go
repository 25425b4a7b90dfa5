package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"parley/internal/voice"
)

func (m *Model) welcomeScreen() string {
	art := `
 ╭─────────────────────────────────────────────────╮
 │                                                 │
 │   ██████╗  █████╗ ██████╗ ██╗     ███████╗██╗   │
 │   ██╔══██╗██╔══██╗██╔══██╗██║     ██╔════╝╚██╗  │
 │   ██████╔╝███████║██████╔╝██║     █████╗   ╚██╗ │
 │   ██╔═══╝ ██╔══██║██╔══██╗██║     ██╔══╝   ██╔╝ │
 │   ██║     ██║  ██║██║  ██║███████╗███████╗██╔╝  │
 │   ╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚══════╝╚═╝   │
 │                                                 │
 ╰─────────────────────────────────────────────────╯
`
	styledArt := m.Styles.WelcomeArt.Render(art)
	styledSubtitle := m.Styles.WelcomeSubtitle.Render(WelcomeMessage)
	hint := m.Styles.Hint.Render("ctrl+o: shortcuts")

	content := lipgloss.JoinVertical(lipgloss.Center, styledArt, "", styledSubtitle, "", hint)
	return lipgloss.Place(m.Viewport.Width, m.Viewport.Height, lipgloss.Center, lipgloss.Center, content)
}

// renderStatusBar builds the bottom bar: session badges on the left, theme
// and language on the right.
func (m *Model) renderStatusBar() string {
	var left []string

	switch m.Voice.State() {
	case voice.StateAcquiring:
		left = append(left, m.Styles.RecordingBadge.Render("MIC…"))
	case voice.StateRecording:
		left = append(left, m.Styles.RecordingBadge.Render("● REC"))
	case voice.StateEncoding, voice.StateSending:
		left = append(left, m.Styles.RecordingBadge.Render("SENDING"))
	case voice.StateLegacyPending:
		left = append(left, m.Styles.RecordingBadge.Render("LISTENING"))
	}
	if m.VoiceChatMode {
		left = append(left, m.Styles.VoiceModeBadge.Render("VOICE CHAT"))
	}
	if m.ConversationID != "" {
		left = append(left, m.Styles.StatusText.Render(TruncateRunes(m.conversationTitle(), 30)))
	}

	lang := m.LangName
	if lang == "" {
		lang = m.LangCode
	}
	right := []string{
		m.Styles.StatusText.Render(lang),
		m.Styles.StatusText.Render(m.ThemeName),
		m.Styles.Hint.Render("Help: ^O"),
	}

	leftSide := strings.Join(left, "  ")
	rightSide := strings.Join(right, "  ")

	gap := m.WindowWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide) - 2
	if gap < 1 {
		gap = 1
	}
	bar := leftSide + strings.Repeat(" ", gap) + rightSide

	return lipgloss.NewStyle().
		Width(m.WindowWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#333333")).
		Padding(0, 1).
		Render(bar)
}

func (m *Model) conversationTitle() string {
	for _, c := range m.Conversations {
		if c.ID == m.ConversationID {
			return c.Title
		}
	}
	return m.ConversationID
}

func (m *Model) renderToast() string {
	if m.Toast == "" {
		return ""
	}
	return m.Styles.Toast.Render(m.Toast)
}

func (m *Model) renderConversationsModal() string {
	title := m.Styles.ModalTitle.Render(fmt.Sprintf("Conversations (%d)", len(m.Conversations)))

	var body string
	if len(m.Conversations) == 0 {
		body = m.Styles.ModalItem.Render(m.Styles.Hint.Render("No saved conversations"))
	} else {
		items := make([]string, 0, len(m.Conversations))
		for i, conv := range m.Conversations {
			selected := i == m.ConvSelectedIdx
			cursor := "  "
			if selected {
				cursor = "> "
			}
			ts := m.Styles.Hint.Render(conv.Timestamp)
			width := m.modalContentWidth() - 2 - len(cursor) - 1 - lipgloss.Width(conv.Timestamp)
			line := fmt.Sprintf("%s%s %s", cursor, TruncateRunes(conv.Title, width), ts)
			if selected {
				items = append(items, m.Styles.ModalSelected.Render(line))
			} else {
				items = append(items, m.Styles.ModalItem.Render(line))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	hintText := "↑/↓: navigate • Enter: load • d: delete • r: refresh • Esc: close"
	if m.ConvConfirmDel && m.ConvSelectedIdx < len(m.Conversations) {
		hintText = fmt.Sprintf("Delete %q? y/n", TruncateRunes(m.Conversations[m.ConvSelectedIdx].Title, 25))
	}
	hint := m.Styles.Hint.Width(m.modalContentWidth()).PaddingTop(1).Render(hintText)

	return lipgloss.JoinVertical(lipgloss.Left, title, body, hint)
}

func (m *Model) renderLanguageModal() string {
	title := m.Styles.ModalTitle.Render("Select Language")

	items := make([]string, 0, len(m.Languages))
	for i, lang := range m.Languages {
		selected := i == m.LangSelectedIdx
		cursor := "  "
		if selected {
			cursor = "> "
		}
		name := lang.Name
		if lang.Code == m.LangCode {
			name = "● " + name
		} else {
			name = "  " + name
		}
		line := cursor + name
		if selected {
			items = append(items, m.Styles.ModalSelected.Render(line))
		} else {
			items = append(items, m.Styles.ModalItem.Render(line))
		}
	}
	body := lipgloss.JoinVertical(lipgloss.Left, items...)

	hint := m.Styles.Hint.
		Width(m.modalContentWidth()).
		PaddingTop(1).
		Render("↑/↓: navigate • Enter: select • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, hint)
}

func (m *Model) renderTranslationModal() string {
	title := m.Styles.ModalTitle.Render("Translation (" + m.languageNameFor(m.Translation.Language) + ")")

	original := m.Styles.ModalHeading.Render("Original")
	originalBody := m.Styles.ModalItem.Render(m.Translation.Original)
	translated := m.Styles.ModalHeading.Render("Translation")
	translatedBody := m.Styles.ModalItem.Render(m.Translation.Translation)

	hint := m.Styles.Hint.
		Width(m.modalContentWidth()).
		PaddingTop(1).
		Render("c: copy • s: speak • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left,
		title, original, originalBody, "", translated, translatedBody, hint)
}

func (m *Model) renderShortcutsModal() string {
	title := m.Styles.ModalTitle.Render("Keyboard Shortcuts")

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send Message"},
		{"Ctrl+J", "Insert Newline"},
		{"Ctrl+R", "Start/Stop Recording"},
		{"Ctrl+V", "Toggle Voice Chat Mode"},
		{"Ctrl+S", "Speak Last Reply"},
		{"Ctrl+G", "Translate Last Reply"},
		{"Ctrl+Y", "Copy Last Reply"},
		{"Ctrl+H", "Conversation History"},
		{"Ctrl+L", "Select Language"},
		{"Ctrl+T", "Toggle Theme"},
		{"Ctrl+N", "Clear Chat"},
		{"Ctrl+O", "View Shortcuts (this menu)"},
		{"Ctrl+C", "Quit"},
	}

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFCC80")).
		Bold(true).
		Width(10)

	var items []string
	for _, s := range shortcuts {
		line := fmt.Sprintf("%s %s", keyStyle.Render(s.key), m.Styles.StatusText.Render(s.desc))
		items = append(items, m.Styles.ModalItem.Render(line))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, items...)

	hint := m.Styles.Hint.
		Width(m.modalContentWidth()).
		PaddingTop(1).
		Render("Esc/Enter: close")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, hint)
}

func (m *Model) renderClearConfirm() string {
	title := m.Styles.ModalTitle.Render("Clear Chat")
	body := m.Styles.ModalItem.Render("Delete the current chat history? This cannot be undone.")
	hint := m.Styles.Hint.
		Width(m.modalContentWidth()).
		PaddingTop(1).
		Render("y: clear • n: cancel")
	return lipgloss.JoinVertical(lipgloss.Left, title, body, hint)
}

func (m *Model) View() string {
	inputWidth := m.WindowWidth - 4
	if inputWidth < 20 {
		inputWidth = 20
	}
	inputBox := m.Styles.InputBox.Width(inputWidth).Render(m.TextInput.View())

	toast := m.renderToast()
	chatParts := []string{
		m.Styles.Title.Render("PARLEY"),
		"",
		m.Viewport.View(),
		"",
	}
	if toast != "" {
		chatParts = append(chatParts, toast)
	}
	chatParts = append(chatParts, inputBox)

	chatContent := lipgloss.JoinVertical(lipgloss.Center, chatParts...)
	chatArea := lipgloss.PlaceHorizontal(m.WindowWidth, lipgloss.Center, chatContent)

	content := lipgloss.JoinVertical(lipgloss.Left, chatArea, m.renderStatusBar())

	switch {
	case m.ConfirmClear:
		return m.placeModal(m.renderClearConfirm())
	case m.TranslationOpen:
		return m.placeModal(m.renderTranslationModal())
	case m.LangOpen:
		return m.placeModal(m.renderLanguageModal())
	case m.ConvOpen:
		return m.placeModal(m.renderConversationsModal())
	case m.ShortcutsOpen:
		return m.placeModal(m.renderShortcutsModal())
	}

	return content
}
