package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atotto/clipboard"
)

// updateModals routes a key press to whichever overlay is open. It reports
// handled=false only when no overlay is active, so overlays always swallow
// input before the main key map sees it.
func (m *Model) updateModals(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case m.ConfirmClear:
		model, cmd := m.updateClearConfirm(msg)
		return true, model, cmd
	case m.TranslationOpen:
		model, cmd := m.updateTranslationModal(msg)
		return true, model, cmd
	case m.LangOpen:
		model, cmd := m.updateLanguageModal(msg)
		return true, model, cmd
	case m.ConvOpen:
		model, cmd := m.updateConversationsModal(msg)
		return true, model, cmd
	case m.ShortcutsOpen:
		model, cmd := m.updateShortcutsModal(msg)
		return true, model, cmd
	}
	return false, m, nil
}

func (m *Model) updateClearConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.ConfirmClear = false
		return m, m.clearChatCmd()
	case "n", "N", "esc", "ctrl+c":
		m.ConfirmClear = false
		return m, nil
	}
	return m, nil
}

func (m *Model) updateTranslationModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		if err := clipboard.WriteAll(m.Translation.Translation); err != nil {
			return m, m.showToast("Clipboard unavailable.", toastDuration)
		}
		return m, m.showToast("Translation copied to clipboard!", toastDuration)
	case "s":
		// Speak the translated text in the language it was translated into,
		// even if the selector moved since.
		return m, m.speakCmd(m.Translation.Translation, m.Translation.Language)
	case "esc", "q", "enter", "ctrl+c":
		m.TranslationOpen = false
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLanguageModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.LangSelectedIdx > 0 {
			m.LangSelectedIdx--
		}
	case "down", "j":
		if m.LangSelectedIdx < len(m.Languages)-1 {
			m.LangSelectedIdx++
		}
	case "enter":
		if m.LangSelectedIdx < len(m.Languages) {
			sel := m.Languages[m.LangSelectedIdx]
			m.LangCode = sel.Code
			m.LangName = sel.Name
			m.LangOpen = false
			return m, m.showToast("Language set to "+sel.Name, toastDuration)
		}
		m.LangOpen = false
	case "esc", "q", "ctrl+c":
		m.LangOpen = false
	}
	return m, nil
}

func (m *Model) updateConversationsModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ConvConfirmDel {
		switch msg.String() {
		case "y", "Y", "enter":
			m.ConvConfirmDel = false
			if m.ConvSelectedIdx < len(m.Conversations) {
				return m, m.deleteConversationCmd(m.Conversations[m.ConvSelectedIdx].ID)
			}
			return m, nil
		case "n", "N", "esc", "ctrl+c":
			m.ConvConfirmDel = false
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.ConvSelectedIdx > 0 {
			m.ConvSelectedIdx--
		}
	case "down", "j":
		if m.ConvSelectedIdx < len(m.Conversations)-1 {
			m.ConvSelectedIdx++
		}
	case "enter":
		if m.ConvSelectedIdx < len(m.Conversations) {
			return m, m.loadConversationCmd(m.Conversations[m.ConvSelectedIdx].ID)
		}
	case "d", "x":
		if m.ConvSelectedIdx < len(m.Conversations) {
			m.ConvConfirmDel = true
		}
	case "r":
		return m, m.listConversationsCmd()
	case "esc", "q", "ctrl+c":
		m.ConvOpen = false
		m.ConvConfirmDel = false
	}
	return m, nil
}

func (m *Model) updateShortcutsModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter", "ctrl+c", "ctrl+o":
		m.ShortcutsOpen = false
	}
	return m, nil
}
