package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"parley/internal/api"
	"parley/internal/models"
	"parley/internal/voice"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.Spinner, spCmd = m.Spinner.Update(msg)
		if m.PendingTurns > 0 {
			m.UpdateViewport()
		}
		return m, spCmd

	case tea.KeyMsg:
		if handled, model, cmd := m.updateModals(msg); handled {
			return model, cmd
		}
		return m.updateMainKeys(msg)

	case ChatResultMsg:
		m.PendingTurns--
		ts := msg.Timestamp
		if ts == "" {
			ts = clockNow()
		}
		m.appendAssistantEntry(msg.Response, ts)
		m.UpdateViewport()
		return m, m.listConversationsCmd()

	case ChatFailedMsg:
		m.PendingTurns--
		m.appendErrorEntry(api.ErrorMessage(msg.Err, errGenericChat))
		m.UpdateViewport()
		return m, nil

	case CaptureBegunMsg:
		switch msg.Outcome {
		case voice.CaptureStarted:
			return m, nil
		case voice.CaptureDiscarded:
			return m, m.showToast("No audio captured.", toastDuration)
		}
		return m, nil

	case VoiceTurnMsg:
		return m.handleVoiceTurn(msg)

	case LegacyVoiceMsg:
		if msg.Err != nil {
			m.appendErrorEntry(api.ErrorMessage(msg.Err, errGenericVoice))
			m.UpdateViewport()
			return m, nil
		}
		// A legacy recognition always auto-sends: the recognized text passes
		// through the input box and straight into the message pipeline.
		m.TextInput.SetValue(msg.Message)
		toastCmd := m.showToast(
			fmt.Sprintf("Recognized: %q (using %s)", msg.Message, msg.Engine),
			toastDurationNotice,
		)
		sendCmd := m.submitInput()
		return m, tea.Batch(toastCmd, sendCmd)

	case SpeakDoneMsg:
		if msg.Err != nil {
			m.appendErrorEntry(api.ErrorMessage(msg.Err, errGenericSpeak))
			m.UpdateViewport()
			return m, nil
		}
		return m, m.showToast(fmt.Sprintf("Speaking using %s engine", msg.Engine), toastDuration)

	case TranslationMsg:
		if msg.Err != nil {
			return m, m.showToast("Error: "+api.ErrorMessage(msg.Err, errGenericTranslate), toastDurationNotice)
		}
		if msg.Resp.Translation == "" {
			return m, m.showToast("Translation failed. Please try again.", toastDuration)
		}
		m.Translation = msg.Resp
		m.TranslationOpen = true
		return m, nil

	case ConversationsMsg:
		if msg.Err != nil {
			// Passive background refresh; never surfaced.
			m.Log.Warn("refreshing conversation list", zap.Error(msg.Err))
			return m, nil
		}
		m.Conversations = msg.Refs
		if m.ConvSelectedIdx >= len(m.Conversations) {
			m.ConvSelectedIdx = 0
		}
		return m, nil

	case ConversationLoadedMsg:
		if msg.Err != nil {
			m.appendErrorEntry(api.ErrorMessage(msg.Err, errGenericLoad))
			m.UpdateViewport()
			return m, nil
		}
		m.loadTranscript(msg.ID, msg.Messages)
		return m, m.listConversationsCmd()

	case ConversationDeletedMsg:
		if msg.Err != nil {
			m.appendErrorEntry(api.ErrorMessage(msg.Err, errGenericDelete))
			m.UpdateViewport()
			return m, nil
		}
		if msg.ID == m.ConversationID {
			m.ConversationID = ""
		}
		return m, tea.Batch(
			m.showToast("Conversation deleted", toastDuration),
			m.listConversationsCmd(),
		)

	case ChatClearedMsg:
		if msg.Err != nil {
			m.appendErrorEntry(api.ErrorMessage(msg.Err, errGenericClear))
			m.UpdateViewport()
			return m, nil
		}
		m.Messages = nil
		m.ConversationID = ""
		m.LastReply = ""
		m.UpdateViewport()
		return m, tea.Batch(
			m.showToast("Chat cleared.", toastDuration),
			m.listConversationsCmd(),
		)

	case ThemeSavedMsg:
		if msg.Err != nil {
			// Best effort: local theme already applied, never reverted.
			m.Log.Warn("saving theme setting", zap.Error(msg.Err))
		}
		return m, nil

	case LanguagesMsg:
		if msg.Err != nil {
			m.Log.Warn("loading languages", zap.Error(msg.Err))
			return m, nil
		}
		m.Languages = sortedLanguages(msg.Languages)
		m.LangName = m.languageNameFor(m.LangCode)
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.Toast = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.WindowWidth = msg.Width
		m.WindowHeight = msg.Height
		m.resizeModal()
		m.rebuildStyles()
		m.Viewport.Width = msg.Width - 4
		m.updateInputLayout()
		m.rebuildRenderer()
		m.UpdateViewport()
		return m, nil
	}

	m.TextInput, tiCmd = m.TextInput.Update(msg)
	m.updateInputLayout()
	m.Viewport, vpCmd = m.Viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

// updateMainKeys handles keys when no modal is open.
func (m *Model) updateMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		return m, m.submitInput()

	case tea.KeyCtrlR:
		return m.toggleRecording()

	case tea.KeyCtrlV:
		return m.toggleVoiceChatMode()

	case tea.KeyCtrlT:
		return m.toggleTheme()

	case tea.KeyCtrlH:
		m.ConvOpen = true
		m.ConvSelectedIdx = 0
		m.ConvConfirmDel = false
		return m, m.listConversationsCmd()

	case tea.KeyCtrlL:
		if len(m.Languages) == 0 {
			return m, m.showToast("Language list not loaded yet.", toastDuration)
		}
		m.LangOpen = true
		for i, l := range m.Languages {
			if l.Code == m.LangCode {
				m.LangSelectedIdx = i
				break
			}
		}
		return m, nil

	case tea.KeyCtrlN:
		m.ConfirmClear = true
		return m, nil

	case tea.KeyCtrlS:
		if m.LastReply == "" {
			return m, nil
		}
		return m, m.speakCmd(m.LastReply, m.LangCode)

	case tea.KeyCtrlG:
		if m.LastReply == "" {
			return m, nil
		}
		return m, m.translateCmd(m.LastReply, m.LangCode)

	case tea.KeyCtrlY:
		if m.LastReply == "" {
			return m, nil
		}
		if err := clipboard.WriteAll(m.LastReply); err != nil {
			return m, m.showToast("Clipboard unavailable.", toastDuration)
		}
		return m, m.showToast("Copied to clipboard!", toastDuration)

	case tea.KeyCtrlO:
		m.ShortcutsOpen = true
		return m, nil
	}

	if isNewlineShortcut(msg) {
		m.TextInput.InsertString("\n")
		m.updateInputLayout()
		return m, nil
	}

	var tiCmd tea.Cmd
	m.TextInput, tiCmd = m.TextInput.Update(msg)
	m.updateInputLayout()
	return m, tiCmd
}

// submitInput runs the message pipeline on the current input box value:
// trimmed-empty input is a no-op; otherwise the user message renders
// optimistically with the client clock and one chat request goes out. Sends
// while previous turns are still pending are permitted, and responses append
// in completion order.
func (m *Model) submitInput() tea.Cmd {
	input := strings.TrimSpace(m.TextInput.Value())
	if input == "" {
		return nil
	}

	m.appendUserEntry(input, clockNow())
	m.TextInput.Reset()
	m.updateInputLayout()
	m.PendingTurns++
	m.UpdateViewport()

	return tea.Batch(m.chatCmd(input), m.Spinner.Tick)
}

// toggleRecording is the capture control: start from idle, stop while
// capturing, ignored while a submission is in flight.
func (m *Model) toggleRecording() (tea.Model, tea.Cmd) {
	switch m.Voice.Toggle() {
	case voice.DecisionCapture:
		return m, m.beginCaptureCmd()
	case voice.DecisionStop:
		return m, m.stopAndSendCmd(m.conversationIDOrDefault())
	case voice.DecisionLegacy:
		return m, tea.Batch(
			m.showToast("Listening (server-side)…", toastDurationNotice),
			m.legacyVoiceCmd(),
		)
	default:
		return m, nil
	}
}

func (m *Model) toggleVoiceChatMode() (tea.Model, tea.Cmd) {
	m.VoiceChatMode = !m.VoiceChatMode
	if m.VoiceChatMode {
		return m, m.showToast(
			"Voice chat mode activated. Press ctrl+r to start a voice conversation.",
			toastDurationNotice,
		)
	}
	return m, m.showToast("Voice chat mode deactivated.", toastDuration)
}

// toggleTheme applies the new theme locally (styles, renderer, preference
// store) before the best-effort settings call goes out. Sync failure never
// reverts it.
func (m *Model) toggleTheme() (tea.Model, tea.Cmd) {
	if m.ThemeName == models.ThemeLight {
		m.ThemeName = models.ThemeDark
	} else {
		m.ThemeName = models.ThemeLight
	}
	m.rebuildStyles()
	m.rebuildRenderer()
	m.UpdateViewport()

	if m.Prefs != nil {
		if err := m.Prefs.SetTheme(m.ThemeName); err != nil {
			m.Log.Warn("persisting theme preference", zap.Error(err))
		}
	}
	return m, m.saveThemeCmd(m.ThemeName)
}

func (m *Model) handleVoiceTurn(msg VoiceTurnMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.appendErrorEntry(api.ErrorMessage(msg.Err, errGenericVoice))
		m.UpdateViewport()
		return m, nil
	}
	if !msg.Result.Submitted {
		return m, m.showToast("No audio captured.", toastDuration)
	}

	var cmds []tea.Cmd
	if msg.Result.Transcription != "" {
		m.appendUserEntry(msg.Result.Transcription, clockNow())
		if msg.Result.Response != "" {
			m.appendAssistantEntry(msg.Result.Response, clockNow())
			cmds = append(cmds, m.listConversationsCmd())
			if m.VoiceChatMode {
				cmds = append(cmds, m.speakCmd(msg.Result.Response, m.LangCode))
			}
		}
	}
	m.UpdateViewport()
	return m, tea.Batch(cmds...)
}

// loadTranscript replaces the visible transcript with a conversation's
// history, keeping system-role entries out of view.
func (m *Model) loadTranscript(id string, history []models.ChatMessage) {
	m.ConvOpen = false
	m.ConversationID = id
	m.Messages = nil
	m.LastReply = ""

	for _, msg := range history {
		ts := msg.Timestamp
		if ts == "" {
			ts = clockNow()
		}
		switch msg.Role {
		case models.RoleUser:
			m.appendUserEntry(msg.Content, ts)
		case models.RoleAssistant:
			m.appendAssistantEntry(msg.Content, ts)
		}
	}
	m.UpdateViewport()
}

func isNewlineShortcut(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "shift+enter", "shift+return", "ctrl+j", "alt+enter":
		return true
	default:
		return false
	}
}
