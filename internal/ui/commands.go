package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"parley/internal/voice"
)

// Every backend round-trip runs as a tea.Cmd and resumes the Update loop
// with a typed message. No command carries a timeout and none is cancelled
// after dispatch; a hung backend leaves its turn waiting until the transport
// errors out.

func (m *Model) chatCmd(input string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.Backend.Chat(context.Background(), input)
		if err != nil {
			return ChatFailedMsg{Err: err}
		}
		return ChatResultMsg{Response: resp.Response, Timestamp: resp.Timestamp}
	}
}

func (m *Model) beginCaptureCmd() tea.Cmd {
	return func() tea.Msg {
		outcome := m.Voice.BeginCapture(context.Background())
		if outcome == voice.CaptureFellBack {
			// Permission failure is not surfaced; the legacy path runs
			// immediately and only its own failure reaches the user.
			resp, err := m.Voice.Legacy(context.Background())
			return LegacyVoiceMsg{Message: resp.Message, Engine: resp.Engine, Err: err}
		}
		return CaptureBegunMsg{Outcome: outcome}
	}
}

func (m *Model) stopAndSendCmd(conversationID string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.Voice.StopAndSend(context.Background(), conversationID)
		return VoiceTurnMsg{Result: res, Err: err}
	}
}

func (m *Model) legacyVoiceCmd() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.Voice.Legacy(context.Background())
		return LegacyVoiceMsg{Message: resp.Message, Engine: resp.Engine, Err: err}
	}
}

func (m *Model) speakCmd(text, lang string) tea.Cmd {
	voiceName := m.Cfg.Voice
	return func() tea.Msg {
		resp, err := m.Backend.Speak(context.Background(), text, voiceName, lang)
		return SpeakDoneMsg{Engine: resp.Engine, Err: err}
	}
}

func (m *Model) translateCmd(text, lang string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.Backend.Translate(context.Background(), text, lang)
		return TranslationMsg{Resp: resp, Err: err}
	}
}

func (m *Model) listConversationsCmd() tea.Cmd {
	return func() tea.Msg {
		refs, err := m.Backend.Conversations(context.Background())
		return ConversationsMsg{Refs: refs, Err: err}
	}
}

func (m *Model) loadConversationCmd(id string) tea.Cmd {
	return func() tea.Msg {
		msgs, err := m.Backend.LoadConversation(context.Background(), id)
		return ConversationLoadedMsg{ID: id, Messages: msgs, Err: err}
	}
}

func (m *Model) deleteConversationCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.Backend.DeleteConversation(context.Background(), id)
		return ConversationDeletedMsg{ID: id, Err: err}
	}
}

func (m *Model) clearChatCmd() tea.Cmd {
	return func() tea.Msg {
		return ChatClearedMsg{Err: m.Backend.Clear(context.Background())}
	}
}

func (m *Model) saveThemeCmd(theme string) tea.Cmd {
	return func() tea.Msg {
		return ThemeSavedMsg{Err: m.Backend.SaveSettings(context.Background(), theme)}
	}
}

func (m *Model) languagesCmd() tea.Cmd {
	return func() tea.Msg {
		langs, err := m.Backend.AvailableLanguages(context.Background())
		return LanguagesMsg{Languages: langs, Err: err}
	}
}

// showToast replaces the current transient notice and schedules its expiry.
func (m *Model) showToast(text string, seconds int) tea.Cmd {
	m.Toast = text
	m.toastID++
	id := m.toastID
	return tea.Tick(time.Duration(seconds)*time.Second, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
