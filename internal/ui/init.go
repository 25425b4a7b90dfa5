package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"parley/internal/config"
	"parley/internal/models"
	"parley/internal/store"
	"parley/internal/styles"
	"parley/internal/voice"
)

// InitialModel assembles the UI state. The theme preference is read from the
// local store here, before any network round-trip, so the first frame already
// renders with the user's theme.
func InitialModel(cfg config.Config, backend Backend, voiceCtrl *voice.Controller, prefs *store.Prefs, log *zap.Logger) Model {
	themeName := models.ThemeLight
	if prefs != nil {
		if t, err := prefs.Theme(); err == nil {
			themeName = t
		} else {
			log.Warn("reading theme preference", zap.Error(err))
		}
	}
	styleSet := styles.NewSet(styles.ForName(themeName), ModalWidthMax-6)

	ti := textarea.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = "❯ "
	ti.ShowLineNumbers = false
	ti.CharLimit = 0
	ti.MaxHeight = 6
	ti.SetHeight(2)
	ti.SetWidth(80)
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSet.Title

	vp := viewport.New(60, 15)

	m := Model{
		Backend:    backend,
		Voice:      voiceCtrl,
		Prefs:      prefs,
		Log:        log,
		Cfg:        cfg,
		Viewport:   vp,
		TextInput:  ti,
		Spinner:    sp,
		Messages:   []string{},
		ThemeName:  themeName,
		Styles:     styleSet,
		LangCode:   cfg.Language,
		ModalWidth: ModalWidthMax,
	}

	m.UpdateViewport()
	return m
}

// Init kicks off the startup fetches: the language list and the saved
// conversation list. Both are passive; failures are logged only.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.TextInput.Cursor.BlinkCmd(),
		m.Spinner.Tick,
		m.languagesCmd(),
		m.listConversationsCmd(),
	)
}

// NewProgram wraps the model in a bubbletea program.
func NewProgram(m *Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}
