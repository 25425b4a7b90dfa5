package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"parley/internal/api"
	"parley/internal/config"
	"parley/internal/models"
	"parley/internal/store"
	"parley/internal/styles"
	"parley/internal/voice"
)

const (
	ModalWidthMax = 60
	ModalWidthMin = 30

	WelcomeMessage = "I'm your AI Assistant. How can I help you today?"

	toastDuration       = 2 // seconds
	toastDurationNotice = 3
)

// Generic fallbacks used when a failure carries no structured backend
// message, one per call site.
const (
	errGenericChat      = "An error occurred while processing your request."
	errGenericVoice     = "An error occurred with voice recognition."
	errGenericSpeak     = "An error occurred while speaking."
	errGenericTranslate = "An error occurred during translation."
	errGenericLoad      = "An error occurred while loading the conversation."
	errGenericDelete    = "An error occurred while deleting the conversation."
	errGenericClear     = "An error occurred while clearing the chat."
)

// Backend is the transport surface the UI depends on; *api.Client implements
// it, tests substitute a fake.
type Backend interface {
	Chat(ctx context.Context, message string) (api.ChatResponse, error)
	VoiceChat(ctx context.Context, audio, conversationID string) (api.VoiceChatResponse, error)
	Voice(ctx context.Context) (api.VoiceResponse, error)
	Speak(ctx context.Context, text, voice, lang string) (api.SpeakResponse, error)
	Translate(ctx context.Context, text, lang string) (api.TranslateResponse, error)
	Conversations(ctx context.Context) ([]models.ConversationRef, error)
	LoadConversation(ctx context.Context, id string) ([]models.ChatMessage, error)
	DeleteConversation(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	SaveSettings(ctx context.Context, theme string) error
	AvailableLanguages(ctx context.Context) (map[string]string, error)
}

// Messages resuming completed backend round-trips on the Update loop. Each
// in-flight request completes independently; overlapping chat sends append
// their results in whichever order the responses arrive.
type (
	ChatResultMsg struct {
		Response  string
		Timestamp string
	}
	ChatFailedMsg struct{ Err error }

	CaptureBegunMsg struct{ Outcome voice.CaptureOutcome }
	VoiceTurnMsg    struct {
		Result voice.Result
		Err    error
	}
	LegacyVoiceMsg struct {
		Message string
		Engine  string
		Err     error
	}

	SpeakDoneMsg struct {
		Engine string
		Err    error
	}
	TranslationMsg struct {
		Resp api.TranslateResponse
		Err  error
	}

	ConversationsMsg struct {
		Refs []models.ConversationRef
		Err  error
	}
	ConversationLoadedMsg struct {
		ID       string
		Messages []models.ChatMessage
		Err      error
	}
	ConversationDeletedMsg struct {
		ID  string
		Err error
	}
	ChatClearedMsg struct{ Err error }

	ThemeSavedMsg struct{ Err error }
	LanguagesMsg  struct {
		Languages map[string]string
		Err       error
	}

	toastExpiredMsg struct{ id int }
)

// Model is the session state: every flag the controller owns (recording
// affordance, voice chat mode, theme, active conversation) lives here and is
// only mutated on the Update loop.
type Model struct {
	Backend Backend
	Voice   *voice.Controller
	Prefs   *store.Prefs
	Log     *zap.Logger
	Cfg     config.Config

	Viewport  viewport.Model
	TextInput textarea.Model
	Spinner   spinner.Model
	Renderer  *glamour.TermRenderer

	// Transcript entries, already styled.
	Messages []string

	// PendingTurns counts chat sends in flight; the typing indicator shows
	// while it is positive.
	PendingTurns int

	ThemeName string
	Styles    styles.Set

	VoiceChatMode  bool
	ConversationID string

	Conversations   []models.ConversationRef
	ConvOpen        bool
	ConvSelectedIdx int
	ConvConfirmDel  bool

	Languages       []models.Language
	LangOpen        bool
	LangSelectedIdx int
	LangCode        string
	LangName        string

	TranslationOpen bool
	Translation     api.TranslateResponse

	ShortcutsOpen bool
	ConfirmClear  bool

	Toast   string
	toastID int

	// LastReply is the raw text of the newest assistant reply, the target of
	// the speak/translate/copy actions.
	LastReply string

	ModalWidth int

	WindowWidth  int
	WindowHeight int
}
