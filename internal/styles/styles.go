package styles

import "github.com/charmbracelet/lipgloss"

// Set holds every rendered style for one theme. The UI rebuilds it whenever
// the theme preference flips or the window resizes, so the swap applies
// before any network call.
type Set struct {
	Title lipgloss.Style

	UserLabel      lipgloss.Style
	UserMsg        lipgloss.Style
	AssistantLabel lipgloss.Style
	AssistantMsg   lipgloss.Style
	Timestamp      lipgloss.Style
	Error          lipgloss.Style

	InputBox lipgloss.Style

	Modal         lipgloss.Style
	ModalTitle    lipgloss.Style
	ModalItem     lipgloss.Style
	ModalSelected lipgloss.Style
	ModalHeading  lipgloss.Style
	Hint          lipgloss.Style

	Toast       lipgloss.Style
	StickyToast lipgloss.Style

	RecordingBadge lipgloss.Style
	VoiceModeBadge lipgloss.Style
	StatusText     lipgloss.Style

	WelcomeArt      lipgloss.Style
	WelcomeSubtitle lipgloss.Style
}

// NewSet builds the style set for a theme. contentWidth is the inner width of
// modal overlays, baked into the modal styles.
func NewSet(t Theme, contentWidth int) Set {
	return Set{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			Padding(0, 1),

		UserLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(t.Secondary).
			Bold(true).
			Padding(0, 1).
			MarginRight(1),

		UserMsg: lipgloss.NewStyle().
			Foreground(t.TextPrimary).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(t.Secondary),

		AssistantLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(t.Primary).
			Bold(true).
			Padding(0, 1).
			MarginRight(1),

		AssistantMsg: lipgloss.NewStyle().
			Foreground(t.TextPrimary).
			PaddingTop(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(t.Primary),

		Timestamp: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(1, 2),

		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			Width(contentWidth).
			MarginBottom(1),

		ModalItem: lipgloss.NewStyle().
			Padding(0, 1).
			Width(contentWidth),

		ModalSelected: lipgloss.NewStyle().
			Padding(0, 1).
			Width(contentWidth).
			Background(t.BgElevated).
			Foreground(t.TextPrimary).
			Bold(true),

		ModalHeading: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary).
			PaddingLeft(1).
			Width(contentWidth),

		Hint: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		Toast: lipgloss.NewStyle().
			Foreground(t.TextPrimary).
			Background(t.BgElevated).
			Padding(0, 1),

		StickyToast: lipgloss.NewStyle().
			Foreground(t.Info).
			Bold(true),

		RecordingBadge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(t.Error).
			Padding(0, 1),

		VoiceModeBadge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(t.Info).
			Padding(0, 1),

		StatusText: lipgloss.NewStyle().
			Foreground(t.TextSecondary),

		WelcomeArt: lipgloss.NewStyle().
			Foreground(t.TextPrimary).
			Bold(true),

		WelcomeSubtitle: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Italic(true),
	}
}
