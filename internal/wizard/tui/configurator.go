package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/autodm/internal/automation"
	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/flow"
	"github.com/muurk/autodm/internal/preview"
	"github.com/muurk/autodm/internal/session"
	"github.com/muurk/autodm/internal/ui"
)

// Focus is the editing panel receiving key input
type Focus int

const (
	FocusPicker Focus = iota
	FocusKeywords
	FocusMessage
)

// lockedOptions are trigger choices listed in the picker but not selectable
var lockedOptions = []string{"Any post or reel", "Next post or reel"}

// completedMsg carries the assembled automation to the app model
type completedMsg struct {
	config *automation.Config
}

// ConfiguratorModel is the two-column editing screen: panels on the left,
// the phone preview on the right. Both are redrawn from the session after
// every command, so they cannot disagree.
type ConfiguratorModel struct {
	sess  *session.Session
	posts []catalog.Post

	Width  int
	Height int

	Focus  Focus
	Cursor int // Index into posts, then lockedOptions

	KeywordInput textinput.Model
	MessageInput textarea.Model
	Preview      viewport.Model

	ShowingInfo bool
	info        string

	Status    string
	StatusErr bool

	Help help.Model
	Keys configuratorKeyMap
}

// NewConfiguratorModel creates the configurator for sess
func NewConfiguratorModel(sess *session.Session) ConfiguratorModel {
	keywords := textinput.New()
	keywords.Placeholder = "Add commas to separate words"
	keywords.Prompt = "› "
	keywords.CharLimit = 120

	message := textarea.New()
	message.Placeholder = "Write the DM they get after tapping the button"
	message.ShowLineNumbers = false
	message.CharLimit = 1000
	message.SetHeight(3)

	m := ConfiguratorModel{
		sess:         sess,
		posts:        sess.Store().Posts(),
		KeywordInput: keywords,
		MessageInput: message,
		Preview:      viewport.New(ui.PhoneWidth, 20),
		Help:         help.New(),
		Keys:         newConfiguratorKeyMap(),
	}
	m.setSize(0, 0)
	m.refreshPreview()
	return m
}

// Init implements tea.Model
func (m ConfiguratorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m ConfiguratorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.ShowingInfo {
		// Any key closes the info modal
		if _, ok := msg.(tea.KeyMsg); ok {
			m.ShowingInfo = false
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Reset):
			return m.reset()
		case key.Matches(msg, m.Keys.Tab):
			return m.cycleFocus()
		case key.Matches(msg, m.Keys.ScrollUp):
			m.Preview.ViewUp()
			return m, nil
		case key.Matches(msg, m.Keys.ScrollDown):
			m.Preview.ViewDown()
			return m, nil
		}

		switch m.Focus {
		case FocusKeywords:
			return m.updateKeywords(msg)
		case FocusMessage:
			return m.updateMessage(msg)
		default:
			return m.updatePicker(msg)
		}
	}

	// Cursor blink and other input messages
	return m.forward(msg)
}

func (m ConfiguratorModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Left):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.Keys.Right):
		if m.Cursor < len(m.posts)+len(lockedOptions)-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.Select):
		return m.selectCursor()
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfiguratorModel) selectCursor() (tea.Model, tea.Cmd) {
	if m.Cursor >= len(m.posts) {
		m.setStatus(lockedOptions[m.Cursor-len(m.posts)]+" is a PRO feature", true)
		return m, nil
	}

	post := m.posts[m.Cursor]
	if err := m.sess.SelectPost(post.ID); err != nil {
		m.setError(err)
		return m, nil
	}
	m.setStatus("Selected "+post.String(), false)
	m.refreshPreview()
	return m.focus(FocusKeywords)
}

func (m ConfiguratorModel) updateKeywords(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.AddKeyword):
		if err := m.sess.SubmitComment(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.KeywordInput.Reset()
		m.setStatus("Keyword added", false)
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, m.Keys.Next):
		if err := m.sess.AdvanceToMessaging(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("", false)
		m.refreshPreview()
		return m.focus(FocusMessage)
	}

	return m.forward(msg)
}

func (m ConfiguratorModel) updateMessage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Send):
		if err := m.sess.SubmitMessage(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.MessageInput.Reset()
		m.setStatus("Message added", false)
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, m.Keys.Complete):
		cfg, err := m.sess.Complete(context.Background())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("", false)
		return m, func() tea.Msg { return completedMsg{config: cfg} }

	case key.Matches(msg, m.Keys.Info):
		m.info = renderInfo(m.Width)
		m.ShowingInfo = true
		return m, nil
	}

	return m.forward(msg)
}

// forward passes msg to the focused input and mirrors its value into the session draft
func (m ConfiguratorModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.Focus {
	case FocusKeywords:
		before := m.KeywordInput.Value()
		m.KeywordInput, cmd = m.KeywordInput.Update(msg)
		if v := m.KeywordInput.Value(); v != before {
			m.sess.SetKeywordDraft(v)
			m.refreshPreview()
		}

	case FocusMessage:
		before := m.MessageInput.Value()
		m.MessageInput, cmd = m.MessageInput.Update(msg)
		if v := m.MessageInput.Value(); v != before {
			m.sess.SetMessageDraft(v)
			m.refreshPreview()
		}
	}

	return m, cmd
}

// focus moves key input to f if its panel is visible
func (m ConfiguratorModel) focus(f Focus) (tea.Model, tea.Cmd) {
	panels := m.sess.Panels()
	if (f == FocusKeywords && !panels.CommentConfig) || (f == FocusMessage && !panels.MessageConfig) {
		return m, nil
	}

	m.Focus = f
	m.Keys.focus = f
	m.KeywordInput.Blur()
	m.MessageInput.Blur()

	var cmd tea.Cmd
	switch f {
	case FocusKeywords:
		cmd = m.KeywordInput.Focus()
	case FocusMessage:
		cmd = m.MessageInput.Focus()
	}
	return m, cmd
}

func (m ConfiguratorModel) cycleFocus() (tea.Model, tea.Cmd) {
	panels := m.sess.Panels()
	order := []Focus{FocusPicker}
	if panels.CommentConfig {
		order = append(order, FocusKeywords)
	}
	if panels.MessageConfig {
		order = append(order, FocusMessage)
	}

	next := order[0]
	for i, f := range order {
		if f == m.Focus {
			next = order[(i+1)%len(order)]
			break
		}
	}
	return m.focus(next)
}

// reset starts the configuration over; entered comments and messages stay in the preview
func (m ConfiguratorModel) reset() (tea.Model, tea.Cmd) {
	m.sess.Reset()
	m.KeywordInput.Reset()
	m.MessageInput.Reset()
	m.Cursor = 0
	m.setStatus("Started over", false)
	m.refreshPreview()
	return m.focus(FocusPicker)
}

func (m *ConfiguratorModel) setStatus(text string, isErr bool) {
	m.Status = text
	m.StatusErr = isErr
}

func (m *ConfiguratorModel) setError(err error) {
	m.setStatus(describeError(err), true)
}

// describeError turns a rejected command into a short instruction
func describeError(err error) string {
	var cmdErr *session.CommandError
	if !errors.As(err, &cmdErr) {
		return err.Error()
	}

	switch cmdErr.Kind {
	case session.KindRejection:
		return "Type something first"
	case session.KindInvalidTransition:
		return "Finish the current step first"
	case session.KindUnknownPost:
		return "That post is no longer available"
	default:
		return cmdErr.Err.Error()
	}
}

func (m *ConfiguratorModel) setSize(width, height int) {
	m.Width = width
	m.Height = height

	left := m.leftWidth()
	m.KeywordInput.Width = max(left-10, 10)
	m.MessageInput.SetWidth(max(left-6, 10))
	m.Preview.Width = ui.PhoneWidth
	m.Preview.Height = max(ContentHeight(height)-1, 10)
}

func (m ConfiguratorModel) leftWidth() int {
	// Container border, gap, phone column
	return max(max(m.Width, MinTerminalWidth)-4-2-ui.PhoneWidth, 30)
}

// refreshPreview redraws the phone from the session descriptor
func (m *ConfiguratorModel) refreshPreview() {
	d := m.sess.Descriptor()
	m.Preview.SetContent(ui.RenderPhone(d))

	// The newest comments and messages are at the bottom
	if d.Screen == preview.ScreenComments || d.Screen == preview.ScreenMessaging {
		m.Preview.GotoBottom()
	} else {
		m.Preview.GotoTop()
	}
}

// View renders the configurator
func (m ConfiguratorModel) View() string {
	if m.ShowingInfo {
		return RenderModal(renderInfoModal(m.info, m.Width), m.Width, m.Height)
	}
	return RenderApplicationContainer(m.buildContent(), m.Help.View(m.Keys), m.Width, m.Height)
}

func (m ConfiguratorModel) buildContent() string {
	panels := m.sess.Panels()
	width := m.leftWidth()

	sections := []string{m.renderPicker(width)}
	if panels.CommentConfig {
		sections = append(sections, m.renderKeywordPanel(width))
	}
	if panels.MessageConfig {
		sections = append(sections, m.renderMessagePanel(width))
	}
	if m.Status != "" {
		style := StatusInfoStyle
		if m.StatusErr {
			style = StatusErrorStyle
		}
		sections = append(sections, style.Render(" "+m.Status))
	}

	left := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", m.Preview.View())
}

func (m ConfiguratorModel) panelStyle(f Focus, width int) lipgloss.Style {
	if m.Focus == f {
		return FocusedPanelStyle.Width(width - 2)
	}
	return PanelStyle.Width(width - 2)
}

func (m ConfiguratorModel) renderPicker(width int) string {
	selected := m.sess.State().SelectedPostID

	// Show a window of tiles that keeps the cursor visible
	fit := max((width-4)/16, 1)
	start := 0
	if m.Cursor < len(m.posts) && m.Cursor >= fit {
		start = m.Cursor - fit + 1
	}
	end := min(start+fit, len(m.posts))

	tiles := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		p := m.posts[i]
		label := "@" + p.Username
		style := TileStyle
		switch {
		case i == m.Cursor:
			style = CursorTileStyle
		case p.ID == selected:
			style = ChosenTileStyle
		}
		if p.ID == selected {
			label = ui.SuccessMarker + " " + label
		}
		tiles = append(tiles, style.Render(truncate(label, 12)+"\n"+preview.FormatLikes(p.LikeCount)))
	}

	var detail string
	if m.Cursor < len(m.posts) {
		p := m.posts[m.Cursor]
		detail = PanelHintStyle.Render(fmt.Sprintf("%d/%d  %s", m.Cursor+1, len(m.posts), truncate(p.Caption, width-12)))
	}

	locked := make([]string, 0, len(lockedOptions))
	for i, label := range lockedOptions {
		line := LockedStyle.Render(ui.LockMarker+" "+label) + " " + ProBadgeStyle.Render("PRO")
		if m.Cursor == len(m.posts)+i {
			line = CursorMarkerStyle.Render("→ ") + line
		} else {
			line = "  " + line
		}
		locked = append(locked, line)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		PanelTitleStyle.Render(flow.StageSelection.Title()),
		lipgloss.JoinHorizontal(lipgloss.Top, tiles...),
		detail,
		strings.Join(locked, "\n"),
	)
	return m.panelStyle(FocusPicker, width).Render(content)
}

func (m ConfiguratorModel) renderKeywordPanel(width int) string {
	words := m.keywords()

	var chips string
	if len(words) == 0 {
		chips = PanelHintStyle.Render("No keywords yet: every comment triggers the DM")
	} else {
		rendered := make([]string, len(words))
		for i, w := range words {
			rendered[i] = KeywordChipStyle.Render(w)
		}
		chips = lipgloss.NewStyle().Width(width - 4).Render(strings.Join(rendered, ""))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		PanelTitleStyle.Render(flow.StageCommentConfig.Title()),
		RenderSubtitle("a specific word or words"),
		m.KeywordInput.View(),
		chips,
	)
	return m.panelStyle(FocusKeywords, width).Render(content)
}

func (m ConfiguratorModel) renderMessagePanel(width int) string {
	var greetings, custom []string
	for _, msg := range m.sess.Store().Messages() {
		if msg.FromBot() {
			greetings = append(greetings, msg.Text)
		} else {
			custom = append(custom, msg.Text)
		}
	}

	opening := OpeningDMStyle.Width(width - 6).Render(strings.Join(greetings, "\n"))
	button := PanelHintStyle.Render("[ " + catalog.OpeningButtonLabel + " ]")

	sent := PanelHintStyle.Render("No custom messages yet")
	if n := len(custom); n > 0 {
		sent = PanelHintStyle.Render(fmt.Sprintf("%d custom message(s), latest: %s", n, truncate(custom[n-1], width-30)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		PanelTitleStyle.Render(flow.StageMessageConfig.Title()),
		RenderSubtitle("an opening DM"),
		opening,
		button,
		"",
		RenderSubtitle("a DM with the link"),
		m.MessageInput.View(),
		sent,
	)
	return m.panelStyle(FocusMessage, width).Render(content)
}

// keywords lists the trigger words entered so far, in order
func (m ConfiguratorModel) keywords() []string {
	var words []string
	for _, c := range m.sess.Store().Comments() {
		if c.IsOwn() {
			words = append(words, automation.SplitKeywords(c.Text)...)
		}
	}
	return words
}

func truncate(s string, width int) string {
	if width <= 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
