package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/autodm/internal/automation"
	"github.com/muurk/autodm/internal/session"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenConfigurator Screen = "configurator"
	ScreenSuccess      Screen = "success"
)

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	CurrentScreen  Screen
	PreviousScreen Screen

	Configurator ConfiguratorModel

	// Result is the last completed automation, nil until the user completes setup
	Result *automation.Config

	sess *session.Session

	Width  int
	Height int

	Help        help.Model
	SuccessKeys successKeyMap
}

// NewAppModel creates the application around sess, starting at the configurator
func NewAppModel(sess *session.Session) AppModel {
	return AppModel{
		CurrentScreen: ScreenConfigurator,
		Configurator:  NewConfiguratorModel(sess),
		sess:          sess,
		Help:          help.New(),
		SuccessKeys:   newSuccessKeyMap(),
	}
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return m.Configurator.Init()
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		updated, cmd := m.Configurator.Update(msg)
		m.Configurator = updated.(ConfiguratorModel)
		return m, cmd

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case completedMsg:
		m.Result = msg.config
		return m.transitionTo(ScreenSuccess)
	}

	switch m.CurrentScreen {
	case ScreenSuccess:
		return m.handleSuccessScreen(msg)
	default:
		updated, cmd := m.Configurator.Update(msg)
		m.Configurator = updated.(ConfiguratorModel)
		return m, cmd
	}
}

// handleSuccessScreen handles user input on the success screen
func (m AppModel) handleSuccessScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.SuccessKeys.Edit):
		return m.transitionTo(ScreenConfigurator)

	case key.Matches(keyMsg, m.SuccessKeys.New):
		updated, cmd := m.Configurator.reset()
		m.Configurator = updated.(ConfiguratorModel)
		m.Result = nil
		m.CurrentScreen = ScreenConfigurator
		m.PreviousScreen = ScreenSuccess
		return m, cmd

	case key.Matches(keyMsg, m.SuccessKeys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// transitionTo transitions to a new screen
func (m AppModel) transitionTo(screen Screen) (tea.Model, tea.Cmd) {
	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = screen
	return m, nil
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenSuccess:
		return RenderApplicationContainer(m.buildSuccessContent(), m.Help.View(m.SuccessKeys), m.Width, m.Height)
	default:
		return m.Configurator.View()
	}
}

func (m AppModel) buildSuccessContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("✓ Automation ready!"))
	b.WriteString("\n")

	if m.Result != nil {
		b.WriteString(SuccessBoxStyle.Render(m.Result.Summary()))
		b.WriteString("\n\n")
		b.WriteString(m.Result.FormatDetailed())
		b.WriteString("\n")
	}

	b.WriteString("What would you like to do next?\n\n")
	b.WriteString(MenuItemStyle.Render("Enter/e - Keep editing this automation"))
	b.WriteString("\n")
	b.WriteString(MenuItemStyle.Render("n       - Start a new automation"))
	b.WriteString("\n")
	b.WriteString(MenuItemStyle.Render("q       - Exit and print the configuration"))
	b.WriteString("\n")

	return b.String()
}
