package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/flow"
	"github.com/muurk/autodm/internal/preview"
	"github.com/muurk/autodm/internal/session"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	store, err := catalog.NewStore(catalog.DefaultPosts(),
		catalog.WithIDGenerator(catalog.NewSequenceGenerator("id-", 1)))
	require.NoError(t, err)
	return session.New(store)
}

func newTestApp(t *testing.T) (AppModel, *session.Session) {
	t.Helper()
	sess := newTestSession(t)
	var m tea.Model = NewAppModel(sess)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(AppModel), sess
}

// press feeds msgs to m and returns the model with the last command
func press(m tea.Model, msgs ...tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyNext  = tea.KeyMsg{Type: tea.KeyCtrlN}
	keySend  = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyDone  = tea.KeyMsg{Type: tea.KeyCtrlD}
	keyReset = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyInfo  = tea.KeyMsg{Type: tea.KeyCtrlO}
)

func configurator(m tea.Model) ConfiguratorModel {
	return m.(AppModel).Configurator
}

func TestAppStartsOnConfigurator(t *testing.T) {
	app, sess := newTestApp(t)

	assert.Equal(t, ScreenConfigurator, app.CurrentScreen)
	assert.Equal(t, flow.StageSelection, sess.Stage())
	assert.Equal(t, FocusPicker, app.Configurator.Focus)
	assert.Contains(t, app.View(), "When someone comments on")
}

func TestSelectPostFocusesKeywords(t *testing.T) {
	app, sess := newTestApp(t)

	m, _ := press(app, keyRight, keyEnter)

	assert.Equal(t, "2", sess.State().SelectedPostID)
	assert.Equal(t, flow.StageCommentConfig, sess.Stage())
	assert.Equal(t, FocusKeywords, configurator(m).Focus)
	assert.Equal(t, preview.ScreenComments, sess.Descriptor().Screen)
	assert.Contains(t, m.View(), "And this comment has")
}

func TestLockedOptionIsNotSelectable(t *testing.T) {
	app, sess := newTestApp(t)

	posts := len(sess.Store().Posts())
	var m tea.Model = app
	for i := 0; i < posts; i++ {
		m, _ = m.Update(keyRight)
	}
	m, _ = m.Update(keyEnter)

	c := configurator(m)
	assert.Equal(t, flow.StageSelection, sess.Stage())
	assert.True(t, c.StatusErr)
	assert.Contains(t, c.Status, "PRO")
}

func TestCursorStopsAtLastOption(t *testing.T) {
	app, sess := newTestApp(t)

	var m tea.Model = app
	for i := 0; i < 20; i++ {
		m, _ = m.Update(keyRight)
	}

	assert.Equal(t, len(sess.Store().Posts())+len(lockedOptions)-1, configurator(m).Cursor)
}

func TestTypingMirrorsKeywordDraft(t *testing.T) {
	app, sess := newTestApp(t)

	m, _ := press(app, keyEnter)
	typeText(m, "free")

	assert.Equal(t, "free", sess.State().KeywordDraft)
	assert.Equal(t, "free", sess.Descriptor().KeywordDraft)
}

func TestAddKeyword(t *testing.T) {
	app, sess := newTestApp(t)
	initial := len(sess.Store().Comments())

	m, _ := press(app, keyEnter)
	m = typeText(m, "link, free")
	m, _ = press(m, keyEnter)

	comments := sess.Store().Comments()
	require.Len(t, comments, initial+1)
	assert.Equal(t, "link, free", comments[len(comments)-1].Text)
	assert.Empty(t, sess.State().KeywordDraft)
	assert.Empty(t, configurator(m).KeywordInput.Value())
	assert.Equal(t, []string{"link", "free"}, configurator(m).keywords())
}

func TestBlankKeywordIsRejected(t *testing.T) {
	app, sess := newTestApp(t)
	initial := len(sess.Store().Comments())

	m, _ := press(app, keyEnter, keyEnter)

	c := configurator(m)
	assert.Len(t, sess.Store().Comments(), initial)
	assert.True(t, c.StatusErr)
	assert.Equal(t, "Type something first", c.Status)
}

func TestNextUnlocksMessaging(t *testing.T) {
	app, sess := newTestApp(t)

	m, _ := press(app, keyEnter, keyNext)

	assert.Equal(t, flow.StageMessageConfig, sess.Stage())
	assert.Equal(t, FocusMessage, configurator(m).Focus)
	assert.Equal(t, preview.ScreenMessaging, sess.Descriptor().Screen)
	assert.Contains(t, m.View(), "They will get")
}

func TestSendMessage(t *testing.T) {
	app, sess := newTestApp(t)
	initial := len(sess.Store().Messages())

	m, _ := press(app, keyEnter, keyNext)
	m = typeText(m, "here you go")
	assert.Equal(t, "here you go", sess.State().MessageDraft)

	m, _ = press(m, keySend)

	messages := sess.Store().Messages()
	require.Len(t, messages, initial+1)
	assert.Equal(t, "here you go", messages[len(messages)-1].Text)
	assert.False(t, messages[len(messages)-1].FromBot())
	assert.Empty(t, configurator(m).MessageInput.Value())
}

func TestTabCyclesVisiblePanels(t *testing.T) {
	app, _ := newTestApp(t)

	// Only the picker is visible before a post is selected
	m, _ := press(app, keyTab)
	assert.Equal(t, FocusPicker, configurator(m).Focus)

	m, _ = press(m, keyEnter, keyNext)
	require.Equal(t, FocusMessage, configurator(m).Focus)

	m, _ = press(m, keyTab)
	assert.Equal(t, FocusPicker, configurator(m).Focus)
	m, _ = press(m, keyTab)
	assert.Equal(t, FocusKeywords, configurator(m).Focus)
	m, _ = press(m, keyTab)
	assert.Equal(t, FocusMessage, configurator(m).Focus)
}

func TestCompleteShowsSuccessScreen(t *testing.T) {
	app, sess := newTestApp(t)

	m, _ := press(app, keyEnter)
	m = typeText(m, "guide")
	m, _ = press(m, keyEnter, keyNext)
	m = typeText(m, "https://example.com/guide")
	m, cmd := press(m, keySend, keyDone)
	require.NotNil(t, cmd)

	m, _ = press(m, cmd())

	app = m.(AppModel)
	require.Equal(t, ScreenSuccess, app.CurrentScreen)
	require.NotNil(t, app.Result)
	assert.Equal(t, "1", app.Result.PostID)
	assert.Equal(t, []string{"guide"}, app.Result.Keywords)
	assert.Equal(t, "https://example.com/guide", app.Result.CustomMessage)
	assert.Same(t, sess.Result(), app.Result)
	assert.Contains(t, app.View(), "Automation ready")
}

func TestCompleteBeforeMessagingDoesNothing(t *testing.T) {
	app, sess := newTestApp(t)

	// ctrl+d is only bound while the message panel has focus
	m, _ := press(app, keyEnter, keyDone)

	assert.Equal(t, ScreenConfigurator, m.(AppModel).CurrentScreen)
	assert.Nil(t, sess.Result())
}

func TestSuccessEditReturnsWithState(t *testing.T) {
	app, sess := newTestApp(t)

	m, cmd := press(app, keyEnter, keyNext, keyDone)
	require.NotNil(t, cmd)
	m, _ = press(m, cmd(), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	assert.Equal(t, ScreenConfigurator, m.(AppModel).CurrentScreen)
	assert.Equal(t, flow.StageMessageConfig, sess.Stage())
}

func TestSuccessNewStartsOver(t *testing.T) {
	app, sess := newTestApp(t)

	m, cmd := press(app, keyEnter, keyNext, keyDone)
	require.NotNil(t, cmd)
	m, _ = press(m, cmd(), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	app = m.(AppModel)
	assert.Equal(t, ScreenConfigurator, app.CurrentScreen)
	assert.Nil(t, app.Result)
	assert.Equal(t, flow.StageSelection, sess.Stage())
	assert.Equal(t, FocusPicker, app.Configurator.Focus)
}

func TestResetKeepsEnteredComments(t *testing.T) {
	app, sess := newTestApp(t)

	m, _ := press(app, keyEnter)
	m = typeText(m, "hello")
	m, _ = press(m, keyEnter)
	count := len(sess.Store().Comments())

	m, _ = press(m, keyReset)

	assert.Equal(t, flow.StageSelection, sess.Stage())
	assert.Equal(t, flow.State{}, sess.State())
	assert.Len(t, sess.Store().Comments(), count)
	assert.Equal(t, FocusPicker, configurator(m).Focus)
}

func TestInfoModalClosesOnAnyKey(t *testing.T) {
	app, _ := newTestApp(t)

	m, _ := press(app, keyEnter, keyNext, keyInfo)
	require.True(t, configurator(m).ShowingInfo)
	assert.NotEmpty(t, configurator(m).info)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, configurator(m).ShowingInfo)
}

func TestCtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := press(app, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDescribeError(t *testing.T) {
	err := &session.CommandError{Kind: session.KindInvalidTransition, Err: flow.ErrInvalidTransition}
	assert.Equal(t, "Finish the current step first", describeError(err))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hel…", truncate("hello", 4))
	assert.Equal(t, "", truncate("hello", 1))
}
