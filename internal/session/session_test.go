package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/autodm/internal/automation"
	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/flow"
	"github.com/muurk/autodm/internal/preview"
)

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	store, err := catalog.NewStore(catalog.DefaultPosts(),
		catalog.WithIDGenerator(catalog.NewSequenceGenerator("id-", 1)))
	require.NoError(t, err)
	return New(store, opts...)
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, kind, cmdErr.Kind)
}

func TestScenarioA_NothingSelected(t *testing.T) {
	s := newSession(t)

	assert.Equal(t, flow.StageSelection, s.Stage())
	assert.Equal(t, preview.ScreenSelection, s.Descriptor().Screen)
}

func TestScenarioB_SelectPost(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.SelectPost("1"))

	// Selecting also unlocks the comment stage
	assert.Equal(t, flow.StageCommentConfig, s.Stage())
	d := s.Descriptor()
	assert.Equal(t, preview.ScreenComments, d.Screen)
	require.NotNil(t, d.Post)
	assert.Equal(t, "1", d.Post.ID)
}

func TestScenarioC_SubmitComment(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SelectPost("1"))
	initial := len(s.Store().Comments())

	s.SetKeywordDraft("love it")
	require.NoError(t, s.SubmitComment())

	comments := s.Store().Comments()
	require.Len(t, comments, initial+1)
	last := comments[len(comments)-1]
	assert.Equal(t, "love it", last.Text)
	assert.Equal(t, "you", last.Username)
	assert.Empty(t, s.State().KeywordDraft)
}

func TestScenarioD_AdvanceToMessaging(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SelectPost("1"))
	s.SetKeywordDraft("love it")
	require.NoError(t, s.SubmitComment())
	greetings := s.Store().Messages()

	require.NoError(t, s.AdvanceToMessaging())

	assert.Equal(t, flow.StageMessageConfig, s.Stage())
	assert.Equal(t, preview.ScreenMessaging, s.Descriptor().Screen)
	messages := s.Store().Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, greetings[0], messages[0])
	assert.Equal(t, greetings[1], messages[1])
	assert.True(t, messages[0].FromBot())
	assert.True(t, messages[1].FromBot())
}

func TestScenarioE_BlankMessageRejected(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SelectPost("1"))
	require.NoError(t, s.AdvanceToMessaging())
	before := len(s.Store().Messages())

	err := s.Apply(context.Background(), Command{Type: CmdSubmitMessage})

	require.Error(t, err)
	assert.True(t, IsRejection(err))
	requireKind(t, err, KindRejection)
	assert.Len(t, s.Store().Messages(), before)
}

func TestRejectionKeepsDraft(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SelectPost("1"))

	for _, blank := range []string{"", " ", "\t\n"} {
		s.SetKeywordDraft(blank)
		before := s.State()

		err := s.SubmitComment()

		assert.True(t, IsRejection(err), "draft %q", blank)
		assert.Equal(t, before, s.State())
		assert.Len(t, s.Store().Comments(), 2)
	}
}

func TestSubmitBeforeStageUnlocked(t *testing.T) {
	s := newSession(t)
	s.SetKeywordDraft("link")

	err := s.SubmitComment()
	requireKind(t, err, KindInvalidTransition)
	assert.Equal(t, "link", s.State().KeywordDraft)

	require.NoError(t, s.SelectPost("2"))
	s.SetMessageDraft("hi")
	err = s.SubmitMessage()
	requireKind(t, err, KindInvalidTransition)
	assert.Len(t, s.Store().Messages(), 2)
}

func TestAdvanceBeforeSelection(t *testing.T) {
	s := newSession(t)
	before := s.State()

	err := s.AdvanceToMessaging()

	assert.True(t, IsInvalidTransition(err))
	requireKind(t, err, KindInvalidTransition)
	assert.Equal(t, before, s.State())
	assert.Equal(t, flow.StageSelection, s.Stage())
}

func TestSelectUnknownPost(t *testing.T) {
	s := newSession(t)

	err := s.SelectPost("42")

	requireKind(t, err, KindUnknownPost)
	assert.ErrorIs(t, err, catalog.ErrPostNotFound)
	assert.False(t, s.State().HasSelection())
}

func TestSelectPostIdempotent(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SelectPost("3"))
	once := s.State()

	require.NoError(t, s.SelectPost("3"))

	assert.Equal(t, once, s.State())
}

func TestCommentStageNeverLocksAgain(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()
	require.NoError(t, s.SelectPost("1"))

	cmds := []Command{
		{Type: CmdSubmitComment},
		{Type: CmdSubmitComment, Text: "link"},
		{Type: CmdSelectPost, PostID: "4"},
		{Type: CmdSelectPost, PostID: "missing"},
		{Type: CmdSubmitMessage, Text: "too early"},
		{Type: CmdAdvance},
		{Type: CmdSetMessageDraft, Text: "x"},
		{Type: CmdSubmitMessage},
		{Type: CmdComplete},
		{Type: "bogus"},
	}

	for _, cmd := range cmds {
		_ = s.Apply(ctx, cmd)
		assert.True(t, s.State().Stages.CommentStageVisible, "after %s", cmd)
		assert.True(t, s.State().Valid(), "after %s", cmd)
	}
}

func TestComplete(t *testing.T) {
	var got *automation.Config
	s := newSession(t, WithCompleter(automation.CompleterFunc(func(_ context.Context, cfg *automation.Config) error {
		got = cfg
		return nil
	})))
	ctx := context.Background()

	steps := []Command{
		{Type: CmdSelectPost, PostID: "2"},
		{Type: CmdSubmitComment, Text: "link, info"},
		{Type: CmdSubmitComment, Text: "LINK"},
		{Type: CmdAdvance},
		{Type: CmdSubmitMessage, Text: "Here you go: example.com"},
	}
	for _, cmd := range steps {
		require.NoError(t, s.Apply(ctx, cmd), "command %s", cmd)
	}

	cfg, err := s.Complete(ctx)
	require.NoError(t, err)

	assert.Same(t, cfg, got)
	assert.Same(t, cfg, s.Result())
	assert.Equal(t, "2", cfg.PostID)
	assert.Equal(t, "wanderlust", cfg.PostUsername)
	assert.Equal(t, []string{"link", "info"}, cfg.Keywords)
	assert.Equal(t, catalog.DefaultGreetings()[0]+"\n"+catalog.DefaultGreetings()[1], cfg.OpeningMessage)
	assert.Equal(t, []string{"Here you go: example.com"}, cfg.CustomMessages)
	assert.Equal(t, "Here you go: example.com", cfg.CustomMessage)
	assert.Equal(t, automation.DefaultBotName, cfg.BotName)
	assert.Equal(t, catalog.OpeningButtonLabel, cfg.OpeningButton)
}

func TestCompleteOutsideMessageStage(t *testing.T) {
	called := false
	s := newSession(t, WithCompleter(automation.CompleterFunc(func(context.Context, *automation.Config) error {
		called = true
		return nil
	})))
	require.NoError(t, s.SelectPost("1"))

	cfg, err := s.Complete(context.Background())

	assert.Nil(t, cfg)
	requireKind(t, err, KindInvalidTransition)
	assert.False(t, called)
	assert.Nil(t, s.Result())
}

func TestCompleteHandlerFailure(t *testing.T) {
	boom := errors.New("boom")
	s := newSession(t, WithCompleter(automation.CompleterFunc(func(context.Context, *automation.Config) error {
		return boom
	})))
	require.NoError(t, s.SelectPost("1"))
	require.NoError(t, s.AdvanceToMessaging())

	_, err := s.Complete(context.Background())

	requireKind(t, err, KindCompletion)
	assert.ErrorIs(t, err, ErrCompletion)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, s.Result())
}

func TestCompleteCancelledContext(t *testing.T) {
	var buf nopWriter
	s := newSession(t, WithCompleter(automation.NewWriterCompleter(&buf, automation.FormatJSON)))
	require.NoError(t, s.SelectPost("1"))
	require.NoError(t, s.AdvanceToMessaging())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Complete(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	requireKind(t, err, KindCompletion)
}

func TestReset(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SelectPost("1"))
	s.SetKeywordDraft("link")
	require.NoError(t, s.SubmitComment())
	require.NoError(t, s.AdvanceToMessaging())
	s.SetMessageDraft("pending")
	comments := len(s.Store().Comments())

	s.Reset()

	assert.Equal(t, flow.State{}, s.State())
	assert.Equal(t, flow.StageSelection, s.Stage())
	assert.Len(t, s.Store().Comments(), comments)
}

func TestApplyUnknownCommand(t *testing.T) {
	s := newSession(t)

	err := s.Apply(context.Background(), Command{Type: "dance"})

	requireKind(t, err, KindUnknownCommand)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestApplyDrafts(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, Command{Type: CmdSetKeywordDraft, Text: "abc"}))
	require.NoError(t, s.Apply(ctx, Command{Type: CmdSetMessageDraft, Text: "def"}))

	assert.Equal(t, "abc", s.State().KeywordDraft)
	assert.Equal(t, "def", s.State().MessageDraft)
	assert.Equal(t, "abc", s.Descriptor().KeywordDraft)
}

func TestBotNameOption(t *testing.T) {
	s := newSession(t, WithBotName("acme"))
	assert.Equal(t, "acme", s.BotName())
	assert.Equal(t, "acme", s.Descriptor().BotName)

	s = newSession(t, WithBotName(""))
	assert.Equal(t, automation.DefaultBotName, s.BotName())
}

func TestCommandErrorMessage(t *testing.T) {
	err := &CommandError{Kind: KindRejection, Command: CmdSubmitComment, Stage: flow.StageCommentConfig, Err: catalog.ErrBlankText}

	assert.Contains(t, err.Error(), "Rejected")
	assert.Contains(t, err.Error(), "submit_comment")
	assert.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
