package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/autodm/internal/automation"
	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/flow"
	"github.com/muurk/autodm/internal/logging"
	"github.com/muurk/autodm/internal/preview"
)

// Session binds one entity store to one selection state.
//
// It is the single owner of a configuration: every mutation goes through one of its
// commands, and the stage and preview are recomputed from the current state on every
// read. A Session is not safe for concurrent use; surfaces with several input sources
// must funnel commands through one goroutine.
type Session struct {
	store     *catalog.Store
	state     flow.State
	completer automation.Completer
	projector preview.Projector

	result *automation.Config
}

// Option configures a Session
type Option func(*Session)

// WithCompleter sets the handler that receives the assembled automation.
func WithCompleter(c automation.Completer) Option {
	return func(s *Session) {
		s.completer = c
	}
}

// WithBotName sets the account shown as the sender of automated messages.
func WithBotName(name string) Option {
	return func(s *Session) {
		if name != "" {
			s.projector.BotName = name
		}
	}
}

// WithAssets sets the resolver used for post images and avatars in the preview.
func WithAssets(r preview.AssetResolver) Option {
	return func(s *Session) {
		s.projector.Assets = r
	}
}

// New creates a session over store, starting with nothing selected.
func New(store *catalog.Store, opts ...Option) *Session {
	s := &Session{
		store:     store,
		completer: automation.NopCompleter,
		projector: preview.Projector{
			BotName: automation.DefaultBotName,
			Assets:  preview.PlaceholderResolver{},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the entity store backing the session
func (s *Session) Store() *catalog.Store {
	return s.store
}

// State returns the current selection state
func (s *Session) State() flow.State {
	return s.state
}

// Stage returns the stage derived from the current state
func (s *Session) Stage() flow.Stage {
	return flow.Derive(s.state)
}

// Panels returns which editing panels are visible
func (s *Session) Panels() flow.Panels {
	return flow.DerivePanels(s.state)
}

// Descriptor projects the current state into a preview descriptor
func (s *Session) Descriptor() preview.Descriptor {
	return s.projector.Project(s.Stage(), s.store, s.state)
}

// BotName returns the account shown as the sender of automated messages
func (s *Session) BotName() string {
	return s.projector.BotName
}

// Result returns the config assembled by the last successful Complete, or nil.
func (s *Session) Result() *automation.Config {
	return s.result
}

// SelectedPost returns the selected post, if any
func (s *Session) SelectedPost() (catalog.Post, bool) {
	if !s.state.HasSelection() {
		return catalog.Post{}, false
	}
	p, err := s.store.Post(s.state.SelectedPostID)
	if err != nil {
		return catalog.Post{}, false
	}
	return p, true
}

// SelectPost chooses a post from the catalog and unlocks the comment stage.
func (s *Session) SelectPost(id string) error {
	post, err := s.store.Post(id)
	if err != nil {
		return s.fail(CmdSelectPost, err)
	}
	s.commit(CmdSelectPost, s.state.SelectPost(post))
	return nil
}

// SetKeywordDraft stages keyword text without submitting it.
func (s *Session) SetKeywordDraft(text string) {
	s.state = s.state.WithKeywordDraft(text)
}

// SubmitComment appends the keyword draft to the comment thread and clears the draft.
// A blank draft is rejected and left in place.
func (s *Session) SubmitComment() error {
	return s.submitComment(s.state.KeywordDraft)
}

func (s *Session) submitComment(text string) error {
	if !s.state.Stages.CommentStageVisible {
		return s.fail(CmdSubmitComment, flow.ErrInvalidTransition)
	}
	c, err := s.store.AppendComment(text)
	if err != nil {
		return s.fail(CmdSubmitComment, err)
	}
	logging.Debug("Comment added", zap.String("id", c.ID), zap.String("text", c.Text))
	s.commit(CmdSubmitComment, s.state.WithKeywordDraft(""))
	return nil
}

// AdvanceToMessaging unlocks the message stage.
func (s *Session) AdvanceToMessaging() error {
	next, err := s.state.AdvanceToMessaging()
	if err != nil {
		return s.fail(CmdAdvance, err)
	}
	s.commit(CmdAdvance, next)
	return nil
}

// SetMessageDraft stages message text without sending it.
func (s *Session) SetMessageDraft(text string) {
	s.state = s.state.WithMessageDraft(text)
}

// SubmitMessage appends the message draft to the conversation and clears the draft.
// A blank draft is rejected and left in place.
func (s *Session) SubmitMessage() error {
	return s.submitMessage(s.state.MessageDraft)
}

func (s *Session) submitMessage(text string) error {
	if !s.state.Stages.MessageStageVisible {
		return s.fail(CmdSubmitMessage, flow.ErrInvalidTransition)
	}
	m, err := s.store.AppendMessage(text)
	if err != nil {
		return s.fail(CmdSubmitMessage, err)
	}
	logging.Debug("Message added", zap.String("id", m.ID), zap.String("text", m.Text))
	s.commit(CmdSubmitMessage, s.state.WithMessageDraft(""))
	return nil
}

// Complete assembles the automation and hands it to the completion handler.
// Only allowed once the message stage is reached. The session state is not changed,
// so the user may keep editing and complete again.
func (s *Session) Complete(ctx context.Context) (*automation.Config, error) {
	if s.Stage() != flow.StageMessageConfig {
		return nil, s.fail(CmdComplete, flow.ErrInvalidTransition)
	}
	post, err := s.store.Post(s.state.SelectedPostID)
	if err != nil {
		return nil, s.fail(CmdComplete, err)
	}

	cfg, err := automation.Assemble(post, s.store.Comments(), s.store.Messages(), s.projector.BotName)
	if err != nil {
		return nil, s.fail(CmdComplete, fmt.Errorf("%w: %w", ErrCompletion, err))
	}
	if err := s.completer.Complete(ctx, cfg); err != nil {
		return nil, s.fail(CmdComplete, fmt.Errorf("%w: %w", ErrCompletion, err))
	}

	s.result = cfg
	logging.Info("Automation completed",
		zap.String("post_id", cfg.PostID),
		zap.Strings("keywords", cfg.Keywords),
		zap.Int("custom_messages", len(cfg.CustomMessages)),
	)
	logging.LogCommand(string(CmdComplete), s.Stage().String(), nil)
	return cfg, nil
}

// Reset clears the selection, the stage flags and both drafts.
// Comments and messages are append-only and stay as they are.
func (s *Session) Reset() {
	s.result = nil
	s.commit(CmdReset, flow.State{})
}

func (s *Session) commit(cmd CommandType, next flow.State) {
	before := s.Stage()
	s.state = next
	after := s.Stage()

	logging.LogCommand(string(cmd), after.String(), nil)
	logging.LogStageChange(before.String(), after.String())
}

func (s *Session) fail(cmd CommandType, err error) error {
	stage := s.Stage()
	logging.LogCommand(string(cmd), stage.String(), err)
	return &CommandError{
		Kind:    classify(err),
		Command: cmd,
		Stage:   stage,
		Err:     err,
	}
}
