package flow

import "github.com/muurk/autodm/internal/catalog"

// Stages records which editing stages have been unlocked.
type Stages struct {
	CommentStageVisible bool `json:"comment_stage_visible"`
	MessageStageVisible bool `json:"message_stage_visible"`
}

// State is the selection state of one configuration session.
//
// State is a value: every command returns a new State and leaves the receiver untouched.
// The selected post is held by id only; the post itself stays in the catalog.
//
// Invariant: MessageStageVisible implies CommentStageVisible implies a selected post.
type State struct {
	SelectedPostID string `json:"selected_post_id,omitempty"`
	Stages         Stages `json:"stages"`
	KeywordDraft   string `json:"keyword_draft"`
	MessageDraft   string `json:"message_draft"`
}

// HasSelection reports whether a post has been chosen.
func (s State) HasSelection() bool {
	return s.SelectedPostID != ""
}

// SelectPost chooses post and unlocks the comment stage.
// The message stage is left as it is; re-selecting never collapses later stages.
func (s State) SelectPost(post catalog.Post) State {
	s.SelectedPostID = post.ID
	s.Stages.CommentStageVisible = true
	return s
}

// AdvanceToMessaging unlocks the message stage.
// Returns the receiver unchanged and ErrInvalidTransition when the comment stage is
// not visible yet.
func (s State) AdvanceToMessaging() (State, error) {
	if !s.Stages.CommentStageVisible || !s.HasSelection() {
		return s, ErrInvalidTransition
	}
	s.Stages.MessageStageVisible = true
	return s, nil
}

// WithKeywordDraft stages unsubmitted keyword text.
func (s State) WithKeywordDraft(text string) State {
	s.KeywordDraft = text
	return s
}

// WithMessageDraft stages unsubmitted message text.
func (s State) WithMessageDraft(text string) State {
	s.MessageDraft = text
	return s
}

// Valid reports whether the unlock invariant holds.
func (s State) Valid() bool {
	if s.Stages.MessageStageVisible && !s.Stages.CommentStageVisible {
		return false
	}
	if s.Stages.CommentStageVisible && !s.HasSelection() {
		return false
	}
	return true
}
