package session

import (
	"context"
	"fmt"
)

// CommandType names a session command in its serialised form
type CommandType string

const (
	CmdSelectPost      CommandType = "select_post"
	CmdSetKeywordDraft CommandType = "set_keyword_draft"
	CmdSubmitComment   CommandType = "submit_comment"
	CmdAdvance         CommandType = "advance"
	CmdSetMessageDraft CommandType = "set_message_draft"
	CmdSubmitMessage   CommandType = "submit_message"
	CmdComplete        CommandType = "complete"
	CmdReset           CommandType = "reset"
)

// CommandTypes lists every command Apply understands
var CommandTypes = []CommandType{
	CmdSelectPost,
	CmdSetKeywordDraft,
	CmdSubmitComment,
	CmdAdvance,
	CmdSetMessageDraft,
	CmdSubmitMessage,
	CmdComplete,
	CmdReset,
}

// Command is a serialised session command, as received from remote surfaces.
//
//	{"type": "select_post", "post_id": "2"}
//	{"type": "submit_comment", "text": "link"}
type Command struct {
	Type   CommandType `json:"type" yaml:"type"`
	PostID string      `json:"post_id,omitempty" yaml:"post_id,omitempty"`
	// Text is the draft for set_*_draft. For submit_* a non-empty Text is
	// submitted instead of the current draft.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// String returns a short form for logs
func (c Command) String() string {
	switch {
	case c.PostID != "":
		return fmt.Sprintf("%s(%s)", c.Type, c.PostID)
	case c.Text != "":
		return fmt.Sprintf("%s(%q)", c.Type, c.Text)
	default:
		return string(c.Type)
	}
}

// Apply dispatches a serialised command to the matching session method.
// The config assembled by a complete command is available through Result.
func (s *Session) Apply(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CmdSelectPost:
		return s.SelectPost(cmd.PostID)
	case CmdSetKeywordDraft:
		s.SetKeywordDraft(cmd.Text)
		return nil
	case CmdSubmitComment:
		if cmd.Text != "" {
			return s.submitComment(cmd.Text)
		}
		return s.SubmitComment()
	case CmdAdvance:
		return s.AdvanceToMessaging()
	case CmdSetMessageDraft:
		s.SetMessageDraft(cmd.Text)
		return nil
	case CmdSubmitMessage:
		if cmd.Text != "" {
			return s.submitMessage(cmd.Text)
		}
		return s.SubmitMessage()
	case CmdComplete:
		_, err := s.Complete(ctx)
		return err
	case CmdReset:
		s.Reset()
		return nil
	default:
		return s.fail(cmd.Type, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type))
	}
}
