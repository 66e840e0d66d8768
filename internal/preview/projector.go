package preview

import (
	"github.com/muurk/autodm/internal/automation"
	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/flow"
)

// Screen identifies the mobile preview screen to render
type Screen string

const (
	ScreenSelection Screen = "selection"
	ScreenPostView  Screen = "post-view"
	ScreenComments  Screen = "comments"
	ScreenMessaging Screen = "messaging"
)

// ScreenFor maps a wizard stage to its preview screen.
func ScreenFor(stage flow.Stage) Screen {
	switch stage {
	case flow.StagePostView:
		return ScreenPostView
	case flow.StageCommentConfig:
		return ScreenComments
	case flow.StageMessageConfig:
		return ScreenMessaging
	default:
		return ScreenSelection
	}
}

// Source is the read side of the entity store needed to build a descriptor.
type Source interface {
	Post(id string) (catalog.Post, error)
	Comments() []catalog.Comment
	Messages() []catalog.Message
}

// Descriptor is everything the presentation layer needs to draw one update.
// The screen and the editing panels come from the same stage, so they always agree.
type Descriptor struct {
	Screen Screen      `json:"screen"`
	Stage  flow.Stage  `json:"stage"`
	Panels flow.Panels `json:"panels"`

	Post     *catalog.Post     `json:"post,omitempty"`
	Comments []catalog.Comment `json:"comments,omitempty"`
	Messages []catalog.Message `json:"messages,omitempty"`

	SelectedPostID string `json:"selected_post_id,omitempty"`
	KeywordDraft   string `json:"keyword_draft"`
	MessageDraft   string `json:"message_draft"`
	BotName        string `json:"bot_name"`
}

// Projector builds descriptors. The zero value uses DefaultBotName and no asset resolution.
type Projector struct {
	BotName string
	Assets  AssetResolver
}

// Project maps the stage, the store and the selection to a descriptor.
// It never fails: if a screen needs a post the store cannot provide, the
// selection screen is shown instead.
func (p Projector) Project(stage flow.Stage, src Source, state flow.State) Descriptor {
	d := Descriptor{
		Screen:         ScreenFor(stage),
		Stage:          stage,
		Panels:         flow.DerivePanels(state),
		SelectedPostID: state.SelectedPostID,
		KeywordDraft:   state.KeywordDraft,
		MessageDraft:   state.MessageDraft,
		BotName:        p.botName(),
	}

	switch d.Screen {
	case ScreenPostView, ScreenComments:
		post, err := src.Post(state.SelectedPostID)
		if err != nil {
			d.Screen = ScreenSelection
			return d
		}
		post.ImageRef = p.resolve(post.ImageRef)
		d.Post = &post

		if d.Screen == ScreenComments {
			d.Comments = src.Comments()
			for i := range d.Comments {
				d.Comments[i].AvatarRef = p.resolve(d.Comments[i].AvatarRef)
			}
		}

	case ScreenMessaging:
		if post, err := src.Post(state.SelectedPostID); err == nil {
			post.ImageRef = p.resolve(post.ImageRef)
			d.Post = &post
		}
		d.Messages = src.Messages()
	}

	return d
}

func (p Projector) botName() string {
	if p.BotName == "" {
		return automation.DefaultBotName
	}
	return p.BotName
}

func (p Projector) resolve(ref string) string {
	if p.Assets == nil {
		return ref
	}
	return p.Assets.Resolve(ref)
}

// Project is a shortcut for Projector{}.Project.
func Project(stage flow.Stage, src Source, state flow.State) Descriptor {
	return Projector{}.Project(stage, src, state)
}
