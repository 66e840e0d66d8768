package flow

// Stage is the wizard step derived from a State.
type Stage string

const (
	StageSelection     Stage = "selection"
	StagePostView      Stage = "post-view"
	StageCommentConfig Stage = "comment-config"
	StageMessageConfig Stage = "message-config"
)

// stageOrder lists the stages in unlock order
var stageOrder = []Stage{StageSelection, StagePostView, StageCommentConfig, StageMessageConfig}

// String returns the stage identifier
func (st Stage) String() string {
	return string(st)
}

// Title returns the heading shown for the stage in the editing panel
func (st Stage) Title() string {
	switch st {
	case StageSelection, StagePostView:
		return "When someone comments on"
	case StageCommentConfig:
		return "And this comment has"
	case StageMessageConfig:
		return "They will get"
	default:
		return string(st)
	}
}

// Index returns the position of the stage in unlock order, or -1 if unknown
func (st Stage) Index() int {
	for i, s := range stageOrder {
		if s == st {
			return i
		}
	}
	return -1
}

// Derive computes the current stage from state.
//
// The message stage wins whenever it is visible, even without a selected post.
// Derive has no hidden inputs: equal states always yield equal stages.
func Derive(s State) Stage {
	switch {
	case s.Stages.MessageStageVisible:
		return StageMessageConfig
	case s.Stages.CommentStageVisible && s.HasSelection():
		return StageCommentConfig
	case s.HasSelection():
		return StagePostView
	default:
		return StageSelection
	}
}

// Panels describes which editing panels are shown next to the preview.
type Panels struct {
	PostPicker    bool `json:"post_picker"`
	CommentConfig bool `json:"comment_config"`
	MessageConfig bool `json:"message_config"`
}

// DerivePanels computes editing-panel visibility from state.
// The post picker is always visible.
func DerivePanels(s State) Panels {
	return Panels{
		PostPicker:    true,
		CommentConfig: s.Stages.CommentStageVisible,
		MessageConfig: s.Stages.MessageStageVisible,
	}
}
