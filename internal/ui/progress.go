package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/autodm/internal/flow"
)

// StepStatus represents the current state of a step
type StepStatus int

const (
	StepPending  StepStatus = iota // Not yet reached
	StepRunning                    // Current stage
	StepComplete                   // Passed
	StepFailed                     // Last command was rejected here
)

// Step is one wizard stage in the progress list
type Step struct {
	Stage   flow.Stage
	Name    string
	Status  StepStatus
	Message string // Optional note, e.g. "2 keywords"
}

// stepNames label the stages for the run output
var stepNames = map[flow.Stage]string{
	flow.StageSelection:     "Choose a post",
	flow.StagePostView:      "Post selected",
	flow.StageCommentConfig: "Comment keywords",
	flow.StageMessageConfig: "Direct message",
}

// Progress shows how far a configuration has advanced through the wizard stages.
type Progress struct {
	Label     string
	Steps     []Step
	Width     int
	ShowBar   bool
	ShowSteps bool
	bar       progress.Model
}

// NewProgress creates a progress display positioned at the selection stage
func NewProgress(label string) *Progress {
	stages := []flow.Stage{flow.StageSelection, flow.StagePostView, flow.StageCommentConfig, flow.StageMessageConfig}
	steps := make([]Step, len(stages))
	for i, st := range stages {
		steps[i] = Step{Stage: st, Name: stepNames[st]}
	}

	p := &Progress{
		Label:     label,
		Steps:     steps,
		ShowBar:   true,
		ShowSteps: true,
	}
	p.SetWidth(GetTerminalWidth())
	p.SetStage(flow.StageSelection)
	return p
}

// SetWidth sets the terminal width for responsive rendering
func (p *Progress) SetWidth(width int) *Progress {
	p.Width = width
	barWidth := min(max(width-20, 20), 50)
	p.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
	)
	return p
}

// SetStage marks every stage before st complete, st running and the rest pending.
func (p *Progress) SetStage(st flow.Stage) {
	current := st.Index()
	for i := range p.Steps {
		switch {
		case i < current:
			p.Steps[i].Status = StepComplete
		case i == current:
			p.Steps[i].Status = StepRunning
		default:
			p.Steps[i].Status = StepPending
		}
	}
}

// Note attaches a message to a stage's line
func (p *Progress) Note(st flow.Stage, message string) {
	if i := st.Index(); i >= 0 && i < len(p.Steps) {
		p.Steps[i].Message = message
	}
}

// Fail marks the current stage as failed with a message
func (p *Progress) Fail(message string) {
	for i := range p.Steps {
		if p.Steps[i].Status == StepRunning {
			p.Steps[i].Status = StepFailed
			p.Steps[i].Message = message
			return
		}
	}
}

// Finish marks every stage complete
func (p *Progress) Finish() {
	for i := range p.Steps {
		p.Steps[i].Status = StepComplete
	}
}

// Percent is the share of stages already passed
func (p *Progress) Percent() float64 {
	if len(p.Steps) == 0 {
		return 0
	}
	done := 0
	for _, s := range p.Steps {
		if s.Status == StepComplete {
			done++
		}
	}
	return float64(done) / float64(len(p.Steps))
}

// Render returns the styled progress display as a string
func (p *Progress) Render() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(StageLabelStyle.Render(p.Label))
		b.WriteString("\n\n")
	}

	if p.ShowBar {
		b.WriteString(p.renderBar())
		b.WriteString("\n\n")
	}

	if p.ShowSteps {
		lines := make([]string, 0, len(p.Steps))
		for i, step := range p.Steps {
			lines = append(lines, p.renderStepLine(i+1, step))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	return b.String()
}

func (p *Progress) renderBar() string {
	done := 0
	for _, s := range p.Steps {
		if s.Status == StepComplete {
			done++
		}
	}
	return lipgloss.NewStyle().
		PaddingLeft(2).
		Render(fmt.Sprintf("%s  %3.0f%%  [%d/%d]", p.bar.ViewAs(p.Percent()), p.Percent()*100, done, len(p.Steps)))
}

func (p *Progress) renderStepLine(n int, step Step) string {
	var marker string
	var style lipgloss.Style

	switch step.Status {
	case StepComplete:
		marker, style = StepMarkerComplete, StepCompleteStyle
	case StepRunning:
		marker, style = StepMarkerRunning, StepRunningStyle
	case StepFailed:
		marker, style = FailureMarker, ErrorTitleStyle
	default:
		marker, style = StepMarkerPending, StepPendingStyle
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  [%d/%d] ", n, len(p.Steps)))
	b.WriteString(style.Render(padRight(step.Name, 30)))
	b.WriteString(style.Render(marker))
	if step.Message != "" {
		b.WriteString("  ")
		b.WriteString(StepNoteStyle.Render("(" + step.Message + ")"))
	}
	return b.String()
}

// String implements fmt.Stringer
func (p *Progress) String() string {
	return p.Render()
}
