package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muurk/autodm/internal/automation"
	"github.com/muurk/autodm/internal/flow"
	"github.com/muurk/autodm/internal/session"
)

// RunnerConfig holds configuration for a scripted session run
type RunnerConfig struct {
	Title   string  // e.g., "Automation Run"
	Command string  // e.g., "autodm run --post 2"
	Params  []Param // Shown in the header
	Output  io.Writer

	// ShowPreview prints the phone preview every time the stage changes
	ShowPreview bool

	// Width overrides the detected terminal width when positive
	Width int
}

// Runner drives a session through a list of commands and prints the
// header, one line per command, the stage progress and a result box.
type Runner struct {
	config   RunnerConfig
	printer  *Printer
	progress *Progress
}

// NewRunner creates a runner
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	printer := NewPrinter(config.Output)
	if config.Width > 0 {
		printer.SetWidth(config.Width)
	}

	return &Runner{
		config:   config,
		printer:  printer,
		progress: NewProgress("").SetWidth(printer.Width()),
	}
}

// Run applies cmds in order, stopping at the first failure.
// It returns the assembled config when one of the commands was complete,
// and nil without error when the run ended before completion.
func (r *Runner) Run(ctx context.Context, sess *session.Session, cmds []session.Command) (*automation.Config, error) {
	start := time.Now()
	r.printer.PrintHeader(r.config.Title, r.config.Command, r.config.Params...)

	if r.config.ShowPreview {
		r.printer.PrintPreview(sess.Descriptor())
		r.printer.Newline()
	}

	for _, cmd := range cmds {
		before := sess.Stage()

		if err := sess.Apply(ctx, cmd); err != nil {
			r.printCommand(cmd, err)
			r.progress.SetStage(before)
			r.progress.Fail(shortError(err))
			r.printer.Newline()
			r.printer.Println(r.progress.Render())
			r.printer.Newline()
			r.printer.PrintError(fmt.Sprintf("%s failed", cmd.Type), err)
			return nil, err
		}
		r.printCommand(cmd, nil)

		after := sess.Stage()
		r.progress.SetStage(after)
		r.noteCounts(sess)

		if r.config.ShowPreview && after != before {
			r.printer.Newline()
			r.printer.PrintPreview(sess.Descriptor())
			r.printer.Newline()
		}
	}

	result := sess.Result()
	if result != nil {
		r.progress.Finish()
	}
	r.printer.Newline()
	r.printer.Println(r.progress.Render())
	r.printer.Newline()

	duration := Param{Key: "Duration", Value: time.Since(start).Round(time.Millisecond).String()}
	if result == nil {
		r.printer.PrintWarning("Configuration not completed",
			Param{Key: "Stage", Value: sess.Stage().String()},
			duration,
		)
		return nil, nil
	}

	r.printer.PrintSuccess("Automation configured", append(ResultDetails(result), duration)...)
	return result, nil
}

// Printer exposes the runner's printer for follow-up output
func (r *Runner) Printer() *Printer {
	return r.printer
}

func (r *Runner) printCommand(cmd session.Command, err error) {
	marker, style := StepMarkerComplete, StepCompleteStyle
	if err != nil {
		marker, style = FailureMarker, ErrorTitleStyle
	}
	r.printer.Println(fmt.Sprintf("  %s %s", style.Render(marker), cmd.String()))
}

// noteCounts annotates the keyword and message stages with what has been added
func (r *Runner) noteCounts(sess *session.Session) {
	own := 0
	for _, c := range sess.Store().Comments() {
		if c.IsOwn() {
			own++
		}
	}
	if own > 0 {
		r.progress.Note(flow.StageCommentConfig, plural(own, "keyword comment"))
	}

	mine := 0
	for _, m := range sess.Store().Messages() {
		if !m.FromBot() {
			mine++
		}
	}
	if mine > 0 {
		r.progress.Note(flow.StageMessageConfig, plural(mine, "custom message"))
	}
}

// ResultDetails lists the parts of a config worth showing in a result box
func ResultDetails(cfg *automation.Config) []Param {
	keywords := "(any comment)"
	if cfg.HasKeywords() {
		keywords = strings.Join(cfg.Keywords, ", ")
	}

	details := []Param{
		{Key: "Post", Value: fmt.Sprintf("%s (@%s)", cfg.PostID, cfg.PostUsername)},
		{Key: "Keywords", Value: keywords},
		{Key: "Sender", Value: "@" + cfg.BotName},
	}
	if cfg.CustomMessage != "" {
		details = append(details, Param{Key: "Custom DM", Value: cfg.CustomMessage})
	}
	return details
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// shortError keeps the progress note to the first clause of err
func shortError(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
