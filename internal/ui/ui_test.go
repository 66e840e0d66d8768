package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/muurk/autodm/internal/automation"
	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/flow"
	"github.com/muurk/autodm/internal/session"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	store, err := catalog.NewStore(catalog.DefaultPosts(),
		catalog.WithIDGenerator(catalog.NewSequenceGenerator("id-", 1)))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return session.New(store)
}

func TestHeaderRender(t *testing.T) {
	h := NewHeader("Automation run", "autodm run --post 2",
		Param{Key: "Post", Value: "2"},
		Param{Key: "Keywords", Value: "link"},
	).SetWidth(80)

	out := h.Render()
	for _, want := range []string{"AUTOMATION RUN", "autodm run --post 2", "Post:", "Keywords:", "link"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q\n%s", want, out)
		}
	}

	// Params keep their order
	if strings.Index(out, "Post:") > strings.Index(out, "Keywords:") {
		t.Error("Render() reordered params")
	}
}

func TestResultRender(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   []string
	}{
		{
			name:   "success",
			result: NewSuccessResult("Automation configured", Param{Key: "Post", Value: "3"}),
			want:   []string{"SUCCESS", "Automation configured", "Post:", "3"},
		},
		{
			name:   "warning",
			result: NewWarningResult("Configuration not completed"),
			want:   []string{"WARNING", "Configuration not completed"},
		},
		{
			name:   "failure with hints",
			result: NewFailureResult("advance failed", errors.New("boom"), "try again"),
			want:   []string{"FAILED", "advance failed", "Error: boom", "try again"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.result.SetWidth(80).Render()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Render() missing %q\n%s", want, out)
				}
			}
		})
	}
}

func TestHintsFor(t *testing.T) {
	sess := newSession(t)

	err := sess.SelectPost("99")
	if hints := HintsFor(err); len(hints) == 0 || !strings.Contains(hints[0], "autodm posts") {
		t.Errorf("HintsFor(unknown post) = %v", hints)
	}

	err = sess.AdvanceToMessaging()
	if hints := HintsFor(err); len(hints) != 2 {
		t.Errorf("HintsFor(invalid transition) = %v, want 2 hints", hints)
	}

	if hints := HintsFor(errors.New("plain")); hints != nil {
		t.Errorf("HintsFor(plain error) = %v, want nil", hints)
	}
}

func TestProgressStages(t *testing.T) {
	p := NewProgress("").SetWidth(80)

	p.SetStage(flow.StageCommentConfig)
	want := []StepStatus{StepComplete, StepComplete, StepRunning, StepPending}
	for i, s := range p.Steps {
		if s.Status != want[i] {
			t.Errorf("step %d status = %v, want %v", i, s.Status, want[i])
		}
	}
	if got := p.Percent(); got != 0.5 {
		t.Errorf("Percent() = %v, want 0.5", got)
	}

	p.Fail("blank")
	if p.Steps[2].Status != StepFailed || p.Steps[2].Message != "blank" {
		t.Errorf("Fail() did not mark the running step: %+v", p.Steps[2])
	}

	p.Finish()
	if got := p.Percent(); got != 1 {
		t.Errorf("Percent() after Finish = %v, want 1", got)
	}

	out := p.Render()
	for _, name := range []string{"Choose a post", "Comment keywords", "Direct message", "[4/4]"} {
		if !strings.Contains(out, name) {
			t.Errorf("Render() missing %q", name)
		}
	}
}

func TestRenderPhoneScreens(t *testing.T) {
	sess := newSession(t)

	out := RenderPhone(sess.Descriptor())
	if !strings.Contains(out, "Select a Post") {
		t.Errorf("selection screen missing title\n%s", out)
	}

	if err := sess.SelectPost("1"); err != nil {
		t.Fatal(err)
	}
	if err := sess.Apply(context.Background(), session.Command{Type: session.CmdSubmitComment, Text: "link"}); err != nil {
		t.Fatal(err)
	}
	out = RenderPhone(sess.Descriptor())
	for _, want := range []string{"Comments", "techguru", "user123", "link"} {
		if !strings.Contains(out, want) {
			t.Errorf("comments screen missing %q\n%s", want, out)
		}
	}

	if err := sess.AdvanceToMessaging(); err != nil {
		t.Fatal(err)
	}
	out = RenderPhone(sess.Descriptor())
	for _, want := range []string{"@botspacehq", catalog.OpeningButtonLabel} {
		if !strings.Contains(out, want) {
			t.Errorf("messaging screen missing %q\n%s", want, out)
		}
	}
}

func TestRunnerCompletes(t *testing.T) {
	sess := newSession(t)
	var buf bytes.Buffer

	runner := NewRunner(RunnerConfig{
		Title:       "Automation run",
		Command:     "autodm run",
		Output:      &buf,
		ShowPreview: true,
		Width:       80,
	})

	cfg, err := runner.Run(context.Background(), sess, []session.Command{
		{Type: session.CmdSelectPost, PostID: "2"},
		{Type: session.CmdSubmitComment, Text: "guide, map"},
		{Type: session.CmdAdvance},
		{Type: session.CmdSubmitMessage, Text: "Here you go"},
		{Type: session.CmdComplete},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Run() returned no config")
	}
	if cfg.PostID != "2" || len(cfg.Keywords) != 2 || cfg.CustomMessage != "Here you go" {
		t.Errorf("Run() config = %+v", cfg)
	}

	out := buf.String()
	for _, want := range []string{"AUTOMATION RUN", "SUCCESS", "wanderlust", "guide, map", "Here you go"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunnerStopsOnFailure(t *testing.T) {
	sess := newSession(t)
	var buf bytes.Buffer

	runner := NewRunner(RunnerConfig{Title: "Automation run", Output: &buf, Width: 80})
	cfg, err := runner.Run(context.Background(), sess, []session.Command{
		{Type: session.CmdAdvance},
		{Type: session.CmdSelectPost, PostID: "1"},
	})

	if !session.IsInvalidTransition(err) {
		t.Fatalf("Run() error = %v, want invalid transition", err)
	}
	if cfg != nil {
		t.Errorf("Run() config = %+v, want nil", cfg)
	}
	if sess.State().HasSelection() {
		t.Error("Run() kept applying commands after a failure")
	}
	if !strings.Contains(buf.String(), "FAILED") {
		t.Errorf("output missing failure box\n%s", buf.String())
	}
}

func TestRunnerIncomplete(t *testing.T) {
	sess := newSession(t)
	var buf bytes.Buffer

	cfg, err := NewRunner(RunnerConfig{Output: &buf, Width: 80}).
		Run(context.Background(), sess, []session.Command{{Type: session.CmdSelectPost, PostID: "4"}})
	if err != nil || cfg != nil {
		t.Fatalf("Run() = %v, %v; want nil, nil", cfg, err)
	}
	if !strings.Contains(buf.String(), "Configuration not completed") {
		t.Errorf("output missing warning\n%s", buf.String())
	}
}

func TestResultDetails(t *testing.T) {
	details := ResultDetails(&automation.Config{PostID: "1", PostUsername: "techguru", BotName: "bot"})
	if len(details) != 3 {
		t.Fatalf("ResultDetails() = %v", details)
	}
	if details[1].Value != "(any comment)" {
		t.Errorf("keywords = %q, want (any comment)", details[1].Value)
	}
}

func TestRenderPostsTable(t *testing.T) {
	out := RenderPostsTable(catalog.DefaultPosts(), 100)
	for _, want := range []string{"ID", "@techguru", "@fitnessmotiv", "likes"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderPostsTable() missing %q\n%s", want, out)
		}
	}
}

func TestOutputBoxTruncates(t *testing.T) {
	box := NewOutputBox("Config", "a\nb\nc\nd").SetWidth(80).SetMaxLines(2)
	out := box.Render()
	if !strings.Contains(out, "output truncated") {
		t.Errorf("Render() did not truncate\n%s", out)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"YES\n", true},
		{"no\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		if got := ConfirmOverwrite(strings.NewReader(tt.input), &out, "/tmp/config.yaml"); got != tt.want {
			t.Errorf("ConfirmOverwrite(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 6); got != "hello…" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
}
