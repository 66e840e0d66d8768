// Package ui renders the styled, non-interactive output of the autodm commands.
//
// Commands such as "autodm run" and "autodm posts" print once and exit; the
// interactive configurator lives in internal/wizard/tui and reuses RenderPhone
// from this package for its preview column.
//
// # Components
//
//   - Header: command banner with title, invocation and ordered parameters
//   - Progress: the four wizard stages with a bar and per-stage notes
//   - Result: success, warning and failure boxes, with recovery hints
//   - OutputBox: preformatted text such as an encoded automation config
//   - RenderPhone: the mobile preview for a preview.Descriptor
//
// Runner ties these together for scripted sessions:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:       "Automation Run",
//	    Command:     "autodm run --post 2",
//	    ShowPreview: true,
//	})
//	cfg, err := runner.Run(ctx, sess, cmds)
//
// # Logging
//
// Output is meant to be read by people, so zap stays silent unless
// AUTODM_LOG_LEVEL is set.
package ui
