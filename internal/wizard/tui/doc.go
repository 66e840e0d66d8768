// Package tui implements the interactive autodm configurator.
//
// The screen has two columns. The left column holds the editing panels, and
// which of them are shown is derived from the session's flow state. The right
// column is the phone preview, drawn from the session's preview descriptor with
// ui.RenderPhone. Every key that changes the configuration is turned into a
// session command, so the panels and the preview are always redrawn from the
// same state.
//
// # Screens
//
//   - Configurator: post picker, comment keywords, direct messages
//   - Success: the assembled automation with options to keep editing or start over
//
// # Panels
//
//  1. "When someone comments on": ←/→ move between posts, enter selects.
//     The PRO-only triggers are listed but cannot be chosen.
//  2. "And this comment has": type keywords (commas separate words), enter
//     adds them, ctrl+n moves on to the messages.
//  3. "They will get": the opening DM with its button, a textarea for the
//     follow-up DM, ctrl+s sends it, ctrl+d completes the setup and ctrl+o
//     explains the opening DM (rendered with glamour).
//
// tab cycles between visible panels, ctrl+r starts over, pgup/pgdn scroll the
// preview and ctrl+c quits from anywhere.
//
// # Usage Example
//
//	app := tui.NewAppModel(sess)
//	final, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
//	if err != nil {
//	    return err
//	}
//	if cfg := final.(tui.AppModel).Result; cfg != nil {
//	    // print or store cfg
//	}
//
// # Logging
//
// The wizard owns the terminal, so logs must go to a file (AUTODM_LOG_FILE)
// or be disabled.
package tui
