// Package flow implements the progressive configuration state machine.
//
// State holds what the user has chosen so far: the selected post (by id), which
// stages are unlocked and the two unsubmitted drafts. It is an immutable value;
// commands such as SelectPost return a new State.
//
// Derive maps a State to the current Stage:
//
//	Selection → PostView → CommentConfig → MessageConfig
//
// Stages unlock monotonically. Nothing in this package locks a stage again; only an
// explicit reset (a fresh State) does. Derive is recomputed on every read and has no
// hidden inputs, so the stage is always consistent with the latest state.
package flow
