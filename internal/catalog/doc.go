// Package catalog holds the entities shown in the configurator and the store that owns them.
//
// A Store carries three collections:
//   - Posts: the fixed catalog of selectable posts, built once and never changed
//   - Comments: the thread under the selected post, append-only
//   - Messages: the direct-message conversation, append-only, opened by two bot greetings
//
// Appends trim the input and reject blank text with ErrBlankText. New entries get their
// identifier from an IDGenerator (random UUIDs by default, or a SequenceGenerator for
// deterministic output).
//
// # Usage Example
//
//	store := catalog.NewDefaultStore()
//
//	if _, err := store.AppendComment("link"); errors.Is(err, catalog.ErrBlankText) {
//	    // nothing was added
//	}
//
//	for _, c := range store.Comments() {
//	    fmt.Println(c.Username, c.Text)
//	}
package catalog
