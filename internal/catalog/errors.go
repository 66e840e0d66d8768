package catalog

import "errors"

var (
	// ErrBlankText is returned when a comment or message is empty after trimming.
	// The store is left untouched; callers usually treat it as a no-op.
	ErrBlankText = errors.New("text is blank")

	// ErrPostNotFound is returned when a post id is not part of the catalog.
	ErrPostNotFound = errors.New("post not found")

	// ErrDuplicatePost is returned when a catalog contains the same id twice.
	ErrDuplicatePost = errors.New("duplicate post id")
)
