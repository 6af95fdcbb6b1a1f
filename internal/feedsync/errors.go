package feedsync

import "errors"

var (
	// ErrBusy is returned when a create is already in flight. Overlapping
	// calls of the same kind coalesce instead of queueing.
	ErrBusy = errors.New("operation already in flight")

	// ErrUnknownPost is returned by React for an id not in the feed.
	ErrUnknownPost = errors.New("post not found in feed")

	// ErrClosed is returned once the synchronizer has been disposed.
	ErrClosed = errors.New("synchronizer is closed")
)
