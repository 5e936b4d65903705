package ports

import "context"

// RemoteTokenCounter counts tokens via an external counting endpoint. Calls
// block on the network; failures are service errors that abort the run
// (counts must never be silently zero-filled).
type RemoteTokenCounter interface {
	Count(ctx context.Context, model, text string) (int, error)
}

// LocalTokenCounter counts tokens deterministically and offline with a fixed
// vocabulary. It shares the non-negative-count contract with the remote
// counter, but callers must not assume the two agree numerically.
type LocalTokenCounter interface {
	Count(text string) int

	// EncodingName identifies the vocabulary in use, for report headers.
	EncodingName() string
}
