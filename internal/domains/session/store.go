// Package session holds the per-session audio transcription used to ground
// question answering. A session's context is written on every successful
// upload and read on every question; absence is a normal outcome callers
// must branch on, not an error.
package session

import "context"

// DefaultSessionID is used for clients that don't supply their own
// session identifier.
const DefaultSessionID = "default_session"

type Store interface {
	// Put unconditionally overwrites the transcription for the session.
	Put(ctx context.Context, sessionID, transcription string) error
	// Get returns the stored transcription. The second return is false
	// when no context exists (or it expired).
	Get(ctx context.Context, sessionID string) (string, bool, error)
	// Exists reports whether a context is stored for the session.
	Exists(ctx context.Context, sessionID string) (bool, error)
	// Close releases backend resources.
	Close() error
}
