// Package session stores the documents of preview server sessions.
//
// A client posts a document once and receives a session ID; later requests
// render, resolve or update that document by ID. Sessions expire after a
// TTL that is extended whenever the document changes.
//
// # Backends
//
//   - [MemoryStore]: in-process storage, the default for `chartnote serve`
//   - [FileStore]: one JSON file per session, survives server restarts
//
// # Usage
//
//	store := session.NewMemoryStore()
//	sess := session.New(doc, io.FormatYAML, session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeSessionNotFound) {
//	    // unknown or expired
//	}
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/chartnote/pkg/errors"
	cnio "github.com/matzehuels/chartnote/pkg/io"
)

// DefaultTTL is the default session duration.
const DefaultTTL = 2 * time.Hour

// Session is one document under preview.
type Session struct {
	ID       string      `json:"id"`
	Document []byte      `json:"document"`
	Format   cnio.Format `json:"format"`
	// Theme overrides the theme named by the document.
	Theme     string    `json:"theme,omitempty"`
	Revision  int       `json:"revision"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a session holding doc.
func New(doc []byte, format cnio.Format, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Document:  doc,
		Format:    format,
		Revision:  1,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Update replaces the document, bumps the revision and extends the
// expiry by ttl.
func (s *Session) Update(doc []byte, format cnio.Format, ttl time.Duration) {
	now := time.Now()
	s.Document = doc
	s.Format = format
	s.Revision++
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// CacheScope is the cache key prefix that keeps artifacts of different
// sessions apart.
func (s *Session) CacheScope() string {
	return "session:" + s.ID + ":"
}

// ValidID reports whether id has the form of a session ID. Stores reject
// anything else before touching the backend.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. Unknown and expired sessions are
	// reported as ErrCodeSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting an unknown session is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and returns how many it removed.
	Cleanup(ctx context.Context) (int, error)
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
}
