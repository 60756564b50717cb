// Package bookmark stores the shareable URLs produced by the puzzled editor.
//
// In the browser the editing state lives in the page address; in a terminal
// host there is no address bar, so each editing session owns a bookmark
// entry whose URL fragment the debounced save rewrites in place. Explicit
// shares create additional named entries.
//
// The Store interface has three backends:
//   - file: JSON files under a config directory (default, no services needed)
//   - redis: for sharing bookmarks across machines on one network
//   - mongo: for a durable multi-session gallery
//
// All backends store only URLs; the editing state itself always travels
// inside the URL fragment.
package bookmark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown bookmark store backend")

// Entry is one saved bookmark. The editing state is embedded in the URL
// fragment; the entry itself is only an address.
type Entry struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	URL       string    `json:"url" bson:"url"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewEntry creates an entry with a fresh ID and creation timestamps.
func NewEntry(title, url string) *Entry {
	now := time.Now().UTC()
	return &Entry{
		ID:        uuid.NewString(),
		Title:     title,
		URL:       url,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the interface for bookmark storage backends.
type Store interface {
	// Get retrieves an entry by ID. Returns nil, nil if it doesn't exist.
	Get(ctx context.Context, id string) (*Entry, error)

	// Put stores an entry, replacing any existing entry with the same ID.
	Put(ctx context.Context, e *Entry) error

	// Delete removes an entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all entries. The order is backend-defined.
	List(ctx context.Context) ([]Entry, error)

	// Close releases backend resources.
	Close() error
}

// Options selects and configures a backend for Open.
type Options struct {
	Backend   string // "file", "redis", or "mongo"
	Path      string // file: base directory ("" for the default)
	RedisAddr string // redis: host:port
	MongoURI  string // mongo: connection URI
	MongoDB   string // mongo: database name
}

// Open constructs the store selected by opts. An empty backend defaults to
// the file store.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", "file":
		return NewFileStore(opts.Path)
	case "redis":
		return NewRedisStore(ctx, opts.RedisAddr)
	case "mongo":
		return NewMongoStore(ctx, opts.MongoURI, opts.MongoDB)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
