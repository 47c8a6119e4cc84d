package mockql

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/broady/mockql/config"
	"github.com/broady/mockql/mock"
)

// LoadSnapshot reads the configuration file at path and builds its snapshot.
// Every failure is reported as a *ConfigLoadError.
func LoadSnapshot(path string, m *mock.Mocker) (*Snapshot, error) {
	endpoints, err := config.Load(path)
	if err != nil {
		return nil, &ConfigLoadError{Path: path, Err: err}
	}
	snap, err := NewSnapshot(endpoints, m)
	if err != nil {
		return nil, &ConfigLoadError{Path: path, Err: err}
	}
	return snap, nil
}

// Reloader applies new configurations: it persists them to the
// configuration file, rebuilds the snapshot from the file and publishes it.
// Reloads are serialized.
type Reloader struct {
	mu     sync.Mutex
	path   string
	store  *Store
	mocker *mock.Mocker
	logger *slog.Logger
}

// NewReloader creates a Reloader that writes to path and publishes to store.
func NewReloader(path string, store *Store, m *mock.Mocker) *Reloader {
	return &Reloader{
		path:   path,
		store:  store,
		mocker: m,
	}
}

// WithLogger sets the logger used to report reloads.
// If not set, slog.Default() will be used.
func (r *Reloader) WithLogger(logger *slog.Logger) *Reloader {
	r.logger = logger
	return r
}

func (r *Reloader) log() *slog.Logger {
	if r.logger == nil {
		return slog.Default()
	}
	return r.logger
}

// Reload replaces the configuration with raw, a JSON array of endpoints.
//
// An invalid array, or one that does not compile, returns an error wrapping
// ErrInvalidPayload and leaves both the file and the current snapshot as
// they were. A file that cannot be written or read back returns an error
// wrapping ErrPersist.
func (r *Reloader) Reload(ctx context.Context, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	endpoints, err := config.Decode(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	data, err := config.Encode(endpoints)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	previous, err := os.ReadFile(r.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	hadPrevious := err == nil

	if err := config.WriteFile(r.path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	// The snapshot is built from what is on disk, not from the request.
	persisted, err := config.Load(r.path)
	if err != nil {
		r.restore(previous, hadPrevious)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	snap, err := NewSnapshot(persisted, r.mocker)
	if err != nil {
		r.restore(previous, hadPrevious)
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	published := r.store.Publish(snap)
	r.log().Info("snapshot published",
		slog.Uint64("version", published.Version()),
		slog.Int("endpoints", published.Len()))
	return nil
}

func (r *Reloader) restore(previous []byte, hadPrevious bool) {
	var err error
	if hadPrevious {
		err = config.WriteFile(r.path, previous)
	} else {
		err = os.Remove(r.path)
	}
	if err != nil {
		r.log().Error("failed to restore configuration file",
			slog.String("path", r.path),
			slog.Any("error", err))
	}
}
