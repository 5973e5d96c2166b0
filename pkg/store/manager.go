package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OpenFunc opens an engine handle. An empty path means in-memory. For
// file-backed stores, readOnly handles must not block other readers.
type OpenFunc func(path string, readOnly bool) (Engine, error)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// Path of the persistent store file. Empty means a process-lifetime
	// in-memory store.
	Path string

	// Open creates engine handles.
	Open OpenFunc

	// WriteRetries is how many times a write reopens after ErrLocked.
	// Zero means DefaultWriteRetries.
	WriteRetries int

	// RetryBackoff is the initial wait between write retries; it doubles
	// per attempt. Zero means DefaultRetryBackoff.
	RetryBackoff time.Duration

	// Logger is the configured zap logger.
	Logger *zap.Logger
}

const (
	DefaultWriteRetries = 5
	DefaultRetryBackoff = 50 * time.Millisecond
)

// Manager hands out engine handles with the right lifetime. In-memory
// stores are opened once and shared; file-backed stores are opened per
// operation and closed immediately so independent processes can interleave
// on the same store file.
type Manager struct {
	path    string
	open    OpenFunc
	mem     Engine
	retries int
	backoff time.Duration
	logger  *zap.Logger
}

func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Open == nil {
		return nil, errors.New("open function is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	m := &Manager{
		path:    cfg.Path,
		open:    cfg.Open,
		retries: cfg.WriteRetries,
		backoff: cfg.RetryBackoff,
		logger:  cfg.Logger,
	}
	if m.retries <= 0 {
		m.retries = DefaultWriteRetries
	}
	if m.backoff <= 0 {
		m.backoff = DefaultRetryBackoff
	}

	// In-memory stores have no lock contention; one handle lives for the
	// whole process.
	if m.path == "" {
		mem, err := m.open("", false)
		if err != nil {
			return nil, fmt.Errorf("opening in-memory store: %w", err)
		}
		m.mem = mem
	}

	return m, nil
}

// Persistent reports whether the manager fronts a file-backed store.
func (m *Manager) Persistent() bool {
	return m.path != ""
}

// Path returns the store file path, empty for in-memory.
func (m *Manager) Path() string {
	return m.path
}

// View runs fn against a read handle.
func (m *Manager) View(ctx context.Context, fn func(Engine) error) error {
	if m.mem != nil {
		return fn(m.mem)
	}

	op := uuid.NewString()
	engine, err := m.openRead(op)
	if err != nil {
		return err
	}
	defer m.closeHandle(op, engine)

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(engine)
}

// Update runs fn against a write handle, retrying with backoff while
// another process holds the file lock.
func (m *Manager) Update(ctx context.Context, fn func(Engine) error) error {
	if m.mem != nil {
		return fn(m.mem)
	}

	op := uuid.NewString()
	backoff := m.backoff

	var lastErr error
	for attempt := 0; attempt < m.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		engine, err := m.open(m.path, false)
		if err != nil {
			if !errors.Is(err, ErrLocked) {
				return fmt.Errorf("opening store for write: %w", err)
			}
			lastErr = err
			m.logger.Warn("store file locked, retrying write",
				zap.String("op", op),
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		err = fn(engine)
		m.closeHandle(op, engine)
		return err
	}

	return fmt.Errorf("store write failed after %d attempts: %w", m.retries, lastErr)
}

// Close releases the shared in-memory handle, if any. Per-operation
// handles are already closed by the time Close is called.
func (m *Manager) Close() error {
	if m.mem == nil {
		return nil
	}
	err := m.mem.Close()
	m.mem = nil
	return err
}

// openRead opens a read handle, creating the store file first when the
// path has never been opened for write.
func (m *Manager) openRead(op string) (Engine, error) {
	engine, err := m.open(m.path, true)
	if err == nil {
		m.logger.Debug("opened read handle", zap.String("op", op), zap.String("path", m.path))
		return engine, nil
	}
	if !errors.Is(err, ErrNotExist) {
		return nil, fmt.Errorf("opening store for read: %w", err)
	}

	// No store behind the path yet. Create it with a throwaway write
	// handle, then reopen read-only.
	m.logger.Debug("store missing, creating before read", zap.String("op", op), zap.String("path", m.path))
	w, err := m.open(m.path, false)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing store after create: %w", err)
	}

	engine, err = m.open(m.path, true)
	if err != nil {
		return nil, fmt.Errorf("reopening store for read: %w", err)
	}
	return engine, nil
}

func (m *Manager) closeHandle(op string, engine Engine) {
	if err := engine.Close(); err != nil {
		m.logger.Warn("closing store handle",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}
