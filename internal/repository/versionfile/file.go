package versionfile

import (
	"bytes"
	"context"
	"crypto"
	"crypto/sha512"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/semver-bumper/internal/config"
	"github.com/oshokin/semver-bumper/internal/domain/semver"
	"github.com/oshokin/semver-bumper/internal/logger"
)

const (
	// lockSuffix is appended to the version file path to name its lock file.
	lockSuffix = ".lock"

	// defaultRetryInterval is the delay between lock acquisition attempts.
	defaultRetryInterval = 50 * time.Millisecond

	// directoryPermissions is used when the version file lives in a missing directory.
	directoryPermissions = 0o755
)

var (
	// ErrNotFound is returned when the version file does not exist yet.
	ErrNotFound = errors.New("version file not found")
	// ErrLocked is returned when the lock could not be acquired before the timeout.
	ErrLocked = errors.New("version file is locked by another process")
)

// FileRepository stores one semantic version in a text file.
type FileRepository struct {
	// path is the filesystem location of the version file.
	path string
	// lockPath is the location of the lock file guarding path.
	lockPath string
	// lockTimeout bounds how long Lock waits for the current holder.
	lockTimeout time.Duration
	// retryInterval is the delay between lock attempts.
	retryInterval time.Duration
	// staleLockLifetime is the age after which an existing lock is reclaimed.
	staleLockLifetime time.Duration
	// mu protects concurrent access to the version file within this process.
	mu sync.Mutex
}

// Option configures a FileRepository.
type Option func(*FileRepository)

// WithLockTimeout sets how long Lock waits before failing with ErrLocked.
func WithLockTimeout(timeout time.Duration) Option {
	return func(r *FileRepository) {
		if timeout > 0 {
			r.lockTimeout = timeout
		}
	}
}

// WithRetryInterval sets the delay between lock acquisition attempts.
func WithRetryInterval(interval time.Duration) Option {
	return func(r *FileRepository) {
		if interval > 0 {
			r.retryInterval = interval
		}
	}
}

// WithStaleLockLifetime sets the age after which a lock file is considered abandoned.
func WithStaleLockLifetime(lifetime time.Duration) Option {
	return func(r *FileRepository) {
		if lifetime > 0 {
			r.staleLockLifetime = lifetime
		}
	}
}

// NewFileRepository creates a repository that reads/writes the version at the provided path.
func NewFileRepository(path string, opts ...Option) *FileRepository {
	cleaned := filepath.Clean(path)

	r := &FileRepository{
		path:              cleaned,
		lockPath:          cleaned + lockSuffix,
		lockTimeout:       config.DefaultLockTimeout,
		retryInterval:     defaultRetryInterval,
		staleLockLifetime: config.DefaultStaleLockLifetime,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Path returns the location of the version file.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads and parses the version file.
func (r *FileRepository) Load(_ context.Context) (semver.Version, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return semver.Version{}, ErrNotFound
		}

		return semver.Version{}, fmt.Errorf("read version file: %w", err)
	}

	v, err := semver.Parse(string(contents))
	if err != nil {
		return semver.Version{}, fmt.Errorf("decode version file %s: %w", r.path, err)
	}

	return v, nil
}

// Save replaces the version file with the rendered version and a trailing newline.
// The new content is written next to the target and renamed over it.
func (r *FileRepository) Save(ctx context.Context, v semver.Version) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureFileExists(); err != nil {
		return err
	}

	content := []byte(v.String() + "\n")
	checksum := sha512.Sum512(content)

	options := goupdate.Options{
		TargetPath: r.path,
		TargetMode: config.DefaultFilePermissions,
		Checksum:   checksum[:],
		Hash:       crypto.SHA512,
	}

	if err := goupdate.Apply(bytes.NewReader(content), options); err != nil {
		return fmt.Errorf("write version file: %w", err)
	}

	oldFileName := r.path + ".old"
	if _, err := os.Stat(oldFileName); err == nil {
		_ = os.Remove(oldFileName)
	}

	logger.DebugKV(ctx, "Version file written", "path", r.path, "version", v.String())

	return nil
}

// ensureFileExists creates an empty version file so that it can be replaced atomically.
func (r *FileRepository) ensureFileExists() error {
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat version file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), directoryPermissions); err != nil {
		return fmt.Errorf("create version file directory: %w", err)
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY, config.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("create version file: %w", err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("create version file: %w", err)
	}

	return nil
}
