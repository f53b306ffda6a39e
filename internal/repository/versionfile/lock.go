package versionfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/semver-bumper/internal/config"
	"github.com/oshokin/semver-bumper/internal/logger"
)

// reclaimSuffix is appended to the lock path to name the file that serialises stale lock reclaims.
const reclaimSuffix = ".reclaim"

// Lock acquires the cross-process lock guarding the version file.
// It retries until the lock timeout elapses (ErrLocked) or ctx is canceled.
// The returned function releases the lock.
func (r *FileRepository) Lock(ctx context.Context) (func() error, error) {
	lockCtx, cancel := context.WithTimeout(ctx, r.lockTimeout)
	defer cancel()

	ticker := time.NewTicker(r.retryInterval)
	defer ticker.Stop()

	for {
		acquired, err := r.tryLock(lockCtx)
		if err != nil {
			return nil, err
		}

		if acquired {
			logger.DebugKV(ctx, "Lock acquired", "lock", r.lockPath)

			return r.unlock, nil
		}

		select {
		case <-lockCtx.Done():
			if errors.Is(lockCtx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%s: %w", r.lockPath, ErrLocked)
			}

			return nil, lockCtx.Err()
		case <-ticker.C:
		}
	}
}

// tryLock makes one attempt, reclaiming the lock first when its holder is gone.
func (r *FileRepository) tryLock(ctx context.Context) (bool, error) {
	acquired, err := createExclusive(r.lockPath)
	if acquired || err != nil {
		return acquired, err
	}

	if _, stale := r.inspectLock(ctx); !stale {
		return false, nil
	}

	return r.reclaim(ctx)
}

// reclaim replaces a stale lock with our own. Only the holder of the reclaim
// guard may remove a lock, and it judges staleness again while holding it, so a
// lock created by a concurrent reclaimer is never mistaken for the stale one.
func (r *FileRepository) reclaim(ctx context.Context) (bool, error) {
	guardPath := r.lockPath + reclaimSuffix

	guarded, err := createExclusive(guardPath)
	if err != nil {
		return false, fmt.Errorf("create reclaim guard: %w", err)
	}

	if !guarded {
		r.dropAbandonedGuard(ctx, guardPath)

		return false, nil
	}

	defer func() {
		if removeErr := os.Remove(guardPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			logger.WarnKV(ctx, "Unable to remove reclaim guard", "guard", guardPath, "error", removeErr)
		}
	}()

	observed, stale := r.inspectLock(ctx)
	if !stale {
		return false, nil
	}

	if observed != nil {
		removed, err := r.removeLock(ctx, observed)
		if err != nil || !removed {
			return false, err
		}
	}

	return createExclusive(r.lockPath)
}

// removeLock deletes the lock file only if it is still the file described by observed.
// The lock is first moved to a unique name; when the moved file turns out to be a
// newer lock (its holder released and someone re-acquired in between), it is linked
// back into place. Link never overwrites, so a lock created meanwhile is kept.
func (r *FileRepository) removeLock(ctx context.Context, observed os.FileInfo) (bool, error) {
	movedPath := fmt.Sprintf("%s.stale.%d.%d", r.lockPath, os.Getpid(), time.Now().UnixNano())

	if err := os.Rename(r.lockPath, movedPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}

		return false, fmt.Errorf("move stale lock: %w", err)
	}

	moved, err := os.Stat(movedPath)
	if err == nil && os.SameFile(observed, moved) && observed.ModTime().Equal(moved.ModTime()) {
		logger.WarnKV(ctx, "Removed stale lock", "lock", r.lockPath)

		if err = os.Remove(movedPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("remove stale lock: %w", err)
		}

		return true, nil
	}

	if err = os.Link(movedPath, r.lockPath); err != nil {
		logger.WarnKV(ctx, "Unable to restore replaced lock", "lock", r.lockPath, "error", err)
	}

	if err = os.Remove(movedPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("remove moved lock: %w", err)
	}

	return false, nil
}

// dropAbandonedGuard removes a reclaim guard left behind by a process that died mid-reclaim.
func (r *FileRepository) dropAbandonedGuard(ctx context.Context, guardPath string) {
	info, err := os.Stat(guardPath)
	if err != nil || time.Since(info.ModTime()) <= r.staleLockLifetime {
		return
	}

	logger.WarnKV(ctx, "Removing abandoned reclaim guard", "guard", guardPath)

	if err = os.Remove(guardPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WarnKV(ctx, "Unable to remove reclaim guard", "guard", guardPath, "error", err)
	}
}

// createExclusive creates path only if it does not exist and writes the current PID into it.
func createExclusive(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, config.DefaultFilePermissions)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}

		return false, fmt.Errorf("create lock file: %w", err)
	}

	_, writeErr := f.WriteString(strconv.Itoa(os.Getpid()))
	if err = errors.Join(writeErr, f.Close()); err != nil {
		_ = os.Remove(path)

		return false, fmt.Errorf("write lock file: %w", err)
	}

	return true, nil
}

// inspectLock reports whether the existing lock can be reclaimed: it is older than
// the stale lifetime, or the PID it records no longer belongs to a running process.
// The returned info identifies the file the verdict applies to; it is nil when the
// lock no longer exists.
func (r *FileRepository) inspectLock(ctx context.Context) (os.FileInfo, bool) {
	f, err := os.Open(r.lockPath)
	if err != nil {
		return nil, errors.Is(err, os.ErrNotExist)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, false
	}

	if time.Since(info.ModTime()) > r.staleLockLifetime {
		return info, true
	}

	contents, err := io.ReadAll(f)
	if err != nil {
		return info, false
	}

	// An empty or partial file means the holder is still writing its PID.
	pid, err := strconv.Atoi(strings.TrimSpace(string(contents)))
	if err != nil || pid <= 0 || pid == os.Getpid() {
		return info, false
	}

	process, err := ps.FindProcess(pid)
	if err != nil {
		logger.Debugf(ctx, "Unable to look up lock holder %d: %v", pid, err)

		return info, false
	}

	return info, process == nil
}

// unlock removes the lock file.
func (r *FileRepository) unlock() error {
	if err := os.Remove(r.lockPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", err)
	}

	return nil
}
