package bumper

import (
	"context"
	"errors"
	"fmt"

	modsemver "golang.org/x/mod/semver"

	"github.com/oshokin/semver-bumper/internal/domain/semver"
	"github.com/oshokin/semver-bumper/internal/logger"
	repo "github.com/oshokin/semver-bumper/internal/repository/versionfile"
)

// Repository defines persistence operations for the version file.
type Repository interface {
	Load(ctx context.Context) (semver.Version, error)
	Save(ctx context.Context, v semver.Version) error
	Lock(ctx context.Context) (func() error, error)
}

// Result describes the outcome of an Apply call.
type Result struct {
	// Operation is the name of the applied operation.
	Operation string
	// Old is the version read before the operation.
	Old semver.Version
	// New is the version after the operation.
	New semver.Version
}

// Changed reports whether the operation produced a different version.
func (r Result) Changed() bool {
	return r.Old != r.New
}

// Service orchestrates read-modify-write cycles on the version file.
type Service struct {
	// repo handles persistent storage of the version.
	repo Repository
	// initial is written when the version file does not exist yet.
	initial semver.Version
}

// errRepositoryRequired is returned when NewService gets a nil repository.
var errRepositoryRequired = errors.New("repository must be provided")

// NewService creates a service backed by the provided repository.
func NewService(repository Repository, initial semver.Version) (*Service, error) {
	if repository == nil {
		return nil, errRepositoryRequired
	}

	return &Service{
		repo:    repository,
		initial: initial,
	}, nil
}

// Current returns the persisted version, creating the file with the initial version if needed.
// Callers that modify the version must hold the lock; Apply does that.
func (s *Service) Current(ctx context.Context) (semver.Version, error) {
	v, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, repo.ErrNotFound):
		logger.InfoKV(ctx, "Version file not found, creating it", "version", s.initial.String())

		if err = s.repo.Save(ctx, s.initial); err != nil {
			return semver.Version{}, fmt.Errorf("create version file: %w", err)
		}

		return s.initial, nil
	default:
		return semver.Version{}, fmt.Errorf("load version: %w", err)
	}
}

// Apply transforms the persisted version under the file lock and saves the result.
func (s *Service) Apply(ctx context.Context, op Operation) (result Result, err error) {
	unlock, err := s.repo.Lock(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("lock version file: %w", err)
	}

	defer func() {
		if unlockErr := unlock(); unlockErr != nil && err == nil {
			err = fmt.Errorf("unlock version file: %w", unlockErr)
		}
	}()

	current, err := s.Current(ctx)
	if err != nil {
		return Result{}, err
	}

	if op.Check != nil {
		if err = op.Check(current); err != nil {
			return Result{}, err
		}
	}

	result = Result{
		Operation: op.Name,
		Old:       current,
		New:       op.Transform(current),
	}

	if !result.Changed() {
		logger.InfoKV(ctx, "Version unchanged", "operation", op.Name, "version", current.String())

		return result, nil
	}

	s.warnAbout(ctx, result)

	if err = s.repo.Save(ctx, result.New); err != nil {
		logger.ErrorKV(ctx, "Failed to persist version", "error", err)

		return Result{}, fmt.Errorf("persist version: %w", err)
	}

	logger.InfoKV(ctx, "Version updated",
		"operation", op.Name, "old", result.Old.String(), "new", result.New.String())

	return result, nil
}

// warnAbout logs results that are legal but probably unintended.
func (s *Service) warnAbout(ctx context.Context, result Result) {
	if !result.New.IsCanonical() {
		logger.WarnKV(ctx, "New version will not parse back", "version", result.New.String())

		return
	}

	if modsemver.Compare("v"+result.New.String(), "v"+result.Old.String()) < 0 {
		logger.WarnKV(ctx, "New version has lower precedence than the old one",
			"old", result.Old.String(), "new", result.New.String())
	}
}
