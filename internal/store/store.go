// Package store defines the persistence contract shared by the workbook and
// database backends, together with the error taxonomy handlers map to HTTP
// responses.
package store

import (
	"errors"

	"ppm-service/internal/model"
)

var (
	// ErrSourceNotFound means the backing workbook/file itself is absent.
	ErrSourceNotFound = errors.New("data source not found")

	// ErrSheetMissing means a mandatory reference table is absent. The
	// submissions log is optional and never triggers this.
	ErrSheetMissing = errors.New("mandatory sheet missing")

	// ErrPersist means a write could not complete; the in-memory state is not
	// guaranteed to be on disk and must not be reported as saved.
	ErrPersist = errors.New("persist failed")

	// ErrUserNotFound means the phone number has no registry entry yet.
	ErrUserNotFound = errors.New("user not found")
)

// Dataset is the result of one load: the two reference tables plus the
// submissions log.
type Dataset struct {
	Projects    []model.Project
	Technicians []model.Technician
	Submissions []model.Submission
}

// Store is the persistence collaborator. Load is read-only and re-reads the
// backing state on every call so remaining quotas always reflect the latest
// submissions. AppendSubmission preserves prior row order with the new record
// last.
type Store interface {
	Load() (*Dataset, error)
	AppendSubmission(sub model.Submission) error

	FindUser(phone string) (*model.User, error)
	CreateUser(user model.User) error
}
