package training

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrStatusNotFound means the trainer has not produced a status document yet.
	ErrStatusNotFound = errors.New("training status not found")
	// ErrResultsNotFound means the results location does not exist yet.
	ErrResultsNotFound = errors.New("results not available")
	// ErrInvalidStatus wraps status documents that are not valid JSON.
	ErrInvalidStatus = errors.New("invalid training status document")
)

// Source is a read-only view over the state produced by the trainer and
// benchmarking processes.
type Source interface {
	// Name identifies the backend in logs and readiness output.
	Name() string
	// TrainingStatus returns ErrStatusNotFound when no document exists.
	TrainingStatus(ctx context.Context) (TrainingStatus, error)
	// ListResultFiles returns ErrResultsNotFound when the location is absent.
	ListResultFiles(ctx context.Context) ([]string, error)
	// ResultsPath is reported verbatim in ResultsListing.Path.
	ResultsPath() string
	// Ping checks that the backend can be read at all.
	Ping(ctx context.Context) error
}

// ParseStatus validates raw bytes as a status document.
func ParseStatus(data []byte) (TrainingStatus, error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidStatus, len(data))
	}
	out := make(TrainingStatus, len(data))
	copy(out, data)
	return out, nil
}
