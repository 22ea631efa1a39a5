package training

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Reporter builds the documents served by the status endpoints.
type Reporter struct {
	source      Source
	serviceName string
	now         func() time.Time
}

// NewReporter creates a reporter over src. An empty name falls back to DefaultServiceName.
func NewReporter(src Source, serviceName string, now func() time.Time) *Reporter {
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	if now == nil {
		now = time.Now
	}
	return &Reporter{
		source:      src,
		serviceName: serviceName,
		now:         now,
	}
}

// Source returns the backend the reporter reads from.
func (r *Reporter) Source() Source { return r.source }

// ServiceStatus reports the wrapper as running at the current time.
func (r *Reporter) ServiceStatus() ServiceStatus {
	return newServiceStatus(r.serviceName, r.now())
}

// Status returns the trainer's document, or the placeholder if there is none yet.
func (r *Reporter) Status(ctx context.Context) (TrainingStatus, error) {
	status, err := r.source.TrainingStatus(ctx)
	if errors.Is(err, ErrStatusNotFound) {
		return Placeholder(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read training status from %s: %w", r.source.Name(), err)
	}
	return status, nil
}

// Results lists result files. ErrResultsNotFound is passed through for the caller to map.
func (r *Reporter) Results(ctx context.Context) (ResultsListing, error) {
	files, err := r.source.ListResultFiles(ctx)
	if err != nil {
		if errors.Is(err, ErrResultsNotFound) {
			return ResultsListing{}, err
		}
		return ResultsListing{}, fmt.Errorf("list results from %s: %w", r.source.Name(), err)
	}
	if files == nil {
		files = []string{}
	}
	return ResultsListing{
		ResultsAvailable: len(files) > 0,
		Files:            files,
		Path:             r.source.ResultsPath(),
	}, nil
}
