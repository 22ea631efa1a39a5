package training

import (
	"encoding/json"
	"time"
)

const (
	// DefaultServiceName is reported by the root endpoint when no name is configured.
	DefaultServiceName = "phi4-finetuning"

	// TimestampLayout is ISO-8601 with microseconds and UTC offset.
	TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

	runningState = "running"
)

// ServiceStatus describes the wrapper process itself, not the training job.
type ServiceStatus struct {
	Service   string `json:"service"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// TrainingStatus is the status document exactly as the trainer wrote it.
// Its schema belongs to the trainer; it is never decoded into typed fields.
type TrainingStatus json.RawMessage

// MarshalJSON returns the document unchanged.
func (s TrainingStatus) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return s, nil
}

// Field extracts a top-level string field, if the document is an object that has one.
func (s TrainingStatus) Field(key string) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(s, &obj); err != nil {
		return "", false
	}
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return v, true
}

// ResultsListing is computed from the results location at request time.
type ResultsListing struct {
	ResultsAvailable bool     `json:"results_available"`
	Files            []string `json:"files"`
	Path             string   `json:"path"`
}

// placeholderStatus is served while the trainer has not written anything yet.
var placeholderStatus = TrainingStatus(`{"status":"initializing","message":"Training not yet started"}`)

// Placeholder returns a copy of the "initializing" document.
func Placeholder() TrainingStatus {
	out := make(TrainingStatus, len(placeholderStatus))
	copy(out, placeholderStatus)
	return out
}

func newServiceStatus(name string, now time.Time) ServiceStatus {
	return ServiceStatus{
		Service:   name,
		Status:    runningState,
		Timestamp: now.Format(TimestampLayout),
	}
}
