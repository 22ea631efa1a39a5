package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/MrSnakeDoc/trainstatus/internal/training"
)

const (
	// DefaultStatusFile is where the trainer writes its progress document.
	DefaultStatusFile = "/app/results/training_status.json"
	// DefaultResultsDir is where the benchmarking process drops its JSON results.
	DefaultResultsDir = "/app/benchmarks/results"

	resultPattern = "*.json"
)

// Source reads training state from a shared volume.
type Source struct {
	statusFile string
	resultsDir string
}

var _ training.Source = (*Source)(nil)

// New creates a filesystem source. Empty paths fall back to the container defaults.
func New(statusFile, resultsDir string) *Source {
	if statusFile == "" {
		statusFile = DefaultStatusFile
	}
	if resultsDir == "" {
		resultsDir = DefaultResultsDir
	}
	return &Source{
		statusFile: statusFile,
		resultsDir: resultsDir,
	}
}

func (s *Source) Name() string { return "filesystem" }

// StatusFile returns the configured status document path.
func (s *Source) StatusFile() string { return s.statusFile }

func (s *Source) ResultsPath() string { return s.resultsDir }

// TrainingStatus reads and validates the status document.
func (s *Source) TrainingStatus(_ context.Context) (training.TrainingStatus, error) {
	data, err := os.ReadFile(s.statusFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, training.ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to read status file: %w", err)
	}

	status, err := training.ParseStatus(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse status file %s: %w", s.statusFile, err)
	}
	return status, nil
}

// ListResultFiles returns the names of *.json entries in the results directory, sorted.
// A results path that is a regular file yields an empty list.
func (s *Source) ListResultFiles(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.resultsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, training.ErrResultsNotFound
		}
		// A path that exists but is not a directory holds no results.
		if info, statErr := os.Stat(s.resultsDir); statErr == nil && !info.IsDir() {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read results dir: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(resultPattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to match %q: %w", entry.Name(), err)
		}
		if ok {
			files = append(files, entry.Name())
		}
	}
	// ReadDir already sorts; keep the guarantee explicit.
	sort.Strings(files)

	return files, nil
}

// Ping checks that the directories holding the status file and the results are reachable.
// Neither the file nor the results directory has to exist yet.
func (s *Source) Ping(_ context.Context) error {
	for _, dir := range []string{filepath.Dir(s.statusFile), filepath.Dir(s.resultsDir)} {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
	}
	return nil
}
