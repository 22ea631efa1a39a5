package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/trainstatus/internal/training"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestNewDefaults(t *testing.T) {
	src := New("", "")
	if src.StatusFile() != DefaultStatusFile {
		t.Errorf("StatusFile() = %q, want %q", src.StatusFile(), DefaultStatusFile)
	}
	if src.ResultsPath() != DefaultResultsDir {
		t.Errorf("ResultsPath() = %q, want %q", src.ResultsPath(), DefaultResultsDir)
	}
}

func TestTrainingStatus(t *testing.T) {
	tmpDir := t.TempDir()
	statusPath := filepath.Join(tmpDir, "training_status.json")
	src := New(statusPath, filepath.Join(tmpDir, "results"))
	ctx := context.Background()

	if _, err := src.TrainingStatus(ctx); !errors.Is(err, training.ErrStatusNotFound) {
		t.Fatalf("TrainingStatus() without file error = %v, want ErrStatusNotFound", err)
	}

	writeFile(t, statusPath, `{"epoch": 3, "loss": 0.42}`+"\n")
	got, err := src.TrainingStatus(ctx)
	if err != nil {
		t.Fatalf("TrainingStatus() error = %v", err)
	}
	if string(got) != `{"epoch": 3, "loss": 0.42}` {
		t.Errorf("TrainingStatus() = %s", got)
	}

	writeFile(t, statusPath, `{"epoch": 3, "loss":`)
	if _, err := src.TrainingStatus(ctx); !errors.Is(err, training.ErrInvalidStatus) {
		t.Errorf("TrainingStatus() with truncated file error = %v, want ErrInvalidStatus", err)
	}
}

func TestTrainingStatusIsDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	src := New(tmpDir, tmpDir)

	_, err := src.TrainingStatus(context.Background())
	if err == nil {
		t.Fatal("TrainingStatus() on a directory should fail")
	}
	if errors.Is(err, training.ErrStatusNotFound) {
		t.Error("a directory in place of the status file is not a missing file")
	}
}

func TestListResultFiles(t *testing.T) {
	tmpDir := t.TempDir()
	resultsDir := filepath.Join(tmpDir, "results")
	src := New(filepath.Join(tmpDir, "status.json"), resultsDir)
	ctx := context.Background()

	if _, err := src.ListResultFiles(ctx); !errors.Is(err, training.ErrResultsNotFound) {
		t.Fatalf("ListResultFiles() without dir error = %v, want ErrResultsNotFound", err)
	}

	if err := os.Mkdir(resultsDir, 0o755); err != nil {
		t.Fatalf("Failed to create results dir: %v", err)
	}
	files, err := src.ListResultFiles(ctx)
	if err != nil {
		t.Fatalf("ListResultFiles() error = %v", err)
	}
	if files == nil || len(files) != 0 {
		t.Errorf("ListResultFiles() on empty dir = %#v, want empty non-nil slice", files)
	}

	writeFile(t, filepath.Join(resultsDir, "b.json"), "{}")
	writeFile(t, filepath.Join(resultsDir, "a.json"), "{}")
	writeFile(t, filepath.Join(resultsDir, "c.txt"), "nope")
	if err := os.Mkdir(filepath.Join(resultsDir, "nested.json"), 0o755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}

	files, err = src.ListResultFiles(ctx)
	if err != nil {
		t.Fatalf("ListResultFiles() error = %v", err)
	}
	want := []string{"a.json", "b.json"}
	if len(files) != len(want) {
		t.Fatalf("ListResultFiles() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("ListResultFiles()[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestListResultFilesPathIsFile(t *testing.T) {
	tmpDir := t.TempDir()
	resultsDir := filepath.Join(tmpDir, "results")
	writeFile(t, resultsDir, "not a directory")
	src := New(filepath.Join(tmpDir, "status.json"), resultsDir)

	files, err := src.ListResultFiles(context.Background())
	if err != nil {
		t.Fatalf("ListResultFiles() error = %v, want nil", err)
	}
	if files == nil || len(files) != 0 {
		t.Errorf("ListResultFiles() = %#v, want empty non-nil slice", files)
	}
}

func TestPing(t *testing.T) {
	tmpDir := t.TempDir()

	ok := New(filepath.Join(tmpDir, "status.json"), filepath.Join(tmpDir, "results"))
	if err := ok.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	missing := New("/nonexistent/path/status.json", filepath.Join(tmpDir, "results"))
	if err := missing.Ping(context.Background()); err == nil {
		t.Error("Ping() with missing parent dir should fail")
	}
}
