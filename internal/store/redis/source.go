package redis

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/trainstatus/internal/training"
)

// Source reads training state a trainer published to Redis.
// It never writes.
type Source struct {
	client redis.UniversalClient
	keys   Keys
	path   string
}

var _ training.Source = (*Source)(nil)

// NewSource creates a Redis-backed source using prefix for key names.
func NewSource(client *redis.Client, prefix string) *Source {
	keys := NewKeys(prefix)
	opts := client.Options()
	return &Source{
		client: client,
		keys:   keys,
		path:   fmt.Sprintf("redis://%s/%d/%s", opts.Addr, opts.DB, keys.Results()),
	}
}

func (s *Source) Name() string { return "redis" }

func (s *Source) ResultsPath() string { return s.path }

// TrainingStatus reads the status document stored at the status key.
func (s *Source) TrainingStatus(ctx context.Context) (training.TrainingStatus, error) {
	data, err := s.client.Get(ctx, s.keys.Status()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, training.ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	status, err := training.ParseStatus(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse status key %s: %w", s.keys.Status(), err)
	}
	return status, nil
}

// ListResultFiles returns the members of the results set, sorted.
// A missing set means results were never published.
func (s *Source) ListResultFiles(ctx context.Context) ([]string, error) {
	exists, err := s.client.Exists(ctx, s.keys.Results()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check results set: %w", err)
	}
	if exists == 0 {
		return nil, training.ErrResultsNotFound
	}

	members, err := s.client.SMembers(ctx, s.keys.Results()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}

	files := filterResultNames(members)
	sort.Strings(files)
	return files, nil
}

// Ping checks the connection.
func (s *Source) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// filterResultNames keeps the *.json names, mirroring the filesystem source.
func filterResultNames(members []string) []string {
	files := make([]string, 0, len(members))
	for _, m := range members {
		if ok, _ := path.Match("*.json", m); ok {
			files = append(files, m)
		}
	}
	return files
}
