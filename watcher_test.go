package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsContentFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"projects.json", true},
		{"content/work.YAML", true},
		{"play.yml", true},
		{"timeline.html", false},
		{"notes.md", false},
		{"projects.json.swp", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, isContentFile(tt.path))
		})
	}
}

func TestContentWatcherForwardsReloads(t *testing.T) {
	manifest := writeTestContent(t)
	dir := filepath.Dir(manifest)

	watcher, err := NewContentWatcher(dir)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan Event, 1)
	go watcher.ForwardReloads(ctx, manifest, events)

	updated := `{"projects": [{"id": "p9", "position": 7, "name": "New"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "work.json"), []byte(updated), 0644))

	select {
	case ev := <-events:
		changed, ok := ev.(ProjectsChanged)
		require.True(t, ok)
		var ids []string
		for _, p := range changed.Projects {
			ids = append(ids, p.ID)
		}
		assert.Contains(t, ids, "p9")
		assert.NotContains(t, ids, "p2", "the rewritten collection replaces its old projects")
		// With work's p1 gone, play's p1 is no longer a duplicate and sorts first
		assert.Equal(t, []string{"p1", "p9", "p3"}, ids)
		assert.Equal(t, "play", changed.Projects[0].Collection)
		require.NotNil(t, changed.Config)
		assert.Equal(t, 80.0, changed.Config.BaseOffset)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after a collection change")
	}
}
