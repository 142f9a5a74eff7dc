package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ContentWatcher reports changes to content files (manifest and collections)
// under a directory tree.
type ContentWatcher struct {
	watcher *fsnotify.Watcher
	changes chan string
}

// NewContentWatcher watches root and every directory below it.
func NewContentWatcher(root string) (*ContentWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cw := &ContentWatcher{
		watcher: watcher,
		changes: make(chan string, 100),
	}

	// Recursively add directories
	err = filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, err
	}

	go cw.processEvents()
	return cw, nil
}

// isContentFile reports whether a path looks like a manifest or collection file.
func isContentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func (cw *ContentWatcher) processEvents() {
	defer close(cw.changes)
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !isContentFile(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			// Drop the event if nobody is keeping up; one pending change is enough
			select {
			case cw.changes <- event.Name:
			default:
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			log.Printf("Content watch error: %v", err)
		}
	}
}

// Changes delivers the path of every changed content file.
func (cw *ContentWatcher) Changes() <-chan string {
	return cw.changes
}

// Close stops watching.
func (cw *ContentWatcher) Close() error {
	return cw.watcher.Close()
}

// ForwardReloads reloads the manifest on every content change and sends the
// new project list to events until ctx is done or the watcher closes. A failed
// reload is logged and the timeline keeps its current projects.
func (cw *ContentWatcher) ForwardReloads(ctx context.Context, manifestPath string, events chan<- Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-cw.Changes():
			if !ok {
				return
			}
			log.Printf("Content changed: %s", path)
			content, err := LoadContent(ctx, manifestPath)
			if err != nil {
				log.Printf("Error reloading content: %v", err)
				continue
			}
			config := content.Config
			select {
			case events <- ProjectsChanged{Projects: AllProjects(content), Config: &config}:
			case <-ctx.Done():
				return
			}
		}
	}
}
