package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// --- Content Loading ---

// LoadContent reads the projects.json manifest and every collection it lists.
// Collection paths are resolved relative to the manifest. Collections are read
// concurrently; the first failure cancels the rest and is returned.
func LoadContent(ctx context.Context, manifestPath string) (Content, error) {
	log.Printf("Reading manifest file: %s", manifestPath)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return Content{}, fmt.Errorf("reading manifest '%s': %w", manifestPath, err)
	}

	var manifest Manifest
	if err := sonic.Unmarshal(data, &manifest); err != nil {
		return Content{}, fmt.Errorf("parsing manifest '%s': %w", manifestPath, err)
	}

	baseDir := filepath.Dir(manifestPath)
	collections := make([]Collection, len(manifest.Collections))

	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range manifest.Collections {
		i, entry := i, entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := entry.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			projects, err := loadCollectionFile(path)
			if err != nil {
				return fmt.Errorf("collection '%s': %w", entry.Name, err)
			}
			collections[i] = Collection{Name: entry.Name, Projects: projects}
			debugf("Loaded collection '%s' with %d projects", entry.Name, len(projects))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Content{}, err
	}

	return Content{Config: manifest.TimelineConfig, Collections: collections}, nil
}

// loadCollectionFile decodes one collection, as YAML for .yaml/.yml files and
// JSON otherwise.
func loadCollectionFile(path string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading '%s': %w", path, err)
	}

	var file CollectionFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = sonic.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing '%s': %w", path, err)
	}
	return file.Projects, nil
}

// AllProjects flattens the collections into one list, tags each project with
// its collection name and sorts from future to past (stable for ties).
// Projects without an id, or repeating an id already seen, are skipped.
func AllProjects(content Content) []Project {
	var all []Project
	seen := make(map[string]bool)
	for _, collection := range content.Collections {
		for _, project := range collection.Projects {
			if project.ID == "" {
				log.Printf("Warning: skipping project without id in collection '%s' (name '%s')", collection.Name, project.Name)
				continue
			}
			if seen[project.ID] {
				log.Printf("Warning: skipping duplicate project id '%s' in collection '%s'", project.ID, collection.Name)
				continue
			}
			seen[project.ID] = true
			project.Collection = collection.Name
			all = append(all, project)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Position > all[j].Position
	})
	return all
}
