// Package storage persists an RPGraph beneath <project_root>/.rpg/ as the
// system of record. graph.json is the only source of truth;
// any derived index (internal/searchindex) is disposable and rebuilt from
// it, never the other way around.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
)

const (
	rpgDirName  = ".rpg"
	rpgFileName = "graph.json"
)

// Dir returns the .rpg directory path for a project root.
func Dir(projectRoot string) string {
	return filepath.Join(projectRoot, rpgDirName)
}

// File returns the graph.json path for a project root.
func File(projectRoot string) string {
	return filepath.Join(Dir(projectRoot), rpgFileName)
}

// Exists reports whether a graph has already been saved for projectRoot.
func Exists(projectRoot string) bool {
	_, err := os.Stat(File(projectRoot))
	return err == nil
}

// Save writes g to <project_root>/.rpg/graph.json, creating the directory
// if absent. The write goes to a temp file in the same directory and is
// renamed into place, so a crash mid-write never leaves a truncated
// graph.json for the next Load to trip over.
func Save(projectRoot string, g *graph.RPGraph) error {
	dir := Dir(projectRoot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteFailedError{Path: dir, Err: err}
	}

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return &WriteFailedError{Path: File(projectRoot), Err: err}
	}

	dest := File(projectRoot)
	tmp, err := os.CreateTemp(dir, "graph-*.json.tmp")
	if err != nil {
		return &WriteFailedError{Path: dest, Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &WriteFailedError{Path: dest, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteFailedError{Path: dest, Err: err}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return &WriteFailedError{Path: dest, Err: err}
	}
	return nil
}

// Load reads and decodes <project_root>/.rpg/graph.json.
func Load(projectRoot string) (*graph.RPGraph, error) {
	path := File(projectRoot)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadFailedError{Path: path, Err: err}
	}

	var g graph.RPGraph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, &ReadFailedError{Path: path, Err: fmt.Errorf("malformed graph JSON: %w", err)}
	}
	return &g, nil
}
