package lifting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/userFRM/rpg-encoder-sub002/internal/storage"
)

const pendingRoutingFileName = "pending_routing.json"

// RoutingPath returns the .rpg/pending_routing.json path for a project
// root.
func RoutingPath(projectRoot string) string {
	return filepath.Join(storage.Dir(projectRoot), pendingRoutingFileName)
}

// SaveRouting persists state to .rpg/pending_routing.json, creating .rpg/
// if absent.
func SaveRouting(projectRoot string, state *PendingRoutingState) error {
	dir := storage.Dir(projectRoot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("lifting: create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("lifting: marshal pending routing: %w", err)
	}

	path := RoutingPath(projectRoot)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("lifting: write %s: %w", path, err)
	}
	return nil
}

// LoadRouting reads .rpg/pending_routing.json. Loading a routing file is
// best-effort: a missing or malformed file yields (nil, false) rather
// than an error, since pending routing is disposable advisory state, not
// the graph itself.
func LoadRouting(projectRoot string) (*PendingRoutingState, bool) {
	data, err := os.ReadFile(RoutingPath(projectRoot))
	if err != nil {
		return nil, false
	}

	var state PendingRoutingState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, false
	}
	return &state, true
}
