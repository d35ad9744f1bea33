package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const gitignoreBlock = "\n# RPG-Encoder graph\n.rpg/\n"

// EnsureGitignore appends a ".rpg/" entry to <project_root>/.gitignore,
// creating the file if it doesn't exist. Returns true if .rpg was already
// ignored (no write needed), false if this call added it. A trimmed line
// of either ".rpg" or ".rpg/" counts as already ignored.
func EnsureGitignore(projectRoot string) (bool, error) {
	path := filepath.Join(projectRoot, ".gitignore")

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(strings.TrimPrefix(gitignoreBlock, "\n")), 0o644); err != nil {
			return false, fmt.Errorf("storage: write %s: %w", path, err)
		}
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: read %s: %w", path, err)
	}

	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == ".rpg" || trimmed == ".rpg/" {
			return true, nil
		}
	}

	updated := string(content)
	if !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += gitignoreBlock
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("storage: write %s: %w", path, err)
	}
	return false, nil
}
