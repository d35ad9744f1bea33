package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/userFRM/rpg-encoder-sub002/internal/nav"
	"github.com/userFRM/rpg-encoder-sub002/internal/storage"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <id>",
	Short: "Materialize one entity or hierarchy node",
	Long: `fetch resolves id against the saved graph. An entity id returns the entity
record, its exact source slice (lines[line_start-1:line_end]), and the ids
of its hierarchy siblings. A hierarchy id (prefixed "h:") returns the node,
its child names, and a recursive entity count.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	g, err := storage.Load(root)
	if err != nil {
		return fmt.Errorf("rpg fetch: %w", err)
	}

	out, err := nav.Fetch(g, args[0], root)
	if err != nil {
		return fmt.Errorf("rpg fetch: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
