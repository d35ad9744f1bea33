package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
	"github.com/userFRM/rpg-encoder-sub002/internal/nav"
	"github.com/userFRM/rpg-encoder-sub002/internal/searchindex"
	"github.com/userFRM/rpg-encoder-sub002/internal/storage"
)

var (
	searchMode    string
	searchScope   string
	searchLimit   int
	searchBackend string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Intent-based entity search over the saved graph",
	Long: `search loads .rpg/graph.json and ranks entities against query by name and
semantic_features substring match, tiebreaking on shallower hierarchy
depth. Use --scope to restrict to a hierarchy subtree (e.g. --scope
Core/parsing) and --mode to control result shape.

--backend fts5 ranks with bm25 over the SQLite full-text index that scan
maintains under .rpg/, instead of the default in-memory fuzzy match.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchMode, "mode", "snippets", "result shape: snippets|full|hierarchy_only")
	searchCmd.Flags().StringVar(&searchScope, "scope", "", "restrict to a hierarchy path prefix")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "max results")
	searchCmd.Flags().StringVar(&searchBackend, "backend", "fuzzy", "ranking backend: fuzzy|fts5")
}

func runSearch(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	g, err := storage.Load(root)
	if err != nil {
		return fmt.Errorf("rpg search: %w", err)
	}

	var results []nav.SearchResult
	switch searchBackend {
	case "fts5":
		results, err = searchFTS5(root, g, args[0])
		if err != nil {
			return fmt.Errorf("rpg search: %w", err)
		}
	case "fuzzy":
		results = nav.Search(g, args[0], nav.SearchMode(searchMode), searchScope, searchLimit)
	default:
		return fmt.Errorf("rpg search: unknown backend %q (want fuzzy or fts5)", searchBackend)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// searchFTS5 ranks via the bm25 side-index and materializes the matches
// against the loaded graph. The index is over-fetched so that scope
// filtering of stale or out-of-scope ids can't starve --limit.
func searchFTS5(root string, g *graph.RPGraph, query string) ([]nav.SearchResult, error) {
	idx, err := searchindex.Open(root)
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	fetch := searchLimit * 4
	if fetch <= 0 {
		fetch = 40
	}
	matches, err := idx.Query(context.Background(), query, fetch)
	if err != nil {
		return nil, err
	}

	scored := make([]nav.ScoredID, len(matches))
	for i, m := range matches {
		scored[i] = nav.ScoredID{ID: m.EntityID, Score: m.Score}
	}
	return nav.SearchScored(g, scored, nav.SearchMode(searchMode), searchScope, searchLimit), nil
}
