package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
	"github.com/userFRM/rpg-encoder-sub002/internal/nav"
	"github.com/userFRM/rpg-encoder-sub002/internal/storage"
)

var (
	exploreDepth  int
	exploreKinds  []string
	explorePathTo string
	exploreCycles bool
)

var exploreCmd = &cobra.Command{
	Use:   "explore <seed-id>",
	Short: "Bounded dependency traversal from a seed entity",
	Long: `explore walks the saved graph's dependency edges breadth-first from seed,
stopping at --depth hops, optionally restricted to --kinds (any of
invokes, imports, inherits, composes). Cycles are handled by a visited
set bounded by depth.

--path-to <id> prints the shortest dependency chain from seed to the
given entity instead of a neighborhood. --cycles reports one dependency
cycle in the whole graph, ignoring seed.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	exploreCmd.Flags().IntVar(&exploreDepth, "depth", 2, "max hops from seed")
	exploreCmd.Flags().StringSliceVar(&exploreKinds, "kinds", nil, "restrict to these edge kinds (invokes,imports,inherits,composes)")
	exploreCmd.Flags().StringVar(&explorePathTo, "path-to", "", "print the shortest dependency chain from seed to this entity id")
	exploreCmd.Flags().BoolVar(&exploreCycles, "cycles", false, "report one dependency cycle in the graph, if any")
}

func runExplore(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	g, err := storage.Load(root)
	if err != nil {
		return fmt.Errorf("rpg explore: %w", err)
	}

	var kinds map[graph.DepKind]bool
	if len(exploreKinds) > 0 {
		kinds = make(map[graph.DepKind]bool, len(exploreKinds))
		for _, k := range exploreKinds {
			kinds[depKindFromFlag(k)] = true
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if exploreCycles {
		found, cycle := nav.FindCycle(g, kinds)
		return enc.Encode(map[string]any{"has_cycle": found, "cycle": cycle})
	}

	if explorePathTo != "" {
		path := nav.PathBetween(g, args[0], explorePathTo, kinds)
		return enc.Encode(map[string]any{"from": args[0], "to": explorePathTo, "path": path})
	}

	result := nav.Explore(g, args[0], exploreDepth, kinds)
	return enc.Encode(result)
}

func depKindFromFlag(s string) graph.DepKind {
	switch s {
	case "invokes":
		return graph.DepInvokes
	case "imports":
		return graph.DepImports
	case "inherits":
		return graph.DepInherits
	case "composes":
		return graph.DepComposes
	default:
		return graph.DepKind(s)
	}
}
