package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/userFRM/rpg-encoder-sub002/internal/config"
	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
	"github.com/userFRM/rpg-encoder-sub002/internal/lifting"
	"github.com/userFRM/rpg-encoder-sub002/internal/storage"
)

var (
	liftScope     string
	liftBatchSize int
	liftApply     string
)

var liftCmd = &cobra.Command{
	Use:   "lift",
	Short: "Open a semantic-lifting session over a hierarchy scope",
	Long: `lift opens a stable-index batching session over the not-yet-lifted
entities under --scope (or the whole graph if empty), prints the batch
layout, and exits - the real annotation call belongs to an external LLM
adapter.

With --apply <file>, reads a JSON array of {entity_id, features,
hierarchy_path} annotations (as an external Annotator would produce for
one batch) and writes them back onto the graph, persisting any entity id
that no longer resolves to .rpg/pending_routing.json for later review.`,
	RunE: runLift,
}

func init() {
	rootCmd.AddCommand(liftCmd)
	liftCmd.Flags().StringVar(&liftScope, "scope", "", "hierarchy path prefix to lift (default: whole graph)")
	liftCmd.Flags().IntVar(&liftBatchSize, "batch-size", 0, "override config.yaml's lifting.batch_size")
	liftCmd.Flags().StringVar(&liftApply, "apply", "", "apply annotations from a JSON file instead of opening a session")
}

func runLift(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	g, err := storage.Load(root)
	if err != nil {
		return fmt.Errorf("rpg lift: %w", err)
	}

	if liftApply != "" {
		return applyLiftFile(root, g, liftApply)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("rpg lift: %w", err)
	}
	batchSize := liftBatchSize
	if batchSize <= 0 {
		batchSize = cfg.Lifting.BatchSize
	}

	candidates := scopedCandidates(g, liftScope)
	pending := lifting.NotYetLifted(candidates)

	session, err := lifting.NewSession(sessionScopeKey(liftScope), pending, batchSize)
	if err != nil {
		return fmt.Errorf("rpg lift: %w", err)
	}

	fmt.Printf("session %s scope=%q entities=%d batches=%d auto_lifted=%d\n",
		session.ID, session.ScopeKey, len(pending), session.NumBatches(), session.AutoLifted())
	for i := 0; i < session.NumBatches(); i++ {
		batch, _ := session.Batch(i)
		ids := make([]string, len(batch))
		for j, e := range batch {
			ids[j] = e.ID
		}
		fmt.Printf("  batch %d: %s\n", i, strings.Join(ids, ", "))
	}
	return nil
}

func sessionScopeKey(scope string) string {
	if scope == "" {
		return "<all>"
	}
	return scope
}

func scopedCandidates(g *graph.RPGraph, scope string) []*graph.Entity {
	var out []*graph.Entity
	for _, id := range g.OrderedEntityIDs() {
		e, ok := g.GetEntity(id)
		if !ok {
			continue
		}
		if scope != "" && e.HierarchyPath != scope && !strings.HasPrefix(e.HierarchyPath, scope+"/") {
			continue
		}
		out = append(out, e)
	}
	return out
}

func applyLiftFile(root string, g *graph.RPGraph, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("rpg lift --apply: %w", err)
	}

	var anns []lifting.Annotation
	if err := json.Unmarshal(data, &anns); err != nil {
		return fmt.Errorf("rpg lift --apply: parse %s: %w", path, err)
	}

	skipped := lifting.ApplyAnnotations(g, anns)
	g.RefreshMetadata()
	if err := storage.Save(root, g); err != nil {
		return fmt.Errorf("rpg lift --apply: %w", err)
	}

	if len(skipped) > 0 {
		entries := make([]lifting.PendingRouting, len(skipped))
		for i, a := range skipped {
			entries[i] = lifting.PendingRouting{
				EntityID:     a.EntityID,
				OriginalPath: a.HierarchyPath,
				Features:     a.Features,
				Reason:       "entity id not found in graph at apply time",
			}
		}
		state := &lifting.PendingRoutingState{GraphRevision: g.Metadata.UpdatedAt, Entries: entries}
		if err := lifting.SaveRouting(root, state); err != nil {
			return fmt.Errorf("rpg lift --apply: %w", err)
		}
		fmt.Printf("applied %d annotations, %d routed to pending_routing.json\n", len(anns)-len(skipped), len(skipped))
		return nil
	}

	fmt.Printf("applied %d annotations\n", len(anns))
	return nil
}
