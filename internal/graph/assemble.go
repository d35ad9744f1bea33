package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/userFRM/rpg-encoder-sub002/internal/extract"
	"github.com/userFRM/rpg-encoder-sub002/internal/paradigm"
	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
	"github.com/userFRM/rpg-encoder-sub002/internal/registry"
)

// FileResult is one file's extraction output, produced by a parallel parse
// worker and merged back into an RPGraph by the single-threaded Assemble
// step. Parse-time work is embarrassingly parallel across files; per-file
// extraction is single-threaded.
type FileResult struct {
	File     string
	Language registry.LangID
	Entities []extract.RawEntity
	Deps     extract.FileDeps
	// Err records a per-file failure (unreadable file, parser
	// construction failure). An unrecognized extension is never an error;
	// it just yields a FileResult with only File set.
	Err error
}

// ParseFilesParallel fans file parsing out across a bounded worker pool
// and returns one FileResult per input file, in input order. Merging is
// order-independent for graph correctness (ids dedupe on insert) but
// preserving input order here keeps downstream output deterministic run
// to run.
func ParseFilesParallel(ctx context.Context, reg *registry.Registry, root string, files []string) ([]FileResult, error) {
	return parseFiles(ctx, reg, root, files, nil, nil)
}

// ParseFilesWithParadigms is ParseFilesParallel plus the paradigm engine's
// classify / synthesize / seed pipeline applied to each file's raw
// entities before they are returned.
func ParseFilesWithParadigms(ctx context.Context, reg *registry.Registry, root string, files []string, engine *paradigm.Engine, cache *paradigm.QueryCache) ([]FileResult, error) {
	if engine == nil {
		return nil, fmt.Errorf("graph: ParseFilesWithParadigms requires a non-nil paradigm engine")
	}
	if cache == nil {
		cache = paradigm.NewQueryCache()
	}
	return parseFiles(ctx, reg, root, files, engine, cache)
}

func parseFiles(ctx context.Context, reg *registry.Registry, root string, files []string, engine *paradigm.Engine, cache *paradigm.QueryCache) ([]FileResult, error) {
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parseOneFile(reg, root, f, engine, cache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// parseOneFile never returns a fatal error for a single bad file - it
// records the failure on the result and lets the batch continue. Only
// caller-context cancellation stops the whole run (see parseFiles).
func parseOneFile(reg *registry.Registry, root, relFile string, engine *paradigm.Engine, cache *paradigm.QueryCache) FileResult {
	res := FileResult{File: relFile}

	lang, ok := reg.FromExtension(filepath.Ext(relFile))
	if !ok {
		return res
	}
	res.Language = lang.ID

	if lang.Grammar == "none" {
		source, err := os.ReadFile(filepath.Join(root, relFile))
		if err != nil {
			res.Err = fmt.Errorf("read %s: %w", relFile, err)
			return res
		}
		res.Entities = extract.EntitiesBash(source, relFile)
		res.Deps = extract.DepsBash(source)
		if engine != nil {
			applyParadigms(engine, cache, string(lang.ID), string(lang.ID), relFile, nil, nil, nil, &res)
		}
		return res
	}

	plang := parser.Language(lang.ID)
	if filepath.Ext(relFile) == ".tsx" {
		// .tsx shares the typescript registry entry but needs the tsx
		// grammar; the plain typescript grammar rejects JSX.
		plang = parser.TSX
	}
	p, err := parser.NewParser(plang)
	if err != nil {
		res.Err = fmt.Errorf("new parser for %s: %w", relFile, err)
		return res
	}
	defer p.Close()

	parsed, err := p.ParseFile(filepath.Join(root, relFile))
	if err != nil {
		res.Err = fmt.Errorf("parse %s: %w", relFile, err)
		return res
	}
	defer parsed.Close()

	entities, err := extract.Entities(parsed, relFile)
	if err != nil {
		res.Err = err
		return res
	}
	deps, err := extract.Deps(parsed, relFile)
	if err != nil {
		res.Err = err
		return res
	}
	res.Entities = entities
	res.Deps = deps

	if engine != nil {
		applyParadigms(engine, cache, string(lang.ID), string(plang), relFile, parsed.Grammar, parsed.Root, parsed.Source, &res)
	}
	return res
}

// grammarKey discriminates compiled queries in the QueryCache. It follows
// the parser grammar, not the registry language id, because .ts and .tsx
// share the "typescript" id while compiling against different grammars.
func applyParadigms(engine *paradigm.Engine, cache *paradigm.QueryCache, langID, grammarKey, relFile string, grammar *sitter.Language, root *sitter.Node, source []byte, res *FileResult) {
	active := engine.ActiveDefs(relFile, langID, res.Deps)
	paradigm.ClassifyEntities(active, res.Entities)
	extra := paradigm.ExecuteEntityQueries(cache, active, grammarKey, grammar, root, source, relFile)
	res.Entities = append(res.Entities, extra...)
	paradigm.ApplyFeatureSeeds(active, res.Entities)
}
