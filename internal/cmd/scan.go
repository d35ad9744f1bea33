package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/userFRM/rpg-encoder-sub002/internal/config"
	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
	"github.com/userFRM/rpg-encoder-sub002/internal/paradigm"
	"github.com/userFRM/rpg-encoder-sub002/internal/registry"
	"github.com/userFRM/rpg-encoder-sub002/internal/searchindex"
	"github.com/userFRM/rpg-encoder-sub002/internal/storage"
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Parse a source tree and (re)build the graph",
	Long: `scan walks the project root (or the given path), discovers source files
by extension via the language registry, parses each in parallel, extracts
entities and dependencies, applies the paradigm engine's reclassification
and synthesis rules, seeds the graph's hierarchy from config defaults, and
writes the result to .rpg/graph.json.

A re-scan fully replaces the graph; there is no incremental reparsing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	scanRoot := root
	if len(args) == 1 {
		scanRoot = filepath.Join(root, args[0])
	}

	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("rpg scan: load config: %w", err)
	}

	reg, err := registry.Default()
	if err != nil {
		return fmt.Errorf("rpg scan: %w", err)
	}

	files, err := discoverFiles(scanRoot, reg, cfg.Scan.Languages, cfg.Scan.Exclude)
	if err != nil {
		return fmt.Errorf("rpg scan: %w", err)
	}

	engine, err := paradigm.Default()
	if err != nil {
		return fmt.Errorf("rpg scan: %w", err)
	}
	cache := paradigm.NewQueryCache()

	ctx := context.Background()
	results, err := graph.ParseFilesWithParadigms(ctx, reg, scanRoot, files, engine, cache)
	if err != nil {
		return fmt.Errorf("rpg scan: %w", err)
	}

	lang, _ := reg.DetectPrimary(files)
	langTag := string(lang)
	if langTag == "" {
		langTag = "polyglot"
	}

	g := graph.Assemble(langTag, results)
	for _, name := range cfg.Hierarchy.DefaultRoots {
		g.EnsureHierarchyPath(name)
	}
	g.RefreshMetadata()

	if err := storage.Save(root, g); err != nil {
		return fmt.Errorf("rpg scan: %w", err)
	}

	idx, err := searchindex.Open(root)
	if err == nil {
		defer idx.Close()
		_ = idx.Rebuild(ctx, g)
	}

	fmt.Printf("scanned %d files, %d entities, %d edges\n", len(files), g.Metadata.TotalEntities, len(g.Edges))
	return nil
}

// discoverFiles walks root and returns project-relative paths for every
// file whose extension the registry recognizes and that doesn't match an
// exclude glob; a non-empty languages list further keeps only files whose
// registry language id it names. Unrecognized extensions are silently
// skipped, never an error.
func discoverFiles(root string, reg *registry.Registry, languages, excludes []string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if info.IsDir() {
			if rel != "." && matchesAny(excludes, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesAny(excludes, rel) {
			return nil
		}
		lang, ok := reg.FromExtension(filepath.Ext(rel))
		if !ok {
			return nil
		}
		if len(languages) > 0 {
			allowed := false
			for _, id := range languages {
				allowed = allowed || id == string(lang.ID)
			}
			if !allowed {
				return nil
			}
		}
		files = append(files, rel)
		return nil
	})
	return files, err
}

func matchesAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		// doublestar-lite: a trailing "/**" or leading "**/" matches any
		// path containing the fixed segment, since filepath.Match has no
		// cross-separator wildcard.
		fixed := pat
		fixed = trimAny(fixed, "**/")
		fixed = trimSuffixAny(fixed, "/**")
		if fixed != pat {
			if ok, _ := filepath.Match("*"+fixed+"*", rel); ok {
				return true
			}
			for _, seg := range splitPath(rel) {
				if seg == fixed {
					return true
				}
			}
		}
	}
	return false
}

func trimAny(s, prefix string) string {
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}

func trimSuffixAny(s, suffix string) string {
	if len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)]
	}
	return s
}

func splitPath(p string) []string {
	return strings.Split(filepath.ToSlash(p), "/")
}
