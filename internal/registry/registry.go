// Package registry implements the RPG language registry: a declarative,
// build-time-authored table mapping file extensions to language ids and
// grammar handles. Adding a language requires only a new languages.toml
// entry plus a grammar dependency, never a change to the entity or
// dependency extractor core.
package registry

import (
	"embed"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed languages.toml
var languagesFS embed.FS

// LangID is the canonical lowercase language tag used throughout the RPG:
// rust, python, typescript, javascript, go, java, c, cpp, csharp, kotlin,
// swift, scala, ruby, php, bash.
type LangID string

// Language is a single registry entry: everything the parser, extractor,
// and paradigm layers need to know about one language.
type Language struct {
	ID                  LangID   `toml:"id"`
	Name                string   `toml:"name"`
	Extensions          []string `toml:"extensions"`
	Glob                string   `toml:"glob"`
	Grammar             string   `toml:"grammar"`
	EntityExtractorTag  string   `toml:"entity_extractor"`
	DependencyExtractor string   `toml:"dependency_extractor"`
}

type languageTable struct {
	Languages []Language `toml:"language"`
}

// Registry holds the decoded language table and the derived lookup
// indexes used by From* queries.
type Registry struct {
	languages  []Language
	byID       map[LangID]Language
	byName     map[string]Language
	byExt      map[string]Language
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry decoded from the embedded languages.toml.
// It is decoded once and cached; callers never mutate the returned value.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		data, err := languagesFS.ReadFile("languages.toml")
		if err != nil {
			defaultErr = fmt.Errorf("read embedded languages.toml: %w", err)
			return
		}
		defaultRegistry, defaultErr = Parse(data)
	})
	return defaultRegistry, defaultErr
}

// Parse decodes a languages.toml document into a Registry. Exposed
// separately from Default so callers (and tests) can load an alternate
// table without touching the embedded default.
func Parse(data []byte) (*Registry, error) {
	var table languageTable
	if _, err := toml.Decode(string(data), &table); err != nil {
		return nil, fmt.Errorf("decode language table: %w", err)
	}

	r := &Registry{
		languages: table.Languages,
		byID:      make(map[LangID]Language, len(table.Languages)),
		byName:    make(map[string]Language, len(table.Languages)),
		byExt:     make(map[string]Language),
	}
	for _, lang := range table.Languages {
		r.byID[lang.ID] = lang
		r.byName[lang.Name] = lang
		for _, ext := range lang.Extensions {
			r.byExt[ext] = lang
		}
	}
	return r, nil
}

// FromExtension maps a file extension (with leading dot, e.g. ".go") to
// its language entry. Unknown extensions return ok=false; callers must
// treat this as "skip the file", never as an error.
func (r *Registry) FromExtension(ext string) (Language, bool) {
	lang, ok := r.byExt[ext]
	return lang, ok
}

// FromName maps a canonical or display name to its language entry.
func (r *Registry) FromName(name string) (Language, bool) {
	if lang, ok := r.byID[LangID(name)]; ok {
		return lang, ok
	}
	lang, ok := r.byName[name]
	return lang, ok
}

// DetectPrimary picks the most frequent language across a project's file
// list, by extension. Returns ("", false) if no file extension is
// recognized.
func (r *Registry) DetectPrimary(files []string) (LangID, bool) {
	counts := r.DetectAll(files)
	var best LangID
	bestCount := 0
	for id, count := range counts {
		if count > bestCount || (count == bestCount && (best == "" || id < best)) {
			best = id
			bestCount = count
		}
	}
	return best, bestCount > 0
}

// DetectAll returns a count of files per recognized language id.
func (r *Registry) DetectAll(files []string) map[LangID]int {
	counts := make(map[LangID]int)
	for _, f := range files {
		ext := filepath.Ext(f)
		lang, ok := r.byExt[ext]
		if !ok {
			continue
		}
		counts[lang.ID]++
	}
	return counts
}

// GrammarFor returns the grammar handle name for a language id. A
// grammar of "none" (e.g. bash) means the language is extracted without a
// tree-sitter parse tree.
func (r *Registry) GrammarFor(id LangID) (string, bool) {
	lang, ok := r.byID[id]
	if !ok {
		return "", false
	}
	return lang.Grammar, true
}

// Languages returns all registry entries in declaration order.
func (r *Registry) Languages() []Language {
	out := make([]Language, len(r.languages))
	copy(out, r.languages)
	return out
}
