package paradigm

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/BurntSushi/toml"

	"github.com/userFRM/rpg-encoder-sub002/internal/extract"
)

//go:embed paradigms.toml
var paradigmsFS embed.FS

type paradigmTable struct {
	Paradigms []ParadigmDef `toml:"paradigm"`
}

// Engine is the decoded, immutable set of paradigm rules consulted on
// every parsed file. The zero value is not usable; construct with Default
// or Parse.
type Engine struct {
	defs []ParadigmDef
}

// Default decodes the built-in embedded paradigms.toml.
func Default() (*Engine, error) {
	data, err := paradigmsFS.ReadFile("paradigms.toml")
	if err != nil {
		return nil, fmt.Errorf("read embedded paradigms.toml: %w", err)
	}
	return Parse(data)
}

// Parse decodes a paradigms.toml document. Exposed separately from Default
// so a project can layer its own rules file on top of (or instead of) the
// built-in one.
func Parse(data []byte) (*Engine, error) {
	var table paradigmTable
	if _, err := toml.Decode(string(data), &table); err != nil {
		return nil, fmt.Errorf("decode paradigm table: %w", err)
	}
	return &Engine{defs: table.Paradigms}, nil
}

// ActiveDefs returns the subset of defs whose activates_on predicate
// matches this file: language, any import substring, any path substring,
// or any extension (logical OR across the populated fields).
func (e *Engine) ActiveDefs(relFile string, langID string, deps extract.FileDeps) []ParadigmDef {
	var active []ParadigmDef
	ext := filepath.Ext(relFile)

	for _, def := range e.defs {
		if def.Language != "" && def.Language != langID {
			continue
		}
		if activatesOnMatches(def.ActivatesOn, relFile, ext, deps) {
			active = append(active, def)
		}
	}
	return active
}

func activatesOnMatches(a ActivatesOn, relFile, ext string, deps extract.FileDeps) bool {
	for _, want := range a.ExtensionsAny {
		if ext == want {
			return true
		}
	}
	for _, sub := range a.PathContains {
		if strings.Contains(relFile, sub) {
			return true
		}
	}
	for _, want := range a.ImportsAny {
		for _, imp := range deps.Imports {
			if strings.Contains(imp.Module, want) {
				return true
			}
		}
	}
	// A def with no activation criteria at all never activates; an empty
	// ActivatesOn is a data-entry mistake, not a universal match.
	return false
}

// ClassifyEntities mutates raw's Kind field in place per every matching
// reclassify rule across active (pipeline step 1).
func ClassifyEntities(active []ParadigmDef, raw []extract.RawEntity) {
	for i := range raw {
		for _, def := range active {
			for _, rule := range def.Reclassify {
				if reclassifyMatches(rule, raw[i]) {
					raw[i].Kind = extract.EntityKind(rule.ToKind)
				}
			}
		}
	}
}

func reclassifyMatches(rule ReclassifyRule, e extract.RawEntity) bool {
	if rule.FromKind != "" && string(e.Kind) != rule.FromKind {
		return false
	}
	if rule.NamePrefix != "" && !strings.HasPrefix(e.Name, rule.NamePrefix) {
		return false
	}
	if rule.NameSuffix != "" && !strings.HasSuffix(e.Name, rule.NameSuffix) {
		return false
	}
	if rule.NameContains != "" && !strings.Contains(e.Name, rule.NameContains) {
		return false
	}
	if rule.NameCapitalized {
		r, _ := utf8.DecodeRuneInString(e.Name)
		if r == utf8.RuneError || !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// ApplyFeatureSeeds mutates raw's SemanticFeatures/FeatureSource in place
// per every matching feature-seed rule across active (pipeline step 3).
// FeatureSource is always "auto" for rule-seeded features -
// "llm" and "manual" are set later, by semantic lifting.
func ApplyFeatureSeeds(active []ParadigmDef, raw []extract.RawEntity) {
	for i := range raw {
		for _, def := range active {
			for _, seed := range def.FeatureSeeds {
				if featureSeedMatches(seed, raw[i]) {
					raw[i].SemanticFeatures = append(raw[i].SemanticFeatures, seed.Feature)
					raw[i].FeatureSource = "auto"
				}
			}
		}
	}
}

func featureSeedMatches(seed FeatureSeed, e extract.RawEntity) bool {
	if seed.Kind != "" && string(e.Kind) != seed.Kind {
		return false
	}
	if seed.NamePrefix != "" && !strings.HasPrefix(e.Name, seed.NamePrefix) {
		return false
	}
	if seed.NameContains != "" && !strings.Contains(e.Name, seed.NameContains) {
		return false
	}
	return true
}

// ExecuteEntityQueries runs every entity_queries pattern across active
// against root, synthesizing one RawEntity per match (pipeline step 2) -
// AST patterns surface entities the default extractor can't discover on
// its own. Queries are compiled once per
// (langID, pattern) via cache. A malformed pattern is skipped, not fatal -
// one bad rule must not take down the whole parse.
func ExecuteEntityQueries(cache *QueryCache, active []ParadigmDef, langID string, grammar *sitter.Language, root *sitter.Node, source []byte, relFile string) []extract.RawEntity {
	if grammar == nil || root == nil {
		return nil
	}
	var extra []extract.RawEntity
	seen := make(map[string]bool)

	for _, def := range active {
		for _, eq := range def.EntityQuery {
			q, err := cache.Get(langID, grammar, eq.Pattern)
			if err != nil {
				continue
			}
			cursor := sitter.NewQueryCursor()
			cursor.Exec(q, root)
			for {
				m, ok := cursor.NextMatch()
				if !ok {
					break
				}
				for _, c := range m.Captures {
					name := q.CaptureNameForId(c.Index)
					if name != eq.CaptureName {
						continue
					}
					text := c.Node.Content(source)
					start, end := int(c.Node.StartPoint().Row)+1, int(c.Node.EndPoint().Row)+1
					e := extract.RawEntity{
						QualifiedName: text,
						Name:          text,
						Kind:          extract.EntityKind(eq.Kind),
						File:          relFile,
						LineStart:     start,
						LineEnd:       end,
					}
					if seen[e.ID()] {
						continue
					}
					seen[e.ID()] = true
					extra = append(extra, e)
				}
			}
		}
	}
	return extra
}
