package extract

import (
	"fmt"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

// Entities walks a parsed file and returns its RawEntity list, dispatching
// on language exactly as the registry's entity_extractor tag names.
func Entities(res *parser.ParseResult, relFile string) ([]RawEntity, error) {
	switch res.Language {
	case parser.Go:
		return entitiesGo(res, relFile), nil
	case parser.Python:
		return entitiesPython(res, relFile), nil
	case parser.Rust:
		return entitiesRust(res, relFile), nil
	case parser.TypeScript, parser.TSX, parser.JavaScript:
		return entitiesTypeScript(res, relFile), nil
	case parser.Java:
		return entitiesJava(res, relFile), nil
	case parser.Ruby:
		return entitiesRuby(res, relFile), nil
	case parser.Scala:
		return entitiesScala(res, relFile), nil
	case parser.C:
		return entitiesGeneric(res, relFile, cEntityConfig), nil
	case parser.Cpp:
		return entitiesGeneric(res, relFile, cppEntityConfig), nil
	case parser.CSharp:
		return entitiesGeneric(res, relFile, csharpEntityConfig), nil
	case parser.Kotlin:
		return entitiesGeneric(res, relFile, kotlinEntityConfig), nil
	case parser.Swift:
		return entitiesGeneric(res, relFile, swiftEntityConfig), nil
	case parser.PHP:
		return entitiesGeneric(res, relFile, phpEntityConfig), nil
	default:
		return nil, fmt.Errorf("extract: unsupported language %q", res.Language)
	}
}

// Deps walks a parsed file and returns its FileDeps, dispatching on
// language per the registry's dependency_extractor tag.
func Deps(res *parser.ParseResult, relFile string) (FileDeps, error) {
	switch res.Language {
	case parser.Go:
		return depsGo(res), nil
	case parser.Python:
		return depsPython(res), nil
	case parser.Rust:
		return depsRust(res), nil
	case parser.TypeScript, parser.TSX, parser.JavaScript:
		return depsTypeScript(res), nil
	case parser.Java:
		return depsJava(res), nil
	case parser.Ruby:
		return depsRuby(res), nil
	case parser.Scala:
		return depsScala(res), nil
	case parser.C:
		return depsC(res), nil
	case parser.Cpp:
		return depsCpp(res), nil
	case parser.CSharp:
		return depsCSharp(res), nil
	case parser.Kotlin:
		return depsKotlin(res), nil
	case parser.Swift:
		return depsSwift(res), nil
	case parser.PHP:
		return depsPHP(res), nil
	default:
		return FileDeps{}, fmt.Errorf("extract: unsupported language %q", res.Language)
	}
}

// EntitiesBash and DepsBash extract from raw source text directly; bash
// has no tree-sitter grammar in the registry (grammar = "none").
func EntitiesBash(source []byte, relFile string) []RawEntity {
	return entitiesBashText(source, relFile)
}

func DepsBash(source []byte) FileDeps {
	return depsBashText(source)
}
