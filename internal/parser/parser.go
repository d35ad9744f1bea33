// Package parser provides tree-sitter based code parsing for multiple languages.
//
// The parser package wraps the tree-sitter library to provide a unified
// interface for parsing source code in various programming languages, one
// grammar per supported language per the registry (internal/registry).
package parser

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	csharplang "github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/scala"
	"github.com/smacker/go-tree-sitter/swift"
	tstsx "github.com/smacker/go-tree-sitter/typescript/tsx"
	tstypescript "github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ParseError represents a parsing error with location information.
type ParseError struct {
	Message string
	File    string
	Line    uint32
	Column  uint32
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// UnsupportedLanguageError is returned when attempting to parse an unsupported language.
type UnsupportedLanguageError struct {
	Language string
}

// Error implements the error interface.
func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %s", e.Language)
}

// FileReadError is returned when a file cannot be read.
type FileReadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Language represents a supported programming language.
type Language string

const (
	// Go represents the Go programming language.
	Go Language = "go"
	// TypeScript represents the TypeScript programming language.
	TypeScript Language = "typescript"
	// TSX represents TypeScript with JSX syntax (.tsx files), which needs
	// its own grammar: the plain typescript grammar does not accept JSX.
	TSX Language = "tsx"
	// JavaScript represents the JavaScript programming language.
	JavaScript Language = "javascript"
	// Python represents the Python programming language.
	Python Language = "python"
	// Rust represents the Rust programming language.
	Rust Language = "rust"
	// Java represents the Java programming language.
	Java Language = "java"
	// CSharp represents the C# programming language.
	CSharp Language = "csharp"
	// C represents the C programming language.
	C Language = "c"
	// Cpp represents the C++ programming language.
	Cpp Language = "cpp"
	// PHP represents the PHP programming language.
	PHP Language = "php"
	// Kotlin represents the Kotlin programming language.
	Kotlin Language = "kotlin"
	// Ruby represents the Ruby programming language.
	Ruby Language = "ruby"
	// Swift represents the Swift programming language.
	Swift Language = "swift"
	// Scala represents the Scala programming language.
	Scala Language = "scala"
)

// Parser wraps tree-sitter for code parsing.
type Parser struct {
	parser  *sitter.Parser
	lang    Language
	grammar *sitter.Language
}

// ParseResult contains the parsed AST and metadata.
type ParseResult struct {
	// Tree is the complete tree-sitter parse tree.
	Tree *sitter.Tree
	// Root is the root node of the AST.
	Root *sitter.Node
	// Source is the original source code that was parsed.
	Source []byte
	// FilePath is the path to the source file (empty for in-memory parsing).
	FilePath string
	// Language is the programming language of the source.
	Language Language
	// Grammar is the raw tree-sitter grammar handle used to produce Tree,
	// reused by the paradigm engine to compile entity_queries against the
	// same language without re-resolving it.
	Grammar *sitter.Language
}

// grammarFor resolves the tree-sitter grammar handle for a registry language.
// This is the RPG's single point of grammar registration: adding a language
// means adding one case here, not a new file.
func grammarFor(lang Language) (*sitter.Language, error) {
	switch lang {
	case Go:
		return golang.GetLanguage(), nil
	case TypeScript:
		return tstypescript.GetLanguage(), nil
	case TSX:
		return tstsx.GetLanguage(), nil
	case JavaScript:
		return javascript.GetLanguage(), nil
	case Python:
		return python.GetLanguage(), nil
	case Rust:
		return rust.GetLanguage(), nil
	case Java:
		return java.GetLanguage(), nil
	case CSharp:
		return csharplang.GetLanguage(), nil
	case C:
		return c.GetLanguage(), nil
	case Cpp:
		return cpp.GetLanguage(), nil
	case PHP:
		return php.GetLanguage(), nil
	case Kotlin:
		return kotlin.GetLanguage(), nil
	case Ruby:
		return ruby.GetLanguage(), nil
	case Swift:
		return swift.GetLanguage(), nil
	case Scala:
		return scala.GetLanguage(), nil
	default:
		return nil, &UnsupportedLanguageError{Language: string(lang)}
	}
}

// NewParser creates a parser for the given language.
// Returns an UnsupportedLanguageError if the language is not supported.
func NewParser(lang Language) (*Parser, error) {
	grammar, err := grammarFor(lang)
	if err != nil {
		return nil, err
	}

	p := sitter.NewParser()
	p.SetLanguage(grammar)

	return &Parser{
		parser:  p,
		lang:    lang,
		grammar: grammar,
	}, nil
}

// Parse parses source code and returns the AST.
func (p *Parser) Parse(source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &ParseError{
			Message: err.Error(),
		}
	}

	return &ParseResult{
		Tree:     tree,
		Root:     tree.RootNode(),
		Source:   source,
		Language: p.lang,
		Grammar:  p.Grammar(),
	}, nil
}

// ParseFile parses a file from disk.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}

	result, err := p.Parse(source)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = path
		}
		return nil, err
	}

	result.FilePath = path
	return result, nil
}

// Language returns the language this parser is configured for.
func (p *Parser) Language() Language {
	return p.lang
}

// Grammar returns the raw tree-sitter grammar handle this parser was
// constructed with. Callers that need to compile ad hoc queries against
// the same grammar (the paradigm engine's entity_queries) use this
// instead of reaching into the parser internals.
func (p *Parser) Grammar() *sitter.Language {
	return p.grammar
}

// Close releases parser resources.
// After calling Close, the parser should not be used.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
		p.parser = nil
	}
}

// Close releases the parse tree resources.
func (r *ParseResult) Close() {
	if r.Tree != nil {
		r.Tree.Close()
		r.Tree = nil
		r.Root = nil
	}
}

// HasErrors returns true if the parse tree contains syntax errors.
func (r *ParseResult) HasErrors() bool {
	if r.Root == nil {
		return false
	}
	return r.Root.HasError()
}

// WalkNodes traverses the AST depth-first, calling the visitor function
// for each node. If the visitor returns false, traversal stops.
func (r *ParseResult) WalkNodes(visitor func(*sitter.Node) bool) {
	if r.Root == nil {
		return
	}
	walkNode(r.Root, visitor)
}

// walkNode is a helper for depth-first AST traversal.
func walkNode(node *sitter.Node, visitor func(*sitter.Node) bool) bool {
	if !visitor(node) {
		return false
	}
	for i := uint32(0); i < node.ChildCount(); i++ {
		if !walkNode(node.Child(int(i)), visitor) {
			return false
		}
	}
	return true
}

// FindNodes returns all nodes matching the given predicate.
func (r *ParseResult) FindNodes(predicate func(*sitter.Node) bool) []*sitter.Node {
	var nodes []*sitter.Node
	r.WalkNodes(func(node *sitter.Node) bool {
		if predicate(node) {
			nodes = append(nodes, node)
		}
		return true
	})
	return nodes
}

// FindNodesByType returns all nodes of the specified type.
func (r *ParseResult) FindNodesByType(nodeType string) []*sitter.Node {
	return r.FindNodes(func(node *sitter.Node) bool {
		return node.Type() == nodeType
	})
}

// NodeText returns the source text for a node.
func (r *ParseResult) NodeText(node *sitter.Node) string {
	if node == nil || r.Source == nil {
		return ""
	}
	return node.Content(r.Source)
}

