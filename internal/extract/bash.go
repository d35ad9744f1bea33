package extract

import (
	"regexp"
	"strings"
)

// Bash has no tree-sitter grammar wired in (languages.toml: grammar =
// "none"), so entities and dependencies are recovered with line-oriented
// text scanning instead of an AST walk.

var (
	bashFuncDeclRe = regexp.MustCompile(`^\s*(?:function\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*\(\)\s*\{?`)
	bashFuncKwRe   = regexp.MustCompile(`^\s*function\s+([A-Za-z_][A-Za-z0-9_]*)\s*\{?`)
	bashSourceRe   = regexp.MustCompile(`^\s*(?:source|\.)\s+("([^"]+)"|'([^']+)'|(\S+))`)
	bashCallRe     = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_./-]*)\b`)
)

// entitiesBashText recovers one RawEntity per function declaration line,
// matching either "name() { ... }" or "function name { ... }"; nesting is
// not tracked, so a declaration inside another function is emitted too.
func entitiesBashText(source []byte, relFile string) []RawEntity {
	lines := strings.Split(string(source), "\n")
	var out []RawEntity
	seen := make(map[string]bool)

	for i, line := range lines {
		name := ""
		if m := bashFuncDeclRe.FindStringSubmatch(line); m != nil {
			name = m[1]
		} else if m := bashFuncKwRe.FindStringSubmatch(line); m != nil {
			name = m[1]
		}
		if name == "" {
			continue
		}
		start := i + 1
		end := bashFindFunctionEnd(lines, i)
		e := RawEntity{QualifiedName: name, Name: name, Kind: KindFunction, File: relFile, LineStart: start, LineEnd: end}
		if seen[e.ID()] {
			continue
		}
		seen[e.ID()] = true
		out = append(out, e)
	}
	return out
}

// bashFindFunctionEnd scans forward from a function's opening line for the
// matching closing brace by simple nesting depth, falling back to the
// declaration line if the body is missing or unbalanced.
func bashFindFunctionEnd(lines []string, declLine int) int {
	depth := strings.Count(lines[declLine], "{") - strings.Count(lines[declLine], "}")
	if depth <= 0 {
		return declLine + 1
	}
	for i := declLine + 1; i < len(lines); i++ {
		depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		if depth <= 0 {
			return i + 1
		}
	}
	return len(lines)
}

// depsBashText recovers "source"/"." includes (quoted or unquoted) and bare
// command invocations attributed to the nearest preceding function
// declaration, or "<module>" at top level.
func depsBashText(source []byte) FileDeps {
	lines := strings.Split(string(source), "\n")
	var deps FileDeps
	currentFn := "<module>"
	depth := 0

	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		isDecl := false
		if depth == 0 {
			if m := bashFuncDeclRe.FindStringSubmatch(line); m != nil {
				currentFn, isDecl = m[1], true
			} else if m := bashFuncKwRe.FindStringSubmatch(line); m != nil {
				currentFn, isDecl = m[1], true
			}
		}
		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")
		depth += opens - closes
		if depth < 0 {
			depth = 0
		}
		if depth == 0 && opens <= closes {
			// back at top level once braces balance out again
			if closes > 0 {
				currentFn = "<module>"
			}
		}

		if m := bashSourceRe.FindStringSubmatch(trimmed); m != nil {
			target := m[2]
			if target == "" {
				target = m[3]
			}
			if target == "" {
				target = m[4]
			}
			deps.Imports = append(deps.Imports, Import{Module: target})
			continue
		}

		if isDecl {
			continue // a declaration line is not an invocation
		}
		if m := bashCallRe.FindStringSubmatch(trimmed); m != nil {
			callee := m[1]
			if bashIsKeyword(callee) {
				continue
			}
			deps.Calls = append(deps.Calls, Call{Callee: callee, CallerEntity: currentFn})
		}
	}
	return deps
}

var bashKeywords = map[string]bool{
	"if": true, "then": true, "else": true, "elif": true, "fi": true,
	"for": true, "while": true, "until": true, "do": true, "done": true,
	"case": true, "esac": true, "function": true, "return": true,
	"local": true, "export": true, "readonly": true, "declare": true,
}

func bashIsKeyword(word string) bool {
	return bashKeywords[word]
}
