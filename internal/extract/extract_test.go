package extract

import (
	"testing"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

func parse(t *testing.T, lang parser.Language, source string) *parser.ParseResult {
	t.Helper()
	p, err := parser.NewParser(lang)
	if err != nil {
		t.Fatalf("NewParser(%s): %v", lang, err)
	}
	defer p.Close()
	res, err := p.Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return res
}

func TestDepsPythonMultipleInheritance(t *testing.T) {
	src := "class A: pass\nclass B: pass\nclass C(A,B): pass\n"
	res := parse(t, parser.Python, src)
	deps := depsPython(res)

	if len(deps.Inherits) != 2 {
		t.Fatalf("expected 2 inherit records, got %d: %+v", len(deps.Inherits), deps.Inherits)
	}
	want := map[string]bool{"A": false, "B": false}
	for _, inh := range deps.Inherits {
		if inh.ChildClass != "C" {
			t.Errorf("expected child class C, got %q", inh.ChildClass)
		}
		if _, ok := want[inh.ParentClass]; !ok {
			t.Errorf("unexpected parent %q", inh.ParentClass)
		}
		want[inh.ParentClass] = true
	}
	for parent, seen := range want {
		if !seen {
			t.Errorf("missing inherit record for parent %q", parent)
		}
	}
}

func TestDepsScalaTraitMixin(t *testing.T) {
	src := "class MyService extends Base with Logging with Serializable {}\n"
	res := parse(t, parser.Scala, src)
	deps := depsScala(res)

	if len(deps.Inherits) != 3 {
		t.Fatalf("expected 3 inherit records, got %d: %+v", len(deps.Inherits), deps.Inherits)
	}
	want := map[string]bool{"Base": false, "Logging": false, "Serializable": false}
	for _, inh := range deps.Inherits {
		if inh.ChildClass != "MyService" {
			t.Errorf("expected child class MyService, got %q", inh.ChildClass)
		}
		if _, ok := want[inh.ParentClass]; !ok {
			t.Errorf("unexpected parent %q", inh.ParentClass)
		}
		want[inh.ParentClass] = true
	}
	for parent, seen := range want {
		if !seen {
			t.Errorf("missing inherit record for parent %q", parent)
		}
	}
}

func TestDepsRustGroupedUse(t *testing.T) {
	src := "use std::collections::{HashMap, HashSet};\n"
	res := parse(t, parser.Rust, src)
	deps := depsRust(res)

	if len(deps.Imports) != 1 {
		t.Fatalf("expected 1 import record, got %d: %+v", len(deps.Imports), deps.Imports)
	}
	imp := deps.Imports[0]
	if imp.Module != "std::collections" {
		t.Errorf("expected module std::collections, got %q", imp.Module)
	}
	want := map[string]bool{"HashMap": false, "HashSet": false}
	for _, s := range imp.Symbols {
		if _, ok := want[s]; !ok {
			t.Errorf("unexpected symbol %q", s)
		}
		want[s] = true
	}
	for sym, seen := range want {
		if !seen {
			t.Errorf("missing symbol %q", sym)
		}
	}
}

func TestDepsTypeScriptJSXCall(t *testing.T) {
	src := "function App(){ return <Button/>; }\n"
	res := parse(t, parser.JavaScript, src)
	deps := depsTypeScript(res)

	var found bool
	for _, c := range deps.Calls {
		if c.Callee == "Button" {
			found = true
			if c.CallerEntity != "App" {
				t.Errorf("expected caller_entity App, got %q", c.CallerEntity)
			}
		}
	}
	if !found {
		t.Fatalf("expected a Button call among %+v", deps.Calls)
	}
}

func TestEntitiesPythonNestedClassAndMethod(t *testing.T) {
	src := "class Animal:\n    def speak(self):\n        self.move()\n    def move(self):\n        pass\n"
	res := parse(t, parser.Python, src)
	entities := entitiesPython(res, "animal.py")

	byID := make(map[string]RawEntity)
	for _, e := range entities {
		byID[e.ID()] = e
	}
	if _, ok := byID["animal.py:Animal"]; !ok {
		t.Errorf("expected class entity Animal, got %+v", entities)
	}
	speak, ok := byID["animal.py:Animal.speak"]
	if !ok {
		t.Fatalf("expected method Animal.speak, got %+v", entities)
	}
	if speak.Kind != KindMethod || speak.ParentClass != "Animal" {
		t.Errorf("expected method kind/parent Animal, got %+v", speak)
	}

	deps := depsPython(res)
	var sawSelfCall bool
	for _, c := range deps.Calls {
		if c.Callee == "move" {
			sawSelfCall = true
			if c.CallerEntity != "Animal.speak" {
				t.Errorf("expected caller Animal.speak, got %q", c.CallerEntity)
			}
		}
	}
	if !sawSelfCall {
		t.Fatalf("expected a move() call among %+v", deps.Calls)
	}
}

// A Method's container is a class/struct/interface/impl/trait/extension/
// object/module - never a function, so a function nested inside another
// function stays Kind=Function even though it has an enclosing named
// construct.
func TestEntitiesPythonFunctionNestedInFunctionStaysFunction(t *testing.T) {
	src := "def outer():\n    def inner():\n        pass\n    return inner\n"
	res := parse(t, parser.Python, src)
	entities := entitiesPython(res, "nested.py")

	byID := make(map[string]RawEntity)
	for _, e := range entities {
		byID[e.ID()] = e
	}
	outer, ok := byID["nested.py:outer"]
	if !ok || outer.Kind != KindFunction {
		t.Fatalf("expected top-level function outer, got %+v", entities)
	}
	inner, ok := byID["nested.py:outer.inner"]
	if !ok {
		t.Fatalf("expected nested entity outer.inner, got %+v", entities)
	}
	if inner.Kind != KindFunction || inner.ParentClass != "" {
		t.Errorf("expected inner to stay Kind=Function with no ParentClass, got %+v", inner)
	}
}

// A method nested inside another method (still directly under the class
// body via an intermediate function) must not regain Method status once a
// function interrupts the chain to the class.
func TestEntitiesPythonMethodNestedFunctionNotMethod(t *testing.T) {
	src := "class Animal:\n    def speak(self):\n        def helper():\n            pass\n        return helper()\n"
	res := parse(t, parser.Python, src)
	entities := entitiesPython(res, "animal2.py")

	byID := make(map[string]RawEntity)
	for _, e := range entities {
		byID[e.ID()] = e
	}
	speak, ok := byID["animal2.py:Animal.speak"]
	if !ok || speak.Kind != KindMethod || speak.ParentClass != "Animal" {
		t.Fatalf("expected method Animal.speak, got %+v", entities)
	}
	helper, ok := byID["animal2.py:Animal.speak.helper"]
	if !ok {
		t.Fatalf("expected nested helper entity, got %+v", entities)
	}
	if helper.Kind != KindFunction || helper.ParentClass != "" {
		t.Errorf("expected helper to stay Kind=Function with no ParentClass, got %+v", helper)
	}
}

func TestEntitiesScalaFunctionNestedInFunctionStaysFunction(t *testing.T) {
	src := "object Outer {\n  def outer(): Unit = {\n    def inner(): Unit = {}\n  }\n}\n"
	res := parse(t, parser.Scala, src)
	entities := entitiesScala(res, "nested.scala")

	byID := make(map[string]RawEntity)
	for _, e := range entities {
		byID[e.ID()] = e
	}
	outer, ok := byID["nested.scala:Outer.outer"]
	if !ok || outer.Kind != KindMethod || outer.ParentClass != "Outer" {
		t.Fatalf("expected method Outer.outer, got %+v", entities)
	}
	inner, ok := byID["nested.scala:Outer.outer.inner"]
	if !ok {
		t.Fatalf("expected nested entity Outer.outer.inner, got %+v", entities)
	}
	if inner.Kind != KindFunction || inner.ParentClass != "" {
		t.Errorf("expected inner to stay Kind=Function with no ParentClass, got %+v", inner)
	}
}

func TestEntitiesSingleLineConstruct(t *testing.T) {
	src := "def f(): pass\n"
	res := parse(t, parser.Python, src)
	entities := entitiesPython(res, "f.py")
	if len(entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(entities))
	}
	e := entities[0]
	if e.LineStart != e.LineEnd {
		t.Errorf("expected single-line construct, got start=%d end=%d", e.LineStart, e.LineEnd)
	}
}

func TestEntitiesEmptyClassBodyStillEmitted(t *testing.T) {
	src := "class A: pass\n"
	res := parse(t, parser.Python, src)
	entities := entitiesPython(res, "a.py")
	if len(entities) != 1 || entities[0].Name != "A" {
		t.Fatalf("expected a single class entity A, got %+v", entities)
	}
}

func TestEntitiesDuplicateIDFirstWins(t *testing.T) {
	src := "def f(): return 1\ndef f(): return 2\n"
	res := parse(t, parser.Python, src)
	entities := entitiesPython(res, "dup.py")
	if len(entities) != 1 {
		t.Fatalf("expected duplicate ids to collapse to 1 entity, got %d: %+v", len(entities), entities)
	}
	if entities[0].LineStart != 1 {
		t.Errorf("expected first occurrence to win (line 1), got line %d", entities[0].LineStart)
	}
}

// A typed .tsx component parses with the tsx grammar: the type annotation
// must not break extraction and the JSX usage still records as a call.
func TestDepsTSXTypedComponent(t *testing.T) {
	src := "function App(props: {label: string}) { return <Button/>; }\n"
	res := parse(t, parser.TSX, src)

	entities := entitiesTypeScript(res, "App.tsx")
	var sawApp bool
	for _, e := range entities {
		if e.Name == "App" && e.Kind == KindFunction {
			sawApp = true
		}
	}
	if !sawApp {
		t.Fatalf("expected App function entity, got %+v", entities)
	}

	deps := depsTypeScript(res)
	var found bool
	for _, c := range deps.Calls {
		if c.Callee == "Button" && c.CallerEntity == "App" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Button call from App, got %+v", deps.Calls)
	}
}
