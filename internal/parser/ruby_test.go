package parser

import (
	"testing"
)

func TestRubyParser(t *testing.T) {
	code := `
def hello(name)
  puts "Hello, #{name}"
end

class Greeter
  def initialize(name)
    @name = name
  end

  def greet
    puts "Hello, #{@name}"
  end
end
`

	p, err := NewParser(Ruby)
	if err != nil {
		t.Fatalf("Failed to create Ruby parser: %v", err)
	}
	defer p.Close()

	result, err := p.Parse([]byte(code))
	if err != nil {
		t.Fatalf("Failed to parse Ruby code: %v", err)
	}
	defer result.Close()

	if result.Language != Ruby {
		t.Errorf("Expected language Ruby, got %s", result.Language)
	}

	if result.Root == nil {
		t.Fatal("Root node is nil")
	}

	if result.Root.Type() != "program" {
		t.Errorf("Expected root type 'program', got %s", result.Root.Type())
	}

	// Check that we can find method nodes
	methodNodes := result.FindNodesByType("method")
	if len(methodNodes) < 1 {
		t.Errorf("Expected at least 1 method node, got %d", len(methodNodes))
	}

	// Check that we can find class nodes
	classNodes := result.FindNodesByType("class")
	if len(classNodes) < 1 {
		t.Errorf("Expected at least 1 class node, got %d", len(classNodes))
	}
}
