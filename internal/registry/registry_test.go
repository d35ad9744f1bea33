package registry

import "testing"

func TestDefaultRegistryCoversCanonicalLanguages(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}

	want := []LangID{
		"rust", "python", "typescript", "javascript", "go", "java", "c",
		"cpp", "csharp", "kotlin", "swift", "scala", "ruby", "php", "bash",
	}
	for _, id := range want {
		if _, ok := r.FromName(string(id)); !ok {
			t.Errorf("FromName(%q): not found in default registry", id)
		}
	}
}

func TestFromExtension(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}

	cases := map[string]LangID{
		".go":    "go",
		".py":    "python",
		".rs":    "rust",
		".ts":    "typescript",
		".tsx":   "typescript",
		".jsx":   "javascript",
		".rb":    "ruby",
		".sh":    "bash",
		".kt":    "kotlin",
		".swift": "swift",
		".scala": "scala",
	}
	for ext, want := range cases {
		lang, ok := r.FromExtension(ext)
		if !ok {
			t.Errorf("FromExtension(%q): not found", ext)
			continue
		}
		if lang.ID != want {
			t.Errorf("FromExtension(%q) = %q, want %q", ext, lang.ID, want)
		}
	}

	if _, ok := r.FromExtension(".xyz"); ok {
		t.Errorf("FromExtension(.xyz): expected not-found, got a match")
	}
}

func TestDetectPrimary(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}

	files := []string{"a.go", "b.go", "c.go", "d.py", "README.md"}
	primary, ok := r.DetectPrimary(files)
	if !ok {
		t.Fatalf("DetectPrimary: expected a result")
	}
	if primary != "go" {
		t.Errorf("DetectPrimary = %q, want go", primary)
	}

	counts := r.DetectAll(files)
	if counts["go"] != 3 {
		t.Errorf("DetectAll[go] = %d, want 3", counts["go"])
	}
	if counts["python"] != 1 {
		t.Errorf("DetectAll[python] = %d, want 1", counts["python"])
	}
	if _, ok := counts["markdown"]; ok {
		t.Errorf("DetectAll should not count unrecognized extensions")
	}
}

func TestGrammarForBashIsNone(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}
	grammar, ok := r.GrammarFor("bash")
	if !ok {
		t.Fatalf("GrammarFor(bash): not found")
	}
	if grammar != "none" {
		t.Errorf("GrammarFor(bash) = %q, want none", grammar)
	}
}
