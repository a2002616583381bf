package utils

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"campaign", "campaign", 0},
		{"solar", "polar", 1},
	}
	for _, tt := range tests {
		if got := Levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("Launch Day", "launch day"); got != 1.0 {
		t.Errorf("case and whitespace should not matter, got %v", got)
	}
	if got := Similarity("abc", "xyz"); got != 0 {
		t.Errorf("disjoint strings should score 0, got %v", got)
	}
	mid := Similarity("solar saver", "solar sails")
	if mid <= 0 || mid >= 1 {
		t.Errorf("partial overlap should land strictly between 0 and 1, got %v", mid)
	}
}

func TestCleanJSON(t *testing.T) {
	raw := "```json\n{\"a\": 1}\n```"
	if got := CleanJSON(raw); got != `{"a": 1}` {
		t.Errorf("CleanJSON = %q", got)
	}
	plain := `{"b": 2}`
	if got := CleanJSON(plain); got != plain {
		t.Errorf("plain JSON should pass through, got %q", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Launch Day!", "Launch_Day"},
		{"a/b\\c:d", "a_b_c_d"},
		{"__edgy__", "edgy"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLimitStr(t *testing.T) {
	if got := LimitStr("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := LimitStr("a long string", 6); got != "a long..." {
		t.Errorf("got %q", got)
	}
}

func TestChunkTextRespectsLimit(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta. ", 40)
	chunks := ChunkText(text, 100)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > 100 {
			t.Errorf("chunk %d has %d runes, over the limit", i, n)
		}
	}
}

func TestChunkTextPrefersParagraphs(t *testing.T) {
	text := "first paragraph\n\nsecond paragraph\n\nthird paragraph"
	chunks := ChunkText(text, 35)
	for _, c := range chunks {
		if strings.Contains(c, "\n\n") && len([]rune(c)) > 35 {
			t.Errorf("paragraph boundary not respected in %q", c)
		}
	}
	joined := strings.Join(chunks, " ")
	for _, want := range []string{"first paragraph", "second paragraph", "third paragraph"} {
		if !strings.Contains(joined, want) {
			t.Errorf("chunking lost %q", want)
		}
	}
}

func TestChunkTextShortInput(t *testing.T) {
	got := ChunkText("tiny", 100)
	if len(got) != 1 || got[0] != "tiny" {
		t.Fatalf("got %v", got)
	}
	if got := ChunkText("   ", 100); got != nil {
		t.Fatalf("whitespace-only input should chunk to nil, got %v", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	path := filepath.Join(t.TempDir(), "nested", "payload.json")
	if Exists(path) {
		t.Fatal("file should not exist yet")
	}

	want := payload{Name: "launch", Count: 3}
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !Exists(path) {
		t.Fatal("file should exist after save")
	}

	got, err := Load[payload](path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load[map[string]string](filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestDiffWords(t *testing.T) {
	deltas := DiffWords("bold green future", "bold solar future")
	var removed, added []string
	for _, d := range deltas {
		switch d.Op {
		case WordRemoved:
			removed = append(removed, d.Text)
		case WordAdded:
			added = append(added, d.Text)
		}
	}
	if len(removed) != 1 || removed[0] != "green" {
		t.Errorf("removed = %v", removed)
	}
	if len(added) != 1 || added[0] != "solar" {
		t.Errorf("added = %v", added)
	}
}
