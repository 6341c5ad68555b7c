package script

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"curvelab/curve"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.funscript")

	s := New()
	s.Metadata.Title = "test clip"
	s.Actions = curve.Curve{{At: 0, Pos: 0}, {At: 1000, Pos: 80}, {At: 2000, Pos: 20}}

	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Actions.Equal(s.Actions) {
		t.Errorf("actions = %v, want %v", got.Actions, s.Actions)
	}
	if got.Metadata.Title != "test clip" {
		t.Errorf("metadata lost: %+v", got.Metadata)
	}
}

func TestSaveNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.funscript")

	s := New()
	s.Actions = curve.Curve{{At: 2000, Pos: 150}, {At: 0, Pos: -5}, {At: 1000, Pos: 50}, {At: 1000, Pos: 60}}
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := curve.Curve{{At: 0, Pos: 0}, {At: 1000, Pos: 60}, {At: 2000, Pos: 100}}
	if !got.Actions.Equal(want) {
		t.Errorf("actions = %v, want normalized %v", got.Actions, want)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name    string
		content string
		wantSub string
	}{
		{"not json", "{nope", "parse"},
		{"empty actions", `{"version":"1.0","actions":[]}`, "no actions"},
		{"non-monotonic", `{"version":"1.0","actions":[{"at":1000,"pos":50},{"at":500,"pos":60}]}`, "before previous"},
		{"out of range", `{"version":"1.0","actions":[{"at":0,"pos":120}]}`, "outside 0-100"},
		{"negative time", `{"version":"1.0","actions":[{"at":-5,"pos":50}]}`, "negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(tt.name+".json", tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("load accepted malformed document")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q missing %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("load of missing file succeeded")
	}
}

func TestWireFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wire.json")

	s := New()
	s.Actions = curve.Curve{{At: 0, Pos: 0}, {At: 500, Pos: 100}}
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw struct {
		Actions []map[string]int `json:"actions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if len(raw.Actions) != 2 {
		t.Fatalf("actions = %v", raw.Actions)
	}
	if raw.Actions[1]["at"] != 500 || raw.Actions[1]["pos"] != 100 {
		t.Errorf("wire keys wrong: %v", raw.Actions[1])
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  first draft ", "first_draft"},
		{"a/b\\c", "a-b-c"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
