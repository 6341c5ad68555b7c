package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLookupEndpoints(t *testing.T) {
	p := Default()
	if got := p.Lookup(0); got != p.Colors[0] {
		t.Errorf("Lookup(0) = %v", got)
	}
	if got := p.Lookup(1); got != p.Colors[len(p.Colors)-1] {
		t.Errorf("Lookup(1) = %v", got)
	}
	// Out of range clamps
	if got := p.Lookup(-0.5); got != p.Colors[0] {
		t.Errorf("Lookup(-0.5) = %v", got)
	}
	if got := p.Lookup(2); got != p.Colors[len(p.Colors)-1] {
		t.Errorf("Lookup(2) = %v", got)
	}
}

func TestLookupInterpolates(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {100, 200, 50}}}
	got := p.Lookup(0.5)
	want := RGB{50, 100, 25}
	if got != want {
		t.Errorf("Lookup(0.5) = %v, want %v", got, want)
	}
}

func TestLoadGPL(t *testing.T) {
	content := `GIMP Palette
Name: test
Columns: 3
# comment
255 0 0 red
0 255 0 green
0 0 255 blue
`
	path := filepath.Join(t.TempDir(), "test.gpl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadGPL(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "test" {
		t.Errorf("name = %q", p.Name)
	}
	if len(p.Colors) != 3 || p.Colors[0] != (RGB{255, 0, 0}) {
		t.Errorf("colors = %v", p.Colors)
	}
}

func TestLoadGPLOrDefaultFallsBack(t *testing.T) {
	p := LoadGPLOrDefault("/does/not/exist.gpl")
	if p.Name != Default().Name {
		t.Errorf("fallback palette = %q", p.Name)
	}
	if LoadGPLOrDefault("").Name != Default().Name {
		t.Error("empty path should use the default palette")
	}
}
