package curve

import "testing"

func TestGeneratorOutputIsValid(t *testing.T) {
	g := NewGenerator(42)
	c := g.Generate(5 * 60 * 1000)

	if len(c) < 50 {
		t.Fatalf("only %d samples for five minutes", len(c))
	}
	if err := Validate(c); err != nil {
		t.Fatalf("generated curve invalid: %v", err)
	}
	if c.Duration() < 5*60*1000 {
		t.Errorf("curve ends at %dms, want >= requested duration", c.Duration())
	}
}

func TestGeneratorDeterministicBySeed(t *testing.T) {
	a := NewGenerator(7).Generate(60000)
	b := NewGenerator(7).Generate(60000)
	if !a.Equal(b) {
		t.Error("same seed produced different curves")
	}

	other := NewGenerator(8).Generate(60000)
	if a.Equal(other) {
		t.Error("different seeds produced identical curves")
	}
}

func TestGeneratorVisitsExtremes(t *testing.T) {
	c := NewGenerator(3).Generate(10 * 60 * 1000)
	r := Analyze(c)
	if r.LowExtremes+r.HighExtremes == 0 {
		t.Error("ten minutes of motion never reached a full stroke")
	}
}

func TestGeneratorResumesFromOwnState(t *testing.T) {
	g := NewGenerator(1)
	g.Generate(30000)
	resumeAt := g.lastAt

	// The walk carries on from its struct state, not from a reset.
	second := g.Generate(resumeAt + 30000)
	if second[0].At != resumeAt {
		t.Errorf("second run started at %dms, want %dms", second[0].At, resumeAt)
	}
}
