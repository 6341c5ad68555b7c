package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"curvelab/config"
	"curvelab/curve"
	"curvelab/script"
	"curvelab/theme"
)

func testModel() Model {
	ed := curve.NewEditor(curve.Curve{{At: 0, Pos: 0}, {At: 5000, Pos: 100}, {At: 10000, Pos: 0}}, 30000)
	m := NewModel(ed, theme.New(theme.Default()), config.DefaultConfig(), script.New(), "", nil)
	m.width, m.height = 80, 24
	m.layout()
	return m
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestAnalysisPanelToggles(t *testing.T) {
	m := testModel()

	next, _ := m.Update(keyPress('a'))
	m = next.(Model)
	if !strings.Contains(m.View(), "Position distribution") {
		t.Error("analysis panel not shown after toggle")
	}

	next, _ = m.Update(keyPress('a'))
	m = next.(Model)
	if strings.Contains(m.View(), "Position distribution") {
		t.Error("analysis panel still shown after second toggle")
	}
}

func TestInsertPatternKey(t *testing.T) {
	m := testModel()
	before := len(m.Editor.Curve())

	next, _ := m.Update(keyPress('p'))
	m = next.(Model)

	if got := len(m.Editor.Curve()); got <= before {
		t.Errorf("curve has %d samples after insert, had %d", got, before)
	}
	if !m.Editor.CanUndo() {
		t.Error("inserted pattern is not undoable")
	}
}

func TestModeToggleKey(t *testing.T) {
	m := testModel()

	next, _ := m.Update(keyPress('d'))
	m = next.(Model)
	if m.Editor.Mode() != curve.ModeDraw {
		t.Errorf("mode = %v after toggle, want draw", m.Editor.Mode())
	}
}
