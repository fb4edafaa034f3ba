package cli

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/storyline/pkg/dataset"
	"github.com/matzehuels/storyline/pkg/pipeline"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m EntityPickerModel, keys ...string) (EntityPickerModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(EntityPickerModel)
	}
	return m, cmd
}

func pickerRows() []entityRow {
	return []entityRow{
		{Entity: "alice", Events: 2, Groups: []string{"lab", "field"}, Start: 1, End: 2},
		{Entity: "bob", Events: 2, Groups: []string{"lab"}, Start: 1, End: 2},
		{Entity: "carol", Events: 1, Start: 3, End: 3},
	}
}

func TestEntityRows(t *testing.T) {
	rows := entityRows(testLayout(t))
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for _, r := range rows {
		switch r.Entity {
		case "alice":
			if r.Events != 2 || !slices.Equal(r.Groups, []string{"lab", "field"}) || r.Start != 1 || r.End != 2 {
				t.Errorf("alice row = %+v", r)
			}
		case "bob":
			if r.Events != 2 || !slices.Equal(r.Groups, []string{"lab"}) {
				t.Errorf("bob row = %+v", r)
			}
		default:
			t.Errorf("unexpected row %+v", r)
		}
	}
}

func TestPickRowsHonorsFilter(t *testing.T) {
	records := []dataset.Record{
		{"id": "alice", "time": 1, "group": "lab"},
		{"id": "bob", "time": 1, "group": "lab"},
		{"id": "carol", "time": 2, "group": "field"},
		{"id": "dave", "time": 3, "group": "field"},
	}

	tests := []struct {
		name   string
		filter dataset.Filter
		want   []string
	}{
		{"no filter", dataset.Filter{}, []string{"alice", "bob", "carol", "dave"}},
		{"entities", dataset.Filter{Entities: []string{"alice", "carol"}}, []string{"alice", "carol"}},
		{"times", dataset.Filter{Times: []float64{1}}, []string{"alice", "bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := pickRows(records, pipeline.Options{Filter: tt.filter})
			if err != nil {
				t.Fatalf("pickRows: %v", err)
			}
			var got []string
			for _, r := range rows {
				got = append(got, r.Entity)
			}
			slices.Sort(got)
			if !slices.Equal(got, tt.want) {
				t.Errorf("entities = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyPick(t *testing.T) {
	base := pipeline.Options{Filter: dataset.Filter{Entities: []string{"alice", "bob"}, Times: []float64{1}}}
	chosen := []string{"alice"}

	t.Run("filter", func(t *testing.T) {
		got := applyPick(base, chosen, false)
		if !slices.Equal(got.Filter.Entities, chosen) || len(got.Highlights) != 0 {
			t.Errorf("entities = %v, highlights = %v", got.Filter.Entities, got.Highlights)
		}
		if !slices.Equal(got.Filter.Times, []float64{1}) {
			t.Errorf("time filter dropped: %v", got.Filter.Times)
		}
	})
	t.Run("outside entity filter", func(t *testing.T) {
		got := applyPick(base, []string{"alice", "carol"}, false)
		if !slices.Equal(got.Filter.Entities, []string{"alice"}) {
			t.Errorf("entities = %v, want [alice]", got.Filter.Entities)
		}
	})
	t.Run("highlight only", func(t *testing.T) {
		got := applyPick(base, chosen, true)
		if !slices.Equal(got.Highlights, chosen) {
			t.Errorf("highlights = %v, want %v", got.Highlights, chosen)
		}
		if !slices.Equal(got.Filter.Entities, []string{"alice", "bob"}) {
			t.Errorf("entity filter changed: %v", got.Filter.Entities)
		}
	})
}

func TestEntityPicker(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		want    []string
		aborted bool
	}{
		{"enter picks cursor", []string{"down", "enter"}, []string{"bob"}, false},
		{"space toggles", []string{" ", "down", "down", "x", "enter"}, []string{"alice", "carol"}, false},
		{"toggle twice clears", []string{" ", " ", "down", "enter"}, []string{"bob"}, false},
		{"select all", []string{"a", "enter"}, []string{"alice", "bob", "carol"}, false},
		{"all twice clears", []string{"a", "a", "enter"}, []string{"alice"}, false},
		{"cursor stays in range", []string{"up", "down", "down", "down", "down", "enter"}, []string{"carol"}, false},
		{"quit", []string{" ", "q"}, nil, true},
		{"escape", []string{"esc"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := press(NewEntityPickerModel(pickerRows()), tt.keys...)
			if cmd == nil {
				t.Fatal("final key should quit")
			}
			if m.Aborted != tt.aborted {
				t.Errorf("Aborted = %v, want %v", m.Aborted, tt.aborted)
			}
			if got := m.Chosen(); !slices.Equal(got, tt.want) {
				t.Errorf("Chosen() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntityPickerScroll(t *testing.T) {
	rows := make([]entityRow, 10)
	for i := range rows {
		rows[i] = entityRow{Entity: string(rune('a' + i))}
	}
	m := NewEntityPickerModel(rows)
	next, _ := m.Update(tea.WindowSizeMsg{Height: 8})
	m = next.(EntityPickerModel)
	if m.Height != 5 {
		t.Fatalf("Height = %d, want 5", m.Height)
	}

	m, _ = press(m, "j", "j", "j", "j", "j", "j")
	if m.Cursor != 6 || m.Offset != 2 {
		t.Errorf("Cursor, Offset = %d, %d, want 6, 2", m.Cursor, m.Offset)
	}
	m, _ = press(m, "k", "k", "k", "k", "k")
	if m.Cursor != 1 || m.Offset != 1 {
		t.Errorf("Cursor, Offset = %d, %d, want 1, 1", m.Cursor, m.Offset)
	}
}

func TestEntityPickerView(t *testing.T) {
	m, _ := press(NewEntityPickerModel(pickerRows()), " ")
	view := m.View()
	for _, want := range []string{"Select Entities", "alice", "lab, field", "1–2", "[1/3] 1 selected"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}
