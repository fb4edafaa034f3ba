package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/storyline/pkg/errors"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		want   int
	}{
		{"json array", FormatJSON, `[{"id": "a", "time": 1, "group": "g"}, {"id": "b", "time": 2}]`, 2},
		{"json envelope", FormatJSON, `{"events": [{"id": "a", "time": 1}]}`, 1},
		{"json empty", FormatJSON, "  ", 0},
		{"yaml list", FormatYAML, "- id: a\n  time: 1\n- id: b\n  time: 2\n", 2},
		{"yaml envelope", FormatYAML, "events:\n  - id: a\n    time: 1\n", 1},
		{"yaml empty", FormatYAML, "", 0},
		{"csv", FormatCSV, "id, time, group\na,1,g\nb,2,h\n", 2},
		{"csv header only", FormatCSV, "id,time\n", 0},
		{"csv empty", FormatCSV, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("Read() = %d records, want %d", len(records), tt.want)
			}
		})
	}
}

func TestReadValues(t *testing.T) {
	yamlRecs, _ := Read(strings.NewReader("- id: a\n  time: 3\n"), FormatYAML)
	if got := yamlRecs[0].Time("time", ""); got != 3 {
		t.Errorf("YAML time = %v, want 3", got)
	}

	csvRecs, _ := Read(strings.NewReader("id, time, group\na, 1.5, g\n"), FormatCSV)
	r := csvRecs[0]
	if r.String("id") != "a" || r.String("group") != "g" {
		t.Errorf("CSV record = %v", r)
	}
	if got := r.Time("time", ""); got != 1.5 {
		t.Errorf("CSV time = %v, want 1.5", got)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"bad json", FormatJSON, `[{"id": }]`, errors.ErrCodeInvalidFormat},
		{"json scalar", FormatJSON, `42`, errors.ErrCodeInvalidFormat},
		{"bad yaml", FormatYAML, "- id: [a\n", errors.ErrCodeInvalidFormat},
		{"yaml scalar", FormatYAML, "hello\n", errors.ErrCodeInvalidFormat},
		{"ragged csv", FormatCSV, "id,time\na,1,extra\n", errors.ErrCodeInvalidFormat},
		{"unknown format", Format("xml"), "<a/>", errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Read() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	if err := os.WriteFile(path, []byte(`[{"id": "a", "time": 1}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("ReadFile() = %d records, want 1", len(records))
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ReadFile(filepath.Join(dir, "events.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad extension error = %v, want INVALID_FORMAT", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("- [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("malformed file error = %v, want INVALID_FORMAT", err)
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.json": FormatJSON,
		"a.YML":  FormatYAML,
		"a.yaml": FormatYAML,
		"a.csv":  FormatCSV,
	}
	for path, want := range tests {
		if got, err := FormatOf(path); err != nil || got != want {
			t.Errorf("FormatOf(%q) = %q, %v, want %q", path, got, err, want)
		}
	}
}
