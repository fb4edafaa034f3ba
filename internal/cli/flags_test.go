package cli

import (
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/storyline/pkg/pipeline"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "svg", []string{"svg"}},
		{"multiple", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and blanks", " alice , ,bob,", []string{"alice", "bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseList(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func newFlagCommand(f *chartFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	f.bindFields(cmd)
	f.bindLayout(cmd)
	f.bindGeometry(cmd)
	f.bindRender(cmd, pipeline.FormatSVG)
	f.bindGraph(cmd)
	return cmd
}

func TestChartFlagsApply(t *testing.T) {
	var f chartFlags
	cmd := newFlagCommand(&f)
	err := cmd.ParseFlags([]string{
		"--group", "place",
		"--entities", "alice,bob",
		"--band-gap", "2.5",
		"--recurring", "split",
		"--continuous",
		"--ticks", "1,2,3",
		"-f", "svg,json",
		"--highlight", "carol",
		"--min-shared", "2",
	})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	opts := pipeline.Options{Width: 400, Title: "from file"}
	f.apply(cmd, &opts)

	if opts.Fields.Group != "place" {
		t.Errorf("Fields.Group = %q, want place", opts.Fields.Group)
	}
	if !slices.Equal(opts.Filter.Entities, []string{"alice", "bob"}) {
		t.Errorf("Filter.Entities = %v", opts.Filter.Entities)
	}
	if opts.BandGap != 2.5 || opts.Recurring != "split" || !opts.Continuous {
		t.Errorf("layout options not applied: %+v", opts)
	}
	if !slices.Equal(opts.Ticks, []float64{1, 2, 3}) {
		t.Errorf("Ticks = %v", opts.Ticks)
	}
	if !slices.Equal(opts.Formats, []string{"svg", "json"}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if !slices.Equal(opts.Highlights, []string{"carol"}) || opts.MinShared != 2 {
		t.Errorf("render options not applied: %+v", opts)
	}

	// Unset flags keep the settings file values.
	if opts.Width != 400 {
		t.Errorf("Width = %v, want 400 from settings", opts.Width)
	}
	if opts.Title != "from file" {
		t.Errorf("Title = %q, want settings value", opts.Title)
	}
	if opts.Fields.Time != "" {
		t.Errorf("Fields.Time = %q, want unset", opts.Fields.Time)
	}
}

func TestChartFlagsApplyNothingSet(t *testing.T) {
	var f chartFlags
	cmd := newFlagCommand(&f)
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	var opts pipeline.Options
	f.apply(cmd, &opts)
	if opts.Formats != nil || opts.BandGap != 0 || opts.Width != 0 {
		t.Errorf("apply changed options without flags: %+v", opts)
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		name       string
		viz        string
		toComplete string
		want       []string
	}{
		{"storyline", pipeline.VizTypeStoryline, "", []string{"json", "pdf", "png", "svg"}},
		{"nodelink", pipeline.VizTypeNodelink, "", []string{"dot", "pdf", "png", "svg"}},
		{"skips listed", pipeline.VizTypeStoryline, "svg,png,", []string{"svg,png,json", "svg,png,pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dir := completeFormats(tt.viz)(nil, nil, tt.toComplete)
			if !slices.Equal(got, tt.want) {
				t.Errorf("completions = %v, want %v", got, tt.want)
			}
			if dir&cobra.ShellCompDirectiveNoFileComp == 0 {
				t.Error("format completion offers files")
			}
		})
	}
}
