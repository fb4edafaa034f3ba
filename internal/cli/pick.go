package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/storyline/pkg/dataset"
	"github.com/matzehuels/storyline/pkg/pipeline"
	"github.com/matzehuels/storyline/pkg/storyline"
)

// List styles
var (
	listMarkStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// pickCommand creates the interactive entity picker.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		output        string
		noCache       bool
		highlightOnly bool
		flags         chartFlags
	)

	cmd := &cobra.Command{
		Use:   "pick [events]",
		Short: "Choose entities interactively, then render",
		Long: `Choose entities from an event file interactively, then render.

The picker lists every entity with its event count, the groups it visits and
its time span. The chart is rendered with only the chosen entities, or with
every entity and the chosen ones highlighted when --highlight-only is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd.Context(), cmd, &flags)
			if err != nil {
				return err
			}
			return c.runPick(cmd, args[0], opts, output, noCache, highlightOnly)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&highlightOnly, "highlight-only", false, "keep every entity and highlight the chosen ones")
	flags.bindFields(cmd)
	flags.bindLayout(cmd)
	flags.bindGeometry(cmd)
	flags.bindRender(cmd, pipeline.FormatSVG)

	return cmd
}

func (c *CLI) runPick(cmd *cobra.Command, input string, opts pipeline.Options, output string, noCache, highlightOnly bool) error {
	ctx := cmd.Context()
	records, err := loadRecords(ctx, input)
	if err != nil {
		return fmt.Errorf("load events %s: %w", input, err)
	}

	rows, err := pickRows(records, opts)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		printError("No entities found in %s", input)
		return fmt.Errorf("no entities found in %s", input)
	}

	p := tea.NewProgram(NewEntityPickerModel(rows), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(EntityPickerModel)
	if !ok {
		return fmt.Errorf("unexpected picker model %T", finalModel)
	}
	chosen := fm.Chosen()
	if len(chosen) == 0 {
		printDetail("No selection made")
		return nil
	}

	printInfo("Selected %s", pluralize(len(chosen), "entity"))
	opts = applyPick(opts, chosen, highlightOnly)
	return c.renderRecords(ctx, records, input, opts, output, noCache)
}

// pickRows lays out the records that pass the configured filter and
// summarizes their storylines, so the picker offers only entities the chart
// can draw.
func pickRows(records []dataset.Record, opts pipeline.Options) ([]entityRow, error) {
	res, err := pipeline.ComputeLayout(opts.Filter.Apply(records, opts.Fields), opts)
	if err != nil {
		return nil, err
	}
	return entityRows(res), nil
}

// applyPick narrows opts to the chosen entities, or highlights them when
// highlightOnly is set. Chosen entities outside a configured entity filter
// are ignored, and the time filter is kept either way.
func applyPick(opts pipeline.Options, chosen []string, highlightOnly bool) pipeline.Options {
	if allowed := opts.Filter.Entities; len(allowed) > 0 {
		chosen = slices.DeleteFunc(slices.Clone(chosen), func(e string) bool {
			return !slices.Contains(allowed, e)
		})
	}
	if highlightOnly {
		opts.Highlights = chosen
	} else {
		opts.Filter.Entities = chosen
	}
	return opts
}

// =============================================================================
// EntityPickerModel - Interactive entity selection
// =============================================================================

// entityRow summarizes one storyline for the picker.
type entityRow struct {
	Entity string
	Events int
	Groups []string
	Start  float64
	End    float64
}

// entityRows summarizes each storyline of res in storyline order. Groups are
// the distinct non-solo groups the entity visits, in first-visit order.
func entityRows(res storyline.Result) []entityRow {
	rows := make([]entityRow, 0, len(res.Storylines))
	for _, s := range res.Storylines {
		row := entityRow{Entity: s.Key, Events: len(s.Points)}
		if len(s.Points) > 0 {
			row.Start = s.Points[0].Time
			row.End = s.Points[len(s.Points)-1].Time
		}
		for _, p := range s.Points {
			if g := p.Event.Group; g != "" && !slices.Contains(row.Groups, g) {
				row.Groups = append(row.Groups, g)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// EntityPickerModel is the bubbletea model for choosing entities.
type EntityPickerModel struct {
	Rows     []entityRow
	Cursor   int
	Offset   int
	Height   int
	Selected map[int]bool
	Aborted  bool
}

// NewEntityPickerModel creates a picker over rows with nothing selected.
func NewEntityPickerModel(rows []entityRow) EntityPickerModel {
	return EntityPickerModel{
		Rows:     rows,
		Height:   15,
		Selected: make(map[int]bool),
	}
}

// Chosen returns the selected entities in row order, or nil when the picker
// was aborted. Confirming with nothing marked selects the row under the
// cursor.
func (m EntityPickerModel) Chosen() []string {
	if m.Aborted {
		return nil
	}
	var out []string
	for i, r := range m.Rows {
		if m.Selected[i] {
			out = append(out, r.Entity)
		}
	}
	return out
}

func (m EntityPickerModel) Init() tea.Cmd {
	return nil
}

func (m EntityPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			m.toggle(m.Cursor)
		case "a":
			all := len(m.Selected) == len(m.Rows)
			m.Selected = make(map[int]bool)
			if !all {
				for i := range m.Rows {
					m.Selected[i] = true
				}
			}
		case "enter":
			if len(m.Selected) == 0 && len(m.Rows) > 0 {
				m.Selected = map[int]bool{m.Cursor: true}
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// toggle flips row i. Selected is copied so earlier model values keep their
// own selection.
func (m *EntityPickerModel) toggle(i int) {
	next := make(map[int]bool, len(m.Selected)+1)
	for k := range m.Selected {
		next[k] = true
	}
	if next[i] {
		delete(next, i)
	} else {
		next[i] = true
	}
	m.Selected = next
}

func (m EntityPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Entities"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.Selected[i] {
			mark = "[" + iconSuccess + "]"
		}

		groups := strings.Join(r.Groups, ", ")
		if groups == "" {
			groups = "—"
		}
		span := formatNum(r.Start)
		if r.End != r.Start {
			span += "–" + formatNum(r.End)
		}
		rows = append(rows, []string{cursor + mark, r.Entity, fmt.Sprint(r.Events), span, groups})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Entity", "Events", "Span", "Groups").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Foreground(colorGray)
			}
			if m.Selected[idx] && col < 2 {
				base = listMarkStyle
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d selected", m.Cursor+1, len(m.Rows), len(m.Selected))))

	return b.String()
}

var _ tea.Model = EntityPickerModel{}
