package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bingocards/pkg/alphabet"
	"github.com/matzehuels/bingocards/pkg/draw"
	"github.com/matzehuels/bingocards/pkg/ticket"
)

// gridWidth is the number of symbols per row in the draw board.
const gridWidth = 6

var drawLastStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorOrange).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorOrange).
	Padding(1, 4)

var drawPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1)

var (
	drawHitStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
	drawMissStyle = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) drawCommand() *cobra.Command {
	var seed uint64
	var batch bool

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Run the caller's draw pool",
		Long: `Draw letters one at a time for a game in progress.

Keys: space or enter draws, r reshuffles and starts over, q quits.
With --batch the whole draw order is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = ticket.RandomSeed()
			}
			m := newDrawModel(alphabet.Greek(), seed)
			loggerFromContext(cmd.Context()).Debug("draw session", "seed", seed)

			if batch {
				for i, s := range drawAll(m.pool) {
					fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", i+1, s.Glyph)
				}
				return nil
			}

			_, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for the draw order (0 picks one)")
	cmd.Flags().BoolVar(&batch, "batch", false, "print the full draw order and exit")
	return cmd
}

// drawAll draws every remaining symbol of p in order.
func drawAll(p draw.Pool) []alphabet.Symbol {
	var out []alphabet.Symbol
	for {
		next, s, ok := draw.Draw(p)
		if !ok {
			return out
		}
		out = append(out, s)
		p = next
	}
}

// =============================================================================
// drawModel - bubbletea model
// =============================================================================

type drawModel struct {
	alphabet *alphabet.Alphabet
	rng      ticket.Rand
	pool     draw.Pool
}

func newDrawModel(a *alphabet.Alphabet, seed uint64) drawModel {
	rng := ticket.NewRand(seed)
	return drawModel{alphabet: a, rng: rng, pool: draw.New(a, rng)}
}

func (m drawModel) Init() tea.Cmd { return nil }

func (m drawModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "enter":
		m.pool, _, _ = draw.Draw(m.pool)
	case "r":
		m.pool = draw.Reset(m.alphabet, m.rng)
	}
	return m, nil
}

func (m drawModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Bingo draw"))
	b.WriteString("\n\n")

	last := "–"
	if s, ok := m.pool.Last(); ok {
		last = s.Glyph
	}
	b.WriteString(drawLastStyle.Render(last))
	b.WriteString("\n")

	status := fmt.Sprintf("%d of %d left", m.pool.Remaining(), m.alphabet.Len())
	if m.pool.Exhausted() {
		status = "all letters drawn"
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		drawPanel.Render(m.board(alphabet.CaseUpper)),
		" ",
		drawPanel.Render(m.board(alphabet.CaseLower)),
	))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("space/enter draw · r reset · q quit"))
	b.WriteString("\n")
	return b.String()
}

// board renders the symbols of one case in rows of gridWidth, drawn
// symbols highlighted.
func (m drawModel) board(c alphabet.Case) string {
	symbols := m.alphabet.ByCase(c)
	var rows []string
	for i := 0; i < len(symbols); i += gridWidth {
		var cells []string
		for _, s := range symbols[i:min(i+gridWidth, len(symbols))] {
			style := drawMissStyle
			if m.pool.IsDrawn(s) {
				style = drawHitStyle
			}
			cells = append(cells, style.Render(s.Glyph))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}
