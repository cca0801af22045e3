// Package render draws games and statistics for the terminal client.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/numberdle/internal/game"
	"github.com/robalobadob/numberdle/internal/stats"
)

var (
	Green    = lipgloss.Color("#22C55E")
	Yellow   = lipgloss.Color("#EAB308")
	Gray     = lipgloss.Color("#4B5563")
	White    = lipgloss.Color("#FFFFFF")
	DimGray  = lipgloss.Color("#9CA3AF")
	ErrorRed = lipgloss.Color("#EF4444")
	Info     = lipgloss.Color("#3B82F6")
)

var (
	tile       = lipgloss.NewStyle().Bold(true).Foreground(White).Padding(0, 1).MarginRight(1)
	emptyTile  = tile.Foreground(DimGray)
	hintStyle  = lipgloss.NewStyle().Foreground(Info)
	errStyle   = lipgloss.NewStyle().Foreground(ErrorRed).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(DimGray)
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	barStyle   = lipgloss.NewStyle().Background(Green).Foreground(White)
)

func markColor(m game.Mark) lipgloss.Color {
	switch m {
	case game.Green:
		return Green
	case game.Yellow:
		return Yellow
	default:
		return Gray
	}
}

// Row renders one guess as coloured tiles.
func Row(guess string, fb game.Feedback) string {
	cells := make([]string, 0, game.Length)
	for i := 0; i < game.Length && i < len(guess); i++ {
		cells = append(cells, tile.Background(markColor(fb[i])).Render(string(guess[i])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Board renders the history plus placeholder rows for the remaining attempts.
func Board(history []game.GuessRecord) string {
	rows := make([]string, 0, game.MaxAttempts)
	for _, h := range history {
		rows = append(rows, Row(h.Guess, h.Feedback))
	}
	blank := emptyTile.Render("·")
	for i := len(history); i < game.MaxAttempts; i++ {
		rows = append(rows, strings.TrimRight(strings.Repeat(blank, game.Length), " "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Hints renders the clue lines of a turn.
func Hints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	lines := make([]string, len(hints))
	for i, h := range hints {
		lines[i] = hintStyle.Render("• " + h)
	}
	return strings.Join(lines, "\n")
}

// Error renders a rejected guess.
func Error(err error) string { return errStyle.Render(err.Error()) }

// Outcome renders the end-of-game line.
func Outcome(res game.Result) string {
	if res.Won {
		return lipgloss.NewStyle().Foreground(Green).Bold(true).
			Render(fmt.Sprintf("Solved in %d %s!", res.Attempts, plural(res.Attempts, "try", "tries")))
	}
	return errStyle.Render("Out of tries. The number was " + res.Secret + ".")
}

// Summary renders the stats panel with a guess distribution.
func Summary(s stats.Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Statistics") + "\n")
	fmt.Fprintf(&b, "%s %d   %s %.0f%%   %s %d   %s %d\n",
		labelStyle.Render("Played"), s.Played,
		labelStyle.Render("Win %"), s.WinRate*100,
		labelStyle.Render("Streak"), s.CurrentStreak,
		labelStyle.Render("Best"), s.MaxStreak)
	if s.LastSolved > 0 {
		fmt.Fprintf(&b, "Last solved in %d %s\n", s.LastSolved, plural(s.LastSolved, "try", "tries"))
		fmt.Fprintf(&b, "Last 10 average: %.2f\n", s.Last10Average)
	} else {
		b.WriteString("No solves yet\nLast 10 average: --\n")
	}

	peak := 1
	for _, n := range s.Distribution {
		peak = max(peak, n)
	}
	const width = 20
	for i, n := range s.Distribution {
		bar := ""
		if n > 0 {
			bar = barStyle.Render(strings.Repeat(" ", max(1, n*width/peak)))
		}
		fmt.Fprintf(&b, "%d %s %d\n", i+1, bar, n)
	}
	return strings.TrimRight(b.String(), "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
