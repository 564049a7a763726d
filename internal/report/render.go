package report

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// Renderer prints tables to a terminal
type Renderer struct {
	w io.Writer
}

// NewRenderer writes to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render prints every table as a boxed grid titled with the provider title
func (r *Renderer) Render(tables []Table) error {
	for _, t := range tables {
		out, err := Sprint(t)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(r.w, out); err != nil {
			return fmt.Errorf("report: write table: %w", err)
		}
	}
	return nil
}

// Sprint renders one table to a string
func Sprint(t Table) (string, error) {
	grid, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(pterm.TableData(colorize(t.Data()))).
		Srender()
	if err != nil {
		return "", fmt.Errorf("report: render %s: %w", t.Provider, err)
	}

	return pterm.DefaultBox.WithTitle(t.Title).Sprint(grid), nil
}

func colorize(data [][]string) [][]string {
	out := make([][]string, len(data))
	for i, row := range data {
		out[i] = append([]string(nil), row...)
		if i == 0 {
			continue
		}
		last := len(row) - 1
		switch row[last] {
		case Unavailable:
			out[i][last] = pterm.Red(row[last])
		case NoAverage:
			out[i][last] = pterm.Yellow(row[last])
		}
	}
	return out
}
