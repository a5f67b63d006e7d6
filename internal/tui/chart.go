package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

// OverviewChart compares the sum of all deposits with the desired end amount.
type OverviewChart struct {
	deposits  float64
	endAmount float64
}

// SetData replaces the values shown by the chart.
func (c *OverviewChart) SetData(deposits, endAmount float64) {
	c.deposits = deposits
	c.endAmount = endAmount
}

// Empty reports whether there is nothing worth drawing.
func (c *OverviewChart) Empty() bool {
	return c.deposits <= 0 && c.endAmount <= 0
}

// Render draws the chart with its legend into the given width.
func (c *OverviewChart) Render(width, height int) string {
	if c.Empty() || width < 20 || height < 3 {
		return mutedStyle.Render("Keine Daten für die Übersicht")
	}

	legendWidth := 32
	chartWidth := width - legendWidth - 2
	if chartWidth < 9 {
		chartWidth = 9
	}
	barWidth := (chartWidth - 1) / 2

	depositStyle := lipgloss.NewStyle().Foreground(barDepositsColor).Background(barDepositsColor)
	endStyle := lipgloss.NewStyle().Foreground(barEndAmountColor).Background(barEndAmountColor)

	bc := barchart.New(chartWidth, height,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
	)
	bc.Push(barchart.BarData{
		Label:  "",
		Values: []barchart.BarValue{{Name: "Einzahlungen", Value: c.deposits, Style: depositStyle}},
	})
	bc.Push(barchart.BarData{
		Label:  "",
		Values: []barchart.BarValue{{Name: "Endbetrag", Value: c.endAmount, Style: endStyle}},
	})
	bc.Draw()

	legend := []string{
		lipgloss.NewStyle().Foreground(barDepositsColor).Render("■") + " Summe Einzahlungen: " + formatEuro(c.deposits),
		lipgloss.NewStyle().Foreground(barEndAmountColor).Render("■") + " Endbetrag:          " + formatEuro(c.endAmount),
	}
	if c.endAmount > 0 && c.deposits > 0 {
		legend = append(legend, "", labelStyle.Render(fmt.Sprintf("Zinsertrag: %s", formatEuro(c.endAmount-c.deposits))))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, bc.View(), "  ", strings.Join(legend, "\n"))
}

// formatEuro renders an amount with German grouping, e.g. 20.000,00 €.
func formatEuro(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String() + "," + frac + " €"
	if neg {
		out = "-" + out
	}
	return out
}
