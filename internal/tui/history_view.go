package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/ventecheck/ventecheck/internal/core/sale"
	"github.com/ventecheck/ventecheck/internal/core/styles"
)

// renderHistory draws the stats header and the committed sales, newest
// first, with the selected row highlighted.
func (m Model) renderHistory() string {
	var b strings.Builder
	b.WriteString(m.renderStats())
	b.WriteString("\n")

	if len(m.records) == 0 {
		b.WriteString(styles.TextMutedStyle.Render("Aucune vente enregistrée."))
		b.WriteString("\n")
		return b.String()
	}

	for i, rec := range m.records {
		marker := "  "
		row := m.renderRecordRow(rec)
		if i == m.histCursor {
			marker = styles.SelectedItemStyle.Render("› ")
			row = styles.SelectedItemStyle.Render(row)
		}
		b.WriteString(marker)
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRecordRow(rec sale.Record) string {
	services := strings.Join(rec.Services.Sold(), ", ")
	if services == "" {
		services = "aucun service"
	}
	return fmt.Sprintf("%s  %-24s %-32s %6s  %s",
		rec.Date.Format("02/01/2006 15:04"),
		rec.Client.FullName(),
		services,
		sale.FormatDuration(rec.Duration),
		rec.Quality,
	)
}

// renderStats summarizes the history: sale count, per-service totals, and
// average call duration.
func (m Model) renderStats() string {
	if len(m.records) == 0 {
		return styles.SectionTitleStyle.Render("Historique des ventes")
	}

	var axa, carbone, mcp, voltalis, totalDur int
	for _, rec := range m.records {
		if rec.Services.AXA.Sold {
			axa++
		}
		if rec.Services.Carbone.Sold {
			carbone++
		}
		if rec.Services.MCP.Sold {
			mcp++
		}
		if rec.Services.Voltalis.Sold {
			voltalis++
		}
		totalDur += rec.Duration
	}
	avg := totalDur / len(m.records)

	title := styles.SectionTitleStyle.Render(fmt.Sprintf("Historique des ventes (%d)", len(m.records)))
	stats := styles.TextMutedStyle.Render(fmt.Sprintf(
		"AXA %d · Carbone %d · MCP %d · Voltalis %d · durée moyenne %s",
		axa, carbone, mcp, voltalis, sale.FormatDuration(avg),
	))
	return title + "\n" + stats
}

// renderDetail renders a sale's fiche as styled markdown. Falls back to the
// plain-text fiche when the renderer is unavailable.
func (m Model) renderDetail(rec sale.Record) string {
	width := m.width - 4
	if width <= 0 || width > 80 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.log.Warn().Err(err).Msg("glamour renderer init failed")
		return sale.ExportFiche(rec)
	}

	out, err := r.Render(sale.FicheMarkdown(rec))
	if err != nil {
		m.log.Warn().Err(err).Msg("fiche render failed")
		return sale.ExportFiche(rec)
	}
	return out
}
