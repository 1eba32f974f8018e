package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ventecheck/ventecheck/internal/core/checklist"
	"github.com/ventecheck/ventecheck/internal/core/sale"
	"github.com/ventecheck/ventecheck/internal/core/styles"
)

func (m Model) View() string {
	if m.confirm != nil {
		return m.centered(m.confirm.View())
	}
	if m.showSummary {
		return m.centered(m.renderSummary())
	}
	if m.detail != "" {
		return m.detail + "\n" + styles.TextMutedStyle.Render("échap pour fermer")
	}

	var body string
	if m.state.ActiveView == checklist.ViewHistory {
		body = m.renderHistory()
	} else {
		body = m.renderChecklist()
	}

	sections := []string{m.renderHeader(), body, m.renderHelp()}
	if footer := m.toastView.Footer(m.width); footer != "" {
		sections = append(sections, footer)
	}
	return strings.Join(sections, "\n")
}

func (m Model) centered(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHeader() string {
	title := styles.TextPrimaryBoldStyle.Render("VenteCheck")

	tabs := []string{"Checklist", "Historique"}
	active := 0
	if m.state.ActiveView == checklist.ViewHistory {
		active = 1
	}
	for i, t := range tabs {
		if i == active {
			tabs[i] = styles.SelectedItemStyle.Render("[" + t + "]")
		} else {
			tabs[i] = styles.TextMutedStyle.Render(" " + t + " ")
		}
	}

	completion := checklist.Completion(m.state, m.app.Registry)
	badge := styles.BadgeStyle(completion).Render(strconv.Itoa(completion) + "%")

	parts := []string{title, strings.Join(tabs, " "), badge}
	if m.state.CallActive {
		elapsed := m.state.CallDuration(time.Now())
		parts = append(parts, styles.TextErrorStyle.Render("● "+sale.FormatDuration(elapsed)))
	}

	return strings.Join(parts, "  ") + "\n"
}

func (m Model) renderHelp() string {
	var entries []string
	if m.state.ActiveView == checklist.ViewHistory {
		entries = []string{
			"↑/↓ naviguer", "entrée détails", "e fiche", "c dupliquer",
			"d supprimer", "x vider", "ctrl+e CSV", "ctrl+l checklist", "ctrl+c quitter",
		}
	} else {
		entries = []string{
			"↑/↓ naviguer", "espace cocher", "ctrl+t appel", "ctrl+s enregistrer",
			"ctrl+r réinitialiser", "ctrl+h historique", "ctrl+c quitter",
		}
	}
	return styles.TextMutedStyle.Render(strings.Join(entries, " · "))
}
