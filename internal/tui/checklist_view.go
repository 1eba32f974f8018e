package tui

import (
	"fmt"
	"strings"

	"github.com/ventecheck/ventecheck/internal/core/checklist"
	"github.com/ventecheck/ventecheck/internal/core/styles"
)

// renderChecklist draws every section with its progress badge and rows. The
// cursor row carries a "›" marker.
func (m Model) renderChecklist() string {
	progress := checklist.Progress(m.state, m.app.Registry)
	byName := make(map[string]checklist.SectionProgress, len(progress))
	for _, p := range progress {
		byName[p.Name] = p
	}

	var b strings.Builder
	lastSection := ""
	for i, it := range m.items {
		if it.section != lastSection {
			if lastSection != "" {
				b.WriteString("\n")
			}
			m.writeSectionTitle(&b, it.section, byName[it.section])
			lastSection = it.section
		}
		b.WriteString(m.renderItem(it, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) writeSectionTitle(b *strings.Builder, name string, p checklist.SectionProgress) {
	sec, _ := m.app.Registry.Section(name)
	badge := styles.BadgeStyle(p.Percent()).Render(fmt.Sprintf("%d/%d", p.Done, p.Total))
	b.WriteString(styles.SectionTitleStyle.Render(sec.Label))
	b.WriteString(" ")
	b.WriteString(badge)
	b.WriteString("\n")
}

func (m Model) renderItem(it item, selected bool) string {
	marker := "  "
	if selected {
		marker = styles.SelectedItemStyle.Render("› ")
	}

	switch it.kind {
	case itemField:
		return marker + m.renderFieldRow(it.id)
	case itemService:
		return marker + m.renderServiceRow(it.id)
	default:
		return marker + m.renderToggleRow(it.id)
	}
}

func (m Model) renderFieldRow(id string) string {
	reg := m.app.Registry
	label := fmt.Sprintf("%-10s", reg.Label(id))
	if reg.IsRequiredClientField(id) {
		label += "*"
	} else {
		label += " "
	}

	ti := m.inputs[id]
	row := label + " " + ti.View()

	value := m.state.Field(id)
	switch {
	case value == "" && reg.IsRequiredClientField(id):
		row += " " + styles.FieldInvalidStyle.Render("requis")
	case value == "":
	case checklist.FieldFormatValid(id, value):
		row += " " + styles.FieldValidStyle.Render("✓")
	default:
		row += " " + styles.FieldInvalidStyle.Render("✗ format invalide")
	}
	return row
}

func (m Model) renderToggleRow(id string) string {
	box := "[ ]"
	if m.state.Toggle(id) {
		box = styles.FieldValidStyle.Render("[x]")
	}
	return box + " " + m.app.Registry.Label(id)
}

func (m Model) renderServiceRow(id string) string {
	svc, _ := m.app.Registry.Service(id)
	status := m.state.Service(id)

	var rendered string
	switch status {
	case checklist.StatusSold:
		rendered = styles.FieldValidStyle.Render(status.Label())
	case checklist.StatusOffered:
		rendered = styles.TextWarningStyle.Render(status.Label())
	default:
		rendered = styles.TextMutedStyle.Render(status.Label())
	}

	row := fmt.Sprintf("%s : %s", svc.Label, rendered)
	if svc.HasTier && status != checklist.StatusNotOffered {
		tier := m.state.OffsetTier
		if tier == "" {
			tier = m.app.Registry.DefaultTier()
		}
		info := m.app.Registry.TierInfo(tier)
		row += styles.TextMutedStyle.Render(fmt.Sprintf("  ‹ %s€/mois › %s", tier, info))
	}
	return row
}

// renderSummary is the validation modal opened before recording a sale. It
// itemizes the four sale checks and, when some fail, the issues to fix.
func (m Model) renderSummary() string {
	r := m.summary

	var b strings.Builder
	b.WriteString(styles.TextPrimaryBoldStyle.Render("Validation de la vente"))
	b.WriteString("\n\n")

	checks := []struct {
		ok    bool
		label string
	}{
		{r.ClientComplete, "Informations client complètes"},
		{r.RequiredAgreements, "Accords obligatoires recueillis"},
		{r.MinPaidServices, fmt.Sprintf("Services payants vendus : %d/%d", r.PaidSold, m.app.Registry.MinPaidServices())},
		{r.Disclosures, "Mentions obligatoires communiquées"},
	}
	for _, c := range checks {
		if c.ok {
			b.WriteString(styles.FieldValidStyle.Render("✓ "))
		} else {
			b.WriteString(styles.FieldInvalidStyle.Render("✗ "))
		}
		b.WriteString(c.label)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if r.Valid {
		b.WriteString(styles.TextSuccessStyle.Render("Vente valide."))
		b.WriteString("\n\n")
		b.WriteString(styles.TextPrimaryBoldStyle.Render("entrée pour enregistrer · échap pour annuler"))
	} else {
		for _, issue := range r.Issues {
			b.WriteString(styles.TextWarningStyle.Render("• " + issue))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styles.TextMutedStyle.Render("échap pour revenir à la checklist"))
	}

	return styles.ModalBorderStyle.Render(b.String())
}
