package sale

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportRecord() Record {
	return Record{
		ID:   "0b7e0c2a-2f5a-4dc8-9a17-52f6e1c3a001",
		Date: time.Date(2026, 3, 12, 14, 30, 45, 0, time.UTC),
		Client: Client{
			Nom:       "Dupont",
			Prenom:    "Jean",
			Adresse:   "12 rue de la Paix, 75002 Paris",
			Email:     "jean.dupont@exemple.fr",
			Telephone: "0612345678",
		},
		Services: Services{
			AXA:     ServiceSale{Offered: true, Sold: true},
			Carbone: ServiceSale{Offered: true, Sold: true, Tier: "4.99"},
		},
		Duration:      754,
		ServicesCount: 2,
		Quality:       QualityExcellent,
	}
}

func TestExportCSV(t *testing.T) {
	out := ExportCSV([]Record{exportRecord()})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, CSVHeader, lines[0])
	assert.Equal(t,
		"12/03/2026;Jean Dupont;jean.dupont@exemple.fr;0612345678;AXA + Offset 4.99€;2;12:34;Oui;Oui;Non;Non",
		lines[1])
}

func TestExportCSV_Empty(t *testing.T) {
	assert.Equal(t, CSVHeader, ExportCSV(nil))
}

func TestExportFiche(t *testing.T) {
	out := ExportFiche(exportRecord())

	assert.Contains(t, out, "FICHE VENTE")
	assert.Contains(t, out, "Date de la vente: 12/03/2026")
	assert.Contains(t, out, "Durée d'appel: 12:34")
	assert.Contains(t, out, "Nom: Dupont")
	assert.Contains(t, out, "AXA Assistance: OUI (6,99€/mois)")
	assert.Contains(t, out, "Compensation Carbone: OUI (4.99€/mois)")
	assert.Contains(t, out, "Mon Conseiller Perso: Non")
	assert.Contains(t, out, "Objectif atteint: OUI ✓")
	assert.Contains(t, out, "Qualité appel: Excellent")
}

func TestExportFiche_ObjectiveMissed(t *testing.T) {
	rec := exportRecord()
	rec.ServicesCount = 1
	rec.Quality = ""

	out := ExportFiche(rec)
	assert.Contains(t, out, "Objectif atteint: NON ✗")
	assert.Contains(t, out, "Qualité appel: Non évaluée")
}

func TestFicheMarkdown(t *testing.T) {
	out := FicheMarkdown(exportRecord())

	assert.Contains(t, out, "# Vente — Jean Dupont")
	assert.Contains(t, out, "| Email | jean.dupont@exemple.fr |")
	assert.Contains(t, out, "- Offset 4.99€")
	assert.Contains(t, out, "**Qualité appel:** Excellent")
}

func TestExportFilenames(t *testing.T) {
	assert.Equal(t, "historique_2026-03-12.csv",
		CSVFilename(time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)))

	rec := exportRecord()
	assert.Equal(t, "vente_dupont_2026-03-12.txt", FicheFilename(rec))

	rec.Client.Nom = "D'Août 3"
	assert.Equal(t, "vente_d-ao-t-3_2026-03-12.txt", FicheFilename(rec))
}
