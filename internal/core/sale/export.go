package sale

import (
	"fmt"
	"strings"
	"time"
)

// CSVHeader is the fixed export header. Column order and the Oui/Non
// literals are a compatibility contract with downstream spreadsheet
// consumers; do not reorder.
const CSVHeader = "Date;Client;Email;Téléphone;Services;Nombre Services;Durée;AXA;Carbone;MCP;Voltalis"

func ouiNon(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}

// ExportCSV renders the records, in the order given (history order, newest
// first), as semicolon-delimited text with a header row.
func ExportCSV(records []Record) string {
	rows := make([]string, 0, len(records)+1)
	rows = append(rows, CSVHeader)

	for _, rec := range records {
		row := []string{
			rec.Date.Format("02/01/2006"),
			rec.Client.FullName(),
			rec.Client.Email,
			rec.Client.Telephone,
			strings.Join(rec.Services.Sold(), " + "),
			fmt.Sprintf("%d", rec.ServicesCount),
			FormatDuration(rec.Duration),
			ouiNon(rec.Services.AXA.Sold),
			ouiNon(rec.Services.Carbone.Sold),
			ouiNon(rec.Services.MCP.Sold),
			ouiNon(rec.Services.Voltalis.Sold),
		}
		rows = append(rows, strings.Join(row, ";"))
	}

	return strings.Join(rows, "\n")
}

func ouiPrix(sold bool, prix string) string {
	if sold {
		return "OUI (" + prix + ")"
	}
	return "Non"
}

// ExportFiche renders a single sale as the plain-text "fiche vente" handed
// to back-office teams.
func ExportFiche(rec Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "FICHE VENTE\n")
	fmt.Fprintf(&b, "====================\n\n")
	fmt.Fprintf(&b, "Date de la vente: %s\n", rec.Date.Format("02/01/2006"))
	fmt.Fprintf(&b, "Heure: %s\n", rec.Date.Format("15:04:05"))
	fmt.Fprintf(&b, "Durée d'appel: %s\n\n", FormatDuration(rec.Duration))

	fmt.Fprintf(&b, "INFORMATIONS CLIENT\n")
	fmt.Fprintf(&b, "-------------------\n")
	fmt.Fprintf(&b, "Nom: %s\n", rec.Client.Nom)
	fmt.Fprintf(&b, "Prénom: %s\n", rec.Client.Prenom)
	fmt.Fprintf(&b, "Adresse: %s\n", rec.Client.Adresse)
	fmt.Fprintf(&b, "Email: %s\n", rec.Client.Email)
	fmt.Fprintf(&b, "Téléphone: %s\n\n", rec.Client.Telephone)

	fmt.Fprintf(&b, "SERVICES SOUSCRITS\n")
	fmt.Fprintf(&b, "------------------\n")
	fmt.Fprintf(&b, "Nombre total: %d\n\n", rec.ServicesCount)
	fmt.Fprintf(&b, "AXA Assistance: %s\n", ouiPrix(rec.Services.AXA.Sold, "6,99€/mois"))
	carbonePrix := "variable"
	if rec.Services.Carbone.Tier != "" {
		carbonePrix = rec.Services.Carbone.Tier + "€/mois"
	}
	fmt.Fprintf(&b, "Compensation Carbone: %s\n", ouiPrix(rec.Services.Carbone.Sold, carbonePrix))
	fmt.Fprintf(&b, "Mon Conseiller Perso: %s\n", ouiPrix(rec.Services.MCP.Sold, "6€ ou 14€/mois"))
	fmt.Fprintf(&b, "Voltalis: %s\n\n", ouiPrix(rec.Services.Voltalis.Sold, "Gratuit"))

	fmt.Fprintf(&b, "RÉCAPITULATIF\n")
	fmt.Fprintf(&b, "-------------\n")
	fmt.Fprintf(&b, "Services payants: %d\n", rec.ServicesCount)
	objectif := "NON ✗"
	if rec.ServicesCount >= 2 {
		objectif = "OUI ✓"
	}
	fmt.Fprintf(&b, "Objectif atteint: %s\n", objectif)
	qualite := rec.Quality
	if qualite == "" {
		qualite = "Non évaluée"
	}
	fmt.Fprintf(&b, "Qualité appel: %s\n", qualite)

	return b.String()
}

// FicheMarkdown renders a sale as markdown for terminal preview.
func FicheMarkdown(rec Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Vente — %s\n\n", rec.Client.FullName())
	fmt.Fprintf(&b, "*%s à %s — durée %s*\n\n",
		rec.Date.Format("02/01/2006"), rec.Date.Format("15:04"), FormatDuration(rec.Duration))

	fmt.Fprintf(&b, "## Client\n\n")
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Nom | %s |\n", rec.Client.Nom)
	fmt.Fprintf(&b, "| Prénom | %s |\n", rec.Client.Prenom)
	fmt.Fprintf(&b, "| Adresse | %s |\n", rec.Client.Adresse)
	fmt.Fprintf(&b, "| Email | %s |\n", rec.Client.Email)
	fmt.Fprintf(&b, "| Téléphone | %s |\n\n", rec.Client.Telephone)

	fmt.Fprintf(&b, "## Services (%d)\n\n", rec.ServicesCount)
	sold := rec.Services.Sold()
	if len(sold) == 0 {
		fmt.Fprintf(&b, "Aucun service payant\n\n")
	} else {
		for _, s := range sold {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "**Qualité appel:** %s\n", rec.Quality)

	return b.String()
}

// CSVFilename is the default file name for a full history export.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("historique_%s.csv", now.Format("2006-01-02"))
}

// FicheFilename is the default file name for a single-sale fiche export.
func FicheFilename(rec Record) string {
	return fmt.Sprintf("vente_%s_%s.txt",
		sanitizeFilename(rec.Client.Nom),
		rec.Date.Format("2006-01-02"),
	)
}

// sanitizeFilename lowercases and replaces anything outside [a-z0-9] so the
// client name is safe in a file name.
func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}
