// Package registry holds the static checklist configuration: sections and
// their item totals, required client fields, required agreements, mandatory
// disclosures, paid services, and the minimum paid-service threshold.
//
// The registry is read-only after construction. Lookups for unknown
// identifiers return an explicit "absent" result instead of failing so that
// optional or legacy identifiers never break the callers.
package registry

import (
	"github.com/bmatcuk/doublestar/v4"
)

// Section names used throughout the checklist.
const (
	SectionClient   = "client"
	SectionAccords  = "accords"
	SectionMentions = "mentions"
	SectionSMS      = "sms"
	SectionEtapes   = "etapes"
)

// Client field identifiers.
const (
	FieldNom       = "client-nom"
	FieldPrenom    = "client-prenom"
	FieldAdresse   = "client-adresse"
	FieldEmail     = "client-email"
	FieldTelephone = "client-telephone"
	FieldPDL       = "client-pdl"
	FieldPCE       = "client-pce"
	FieldIBAN      = "client-iban"
)

// Toggle identifiers for agreements and disclosures.
const (
	ToggleRGPD         = "accord-rgpd"
	ToggleReseau       = "accord-reseau"
	ToggleVoltalis     = "accord-voltalis"
	ToggleMCP          = "accord-mcp"
	ToggleFrais        = "mention-frais"
	ToggleRetractation = "mention-retractation"
)

// Service identifiers. AXA and Offset are status-driven (not offered,
// offered, sold); MCP is a legacy paid checkbox; Voltalis is free.
const (
	ServiceAXA      = "axa"
	ServiceOffset   = "offset"
	ServiceMCP      = "mcp"
	ServiceVoltalis = "voltalis"
)

// Section describes one checklist section.
type Section struct {
	Name    string
	Label   string
	Total   int      // item count used for progress percentages
	Toggles []string // checkable items belonging to this section (non-client)
}

// Service describes a sellable add-on service.
type Service struct {
	ID       string
	Label    string
	Paid     bool   // counts toward the paid-service minimum when sold
	Statuses bool   // driven by a not-offered/offered/sold selector
	HasTier  bool   // carries a monthly price tier (Offset only)
	Toggle   string // backing toggle id for legacy checkbox services
}

// Tier is a selectable monthly amount for the Offset service.
type Tier struct {
	Amount string // monthly price in euros, e.g. "2.99"
	Info   string // CO2 tonnage hint shown next to the selector
}

// Registry is the immutable checklist configuration.
type Registry struct {
	sections        []Section
	services        []Service
	clientFields    []string
	requiredClient  []string
	requiredToggles []string
	disclosures     []string
	tiers           []Tier
	sectionPatterns map[string]string // glob pattern -> section name
	minPaid         int
	capacity        int
}

// Option customizes a Registry built by New.
type Option func(*Registry)

// WithMinPaidServices overrides the minimum count of paid services that must
// be sold before a sale validates.
func WithMinPaidServices(n int) Option {
	return func(r *Registry) { r.minPaid = n }
}

// WithHistoryCapacity overrides the sales history capacity.
func WithHistoryCapacity(n int) Option {
	return func(r *Registry) { r.capacity = n }
}

// WithSectionPattern adds a glob pattern mapping toggle identifiers to a
// section, on top of the built-in patterns.
func WithSectionPattern(pattern, section string) Option {
	return func(r *Registry) { r.sectionPatterns[pattern] = section }
}

// New builds the default registry. Options apply configured overrides.
func New(opts ...Option) *Registry {
	r := &Registry{
		sections: []Section{
			{Name: SectionClient, Label: "Informations Client", Total: 8},
			{
				Name:  SectionAccords,
				Label: "Accords & Services",
				Total: 6,
				Toggles: []string{
					ToggleRGPD, ToggleReseau, ToggleVoltalis, ToggleMCP,
				},
			},
			{
				Name:  SectionMentions,
				Label: "Mentions Obligatoires",
				Total: 5,
				Toggles: []string{
					ToggleFrais, ToggleRetractation,
					"mention-prix", "mention-duree", "mention-enregistrement",
				},
			},
			{
				Name:  SectionSMS,
				Label: "SMS & Confirmation",
				Total: 3,
				Toggles: []string{
					"sms-recap", "sms-lien", "sms-confirmation",
				},
			},
			{
				Name:  SectionEtapes,
				Label: "Étapes de l'Appel",
				Total: 7,
				Toggles: []string{
					"etape-accueil", "etape-decouverte", "etape-proposition",
					"etape-objections", "etape-recap", "etape-validation",
					"etape-conclusion",
				},
			},
		},
		services: []Service{
			{ID: ServiceAXA, Label: "AXA Assistance", Paid: true, Statuses: true},
			{ID: ServiceOffset, Label: "Compensation Carbone", Paid: true, Statuses: true, HasTier: true},
			{ID: ServiceMCP, Label: "Mon Conseiller Perso", Paid: true, Toggle: ToggleMCP},
			{ID: ServiceVoltalis, Label: "Voltalis", Toggle: ToggleVoltalis},
		},
		clientFields: []string{
			FieldNom, FieldPrenom, FieldAdresse, FieldEmail,
			FieldTelephone, FieldPDL, FieldPCE, FieldIBAN,
		},
		requiredClient: []string{
			FieldNom, FieldPrenom, FieldAdresse, FieldEmail, FieldTelephone,
		},
		requiredToggles: []string{ToggleRGPD, ToggleReseau},
		disclosures:     []string{ToggleFrais, ToggleRetractation},
		tiers: []Tier{
			{Amount: "2.99", Info: "2,24t CO₂/mois"},
			{Amount: "3.99", Info: "2,98t CO₂/mois"},
			{Amount: "4.99", Info: "3,59t CO₂/mois"},
			{Amount: "5.99", Info: "4,49t CO₂/mois"},
			{Amount: "7.50", Info: "5,40t CO₂/mois"},
			{Amount: "14.99", Info: "11,34t CO₂/mois"},
		},
		sectionPatterns: map[string]string{
			"client-*":  SectionClient,
			"accord-*":  SectionAccords,
			"mention-*": SectionMentions,
			"sms-*":     SectionSMS,
			"etape-*":   SectionEtapes,
		},
		minPaid:  2,
		capacity: 100,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Sections returns all sections in display order.
func (r *Registry) Sections() []Section {
	return r.sections
}

// Section returns the section with the given name. The second return is
// false when the name is unknown.
func (r *Registry) Section(name string) (Section, bool) {
	for _, s := range r.sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// SectionFor resolves the section a field or toggle identifier belongs to by
// matching the identifier against the registered glob patterns. Unknown
// identifiers return ("", false).
func (r *Registry) SectionFor(id string) (string, bool) {
	for pattern, section := range r.sectionPatterns {
		ok, err := doublestar.Match(pattern, id)
		if err != nil {
			continue
		}
		if ok {
			return section, true
		}
	}
	return "", false
}

// Services returns all services in display order.
func (r *Registry) Services() []Service {
	return r.services
}

// Service returns the service with the given identifier. The second return
// is false when the identifier is unknown.
func (r *Registry) Service(id string) (Service, bool) {
	for _, s := range r.services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// ClientFields returns all client field identifiers in display order.
func (r *Registry) ClientFields() []string {
	return r.clientFields
}

// fieldLabels maps identifiers to display labels.
var fieldLabels = map[string]string{
	FieldNom:       "Nom",
	FieldPrenom:    "Prénom",
	FieldAdresse:   "Adresse",
	FieldEmail:     "Email",
	FieldTelephone: "Téléphone",
	FieldPDL:       "PDL",
	FieldPCE:       "PCE",
	FieldIBAN:      "IBAN",

	ToggleRGPD:         "Accord RGPD",
	ToggleReseau:       "Accord Réseau",
	ToggleVoltalis:     "Voltalis",
	ToggleMCP:          "Mon Conseiller Perso",
	ToggleFrais:        "Frais MES communiqués",
	ToggleRetractation: "Délai rétractation",

	"mention-prix":           "Prix et conditions annoncés",
	"mention-duree":          "Durée du contrat précisée",
	"mention-enregistrement": "Enregistrement de l'appel annoncé",

	"sms-recap":        "SMS récapitulatif envoyé",
	"sms-lien":         "Lien de confirmation communiqué",
	"sms-confirmation": "Confirmation client reçue",

	"etape-accueil":     "Accueil et présentation",
	"etape-decouverte":  "Découverte des besoins",
	"etape-proposition": "Proposition commerciale",
	"etape-objections":  "Traitement des objections",
	"etape-recap":       "Récapitulatif de l'offre",
	"etape-validation":  "Validation du client",
	"etape-conclusion":  "Conclusion de l'appel",
}

// Label returns the display label for a field or toggle identifier, falling
// back to the identifier itself when unknown.
func (r *Registry) Label(id string) string {
	if label, ok := fieldLabels[id]; ok {
		return label
	}
	return id
}

// RequiredClientFields returns the client fields that must be filled and
// valid before a sale validates.
func (r *Registry) RequiredClientFields() []string {
	return r.requiredClient
}

// IsRequiredClientField reports whether the given field must be filled.
func (r *Registry) IsRequiredClientField(id string) bool {
	for _, f := range r.requiredClient {
		if f == id {
			return true
		}
	}
	return false
}

// RequiredToggles returns the agreement toggles that must be checked.
func (r *Registry) RequiredToggles() []string {
	return r.requiredToggles
}

// Disclosures returns the mandatory disclosure toggles.
func (r *Registry) Disclosures() []string {
	return r.disclosures
}

// Tiers returns the selectable Offset price tiers.
func (r *Registry) Tiers() []Tier {
	return r.tiers
}

// DefaultTier returns the tier preselected for the Offset service.
func (r *Registry) DefaultTier() string {
	return r.tiers[0].Amount
}

// TierInfo returns the tonnage hint for a tier amount, or "" when unknown.
func (r *Registry) TierInfo(amount string) string {
	for _, t := range r.tiers {
		if t.Amount == amount {
			return t.Info
		}
	}
	return ""
}

// MinPaidServices returns the minimum count of paid services that must be
// sold for a sale to validate.
func (r *Registry) MinPaidServices() int {
	return r.minPaid
}

// HistoryCapacity returns the maximum number of records kept in the sales
// history. Older records beyond the capacity are dropped, oldest first.
func (r *Registry) HistoryCapacity() int {
	return r.capacity
}

// TotalItems returns the sum of all section totals.
func (r *Registry) TotalItems() int {
	total := 0
	for _, s := range r.sections {
		total += s.Total
	}
	return total
}
