package checklist

import (
	"github.com/ventecheck/ventecheck/internal/core/registry"
)

// Validation issue messages. These are surfaced verbatim to the agent and
// are part of the tool's wording, so they stay in French.
const (
	MsgClientIncomplete     = "Informations client incomplètes (minimum: nom, prénom, adresse, email, téléphone)"
	MsgAccordsManquants     = "Accords RGPD et Réseau obligatoires"
	MsgServicesInsuffisants = "Minimum 2 services payants requis"
	MsgMentionsManquantes   = "Frais MES et Délai rétractation obligatoires"
)

// Result is the verdict of evaluating a checklist against the sale rules.
// MissingCount is 0 exactly when Valid is true.
type Result struct {
	Valid        bool
	MissingCount int
	Issues       []string

	ClientComplete     bool
	RequiredAgreements bool
	MinPaidServices    bool
	Disclosures        bool

	PaidSold int // services currently counted as sold
}

// Evaluate runs the four sale checks in a fixed order: client completeness,
// required agreements, paid-service minimum, mandatory disclosures. It is a
// pure function of the state and registry; identical input produces an
// identical Result.
func Evaluate(s *State, reg *registry.Registry) Result {
	res := Result{
		ClientComplete:     true,
		RequiredAgreements: true,
		Disclosures:        true,
	}

	for _, id := range reg.RequiredClientFields() {
		if !FieldValid(id, s.Field(id), true) {
			res.ClientComplete = false
			res.MissingCount++
		}
	}
	if !res.ClientComplete {
		res.Issues = append(res.Issues, MsgClientIncomplete)
	}

	for _, id := range reg.RequiredToggles() {
		if !s.Toggle(id) {
			res.RequiredAgreements = false
			res.MissingCount++
		}
	}
	if !res.RequiredAgreements {
		res.Issues = append(res.Issues, MsgAccordsManquants)
	}

	res.PaidSold = PaidSold(s, reg)
	res.MinPaidServices = res.PaidSold >= reg.MinPaidServices()
	if !res.MinPaidServices {
		res.MissingCount++
		res.Issues = append(res.Issues, MsgServicesInsuffisants)
	}

	for _, id := range reg.Disclosures() {
		if !s.Toggle(id) {
			res.Disclosures = false
			res.MissingCount++
		}
	}
	if !res.Disclosures {
		res.Issues = append(res.Issues, MsgMentionsManquantes)
	}

	res.Valid = res.ClientComplete && res.RequiredAgreements &&
		res.MinPaidServices && res.Disclosures

	return res
}
