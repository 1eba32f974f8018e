package checklist

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/ventecheck/ventecheck/internal/core/registry"
)

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	telephoneRe = regexp.MustCompile(`^(?:\+33|0)[1-9][0-9]{8}$`)
	digits14Re  = regexp.MustCompile(`^\d{14}$`)
	ibanRe      = regexp.MustCompile(`^FR\d{2}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{2}$`)
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

// FieldFormatValid reports whether a non-empty value satisfies the
// field-specific format check. Fields without a specific format always pass.
func FieldFormatValid(id, value string) bool {
	switch id {
	case registry.FieldEmail:
		return emailRe.MatchString(value)
	case registry.FieldTelephone:
		return telephoneRe.MatchString(strings.ReplaceAll(value, " ", ""))
	case registry.FieldPDL, registry.FieldPCE:
		return digits14Re.MatchString(value)
	case registry.FieldIBAN:
		return ibanRe.MatchString(value)
	default:
		return true
	}
}

// FieldValid reports whether a field value is acceptable: an empty value is
// fine unless the field is required, a non-empty value must pass its format
// check.
func FieldValid(id, value string, required bool) bool {
	value = trim(value)
	if value == "" {
		return !required
	}
	return FieldFormatValid(id, value)
}

// fieldFormat returns a format validator for use with criterio.
func fieldFormat(id string) func(string) error {
	return func(value string) error {
		if trim(value) == "" {
			return nil
		}
		if !FieldFormatValid(id, trim(value)) {
			return fmt.Errorf("format invalide")
		}
		return nil
	}
}

// requiredValue rejects empty values after trimming.
func requiredValue(value string) error {
	if trim(value) == "" {
		return fmt.Errorf("champ obligatoire")
	}
	return nil
}

// ValidateField checks a single client field value, returning a criterio
// field error when the value is missing (required fields) or malformed.
func ValidateField(id, value string, required bool) error {
	if required {
		return criterio.Run(id, value, requiredValue, fieldFormat(id))
	}
	return criterio.Run(id, value, fieldFormat(id))
}

// ClientFieldErrors validates every client field of the state against the
// registry. A nil return means all fields are acceptable; otherwise the
// returned error is a criterio.FieldErrors listing each offending field.
// Used to restore visual valid/invalid markers after a session restore.
func ClientFieldErrors(s *State, reg *registry.Registry) error {
	var errs criterio.FieldErrorsBuilder
	for _, id := range reg.ClientFields() {
		value := s.Field(id)
		required := reg.IsRequiredClientField(id)
		switch {
		case trim(value) == "" && required:
			errs = errs.Append(id, fmt.Errorf("champ obligatoire"))
		case trim(value) != "" && !FieldFormatValid(id, value):
			errs = errs.Append(id, fmt.Errorf("format invalide"))
		}
	}
	return errs.ToError()
}
