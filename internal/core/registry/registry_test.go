package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	r := New()

	require.Len(t, r.Sections(), 5)
	assert.Equal(t, 29, r.TotalItems())
	assert.Equal(t, 2, r.MinPaidServices())
	assert.Equal(t, 100, r.HistoryCapacity())

	sec, ok := r.Section(SectionClient)
	require.True(t, ok)
	assert.Equal(t, 8, sec.Total)

	_, ok = r.Section("inconnu")
	assert.False(t, ok)
}

func TestSectionTotalsMatchContent(t *testing.T) {
	r := New()

	client, _ := r.Section(SectionClient)
	assert.Equal(t, client.Total, len(r.ClientFields()))

	accords, _ := r.Section(SectionAccords)
	statusDriven := 0
	for _, svc := range r.Services() {
		if svc.Statuses {
			statusDriven++
		}
	}
	assert.Equal(t, accords.Total, len(accords.Toggles)+statusDriven)

	for _, name := range []string{SectionMentions, SectionSMS, SectionEtapes} {
		sec, _ := r.Section(name)
		assert.Equal(t, sec.Total, len(sec.Toggles), name)
	}
}

func TestSectionFor(t *testing.T) {
	r := New()

	tests := []struct {
		id      string
		section string
		ok      bool
	}{
		{FieldEmail, SectionClient, true},
		{ToggleRGPD, SectionAccords, true},
		{ToggleFrais, SectionMentions, true},
		{"sms-recap", SectionSMS, true},
		{"etape-accueil", SectionEtapes, true},
		{"autre-chose", "", false},
	}
	for _, tt := range tests {
		section, ok := r.SectionFor(tt.id)
		assert.Equal(t, tt.ok, ok, tt.id)
		assert.Equal(t, tt.section, section, tt.id)
	}
}

func TestWithSectionPattern(t *testing.T) {
	r := New(WithSectionPattern("extra-*", SectionEtapes))

	section, ok := r.SectionFor("extra-verification")
	require.True(t, ok)
	assert.Equal(t, SectionEtapes, section)
}

func TestServices(t *testing.T) {
	r := New()

	axa, ok := r.Service(ServiceAXA)
	require.True(t, ok)
	assert.True(t, axa.Paid)
	assert.True(t, axa.Statuses)
	assert.False(t, axa.HasTier)

	offset, _ := r.Service(ServiceOffset)
	assert.True(t, offset.HasTier)

	voltalis, _ := r.Service(ServiceVoltalis)
	assert.False(t, voltalis.Paid)
	assert.Equal(t, ToggleVoltalis, voltalis.Toggle)

	_, ok = r.Service("inconnu")
	assert.False(t, ok)
}

func TestTiers(t *testing.T) {
	r := New()

	require.Len(t, r.Tiers(), 6)
	assert.Equal(t, "2.99", r.DefaultTier())
	assert.Equal(t, "3,59t CO₂/mois", r.TierInfo("4.99"))
	assert.Empty(t, r.TierInfo("9.99"))
}

func TestRequiredAndDisclosures(t *testing.T) {
	r := New()

	assert.Equal(t, []string{FieldNom, FieldPrenom, FieldAdresse, FieldEmail, FieldTelephone},
		r.RequiredClientFields())
	assert.True(t, r.IsRequiredClientField(FieldNom))
	assert.False(t, r.IsRequiredClientField(FieldIBAN))

	assert.Equal(t, []string{ToggleRGPD, ToggleReseau}, r.RequiredToggles())
	assert.Equal(t, []string{ToggleFrais, ToggleRetractation}, r.Disclosures())
}

func TestOptions(t *testing.T) {
	r := New(WithMinPaidServices(3), WithHistoryCapacity(10))
	assert.Equal(t, 3, r.MinPaidServices())
	assert.Equal(t, 10, r.HistoryCapacity())
}

func TestLabel(t *testing.T) {
	r := New()
	assert.Equal(t, "Téléphone", r.Label(FieldTelephone))
	assert.Equal(t, "Accord RGPD", r.Label(ToggleRGPD))
	assert.Equal(t, "mystere", r.Label("mystere"))
}
