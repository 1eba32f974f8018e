package checklist

import (
	"math"

	"github.com/ventecheck/ventecheck/internal/core/registry"
)

// SectionProgress is the satisfied/total count for one section.
type SectionProgress struct {
	Name  string
	Label string
	Done  int
	Total int
}

// Percent returns the section completion percentage, 0 for empty sections.
func (p SectionProgress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int(math.Round(float64(p.Done) / float64(p.Total) * 100))
}

// Progress recomputes every section's satisfied-item count from scratch.
// It holds no state of its own, so it is safe to call after any mutation.
func Progress(s *State, reg *registry.Registry) []SectionProgress {
	out := make([]SectionProgress, 0, len(reg.Sections()))
	for _, sec := range reg.Sections() {
		p := SectionProgress{Name: sec.Name, Label: sec.Label, Total: sec.Total}
		if sec.Name == registry.SectionClient {
			for _, id := range reg.ClientFields() {
				value := s.Field(id)
				if trim(value) != "" && FieldFormatValid(id, value) {
					p.Done++
				}
			}
		} else {
			for _, id := range sec.Toggles {
				if s.Toggle(id) {
					p.Done++
				}
			}
			// Status-driven services belong to the accords section and
			// count as satisfied once sold.
			if sec.Name == registry.SectionAccords {
				for _, svc := range reg.Services() {
					if svc.Statuses && s.Service(svc.ID) == StatusSold {
						p.Done++
					}
				}
			}
		}
		out = append(out, p)
	}
	return out
}

// Completion returns the overall completion percentage across all sections,
// rounded to the nearest integer. Zero-total registries yield 0.
func Completion(s *State, reg *registry.Registry) int {
	done, total := 0, 0
	for _, p := range Progress(s, reg) {
		done += p.Done
		total += p.Total
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// PaidSold counts the paid services currently sold: status-driven services
// with status sold, plus legacy paid toggles that are checked.
func PaidSold(s *State, reg *registry.Registry) int {
	count := 0
	for _, svc := range reg.Services() {
		if !svc.Paid {
			continue
		}
		switch {
		case svc.Statuses:
			if s.Service(svc.ID) == StatusSold {
				count++
			}
		case svc.Toggle != "":
			if s.Toggle(svc.Toggle) {
				count++
			}
		}
	}
	return count
}
