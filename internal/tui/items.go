package tui

import "github.com/ventecheck/ventecheck/internal/core/registry"

type itemKind int

const (
	itemField itemKind = iota
	itemToggle
	itemService
)

// item is one focusable row of the checklist view.
type item struct {
	kind    itemKind
	id      string
	section string
}

// buildItems flattens the registry into the navigable row list, in display
// order: client fields first, then each section's toggles with the
// status-driven services slotted into the agreements section.
func buildItems(reg *registry.Registry) []item {
	var items []item

	for _, id := range reg.ClientFields() {
		items = append(items, item{kind: itemField, id: id, section: registry.SectionClient})
	}

	for _, sec := range reg.Sections() {
		if sec.Name == registry.SectionClient {
			continue
		}
		if sec.Name == registry.SectionAccords {
			items = append(items, accordItems(reg, sec)...)
			continue
		}
		for _, id := range sec.Toggles {
			items = append(items, item{kind: itemToggle, id: id, section: sec.Name})
		}
	}

	return items
}

// accordItems orders the agreements section: required agreements, then the
// status-driven services, then the checkbox services.
func accordItems(reg *registry.Registry, sec registry.Section) []item {
	items := []item{
		{kind: itemToggle, id: registry.ToggleRGPD, section: sec.Name},
		{kind: itemToggle, id: registry.ToggleReseau, section: sec.Name},
	}
	for _, svc := range reg.Services() {
		if svc.Statuses {
			items = append(items, item{kind: itemService, id: svc.ID, section: sec.Name})
		}
	}
	items = append(items,
		item{kind: itemToggle, id: registry.ToggleMCP, section: sec.Name},
		item{kind: itemToggle, id: registry.ToggleVoltalis, section: sec.Name},
	)
	return items
}
