package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the tool reacts to. Bindings that only make
// sense in one view are filtered in the help line, not here.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	ToggleItem key.Binding
	Confirm    key.Binding
	Back       key.Binding

	Checklist key.Binding
	History   key.Binding

	Call     key.Binding
	Validate key.Binding
	Reset    key.Binding
	Export   key.Binding

	ExportSale   key.Binding
	Duplicate    key.Binding
	Delete       key.Binding
	ClearHistory key.Binding

	Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑", "monter"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "tab"),
			key.WithHelp("↓", "descendre"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "palier précédent"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "palier suivant"),
		),
		ToggleItem: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("espace", "cocher"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("entrée", "valider"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("échap", "fermer"),
		),
		Checklist: key.NewBinding(
			key.WithKeys("ctrl+l", "f1"),
			key.WithHelp("ctrl+l", "checklist"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+h", "f2"),
			key.WithHelp("ctrl+h", "historique"),
		),
		Call: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "appel"),
		),
		Validate: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "enregistrer la vente"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "réinitialiser"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export CSV"),
		),
		ExportSale: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "exporter la fiche"),
		),
		Duplicate: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "dupliquer"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "supprimer"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "vider l'historique"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quitter"),
		),
	}
}
