// Package notify defines the notification events surfaced to the agent as
// toasts, and the canonical user-facing messages.
package notify

import "time"

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// New creates a notification stamped now.
func New(level Level, message string) Notification {
	return Notification{Level: level, Message: message, CreatedAt: time.Now()}
}

// Canonical user-facing messages. Part of the tool's wording, kept in
// French.
const (
	MsgVenteEnregistree = "Vente enregistrée avec succès !"
	MsgChecklistReset   = "Checklist réinitialisée"
	MsgHistoriqueVide   = "Historique vidé"
	MsgVenteExportee    = "Vente exportée"
	MsgVenteSupprimee   = "Vente supprimée"
	MsgVenteDupliquee   = "Vente dupliquée dans la checklist"
	MsgEtatRestaure     = "État précédent restauré"
	MsgAppelDemarre     = "Appel démarré !"
	MsgAppelTermine     = "Appel terminé"
	MsgHistoriqueEmpty  = "Aucune vente à exporter"
)
