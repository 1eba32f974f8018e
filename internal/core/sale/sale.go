// Package sale defines the immutable sale record, the recorder that commits
// a validated checklist into the history, and the export formats.
package sale

import (
	"errors"
	"fmt"
	"time"

	"github.com/ventecheck/ventecheck/internal/core/checklist"
	"github.com/ventecheck/ventecheck/internal/core/registry"
)

// ErrNotFound is returned by history stores when an index or id does not
// resolve to a record.
var ErrNotFound = errors.New("sale not found")

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Quality classification thresholds, applied to the completion percentage
// at commit time.
const (
	QualityExcellent    = "Excellent"
	QualityBon          = "Bon"
	QualitySatisfaisant = "Satisfaisant"
	QualityAAmeliorer   = "À améliorer"
)

// Classify maps a completion percentage to its quality label.
func Classify(completion int) string {
	switch {
	case completion >= 90:
		return QualityExcellent
	case completion >= 75:
		return QualityBon
	case completion >= 60:
		return QualitySatisfaisant
	default:
		return QualityAAmeliorer
	}
}

// Client is the frozen copy of the client fields at commit time.
type Client struct {
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Adresse   string `json:"adresse"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}

// FullName returns "Prenom Nom".
func (c Client) FullName() string {
	return c.Prenom + " " + c.Nom
}

// ServiceSale is the frozen final status of one service. Legacy checkbox
// services set Offered == Sold.
type ServiceSale struct {
	Offered bool   `json:"offered"`
	Sold    bool   `json:"sold"`
	Tier    string `json:"tier,omitempty"`
}

// Services is the per-service outcome of a sale.
type Services struct {
	AXA      ServiceSale `json:"axa"`
	Carbone  ServiceSale `json:"carbone"`
	MCP      ServiceSale `json:"mcp"`
	Voltalis ServiceSale `json:"voltalis"`
}

// Sold returns the labels of the services sold, in display order.
func (s Services) Sold() []string {
	var out []string
	if s.AXA.Sold {
		out = append(out, "AXA")
	}
	if s.Carbone.Sold {
		if s.Carbone.Tier != "" {
			out = append(out, fmt.Sprintf("Offset %s€", s.Carbone.Tier))
		} else {
			out = append(out, "Carbone")
		}
	}
	if s.MCP.Sold {
		out = append(out, "MCP")
	}
	if s.Voltalis.Sold {
		out = append(out, "Voltalis")
	}
	return out
}

// Record is an immutable committed sale. Once appended to the history its
// fields are never mutated; only deletion removes it.
type Record struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Client        Client    `json:"client"`
	Services      Services  `json:"services"`
	Duration      int       `json:"duration"` // call duration, whole seconds
	ServicesCount int       `json:"services_count"`
	Quality       string    `json:"quality"`
}

// FormatDuration renders whole seconds as m:ss, matching the export format.
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// snapshot freezes the current checklist into the per-service outcome.
func snapshot(s *checklist.State) Services {
	axa := s.Service(registry.ServiceAXA)
	offset := s.Service(registry.ServiceOffset)

	svcs := Services{
		AXA: ServiceSale{
			Offered: axa != checklist.StatusNotOffered,
			Sold:    axa == checklist.StatusSold,
		},
		Carbone: ServiceSale{
			Offered: offset != checklist.StatusNotOffered,
			Sold:    offset == checklist.StatusSold,
		},
		MCP: ServiceSale{
			Offered: s.Toggle(registry.ToggleMCP),
			Sold:    s.Toggle(registry.ToggleMCP),
		},
		Voltalis: ServiceSale{
			Offered: s.Toggle(registry.ToggleVoltalis),
			Sold:    s.Toggle(registry.ToggleVoltalis),
		},
	}
	if svcs.Carbone.Offered {
		svcs.Carbone.Tier = s.OffsetTier
	}
	return svcs
}
