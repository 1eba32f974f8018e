package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ventecheck/ventecheck/internal/core/checklist"
	"github.com/ventecheck/ventecheck/internal/core/notify"
	"github.com/ventecheck/ventecheck/internal/core/registry"
	"github.com/ventecheck/ventecheck/internal/core/sale"
	"github.com/ventecheck/ventecheck/internal/tui/components"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil

	case timerTickMsg:
		if m.state.CallActive {
			return m, scheduleTimerTick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}

	if m.showSummary {
		return m.updateSummary(msg)
	}

	if m.detail != "" {
		if key.Matches(msg, m.keys.Back) {
			m.detail = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Checklist):
		m.state.ActiveView = checklist.ViewChecklist
		m.queueSave()
		return m, nil
	case key.Matches(msg, m.keys.History):
		m.state.ActiveView = checklist.ViewHistory
		m.queueSave()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		return m, m.exportHistory()
	}

	if m.state.ActiveView == checklist.ViewHistory {
		return m.updateHistory(msg)
	}
	return m.updateChecklist(msg)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	modal, _ := m.confirm.Update(msg)
	switch {
	case modal.Confirmed():
		m.confirm = nil
		return m, m.runPending()
	case modal.Cancelled():
		m.confirm = nil
		m.pending = actionNone
		return m, nil
	}
	m.confirm = &modal
	return m, nil
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.showSummary = false
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.showSummary = false
		if !m.summary.Valid {
			return m, nil
		}
		return m, m.commitSale()
	}
	return m, nil
}

func (m Model) updateChecklist(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Call):
		return m, m.toggleCall()

	case key.Matches(msg, m.keys.Validate):
		m.summary = checklist.Evaluate(m.state, m.app.Registry)
		m.showSummary = true
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.pending = actionReset
		modal := components.NewConfirmModal("Réinitialiser toute la checklist ?")
		m.confirm = &modal
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.focusCursor()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		m.focusCursor()
		return m, nil
	}

	if m.cursor >= len(m.items) {
		return m, nil
	}
	it := m.items[m.cursor]

	switch it.kind {
	case itemToggle:
		if key.Matches(msg, m.keys.ToggleItem) || key.Matches(msg, m.keys.Confirm) {
			m.state.SetToggle(it.id, !m.state.Toggle(it.id))
			m.queueSave()
		}
		return m, nil

	case itemService:
		switch {
		case key.Matches(msg, m.keys.ToggleItem), key.Matches(msg, m.keys.Confirm):
			m.state.SetServiceStatus(it.id, m.state.Service(it.id).Next())
			m.queueSave()
		case key.Matches(msg, m.keys.Left):
			if it.id == registry.ServiceOffset {
				m.shiftTier(-1)
			}
		case key.Matches(msg, m.keys.Right):
			if it.id == registry.ServiceOffset {
				m.shiftTier(1)
			}
		}
		return m, nil

	case itemField:
		// Enter moves to the next row, everything else feeds the input.
		if key.Matches(msg, m.keys.Confirm) {
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			m.focusCursor()
			return m, nil
		}
		ti := m.inputs[it.id]
		ti, cmd := ti.Update(msg)
		m.inputs[it.id] = ti
		if ti.Value() != m.state.Field(it.id) {
			m.state.SetField(it.id, ti.Value())
			m.queueSave()
		}
		return m, cmd
	}

	return m, nil
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.histCursor > 0 {
			m.histCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.histCursor < len(m.records)-1 {
			m.histCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if rec, ok := m.selectedRecord(); ok {
			m.detail = m.renderDetail(rec)
		}
		return m, nil

	case key.Matches(msg, m.keys.ExportSale):
		if rec, ok := m.selectedRecord(); ok {
			return m, m.exportFiche(rec)
		}
		return m, nil

	case key.Matches(msg, m.keys.Duplicate):
		if _, ok := m.selectedRecord(); ok {
			m.pending = actionDuplicate
			m.pendingIdx = m.histCursor
			modal := components.NewConfirmModal("Dupliquer cette vente dans la checklist ?\nLa saisie en cours sera remplacée.")
			m.confirm = &modal
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selectedRecord(); ok {
			m.pending = actionDeleteSale
			m.pendingIdx = m.histCursor
			modal := components.NewConfirmModal("Supprimer cette vente de l'historique ?")
			m.confirm = &modal
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearHistory):
		if len(m.records) > 0 {
			m.pending = actionClearHistory
			modal := components.NewConfirmModal(fmt.Sprintf("Vider l'historique (%d ventes) ?", len(m.records)))
			m.confirm = &modal
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) selectedRecord() (sale.Record, bool) {
	if m.histCursor < 0 || m.histCursor >= len(m.records) {
		return sale.Record{}, false
	}
	return m.records[m.histCursor], true
}

func (m *Model) shiftTier(delta int) {
	tiers := m.app.Registry.Tiers()
	current := 0
	for i, t := range tiers {
		if t.Amount == m.state.OffsetTier {
			current = i
			break
		}
	}
	next := current + delta
	if next < 0 || next >= len(tiers) {
		return
	}
	m.state.OffsetTier = tiers[next].Amount
	m.queueSave()
}

func (m *Model) toggleCall() tea.Cmd {
	if m.state.CallActive {
		m.state.StopCall(time.Now())
		m.queueSave()
		return m.pushToast(notify.LevelInfo, notify.MsgAppelTermine)
	}
	m.state.StartCall(time.Now())
	m.queueSave()
	return tea.Batch(
		m.pushToast(notify.LevelInfo, notify.MsgAppelDemarre),
		scheduleTimerTick(),
	)
}

func (m *Model) runPending() tea.Cmd {
	action := m.pending
	m.pending = actionNone

	switch action {
	case actionReset:
		m.state.Reset(m.app.Registry)
		m.syncInputs()
		// A reset starts over from nothing; keeping an empty snapshot
		// around would trigger a restore toast on the next launch.
		m.saver.Clear()
		return m.pushToast(notify.LevelInfo, notify.MsgChecklistReset)

	case actionDeleteSale:
		if err := m.app.Recorder.Remove(context.Background(), m.pendingIdx); err != nil {
			m.log.Error().Err(err).Int("index", m.pendingIdx).Msg("delete sale failed")
			return m.pushToast(notify.LevelError, "Erreur lors de la suppression")
		}
		m.refreshHistory()
		return m.pushToast(notify.LevelSuccess, notify.MsgVenteSupprimee)

	case actionClearHistory:
		if err := m.app.Recorder.ClearHistory(context.Background()); err != nil {
			m.log.Error().Err(err).Msg("clear history failed")
			return m.pushToast(notify.LevelError, "Erreur lors de la suppression")
		}
		m.refreshHistory()
		return m.pushToast(notify.LevelSuccess, notify.MsgHistoriqueVide)

	case actionDuplicate:
		rec, ok := m.selectedRecord()
		if !ok {
			return nil
		}
		m.state = m.app.Recorder.Duplicate(rec)
		m.syncInputs()
		m.state.ActiveView = checklist.ViewChecklist
		m.queueSave()
		return m.pushToast(notify.LevelSuccess, notify.MsgVenteDupliquee)
	}

	return nil
}

func (m *Model) commitSale() tea.Cmd {
	_, err := m.app.Recorder.Commit(context.Background(), m.state)
	if err != nil {
		var verr *sale.ValidationError
		if errors.As(err, &verr) {
			return m.pushToast(notify.LevelWarning,
				fmt.Sprintf("%d critère(s) manquant(s)", verr.Result.MissingCount))
		}
		m.log.Error().Err(err).Msg("commit failed")
		return m.pushToast(notify.LevelError, "Erreur lors de l'enregistrement")
	}

	// The recorder resets the checklist; drop the snapshot with it and
	// land on the history so the new sale is visible.
	m.saver.Clear()
	m.syncInputs()
	m.refreshHistory()
	m.state.ActiveView = checklist.ViewHistory
	return m.pushToast(notify.LevelSuccess, notify.MsgVenteEnregistree)
}

func (m *Model) exportHistory() tea.Cmd {
	if len(m.records) == 0 {
		return m.pushToast(notify.LevelWarning, notify.MsgHistoriqueEmpty)
	}
	path := filepath.Join(m.app.Config.Export.Dir, sale.CSVFilename(time.Now()))
	if err := writeExport(path, sale.ExportCSV(m.records)); err != nil {
		m.log.Error().Err(err).Str("path", path).Msg("csv export failed")
		return m.pushToast(notify.LevelError, "Erreur lors de l'export")
	}
	return m.pushToast(notify.LevelSuccess, "Historique exporté : "+filepath.Base(path))
}

func (m *Model) exportFiche(rec sale.Record) tea.Cmd {
	path := filepath.Join(m.app.Config.Export.Dir, sale.FicheFilename(rec))
	if err := writeExport(path, sale.ExportFiche(rec)); err != nil {
		m.log.Error().Err(err).Str("path", path).Msg("fiche export failed")
		return m.pushToast(notify.LevelError, "Erreur lors de l'export")
	}
	return m.pushToast(notify.LevelSuccess, notify.MsgVenteExportee)
}

func writeExport(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
