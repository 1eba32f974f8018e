// Package tui implements the interactive checklist screen, the sales
// history screen, and the modals and toasts layered on top of them.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/ventecheck/ventecheck/internal/core/checklist"
	"github.com/ventecheck/ventecheck/internal/core/notify"
	"github.com/ventecheck/ventecheck/internal/core/sale"
	"github.com/ventecheck/ventecheck/internal/core/sessionstate"
	"github.com/ventecheck/ventecheck/internal/data/stores"
	"github.com/ventecheck/ventecheck/internal/tui/components"
	"github.com/ventecheck/ventecheck/internal/vente"
)

// pendingAction identifies what a confirmation modal will do on "yes".
type pendingAction int

const (
	actionNone pendingAction = iota
	actionReset
	actionDeleteSale
	actionClearHistory
	actionDuplicate
)

type timerTickMsg time.Time

func scheduleTimerTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// Model is the bubbletea model for the whole tool. The active view lives on
// the checklist state so it survives session snapshots.
type Model struct {
	app   *vente.App
	log   zerolog.Logger
	keys  KeyMap
	saver *sessionstate.Saver

	state  *checklist.State
	inputs map[string]textinput.Model
	items  []item
	cursor int

	records    []sale.Record
	histCursor int
	detail     string // rendered fiche, empty when the detail pane is closed

	toasts    *ToastController
	toastView *ToastView

	confirm    *components.ConfirmModal
	pending    pendingAction
	pendingIdx int

	showSummary bool
	summary     checklist.Result

	width  int
	height int
}

// New builds the model: it restores the previous session snapshot when one
// is present and fresh, loads the sales history, and prepares the client
// field inputs.
func New(app *vente.App, saver *sessionstate.Saver, log zerolog.Logger) Model {
	m := Model{
		app:    app,
		log:    log,
		keys:   DefaultKeyMap(),
		saver:  saver,
		state:  checklist.NewState(app.Registry),
		inputs: make(map[string]textinput.Model),
		items:  buildItems(app.Registry),
		toasts: NewToastController(),
	}
	m.toastView = NewToastView(m.toasts)

	snap, err := app.Sessions.Load()
	switch {
	case err == nil:
		m.state = snap.Restore(app.Registry)
		m.toasts.Push(notify.New(notify.LevelInfo, notify.MsgEtatRestaure))
	case errors.Is(err, stores.ErrNotFound):
	case errors.Is(err, stores.ErrStale), errors.Is(err, stores.ErrCorrupt):
		log.Debug().Err(err).Msg("session snapshot discarded")
	default:
		log.Warn().Err(err).Msg("session snapshot load failed")
	}

	records, err := app.Recorder.List(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("history load failed")
	}
	m.records = records

	for _, id := range app.Registry.ClientFields() {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = app.Registry.Label(id)
		ti.CharLimit = 80
		ti.Width = 40
		ti.SetValue(m.state.Field(id))
		m.inputs[id] = ti
	}
	m.focusCursor()

	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.toasts.HasToasts() {
		m.toasts.SetTicking(true)
		cmds = append(cmds, scheduleToastTick())
	}
	if m.state.CallActive {
		cmds = append(cmds, scheduleTimerTick())
	}
	return tea.Batch(cmds...)
}

// queueSave hands the current state to the debounced autosaver.
func (m *Model) queueSave() {
	m.saver.Queue(sessionstate.Capture(m.state, time.Now()))
}

// pushToast shows a notification and returns the tick command when the
// toast timer is not already running.
func (m *Model) pushToast(level notify.Level, message string) tea.Cmd {
	m.toasts.Push(notify.New(level, message))
	if m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

// focusCursor focuses the input under the cursor and blurs every other one.
func (m *Model) focusCursor() {
	for id, ti := range m.inputs {
		focused := m.cursor < len(m.items) &&
			m.items[m.cursor].kind == itemField &&
			m.items[m.cursor].id == id
		if focused {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[id] = ti
	}
}

// syncInputs pushes the checklist state back into the text inputs. Used
// after reset, restore, and duplicate, which all replace the state wholesale.
func (m *Model) syncInputs() {
	for id, ti := range m.inputs {
		ti.SetValue(m.state.Field(id))
		m.inputs[id] = ti
	}
}

// refreshHistory reloads the committed sales and clamps the cursor.
func (m *Model) refreshHistory() {
	records, err := m.app.Recorder.List(context.Background())
	if err != nil {
		m.log.Warn().Err(err).Msg("history reload failed")
		return
	}
	m.records = records
	if m.histCursor >= len(m.records) {
		m.histCursor = len(m.records) - 1
	}
	if m.histCursor < 0 {
		m.histCursor = 0
	}
}
