package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/ventecheck/ventecheck/internal/core/sessionstate"
	"github.com/ventecheck/ventecheck/internal/tui"
	"github.com/ventecheck/ventecheck/internal/vente"
)

type TuiCmd struct {
	flags *Flags
	app   *vente.App
}

// NewTuiCmd creates a new tui command.
func NewTuiCmd(flags *Flags, app *vente.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "tui",
		Usage:       "Open the interactive checklist (default)",
		UsageText:   "ventecheck [tui]",
		Description: "Opens the checklist and sales history screens in the terminal.",
		Action:      cmd.Run,
	})

	return app
}

// Run starts the interactive program. It is also the root command's default
// action.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	saver := sessionstate.NewSaver(
		cmd.app.Sessions,
		log.With().Str("component", "saver").Logger(),
		sessionstate.WithDebounce(time.Duration(cmd.flags.Config.Autosave.DebounceSeconds)*time.Second),
		sessionstate.WithInterval(time.Duration(cmd.flags.Config.Autosave.IntervalSeconds)*time.Second),
	)

	saverCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go saver.Start(saverCtx)

	model := tui.New(cmd.app, saver, log.With().Str("component", "tui").Logger())

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	// Persist whatever the debounce window was still holding.
	saver.Flush()
	return nil
}
