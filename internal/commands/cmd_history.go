package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/ventecheck/ventecheck/internal/core/sale"
	"github.com/ventecheck/ventecheck/internal/vente"
	"github.com/ventecheck/ventecheck/pkg/iojson"
)

type HistoryCmd struct {
	flags *Flags
	app   *vente.App

	// flags
	jsonOutput bool
	yes        bool
}

// NewHistoryCmd creates a new history command.
func NewHistoryCmd(flags *Flags, app *vente.App) *HistoryCmd {
	return &HistoryCmd{flags: flags, app: app}
}

// Register adds the history command to the application.
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "List recorded sales",
		UsageText: "ventecheck history [--json]",
		Description: `Displays a table of all recorded sales, newest first, with client,
services sold, call duration, and quality.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.runList,
		Commands: []*cli.Command{
			{
				Name:        "clear",
				Usage:       "Delete all recorded sales",
				UsageText:   "ventecheck history clear [--yes]",
				Description: "Empties the sales history. Asks for confirmation unless --yes is given.",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Usage:       "skip confirmation",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runClear,
			},
			{
				Name:      "rm",
				Usage:     "Delete one recorded sale by index",
				UsageText: "ventecheck history rm <index> [--yes]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Usage:       "skip confirmation",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runRemove,
			},
		},
	})

	return app
}

func (cmd *HistoryCmd) runList(ctx context.Context, c *cli.Command) error {
	records, err := cmd.app.Recorder.List(ctx)
	if err != nil {
		return fmt.Errorf("list sales: %w", err)
	}

	if len(records) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintln(os.Stderr, "Aucune vente enregistrée")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, rec := range records {
			if err := iojson.WriteLine(out, rec); err != nil {
				return fmt.Errorf("encode sale: %w", err)
			}
		}
		return nil
	}

	totalServices := 0
	for _, rec := range records {
		totalServices += rec.ServicesCount
	}
	fmt.Fprintf(out, "%d vente(s), %d service(s) vendus\n\n", len(records), totalServices)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tDATE\tCLIENT\tSERVICES\tDURÉE\tQUALITÉ")
	for i, rec := range records {
		services := strings.Join(rec.Services.Sold(), ", ")
		if services == "" {
			services = "-"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i,
			rec.Date.Format("02/01/2006 15:04"),
			rec.Client.FullName(),
			services,
			sale.FormatDuration(rec.Duration),
			rec.Quality,
		)
	}
	_ = w.Flush()

	return nil
}

func (cmd *HistoryCmd) runClear(ctx context.Context, c *cli.Command) error {
	ok, err := cmd.confirm("Voulez-vous vraiment vider tout l'historique des ventes ?")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := cmd.app.Recorder.ClearHistory(ctx); err != nil {
		return err
	}

	fmt.Fprintln(c.Root().Writer, "Historique vidé")
	return nil
}

func (cmd *HistoryCmd) runRemove(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: ventecheck history rm <index>")
	}
	index, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return fmt.Errorf("invalid index %q", c.Args().First())
	}

	ok, err := cmd.confirm(fmt.Sprintf("Supprimer définitivement la vente %d ?", index))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := cmd.app.Recorder.Remove(ctx, index); err != nil {
		return err
	}

	fmt.Fprintln(c.Root().Writer, "Vente supprimée")
	return nil
}

// confirm prompts the user unless --yes was given or stdin is not a
// terminal (scripted use).
func (cmd *HistoryCmd) confirm(title string) (bool, error) {
	if cmd.yes || !term.IsTerminal(int(os.Stdin.Fd())) {
		return true, nil
	}

	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Oui").
			Negative("Non").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}
