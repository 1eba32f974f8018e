package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/ventecheck/ventecheck/internal/core/sale"
	"github.com/ventecheck/ventecheck/internal/vente"
)

type ExportCmd struct {
	flags *Flags
	app   *vente.App

	// flags
	out    string
	stdout bool
}

// NewExportCmd creates a new export command.
func NewExportCmd(flags *Flags, app *vente.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application.
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export the sales history as CSV, or one sale as a fiche",
		UsageText: "ventecheck export [index] [--out file] [--stdout]",
		Description: `Without arguments, exports the whole history as semicolon-delimited CSV.
With an index, exports that sale as a plain-text fiche vente.

The default output file is historique_<date>.csv (or vente_<nom>_<date>.txt)
in the configured export directory.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file path",
				Destination: &cmd.out,
			},
			&cli.BoolFlag{
				Name:        "stdout",
				Usage:       "write to stdout instead of a file",
				Destination: &cmd.stdout,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	records, err := cmd.app.Recorder.List(ctx)
	if err != nil {
		return fmt.Errorf("list sales: %w", err)
	}

	if len(records) == 0 {
		return fmt.Errorf("aucune vente à exporter")
	}

	if c.Args().Len() > 1 {
		return fmt.Errorf("usage: ventecheck export [index]")
	}

	var content, filename string
	if c.Args().Len() == 1 {
		index, err := strconv.Atoi(c.Args().First())
		if err != nil {
			return fmt.Errorf("invalid index %q", c.Args().First())
		}
		if index < 0 || index >= len(records) {
			return fmt.Errorf("index %d out of range (0-%d)", index, len(records)-1)
		}
		rec := records[index]
		content = sale.ExportFiche(rec)
		filename = sale.FicheFilename(rec)
	} else {
		content = sale.ExportCSV(records)
		filename = sale.CSVFilename(time.Now())
	}

	if cmd.stdout {
		fmt.Fprintln(c.Root().Writer, content)
		return nil
	}

	path := cmd.out
	if path == "" {
		path = filepath.Join(cmd.flags.Config.Export.Dir, filename)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Exporté vers %s\n", path)
	return nil
}
