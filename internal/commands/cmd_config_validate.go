package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/ventecheck/ventecheck/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "ventecheck config validate [options]",
				Description: "Validates the configuration file, checking values, glob patterns, and paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)

	out := c.Root().Writer

	if cmd.format == "json" {
		type issue struct {
			Field string `json:"field"`
			Error string `json:"error"`
		}
		result := struct {
			Valid  bool    `json:"valid"`
			Issues []issue `json:"issues,omitempty"`
		}{Valid: err == nil}

		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				result.Issues = append(result.Issues, issue{Field: fe.Field, Error: fe.Err.Error()})
			}
		} else if err != nil {
			result.Issues = append(result.Issues, issue{Field: "config", Error: err.Error()})
		}

		return iojson.WriteWith(out, c.Root().ErrWriter, result)
	}

	if err == nil {
		fmt.Fprintln(out, "Configuration valide")
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		fmt.Fprintf(out, "Configuration invalide (%d problème(s)):\n", len(fieldErrs))
		for _, fe := range fieldErrs {
			fmt.Fprintf(out, "  %s: %v\n", fe.Field, fe.Err)
		}
		return fmt.Errorf("invalid configuration")
	}

	return err
}
