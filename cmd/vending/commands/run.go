package commands

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/expendedora/internal/bootstrap"
	"github.com/jhoicas/expendedora/internal/interfaces/cli"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Inicia la sesión interactiva de la máquina",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			app, err := bootstrap.Build(cmd.Context(), cfg, log)
			if err != nil {
				log.Error().Err(err).Msg("construir la aplicación")
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					log.Error().Err(err).Msg("cerrar backend")
				}
			}()

			cli.Run(cmd.Context(), app.Machine, app.Input, app.Output, log)
			return nil
		},
	}
}
