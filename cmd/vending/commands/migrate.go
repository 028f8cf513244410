package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/expendedora/internal/infrastructure/postgres"
	"github.com/jhoicas/expendedora/internal/infrastructure/sqlite"
	"github.com/jhoicas/expendedora/pkg/config"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones del backend configurado",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			switch cfg.Store.Driver {
			case config.DriverSQLite:
				store, err := sqlite.Open(cmd.Context(), cfg.Store.SQLitePath)
				if err != nil {
					return err
				}
				defer store.Close()
				if err := store.Migrate(); err != nil {
					return err
				}
			case config.DriverPostgres:
				if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
					return err
				}
			case config.DriverMemory:
				return fmt.Errorf("el driver memory no tiene migraciones")
			default:
				return fmt.Errorf("driver de persistencia desconocido: %q", cfg.Store.Driver)
			}

			log.Info().Str("driver", cfg.Store.Driver).Msg("migraciones aplicadas")
			return nil
		},
	}
}
