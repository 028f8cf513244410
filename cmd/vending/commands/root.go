package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/expendedora/pkg/config"
	"github.com/jhoicas/expendedora/pkg/logger"
)

var (
	verbose    bool
	configFile string
)

// Execute ejecuta el comando raíz.
func Execute(ctx context.Context) error {
	return newRootCommand().ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vending",
		Short: "Máquina expendedora con motor de transacciones typestate",
		Long: `Máquina expendedora interactiva por consola. Las operaciones comerciales
(compra, reabastecimiento) están condicionadas por el rol de la sesión
(visitante, administrador, proveedor) y por el candado de mantenimiento.

La configuración se lee de variables de entorno (o archivo .env):
STORE_DRIVER (memory|sqlite|postgres), SQLITE_PATH, DB_*, ADMIN_USER, etc.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "logging detallado")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "archivo .env de configuración")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newMigrateCommand())

	return rootCmd
}

// setup carga configuración y logger compartidos por los subcomandos.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	level := cfg.App.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: level})
	return cfg, log, nil
}
