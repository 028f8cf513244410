// Package bootstrap construye el grafo de objetos de la aplicación en orden
// explícito de dependencias, con semántica singleton por proceso: cada
// capacidad se construye una vez aquí y el resto del programa solo recibe
// handles.
package bootstrap

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/expendedora/internal/application/vending"
	"github.com/jhoicas/expendedora/internal/domain/repository"
	"github.com/jhoicas/expendedora/internal/infrastructure/memory"
	"github.com/jhoicas/expendedora/internal/infrastructure/postgres"
	"github.com/jhoicas/expendedora/internal/infrastructure/sqlite"
	"github.com/jhoicas/expendedora/internal/infrastructure/terminal"
	"github.com/jhoicas/expendedora/pkg/config"
	"github.com/jhoicas/expendedora/pkg/logger"
)

// App aplicación cableada: el motor en su estado inicial más los streams de
// consola que comparten el front end y el terminal de pago.
type App struct {
	Machine *vending.GuestUnlocked
	Input   io.Reader
	Output  io.Writer

	close func() error
}

// Close libera los recursos del backend.
func (a *App) Close() error {
	return a.close()
}

// Build construye la aplicación completa: backend según configuración,
// terminal de pago por consola y motor en (Guest, Unlocked). El lector de
// stdin es único y compartido para que el menú y el terminal de pago no se
// roben líneas entre sí.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	in := bufio.NewReader(os.Stdin)
	out := os.Stdout

	products, sales, tx, closer, err := buildStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	machine, err := vending.New(vending.Deps{
		Products: products,
		Sales:    sales,
		Terminal: terminal.NewCliPayment(in, out),
		Tx:       tx,
		Credentials: vending.Credentials{
			AdminUser:        cfg.Accounts.AdminUser,
			AdminPassword:    cfg.Accounts.AdminPassword,
			SupplierUser:     cfg.Accounts.SupplierUser,
			SupplierPassword: cfg.Accounts.SupplierPassword,
		},
		Logger: log,
	})
	if err != nil {
		_ = closer()
		return nil, err
	}

	log.Info().Str("driver", cfg.Store.Driver).Msg("motor construido en (Guest, Unlocked)")
	return &App{Machine: machine, Input: in, Output: out, close: closer}, nil
}

func buildStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (
	repository.ProductRepository, repository.SaleRepository, vending.TxRunner, func() error, error,
) {
	noop := func() error { return nil }

	switch cfg.Store.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		return store.Products(), store.Sales(), store.Tx(), noop, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if err := store.Migrate(); err != nil {
			_ = store.Close()
			return nil, nil, nil, nil, err
		}
		log.Debug().Str("path", cfg.Store.SQLitePath).Msg("base sqlite lista")
		return store.Products(), store.Sales(), store.Tx(), store.Close, nil

	case config.DriverPostgres:
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, nil, nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		closer := func() error { pool.Close(); return nil }
		return postgres.NewProductRepository(pool), postgres.NewSaleRepository(pool), postgres.NewTxRunner(pool), closer, nil

	default:
		return nil, nil, nil, nil, fmt.Errorf("driver de persistencia desconocido: %q", cfg.Store.Driver)
	}
}
