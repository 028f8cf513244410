// Package sqlite implementa los puertos de persistencia sobre SQLite
// (driver puro Go) con migraciones embebidas. Es el backend local por
// defecto para una máquina que vive en un solo equipo.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// Driver SQLite
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store conexión SQLite compartida por los repositorios.
type Store struct {
	db *sql.DB
}

// Open abre (o crea) la base en path y verifica la conexión.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("la ruta de la base sqlite es obligatoria")
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir base sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("activar foreign keys: %w", err)
	}

	return &Store{db: db}, nil
}

// Close cierra la conexión.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate aplica las migraciones embebidas pendientes.
func (s *Store) Migrate() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("crear fuente de migraciones: %w", err)
	}
	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("crear driver de migraciones: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("crear instancia de migraciones: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}

// Products devuelve el adaptador de productos sobre este store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{q: s.db} }

// Sales devuelve el adaptador de ventas sobre este store.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{q: s.db} }

// Tx devuelve el runner transaccional sobre este store.
func (s *Store) Tx() *TxRunner { return &TxRunner{db: s.db} }

// querier subconjunto común de *sql.DB y *sql.Tx que usan los repos, para
// poder atarlos a una transacción.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
