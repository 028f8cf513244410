package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "expendedora", cfg.App.Name)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "expendedora.db", cfg.Store.SQLitePath)
	assert.Equal(t, "admin", cfg.Accounts.AdminUser)
	assert.Equal(t, "supplier", cfg.Accounts.SupplierUser)
}

func TestLoad_VariablesDeEntornoTienenPrioridad(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/maquina.db")
	t.Setenv("ADMIN_PASSWORD", "otra_clave_larga")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/maquina.db", cfg.Store.SQLitePath)
	assert.Equal(t, "otra_clave_larga", cfg.Accounts.AdminPassword)
}

func TestLoad_ArchivoExplicito(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maquina.env")
	require.NoError(t, os.WriteFile(path,
		[]byte("STORE_DRIVER=sqlite\nSQLITE_PATH=/tmp/archivo.db\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/archivo.db", cfg.Store.SQLitePath)
}

func TestLoad_ArchivoExplicitoInexistenteFalla(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-existe.env"))
	require.Error(t, err)
}

func TestValidate_RechazaDriverDesconocido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store")
}

func TestValidate_RechazaContraseñaCorta(t *testing.T) {
	t.Setenv("SUPPLIER_PASSWORD", "corta")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cuentas")
}

func TestValidate_RechazaEntornoDesconocido(t *testing.T) {
	t.Setenv("APP_ENV", "qa")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app")
}

func TestDSN_CodificaLaContraseña(t *testing.T) {
	db := DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "expendedora",
		SSLMode:  "disable",
	}

	dsn := db.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.NotContains(t, dsn, "p@ss/word", "la contraseña debe ir URL-encoded")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	db := DBConfig{
		DatabaseURL: "postgres://uri/completa",
		Host:        "ignorado",
	}

	assert.Equal(t, "postgres://uri/completa", db.ConnectionString())
}
