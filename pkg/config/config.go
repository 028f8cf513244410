package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Drivers de persistencia soportados.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo .env).
type Config struct {
	App      AppConfig
	Store    StoreConfig
	DB       DBConfig
	Accounts AccountsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string `validate:"oneof=development staging production"`
	Name     string `validate:"required"`
	LogLevel string
}

// StoreConfig selección del backend de persistencia.
type StoreConfig struct {
	Driver     string `validate:"oneof=memory sqlite postgres"`
	SQLitePath string // ruta del archivo sqlite (driver sqlite)
}

// DBConfig configuración de PostgreSQL (driver postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// AccountsConfig tabla fija de credenciales de la máquina. Las contraseñas
// deben cumplir el mínimo de 8 caracteres del dominio.
type AccountsConfig struct {
	AdminUser        string `validate:"required,max=30"`
	AdminPassword    string `validate:"required,min=8"`
	SupplierUser     string `validate:"required,max=30"`
	SupplierPassword string `validate:"required,min=8"`
}

// ConnectionString devuelve el DSN a usar: DatabaseURL si está definido, si
// no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construye el connection string de PostgreSQL con URL encoding para
// caracteres especiales en la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde un archivo .env: el pasado como argumento o, si no, uno en el
// directorio actual). Las env vars tienen prioridad. Nombres esperados:
// APP_ENV, STORE_DRIVER, DB_HOST, ADMIN_USER, etc.
func Load(envFile ...string) (*Config, error) {
	v := viper.New()

	if len(envFile) > 0 && envFile[0] != "" {
		// Archivo pedido explícitamente: su ausencia sí es un error.
		v.SetConfigFile(envFile[0])
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("leer archivo de configuración: %w", err)
		}
	} else {
		// Opcional: archivo .env en el directorio actual
		v.SetConfigName(".env")
		v.SetConfigType("env")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // ignoramos error si no existe
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "expendedora"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver:     getString(v, "STORE_DRIVER", DriverMemory),
			SQLitePath: getString(v, "SQLITE_PATH", "expendedora.db"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "expendedora"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Accounts: AccountsConfig{
			AdminUser:        getString(v, "ADMIN_USER", "admin"),
			AdminPassword:    getString(v, "ADMIN_PASSWORD", "admin_pass"),
			SupplierUser:     getString(v, "SUPPLIER_USER", "supplier"),
			SupplierPassword: getString(v, "SUPPLIER_PASSWORD", "supplier_pass"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate comprueba los invariantes del struct con las tags validate.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c.App); err != nil {
		return fmt.Errorf("configuración de app inválida: %w", err)
	}
	if err := validate.Struct(c.Store); err != nil {
		return fmt.Errorf("configuración de store inválida: %w", err)
	}
	if err := validate.Struct(c.Accounts); err != nil {
		return fmt.Errorf("configuración de cuentas inválida: %w", err)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}
