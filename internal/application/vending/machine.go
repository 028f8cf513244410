package vending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/expendedora/internal/domain/entity"
	"github.com/jhoicas/expendedora/internal/domain/repository"
	"github.com/jhoicas/expendedora/pkg/logger"
)

// El estado del motor es el par (rol, candado), conocido estáticamente: hay
// un tipo concreto por combinación alcanzable y cada operación solo existe
// en los tipos donde es legal. Una transición consume su receptor (el núcleo
// se mueve al valor nuevo y el viejo queda inválido), así que nadie puede
// operar sobre un estado anterior.

// Deps dependencias inyectadas para construir el motor.
type Deps struct {
	Products    repository.ProductRepository
	Sales       repository.SaleRepository
	Terminal    PaymentTerminal
	Tx          TxRunner
	Credentials Credentials
	Logger      *logger.Logger
	Now         func() time.Time // nil => time.Now
}

// machine núcleo compartido por los seis estados. Los handles se mueven de
// un estado al siguiente, nunca se duplican.
type machine struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	terminal PaymentTerminal
	tx       TxRunner
	accounts *accounts
	log      *logger.Logger
	now      func() time.Time
}

// ErrMissingDependency falta una dependencia obligatoria al construir el motor.
var ErrMissingDependency = errors.New("dependencia obligatoria ausente")

// New construye el motor en su estado inicial (Guest, Unlocked).
func New(deps Deps) (*GuestUnlocked, error) {
	switch {
	case deps.Products == nil:
		return nil, fmt.Errorf("%w: ProductRepository", ErrMissingDependency)
	case deps.Sales == nil:
		return nil, fmt.Errorf("%w: SaleRepository", ErrMissingDependency)
	case deps.Terminal == nil:
		return nil, fmt.Errorf("%w: PaymentTerminal", ErrMissingDependency)
	case deps.Tx == nil:
		return nil, fmt.Errorf("%w: TxRunner", ErrMissingDependency)
	case deps.Logger == nil:
		return nil, fmt.Errorf("%w: Logger", ErrMissingDependency)
	}
	acc, err := newAccounts(deps.Credentials)
	if err != nil {
		return nil, err
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	m := &machine{
		products: deps.Products,
		sales:    deps.Sales,
		terminal: deps.Terminal,
		tx:       deps.Tx,
		accounts: acc,
		log:      deps.Logger,
		now:      now,
	}
	return &GuestUnlocked{session{core: m}}, nil
}

// session operaciones comunes a los seis estados y disciplina de movimiento
// del núcleo.
type session struct {
	core *machine
}

// use devuelve el núcleo; entra en pánico si la sesión ya fue consumida por
// una transición.
func (s *session) use() *machine {
	if s.core == nil {
		panic("expendedora: uso de una sesión consumida por una transición anterior")
	}
	return s.core
}

// release mueve el núcleo fuera de la sesión e invalida el receptor.
func (s *session) release() *machine {
	m := s.use()
	s.core = nil
	return m
}

// Products lista todas las columnas. Navegar está permitido en cualquier
// estado, con o sin candado.
func (s *session) Products(ctx context.Context) ([]entity.Product, error) {
	products, err := s.use().products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	return products, nil
}

// adminSession operaciones exclusivas del rol Admin, con cualquier candado.
type adminSession struct {
	session
}

// SalesReport lista todas las ventas registradas.
func (s *adminSession) SalesReport(ctx context.Context) ([]entity.Sale, error) {
	sales, err := s.use().sales.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	return sales, nil
}

// Los seis estados alcanzables.

// GuestUnlocked estado inicial: visitante anónimo, máquina operativa.
type GuestUnlocked struct{ session }

// GuestLocked visitante anónimo con la máquina en mantenimiento.
type GuestLocked struct{ session }

// AdminUnlocked administrador con la máquina operativa.
type AdminUnlocked struct{ adminSession }

// AdminLocked administrador con la máquina en mantenimiento.
type AdminLocked struct{ adminSession }

// supplierSession operaciones del rol Supplier.
type supplierSession struct {
	session
}

// SupplierUnlocked proveedor con la máquina operativa.
type SupplierUnlocked struct{ supplierSession }

// SupplierLocked proveedor con la máquina en mantenimiento.
type SupplierLocked struct{ supplierSession }

func newGuestUnlocked(m *machine) *GuestUnlocked { return &GuestUnlocked{session{core: m}} }
func newGuestLocked(m *machine) *GuestLocked     { return &GuestLocked{session{core: m}} }
func newAdminUnlocked(m *machine) *AdminUnlocked {
	return &AdminUnlocked{adminSession{session{core: m}}}
}
func newAdminLocked(m *machine) *AdminLocked {
	return &AdminLocked{adminSession{session{core: m}}}
}
func newSupplierUnlocked(m *machine) *SupplierUnlocked {
	return &SupplierUnlocked{supplierSession{session{core: m}}}
}
func newSupplierLocked(m *machine) *SupplierLocked {
	return &SupplierLocked{supplierSession{session{core: m}}}
}

// UnlockedAuth resultado de un login sin candado: exactamente uno de los
// campos es no nulo. Un login fallido devuelve la misma sesión Guest.
type UnlockedAuth struct {
	Admin    *AdminUnlocked
	Supplier *SupplierUnlocked
	Guest    *GuestUnlocked
}

// LockedAuth resultado de un login con candado: el candado se hereda tal
// cual, solo cambia el rol.
type LockedAuth struct {
	Admin    *AdminLocked
	Supplier *SupplierLocked
	Guest    *GuestLocked
}

// Login resuelve las credenciales contra la tabla fija. Si coinciden,
// consume la sesión y produce el rol autenticado con el mismo candado; si
// no, la sesión Guest sigue siendo válida y se devuelve sin cambios.
func (g *GuestUnlocked) Login(username entity.Name, password entity.Password) UnlockedAuth {
	m := g.use()
	switch m.accounts.roleFor(username, password) {
	case roleAdmin:
		m = g.release()
		m.log.Info().Str("usuario", username.String()).Str("rol", "admin").Msg("sesión iniciada")
		return UnlockedAuth{Admin: newAdminUnlocked(m)}
	case roleSupplier:
		m = g.release()
		m.log.Info().Str("usuario", username.String()).Str("rol", "supplier").Msg("sesión iniciada")
		return UnlockedAuth{Supplier: newSupplierUnlocked(m)}
	default:
		m.log.Warn().Str("usuario", username.String()).Msg("credenciales rechazadas")
		return UnlockedAuth{Guest: g}
	}
}

// Login versión con candado; ver GuestUnlocked.Login.
func (g *GuestLocked) Login(username entity.Name, password entity.Password) LockedAuth {
	m := g.use()
	switch m.accounts.roleFor(username, password) {
	case roleAdmin:
		m = g.release()
		m.log.Info().Str("usuario", username.String()).Str("rol", "admin").Msg("sesión iniciada")
		return LockedAuth{Admin: newAdminLocked(m)}
	case roleSupplier:
		m = g.release()
		m.log.Info().Str("usuario", username.String()).Str("rol", "supplier").Msg("sesión iniciada")
		return LockedAuth{Supplier: newSupplierLocked(m)}
	default:
		m.log.Warn().Str("usuario", username.String()).Msg("credenciales rechazadas")
		return LockedAuth{Guest: g}
	}
}

// Logout vuelve a Guest conservando el candado.
func (a *AdminUnlocked) Logout() *GuestUnlocked {
	m := a.release()
	m.log.Info().Str("rol", "admin").Msg("sesión cerrada")
	return newGuestUnlocked(m)
}

func (a *AdminLocked) Logout() *GuestLocked {
	m := a.release()
	m.log.Info().Str("rol", "admin").Msg("sesión cerrada")
	return newGuestLocked(m)
}

func (s *SupplierUnlocked) Logout() *GuestUnlocked {
	m := s.release()
	m.log.Info().Str("rol", "supplier").Msg("sesión cerrada")
	return newGuestUnlocked(m)
}

func (s *SupplierLocked) Logout() *GuestLocked {
	m := s.release()
	m.log.Info().Str("rol", "supplier").Msg("sesión cerrada")
	return newGuestLocked(m)
}

// Lock pone la máquina en mantenimiento. Solo Admin conmuta el candado.
func (a *AdminUnlocked) Lock() *AdminLocked {
	m := a.release()
	m.log.Info().Msg("máquina bloqueada para mantenimiento")
	return newAdminLocked(m)
}

// Unlock devuelve la máquina a servicio.
func (a *AdminLocked) Unlock() *AdminUnlocked {
	m := a.release()
	m.log.Info().Msg("máquina desbloqueada")
	return newAdminUnlocked(m)
}

// Supply reemplaza el listado completo de la columna (upsert por ColumnID):
// el proveedor fija el registro autoritativo, no un delta incremental.
func (s *SupplierUnlocked) Supply(ctx context.Context, product entity.Product) error {
	m := s.use()
	if err := m.products.Save(ctx, product); err != nil {
		return fmt.Errorf("guardar producto: %w", err)
	}
	m.log.Info().
		Str("columna", product.ColumnID.String()).
		Str("producto", product.Name.String()).
		Str("stock", product.Quantity.String()).
		Msg("columna reabastecida")
	return nil
}
