// Package cli implementa el front end de texto de la máquina: un menú
// numerado por cada estado (rol, candado) que lee una línea, la mapea a un
// comando y conduce las operaciones del motor. Todo fallo se muestra sin
// tumbar la sesión; solo Salir (o el cierre de la entrada) la termina.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/expendedora/internal/application/vending"
	"github.com/jhoicas/expendedora/internal/domain/entity"
	"github.com/jhoicas/expendedora/pkg/logger"
)

// errInputClosed la entrada estándar se cerró: la sesión termina.
var errInputClosed = errors.New("entrada cerrada")

// Perspective una vista del terminal ligada a un estado del motor. Run
// atiende comandos hasta producir una transición (devuelve la vista del
// nuevo estado) o la salida.
type Perspective interface {
	Run(ctx context.Context) (next Perspective, exit bool)
}

// Run conduce la sesión interactiva completa desde (Guest, Unlocked).
func Run(ctx context.Context, machine *vending.GuestUnlocked, in io.Reader, out io.Writer, log *logger.Logger) {
	c := &console{in: bufio.NewReader(in), out: out, log: log}
	var p Perspective = &guestUnlockedView{console: c, machine: machine}
	for {
		next, exit := p.Run(ctx)
		if exit {
			c.println("¡Hasta pronto! Gracias por usar la expendedora.")
			return
		}
		p = next
	}
}

// console IO compartido por todas las vistas.
type console struct {
	in  *bufio.Reader
	out io.Writer
	log *logger.Logger
}

func (c *console) println(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *console) printErr(err error) {
	c.log.Debug().Err(err).Msg("error mostrado al usuario")
	fmt.Fprintf(c.out, "Error: %v\n", err)
}

func (c *console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", errInputClosed
	}
	return strings.TrimSpace(line), nil
}

// choose muestra el menú del estado y lee el comando elegido.
func (c *console) choose(menu []Command) (Command, error) {
	line, err := c.readLine(renderMenu(menu))
	if err != nil {
		return 0, err
	}
	return parseCommand(menu, line)
}

// askCredentials pide y valida usuario y contraseña.
func (c *console) askCredentials() (entity.Name, entity.Password, error) {
	user, err := c.readLine("Usuario: ")
	if err != nil {
		return entity.Name{}, entity.Password{}, err
	}
	pass, err := c.readLine("Contraseña: ")
	if err != nil {
		return entity.Name{}, entity.Password{}, err
	}
	username, err := entity.ParseName(user)
	if err != nil {
		return entity.Name{}, entity.Password{}, err
	}
	password, err := entity.ParsePassword(pass)
	if err != nil {
		return entity.Name{}, entity.Password{}, err
	}
	return username, password, nil
}

// askValue pide y valida un entero positivo.
func (c *console) askValue(prompt string) (entity.Value, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return entity.Value{}, err
	}
	return entity.ParseValue(line)
}

type productLister interface {
	Products(ctx context.Context) ([]entity.Product, error)
}

func (c *console) listProducts(ctx context.Context, m productLister) {
	products, err := m.Products(ctx)
	if err != nil {
		c.printErr(err)
		return
	}
	c.println("Productos:")
	for _, p := range products {
		c.println("  " + p.String())
	}
}

type salesLister interface {
	SalesReport(ctx context.Context) ([]entity.Sale, error)
}

func (c *console) listSales(ctx context.Context, m salesLister) {
	sales, err := m.SalesReport(ctx)
	if err != nil {
		c.printErr(err)
		return
	}
	c.println("Informe de ventas:")
	for _, s := range sales {
		c.println("  " + s.String())
	}
}

// ─── Guest ────────────────────────────────────────────────────────────────────

type guestUnlockedView struct {
	*console
	machine *vending.GuestUnlocked
}

func (v *guestUnlockedView) Run(ctx context.Context) (Perspective, bool) {
	for {
		cmd, err := v.choose(menuGuestUnlocked)
		if err != nil {
			if errors.Is(err, errInputClosed) {
				return nil, true
			}
			v.printErr(err)
			continue
		}
		switch cmd {
		case CmdLogin:
			username, password, err := v.askCredentials()
			if err != nil {
				if errors.Is(err, errInputClosed) {
					return nil, true
				}
				v.printErr(err)
				continue
			}
			auth := v.machine.Login(username, password)
			switch {
			case auth.Admin != nil:
				return &adminUnlockedView{console: v.console, machine: auth.Admin}, false
			case auth.Supplier != nil:
				return &supplierUnlockedView{console: v.console, machine: auth.Supplier}, false
			default:
				v.println("Credenciales incorrectas")
			}
		case CmdListProducts:
			v.listProducts(ctx, v.machine)
		case CmdBuy:
			v.buy(ctx)
		case CmdExit:
			return nil, true
		}
	}
}

func (v *guestUnlockedView) buy(ctx context.Context) {
	columnID, err := v.askValue("Número de columna: ")
	if err != nil {
		v.printErr(err)
		return
	}
	qty, err := v.askValue("Cantidad: ")
	if err != nil {
		v.printErr(err)
		return
	}
	product, err := v.machine.Buy(ctx, columnID, qty)
	if err != nil {
		v.printErr(err)
		return
	}
	v.println("Compra realizada: " + product.String())
}

type guestLockedView struct {
	*console
	machine *vending.GuestLocked
}

func (v *guestLockedView) Run(ctx context.Context) (Perspective, bool) {
	for {
		cmd, err := v.choose(menuGuestLocked)
		if err != nil {
			if errors.Is(err, errInputClosed) {
				return nil, true
			}
			v.printErr(err)
			continue
		}
		switch cmd {
		case CmdLogin:
			username, password, err := v.askCredentials()
			if err != nil {
				if errors.Is(err, errInputClosed) {
					return nil, true
				}
				v.printErr(err)
				continue
			}
			auth := v.machine.Login(username, password)
			switch {
			case auth.Admin != nil:
				return &adminLockedView{console: v.console, machine: auth.Admin}, false
			case auth.Supplier != nil:
				return &supplierLockedView{console: v.console, machine: auth.Supplier}, false
			default:
				v.println("Credenciales incorrectas")
			}
		case CmdListProducts:
			v.listProducts(ctx, v.machine)
		case CmdExit:
			return nil, true
		}
	}
}

// ─── Admin ────────────────────────────────────────────────────────────────────

type adminUnlockedView struct {
	*console
	machine *vending.AdminUnlocked
}

func (v *adminUnlockedView) Run(ctx context.Context) (Perspective, bool) {
	for {
		cmd, err := v.choose(menuAdminUnlocked)
		if err != nil {
			if errors.Is(err, errInputClosed) {
				return nil, true
			}
			v.printErr(err)
			continue
		}
		switch cmd {
		case CmdLogout:
			return &guestUnlockedView{console: v.console, machine: v.machine.Logout()}, false
		case CmdListProducts:
			v.listProducts(ctx, v.machine)
		case CmdListSales:
			v.listSales(ctx, v.machine)
		case CmdLock:
			return &adminLockedView{console: v.console, machine: v.machine.Lock()}, false
		case CmdExit:
			return nil, true
		}
	}
}

type adminLockedView struct {
	*console
	machine *vending.AdminLocked
}

func (v *adminLockedView) Run(ctx context.Context) (Perspective, bool) {
	for {
		cmd, err := v.choose(menuAdminLocked)
		if err != nil {
			if errors.Is(err, errInputClosed) {
				return nil, true
			}
			v.printErr(err)
			continue
		}
		switch cmd {
		case CmdLogout:
			return &guestLockedView{console: v.console, machine: v.machine.Logout()}, false
		case CmdListProducts:
			v.listProducts(ctx, v.machine)
		case CmdListSales:
			v.listSales(ctx, v.machine)
		case CmdUnlock:
			return &adminUnlockedView{console: v.console, machine: v.machine.Unlock()}, false
		case CmdExit:
			return nil, true
		}
	}
}

// ─── Supplier ─────────────────────────────────────────────────────────────────

type supplierUnlockedView struct {
	*console
	machine *vending.SupplierUnlocked
}

func (v *supplierUnlockedView) Run(ctx context.Context) (Perspective, bool) {
	for {
		cmd, err := v.choose(menuSupplierUnlocked)
		if err != nil {
			if errors.Is(err, errInputClosed) {
				return nil, true
			}
			v.printErr(err)
			continue
		}
		switch cmd {
		case CmdLogout:
			return &guestUnlockedView{console: v.console, machine: v.machine.Logout()}, false
		case CmdListProducts:
			v.listProducts(ctx, v.machine)
		case CmdSupply:
			v.supply(ctx)
		case CmdExit:
			return nil, true
		}
	}
}

func (v *supplierUnlockedView) supply(ctx context.Context) {
	columnID, err := v.askValue("Número de columna: ")
	if err != nil {
		v.printErr(err)
		return
	}
	rawName, err := v.readLine("Nombre del producto: ")
	if err != nil {
		v.printErr(err)
		return
	}
	name, err := entity.ParseName(rawName)
	if err != nil {
		v.printErr(err)
		return
	}
	rawPrice, err := v.readLine("Precio: ")
	if err != nil {
		v.printErr(err)
		return
	}
	price, err := entity.ParsePrice(rawPrice)
	if err != nil {
		v.printErr(err)
		return
	}
	qty, err := v.askValue("Cantidad: ")
	if err != nil {
		v.printErr(err)
		return
	}

	product := entity.Product{ColumnID: columnID, Name: name, Price: price, Quantity: qty}
	if err := v.machine.Supply(ctx, product); err != nil {
		v.printErr(err)
		return
	}
	v.println("Columna reabastecida: " + product.String())
}

type supplierLockedView struct {
	*console
	machine *vending.SupplierLocked
}

func (v *supplierLockedView) Run(ctx context.Context) (Perspective, bool) {
	for {
		cmd, err := v.choose(menuSupplierLocked)
		if err != nil {
			if errors.Is(err, errInputClosed) {
				return nil, true
			}
			v.printErr(err)
			continue
		}
		switch cmd {
		case CmdLogout:
			return &guestLockedView{console: v.console, machine: v.machine.Logout()}, false
		case CmdListProducts:
			v.listProducts(ctx, v.machine)
		case CmdExit:
			return nil, true
		}
	}
}
