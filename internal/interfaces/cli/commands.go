package cli

import (
	"fmt"
	"strconv"

	"github.com/jhoicas/expendedora/internal/domain"
)

// Command comando de menú. Cada estado (rol, candado) expone su propio
// subconjunto; el número que teclea el usuario es la posición dentro del
// menú de ese estado.
type Command int

const (
	CmdLogin Command = iota
	CmdLogout
	CmdListProducts
	CmdListSales
	CmdBuy
	CmdSupply
	CmdLock
	CmdUnlock
	CmdExit
)

func (c Command) String() string {
	switch c {
	case CmdLogin:
		return "Iniciar sesión"
	case CmdLogout:
		return "Cerrar sesión"
	case CmdListProducts:
		return "Listar productos"
	case CmdListSales:
		return "Listar ventas"
	case CmdBuy:
		return "Comprar producto"
	case CmdSupply:
		return "Reabastecer columna"
	case CmdLock:
		return "Bloquear máquina"
	case CmdUnlock:
		return "Desbloquear máquina"
	case CmdExit:
		return "Salir"
	default:
		return "?"
	}
}

// Menús por estado. La legalidad de cada comando la garantiza el propio
// motor typestate: aquí solo se decide qué se ofrece en pantalla.
var (
	menuGuestUnlocked    = []Command{CmdLogin, CmdListProducts, CmdBuy, CmdExit}
	menuGuestLocked      = []Command{CmdLogin, CmdListProducts, CmdExit}
	menuAdminUnlocked    = []Command{CmdLogout, CmdListProducts, CmdListSales, CmdLock, CmdExit}
	menuAdminLocked      = []Command{CmdLogout, CmdListProducts, CmdListSales, CmdUnlock, CmdExit}
	menuSupplierUnlocked = []Command{CmdLogout, CmdListProducts, CmdSupply, CmdExit}
	menuSupplierLocked   = []Command{CmdLogout, CmdListProducts, CmdExit}
)

// parseCommand resuelve la línea tecleada contra el menú del estado actual.
func parseCommand(menu []Command, line string) (Command, error) {
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(menu) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidCommand, line)
	}
	return menu[n-1], nil
}

// renderMenu formatea el menú numerado de un estado.
func renderMenu(menu []Command) string {
	out := "Elige un comando:\n"
	for i, cmd := range menu {
		out += fmt.Sprintf("%d. %s\n", i+1, cmd)
	}
	return out
}
