package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/expendedora/internal/domain"
)

func TestParseCommand_ResuelvePorPosicion(t *testing.T) {
	cmd, err := parseCommand(menuGuestUnlocked, "1")
	require.NoError(t, err)
	assert.Equal(t, CmdLogin, cmd)

	cmd, err = parseCommand(menuGuestUnlocked, "3")
	require.NoError(t, err)
	assert.Equal(t, CmdBuy, cmd)

	// El mismo número significa cosas distintas según el menú activo.
	cmd, err = parseCommand(menuAdminUnlocked, "1")
	require.NoError(t, err)
	assert.Equal(t, CmdLogout, cmd)
}

func TestParseCommand_RechazaEntradasInvalidas(t *testing.T) {
	cases := []string{"", "0", "9", "-1", "dos", "1.5"}
	for _, line := range cases {
		_, err := parseCommand(menuGuestUnlocked, line)
		assert.ErrorIs(t, err, domain.ErrInvalidCommand, "entrada %q", line)
	}
}

func TestMenus_OfrecenSoloComandosLegales(t *testing.T) {
	assert.NotContains(t, menuGuestLocked, CmdBuy,
		"con la máquina bloqueada no se puede comprar")
	assert.NotContains(t, menuSupplierLocked, CmdSupply,
		"con la máquina bloqueada no se puede reabastecer")
	assert.Contains(t, menuAdminLocked, CmdUnlock)
	assert.NotContains(t, menuAdminLocked, CmdLock)
	assert.Contains(t, menuAdminUnlocked, CmdLock)
	assert.NotContains(t, menuAdminUnlocked, CmdUnlock)

	// Todos los menús permiten salir y listar productos.
	for _, menu := range [][]Command{
		menuGuestUnlocked, menuGuestLocked,
		menuAdminUnlocked, menuAdminLocked,
		menuSupplierUnlocked, menuSupplierLocked,
	} {
		assert.Contains(t, menu, CmdExit)
		assert.Contains(t, menu, CmdListProducts)
	}
}

func TestRenderMenu_NumeraDesdeUno(t *testing.T) {
	out := renderMenu(menuGuestUnlocked)

	assert.Contains(t, out, "1. Iniciar sesión")
	assert.Contains(t, out, "2. Listar productos")
	assert.Contains(t, out, "3. Comprar producto")
	assert.Contains(t, out, "4. Salir")
}
