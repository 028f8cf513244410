package vending_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/expendedora/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Buy: casos de error previos al pago
// ──────────────────────────────────────────────────────────────────────────────

func TestBuy_ColumnaInexistente(t *testing.T) {
	rig := newRig(t)

	_, err := rig.machine.Buy(context.Background(), mustValue(t, 7), mustValue(t, 1))

	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, rig.terminal.prompts, "no debe tocarse el terminal si la columna no existe")
	assert.Empty(t, rig.sales.items)
}

func TestBuy_StockInsuficiente(t *testing.T) {
	rig := newRig(t, testProduct(t, 1, "Cola", "1.50", 3))

	_, err := rig.machine.Buy(context.Background(), mustValue(t, 1), mustValue(t, 5))

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, rig.terminal.prompts, "no debe cobrarse una compra que agotaría el stock")
	assert.Equal(t, 3, rig.products.items[1].Quantity.Int(), "el stock no debe cambiar")
}

func TestBuy_AgotarLaColumnaTambienSeRechaza(t *testing.T) {
	// Comprar exactamente todo el stock dejaría la columna a cero, que no es
	// una cantidad representable: la compra se rechaza.
	rig := newRig(t, testProduct(t, 1, "Cola", "1.50", 3))

	_, err := rig.machine.Buy(context.Background(), mustValue(t, 1), mustValue(t, 3))

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, rig.products.items[1].Quantity.Int())
}

// ──────────────────────────────────────────────────────────────────────────────
// Buy: camino feliz y bucle de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestBuy_PagoExactoDecrementaStockYRegistraVenta(t *testing.T) {
	rig := newRig(t, testProduct(t, 1, "Cola", "1.50", 10))
	rig.terminal.steps = []paymentStep{{amount: "1.50"}}

	bought, err := rig.machine.Buy(context.Background(), mustValue(t, 1), mustValue(t, 1))

	require.NoError(t, err)
	assert.Equal(t, 9, bought.Quantity.Int(), "el producto devuelto refleja el stock restante")
	assert.Equal(t, 9, rig.products.items[1].Quantity.Int(), "el stock persistido se decrementa")
	assert.Empty(t, rig.terminal.refunds, "un pago exacto no genera cambio")

	require.Len(t, rig.sales.items, 1, "debe registrarse exactamente una venta")
	sale := rig.sales.items[0]
	assert.NotEmpty(t, sale.ID)
	assert.Equal(t, "Cola", sale.ProductName.String())
	assert.True(t, sale.Price.Decimal().Equal(mustPrice("1.50").Decimal()),
		"la venta registra el total cobrado")
}

func TestBuy_TotalEsPrecioPorCantidad(t *testing.T) {
	rig := newRig(t, testProduct(t, 1, "Cola", "1.50", 10))
	rig.terminal.steps = []paymentStep{{amount: "4.50"}}

	_, err := rig.machine.Buy(context.Background(), mustValue(t, 1), mustValue(t, 3))

	require.NoError(t, err)
	require.Len(t, rig.sales.items, 1)
	assert.True(t, rig.sales.items[0].Price.Decimal().Equal(mustPrice("4.50").Decimal()),
		"tres unidades a 1.50 deben costar 4.50")
	assert.Equal(t, 7, rig.products.items[1].Quantity.Int())
}

func TestBuy_PagoEnVariosPlazosConCambio(t *testing.T) {
	rig := newRig(t, testProduct(t, 1, "Cola", "1.50", 10))
	rig.terminal.steps = []paymentStep{{amount: "1.00"}, {amount: "1.00"}}

	_, err := rig.machine.Buy(context.Background(), mustValue(t, 1), mustValue(t, 1))

	require.NoError(t, err)
	require.Len(t, rig.terminal.refunds, 1, "el sobrante debe devolverse")
	assert.True(t, rig.terminal.refunds[0].Decimal().Equal(mustPrice("0.50").Decimal()),
		"pagar 2.00 por 1.50 devuelve 0.50")
	assert.Contains(t, rig.terminal.prompts[0], "Debes pagar")
	assert.Contains(t, rig.terminal.prompts[1], "Te falta pagar",
		"un pago parcial debe anunciar lo que falta")
}

func TestBuy_ReintentaErroresRecuperablesDelTerminal(t *testing.T) {
	rig := newRig(t, testProduct(t, 1, "Cola", "1.50", 10))
	rig.terminal.steps = []paymentStep{
		{err: errors.New("importe ilegible")},
		{err: errors.New("importe ilegible")},
		{amount: "1.50"},
	}

	_, err := rig.machine.Buy(context.Background(), mustValue(t, 1), mustValue(t, 1))

	require.NoError(t, err, "los fallos recuperables se reintentan hasta cubrir el total")
	assert.Equal(t, 9, rig.products.items[1].Quantity.Int())
}

func TestBuy_TerminalFueraDeServicioAbortaSinEfectos(t *testing.T) {
	rig := newRig(t, testProduct(t, 1, "Cola", "1.50", 10))
	rig.terminal.steps = []paymentStep{
		{amount: "1.00"},
		{err: domain.ErrTerminalUnavailable},
	}

	_, err := rig.machine.Buy(context.Background(), mustValue(t, 1), mustValue(t, 1))

	require.ErrorIs(t, err, domain.ErrTerminalUnavailable)
	assert.Equal(t, 10, rig.products.items[1].Quantity.Int(), "el stock no debe cambiar")
	assert.Empty(t, rig.sales.items, "no debe registrarse venta alguna")
}

func TestBuy_FalloDelRefundPropaga(t *testing.T) {
	rig := newRig(t, testProduct(t, 1, "Cola", "1.50", 10))
	rig.terminal.steps = []paymentStep{{amount: "2.00"}}
	rig.terminal.refundErr = errors.New("dispensador de cambio atascado")

	_, err := rig.machine.Buy(context.Background(), mustValue(t, 1), mustValue(t, 1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "refund")
	assert.Equal(t, 10, rig.products.items[1].Quantity.Int(),
		"un refund fallido no debe consumar la compra")
}

// ──────────────────────────────────────────────────────────────────────────────
// Buy: fallos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

func TestBuy_FalloDeLaTransaccionPropaga(t *testing.T) {
	fp := newFakeProducts(testProduct(t, 1, "Cola", "1.50", 10))
	fs := &fakeSales{}
	ft := &fakeTerminal{steps: []paymentStep{{amount: "1.50"}}}
	machine := newMachineWith(t, fp, fs, ft, &fakeTx{products: fp, sales: fs, runErr: errors.New("conexión perdida")})

	_, err := machine.Buy(context.Background(), mustValue(t, 1), mustValue(t, 1))

	require.Error(t, err)
	assert.Empty(t, fs.items)
}

func TestBuy_FalloAlRegistrarLaVentaPropaga(t *testing.T) {
	fp := newFakeProducts(testProduct(t, 1, "Cola", "1.50", 10))
	fs := &fakeSales{saveErr: errors.New("tabla de ventas llena")}
	ft := &fakeTerminal{steps: []paymentStep{{amount: "1.50"}}}
	machine := newMachineWith(t, fp, fs, ft, &fakeTx{products: fp, sales: fs})

	_, err := machine.Buy(context.Background(), mustValue(t, 1), mustValue(t, 1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "registrar venta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo
// ──────────────────────────────────────────────────────────────────────────────

func TestBuy_EscenarioCompleto(t *testing.T) {
	// El proveedor carga la columna 1, un visitante compra una unidad
	// pagando de más y el admin consulta la venta resultante.
	ctx := context.Background()
	rig := newRig(t)

	supplier := rig.machine.Login(mustName(t, "supplier"), mustPassword(t, "supplier_pass")).Supplier
	require.NoError(t, supplier.Supply(ctx, testProduct(t, 1, "Cola", "1.50", 10)))

	guest := supplier.Logout()
	rig.terminal.steps = []paymentStep{{amount: "2.00"}}

	bought, err := guest.Buy(ctx, mustValue(t, 1), mustValue(t, 1))
	require.NoError(t, err)
	assert.Equal(t, 9, bought.Quantity.Int())
	require.Len(t, rig.terminal.refunds, 1)
	assert.True(t, rig.terminal.refunds[0].Decimal().Equal(mustPrice("0.50").Decimal()))

	adminSession := guest.Login(mustName(t, "admin"), mustPassword(t, "admin_pass")).Admin
	require.NotNil(t, adminSession)

	sales, err := adminSession.SalesReport(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Cola", sales[0].ProductName.String())
	assert.True(t, sales[0].Price.Decimal().Equal(mustPrice("1.50").Decimal()))
}
