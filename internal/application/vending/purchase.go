package vending

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/expendedora/internal/domain"
	"github.com/jhoicas/expendedora/internal/domain/entity"
	"github.com/jhoicas/expendedora/internal/domain/repository"
)

// Buy ejecuta el protocolo de compra: búsqueda, guard de stock, bucle de
// pago y persistencia. Solo existe en (Guest, Unlocked). El decremento de
// stock y el alta de la venta van en una sola transacción: una compra nunca
// queda medio aplicada.
func (g *GuestUnlocked) Buy(ctx context.Context, columnID, qty entity.Value) (entity.Product, error) {
	m := g.use()

	product, err := m.products.Find(ctx, columnID)
	if err != nil {
		return entity.Product{}, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return entity.Product{}, domain.ErrProductNotFound
	}

	total, err := entity.PriceFromDecimal(product.Price.Decimal().Mul(decimal.NewFromInt(int64(qty.Int()))))
	if err != nil {
		return entity.Product{}, err
	}

	// El guard rechaza la compra si el stock restante no queda positivo,
	// antes de tocar el terminal o la persistencia.
	remaining, err := entity.ValueFromInt(product.Quantity.Int() - qty.Int())
	if err != nil {
		return entity.Product{}, domain.ErrInsufficientStock
	}

	if err := m.pay(total); err != nil {
		return entity.Product{}, err
	}

	bought := *product
	bought.Quantity = remaining
	sale := entity.Sale{
		ID:          uuid.New().String(),
		Date:        m.now(),
		ProductName: product.Name,
		Price:       total,
	}

	err = m.tx.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		if err := products.Save(ctx, bought); err != nil {
			return fmt.Errorf("guardar producto: %w", err)
		}
		if err := sales.Save(ctx, sale); err != nil {
			return fmt.Errorf("registrar venta: %w", err)
		}
		return nil
	})
	if err != nil {
		return entity.Product{}, err
	}

	m.log.Info().
		Str("columna", columnID.String()).
		Str("cantidad", qty.String()).
		Str("total", total.String()).
		Msg("compra completada")

	return bought, nil
}

// pay ejecuta el bucle de pago: pide importes al terminal y los acumula
// hasta cubrir el total, reintentando los fallos recuperables. El bucle no
// tiene tope de reintentos: solo sale al cubrir el importe o si el terminal
// queda fuera de servicio. El sobrante se devuelve como refund y un fallo
// del refund sí propaga.
func (m *machine) pay(total entity.Price) error {
	m.terminal.Prompt(fmt.Sprintf("Debes pagar: %s", total))

	paid := decimal.Zero
	for {
		amount, err := m.terminal.Request()
		if err != nil {
			if errors.Is(err, domain.ErrTerminalUnavailable) {
				return err
			}
			continue
		}

		paid = paid.Add(amount.Decimal())
		if paid.LessThan(total.Decimal()) {
			m.terminal.Prompt(fmt.Sprintf("Te falta pagar: %s", total.Decimal().Sub(paid)))
			continue
		}

		if change := paid.Sub(total.Decimal()); change.IsPositive() {
			refund, err := entity.PriceFromDecimal(change)
			if err != nil {
				return err
			}
			if err := m.terminal.Refund(refund); err != nil {
				return fmt.Errorf("emitir refund: %w", err)
			}
		}
		return nil
	}
}
