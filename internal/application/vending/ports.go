package vending

import (
	"context"

	"github.com/jhoicas/expendedora/internal/domain/entity"
	"github.com/jhoicas/expendedora/internal/domain/repository"
)

// PaymentTerminal puerto del dispositivo de pago. El motor lo consume, no lo
// implementa. Request puede fallar de forma recuperable (se reintenta) o con
// domain.ErrTerminalUnavailable (aborta la operación en curso).
type PaymentTerminal interface {
	Prompt(message string)
	Request() (entity.Price, error)
	Refund(amount entity.Price) error
}

// TxRunner ejecuta fn dentro de una transacción del backend, pasando
// repositorios atados a esa transacción. Garantiza que el decremento de
// stock y el registro de la venta se apliquen juntos o no se apliquen.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
	) error) error
}
