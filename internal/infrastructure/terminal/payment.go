// Package terminal implementa el dispositivo de pago sobre la consola: lee
// un importe decimal de la entrada por cada petición e imprime el refund.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/expendedora/internal/application/vending"
	"github.com/jhoicas/expendedora/internal/domain"
	"github.com/jhoicas/expendedora/internal/domain/entity"
)

var _ vending.PaymentTerminal = (*CliPayment)(nil)

// CliPayment terminal de pago por consola.
type CliPayment struct {
	in  *bufio.Reader
	out io.Writer
}

// NewCliPayment construye el terminal sobre los streams dados (stdin/stdout
// en producción, buffers en tests).
func NewCliPayment(in io.Reader, out io.Writer) *CliPayment {
	return &CliPayment{in: bufio.NewReader(in), out: out}
}

// Prompt muestra un mensaje al usuario.
func (t *CliPayment) Prompt(message string) {
	fmt.Fprintln(t.out, message)
}

// Request pide un importe y lo parsea. Un importe mal formado devuelve un
// error de validación (recuperable: el motor lo reintenta); el cierre de la
// entrada devuelve ErrTerminalUnavailable y aborta la operación.
func (t *CliPayment) Request() (entity.Price, error) {
	t.Prompt("Introduce el importe:")
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return entity.Price{}, fmt.Errorf("%w: %v", domain.ErrTerminalUnavailable, err)
	}
	return entity.ParsePrice(strings.TrimSpace(line))
}

// Refund entrega el cambio.
func (t *CliPayment) Refund(amount entity.Price) error {
	_, err := fmt.Fprintf(t.out, "Aquí tienes tu cambio: %s\n", amount)
	return err
}
