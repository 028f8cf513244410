package memory

import (
	"context"

	"github.com/jhoicas/expendedora/internal/application/vending"
	"github.com/jhoicas/expendedora/internal/domain/entity"
	"github.com/jhoicas/expendedora/internal/domain/repository"
)

var _ vending.TxRunner = (*TxRunner)(nil)

// TxRunner simula la transacción sobre una copia staging del estado: fn
// trabaja contra la copia y solo si termina sin error la copia sustituye al
// estado visible. Un fallo a mitad no deja mutaciones parciales.
type TxRunner struct {
	store *Store
}

// Run ejecuta fn con repos atados a la copia staging y publica el resultado
// al terminar bien.
func (t *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	sales repository.SaleRepository,
) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	staged := t.store.st.clone()
	if err := fn(&stagedProducts{st: &staged}, &stagedSales{st: &staged}); err != nil {
		return err
	}
	t.store.st = staged
	return nil
}

// stagedProducts opera sobre el estado staging sin tomar el lock (ya lo
// tiene Run).
type stagedProducts struct {
	st *state
}

func (r *stagedProducts) Find(_ context.Context, columnID entity.Value) (*entity.Product, error) {
	return r.st.findProduct(columnID), nil
}

func (r *stagedProducts) Save(_ context.Context, product entity.Product) error {
	r.st.saveProduct(product)
	return nil
}

func (r *stagedProducts) FindAll(_ context.Context) ([]entity.Product, error) {
	return append([]entity.Product(nil), r.st.products...), nil
}

type stagedSales struct {
	st *state
}

func (r *stagedSales) Save(_ context.Context, sale entity.Sale) error {
	r.st.sales = append(r.st.sales, sale)
	return nil
}

func (r *stagedSales) FindAll(_ context.Context) ([]entity.Sale, error) {
	return append([]entity.Sale(nil), r.st.sales...), nil
}
