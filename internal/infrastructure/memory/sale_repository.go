package memory

import (
	"context"

	"github.com/jhoicas/expendedora/internal/domain/entity"
	"github.com/jhoicas/expendedora/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria del puerto SaleRepository (append-only).
type SaleRepo struct {
	store *Store
}

// Save añade la venta al final del listado.
func (r *SaleRepo) Save(_ context.Context, sale entity.Sale) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.st.sales = append(r.store.st.sales, sale)
	return nil
}

// FindAll devuelve una copia del listado en orden de inserción.
func (r *SaleRepo) FindAll(_ context.Context) ([]entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]entity.Sale(nil), r.store.st.sales...), nil
}
