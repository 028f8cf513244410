package memory

import (
	"context"

	"github.com/jhoicas/expendedora/internal/domain/entity"
	"github.com/jhoicas/expendedora/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria del puerto ProductRepository.
type ProductRepo struct {
	store *Store
}

// Find devuelve (nil, nil) si la columna no existe.
func (r *ProductRepo) Find(_ context.Context, columnID entity.Value) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.st.findProduct(columnID), nil
}

// Save upsert por ColumnID: reemplaza el registro completo o lo añade.
func (r *ProductRepo) Save(_ context.Context, product entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.st.saveProduct(product)
	return nil
}

// FindAll devuelve una copia del listado.
func (r *ProductRepo) FindAll(_ context.Context) ([]entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]entity.Product(nil), r.store.st.products...), nil
}
