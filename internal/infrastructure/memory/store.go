// Package memory implementa los puertos de persistencia sobre slices en
// proceso. El estado vive lo que el proceso y se pierde al reiniciar.
package memory

import (
	"sync"

	"github.com/jhoicas/expendedora/internal/domain/entity"
)

// state datos crudos sin sincronización; solo se toca con el lock del Store
// tomado (o sobre una copia staging dentro de una transacción).
type state struct {
	products []entity.Product
	sales    []entity.Sale
}

func (s *state) clone() state {
	return state{
		products: append([]entity.Product(nil), s.products...),
		sales:    append([]entity.Sale(nil), s.sales...),
	}
}

func (s *state) findProduct(columnID entity.Value) *entity.Product {
	for i := range s.products {
		if s.products[i].ColumnID.Int() == columnID.Int() {
			p := s.products[i]
			return &p
		}
	}
	return nil
}

func (s *state) saveProduct(product entity.Product) {
	for i := range s.products {
		if s.products[i].ColumnID.Int() == product.ColumnID.Int() {
			s.products[i] = product
			return
		}
	}
	s.products = append(s.products, product)
}

// Store estado en memoria compartido por los repositorios. El lock interno
// serializa la mutación por si varias sesiones compartieran la instancia; el
// motor en sí asume un solo hilo de control.
type Store struct {
	mu sync.Mutex
	st state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{}
}

// Products devuelve el adaptador de productos sobre este store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{store: s} }

// Sales devuelve el adaptador de ventas sobre este store.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{store: s} }

// Tx devuelve el runner transaccional sobre este store.
func (s *Store) Tx() *TxRunner { return &TxRunner{store: s} }
