package repository

import (
	"context"

	"github.com/jhoicas/expendedora/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Find devuelve (nil, nil) si la columna no existe. Save tiene semántica
// upsert por ColumnID: reemplaza el registro completo o inserta uno nuevo.
type ProductRepository interface {
	Find(ctx context.Context, columnID entity.Value) (*entity.Product, error)
	Save(ctx context.Context, product entity.Product) error
	FindAll(ctx context.Context) ([]entity.Product, error)
}
