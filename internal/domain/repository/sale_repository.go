package repository

import (
	"context"

	"github.com/jhoicas/expendedora/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (append-only).
type SaleRepository interface {
	Save(ctx context.Context, sale entity.Sale) error
	FindAll(ctx context.Context) ([]entity.Sale, error)
}
