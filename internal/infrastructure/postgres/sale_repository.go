package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/expendedora/internal/domain"
	"github.com/jhoicas/expendedora/internal/domain/entity"
	"github.com/jhoicas/expendedora/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL. El
// product_id se resuelve por nombre al escribir y el nombre se recupera por
// JOIN al leer.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx
// (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Save resuelve el product_id por nombre y registra la venta.
func (r *SaleRepo) Save(ctx context.Context, sale entity.Sale) error {
	var productID int64
	err := r.q.QueryRow(ctx,
		`SELECT column_id FROM product WHERE name = $1`, sale.ProductName.String(),
	).Scan(&productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("resolver producto de la venta: %w", domain.ErrProductNotFound)
		}
		return fmt.Errorf("resolver producto de la venta: %w", err)
	}

	_, err = r.q.Exec(ctx,
		`INSERT INTO sale (id, date, price, product_id) VALUES ($1, $2, $3, $4)`,
		sale.ID, sale.Date.UTC(), sale.Price.Decimal(), productID,
	)
	if err != nil {
		return fmt.Errorf("registrar venta: %w", err)
	}
	return nil
}

// FindAll lista las ventas con el nombre del producto resuelto por JOIN,
// en orden cronológico.
func (r *SaleRepo) FindAll(ctx context.Context) ([]entity.Sale, error) {
	query := `
		SELECT s.id, s.date, s.price, p.name
		FROM sale s
		JOIN product p ON p.column_id = s.product_id
		ORDER BY s.date`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	defer rows.Close()

	var list []entity.Sale
	for rows.Next() {
		var (
			id    string
			date  time.Time
			price decimal.Decimal
			name  string
		)
		if err := rows.Scan(&id, &date, &price, &name); err != nil {
			return nil, fmt.Errorf("escanear venta: %w", err)
		}
		productName, err := entity.ParseName(name)
		if err != nil {
			return nil, fmt.Errorf("nombre de producto inválido: %w", err)
		}
		salePrice, err := entity.PriceFromDecimal(price)
		if err != nil {
			return nil, fmt.Errorf("precio de venta inválido: %w", err)
		}
		list = append(list, entity.Sale{ID: id, Date: date, ProductName: productName, Price: salePrice})
	}
	return list, rows.Err()
}
