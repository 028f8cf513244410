package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/expendedora/internal/domain"
	"github.com/jhoicas/expendedora/internal/domain/entity"
	"github.com/jhoicas/expendedora/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre la tabla
// sale(id, date, price, product_id). La venta guarda el nombre del producto
// por referencia a product en el momento de leer (JOIN), y lo resuelve a
// product_id por nombre en el momento de escribir.
type SaleRepo struct {
	q querier
}

// Save resuelve el product_id por nombre y registra la venta.
func (r *SaleRepo) Save(ctx context.Context, sale entity.Sale) error {
	var productID int64
	err := r.q.QueryRowContext(ctx,
		`SELECT column_id FROM product WHERE name = ?`, sale.ProductName.String(),
	).Scan(&productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("resolver producto de la venta: %w", domain.ErrProductNotFound)
		}
		return fmt.Errorf("resolver producto de la venta: %w", err)
	}

	_, err = r.q.ExecContext(ctx,
		`INSERT INTO sale (id, date, price, product_id) VALUES (?, ?, ?, ?)`,
		sale.ID, sale.Date.UTC().Format(time.RFC3339Nano), sale.Price.Decimal(), productID,
	)
	if err != nil {
		return fmt.Errorf("registrar venta: %w", err)
	}
	return nil
}

// FindAll lista las ventas con el nombre del producto resuelto por JOIN,
// en orden cronológico de registro.
func (r *SaleRepo) FindAll(ctx context.Context) ([]entity.Sale, error) {
	query := `
		SELECT s.id, s.date, s.price, p.name
		FROM sale s
		JOIN product p ON p.column_id = s.product_id
		ORDER BY s.date`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	defer rows.Close()

	var list []entity.Sale
	for rows.Next() {
		var (
			id      string
			rawDate string
			price   decimal.Decimal
			name    string
		)
		if err := rows.Scan(&id, &rawDate, &price, &name); err != nil {
			return nil, fmt.Errorf("escanear venta: %w", err)
		}
		date, err := time.Parse(time.RFC3339Nano, rawDate)
		if err != nil {
			return nil, fmt.Errorf("fecha de venta inválida: %w", err)
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
