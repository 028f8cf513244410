package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/expendedora/internal/domain/entity"
	"github.com/jhoicas/expendedora/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre la tabla
// product(column_id, name, price, quantity). Usable con db o tx (querier).
type ProductRepo struct {
	q querier
}

// rowToProduct reconstruye la entidad pasando cada columna por su función
// parse: una fila corrupta no entra al dominio.
func rowToProduct(columnID int64, name string, price decimal.Decimal, quantity int64) (entity.Product, error) {
	id, err := entity.ValueFromInt(int(columnID))
	if err != nil {
		return entity.Product{}, fmt.Errorf("column_id inválido: %w", err)
	}
	n, err := entity.ParseName(name)
	if err != nil {
		return entity.Product{}, fmt.Errorf("nombre inválido: %w", err)
	}
	p, err := entity.PriceFromDecimal(price)
	if err != nil {
		return entity.Product{}, fmt.Errorf("precio inválido: %w", err)
	}
	qty, err := entity.ValueFromInt(int(quantity))
	if err != nil {
		return entity.Product{}, fmt.Errorf("cantidad inválida: %w", err)
	}
	return entity.Product{ColumnID: id, Name: n, Price: p, Quantity: qty}, nil
}

// Find devuelve (nil, nil) si la columna no existe.
func (r *ProductRepo) Find(ctx context.Context, columnID entity.Value) (*entity.Product, error) {
	query := `SELECT column_id, name, price, quantity FROM product WHERE column_id = ?`

	var (
		rawID    int64
		name     string
		price    decimal.Decimal
		quantity int64
	)
	err := r.q.QueryRowContext(ctx, query, columnID.Int()).Scan(&rawID, &name, &price, &quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	product, err := rowToProduct(rawID, name, price, quantity)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Save upsert por column_id: reemplaza el registro completo o inserta.
func (r *ProductRepo) Save(ctx context.Context, product entity.Product) error {
	query := `
		INSERT INTO product (column_id, name, price, quantity)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (column_id) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			quantity = excluded.quantity`
	_, err := r.q.ExecContext(ctx, query,
		product.ColumnID.Int(), product.Name.String(), product.Price.Decimal(), product.Quantity.Int(),
	)
	if err != nil {
		return fmt.Errorf("guardar producto: %w", err)
	}
	return nil
}

// FindAll lista todas las columnas ordenadas por column_id.
func (r *ProductRepo) FindAll(ctx context.Context) ([]entity.Product, error) {
	query := `SELECT column_id, name, price, quantity FROM product ORDER BY column_id`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()

	var list []entity.Product
	for rows.Next() {
		var (
			rawID    int64
			name     string
			price    decimal.Decimal
			quantity int64
		)
		if err := rows.Scan(&rawID, &name, &price, &quantity); err != nil {
			return nil, fmt.Errorf("escanear producto: %w", err)
		}
		product, err := rowToProduct(rawID, name, price, quantity)
		if err != nil {
			return nil, err
		}
		list = append(list, product)
	}
	return list, rows.Err()
}
