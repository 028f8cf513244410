package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/expendedora/internal/domain"
	"github.com/jhoicas/expendedora/internal/domain/entity"
	"github.com/jhoicas/expendedora/internal/domain/repository"
	"github.com/jhoicas/expendedora/internal/infrastructure/sqlite"
)

// openStore abre una base nueva en un directorio temporal con las
// migraciones aplicadas.
func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "expendedora.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())
	return store
}

func mustValue(t *testing.T, n int) entity.Value {
	t.Helper()
	v, err := entity.ValueFromInt(n)
	require.NoError(t, err)
	return v
}

func sampleProduct(t *testing.T, columnID int, name, price string, qty int) entity.Product {
	t.Helper()
	parsedName, err := entity.ParseName(name)
	require.NoError(t, err)
	parsedPrice, err := entity.ParsePrice(price)
	require.NoError(t, err)
	return entity.Product{
		ColumnID: mustValue(t, columnID),
		Name:     parsedName,
		Price:    parsedPrice,
		Quantity: mustValue(t, qty),
	}
}

func sampleSale(t *testing.T, name, price string, date time.Time) entity.Sale {
	t.Helper()
	parsedName, err := entity.ParseName(name)
	require.NoError(t, err)
	parsedPrice, err := entity.ParsePrice(price)
	require.NoError(t, err)
	return entity.Sale{ID: uuid.New().String(), Date: date, ProductName: parsedName, Price: parsedPrice}
}

func TestOpen_RutaVaciaFalla(t *testing.T) {
	_, err := sqlite.Open(context.Background(), "")
	require.Error(t, err)
}

func TestMigrate_EsIdempotente(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Migrate(), "reaplicar las migraciones no debe fallar")
}

func TestProductRepo_RoundTripYUpsert(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	products := store.Products()

	found, err := products.Find(ctx, mustValue(t, 1))
	require.NoError(t, err)
	assert.Nil(t, found, "una columna ausente es (nil, nil)")

	require.NoError(t, products.Save(ctx, sampleProduct(t, 1, "Cola", "1.50", 10)))
	require.NoError(t, products.Save(ctx, sampleProduct(t, 2, "Agua", "1.00", 20)))

	found, err = products.Find(ctx, mustValue(t, 1))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Cola", found.Name.String())
	assert.True(t, found.Price.Decimal().Equal(sampleProduct(t, 1, "Cola", "1.50", 10).Price.Decimal()))
	assert.Equal(t, 10, found.Quantity.Int())

	// Mismo column_id: reemplazo completo, sin duplicar la fila.
	require.NoError(t, products.Save(ctx, sampleProduct(t, 1, "Cola Zero", "2.00", 5)))

	all, err := products.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Cola Zero", all[0].Name.String())
	assert.Equal(t, 5, all[0].Quantity.Int())
	assert.Equal(t, "Agua", all[1].Name.String())
}

func TestSaleRepo_ResuelveElProductoPorNombre(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.Products().Save(ctx, sampleProduct(t, 1, "Cola", "1.50", 10)))

	date := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Sales().Save(ctx, sampleSale(t, "Cola", "1.50", date)))

	sales, err := store.Sales().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Cola", sales[0].ProductName.String(), "el nombre se resuelve por JOIN")
	assert.True(t, sales[0].Date.Equal(date))
}

func TestSaleRepo_ProductoDesconocidoFalla(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	err := store.Sales().Save(ctx, sampleSale(t, "Fantasma", "1.50", time.Now()))

	require.ErrorIs(t, err, domain.ErrProductNotFound,
		"una venta de un producto inexistente no puede registrarse")
}

func TestTxRunner_CommitPublicaAmbasEscrituras(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.Products().Save(ctx, sampleProduct(t, 1, "Cola", "1.50", 10)))

	err := store.Tx().Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		if err := products.Save(ctx, sampleProduct(t, 1, "Cola", "1.50", 9)); err != nil {
			return err
		}
		return sales.Save(ctx, sampleSale(t, "Cola", "1.50", time.Now()))
	})
	require.NoError(t, err)

	found, err := store.Products().Find(ctx, mustValue(t, 1))
	require.NoError(t, err)
	assert.Equal(t, 9, found.Quantity.Int())

	sales, err := store.Sales().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestTxRunner_UnFalloRevierteTodo(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.Products().Save(ctx, sampleProduct(t, 1, "Cola", "1.50", 10)))

	boom := errors.New("fallo a mitad")
	err := store.Tx().Run(ctx, func(products repository.ProductRepository, _ repository.SaleRepository) error {
		if err := products.Save(ctx, sampleProduct(t, 1, "Cola", "1.50", 9)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	found, err := store.Products().Find(ctx, mustValue(t, 1))
	require.NoError(t, err)
	assert.Equal(t, 10, found.Quantity.Int(), "el rollback debe deshacer el decremento")

	sales, err := store.Sales().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}
