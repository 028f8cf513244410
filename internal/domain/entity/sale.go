package entity

import (
	"fmt"
	"time"
)

// Sale registro inmutable de una compra completada: se crea exactamente una
// vez por compra. ProductName se copia en el momento de la venta (no es una
// clave foránea) y Price es el total efectivamente cobrado.
type Sale struct {
	ID          string
	Date        time.Time
	ProductName Name
	Price       Price
}

func (s Sale) String() string {
	return fmt.Sprintf("%s | %s | %s", s.Date.Format(time.RFC3339), s.ProductName, s.Price)
}
