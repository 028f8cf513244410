package entity

import "fmt"

// Product representa una columna de la máquina expendedora.
// ColumnID es la clave de upsert: guardar con un id existente reemplaza el
// registro completo (nombre y precio incluidos, no solo la cantidad).
type Product struct {
	ColumnID Value
	Name     Name
	Price    Price
	Quantity Value
}

func (p Product) String() string {
	return fmt.Sprintf("columna %s | %s | %s | stock %s", p.ColumnID, p.Name, p.Price, p.Quantity)
}
