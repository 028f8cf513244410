package entity

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/expendedora/internal/domain"
)

// Value objects del dominio: cada uno se construye únicamente vía su función
// parse, de modo que toda instancia viva cumple su invariante.

// MaxNameLen longitud máxima de un nombre (producto o usuario).
const MaxNameLen = 30

// MinPasswordLen longitud mínima de una contraseña.
const MinPasswordLen = 8

// Name nombre validado: no vacío y de hasta 30 caracteres.
type Name struct {
	value string
}

// ParseName valida y construye un Name.
func ParseName(value string) (Name, error) {
	if value == "" {
		return Name{}, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
	}
	if len(value) > MaxNameLen {
		return Name{}, fmt.Errorf("%w: el nombre supera los %d caracteres", domain.ErrInvalidInput, MaxNameLen)
	}
	return Name{value: value}, nil
}

func (n Name) String() string { return n.value }

// Password contraseña validada: mínimo 8 caracteres. Solo vive durante el
// login; nunca se persiste.
type Password struct {
	value string
}

// ParsePassword valida y construye un Password.
func ParsePassword(value string) (Password, error) {
	if value == "" {
		return Password{}, fmt.Errorf("%w: la contraseña no puede estar vacía", domain.ErrInvalidInput)
	}
	if len(value) < MinPasswordLen {
		return Password{}, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLen)
	}
	return Password{value: value}, nil
}

func (p Password) String() string { return p.value }

// Price precio en moneda decimal, estrictamente positivo.
type Price struct {
	value decimal.Decimal
}

// ParsePrice construye un Price desde texto.
func ParsePrice(value string) (Price, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Price{}, fmt.Errorf("%w: el precio debe ser un número", domain.ErrInvalidInput)
	}
	return PriceFromDecimal(d)
}

// PriceFromDecimal construye un Price desde un decimal ya calculado
// (precio total, refund). Falla si no es positivo.
func PriceFromDecimal(d decimal.Decimal) (Price, error) {
	if !d.IsPositive() {
		return Price{}, fmt.Errorf("%w: el precio debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return Price{value: d}, nil
}

// Decimal devuelve el valor decimal subyacente para cálculos.
func (p Price) Decimal() decimal.Decimal { return p.value }

func (p Price) String() string { return p.value.String() }

// Value entero estrictamente positivo: id de columna y cantidades.
type Value struct {
	value int
}

// ParseValue construye un Value desde texto.
func ParseValue(value string) (Value, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return Value{}, fmt.Errorf("%w: debe ser un número entero", domain.ErrInvalidInput)
	}
	return ValueFromInt(n)
}

// ValueFromInt construye un Value desde un entero con signo. Rechazar n <= 0
// aquí es lo que convierte una resta de stock que agotaría el inventario en
// un fallo antes de intentarla.
func ValueFromInt(n int) (Value, error) {
	if n <= 0 {
		return Value{}, fmt.Errorf("%w: debe ser un entero positivo", domain.ErrInvalidInput)
	}
	return Value{value: n}, nil
}

// Int devuelve el entero subyacente.
func (v Value) Int() int { return v.value }

func (v Value) String() string { return strconv.Itoa(v.value) }
