package vending

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/expendedora/internal/domain/entity"
)

// Credentials tabla fija de dos cuentas (admin y supplier). Los valores
// llegan de la configuración; el motor nunca muta credenciales.
type Credentials struct {
	AdminUser        string
	AdminPassword    string
	SupplierUser     string
	SupplierPassword string
}

type role int

const (
	roleNone role = iota
	roleAdmin
	roleSupplier
)

// accounts guarda los hashes bcrypt de la tabla de credenciales. Las
// contraseñas en claro se descartan tras construirlo.
type accounts struct {
	adminUser    string
	adminHash    []byte
	supplierUser string
	supplierHash []byte
}

func newAccounts(creds Credentials) (*accounts, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(creds.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash credencial admin: %w", err)
	}
	supplierHash, err := bcrypt.GenerateFromPassword([]byte(creds.SupplierPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash credencial supplier: %w", err)
	}
	return &accounts{
		adminUser:    creds.AdminUser,
		adminHash:    adminHash,
		supplierUser: creds.SupplierUser,
		supplierHash: supplierHash,
	}, nil
}

// roleFor resuelve el rol de unas credenciales. Cualquier combinación que no
// coincida con la tabla resuelve a roleNone: no es un error, es el resultado
// negativo normal del login.
func (a *accounts) roleFor(username entity.Name, password entity.Password) role {
	switch username.String() {
	case a.adminUser:
		if bcrypt.CompareHashAndPassword(a.adminHash, []byte(password.String())) == nil {
			return roleAdmin
		}
	case a.supplierUser:
		if bcrypt.CompareHashAndPassword(a.supplierHash, []byte(password.String())) == nil {
			return roleSupplier
		}
	}
	return roleNone
}
