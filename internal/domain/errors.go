package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrTerminalUnavailable = errors.New("terminal de pago no disponible")
	ErrInvalidCommand      = errors.New("comando inválido")
)
