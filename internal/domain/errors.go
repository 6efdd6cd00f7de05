package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a códigos de estado con errors.Is, así que los casos de uso
// los envuelven con fmt.Errorf("%w: ...") para dar contexto sin perder la categoría.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrValidation   = errors.New("entrada inválida")
	ErrInvalidState = errors.New("operación no permitida en el estado actual")
	ErrFatalConfig  = errors.New("configuración requerida ausente")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)
