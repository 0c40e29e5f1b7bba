package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio del acceso remoto (sin dependencias externas).
var (
	// ErrSessionMissing operación que requiere sesión sin sesión activa.
	ErrSessionMissing = errors.New("no hay sesión activa")
	// ErrSessionExpired la plataforma respondió 401 a mitad de operación.
	// Quien lo recibe no debe reintentar: la sesión ya fue invalidada.
	ErrSessionExpired = errors.New("la sesión expiró")
	// ErrUnreachable no se recibió respuesta de la plataforma.
	ErrUnreachable = errors.New("plataforma inalcanzable")
)

// AuthenticationError fallo de login: credenciales inválidas, red caída o
// respuesta malformada del endpoint de tokens. Cause es legible para el usuario.
type AuthenticationError struct {
	Cause string
	Err   error
}

func (e *AuthenticationError) Error() string {
	if e.Cause != "" {
		return "autenticación fallida: " + e.Cause
	}
	return "autenticación fallida"
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// RemoteError rechazo de la plataforma (4xx/5xx distinto de 401) con el
// mensaje extraído del cuerpo de error cuando existe.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("la plataforma rechazó la operación (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("la plataforma rechazó la operación (HTTP %d)", e.Status)
}
