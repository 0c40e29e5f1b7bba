package session

import (
	"context"

	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
)

// TokenIssuer puerto hacia el endpoint remoto de emisión de tokens de admin.
type TokenIssuer interface {
	// IssueToken intercambia credenciales por un token opaco de la plataforma.
	IssueToken(ctx context.Context, username, password string) (string, error)
}

// CredentialStore frontera clave-valor donde se persiste {usuario, token}
// entre reinicios del proceso. Load devuelve nil (sin error) si no hay
// registro guardado.
type CredentialStore interface {
	Load() (*entity.Session, error)
	Save(s *entity.Session) error
	Clear() error
}
