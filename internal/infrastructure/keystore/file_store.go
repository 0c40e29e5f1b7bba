// Package keystore persiste la credencial de sesión en un archivo JSON local.
// Es la implementación de la frontera clave-valor que usa el SessionBroker:
// un único registro {usuario, token}, nada más.
package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/Tienda-backoffice/internal/application/session"
	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
)

var _ session.CredentialStore = (*FileStore)(nil)

// FileStore guarda la credencial en un archivo con permisos 0600.
type FileStore struct {
	path string
}

// NewFileStore construye el almacén sobre la ruta dada.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// credentialRecord forma en disco del registro.
type credentialRecord struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Load lee la credencial guardada. Devuelve nil sin error si el archivo no
// existe o está malformado (un registro corrupto equivale a no tener sesión).
func (s *FileStore) Load() (*entity.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer credencial: %w", err)
	}
	var rec credentialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil
	}
	if rec.Token == "" {
		return nil, nil
	}
	return &entity.Session{Token: rec.Token, Username: rec.Username, CreatedAt: rec.CreatedAt}, nil
}

// Save persiste la credencial (crea el directorio si hace falta).
func (s *FileStore) Save(sess *entity.Session) error {
	if !sess.Valid() {
		return fmt.Errorf("sesión inválida, no se persiste")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("crear directorio de credenciales: %w", err)
		}
	}
	data, err := json.Marshal(credentialRecord{
		Username:  sess.Username,
		Token:     sess.Token,
		CreatedAt: sess.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("serializar credencial: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("escribir credencial: %w", err)
	}
	return nil
}

// Clear elimina el registro. Idempotente: si no existe, no es error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("eliminar credencial: %w", err)
	}
	return nil
}
