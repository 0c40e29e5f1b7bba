package keystore_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/Tienda-backoffice/internal/infrastructure/keystore"
)

func TestFileStore_GuardaYRecupera(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "credentials.json")
	store := keystore.NewFileStore(path)

	saved := &entity.Session{
		Token: "tok-1", Username: "admin",
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(saved), "Save crea el directorio si hace falta")

	got, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok-1", got.Token)
	assert.Equal(t, "admin", got.Username)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(),
			"la credencial solo debe ser legible por el dueño")
	}
}

func TestFileStore_SinArchivoDevuelveNilSinError(t *testing.T) {
	store := keystore.NewFileStore(filepath.Join(t.TempDir(), "no-existe.json"))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStore_ArchivoCorruptoEquivaleASinSesion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{esto no es json"), 0o600))

	got, err := keystore.NewFileStore(path).Load()
	require.NoError(t, err, "un registro corrupto no es un fallo, es ausencia de sesión")
	assert.Nil(t, got)
}

func TestFileStore_RegistroSinTokenEquivaleASinSesion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"admin","token":""}`), 0o600))

	got, err := keystore.NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStore_ClearEsIdempotente(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := keystore.NewFileStore(path)
	require.NoError(t, store.Save(&entity.Session{Token: "tok-1", Username: "admin", CreatedAt: time.Now()}))

	require.NoError(t, store.Clear())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, store.Clear(), "limpiar dos veces no es error")
}

func TestFileStore_NoPersisteSesionesInvalidas(t *testing.T) {
	store := keystore.NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	assert.Error(t, store.Save(&entity.Session{Token: "", Username: "admin"}))
	assert.Error(t, store.Save(nil))
}
