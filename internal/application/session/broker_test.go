package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-backoffice/internal/application/session"
	"github.com/jhoicas/Tienda-backoffice/internal/domain"
	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/Tienda-backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeIssuer struct {
	token string
	err   error
	calls int
}

func (f *fakeIssuer) IssueToken(context.Context, string, string) (string, error) {
	f.calls++
	return f.token, f.err
}

type memStore struct {
	mu      sync.Mutex
	session *entity.Session
	saves   int
	clears  int
	loadErr error
	saveErr error
}

func (m *memStore) Load() (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.session, nil
}

func (m *memStore) Save(s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.session = s
	return nil
}

func (m *memStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.session = nil
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestBroker_Login_GuardaYPersisteLaSesion(t *testing.T) {
	store := &memStore{}
	b := session.NewBroker(&fakeIssuer{token: "tok-1"}, store, logger.Nop())

	s, err := b.Login(context.Background(), "admin", "secreto")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "admin", s.Username)
	assert.Equal(t, session.Authenticated, b.State())

	token, err := b.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NotNil(t, store.session, "la credencial se persiste en el login")
	assert.Equal(t, "tok-1", store.session.Token)
}

func TestBroker_LoginFallido_NoTocaLaSesionExistente(t *testing.T) {
	issuer := &fakeIssuer{token: "tok-1"}
	b := session.NewBroker(issuer, nil, logger.Nop())
	_, err := b.Login(context.Background(), "admin", "secreto")
	require.NoError(t, err)

	issuer.err = errors.New("credenciales inválidas")
	_, err = b.Login(context.Background(), "admin", "mala")

	var authErr *domain.AuthenticationError
	require.ErrorAs(t, err, &authErr, "todo fallo de login llega como AuthenticationError")

	token, tokenErr := b.Token()
	require.NoError(t, tokenErr, "la sesión previa sobrevive al login fallido")
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, session.Authenticated, b.State(), "el estado vuelve al que había antes del intento")
}

func TestBroker_Login_PersistenciaFallidaNoRompeLaSesion(t *testing.T) {
	store := &memStore{saveErr: errors.New("disco lleno")}
	b := session.NewBroker(&fakeIssuer{token: "tok-1"}, store, logger.Nop())

	_, err := b.Login(context.Background(), "admin", "secreto")
	require.NoError(t, err, "fallar al persistir no invalida la sesión en memoria")

	token, err := b.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restore
// ──────────────────────────────────────────────────────────────────────────────

func TestBroker_Restore_ConfiaEnElRegistroSinTocarLaRed(t *testing.T) {
	issuer := &fakeIssuer{token: "no-debe-usarse"}
	store := &memStore{session: &entity.Session{
		Token: "tok-guardado", Username: "admin", CreatedAt: time.Now(),
	}}
	b := session.NewBroker(issuer, store, logger.Nop())

	ok, err := b.Restore()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, session.Authenticated, b.State())
	assert.Zero(t, issuer.calls, "restaurar no emite tokens: la vigencia se comprueba en el primer uso")

	token, err := b.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-guardado", token)
}

func TestBroker_Restore_SinRegistroNoAutentica(t *testing.T) {
	b := session.NewBroker(&fakeIssuer{}, &memStore{}, logger.Nop())

	ok, err := b.Restore()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, session.Unauthenticated, b.State())
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout
// ──────────────────────────────────────────────────────────────────────────────

func TestBroker_Logout_EsIdempotente(t *testing.T) {
	store := &memStore{}
	b := session.NewBroker(&fakeIssuer{token: "tok-1"}, store, logger.Nop())
	_, err := b.Login(context.Background(), "admin", "secreto")
	require.NoError(t, err)

	require.NoError(t, b.Logout())
	_, err = b.Token()
	assert.ErrorIs(t, err, domain.ErrSessionMissing)

	require.NoError(t, b.Logout(), "cerrar sesión sin sesión activa es un no-op, no un error")
}

// ──────────────────────────────────────────────────────────────────────────────
// Invalidación
// ──────────────────────────────────────────────────────────────────────────────

func TestBroker_Invalidate_DifundeUnaSolaVez(t *testing.T) {
	store := &memStore{}
	b := session.NewBroker(&fakeIssuer{token: "tok-1"}, store, logger.Nop())
	_, err := b.Login(context.Background(), "admin", "secreto")
	require.NoError(t, err)

	var mu sync.Mutex
	broadcasts := 0
	b.OnInvalidate(func() {
		mu.Lock()
		broadcasts++
		mu.Unlock()
	})

	_, epoch, err := b.Credential()
	require.NoError(t, err)

	// Varios 401 simultáneos de la misma época colapsan en una única difusión.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Invalidate(epoch)
		}()
	}
	wg.Wait()

	mu.Lock()
	assert.Equal(t, 1, broadcasts, "a lo sumo una difusión por expiración")
	mu.Unlock()

	_, err = b.Token()
	assert.ErrorIs(t, err, domain.ErrSessionMissing)
	assert.Nil(t, store.session, "el token expirado no debe resucitar en el próximo arranque")
}

func TestBroker_Invalidate_SinSesionNoHaceNada(t *testing.T) {
	store := &memStore{}
	b := session.NewBroker(&fakeIssuer{}, store, logger.Nop())

	invoked := false
	b.OnInvalidate(func() { invoked = true })
	b.Invalidate(0)

	assert.False(t, invoked, "sin sesión activa no hay nada que invalidar")
	assert.Zero(t, store.clears)
}

// Un 401 rezagado de una sesión anterior no debe tumbar la sesión creada por
// un re-login posterior: la época vieja ya está cerrada.
func TestBroker_Invalidate_EpocaViejaNoTumbaLaSesionNueva(t *testing.T) {
	issuer := &fakeIssuer{token: "tok-1"}
	b := session.NewBroker(issuer, nil, logger.Nop())
	_, err := b.Login(context.Background(), "admin", "secreto")
	require.NoError(t, err)

	_, staleEpoch, err := b.Credential()
	require.NoError(t, err)

	// Expira la primera sesión y se inicia otra.
	b.Invalidate(staleEpoch)
	issuer.token = "tok-2"
	_, err = b.Login(context.Background(), "admin", "secreto")
	require.NoError(t, err)

	invoked := false
	b.OnInvalidate(func() { invoked = true })

	// Llega el 401 rezagado de una petición emitida con el token viejo.
	b.Invalidate(staleEpoch)

	assert.False(t, invoked, "la época vieja no dispara difusión alguna")
	token, err := b.Token()
	require.NoError(t, err, "la sesión nueva sigue viva")
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, session.Authenticated, b.State())
}

func TestBroker_Invalidate_NotificaATodosLosSuscriptores(t *testing.T) {
	b := session.NewBroker(&fakeIssuer{token: "tok-1"}, nil, logger.Nop())
	_, err := b.Login(context.Background(), "admin", "secreto")
	require.NoError(t, err)

	var got []string
	b.OnInvalidate(func() { got = append(got, "pantalla-pedidos") })
	b.OnInvalidate(func() { got = append(got, "pantalla-productos") })

	_, epoch, err := b.Credential()
	require.NoError(t, err)
	b.Invalidate(epoch)
	assert.Equal(t, []string{"pantalla-pedidos", "pantalla-productos"}, got)
}

func TestBroker_Session_DevuelveCopia(t *testing.T) {
	b := session.NewBroker(&fakeIssuer{token: "tok-1"}, nil, logger.Nop())
	_, err := b.Login(context.Background(), "admin", "secreto")
	require.NoError(t, err)

	s := b.Session()
	require.NotNil(t, s)
	s.Token = "mutado"

	token, err := b.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token, "mutar la copia no altera la sesión del broker")
}
