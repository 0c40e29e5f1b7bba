package session

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Tienda-backoffice/internal/domain"
	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/Tienda-backoffice/pkg/logger"
)

// State estado del ciclo de vida de la sesión.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

// Broker dueño único de la sesión: emite el login, la restaura desde el
// CredentialStore al arrancar y la invalida ante el primer 401 observado.
//
// La invalidación es inyección explícita de dependencias, no un evento
// global: los gateways reciben el broker en construcción y llaman
// Invalidate directamente; las pantallas se suscriben con OnInvalidate.
//
// Cada sesión instalada abre una época nueva. El token se lee junto con su
// época (Credential) y la invalidación exige la época de origen: dos 401
// concurrentes de la misma época colapsan en una sola difusión, y un 401
// rezagado de una sesión anterior no tumba la sesión creada por un re-login
// posterior.
type Broker struct {
	issuer TokenIssuer
	store  CredentialStore
	log    *logger.Logger

	mu          sync.Mutex
	state       State
	epoch       uint64
	current     *entity.Session
	subscribers []func()
}

// NewBroker construye el broker. store puede ser nil (sesión solo en memoria).
func NewBroker(issuer TokenIssuer, store CredentialStore, log *logger.Logger) *Broker {
	if log == nil {
		log = logger.Nop()
	}
	return &Broker{issuer: issuer, store: store, log: log}
}

// Login llama al endpoint remoto de tokens. En éxito guarda la sesión en
// memoria, la persiste y pasa a Authenticated. En fallo devuelve
// AuthenticationError y NO altera la sesión existente.
func (b *Broker) Login(ctx context.Context, username, password string) (*entity.Session, error) {
	b.mu.Lock()
	prev := b.state
	b.state = Authenticating
	b.mu.Unlock()

	token, err := b.issuer.IssueToken(ctx, username, password)
	if err != nil {
		b.mu.Lock()
		b.state = prev
		b.mu.Unlock()
		if authErr, ok := err.(*domain.AuthenticationError); ok {
			return nil, authErr
		}
		return nil, &domain.AuthenticationError{Cause: err.Error(), Err: err}
	}

	s := &entity.Session{Token: token, Username: username, CreatedAt: time.Now()}

	b.mu.Lock()
	b.current = s
	b.state = Authenticated
	b.epoch++
	b.mu.Unlock()

	if b.store != nil {
		if err := b.store.Save(s); err != nil {
			// La sesión en memoria sigue siendo válida; solo falló la persistencia.
			b.log.Warn().Err(err).Msg("no se pudo persistir la credencial")
		}
	}
	b.log.Info().Str("usuario", username).Msg("sesión iniciada")
	return s, nil
}

// Restore lee la frontera clave-valor al arrancar el proceso. Si hay un
// registro bien formado pasa directo a Authenticated sin tocar la red: la
// vigencia del token se comprueba perezosamente en el primer uso (un 401
// dispara la invalidación normal). Devuelve false si no había nada guardado.
func (b *Broker) Restore() (bool, error) {
	if b.store == nil {
		return false, nil
	}
	s, err := b.store.Load()
	if err != nil {
		return false, err
	}
	if !s.Valid() {
		return false, nil
	}
	b.mu.Lock()
	b.current = s
	b.state = Authenticated
	b.epoch++
	b.mu.Unlock()
	b.log.Debug().Str("usuario", s.Username).Msg("sesión restaurada desde disco")
	return true, nil
}

// Logout limpia el registro persistido y la sesión en memoria. Idempotente:
// sin sesión activa es un no-op, no un error.
func (b *Broker) Logout() error {
	b.mu.Lock()
	had := b.current != nil
	b.current = nil
	b.state = Unauthenticated
	b.mu.Unlock()

	if b.store != nil {
		if err := b.store.Clear(); err != nil {
			return err
		}
	}
	if had {
		b.log.Info().Msg("sesión cerrada")
	}
	return nil
}

// Invalidate señal de expiración: la llama cualquier gateway que observe un
// 401, con la época que leyó junto al token. A lo sumo una difusión por
// época: 401 duplicados de la misma época no vuelven a disparar el
// desmontaje, y un 401 de una época ya cerrada se ignora (la sesión vigente
// es otra).
func (b *Broker) Invalidate(epoch uint64) {
	b.mu.Lock()
	if b.current == nil || b.epoch != epoch {
		b.mu.Unlock()
		return
	}
	b.current = nil
	b.state = Unauthenticated
	subs := make([]func(), len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	// El token expirado no debe resucitar en el próximo arranque: el restore
	// confía sin revalidar.
	if b.store != nil {
		if err := b.store.Clear(); err != nil {
			b.log.Warn().Err(err).Msg("no se pudo limpiar la credencial persistida")
		}
	}

	b.log.Warn().Msg("sesión invalidada por la plataforma (401)")
	for _, fn := range subs {
		fn()
	}
}

// OnInvalidate registra un suscriptor de la señal de invalidación.
// Entrega fire-and-forget, sin payload; cero o más suscriptores.
func (b *Broker) OnInvalidate(fn func()) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.subscribers = append(b.subscribers, fn)
	b.mu.Unlock()
}

// Credential devuelve el token vigente y la época de la sesión que lo
// emitió, o ErrSessionMissing si no hay sesión. Lectura atómica: el par
// token/época siempre es coherente.
func (b *Broker) Credential() (string, uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.current.Valid() {
		return "", 0, domain.ErrSessionMissing
	}
	return b.current.Token, b.epoch, nil
}

// Token devuelve el token actual o ErrSessionMissing si no hay sesión.
func (b *Broker) Token() (string, error) {
	token, _, err := b.Credential()
	return token, err
}

// Session devuelve una copia de la sesión actual, o nil.
func (b *Broker) Session() *entity.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return nil
	}
	s := *b.current
	return &s
}

// State devuelve el estado actual del ciclo de vida.
func (b *Broker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
