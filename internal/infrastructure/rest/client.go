// Package rest implementa los gateways de recursos sobre el API REST de la
// plataforma de comercio. Un único cliente HTTP compartido adjunta el token
// de la sesión, compila las intenciones de listado al dialecto searchCriteria
// y clasifica los fallos según la taxonomía de internal/domain.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/Tienda-backoffice/internal/domain"
	"github.com/jhoicas/Tienda-backoffice/pkg/logger"
)

// basePath prefijo REST de la plataforma.
const basePath = "/rest/V1"

// SessionSource lo que el cliente necesita del SessionBroker: leer el token
// vigente junto con la época de su sesión, y disparar la invalidación de esa
// época al observar un 401. El broker se inyecta en construcción; no hay
// estado global.
type SessionSource interface {
	// Credential devuelve el token vigente y la época de la sesión que lo
	// emitió, o ErrSessionMissing si no hay sesión.
	Credential() (token string, epoch uint64, err error)
	// Invalidate invalida la sesión solo si sigue en la época indicada.
	Invalidate(epoch uint64)
}

// Config parámetros del cliente HTTP.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client cliente HTTP compartido por todos los gateways.
type Client struct {
	http    *resty.Client
	session SessionSource
	log     *logger.Logger
}

// NewClient construye el cliente. log puede ser nil.
func NewClient(cfg Config, session SessionSource, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/") + basePath).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: http, session: session, log: log}
}

// get ejecuta un GET autenticado con query params opcionales.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, resty.MethodGet, path, query, nil, out)
}

// post ejecuta un POST autenticado con cuerpo JSON.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, resty.MethodPost, path, nil, body, out)
}

// put ejecuta un PUT autenticado con cuerpo JSON.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, resty.MethodPut, path, nil, body, out)
}

// delete ejecuta un DELETE autenticado.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, resty.MethodDelete, path, nil, nil, nil)
}

// do núcleo de toda llamada autenticada:
//  1. exige sesión activa (ErrSessionMissing si no hay),
//  2. adjunta el token como credencial Bearer y recuerda la época de la
//     sesión que lo emitió,
//  3. clasifica la respuesta: 401 -> invalida esa época (una sola difusión;
//     un 401 rezagado de una sesión anterior no tumba la actual) y devuelve
//     ErrSessionExpired; cualquier otro 4xx/5xx -> RemoteError con el
//     mensaje del cuerpo; sin respuesta -> ErrUnreachable.
//
// Sin reintentos: toda política de recuperación es del llamador, salvo para
// ErrSessionExpired, que nadie debe reintentar.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, epoch, err := c.session.Credential()
	if err != nil {
		return err
	}

	req := c.http.R().SetContext(ctx).SetAuthToken(token)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("petición cancelada: %w", ctx.Err())
		}
		return fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}

	status := resp.StatusCode()
	switch {
	case status == 401:
		c.session.Invalidate(epoch)
		return domain.ErrSessionExpired
	case status >= 400:
		remoteErr := &domain.RemoteError{Status: status, Message: extractMessage(resp.Body())}
		c.log.Debug().Int("status", status).Str("path", path).Str("mensaje", remoteErr.Message).
			Msg("operación rechazada por la plataforma")
		return remoteErr
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decodificar respuesta de %s: %w", path, err)
		}
	}
	c.log.Trace().Str("metodo", method).Str("path", path).Int("status", status).Msg("llamada completada")
	return nil
}

// isNotFound indica si el error es un rechazo remoto 404. Los Get lo
// traducen a nil sin error (ausencia); para el resto de operaciones el
// RemoteError sube tal cual, con el mensaje de la plataforma.
func isNotFound(err error) bool {
	var remote *domain.RemoteError
	return errors.As(err, &remote) && remote.Status == 404
}

// platformError cuerpo de error estándar de la plataforma.
// Los placeholders %1..%n se sustituyen con parameters cuando vienen.
type platformError struct {
	Message    string `json:"message"`
	Parameters []any  `json:"parameters"`
}

// extractMessage saca el mensaje legible del cuerpo de error; cadena vacía
// si el cuerpo no tiene la forma esperada.
func extractMessage(body []byte) string {
	var pe platformError
	if err := json.Unmarshal(body, &pe); err != nil || pe.Message == "" {
		return ""
	}
	msg := pe.Message
	for i, p := range pe.Parameters {
		placeholder := fmt.Sprintf("%%%d", i+1)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprint(p))
	}
	return msg
}
