package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/Tienda-backoffice/internal/application/session"
	"github.com/jhoicas/Tienda-backoffice/internal/domain"
)

var _ session.TokenIssuer = (*AuthGateway)(nil)

// AuthGateway adaptador del endpoint de emisión de tokens de admin. Lleva su
// propio transporte: es la única llamada sin sesión, y un 401 aquí significa
// credenciales malas, no sesión expirada (por eso no pasa por Client.do).
type AuthGateway struct {
	http *resty.Client
}

// NewAuthGateway construye el adaptador con la misma configuración de red
// que el cliente de recursos.
func NewAuthGateway(cfg Config) *AuthGateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/") + basePath).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &AuthGateway{http: http}
}

// tokenRequest cuerpo del endpoint de tokens.
type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// IssueToken intercambia credenciales por un token opaco. Cualquier fallo
// (credenciales inválidas, red caída, respuesta malformada) se devuelve como
// AuthenticationError con causa legible; nunca toca la sesión existente.
func (g *AuthGateway) IssueToken(ctx context.Context, username, password string) (string, error) {
	resp, err := g.http.R().
		SetContext(ctx).
		SetBody(tokenRequest{Username: username, Password: password}).
		Post("/integration/admin/token")
	if err != nil {
		return "", &domain.AuthenticationError{Cause: "no hubo respuesta de la plataforma", Err: err}
	}
	if resp.IsError() {
		msg := extractMessage(resp.Body())
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d del endpoint de tokens", resp.StatusCode())
		}
		return "", &domain.AuthenticationError{Cause: msg}
	}

	// La plataforma responde el token como string JSON a secas.
	var token string
	if err := json.Unmarshal(resp.Body(), &token); err != nil || token == "" {
		return "", &domain.AuthenticationError{Cause: "respuesta malformada del endpoint de tokens"}
	}
	return token, nil
}
