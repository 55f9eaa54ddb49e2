package http

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/docgo/processos-console/internal/processo/domain"
	"github.com/docgo/processos-console/pkg/utils"
)

// SessionWatcher materializa o redirecionamento de login do console: quando o
// remoto invalida a sessão, o flag é armado e as rotas de consulta passam a
// responder 401 até uma nova sessão ser salva.
type SessionWatcher struct {
	expirada atomic.Bool
}

func NewSessionWatcher() *SessionWatcher {
	return &SessionWatcher{}
}

// SessaoExpirada arma o flag. Chamado pelo controller na falha de autenticação.
func (w *SessionWatcher) SessaoExpirada() {
	w.expirada.Store(true)
}

// Rearmar limpa o flag após novo login.
func (w *SessionWatcher) Rearmar() {
	w.expirada.Store(false)
}

func (w *SessionWatcher) Expirada() bool {
	return w.expirada.Load()
}

// Middleware corta as rotas protegidas enquanto a sessão estiver expirada.
func (w *SessionWatcher) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if w.Expirada() {
			utils.SendError(c, http.StatusUnauthorized, "sessão expirada; autentique-se novamente")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Verificação estática
var _ domain.AuthGate = (*SessionWatcher)(nil)
