package notify

import (
	"go.uber.org/zap"

	"github.com/docgo/processos-console/internal/processo/domain"
)

// LogNotifier encaminha os avisos de usuário para o log estruturado. Em um
// front acoplado, o Notifier vira o toast da interface; aqui os avisos ficam
// visíveis no log do serviço.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notificar(nivel domain.NivelAviso, msg string) {
	switch nivel {
	case domain.AvisoErro:
		n.log.Warn("aviso ao usuário", zap.String("mensagem", msg))
	default:
		n.log.Info("aviso ao usuário", zap.String("mensagem", msg))
	}
}

// Verificação estática
var _ domain.Notifier = (*LogNotifier)(nil)
