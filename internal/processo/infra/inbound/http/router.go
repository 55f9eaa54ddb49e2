package http

import "github.com/gin-gonic/gin"

func RegisterProcessoRoutes(r *gin.Engine, handler *ProcessoHandler, watcher *SessionWatcher) {
	sessao := r.Group("/sessao")
	{
		sessao.PUT("/", handler.SalvarSessao)
		sessao.DELETE("/", handler.EncerrarSessao)
	}

	protegido := r.Group("/", watcher.Middleware())
	{
		processos := protegido.Group("/processos")
		{
			processos.GET("/", handler.Listar)
			processos.POST("/atualizar", handler.Atualizar)
			processos.POST("/:id/tramitacao", handler.IniciarTramitacao)
		}

		consulta := protegido.Group("/consulta")
		{
			consulta.PUT("/busca", handler.Buscar)
			consulta.PUT("/filtro", handler.Filtrar)
			consulta.PUT("/periodo", handler.Periodo)
			consulta.PUT("/ordenacao", handler.Ordenar)
			consulta.PUT("/pagina", handler.Paginar)
			consulta.POST("/pagina/proxima", handler.ProximaPagina)
			consulta.POST("/pagina/anterior", handler.PaginaAnterior)
			consulta.PUT("/por-pagina", handler.PorPagina)
		}

		tramitacao := protegido.Group("/tramitacao")
		{
			tramitacao.GET("/", handler.EstadoTramitacao)
			tramitacao.POST("/confirmar", handler.ConfirmarTramitacao)
			tramitacao.POST("/cancelar", handler.CancelarTramitacao)
		}

		protegido.GET("/estatisticas", handler.Estatisticas)
	}
}
