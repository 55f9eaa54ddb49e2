package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/docgo/processos-console/internal/processo/application"
	"github.com/docgo/processos-console/internal/processo/domain"
	"github.com/docgo/processos-console/pkg/utils"
)

// ProcessoHandler encapsula os endpoints HTTP do console de processos. Cada
// mutação delega ao controller, espera o ciclo de fetch assentar e devolve o
// estado commitado, para o cliente nunca ver resultado intermediário.
type ProcessoHandler struct {
	controller *application.QueryController
	workflow   *application.TramitacaoWorkflow
	stats      *application.StatsAggregator
	session    domain.SessionStore
	watcher    *SessionWatcher
	log        *zap.Logger
}

func NewProcessoHandler(
	controller *application.QueryController,
	workflow *application.TramitacaoWorkflow,
	stats *application.StatsAggregator,
	session domain.SessionStore,
	watcher *SessionWatcher,
	log *zap.Logger,
) *ProcessoHandler {
	return &ProcessoHandler{
		controller: controller,
		workflow:   workflow,
		stats:      stats,
		session:    session,
		watcher:    watcher,
		log:        log,
	}
}

type respostaConsulta struct {
	Resultado  domain.QueryResult `json:"resultado"`
	Carregando bool               `json:"carregando"`
	Avisos     []string           `json:"avisos,omitempty"`
}

func (h *ProcessoHandler) responderEstado(c *gin.Context, avisos ...string) {
	if err := h.controller.AwaitIdle(c.Request.Context()); err != nil {
		utils.SendError(c, http.StatusGatewayTimeout, "tempo esgotado aguardando a consulta")
		return
	}
	est := h.controller.Estado()
	filtrados := avisos[:0]
	for _, a := range avisos {
		if a != "" {
			filtrados = append(filtrados, a)
		}
	}
	utils.SendSuccess(c, http.StatusOK, respostaConsulta{
		Resultado:  est.Resultado,
		Carregando: est.Carregando,
		Avisos:     filtrados,
	})
}

// ---------------- Listagem ----------------

// Listar endpoint GET /processos
func (h *ProcessoHandler) Listar(c *gin.Context) {
	h.responderEstado(c)
}

// Atualizar endpoint POST /processos/atualizar
func (h *ProcessoHandler) Atualizar(c *gin.Context) {
	h.controller.Refetch()
	h.responderEstado(c)
}

// ---------------- Mutações da consulta ----------------

// Buscar endpoint PUT /consulta/busca
func (h *ProcessoHandler) Buscar(c *gin.Context) {
	var req struct {
		Texto string `json:"texto"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	h.controller.Buscar(req.Texto)
	h.responderEstado(c)
}

// Filtrar endpoint PUT /consulta/filtro
func (h *ProcessoHandler) Filtrar(c *gin.Context) {
	var req struct {
		Campo string  `json:"campo" binding:"required"`
		Valor *string `json:"valor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	aviso := h.controller.SetFiltro(domain.FiltroCampo(req.Campo), req.Valor)
	if aviso != "" {
		utils.SendBadRequest(c, aviso)
		return
	}
	h.responderEstado(c)
}

// Periodo endpoint PUT /consulta/periodo
// Campos ausentes ficam como estão; valor null limpa o limite correspondente.
func (h *ProcessoHandler) Periodo(c *gin.Context) {
	var req struct {
		CampoData  *string `json:"campo_data"`
		DataInicio *string `json:"data_inicio"`
		DataFim    *string `json:"data_fim"`
		TemInicio  bool    `json:"alterar_inicio"`
		TemFim     bool    `json:"alterar_fim"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	var avisos []string
	if req.CampoData != nil {
		if aviso := h.controller.SetCampoData(domain.DateField(*req.CampoData)); aviso != "" {
			utils.SendBadRequest(c, aviso)
			return
		}
	}
	if req.TemInicio || req.DataInicio != nil {
		d, err := parseDataOpcional(req.DataInicio)
		if err != nil {
			utils.SendBadRequest(c, "data_inicio inválida, use AAAA-MM-DD")
			return
		}
		if aviso := h.controller.SetDataInicio(d); aviso != "" {
			avisos = append(avisos, aviso)
		}
	}
	if req.TemFim || req.DataFim != nil {
		d, err := parseDataOpcional(req.DataFim)
		if err != nil {
			utils.SendBadRequest(c, "data_fim inválida, use AAAA-MM-DD")
			return
		}
		if aviso := h.controller.SetDataFim(d); aviso != "" {
			avisos = append(avisos, aviso)
		}
	}
	h.responderEstado(c, avisos...)
}

// Ordenar endpoint PUT /consulta/ordenacao
func (h *ProcessoHandler) Ordenar(c *gin.Context) {
	var req struct {
		Campo string `json:"campo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	h.controller.SetOrdenacao(req.Campo)
	h.responderEstado(c)
}

// Paginar endpoint PUT /consulta/pagina
func (h *ProcessoHandler) Paginar(c *gin.Context) {
	var req struct {
		Pagina int `json:"pagina" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	h.controller.IrParaPagina(req.Pagina)
	h.responderEstado(c)
}

// ProximaPagina endpoint POST /consulta/pagina/proxima
func (h *ProcessoHandler) ProximaPagina(c *gin.Context) {
	h.controller.ProximaPagina()
	h.responderEstado(c)
}

// PaginaAnterior endpoint POST /consulta/pagina/anterior
func (h *ProcessoHandler) PaginaAnterior(c *gin.Context) {
	h.controller.PaginaAnterior()
	h.responderEstado(c)
}

// PorPagina endpoint PUT /consulta/por-pagina
func (h *ProcessoHandler) PorPagina(c *gin.Context) {
	var req struct {
		PorPagina int `json:"por_pagina" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if aviso := h.controller.SetPorPagina(req.PorPagina); aviso != "" {
		utils.SendBadRequest(c, aviso)
		return
	}
	h.responderEstado(c)
}

// ---------------- Tramitação ----------------

type respostaTramitacao struct {
	Fase           string           `json:"fase"`
	Processo       *domain.Processo `json:"processo,omitempty"`
	SetorNovo      string           `json:"setor_novo,omitempty"`
	DataTramitacao string           `json:"data_tramitacao,omitempty"`
	Erro           string           `json:"erro,omitempty"`
	Aviso          string           `json:"aviso,omitempty"`
}

func (h *ProcessoHandler) responderTramitacao(c *gin.Context, status int, aviso string) {
	est := h.workflow.Estado()
	resp := respostaTramitacao{
		Fase:      est.Fase.String(),
		Processo:  est.Processo,
		SetorNovo: est.SetorNovo,
		Erro:      est.Erro,
		Aviso:     aviso,
	}
	if est.Fase != application.FaseInativa {
		resp.DataTramitacao = est.DataTramitacao.Format(domain.FormatoData)
	}
	utils.SendSuccess(c, status, resp)
}

// IniciarTramitacao endpoint POST /processos/:id/tramitacao
func (h *ProcessoHandler) IniciarTramitacao(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendBadRequest(c, "id de processo inválido")
		return
	}

	var req struct {
		SetorNovo      string  `json:"setor_novo" binding:"required"`
		DataTramitacao *string `json:"data_tramitacao"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	processo, ok := h.processoCorrente(id)
	if !ok {
		utils.SendNotFound(c, "processo não está na listagem corrente")
		return
	}

	aviso := h.workflow.Iniciar(processo, req.SetorNovo)
	if aviso == "" && req.DataTramitacao != nil {
		d, err := time.Parse(domain.FormatoData, *req.DataTramitacao)
		if err != nil {
			utils.SendBadRequest(c, "data_tramitacao inválida, use AAAA-MM-DD")
			return
		}
		aviso = h.workflow.DefinirData(d)
	}
	h.responderTramitacao(c, http.StatusOK, aviso)
}

// ConfirmarTramitacao endpoint POST /tramitacao/confirmar
func (h *ProcessoHandler) ConfirmarTramitacao(c *gin.Context) {
	aviso := h.workflow.Confirmar(c.Request.Context())
	h.responderTramitacao(c, http.StatusOK, aviso)
}

// CancelarTramitacao endpoint POST /tramitacao/cancelar
func (h *ProcessoHandler) CancelarTramitacao(c *gin.Context) {
	h.workflow.Cancelar()
	h.responderTramitacao(c, http.StatusOK, "")
}

// EstadoTramitacao endpoint GET /tramitacao
func (h *ProcessoHandler) EstadoTramitacao(c *gin.Context) {
	h.responderTramitacao(c, http.StatusOK, "")
}

// ---------------- Estatísticas ----------------

// Estatisticas endpoint GET /estatisticas
// Agrega sobre a lista inteira, sem herdar os filtros correntes da consulta:
// os cartões de resumo contam todos os registros, qualquer que seja a busca.
func (h *ProcessoHandler) Estatisticas(c *gin.Context) {
	stats, err := h.stats.Coletar(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSessaoExpirada) {
			utils.SendError(c, http.StatusUnauthorized, "sessão expirada; autentique-se novamente")
			return
		}
		utils.SendInternalServerError(c, "não foi possível coletar as estatísticas")
		return
	}
	utils.SendSuccess(c, http.StatusOK, stats)
}

// ---------------- Sessão ----------------

// SalvarSessao endpoint PUT /sessao
func (h *ProcessoHandler) SalvarSessao(c *gin.Context) {
	var req domain.Sessao
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.Token == "" {
		utils.SendBadRequest(c, "token é obrigatório")
		return
	}
	if err := h.session.Salvar(c.Request.Context(), req); err != nil {
		utils.SendInternalServerError(c, "não foi possível salvar a sessão")
		return
	}
	h.watcher.Rearmar()
	c.Status(http.StatusNoContent)
}

// EncerrarSessao endpoint DELETE /sessao
func (h *ProcessoHandler) EncerrarSessao(c *gin.Context) {
	if err := h.session.Limpar(c.Request.Context()); err != nil {
		utils.SendInternalServerError(c, "não foi possível encerrar a sessão")
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------- Helpers ----------------

func (h *ProcessoHandler) processoCorrente(id int64) (domain.Processo, bool) {
	est := h.controller.Estado()
	for _, p := range est.Resultado.Processos {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Processo{}, false
}

func parseDataOpcional(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.FormatoData, *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
