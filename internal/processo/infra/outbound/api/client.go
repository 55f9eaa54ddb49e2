package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/docgo/processos-console/internal/processo/domain"
)

// limite defensivo no corpo da resposta
const maxCorpoResposta = 8 << 20

// Client fala com a API remota de processos: lista com filtros e tramita.
// O token da sessão corrente é anexado a cada requisição; 401/403 do remoto
// viram ErrSessaoExpirada para o chamador decidir o destino da sessão.
type Client struct {
	http    *http.Client
	base    *url.URL
	session domain.SessionStore
	log     *zap.Logger
}

// Verificação estática
var _ domain.ListFetcher = (*Client)(nil)
var _ domain.Tramitador = (*Client)(nil)

func NewClient(baseURL string, session domain.SessionStore, timeout time.Duration, log *zap.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url base da API inválida: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		base:    base,
		session: session,
		log:     log,
	}, nil
}

// Listar consulta a listagem remota com o FilterSet serializado na query
// string e normaliza a resposta para o formato interno.
func (c *Client) Listar(ctx context.Context, f domain.FilterSet) (*domain.QueryResult, error) {
	endpoint := c.endpoint("processos")
	endpoint.RawQuery = f.QueryValues().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	c.autenticar(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consulta de processos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, domain.ErrSessaoExpirada
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("consulta de processos: status inesperado %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCorpoResposta))
	if err != nil {
		return nil, fmt.Errorf("leitura da resposta de processos: %w", err)
	}

	res, err := normalizarLista(body, f)
	if err != nil {
		return nil, err
	}

	c.log.Debug("listagem remota carregada",
		zap.Int("itens", len(res.Processos)),
		zap.Int("pagina", res.Pagination.CurrentPage),
		zap.Int("total", res.Pagination.TotalItems))
	return res, nil
}

// Tramitar move o processo para outro setor via PATCH no recurso.
func (c *Client) Tramitar(ctx context.Context, processoID int64, novoSetor string, dataTramitacao time.Time) error {
	payload, err := json.Marshal(map[string]string{
		"setor_atual":     novoSetor,
		"data_tramitacao": dataTramitacao.Format(domain.FormatoData),
	})
	if err != nil {
		return err
	}

	endpoint := c.endpoint("processos", strconv.FormatInt(processoID, 10))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.autenticar(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tramitação do processo %d: %w", processoID, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxCorpoResposta))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.ErrSessaoExpirada
	}
	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrProcessoNaoEncontrado
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("tramitação do processo %d: status inesperado %d", processoID, resp.StatusCode)
	}
	return nil
}

func (c *Client) endpoint(partes ...string) *url.URL {
	u := *c.base
	u.Path = path.Join(append([]string{c.base.Path}, partes...)...)
	return &u
}

func (c *Client) autenticar(ctx context.Context, req *http.Request) {
	if c.session == nil {
		return
	}
	s, ok, err := c.session.Atual(ctx)
	if err != nil {
		c.log.Warn("falha ao ler sessão local", zap.Error(err))
		return
	}
	if ok && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
}
