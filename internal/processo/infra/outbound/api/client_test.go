package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/docgo/processos-console/internal/processo/domain"
	"github.com/docgo/processos-console/internal/processo/infra/outbound/session"
	"github.com/docgo/processos-console/tests/mocks"
)

func montarCliente(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	kv := mocks.NewDummyCache()
	sess := session.NewKVSessionStore(kv)
	assert.NoError(t, sess.Salvar(context.Background(), domain.Sessao{Token: "tok-123", Usuario: "maria"}))

	c, err := NewClient(srv.URL, sess, 5*time.Second, zap.NewNop())
	assert.NoError(t, err)
	return c
}

func TestListar_QueryETokenNaRequisicao(t *testing.T) {
	var recebida *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recebida = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"rows": [{"id": 1}], "count": 1}`)
	}))
	defer srv.Close()

	c := montarCliente(t, srv)

	f := domain.NewFilterSet(10)
	f.Setor = strPtr("Financeiro")
	res, err := c.Listar(context.Background(), f)
	assert.NoError(t, err)
	assert.Len(t, res.Processos, 1)

	assert.Equal(t, "/processos", recebida.URL.Path)
	assert.Equal(t, "Bearer tok-123", recebida.Header.Get("Authorization"))

	q := recebida.URL.Query()
	assert.Equal(t, "Financeiro", q.Get("setor"))
	assert.Equal(t, "em_andamento", q.Get("status"))
	assert.Equal(t, "data_entrada", q.Get("dateField"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "10", q.Get("limit"))
}

func TestListar_NaoAutorizadoViraSessaoExpirada(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		c := montarCliente(t, srv)

		_, err := c.Listar(context.Background(), domain.NewFilterSet(10))
		assert.ErrorIs(t, err, domain.ErrSessaoExpirada, "status %d", status)
		srv.Close()
	}
}

func TestListar_StatusInesperadoEhErroComum(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := montarCliente(t, srv)
	_, err := c.Listar(context.Background(), domain.NewFilterSet(10))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessaoExpirada)
}

func TestTramitar_EnviaPatchComSetorEData(t *testing.T) {
	var metodo, caminho string
	var corpo map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metodo = r.Method
		caminho = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&corpo))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := montarCliente(t, srv)
	data := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	err := c.Tramitar(context.Background(), 42, "Financeiro", data)
	assert.NoError(t, err)

	assert.Equal(t, http.MethodPatch, metodo)
	assert.Equal(t, "/processos/42", caminho)
	assert.Equal(t, "Financeiro", corpo["setor_atual"])
	assert.Equal(t, "2026-08-30", corpo["data_tramitacao"])
}

func TestTramitar_NaoEncontrado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := montarCliente(t, srv)
	err := c.Tramitar(context.Background(), 99, "Financeiro", time.Now())
	assert.ErrorIs(t, err, domain.ErrProcessoNaoEncontrado)
}

func strPtr(s string) *string { return &s }
