package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/docgo/processos-console/internal/processo/domain"
)

func abrirBanco(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "kv_test.db"))
	assert.NoError(t, err)
	assert.NoError(t, InitSQLite(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestKVRepo_SetGetRoundTrip(t *testing.T) {
	repo := NewKVRepoSQLite(abrirBanco(t))
	ctx := context.Background()

	original := domain.QueryResult{
		Processos:  []domain.Processo{{ID: 1, NumeroProcesso: "0001/2026", Status: domain.StatusEmAndamento}},
		Pagination: domain.NewPaginationInfo(1, 1, 10),
	}
	assert.NoError(t, repo.Set(ctx, domain.ChaveSnapshot, original, 0))

	var lido domain.QueryResult
	ok, err := repo.Get(ctx, domain.ChaveSnapshot, &lido)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, original, lido)
}

func TestKVRepo_ChaveAusenteEhMiss(t *testing.T) {
	repo := NewKVRepoSQLite(abrirBanco(t))

	var dest int
	ok, err := repo.Get(context.Background(), "inexistente", &dest)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestKVRepo_SetSobrescreveSlot(t *testing.T) {
	repo := NewKVRepoSQLite(abrirBanco(t))
	ctx := context.Background()

	assert.NoError(t, repo.Set(ctx, domain.ChavePorPagina, 10, 0))
	assert.NoError(t, repo.Set(ctx, domain.ChavePorPagina, 30, 0))

	var n int
	ok, err := repo.Get(ctx, domain.ChavePorPagina, &n)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 30, n)
}

func TestKVRepo_SlotExpiradoEhMiss(t *testing.T) {
	db := abrirBanco(t)
	repo := NewKVRepoSQLite(db)
	ctx := context.Background()

	assert.NoError(t, repo.Set(ctx, "chave", "valor", 60))

	// força a expiração direto na tabela, sem esperar o relógio
	passado := time.Now().UTC().Add(-time.Minute).Unix()
	_, err := db.Exec(`UPDATE slots SET expires_at = ? WHERE key = ?`, passado, "chave")
	assert.NoError(t, err)

	var dest string
	ok, err := repo.Get(ctx, "chave", &dest)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestKVRepo_Delete(t *testing.T) {
	repo := NewKVRepoSQLite(abrirBanco(t))
	ctx := context.Background()

	assert.NoError(t, repo.Set(ctx, domain.ChaveSessao, domain.Sessao{Token: "t"}, 0))
	assert.NoError(t, repo.Delete(ctx, domain.ChaveSessao))

	var s domain.Sessao
	ok, err := repo.Get(ctx, domain.ChaveSessao, &s)
	assert.NoError(t, err)
	assert.False(t, ok)
}
