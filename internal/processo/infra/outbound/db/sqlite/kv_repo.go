package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	// _ "github.com/mattn/go-sqlite3" // melhor desempenho, mas exige gcc
	_ "modernc.org/sqlite"

	"github.com/docgo/processos-console/internal/processo/domain"
)

// KVRepoSQLite persiste os slots chave-valor do console em SQLite, para que o
// snapshot da listagem e as preferências sobrevivam a reinícios sem depender
// de Redis.
type KVRepoSQLite struct {
	db *sql.DB
}

func NewKVRepoSQLite(db *sql.DB) *KVRepoSQLite {
	return &KVRepoSQLite{db: db}
}

// Verificação estática
var _ domain.KeyValueStore = (*KVRepoSQLite)(nil)

// Get lê o slot e o deserializa em 'dest'. Slot expirado conta como miss.
func (r *KVRepoSQLite) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	var payload string
	var expiresAt sql.NullInt64

	err := r.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM slots WHERE key = ?`, key,
	).Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return false, nil // miss
	}
	if err != nil {
		return false, err
	}

	if expiresAt.Valid && time.Now().UTC().Unix() > expiresAt.Int64 {
		return false, nil // expirado, tratado como miss
	}

	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set grava (ou sobrescreve) o slot. ttlSecs <= 0 significa sem expiração.
func (r *KVRepoSQLite) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	var expiresAt sql.NullInt64
	if ttlSecs > 0 {
		expiresAt = sql.NullInt64{
			Int64: time.Now().UTC().Add(time.Duration(ttlSecs) * time.Second).Unix(),
			Valid: true,
		}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO slots (key, value, expires_at) VALUES (?,?,?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value, expires_at=excluded.expires_at`,
		key, string(data), expiresAt,
	)
	return err
}

func (r *KVRepoSQLite) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key)
	return err
}

// InitSQLite cria a tabela de slots se não existir.
func InitSQLite(db *sql.DB) error {
	schema := `
        CREATE TABLE IF NOT EXISTS slots (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL,
            expires_at INTEGER
        );
    `
	_, err := db.Exec(schema)
	return err
}
