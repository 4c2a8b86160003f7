package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealership-sales-api/internal/config"
)

func TestDialect_Builder(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		expected string
	}{
		{name: "Postgres usa placeholders numerados", dialect: Postgres, expected: "SELECT status FROM vehicles WHERE vehicle_id = $1"},
		{name: "SQLite usa interrogação", dialect: SQLite, expected: "SELECT status FROM vehicles WHERE vehicle_id = ?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.dialect.Builder().
				Select("status").
				From("vehicles").
				Where("vehicle_id = ?", 1).
				ToSql()

			require.NoError(t, err)
			assert.Equal(t, tt.expected, query)
			assert.Equal(t, []any{1}, args)
		})
	}
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor(config.DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "FOR UPDATE", d.LockSuffix)
	assert.Equal(t, sql.LevelReadCommitted, d.TxOptions().Isolation)

	d, err = DialectFor(config.DriverSQLite)
	require.NoError(t, err)
	assert.Empty(t, d.LockSuffix)
	assert.Nil(t, d.TxOptions())

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}

func TestIsConcurrencyConflict(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "Nil", err: nil, expected: false},
		{name: "Erro comum", err: errors.New("boom"), expected: false},
		{name: "Serialization failure", err: &pq.Error{Code: "40001"}, expected: true},
		{name: "Deadlock", err: &pq.Error{Code: "40P01"}, expected: true},
		{name: "Lock not available", err: &pq.Error{Code: "55P03"}, expected: true},
		{name: "Violação de unicidade não é conflito", err: &pq.Error{Code: "23505"}, expected: false},
		{name: "Erro do driver embrulhado", err: errors.Join(errors.New("contexto"), &pq.Error{Code: "40001"}), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsConcurrencyConflict(tt.err))
		})
	}
}

func newSQLiteConnection(t *testing.T) *Connection {
	t.Helper()

	conn, err := NewConnection(context.Background(), config.Database{
		Driver:      config.DriverSQLite,
		DSN:         config.SQLiteDSN(filepath.Join(t.TempDir(), "test.db")),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func countAuditEntries(t *testing.T, conn *Connection) int {
	t.Helper()

	var count int
	require.NoError(t, conn.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM audit_log").Scan(&count))
	return count
}

func TestConnection_RunInTransaction(t *testing.T) {
	ctx := context.Background()
	conn := newSQLiteConnection(t)
	insert := `INSERT INTO audit_log (action_type, action_date, details) VALUES ('teste', '2025-01-01', 'x')`

	t.Run("Erro do callback desfaz e é devolvido sem alteração", func(t *testing.T) {
		errFn := errors.New("falha no meio da transação")

		err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, insert)
			require.NoError(t, err)
			return errFn
		})

		assert.Same(t, errFn, err)
		assert.Equal(t, 0, countAuditEntries(t, conn))
	})

	t.Run("Panic desfaz a transação", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, insert)
				require.NoError(t, err)
				panic("inesperado")
			})
		})

		assert.Equal(t, 0, countAuditEntries(t, conn))
	})

	t.Run("Sucesso confirma", func(t *testing.T) {
		err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, insert)
			return err
		})

		require.NoError(t, err)
		assert.Equal(t, 1, countAuditEntries(t, conn))
	})

	t.Run("Migrate pode ser repetido", func(t *testing.T) {
		assert.NoError(t, conn.Migrate(ctx))
	})
}
