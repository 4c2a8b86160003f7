package database

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/vfg2006/dealership-sales-api/internal/config"
)

// Dialect concentra o que muda entre os bancos suportados
type Dialect struct {
	Name       string
	DriverName string
	// LockSuffix é anexado às leituras que precisam travar a linha até o fim
	// da transação. No SQLite o lock de escrita já é obtido no BEGIN IMMEDIATE
	LockSuffix  string
	placeholder squirrel.PlaceholderFormat
	isolation   sql.IsolationLevel
}

var (
	Postgres = Dialect{
		Name:        config.DriverPostgres,
		DriverName:  "postgres",
		LockSuffix:  "FOR UPDATE",
		placeholder: squirrel.Dollar,
		isolation:   sql.LevelReadCommitted,
	}

	SQLite = Dialect{
		Name:        config.DriverSQLite,
		DriverName:  "sqlite",
		placeholder: squirrel.Question,
		isolation:   sql.LevelDefault,
	}
)

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverPostgres:
		return Postgres, nil
	case config.DriverSQLite:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("driver de banco de dados não suportado: %q", driver)
	}
}

// Builder retorna um StatementBuilder do squirrel com o placeholder do dialeto
func (d Dialect) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(d.placeholder)
}

func (d Dialect) TxOptions() *sql.TxOptions {
	if d.isolation == sql.LevelDefault {
		return nil
	}
	return &sql.TxOptions{Isolation: d.isolation}
}
