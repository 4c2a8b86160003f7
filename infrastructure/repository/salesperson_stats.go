package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/dealership-sales-api/infrastructure/database"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

// SalespersonStatsRepository confere os contadores de total_sales e
// total_revenue contra as vendas confirmadas
type SalespersonStatsRepository interface {
	FindStatsDrift(ctx context.Context) ([]*domain.SalespersonStatsDrift, error)
	// RepairStatsDrift sobrescreve os contadores divergentes com os agregados
	// e registra uma entrada de auditoria por vendedor corrigido
	RepairStatsDrift(ctx context.Context, now time.Time) ([]*domain.SalespersonStatsDrift, error)
}

type salespersonStatsRepository struct {
	conn *database.Connection
}

func NewSalespersonStatsRepository(conn *database.Connection) SalespersonStatsRepository {
	return &salespersonStatsRepository{
		conn: conn,
	}
}

func (r *salespersonStatsRepository) FindStatsDrift(ctx context.Context) ([]*domain.SalespersonStatsDrift, error) {
	return findStatsDrift(ctx, r.conn, r.conn.Dialect)
}

func (r *salespersonStatsRepository) RepairStatsDrift(ctx context.Context, now time.Time) ([]*domain.SalespersonStatsDrift, error) {
	var repaired []*domain.SalespersonStatsDrift

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		repaired = nil

		if err := lockSalespersons(ctx, tx, r.conn.Dialect); err != nil {
			return err
		}

		drifts, err := findStatsDrift(ctx, tx, r.conn.Dialect)
		if err != nil {
			return err
		}

		for _, drift := range drifts {
			if err := overwriteSalespersonTotals(ctx, tx, r.conn.Dialect, drift); err != nil {
				return err
			}

			if err := insertAuditEntry(ctx, tx, r.conn.Dialect, domain.NewStatsReconciledAuditEntry(drift, now)); err != nil {
				return err
			}

			repaired = append(repaired, drift)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return repaired, nil
}

// lockSalespersons trava as linhas de vendedores para que nenhuma venda altere
// os contadores entre o cálculo do agregado e a correção
func lockSalespersons(ctx context.Context, q database.Queryer, dialect database.Dialect) error {
	if dialect.LockSuffix == "" {
		return nil
	}

	query, args, err := dialect.Builder().
		Select("salesperson_id").
		From(salespersonsTable).
		OrderBy("salesperson_id").
		Suffix(dialect.LockSuffix).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao travar vendedores")
	}
	defer rows.Close()

	for rows.Next() {
	}

	return rows.Err()
}

func findStatsDrift(ctx context.Context, q database.Queryer, dialect database.Dialect) ([]*domain.SalespersonStatsDrift, error) {
	query, args, err := dialect.Builder().
		Select(
			"sp.salesperson_id",
			"sp.total_sales",
			"sp.total_revenue",
			"COUNT(s.sale_id)",
			"COALESCE(SUM(s.sale_price), 0)",
		).
		From(salespersonsTable + " sp").
		LeftJoin(salesTable + " s ON s.salesperson_id = sp.salesperson_id").
		GroupBy("sp.salesperson_id", "sp.total_sales", "sp.total_revenue").
		OrderBy("sp.salesperson_id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar estatísticas dos vendedores")
	}
	defer rows.Close()

	var drifts []*domain.SalespersonStatsDrift
	for rows.Next() {
		var d domain.SalespersonStatsDrift
		if err := rows.Scan(
			&d.SalespersonID,
			&d.StoredSales,
			&d.StoredRevenue,
			&d.ComputedSales,
			&d.ComputedRevenue,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao ler estatísticas dos vendedores")
		}

		// colunas NUMERIC podem voltar como ponto flutuante no sqlite
		d.StoredRevenue = d.StoredRevenue.Round(2)
		d.ComputedRevenue = d.ComputedRevenue.Round(2)

		if d.HasDrift() {
			drifts = append(drifts, &d)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao percorrer estatísticas dos vendedores")
	}

	return drifts, nil
}

func overwriteSalespersonTotals(ctx context.Context, q database.Queryer, dialect database.Dialect, drift *domain.SalespersonStatsDrift) error {
	query, args, err := dialect.Builder().
		Update(salespersonsTable).
		Set("total_sales", drift.ComputedSales).
		Set("total_revenue", drift.ComputedRevenue).
		Where(squirrel.Eq{"salesperson_id": drift.SalespersonID}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "erro ao corrigir estatísticas do vendedor %d", drift.SalespersonID)
	}

	return nil
}
