// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/dealership-sales-api/infrastructure/database"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

const (
	customersTable    = "customers"
	vehiclesTable     = "vehicles"
	salespersonsTable = "salespersons"
	salesTable        = "sales"
	maintenanceTable  = "maintenance"
	auditLogTable     = "audit_log"
)

// ErrNoRowsAffected indica que um UPDATE condicional não encontrou a linha no
// estado esperado
var ErrNoRowsAffected = errors.New("no rows affected")

// SaleRepository abre o escopo transacional em que uma venda é registrada.
// Tudo que for feito através do SaleTx é confirmado junto ou descartado junto
type SaleRepository interface {
	RunInTransaction(ctx context.Context, fn func(tx SaleTx) error) error
}

// SaleTx são as operações disponíveis dentro da transação de venda
type SaleTx interface {
	CustomerExists(ctx context.Context, customerID int64) (bool, error)
	// LockVehicleStatus lê o status do veículo travando a linha até o fim da
	// transação. found é false quando o veículo não existe
	LockVehicleStatus(ctx context.Context, vehicleID int64) (status domain.VehicleStatus, found bool, err error)
	SalespersonExists(ctx context.Context, salespersonID int64) (bool, error)
	InsertSale(ctx context.Context, sale *domain.Sale) (int64, error)
	MarkVehicleSold(ctx context.Context, vehicleID int64) error
	InsertMaintenance(ctx context.Context, record *domain.MaintenanceRecord) (int64, error)
	IncrementSalespersonTotals(ctx context.Context, salespersonID int64, salePrice decimal.Decimal) error
	InsertAuditEntry(ctx context.Context, entry *domain.AuditEntry) error
}

type saleRepository struct {
	conn *database.Connection
}

func NewSaleRepository(conn *database.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) RunInTransaction(ctx context.Context, fn func(tx SaleTx) error) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return fn(&saleTx{tx: tx, dialect: r.conn.Dialect})
	})
}

type saleTx struct {
	tx      database.Queryer
	dialect database.Dialect
}

func (t *saleTx) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	return t.exists(ctx, customersTable, "customer_id", customerID)
}

func (t *saleTx) SalespersonExists(ctx context.Context, salespersonID int64) (bool, error) {
	return t.exists(ctx, salespersonsTable, "salesperson_id", salespersonID)
}

func (t *saleTx) exists(ctx context.Context, table, column string, id int64) (bool, error) {
	query, args, err := t.dialect.Builder().
		Select("1").
		From(table).
		Where(squirrel.Eq{column: id}).
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "erro ao construir a query")
	}

	var one int
	err = t.tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "erro ao consultar %s", table)
	}

	return true, nil
}

func (t *saleTx) LockVehicleStatus(ctx context.Context, vehicleID int64) (domain.VehicleStatus, bool, error) {
	builder := t.dialect.Builder().
		Select("status").
		From(vehiclesTable).
		Where(squirrel.Eq{"vehicle_id": vehicleID})
	if t.dialect.LockSuffix != "" {
		builder = builder.Suffix(t.dialect.LockSuffix)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", false, errors.Wrap(err, "erro ao construir a query")
	}

	var status string
	err = t.tx.QueryRowContext(ctx, query, args...).Scan(&status)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "erro ao consultar status do veículo")
	}

	return domain.VehicleStatus(status), true, nil
}

func (t *saleTx) InsertSale(ctx context.Context, sale *domain.Sale) (int64, error) {
	query, args, err := t.dialect.Builder().
		Insert(salesTable).
		Columns("customer_id", "vehicle_id", "salesperson_id", "sale_date", "sale_price").
		Values(sale.CustomerID, sale.VehicleID, sale.SalespersonID, sale.SaleDate, sale.SalePrice).
		Suffix("RETURNING sale_id").
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	var id int64
	if err := t.tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "erro ao inserir venda")
	}

	return id, nil
}

// MarkVehicleSold só altera veículos ainda disponíveis, garantindo uma única
// transição para Sold por venda
func (t *saleTx) MarkVehicleSold(ctx context.Context, vehicleID int64) error {
	query, args, err := t.dialect.Builder().
		Update(vehiclesTable).
		Set("status", string(domain.VehicleStatusSold)).
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		Where(squirrel.Eq{"status": string(domain.VehicleStatusAvailable)}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return t.execOne(ctx, query, args, "erro ao atualizar status do veículo")
}

func (t *saleTx) InsertMaintenance(ctx context.Context, record *domain.MaintenanceRecord) (int64, error) {
	query, args, err := t.dialect.Builder().
		Insert(maintenanceTable).
		Columns("vehicle_id", "maintenance_date", "description", "cost").
		Values(record.VehicleID, record.MaintenanceDate, record.Description, record.Cost).
		Suffix("RETURNING maintenance_id").
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	var id int64
	if err := t.tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "erro ao inserir manutenção")
	}

	return id, nil
}

// IncrementSalespersonTotals aplica o delta sobre o valor armazenado, sem
// ler e reescrever os contadores
func (t *saleTx) IncrementSalespersonTotals(ctx context.Context, salespersonID int64, salePrice decimal.Decimal) error {
	query, args, err := t.dialect.Builder().
		Update(salespersonsTable).
		Set("total_sales", squirrel.Expr("total_sales + 1")).
		Set("total_revenue", squirrel.Expr("total_revenue + ?", salePrice)).
		Where(squirrel.Eq{"salesperson_id": salespersonID}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	return t.execOne(ctx, query, args, "erro ao atualizar estatísticas do vendedor")
}

func (t *saleTx) InsertAuditEntry(ctx context.Context, entry *domain.AuditEntry) error {
	return insertAuditEntry(ctx, t.tx, t.dialect, entry)
}

func (t *saleTx) execOne(ctx context.Context, query string, args []any, msg string) error {
	result, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, msg)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao obter número de linhas afetadas")
	}
	if rowsAffected != 1 {
		return errors.Wrap(ErrNoRowsAffected, msg)
	}

	return nil
}

func insertAuditEntry(ctx context.Context, q database.Queryer, dialect database.Dialect, entry *domain.AuditEntry) error {
	query, args, err := dialect.Builder().
		Insert(auditLogTable).
		Columns("action_type", "action_date", "details").
		Values(entry.ActionType, entry.ActionDate, entry.Details).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao registrar auditoria")
	}

	return nil
}
