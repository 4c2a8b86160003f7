package database

import (
	"context"
	"fmt"
)

// Tabelas consumidas pelo serviço de vendas. O banco é a fonte de verdade do
// schema em produção; isto existe para o modo embarcado e para os testes.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
    customer_id BIGSERIAL PRIMARY KEY,
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
    vehicle_id BIGSERIAL PRIMARY KEY,
    make TEXT NOT NULL DEFAULT '',
    model TEXT NOT NULL DEFAULT '',
    year INTEGER NOT NULL DEFAULT 0,
    price NUMERIC(12,2) NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'Available' CHECK (status IN ('Available', 'Sold'))
)`,
	`CREATE TABLE IF NOT EXISTS salespersons (
    salesperson_id BIGSERIAL PRIMARY KEY,
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    total_sales INTEGER NOT NULL DEFAULT 0,
    total_revenue NUMERIC(14,2) NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS sales (
    sale_id BIGSERIAL PRIMARY KEY,
    customer_id BIGINT NOT NULL REFERENCES customers(customer_id),
    vehicle_id BIGINT NOT NULL REFERENCES vehicles(vehicle_id),
    salesperson_id BIGINT NOT NULL REFERENCES salespersons(salesperson_id),
    sale_date DATE NOT NULL,
    sale_price NUMERIC(12,2) NOT NULL CHECK (sale_price >= 0)
)`,
	`CREATE TABLE IF NOT EXISTS maintenance (
    maintenance_id BIGSERIAL PRIMARY KEY,
    vehicle_id BIGINT NOT NULL REFERENCES vehicles(vehicle_id),
    maintenance_date DATE NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    cost NUMERIC(12,2) NOT NULL CHECK (cost >= 0)
)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
    log_id BIGSERIAL PRIMARY KEY,
    action_type TEXT NOT NULL,
    action_date TIMESTAMPTZ NOT NULL,
    details TEXT NOT NULL
)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
    customer_id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
    vehicle_id INTEGER PRIMARY KEY AUTOINCREMENT,
    make TEXT NOT NULL DEFAULT '',
    model TEXT NOT NULL DEFAULT '',
    year INTEGER NOT NULL DEFAULT 0,
    price NUMERIC NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'Available' CHECK (status IN ('Available', 'Sold'))
)`,
	`CREATE TABLE IF NOT EXISTS salespersons (
    salesperson_id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    total_sales INTEGER NOT NULL DEFAULT 0,
    total_revenue NUMERIC NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS sales (
    sale_id INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id INTEGER NOT NULL REFERENCES customers(customer_id),
    vehicle_id INTEGER NOT NULL REFERENCES vehicles(vehicle_id),
    salesperson_id INTEGER NOT NULL REFERENCES salespersons(salesperson_id),
    sale_date TEXT NOT NULL,
    sale_price NUMERIC NOT NULL CHECK (sale_price >= 0)
)`,
	`CREATE TABLE IF NOT EXISTS maintenance (
    maintenance_id INTEGER PRIMARY KEY AUTOINCREMENT,
    vehicle_id INTEGER NOT NULL REFERENCES vehicles(vehicle_id),
    maintenance_date TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    cost NUMERIC NOT NULL CHECK (cost >= 0)
)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
    log_id INTEGER PRIMARY KEY AUTOINCREMENT,
    action_type TEXT NOT NULL,
    action_date TEXT NOT NULL,
    details TEXT NOT NULL
)`,
}

// Migrate cria as tabelas que ainda não existem
func (c *Connection) Migrate(ctx context.Context) error {
	statements := postgresSchema
	if c.Dialect.Name == SQLite.Name {
		statements = sqliteSchema
	}

	for _, stmt := range statements {
		if _, err := c.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao executar DDL: %w", err)
		}
	}

	return nil
}
