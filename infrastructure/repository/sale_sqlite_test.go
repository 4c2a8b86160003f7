package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealership-sales-api/infrastructure/database"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository"
	"github.com/vfg2006/dealership-sales-api/internal/config"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/selling"
)

// storeState reúne tudo que uma venda pode alterar
type storeState struct {
	Sales          int
	Maintenance    int
	AuditEntries   int
	VehicleStatus  map[int64]string
	TotalSales     map[int64]int64
	TotalRevenue   map[int64]string
	LastAuditEntry string
}

func newTestConnection(t *testing.T) *database.Connection {
	t.Helper()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dealership.db")

	conn, err := database.NewConnection(ctx, config.Database{
		Driver:       config.DriverSQLite,
		DSN:          config.SQLiteDSN(path),
		AutoMigrate:  true,
		MaxOpenConns: 4,
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	seedStore(t, conn)
	return conn
}

// seedStore grava um cliente, três veículos (o terceiro já vendido) e um vendedor
func seedStore(t *testing.T, conn *database.Connection) {
	t.Helper()

	ctx := context.Background()
	seed := []string{
		`INSERT INTO customers (customer_id, first_name, last_name, email) VALUES (1, 'Ana', 'Souza', 'ana@example.com')`,
		`INSERT INTO vehicles (vehicle_id, make, model, year, price, status) VALUES (1, 'Toyota', 'Corolla', 2022, 20000.00, 'Available')`,
		`INSERT INTO vehicles (vehicle_id, make, model, year, price, status) VALUES (2, 'Honda', 'Civic', 2021, 18000.00, 'Available')`,
		`INSERT INTO vehicles (vehicle_id, make, model, year, price, status) VALUES (3, 'Ford', 'Ka', 2019, 9000.00, 'Sold')`,
		`INSERT INTO salespersons (salesperson_id, first_name, last_name, email, total_sales, total_revenue) VALUES (1, 'Bruno', 'Lima', 'bruno@example.com', 0, 0)`,
	}
	for _, stmt := range seed {
		_, err := conn.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
}

func snapshot(t *testing.T, conn *database.Connection) storeState {
	t.Helper()

	ctx := context.Background()
	state := storeState{
		VehicleStatus: map[int64]string{},
		TotalSales:    map[int64]int64{},
		TotalRevenue:  map[int64]string{},
	}

	counts := map[string]*int{
		"sales":       &state.Sales,
		"maintenance": &state.Maintenance,
		"audit_log":   &state.AuditEntries,
	}
	for table, dst := range counts {
		require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(dst))
	}

	rows, err := conn.QueryContext(ctx, "SELECT vehicle_id, status FROM vehicles")
	require.NoError(t, err)
	for rows.Next() {
		var id int64
		var status string
		require.NoError(t, rows.Scan(&id, &status))
		state.VehicleStatus[id] = status
	}
	require.NoError(t, rows.Close())

	rows, err = conn.QueryContext(ctx, "SELECT salesperson_id, total_sales, total_revenue FROM salespersons")
	require.NoError(t, err)
	for rows.Next() {
		var id, total int64
		var revenue decimal.Decimal
		require.NoError(t, rows.Scan(&id, &total, &revenue))
		state.TotalSales[id] = total
		state.TotalRevenue[id] = revenue.StringFixed(2)
	}
	require.NoError(t, rows.Close())

	err = conn.QueryRowContext(ctx, "SELECT details FROM audit_log ORDER BY log_id DESC LIMIT 1").Scan(&state.LastAuditEntry)
	if err != nil {
		state.LastAuditEntry = ""
	}

	return state
}

func saleRequest(vehicleID int64) *domain.RecordSaleRequest {
	return &domain.RecordSaleRequest{
		CustomerID:             1,
		VehicleID:              vehicleID,
		SalespersonID:          1,
		SalePrice:              decimal.RequireFromString("19500.00"),
		SaleDate:               domain.NewDate(2025, time.January, 15),
		MaintenanceDate:        domain.NewDate(2025, time.June, 1),
		MaintenanceDescription: "Revisão dos 6 meses",
		MaintenanceCost:        decimal.RequireFromString("250.00"),
	}
}

func TestRecordSale_SQLite(t *testing.T) {
	ctx := context.Background()

	t.Run("Venda válida altera as cinco entidades juntas", func(t *testing.T) {
		conn := newTestConnection(t)
		service := selling.NewService(repository.NewSaleRepository(conn))
		before := snapshot(t, conn)

		saleID, err := service.RecordSale(ctx, saleRequest(1))
		require.NoError(t, err)
		assert.Greater(t, saleID, int64(0))

		after := snapshot(t, conn)
		assert.Equal(t, before.Sales+1, after.Sales)
		assert.Equal(t, before.Maintenance+1, after.Maintenance)
		assert.Equal(t, before.AuditEntries+1, after.AuditEntries)
		assert.Equal(t, "Sold", after.VehicleStatus[1])
		assert.Equal(t, "Available", after.VehicleStatus[2])
		assert.Equal(t, int64(1), after.TotalSales[1])
		assert.Equal(t, "19500.00", after.TotalRevenue[1])

		assert.Contains(t, after.LastAuditEntry, "CustomerID=1")
		assert.Contains(t, after.LastAuditEntry, "VehicleID=1")
		assert.Contains(t, after.LastAuditEntry, "SalespersonID=1")
		assert.Contains(t, after.LastAuditEntry, "SalePrice=19500.00")

		var maintenanceVehicle int64
		var maintenanceDate domain.Date
		require.NoError(t, conn.QueryRowContext(ctx,
			"SELECT vehicle_id, maintenance_date FROM maintenance").Scan(&maintenanceVehicle, &maintenanceDate))
		assert.Equal(t, int64(1), maintenanceVehicle)
		assert.Equal(t, "2025-06-01", maintenanceDate.String())

		var saleDate domain.Date
		var storedSaleID int64
		require.NoError(t, conn.QueryRowContext(ctx,
			"SELECT sale_id, sale_date FROM sales").Scan(&storedSaleID, &saleDate))
		assert.Equal(t, saleID, storedSaleID)
		assert.Equal(t, "2025-01-15", saleDate.String())
	})

	t.Run("Repetir a mesma venda falha com veículo indisponível", func(t *testing.T) {
		conn := newTestConnection(t)
		service := selling.NewService(repository.NewSaleRepository(conn))

		_, err := service.RecordSale(ctx, saleRequest(1))
		require.NoError(t, err)
		before := snapshot(t, conn)

		_, err = service.RecordSale(ctx, saleRequest(1))
		require.Error(t, err)
		assert.True(t, selling.IsValidationError(err))
		assert.ErrorIs(t, err, selling.ErrVehicleNotAvailable)

		assert.Equal(t, before, snapshot(t, conn))
	})

	t.Run("Preço com frações de centavo é rejeitado sem gravar nada", func(t *testing.T) {
		conn := newTestConnection(t)
		service := selling.NewService(repository.NewSaleRepository(conn))
		before := snapshot(t, conn)

		request := saleRequest(1)
		request.SalePrice = decimal.RequireFromString("19500.005")

		_, err := service.RecordSale(ctx, request)
		require.Error(t, err)
		assert.True(t, selling.IsValidationError(err))
		assert.ErrorIs(t, err, selling.ErrInvalidSaleInput)

		assert.Equal(t, before, snapshot(t, conn))
	})

	t.Run("Entidades inexistentes não alteram o banco", func(t *testing.T) {
		conn := newTestConnection(t)
		service := selling.NewService(repository.NewSaleRepository(conn))
		before := snapshot(t, conn)

		tests := []struct {
			name    string
			request func() *domain.RecordSaleRequest
			want    error
		}{
			{
				name: "Cliente",
				request: func() *domain.RecordSaleRequest {
					r := saleRequest(1)
					r.CustomerID = 99
					return r
				},
				want: selling.ErrCustomerNotFound,
			},
			{
				name:    "Veículo",
				request: func() *domain.RecordSaleRequest { return saleRequest(99) },
				want:    selling.ErrVehicleNotFound,
			},
			{
				name:    "Veículo já vendido",
				request: func() *domain.RecordSaleRequest { return saleRequest(3) },
				want:    selling.ErrVehicleNotAvailable,
			},
			{
				name: "Vendedor",
				request: func() *domain.RecordSaleRequest {
					r := saleRequest(1)
					r.SalespersonID = 99
					return r
				},
				want: selling.ErrSalespersonNotFound,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				// A mesma entrada inválida duas vezes produz a mesma categoria
				for i := 0; i < 2; i++ {
					_, err := service.RecordSale(ctx, tt.request())
					require.Error(t, err)
					assert.True(t, selling.IsValidationError(err))
					assert.ErrorIs(t, err, tt.want)
				}

				assert.Equal(t, before, snapshot(t, conn))
			})
		}
	})

	t.Run("Falha na última escrita desfaz a transação inteira", func(t *testing.T) {
		conn := newTestConnection(t)
		service := selling.NewService(repository.NewSaleRepository(conn))

		_, err := conn.ExecContext(ctx, `CREATE TRIGGER audit_log_unavailable BEFORE INSERT ON audit_log
BEGIN
    SELECT RAISE(ABORT, 'audit log unavailable');
END`)
		require.NoError(t, err)
		before := snapshot(t, conn)

		_, err = service.RecordSale(ctx, saleRequest(1))
		require.Error(t, err)
		assert.True(t, selling.IsStorageError(err))
		assert.False(t, selling.IsValidationError(err))
		assert.Contains(t, err.Error(), "audit log unavailable")

		assert.Equal(t, before, snapshot(t, conn))
		assert.Equal(t, "Available", snapshot(t, conn).VehicleStatus[1])
	})

	t.Run("Contexto cancelado não deixa efeitos parciais", func(t *testing.T) {
		conn := newTestConnection(t)
		service := selling.NewService(repository.NewSaleRepository(conn))
		before := snapshot(t, conn)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := service.RecordSale(cancelled, saleRequest(1))
		require.Error(t, err)
		assert.True(t, selling.IsStorageError(err))
		assert.True(t, errors.Is(err, context.Canceled))

		assert.Equal(t, before, snapshot(t, conn))
	})

	t.Run("Duas vendas concorrentes do mesmo veículo e só uma confirma", func(t *testing.T) {
		conn := newTestConnection(t)
		service := selling.NewService(repository.NewSaleRepository(conn))

		const attempts = 2
		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
			errs  = make([]error, attempts)
		)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				_, errs[i] = service.RecordSale(ctx, saleRequest(1))
			}(i)
		}
		close(start)
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, selling.IsValidationError(err) || selling.IsConcurrencyConflict(err), "erro inesperado: %v", err)
		}
		assert.Equal(t, 1, succeeded)

		after := snapshot(t, conn)
		assert.Equal(t, 1, after.Sales)
		assert.Equal(t, 1, after.Maintenance)
		assert.Equal(t, 1, after.AuditEntries)
		assert.Equal(t, int64(1), after.TotalSales[1])
		assert.Equal(t, "19500.00", after.TotalRevenue[1])
	})

	t.Run("Vendas concorrentes do mesmo vendedor não perdem incrementos", func(t *testing.T) {
		conn := newTestConnection(t)
		service := selling.NewService(repository.NewSaleRepository(conn))

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, vehicleID := range []int64{1, 2} {
			wg.Add(1)
			go func(i int, vehicleID int64) {
				defer wg.Done()
				_, errs[i] = service.RecordSale(ctx, saleRequest(vehicleID))
			}(i, vehicleID)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}

		after := snapshot(t, conn)
		assert.Equal(t, int64(2), after.TotalSales[1])
		assert.Equal(t, "39000.00", after.TotalRevenue[1])
	})
}

func TestSaleTx_MarkVehicleSold_SQLite(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)
	repo := repository.NewSaleRepository(conn)

	err := repo.RunInTransaction(ctx, func(tx repository.SaleTx) error {
		return tx.MarkVehicleSold(ctx, 3)
	})
	assert.ErrorIs(t, err, repository.ErrNoRowsAffected)

	err = repo.RunInTransaction(ctx, func(tx repository.SaleTx) error {
		status, found, err := tx.LockVehicleStatus(ctx, 99)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, domain.VehicleStatus(""), status)
		return nil
	})
	assert.NoError(t, err)
}
