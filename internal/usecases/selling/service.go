package selling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/dealership-sales-api/infrastructure/database"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
	"github.com/vfg2006/dealership-sales-api/pkg/log"
)

type SaleRecorder interface {
	// RecordSale grava venda, status do veículo, manutenção, estatísticas do
	// vendedor e auditoria numa única transação. Qualquer erro é um *SaleError
	RecordSale(ctx context.Context, request *domain.RecordSaleRequest) (int64, error)
}

type Service struct {
	saleRepository repository.SaleRepository
	now            func() time.Time
}

func NewService(saleRepository repository.SaleRepository) SaleRecorder {
	return &Service{
		saleRepository: saleRepository,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) RecordSale(ctx context.Context, request *domain.RecordSaleRequest) (int64, error) {
	logger := log.ForContext(ctx)

	if err := request.Validate(); err != nil {
		saleErr := newInputError(err)
		s.logFailure(logger, request, saleErr)
		salesRecorded.WithLabelValues(outcomeValidation).Inc()
		return 0, saleErr
	}

	sale := request.Sale()

	err := s.saleRepository.RunInTransaction(ctx, func(tx repository.SaleTx) error {
		return s.recordSale(ctx, tx, request, sale)
	})
	if err != nil {
		saleErr := classify(err)
		s.logFailure(logger, request, saleErr)
		salesRecorded.WithLabelValues(outcomeFor(saleErr)).Inc()
		return 0, saleErr
	}

	salesRecorded.WithLabelValues(outcomeSuccess).Inc()
	logger.WithFields(log.Fields{
		"sale_id":        sale.ID,
		"customer_id":    sale.CustomerID,
		"vehicle_id":     sale.VehicleID,
		"salesperson_id": sale.SalespersonID,
	}).Infof("Venda registrada com sucesso: %d", sale.ID)

	return sale.ID, nil
}

func (s *Service) recordSale(ctx context.Context, tx repository.SaleTx, request *domain.RecordSaleRequest, sale *domain.Sale) error {
	customerExists, err := tx.CustomerExists(ctx, request.CustomerID)
	if err != nil {
		return storageFailure("erro ao consultar cliente", err)
	}
	if !customerExists {
		return newValidationError(ErrCustomerNotFound, apiErrors.ErrCustomerNotFound, "customer", request.CustomerID)
	}

	status, vehicleFound, err := tx.LockVehicleStatus(ctx, request.VehicleID)
	if err != nil {
		return storageFailure("erro ao consultar veículo", err)
	}
	if !vehicleFound {
		return newValidationError(ErrVehicleNotFound, apiErrors.ErrVehicleNotFound, "vehicle", request.VehicleID)
	}
	if !status.IsAvailable() {
		notAvailable := newValidationError(ErrVehicleNotAvailable, apiErrors.ErrVehicleNotAvailable, "vehicle", request.VehicleID)
		notAvailable.Details = fmt.Sprintf("status atual %s", status)
		return notAvailable
	}

	salespersonExists, err := tx.SalespersonExists(ctx, request.SalespersonID)
	if err != nil {
		return storageFailure("erro ao consultar vendedor", err)
	}
	if !salespersonExists {
		return newValidationError(ErrSalespersonNotFound, apiErrors.ErrSalespersonNotFound, "salesperson", request.SalespersonID)
	}

	saleID, err := tx.InsertSale(ctx, sale)
	if err != nil {
		return storageFailure("erro ao inserir venda", err)
	}
	sale.ID = saleID

	if err := tx.MarkVehicleSold(ctx, sale.VehicleID); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return newValidationError(ErrVehicleNotAvailable, apiErrors.ErrVehicleNotAvailable, "vehicle", sale.VehicleID)
		}
		return storageFailure("erro ao marcar veículo como vendido", err)
	}

	if _, err := tx.InsertMaintenance(ctx, request.MaintenanceRecord()); err != nil {
		return storageFailure("erro ao agendar manutenção", err)
	}

	if err := tx.IncrementSalespersonTotals(ctx, sale.SalespersonID, sale.SalePrice); err != nil {
		return storageFailure("erro ao atualizar estatísticas do vendedor", err)
	}

	if err := tx.InsertAuditEntry(ctx, domain.NewSaleRecordedAuditEntry(sale, s.now())); err != nil {
		return storageFailure("erro ao registrar auditoria", err)
	}

	return nil
}

// storageFailure separa os abortos por controle de concorrência das demais
// falhas do banco
func storageFailure(details string, err error) *SaleError {
	if database.IsConcurrencyConflict(err) {
		return newConflictError(details, err)
	}
	return newStorageError(details, err)
}

// classify garante que o chamador sempre receba um *SaleError, inclusive
// quando a falha ocorre ao abrir ou confirmar a transação
func classify(err error) *SaleError {
	var saleErr *SaleError
	if errors.As(err, &saleErr) {
		return saleErr
	}
	return storageFailure("erro na transação de venda", err)
}

func (s *Service) logFailure(logger log.Logger, request *domain.RecordSaleRequest, saleErr *SaleError) {
	entry := logger.WithFields(log.Fields{
		"customer_id":    request.CustomerID,
		"vehicle_id":     request.VehicleID,
		"salesperson_id": request.SalespersonID,
		"category":       string(saleErr.Category),
	}).WithError(saleErr)

	if saleErr.Category == CategoryValidation {
		entry.Warn("Venda rejeitada na validação")
		return
	}
	entry.Error("Falha ao registrar venda, transação desfeita")
}
