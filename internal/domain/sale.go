package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	AuditActionSaleRecorded        = "Sale Recorded"
	AuditActionStatsReconciled     = "Statistics Reconciled"
	maxMaintenanceDescriptionBytes = 255
	moneyPlaces                    = 2
)

type Sale struct {
	ID            int64           `json:"sale_id"`
	CustomerID    int64           `json:"customer_id"`
	VehicleID     int64           `json:"vehicle_id"`
	SalespersonID int64           `json:"salesperson_id"`
	SaleDate      Date            `json:"sale_date"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}

type MaintenanceRecord struct {
	ID              int64           `json:"maintenance_id"`
	VehicleID       int64           `json:"vehicle_id"`
	MaintenanceDate Date            `json:"maintenance_date"`
	Description     string          `json:"description"`
	Cost            decimal.Decimal `json:"cost"`
}

// AuditEntry é somente de inclusão
type AuditEntry struct {
	ActionType string    `json:"action_type"`
	ActionDate time.Time `json:"action_date"`
	Details    string    `json:"details"`
}

// RecordSaleRequest chega aqui já convertido para os tipos semânticos;
// a conversão de texto é responsabilidade de quem chama
type RecordSaleRequest struct {
	CustomerID             int64           `json:"customer_id"`
	VehicleID              int64           `json:"vehicle_id"`
	SalespersonID          int64           `json:"salesperson_id"`
	SalePrice              decimal.Decimal `json:"sale_price"`
	SaleDate               Date            `json:"sale_date"`
	MaintenanceDate        Date            `json:"maintenance_date"`
	MaintenanceDescription string          `json:"maintenance_description"`
	MaintenanceCost        decimal.Decimal `json:"maintenance_cost"`
}

type RecordSaleResponse struct {
	SaleID int64 `json:"sale_id"`
}

// FieldError identifica o campo rejeitado na validação de entrada
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate rejeita entradas malformadas antes de qualquer acesso ao banco
func (r *RecordSaleRequest) Validate() error {
	ids := []struct {
		field string
		value int64
	}{
		{"customer_id", r.CustomerID},
		{"vehicle_id", r.VehicleID},
		{"salesperson_id", r.SalespersonID},
	}
	for _, id := range ids {
		if id.value <= 0 {
			return &FieldError{Field: id.field, Reason: "deve ser um identificador positivo"}
		}
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"sale_price", r.SalePrice},
		{"maintenance_cost", r.MaintenanceCost},
	}
	for _, amount := range amounts {
		if amount.value.IsNegative() {
			return &FieldError{Field: amount.field, Reason: "não pode ser negativo"}
		}
		// NUMERIC(12,2): valores com mais casas seriam arredondados pelo banco
		if !amount.value.Equal(amount.value.Round(moneyPlaces)) {
			return &FieldError{Field: amount.field, Reason: fmt.Sprintf("aceita no máximo %d casas decimais", moneyPlaces)}
		}
	}
	if r.SaleDate.IsZero() {
		return &FieldError{Field: "sale_date", Reason: "é obrigatória"}
	}
	if r.MaintenanceDate.IsZero() {
		return &FieldError{Field: "maintenance_date", Reason: "é obrigatória"}
	}
	if len(r.MaintenanceDescription) > maxMaintenanceDescriptionBytes {
		return &FieldError{Field: "maintenance_description", Reason: fmt.Sprintf("excede %d bytes", maxMaintenanceDescriptionBytes)}
	}

	return nil
}

func (r *RecordSaleRequest) Sale() *Sale {
	return &Sale{
		CustomerID:    r.CustomerID,
		VehicleID:     r.VehicleID,
		SalespersonID: r.SalespersonID,
		SaleDate:      r.SaleDate,
		SalePrice:     r.SalePrice,
	}
}

func (r *RecordSaleRequest) MaintenanceRecord() *MaintenanceRecord {
	return &MaintenanceRecord{
		VehicleID:       r.VehicleID,
		MaintenanceDate: r.MaintenanceDate,
		Description:     r.MaintenanceDescription,
		Cost:            r.MaintenanceCost,
	}
}

func NewSaleRecordedAuditEntry(sale *Sale, at time.Time) *AuditEntry {
	return &AuditEntry{
		ActionType: AuditActionSaleRecorded,
		ActionDate: at,
		Details: fmt.Sprintf(
			"SaleID=%d, CustomerID=%d, VehicleID=%d, SalespersonID=%d, SalePrice=%s",
			sale.ID,
			sale.CustomerID,
			sale.VehicleID,
			sale.SalespersonID,
			sale.SalePrice.StringFixed(moneyPlaces),
		),
	}
}
