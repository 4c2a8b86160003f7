package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/selling"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
	"github.com/vfg2006/dealership-sales-api/pkg/log"
	"github.com/vfg2006/dealership-sales-api/pkg/middleware"
)

const maxSaleBodyBytes = 1 << 20

// recordSaleBody usa ponteiros para diferenciar campo ausente de valor zero
type recordSaleBody struct {
	CustomerID             *int64           `json:"customer_id"`
	VehicleID              *int64           `json:"vehicle_id"`
	SalespersonID          *int64           `json:"salesperson_id"`
	SalePrice              *decimal.Decimal `json:"sale_price"`
	SaleDate               *domain.Date     `json:"sale_date"`
	MaintenanceDate        *domain.Date     `json:"maintenance_date"`
	MaintenanceDescription *string          `json:"maintenance_description"`
	MaintenanceCost        *decimal.Decimal `json:"maintenance_cost"`
}

func (b *recordSaleBody) missingFields() []string {
	var missing []string
	if b.CustomerID == nil {
		missing = append(missing, "customer_id")
	}
	if b.VehicleID == nil {
		missing = append(missing, "vehicle_id")
	}
	if b.SalespersonID == nil {
		missing = append(missing, "salesperson_id")
	}
	if b.SalePrice == nil {
		missing = append(missing, "sale_price")
	}
	if b.SaleDate == nil || b.SaleDate.IsZero() {
		missing = append(missing, "sale_date")
	}
	if b.MaintenanceDate == nil || b.MaintenanceDate.IsZero() {
		missing = append(missing, "maintenance_date")
	}
	if b.MaintenanceCost == nil {
		missing = append(missing, "maintenance_cost")
	}
	return missing
}

func (b *recordSaleBody) request() *domain.RecordSaleRequest {
	request := &domain.RecordSaleRequest{
		CustomerID:      *b.CustomerID,
		VehicleID:       *b.VehicleID,
		SalespersonID:   *b.SalespersonID,
		SalePrice:       *b.SalePrice,
		SaleDate:        *b.SaleDate,
		MaintenanceDate: *b.MaintenanceDate,
		MaintenanceCost: *b.MaintenanceCost,
	}
	if b.MaintenanceDescription != nil {
		request.MaintenanceDescription = *b.MaintenanceDescription
	}
	return request
}

// decodeRecordSale converte o corpo para tipos semânticos antes de chegar ao
// serviço. Campos desconhecidos, datas fora de YYYY-MM-DD e valores que não
// são números decimais são rejeitados
func decodeRecordSale(w http.ResponseWriter, r *http.Request) (*recordSaleBody, error) {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSaleBodyBytes))
	decoder.DisallowUnknownFields()

	var body recordSaleBody
	if err := decoder.Decode(&body); err != nil {
		return nil, err
	}

	if decoder.More() {
		return nil, errors.New("corpo da requisição contém mais de um objeto JSON")
	}

	return &body, nil
}

// RecordSale registra uma venda completa
func RecordSale(service selling.SaleRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		body, err := decodeRecordSale(w, r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição vazio", nil)
				return
			}
			logger.WithError(err).Warn("Corpo da venda inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de dados inválido", err.Error())
			return
		}

		if missing := body.missingFields(); len(missing) > 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Dados obrigatórios ausentes", map[string]any{"fields": missing})
			return
		}

		request := body.request()

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || !claims.CanRecordSaleFor(request.SalespersonID) {
			apiErrors.WriteError(w, apiErrors.ErrSaleNotAuthorized, "Vendedores só podem registrar as próprias vendas", nil)
			return
		}

		saleID, err := service.RecordSale(r.Context(), request)
		if err != nil {
			writeSaleError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, domain.RecordSaleResponse{SaleID: saleID})
	}
}

func writeSaleError(w http.ResponseWriter, err error) {
	var saleErr *selling.SaleError
	if !errors.As(err, &saleErr) {
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao registrar venda", nil)
		return
	}

	details := map[string]any{
		"category": saleErr.Category,
	}
	if saleErr.Entity != "" {
		details["entity"] = saleErr.Entity
		details["entity_id"] = saleErr.EntityID
	}

	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) {
		details["field"] = fieldErr.Field
		details["reason"] = fieldErr.Reason
	}

	switch saleErr.Category {
	case selling.CategoryValidation:
		apiErrors.WriteError(w, saleErr.Code, saleErr.Error(), details)
	case selling.CategoryConcurrencyConflict:
		details["retryable"] = true
		apiErrors.WriteError(w, saleErr.Code, "Conflito com outra transação, tente novamente", details)
	default:
		apiErrors.WriteError(w, saleErr.Code, "Erro ao registrar venda", details)
	}
}
