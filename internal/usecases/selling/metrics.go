package selling

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess    = "success"
	outcomeValidation = "validation"
	outcomeStorage    = "storage"
	outcomeConflict   = "conflict"
)

var salesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "dealership_sales_recorded_total",
	Help: "Tentativas de registro de venda por resultado",
}, []string{"outcome"})

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case IsConcurrencyConflict(err):
		return outcomeConflict
	case IsValidationError(err):
		return outcomeValidation
	default:
		return outcomeStorage
	}
}
