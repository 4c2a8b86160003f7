package selling

import (
	"errors"
	"fmt"

	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

// Category separa falhas de entrada das falhas do banco
type Category string

const (
	CategoryValidation          Category = "validation"
	CategoryStorage             Category = "storage"
	CategoryConcurrencyConflict Category = "concurrency_conflict"
)

// Erros específicos para o registro de vendas
var (
	// Erros de validação
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrVehicleNotAvailable = errors.New("vehicle not available")
	ErrSalespersonNotFound = errors.New("salesperson not found")
	ErrInvalidSaleInput    = errors.New("invalid sale input")

	// Erros de banco de dados
	ErrStorage             = errors.New("storage operation failed")
	ErrConcurrencyConflict = errors.New("transaction aborted by a concurrent transaction")
)

// SaleError é o único erro devolvido por RecordSale
type SaleError struct {
	Err      error    // Erro base
	Category Category // Validação, banco ou conflito de concorrência
	Code     string   // Código de erro para API
	Entity   string   // Entidade que falhou na validação (quando aplicável)
	EntityID int64    // ID da entidade (quando aplicável)
	Details  string   // Detalhes adicionais
	Cause    error    // Erro original do banco ou da validação de campos
}

// Error implementa a interface error
func (e *SaleError) Error() string {
	msg := e.Err.Error()
	if e.Entity != "" && e.EntityID != 0 {
		msg = fmt.Sprintf("%s: %s %d", msg, e.Entity, e.EntityID)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}
	return msg
}

// Unwrap permite que errors.Is encontre tanto o erro base quanto a causa
// original. Conflitos de concorrência também são falhas de banco
func (e *SaleError) Unwrap() []error {
	errs := []error{e.Err}
	if e.Category == CategoryConcurrencyConflict {
		errs = append(errs, ErrStorage)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func newValidationError(err error, code, entity string, id int64) *SaleError {
	return &SaleError{
		Err:      err,
		Category: CategoryValidation,
		Code:     code,
		Entity:   entity,
		EntityID: id,
	}
}

func newInputError(cause error) *SaleError {
	return &SaleError{
		Err:      ErrInvalidSaleInput,
		Category: CategoryValidation,
		Code:     apiErrors.ErrInvalidRequest,
		Cause:    cause,
	}
}

func newStorageError(details string, cause error) *SaleError {
	return &SaleError{
		Err:      ErrStorage,
		Category: CategoryStorage,
		Code:     apiErrors.ErrDatabaseOperation,
		Details:  details,
		Cause:    cause,
	}
}

func newConflictError(details string, cause error) *SaleError {
	return &SaleError{
		Err:      ErrConcurrencyConflict,
		Category: CategoryConcurrencyConflict,
		Code:     apiErrors.ErrConcurrencyConflict,
		Details:  details,
		Cause:    cause,
	}
}

func categoryOf(err error) (Category, bool) {
	var saleErr *SaleError
	if errors.As(err, &saleErr) {
		return saleErr.Category, true
	}
	return "", false
}

// IsValidationError indica entidade inexistente, veículo indisponível ou
// entrada malformada. Nenhuma escrita foi feita
func IsValidationError(err error) bool {
	category, ok := categoryOf(err)
	return ok && category == CategoryValidation
}

// IsStorageError inclui os conflitos de concorrência
func IsStorageError(err error) bool {
	category, ok := categoryOf(err)
	return ok && (category == CategoryStorage || category == CategoryConcurrencyConflict)
}

// IsConcurrencyConflict indica que a operação inteira pode ser repetida,
// incluindo as validações
func IsConcurrencyConflict(err error) bool {
	category, ok := categoryOf(err)
	return ok && category == CategoryConcurrencyConflict
}
