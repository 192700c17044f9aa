package managing

import (
	"errors"
	"fmt"
)

var (
	ErrCustomerNotFound    = errors.New("cliente não encontrado")
	ErrServiceNotFound     = errors.New("serviço não encontrado")
	ErrAppointmentNotFound = errors.New("agendamento não encontrado")
	ErrDuplicateRecord     = errors.New("registro já existe")

	ErrInvalidStatus = errors.New("status inválido")
	ErrInvalidAmount = errors.New("valor não pode ser negativo")
	ErrInvalidDate   = errors.New("data inválida")
	ErrInvalidScope  = errors.New("escopo de listagem inválido")

	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrGenerateID        = errors.New("erro ao gerar identificador")
)

// ManagingError carrega o código de API e o registro envolvido
type ManagingError struct {
	Err      error
	Code     string
	RecordID string
	Details  string
}

func (e *ManagingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ManagingError) Unwrap() error {
	return e.Err
}

func NewManagingError(err error, code string, details string) *ManagingError {
	return &ManagingError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewManagingErrorWithID(err error, code string, recordID string, details string) *ManagingError {
	return &ManagingError{
		Err:      err,
		Code:     code,
		RecordID: recordID,
		Details:  details,
	}
}
