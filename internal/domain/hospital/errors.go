package hospital

import "errors"

var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrTestTypeNotFound   = errors.New("lab test type not found")
	ErrLabOrderNotFound   = errors.New("lab order not found")
	ErrDispenseNotFound   = errors.New("dispense not found")
	ErrInvalidQuantity    = errors.New("invalid quantity or insufficient stock")
)
