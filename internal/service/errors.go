package service

import "errors"

var (
	// ErrInvalidDate is returned when a date string cannot be parsed
	ErrInvalidDate = errors.New("fecha no válida")
	// ErrUnknownZone is returned for a zone name outside the registry
	ErrUnknownZone = errors.New("Zona no válida")
	// ErrNoData is returned when a zone contains no grid cells
	ErrNoData = errors.New("No hay datos para esta zona")
	// ErrInference wraps any failure of the risk or classification model
	ErrInference = errors.New("inference failed")
	// ErrModelUnavailable is returned when an optional model was not loaded
	ErrModelUnavailable = errors.New("modelo no disponible")
)

// ValidationError reports a missing or malformed request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missing(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
