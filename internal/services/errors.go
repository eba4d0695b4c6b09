package services

import "fmt"

type ErrorKind string

const (
	ErrorConfiguration ErrorKind = "configuration"
	ErrorValidation    ErrorKind = "validation"
	ErrorUpstream      ErrorKind = "upstream"
)

// Messages returned to callers. Upstream causes never reach the client.
const (
	MsgNotConfigured    = "Error interno: Configuración de IA incompleta."
	MsgInvalidRequest   = "Faltan datos necesarios para el diagnóstico (nombre, descripción, puntuaciones)."
	MsgGenerationFailed = "No se pudo generar el análisis de IA. Inténtalo de nuevo más tarde."
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func configurationError(err error) *Error {
	return &Error{Kind: ErrorConfiguration, Message: MsgNotConfigured, Err: err}
}

func validationError(err error) *Error {
	return &Error{Kind: ErrorValidation, Message: MsgInvalidRequest, Err: err}
}

func upstreamError(err error) *Error {
	return &Error{Kind: ErrorUpstream, Message: MsgGenerationFailed, Err: err}
}
