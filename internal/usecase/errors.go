package usecase

// Códigos de erro expostos no envelope das respostas HTTP.
// AUTH_001 e VALIDATION_ERROR são tratados inline pelo painel,
// os demais viram notificação global.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeAuthDenied  = "AUTH_001"
	CodeNotFound    = "NOT_FOUND"
	CodeDuplicate   = "DUPLICATE"
	CodeInternal    = "INTERNAL_ERROR"
	CodeInvalidJSON = "INVALID_JSON"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
