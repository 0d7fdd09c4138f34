package app

type RequestErrorCode string

const (
	ErrInvalidDate   RequestErrorCode = "INVALID_DATE"
	ErrInvalidRange  RequestErrorCode = "INVALID_RANGE"
	ErrInvalidLimit  RequestErrorCode = "INVALID_LIMIT"
	ErrInvalidInput  RequestErrorCode = "INVALID_INPUT"
	ErrNotConfigured RequestErrorCode = "NOT_CONFIGURED"
)

// RequestError is a caller mistake that should be reported back verbatim.
type RequestError struct {
	Code    RequestErrorCode
	Message string
}

func (e *RequestError) Error() string {
	return string(e.Code) + ": " + e.Message
}
