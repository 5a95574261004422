package service

// ServiceError carries an HTTP-equivalent status code for input
// validation failures so handlers can surface the exact message.
type ServiceError struct {
	Code    int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewServiceError(code int, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}
