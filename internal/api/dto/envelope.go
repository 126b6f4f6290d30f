package dto

// Envelope is the uniform response wrapper for success and failure.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Success builds a success envelope.
func Success(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Failure builds a failure envelope.
func Failure(message string, errs any) Envelope {
	return Envelope{Success: false, Message: message, Errors: errs}
}
