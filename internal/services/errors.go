package services

// ValidationError is returned when client input is rejected before any
// store call. Its message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrMissingFields    = &ValidationError{Message: "name, category, price, and stock are required."}
	ErrInvalidNumeric   = &ValidationError{Message: "Price and stock must be valid numbers."}
	ErrNoFieldsProvided = &ValidationError{Message: "At least one field (name, category, price, or stock) is required for an update."}
	ErrInvalidText      = &ValidationError{Message: "Name and category must be text."}
	ErrOutOfRange       = &ValidationError{Message: "Price must be positive and stock cannot be negative."}
)
