package errdefs

type ErrorType int

const (
	ErrTypeNotLinux ErrorType = iota
	ErrTypeUnknownLanguage
	ErrTypeIncompleteBundle
	ErrTypeInvalidIntent
	ErrTypeInvalidNotification
	ErrTypeHostUnavailable
	ErrTypeGeneric
)

type CustomError struct {
	Type    ErrorType
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// Is matches any CustomError of the same type, so wrapped errors with a
// specific message still satisfy errors.Is against the sentinels below.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func NewCustomError(errType ErrorType, message string) error {
	return &CustomError{
		Type:    errType,
		Message: message,
	}
}

var (
	ErrUnknownLanguage     = NewCustomError(ErrTypeUnknownLanguage, "unknown language")
	ErrIncompleteBundle    = NewCustomError(ErrTypeIncompleteBundle, "incomplete translation bundle")
	ErrInvalidIntent       = NewCustomError(ErrTypeInvalidIntent, "invalid intent")
	ErrInvalidNotification = NewCustomError(ErrTypeInvalidNotification, "invalid notification")
	ErrHostUnavailable     = NewCustomError(ErrTypeHostUnavailable, "host unavailable")
)
