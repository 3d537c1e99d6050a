package session

// AuthenticationError is returned by the store gateway when a login attempt
// fails, carrying the server-provided message. It is the only kind of error
// (together with RegistrationError) that the session layer re-throws to the
// caller for display instead of absorbing.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// NewAuthenticationError creates an AuthenticationError with the given message
func NewAuthenticationError(message string) *AuthenticationError {
	if message == "" {
		message = "Database authentication failed"
	}
	return &AuthenticationError{Message: message}
}

// RegistrationError is returned by the store gateway when account creation
// fails (duplicate email, transport failure).
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string {
	return e.Message
}

// NewRegistrationError creates a RegistrationError with the given message
func NewRegistrationError(message string) *RegistrationError {
	if message == "" {
		message = "Registration failed"
	}
	return &RegistrationError{Message: message}
}
