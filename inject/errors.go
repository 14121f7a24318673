package inject

import "strconv"

// NoProviderError is returned when an unset dependency is read and it was
// declared without a default provider.
type NoProviderError struct{ Name string }

// Error implements the error interface.
func (e NoProviderError) Error() string {
	// Example: inject: dependency "mailer" is unset and has no default provider
	return "inject: dependency " + strconv.Quote(e.Name) + " is unset and has no default provider"
}
