package logger

import "github.com/AbdelazizMoustafa10m/tealog/internal/writer"

// Default is the process-wide Pool used by the package-level functions. It
// has no store; replace it at startup to enable persistence.
var Default = New()

// GetByName returns the named logger from Default.
func GetByName(name string) (*Logger, error) {
	return Default.GetByName(name)
}

// GetAll returns every logger in Default.
func GetAll() []*Logger {
	return Default.GetAll()
}

// ClearStorage clears the persisted levels of Default.
func ClearStorage() {
	Default.ClearStorage()
}

// SetWriter replaces the writer of Default.
func SetWriter(w writer.Writer) error {
	return Default.SetWriter(w)
}
