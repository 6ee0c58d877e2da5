package flag

import (
	"io"

	"github.com/thirukguru/docdb-multiscan/model"
)

// Default values shared with the settings layer.
const (
	DefaultOutput         = "table"
	DefaultCredentialMode = "profile"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultMaxParallel    = 1
)

type service struct {
	out io.Writer
}

// Service is the interface for CLI flag service.
type Service interface {
	// GetParsedFlags parses args (without the program name). --help yields
	// Flags.Help with a nil error after usage has been printed.
	GetParsedFlags(args []string) (model.Flags, error)
}
